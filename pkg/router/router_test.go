package router_test

import (
	"testing"

	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/router"
	"github.com/agentstation/marksync/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collection(id int64) *bookmarks.CollectionID {
	c := bookmarks.CollectionID(id)
	return &c
}

var testRules = rules.Rules{
	{Name: "Work", Collection: 555, Tags: bookmarks.Tags{"project-x", "work"}},
	{Name: "Read", Collection: 999, Tags: bookmarks.Tags{"read"}},
	{Name: "Work again", Collection: 111, Tags: bookmarks.Tags{"work"}},
}

func TestRoute(t *testing.T) {
	tests := []struct {
		name       string
		record     bookmarks.Record
		opts       router.Options
		want       bookmarks.CollectionID
		wantRule   int
		readLater  bool
		wantTags   bookmarks.Tags
	}{
		{
			name:     "rule match",
			record:   bookmarks.Record{Tags: bookmarks.Tags{"project-x", "misc"}},
			opts:     router.Options{Default: 123},
			want:     555,
			wantRule: 0,
			wantTags: bookmarks.Tags{"project-x", "misc"},
		},
		{
			name:     "first match wins",
			record:   bookmarks.Record{Tags: bookmarks.Tags{"read", "work"}},
			opts:     router.Options{Default: 123},
			want:     555,
			wantRule: 0,
			wantTags: bookmarks.Tags{"read", "work"},
		},
		{
			name:     "case insensitive",
			record:   bookmarks.Record{Tags: bookmarks.Tags{"READ"}},
			opts:     router.Options{Default: 123},
			want:     999,
			wantRule: 1,
			wantTags: bookmarks.Tags{"READ"},
		},
		{
			name:     "fallback",
			record:   bookmarks.Record{Tags: bookmarks.Tags{"misc"}},
			opts:     router.Options{Default: 321},
			want:     321,
			wantRule: -1,
			wantTags: bookmarks.Tags{"misc"},
		},
		{
			name:      "read-later collection overrides rules",
			record:    bookmarks.Record{Tags: bookmarks.Tags{"work"}, ReadLater: true},
			opts:      router.Options{Default: 1, ReadLaterCollection: collection(42), ReadLaterTag: "toread"},
			want:      42,
			wantRule:  -1,
			readLater: true,
			wantTags:  bookmarks.Tags{"toread", "work"},
		},
		{
			name:     "read-later without collection uses rules and adds tag",
			record:   bookmarks.Record{Tags: bookmarks.Tags{"read"}, ReadLater: true},
			opts:     router.Options{Default: 1, ReadLaterTag: "toread"},
			want:     999,
			wantRule: 1,
			wantTags: bookmarks.Tags{"read", "toread"},
		},
		{
			name:     "read-later tag does not match rules",
			record:   bookmarks.Record{ReadLater: true},
			opts:     router.Options{Default: 1, ReadLaterTag: "read"},
			want:     1,
			wantRule: -1,
			wantTags: bookmarks.Tags{"read"},
		},
		{
			name:     "empty read-later tag disables tagging",
			record:   bookmarks.Record{Tags: bookmarks.Tags{"x"}, ReadLater: true},
			opts:     router.Options{Default: 1},
			want:     1,
			wantRule: -1,
			wantTags: bookmarks.Tags{"x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := router.Route(tt.record, testRules, tt.opts)

			assert.Equal(t, tt.want, d.Collection)
			assert.Equal(t, tt.wantRule, d.RuleIndex)
			assert.Equal(t, tt.readLater, d.ReadLater)
			assert.True(t, tt.wantTags.Equal(d.Tags), "tags %v, want %v", d.Tags, tt.wantTags)
			if tt.wantRule >= 0 {
				require.NotNil(t, d.Rule)
				assert.Equal(t, testRules[tt.wantRule].Name, d.Rule.Name)
			} else {
				assert.Nil(t, d.Rule)
			}
		})
	}
}

func TestRouteNoRules(t *testing.T) {
	d := router.Route(bookmarks.Record{Tags: bookmarks.Tags{"work"}}, nil, router.Options{Default: bookmarks.CollectionUnsorted})
	assert.Equal(t, bookmarks.CollectionUnsorted, d.Collection)
	assert.True(t, d.Fallback())
}

func TestRouteIsPure(t *testing.T) {
	record := bookmarks.Record{Tags: bookmarks.Tags{"misc"}, ReadLater: true}
	opts := router.Options{Default: 7, ReadLaterTag: "toread"}

	first := router.Route(record, testRules, opts)
	second := router.Route(record, testRules, opts)

	assert.Equal(t, first, second)
	assert.Equal(t, bookmarks.Tags{"misc"}, record.Tags, "input record untouched")
}
