package pinboard

import (
	"strings"
	"time"

	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/constants"
	"github.com/agentstation/marksync/pkg/errors"
	"github.com/agentstation/marksync/pkg/logging"
	"github.com/agentstation/utc"
)

// Post is one entry of the posts/all export. Pinboard encodes booleans as
// "yes"/"no" strings and tags as one space-separated string.
type Post struct {
	Href        string `json:"href"`
	Description string `json:"description"`
	Extended    string `json:"extended"`
	Tags        string `json:"tags"`
	Time        string `json:"time"`
	ToRead      string `json:"toread"`
	Shared      string `json:"shared"`
	Hash        string `json:"hash"`
}

// Record converts the post. The title falls back to the URL and the
// "starred" tag marks the record important. A post without href is a data
// error for entry index.
func (p Post) Record(index int) (bookmarks.Record, error) {
	href := strings.TrimSpace(p.Href)
	if href == "" {
		return bookmarks.Record{}, errors.NewDataError(index, "href", "missing URL")
	}

	title := strings.TrimSpace(p.Description)
	if title == "" {
		title = href
	}

	tags := bookmarks.ParseTags(p.Tags, false)
	r := bookmarks.Record{
		URL:       href,
		Title:     title,
		Tags:      tags,
		Note:      strings.TrimSpace(p.Extended),
		ReadLater: p.ToRead == "yes",
		Important: tags.Contains(constants.StarredTag),
	}

	if p.Time != "" {
		created, err := utc.Parse(time.RFC3339, p.Time)
		if err != nil {
			logging.Debug().Int("index", index).Str("time", p.Time).Msg("Ignoring unparseable post time")
		} else {
			r.Created = created
		}
	}
	return r, nil
}

// Adapt turns posts into candidates in source order. Entries that cannot be
// converted keep their slot with Err set.
func Adapt(posts []Post) []bookmarks.Candidate {
	out := make([]bookmarks.Candidate, len(posts))
	for i, p := range posts {
		r, err := p.Record(i)
		out[i] = bookmarks.Candidate{Index: i, Record: r, Err: err}
	}
	return out
}
