package raindrop

import (
	"github.com/agentstation/marksync/pkg/bookmarks"
)

// ref is the {"$id": N} reference the API uses for collections.
type ref struct {
	ID int64 `json:"$id"`
}

type item struct {
	ID         int64    `json:"_id"`
	Link       string   `json:"link"`
	Title      string   `json:"title"`
	Tags       []string `json:"tags"`
	Note       string   `json:"note"`
	Excerpt    string   `json:"excerpt"`
	Important  bool     `json:"important"`
	Collection ref      `json:"collection"`
	Created    string   `json:"created"`
}

type itemsResponse struct {
	Result bool   `json:"result"`
	Items  []item `json:"items"`
	Count  int    `json:"count"`
}

type itemResponse struct {
	Result bool `json:"result"`
	Item   item `json:"item"`
}

type collection struct {
	ID     int64  `json:"_id"`
	Title  string `json:"title"`
	Count  int    `json:"count"`
	Parent *ref   `json:"parent,omitempty"`
}

type collectionsResponse struct {
	Result bool         `json:"result"`
	Items  []collection `json:"items"`
}

type parseOptions struct {
	Mode string `json:"mode"`
}

// payload is the body of create and update calls. Nil fields are omitted,
// so an update only touches what it sets.
type payload struct {
	Link        string        `json:"link,omitempty"`
	Title       *string       `json:"title,omitempty"`
	Tags        *[]string     `json:"tags,omitempty"`
	Note        *string       `json:"note,omitempty"`
	Excerpt     *string       `json:"excerpt,omitempty"`
	Important   *bool         `json:"important,omitempty"`
	Collection  *ref          `json:"collection,omitempty"`
	Created     string        `json:"created,omitempty"`
	LastUpdate  string        `json:"lastUpdate,omitempty"`
	PleaseParse *parseOptions `json:"pleaseParse,omitempty"`
}

func (it item) toExisting() bookmarks.Existing {
	return bookmarks.Existing{
		ID:         it.ID,
		URL:        it.Link,
		Title:      it.Title,
		Collection: bookmarks.CollectionID(it.Collection.ID),
		Tags:       bookmarks.NormalizeTags(it.Tags, false),
		Note:       it.Note,
		Important:  it.Important,
		Found:      true,
	}
}

func (c collection) toCollection() bookmarks.Collection {
	out := bookmarks.Collection{
		ID:    bookmarks.CollectionID(c.ID),
		Title: c.Title,
		Count: c.Count,
	}
	if c.Parent != nil {
		parent := bookmarks.CollectionID(c.Parent.ID)
		out.Parent = &parent
	}
	return out
}
