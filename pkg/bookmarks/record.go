// Package bookmarks defines the bookmark data model shared by the source
// adapter, the router, the resolver and the reconciler.
package bookmarks

import (
	"fmt"
	"strconv"

	"github.com/agentstation/utc"
)

// CollectionID identifies a destination collection.
type CollectionID int64

const (
	// CollectionAll is the search scope spanning every collection.
	CollectionAll CollectionID = 0

	// CollectionUnsorted is the destination's default bucket.
	CollectionUnsorted CollectionID = -1

	// CollectionTrash holds deleted items.
	CollectionTrash CollectionID = -99
)

// String returns the collection id in decimal.
func (c CollectionID) String() string {
	return strconv.FormatInt(int64(c), 10)
}

// ParseCollectionID parses a decimal collection id.
func ParseCollectionID(s string) (CollectionID, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid collection id %q: %w", s, err)
	}
	return CollectionID(id), nil
}

// Record is one bookmark as read from the source service. URL is the
// unique key. A Record is never modified after the adapter produced it.
type Record struct {
	URL       string
	Title     string
	Tags      Tags
	Note      string
	Created   utc.Time
	ReadLater bool
	Important bool
}

// Candidate is one source entry in source order. Err is set when the entry
// could not be turned into a Record.
type Candidate struct {
	Index  int
	Record Record
	Err    error
}

// Valid reports whether the candidate carries a usable record.
func (c Candidate) Valid() bool {
	return c.Err == nil && c.Record.URL != ""
}

// Existing is the destination's view of a bookmark. The zero value means
// the URL is not present on the destination.
type Existing struct {
	ID         int64
	URL        string
	Title      string
	Collection CollectionID
	Tags       Tags
	Note       string
	Important  bool
	Found      bool
}

// NotFound is the Existing value for a URL absent from the destination.
var NotFound = Existing{}

// Draft is the payload of a create call.
type Draft struct {
	URL        string
	Title      string
	Tags       Tags
	Note       string
	Important  bool
	Created    utc.Time
	Collection CollectionID
}

// NewDraft builds the create payload for a record routed to collection with
// the write-time tag set.
func NewDraft(r Record, collection CollectionID, tags Tags) Draft {
	return Draft{
		URL:        r.URL,
		Title:      r.Title,
		Tags:       tags,
		Note:       r.Note,
		Important:  r.Important,
		Created:    r.Created,
		Collection: collection,
	}
}

// Patch is the payload of an update call. Only non-nil fields are written.
type Patch struct {
	Title      *string
	Tags       Tags
	Note       *string
	Important  *bool
	Collection *CollectionID
}

// Empty reports whether the patch would not change anything.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Tags == nil && p.Note == nil && p.Important == nil && p.Collection == nil
}

// Collection is a destination collection.
type Collection struct {
	ID     CollectionID
	Title  string
	Count  int
	Parent *CollectionID
}
