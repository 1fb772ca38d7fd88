// Package report writes one JSON line per outcome so a run can be audited
// or diffed afterwards.
package report

import (
	"encoding/json"
	"io"
	"os"
	"sync"

	"github.com/agentstation/utc"

	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/constants"
	"github.com/agentstation/marksync/pkg/errors"
	"github.com/agentstation/marksync/pkg/reconciler"
	"github.com/agentstation/marksync/pkg/suggest"
)

// Line is one report entry.
type Line struct {
	Time       utc.Time               `json:"time"`
	RunID      string                 `json:"run_id,omitempty"`
	Index      *int                   `json:"index,omitempty"`
	Kind       string                 `json:"kind"`
	Action     string                 `json:"action,omitempty"`
	URL        string                 `json:"url,omitempty"`
	ID         int64                  `json:"id,omitempty"`
	Collection bookmarks.CollectionID `json:"collection,omitempty"`
	Target     string                 `json:"target,omitempty"`
	Reason     string                 `json:"reason,omitempty"`
}

// Writer appends report lines to an io.Writer. It is safe for concurrent
// use.
type Writer struct {
	mu    sync.Mutex
	enc   *json.Encoder
	c     io.Closer
	runID string
	err   error
}

// New writes to w. If w is an io.Closer, Close closes it.
func New(w io.Writer, runID string) *Writer {
	rw := &Writer{enc: json.NewEncoder(w), runID: runID}
	if c, ok := w.(io.Closer); ok {
		rw.c = c
	}
	return rw
}

// Create truncates or creates the report file at path.
func Create(path, runID string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return nil, errors.WrapIO("create", path, err)
	}
	return New(f, runID), nil
}

// Outcome writes a migration outcome.
func (w *Writer) Outcome(out reconciler.Outcome) {
	index := out.Index
	w.write(Line{
		Index:      &index,
		Kind:       out.Kind.String(),
		Action:     out.Action.String(),
		URL:        out.URL,
		ID:         out.ID,
		Collection: out.Collection,
		Reason:     out.Reason,
	})
}

// Suggestion writes a suggest decision.
func (w *Writer) Suggestion(s suggest.Suggestion, status suggest.Status) {
	w.write(Line{
		Kind:       string(status),
		URL:        s.Record.URL,
		ID:         s.Record.ID,
		Collection: s.Collection,
		Target:     s.Label(),
	})
}

func (w *Writer) write(line Line) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return
	}
	line.Time = utc.Now()
	line.RunID = w.runID
	w.err = w.enc.Encode(line)
}

// Err returns the first write error.
func (w *Writer) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// Close flushes and closes the underlying file. It returns the first write
// error if there was one.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.c != nil {
		if err := w.c.Close(); err != nil && w.err == nil {
			w.err = err
		}
		w.c = nil
	}
	return w.err
}
