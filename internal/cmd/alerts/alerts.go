// Package alerts provides the status line printed at the end of a run.
package alerts

import (
	"fmt"
	"io"
	"strings"
)

// Alert is a run status notification.
type Alert struct {
	Level   Level
	Message string
	Details []string
}

// New creates a new alert with the given level and message.
func New(level Level, message string) *Alert {
	return &Alert{Level: level, Message: message}
}

// NewError creates a new error alert.
func NewError(message string) *Alert {
	return New(LevelError, message)
}

// NewWarning creates a new warning alert.
func NewWarning(message string) *Alert {
	return New(LevelWarning, message)
}

// NewSuccess creates a new success alert.
func NewSuccess(message string) *Alert {
	return New(LevelSuccess, message)
}

// WithDetails adds indented detail lines to the alert.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String returns the alert line without details.
func (a *Alert) String() string {
	return a.Level.Icon() + " " + a.Message
}

// WriteTo writes the alert line followed by its details.
func (a *Alert) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	b.WriteString(a.String())
	b.WriteByte('\n')
	for _, d := range a.Details {
		fmt.Fprintf(&b, "   %s\n", d)
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
