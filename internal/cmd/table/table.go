// Package table converts run results into rows for table output.
package table

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data is a rendered table: headers, rows and optional per-column alignment.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align
}

// Headers title-cases column keys such as "unmanaged_duplicates".
func Headers(keys ...string) []string {
	caser := cases.Title(language.English)
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = caser.String(strings.ReplaceAll(k, "_", " "))
	}
	return out
}
