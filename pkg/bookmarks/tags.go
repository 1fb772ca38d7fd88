package bookmarks

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Tags is a normalized tag set: trimmed, without empties, de-duplicated
// case-insensitively and sorted. The first spelling seen of a tag is kept.
// Membership tests are always case-insensitive.
type Tags []string

// ParseTags splits a whitespace separated tag string, the way Pinboard
// stores tags, and normalizes the result.
func ParseTags(raw string, lowercase bool) Tags {
	return NormalizeTags(strings.Fields(raw), lowercase)
}

// NormalizeTags builds a Tags set from raw tag strings.
func NormalizeTags(raw []string, lowercase bool) Tags {
	out := make(Tags, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if lowercase {
			tag = strings.ToLower(tag)
		}
		key := fold(tag)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	slices.SortStableFunc(out, func(a, b string) int {
		if c := strings.Compare(fold(a), fold(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return out
}

// fold returns the case-insensitive comparison key of a tag.
func fold(tag string) string {
	return cases.Fold().String(strings.TrimSpace(tag))
}

// Contains reports whether tag is in the set.
func (t Tags) Contains(tag string) bool {
	key := fold(tag)
	if key == "" {
		return false
	}
	for _, have := range t {
		if fold(have) == key {
			return true
		}
	}
	return false
}

// Intersects reports whether the two sets share at least one tag.
func (t Tags) Intersects(other Tags) bool {
	for _, tag := range other {
		if t.Contains(tag) {
			return true
		}
	}
	return false
}

// ContainsAll reports whether every tag of other is in t.
func (t Tags) ContainsAll(other Tags) bool {
	for _, tag := range other {
		if !t.Contains(tag) {
			return false
		}
	}
	return true
}

// Union returns t ∪ other. Spellings already in t win.
func (t Tags) Union(other Tags) Tags {
	merged := make([]string, 0, len(t)+len(other))
	merged = append(merged, t...)
	merged = append(merged, other...)
	return NormalizeTags(merged, false)
}

// With returns the set with tag added. An empty tag leaves the set unchanged.
func (t Tags) With(tag string) Tags {
	if strings.TrimSpace(tag) == "" || t.Contains(tag) {
		return t
	}
	return t.Union(Tags{tag})
}

// Equal reports set equality, ignoring case.
func (t Tags) Equal(other Tags) bool {
	return t.ContainsAll(other) && other.ContainsAll(t)
}

// Strings returns the tags as a plain slice, never nil.
func (t Tags) Strings() []string {
	if t == nil {
		return []string{}
	}
	return []string(t)
}
