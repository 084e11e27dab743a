package domain

import (
	"slices"
	"strings"
)

// SearchHistory holds past queries, most recent first, without duplicates.
// Every method returns a new slice and leaves the receiver untouched.
type SearchHistory []string

// Add prepends query unless it is blank or already present.
func (h SearchHistory) Add(query string) SearchHistory {
	if strings.TrimSpace(query) == "" || h.Contains(query) {
		return h
	}

	out := make(SearchHistory, 0, len(h)+1)
	out = append(out, query)
	return append(out, h...)
}

// Remove drops the exact match of query, if any.
func (h SearchHistory) Remove(query string) SearchHistory {
	idx := slices.Index(h, query)
	if idx < 0 {
		return h
	}
	return slices.Delete(slices.Clone(h), idx, idx+1)
}

func (h SearchHistory) Clear() SearchHistory {
	return SearchHistory{}
}

func (h SearchHistory) Contains(query string) bool {
	return slices.Contains(h, query)
}
