package tui

import (
	"github.com/sahilm/fuzzy"

	"github.com/aayushbajaj/jexi/internal/dictionary"
)

// entrySource adapts dictionary entries to fuzzy.Source.
type entrySource []dictionary.Entry

func (s entrySource) String(i int) string { return s[i].Name }
func (s entrySource) Len() int            { return len(s) }

// filterEntries returns indices of entries matching query, best match first.
// An empty query keeps every entry in its original order.
func filterEntries(entries []dictionary.Entry, query string) []int {
	if query == "" {
		all := make([]int, len(entries))
		for i := range all {
			all[i] = i
		}
		return all
	}

	matches := fuzzy.FindFrom(query, entrySource(entries))
	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = m.Index
	}
	return out
}
