// Package filter decides which tools are visible for a search query and a
// selected category.
package filter

import (
	"sort"
	"strings"

	"github.com/ryan-rushton/unilaunch/internal/config"
)

// All selects every category.
const All = "All"

// Matches reports whether every whitespace-separated token of query appears,
// case-insensitively, in the tool's name, type, path, category or description.
func Matches(t config.Tool, query string) bool {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return true
	}
	hay := strings.ToLower(strings.Join([]string{t.Name, t.Type, t.Path, t.Category, t.Description}, " "))
	for _, tok := range tokens {
		if !strings.Contains(hay, tok) {
			return false
		}
	}
	return true
}

// InCategory reports whether t belongs to category. All and "" match anything.
func InCategory(t config.Tool, category string) bool {
	return category == "" || category == All || t.CategoryOrDefault() == category
}

// Visible returns the indexes of tools passing both filters, in document order.
func Visible(tools []config.Tool, query, category string) []int {
	var out []int
	for i, t := range tools {
		if InCategory(t, category) && Matches(t, query) {
			out = append(out, i)
		}
	}
	return out
}

// Categories returns All followed by the sorted distinct tool categories.
func Categories(tools []config.Tool) []string {
	seen := make(map[string]struct{})
	for _, t := range tools {
		seen[t.CategoryOrDefault()] = struct{}{}
	}
	delete(seen, All)

	cats := make([]string, 0, len(seen))
	for c := range seen {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return append([]string{All}, cats...)
}
