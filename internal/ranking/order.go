package ranking

import (
	"slices"
	"strings"
	"unicode/utf8"

	"autosuggest/internal/models"
)

// Match classes. Lower sorts first.
const (
	MatchPrefix    = 1
	MatchSubstring = 2
	MatchNone      = 0
)

// MatchClass classifies candidate against a normalized query.
func MatchClass(query, candidate string) int {
	lower := strings.ToLower(candidate)
	switch {
	case strings.HasPrefix(lower, query):
		return MatchPrefix
	case strings.Contains(lower, query):
		return MatchSubstring
	default:
		return MatchNone
	}
}

// Compare orders two matching terms for query: match class ascending,
// popularity descending, rune length ascending, then lower-cased term.
func Compare(query string, a, b models.Term) int {
	if ca, cb := MatchClass(query, a.Term), MatchClass(query, b.Term); ca != cb {
		return ca - cb
	}
	if a.Popularity != b.Popularity {
		if a.Popularity > b.Popularity {
			return -1
		}
		return 1
	}
	if la, lb := utf8.RuneCountInString(a.Term), utf8.RuneCountInString(b.Term); la != lb {
		return la - lb
	}
	return strings.Compare(strings.ToLower(a.Term), strings.ToLower(b.Term))
}

// Sort orders terms in place for query.
func Sort(query string, terms []models.Term) {
	slices.SortStableFunc(terms, func(a, b models.Term) int {
		return Compare(query, a, b)
	})
}

// Rank filters candidates to those matching query, sorts them and truncates to limit.
func Rank(query string, candidates []models.Term, limit int) []models.Term {
	matched := make([]models.Term, 0, len(candidates))
	for _, t := range candidates {
		if MatchClass(query, t.Term) != MatchNone {
			matched = append(matched, t)
		}
	}
	Sort(query, matched)
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}
