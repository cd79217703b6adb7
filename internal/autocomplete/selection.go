package autocomplete

import (
	"strings"

	"autosuggest/internal/models"
)

// NoSelection is the index reported when no suggestion is highlighted.
const NoSelection = -1

// Selection is a cursor over the current suggestion list.
// The zero value has nothing selected.
type Selection struct {
	pos int // index + 1, so the zero value means NoSelection
}

// Index returns the highlighted index, or NoSelection.
func (s Selection) Index() int {
	return s.pos - 1
}

// MoveDown advances the cursor, stopping at the last of n suggestions.
func (s *Selection) MoveDown(n int) {
	if s.pos < n {
		s.pos++
	}
}

// MoveUp moves the cursor back, stopping at NoSelection.
func (s *Selection) MoveUp() {
	if s.pos > 0 {
		s.pos--
	}
}

// Reset clears the selection.
func (s *Selection) Reset() {
	s.pos = 0
}

// Commit resolves the chosen term: the highlighted suggestion if any,
// otherwise the trimmed input text. It reports false when there is nothing
// to choose.
func (s Selection) Commit(suggestions []models.Suggestion, input string) (string, bool) {
	if i := s.Index(); i >= 0 && i < len(suggestions) {
		return suggestions[i].Term, true
	}
	if term := strings.TrimSpace(input); term != "" {
		return term, true
	}
	return "", false
}
