package autocomplete

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection_ZeroValue(t *testing.T) {
	var s Selection
	assert.Equal(t, NoSelection, s.Index())
}

func TestSelection_Moves(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		moves string // d = down, u = up
		want  []int
	}{
		{"down clamps at last", 2, "ddd", []int{0, 1, 1}},
		{"down on empty list", 0, "dd", []int{-1, -1}},
		{"up clamps at none", 3, "duu", []int{0, -1, -1}},
		{"single item", 1, "ddu", []int{0, 0, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Selection
			var got []int
			for _, m := range tt.moves {
				if m == 'd' {
					s.MoveDown(tt.n)
				} else {
					s.MoveUp()
				}
				got = append(got, s.Index())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelection_Commit(t *testing.T) {
	list := suggestions("javascript", "java")

	tests := []struct {
		name   string
		downs  int
		input  string
		want   string
		wantOK bool
	}{
		{"highlighted wins over input", 2, "ja", "java", true},
		{"free text is trimmed", 0, "  Go  ", "Go", true},
		{"case is preserved", 0, "TypeScript", "TypeScript", true},
		{"blank input", 0, "   ", "", false},
		{"empty input", 0, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Selection
			for range tt.downs {
				s.MoveDown(len(list))
			}
			got, ok := s.Commit(list, tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelection_CommitIndexBeyondList(t *testing.T) {
	var s Selection
	s.MoveDown(3)
	s.MoveDown(3)

	got, ok := s.Commit(suggestions("go"), "rust")
	assert.True(t, ok)
	assert.Equal(t, "rust", got, "falls back to input when the list shrank")
}

func TestSelection_Reset(t *testing.T) {
	var s Selection
	s.MoveDown(5)
	s.Reset()
	assert.Equal(t, NoSelection, s.Index())
}
