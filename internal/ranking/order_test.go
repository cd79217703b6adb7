package ranking

import (
	"testing"

	"autosuggest/internal/models"
)

func TestMatchClass(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		candidate string
		want      int
	}{
		{"prefix", "java", "javascript", MatchPrefix},
		{"exact", "java", "java", MatchPrefix},
		{"case insensitive prefix", "java", "JavaScript", MatchPrefix},
		{"substring only", "script", "javascript", MatchSubstring},
		{"no match", "java", "js", MatchNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchClass(tt.query, tt.candidate); got != tt.want {
				t.Errorf("MatchClass(%q, %q) = %d, want %d", tt.query, tt.candidate, got, tt.want)
			}
		})
	}
}

func TestRank_PopularityBeforeLength(t *testing.T) {
	candidates := []models.Term{
		{Term: "java", Popularity: 50},
		{Term: "javascript", Popularity: 80},
		{Term: "js", Popularity: 30},
	}

	got := Rank("java", candidates, 10)
	want := []string{"javascript", "java"}
	if len(got) != len(want) {
		t.Fatalf("Rank() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Term != want[i] {
			t.Errorf("Rank()[%d] = %q, want %q", i, got[i].Term, want[i])
		}
	}
}

func TestRank_PrefixBeforeSubstringRegardlessOfPopularity(t *testing.T) {
	candidates := []models.Term{
		{Term: "typescript", Popularity: 1000},
		{Term: "scriptable", Popularity: 1},
	}

	got := Rank("script", candidates, 10)
	if len(got) != 2 {
		t.Fatalf("Rank() len = %d, want 2", len(got))
	}
	if got[0].Term != "scriptable" {
		t.Errorf("Rank()[0] = %q, want prefix match %q first", got[0].Term, "scriptable")
	}
}

func TestRank_ShorterFirstOnEqualPopularity(t *testing.T) {
	candidates := []models.Term{
		{Term: "golang", Popularity: 10},
		{Term: "go", Popularity: 10},
		{Term: "gopher", Popularity: 10},
	}

	got := Rank("go", candidates, 10)
	want := []string{"go", "golang", "gopher"}
	for i := range want {
		if got[i].Term != want[i] {
			t.Errorf("Rank()[%d] = %q, want %q", i, got[i].Term, want[i])
		}
	}
}

func TestRank_TruncatesWithoutPadding(t *testing.T) {
	candidates := []models.Term{
		{Term: "rust", Popularity: 3},
		{Term: "ruby", Popularity: 2},
		{Term: "r", Popularity: 1},
	}

	if got := Rank("ru", candidates, 1); len(got) != 1 || got[0].Term != "rust" {
		t.Errorf("Rank(limit=1) = %v, want [rust]", got)
	}
	if got := Rank("ru", candidates, 10); len(got) != 2 {
		t.Errorf("Rank(limit=10) len = %d, want 2", len(got))
	}
}
