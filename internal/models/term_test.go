package models

import "testing"

func strPtr(s string) *string { return &s }

func TestSuggestion_ImageURL(t *testing.T) {
	tests := []struct {
		name     string
		ref      *string
		base     string
		expected string
	}{
		{"no image", nil, "https://cdn.example.com", ""},
		{"empty image", strPtr(""), "https://cdn.example.com", ""},
		{"no base url", strPtr("logos/go.svg"), "", ""},
		{"joined", strPtr("logos/go.svg"), "https://cdn.example.com", "https://cdn.example.com/logos/go.svg"},
		{"slashes collapsed", strPtr("/logos/go.svg"), "https://cdn.example.com/", "https://cdn.example.com/logos/go.svg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Suggestion{Term: "go", ImageRef: tt.ref}
			if got := s.ImageURL(tt.base); got != tt.expected {
				t.Errorf("ImageURL() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSuggestions_PreservesOrder(t *testing.T) {
	desc := "A language"
	terms := []Term{
		{Term: "javascript", Popularity: 80},
		{Term: "java", Popularity: 50, Description: &desc},
	}

	got := Suggestions(terms)
	if len(got) != 2 {
		t.Fatalf("Suggestions() len = %d, want 2", len(got))
	}
	if got[0].Term != "javascript" || got[1].Term != "java" {
		t.Errorf("Suggestions() order = [%s %s], want [javascript java]", got[0].Term, got[1].Term)
	}
	if got[1].Description == nil || *got[1].Description != desc {
		t.Errorf("Suggestions() dropped description")
	}
}
