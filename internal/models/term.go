package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Term is a persisted suggestion candidate. Identity is case-insensitive.
type Term struct {
	ID          uuid.UUID `json:"id"`
	Term        string    `json:"term"`
	Popularity  int64     `json:"popularity"`
	Description *string   `json:"description,omitempty"`
	ImageRef    *string   `json:"image_ref,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Suggestion projects the term into the shape returned to clients.
func (t *Term) Suggestion() Suggestion {
	return Suggestion{
		Term:        t.Term,
		Popularity:  t.Popularity,
		Description: t.Description,
		ImageRef:    t.ImageRef,
	}
}

// Suggestion is a read-only projection of a Term for one query response.
type Suggestion struct {
	Term        string  `json:"term"`
	Popularity  int64   `json:"popularity"`
	Description *string `json:"description,omitempty"`
	ImageRef    *string `json:"image_ref,omitempty"`
}

// HasImage reports whether the suggestion carries an image reference.
func (s Suggestion) HasImage() bool {
	return s.ImageRef != nil && *s.ImageRef != ""
}

// ImageURL resolves the image reference against the hosting base URL.
// Returns "" when there is no image or no base URL.
func (s Suggestion) ImageURL(baseURL string) string {
	if !s.HasImage() || baseURL == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(*s.ImageRef, "/")
}

// Suggestions converts terms to suggestions, preserving order.
func Suggestions(terms []Term) []Suggestion {
	out := make([]Suggestion, 0, len(terms))
	for i := range terms {
		out = append(out, terms[i].Suggestion())
	}
	return out
}
