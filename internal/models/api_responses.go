package models

// SearchResponse is the body of a successful search request.
// Query echoes the normalized query the results were computed for.
type SearchResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
	Query       string       `json:"query"`
}

// SearchErrorResponse is returned with a server error status when the store fails.
type SearchErrorResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
	Error       string       `json:"error"`
}

// SelectionResponse acknowledges a recorded selection.
type SelectionResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse is the generic error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}
