package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"

	"autosuggest/internal/feedback"
	"autosuggest/internal/logger"
	"autosuggest/internal/models"
	"autosuggest/internal/ranking"
	"autosuggest/internal/termstore"
)

type brokenStore struct{}

func (brokenStore) SearchTerms(context.Context, string, int) ([]models.Term, error) {
	return nil, errors.New("connection refused")
}

func (brokenStore) RandomTerms(context.Context, int) ([]models.Term, error) {
	return nil, errors.New("connection refused")
}

func (brokenStore) IncrementPopularity(context.Context, string) error {
	return errors.New("connection refused")
}

type testStore interface {
	ranking.Store
	feedback.Store
}

func newTestApp(store testStore) *fiber.App {
	app := fiber.New()
	search := NewSearchHandler(ranking.NewEngine(store))
	selections := NewSelectionHandler(feedback.NewService(store, logger.Discard(), nil))

	app.Get("/search", search.Search)
	app.Post("/api/autocomplete", selections.Record)
	app.All("/api/autocomplete", selections.MethodNotAllowed)
	return app
}

func seededStore() *termstore.Memory {
	store := termstore.NewMemory()
	desc := "Language of the web"
	ref := "logos/javascript.svg"
	store.Add(models.Term{Term: "java", Popularity: 50})
	store.Add(models.Term{Term: "javascript", Popularity: 80, Description: &desc, ImageRef: &ref})
	store.Add(models.Term{Term: "js", Popularity: 30})
	return store
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return out
}

func TestSearch(t *testing.T) {
	app := newTestApp(seededStore())

	req, _ := http.NewRequest(http.MethodGet, "/search?q=%20JAVA%20&limit=10", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body := decode[models.SearchResponse](t, resp)
	if body.Query != "java" {
		t.Errorf("query = %q, want %q", body.Query, "java")
	}
	if len(body.Suggestions) != 2 {
		t.Fatalf("suggestions = %v, want 2", body.Suggestions)
	}
	if body.Suggestions[0].Term != "javascript" || body.Suggestions[1].Term != "java" {
		t.Errorf("order = [%s %s], want [javascript java]", body.Suggestions[0].Term, body.Suggestions[1].Term)
	}
	if body.Suggestions[0].ImageRef == nil || *body.Suggestions[0].ImageRef != "logos/javascript.svg" {
		t.Errorf("image_ref missing from response")
	}
}

func TestSearch_InvalidLimitDefaults(t *testing.T) {
	store := termstore.NewMemory()
	for _, s := range []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8", "a9", "a10", "a11"} {
		store.Add(models.Term{Term: s})
	}
	app := newTestApp(store)

	for _, limit := range []string{"abc", "0", "-1", ""} {
		req, _ := http.NewRequest(http.MethodGet, "/search?q=a&limit="+limit, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		body := decode[models.SearchResponse](t, resp)
		if len(body.Suggestions) != 10 {
			t.Errorf("limit=%q: got %d suggestions, want 10", limit, len(body.Suggestions))
		}
	}
}

func TestSearch_LargeLimit(t *testing.T) {
	store := termstore.NewMemory()
	for i := range 150 {
		store.Add(models.Term{Term: fmt.Sprintf("t%03d", i)})
	}
	app := newTestApp(store)

	req, _ := http.NewRequest(http.MethodGet, "/search?q=t&limit=150", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body := decode[models.SearchResponse](t, resp)
	if len(body.Suggestions) != 150 {
		t.Errorf("got %d suggestions, want all 150", len(body.Suggestions))
	}
}

func TestSearch_EmptyQueryReturnsSample(t *testing.T) {
	app := newTestApp(seededStore())

	req, _ := http.NewRequest(http.MethodGet, "/search?limit=2", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body := decode[models.SearchResponse](t, resp)
	if body.Query != "" {
		t.Errorf("query = %q, want empty", body.Query)
	}
	if len(body.Suggestions) != 2 {
		t.Errorf("suggestions = %d, want 2", len(body.Suggestions))
	}
}

func TestSearch_StoreFailure(t *testing.T) {
	app := newTestApp(brokenStore{})

	req, _ := http.NewRequest(http.MethodGet, "/search?q=java", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
	body := decode[models.SearchErrorResponse](t, resp)
	if body.Suggestions == nil || len(body.Suggestions) != 0 {
		t.Errorf("suggestions = %v, want empty array", body.Suggestions)
	}
	if body.Error == "" {
		t.Error("error message missing")
	}
}

func TestRecord_Form(t *testing.T) {
	store := seededStore()
	app := newTestApp(store)

	form := url.Values{"term": {"  Java  "}}
	req, _ := http.NewRequest(http.MethodPost, "/api/autocomplete", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body := decode[models.SelectionResponse](t, resp); !body.Success {
		t.Error("success = false")
	}

	got, _ := store.GetTerm(context.Background(), "java")
	if got.Popularity != 51 {
		t.Errorf("popularity = %d, want 51", got.Popularity)
	}
}

func TestRecord_JSON(t *testing.T) {
	store := seededStore()
	app := newTestApp(store)

	req, _ := http.NewRequest(http.MethodPost, "/api/autocomplete", strings.NewReader(`{"term":"js"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	got, _ := store.GetTerm(context.Background(), "js")
	if got.Popularity != 31 {
		t.Errorf("popularity = %d, want 31", got.Popularity)
	}
}

func TestRecord_Errors(t *testing.T) {
	tests := []struct {
		name       string
		store      testStore
		method     string
		body       string
		wantStatus int
	}{
		{"missing term", seededStore(), http.MethodPost, "", http.StatusBadRequest},
		{"empty term", seededStore(), http.MethodPost, "term=", http.StatusBadRequest},
		{"whitespace term", seededStore(), http.MethodPost, "term=%20%20", http.StatusBadRequest},
		{"wrong method", seededStore(), http.MethodPut, "term=java", http.StatusMethodNotAllowed},
		{"delete", seededStore(), http.MethodDelete, "", http.StatusMethodNotAllowed},
		{"store failure", brokenStore{}, http.MethodPost, "term=java", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(tt.store)
			req, _ := http.NewRequest(tt.method, "/api/autocomplete", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if body := decode[models.ErrorResponse](t, resp); body.Error == "" {
				t.Error("error message missing")
			}
		})
	}
}

func TestRecord_UnknownTermIsAccepted(t *testing.T) {
	store := seededStore()
	app := newTestApp(store)

	req, _ := http.NewRequest(http.MethodPost, "/api/autocomplete", strings.NewReader("term=cobol"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if store.Len() != 3 {
		t.Errorf("Len() = %d, selection must not create terms", store.Len())
	}
}
