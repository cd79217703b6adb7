package autocomplete

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"autosuggest/internal/models"
)

// fetchTimeout bounds a shared search request, which outlives the caller
// that started it.
const fetchTimeout = 10 * time.Second

// Client talks to the suggestion server over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	group   singleflight.Group
}

// NewClient creates a client for the server at baseURL.
// A nil httpClient uses http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// Fetch runs GET /search. Concurrent fetches of the same query and limit
// share one request. Cancelling ctx abandons the wait but not the shared
// request, so other callers still receive its result.
func (c *Client) Fetch(ctx context.Context, query string, limit int) (*models.SearchResponse, error) {
	key := query + "\x00" + strconv.Itoa(limit)
	ch := c.group.DoChan(key, func() (any, error) {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()
		return c.search(sctx, query, limit)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.SearchResponse), nil
	}
}

func (c *Client) search(ctx context.Context, query string, limit int) (*models.SearchResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body models.SearchErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return nil, fmt.Errorf("search %q: %w", query, statusError(resp.StatusCode, body.Error))
	}

	var out models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	if out.Suggestions == nil {
		out.Suggestions = []models.Suggestion{}
	}
	return &out, nil
}

// RecordSelection posts the chosen term to /api/autocomplete.
func (c *Client) RecordSelection(ctx context.Context, term string) error {
	form := url.Values{"term": {term}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/autocomplete", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("record selection %q: %w", term, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	var body models.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return fmt.Errorf("record selection %q: %w", term, statusError(resp.StatusCode, body.Error))
}

// statusError maps a server error status onto the shared sentinels.
func statusError(code int, msg string) error {
	if msg == "" {
		msg = http.StatusText(code)
	}
	switch {
	case code == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", models.ErrInvalidTerm, msg)
	case code >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", models.ErrStoreUnavailable, msg)
	default:
		return fmt.Errorf("status %d: %s", code, msg)
	}
}
