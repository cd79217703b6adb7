// Package termstore provides an in-memory term store indexed by a patricia trie.
// It backs the service when no database is configured and stands in for
// PostgreSQL in tests.
package termstore

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tchap/go-patricia/v2/patricia"

	"autosuggest/internal/config"
	"autosuggest/internal/models"
	"autosuggest/internal/ranking"
	"autosuggest/internal/validation"
)

// Memory is a goroutine-safe in-memory term store.
// Keys in the trie are lower-cased terms, which gives case-insensitive identity.
type Memory struct {
	mu   sync.RWMutex
	trie *patricia.Trie
	size int
}

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{trie: patricia.NewTrie()}
}

// Seed inserts seed terms, skipping terms that already exist.
func (m *Memory) Seed(seed *config.SeedFile) int {
	if seed == nil {
		return 0
	}
	inserted := 0
	for _, s := range seed.Terms {
		t := models.Term{Term: s.Term, Popularity: s.Popularity}
		if s.Description != "" {
			desc := s.Description
			t.Description = &desc
		}
		if s.ImageRef != "" {
			ref := s.ImageRef
			t.ImageRef = &ref
		}
		if m.Add(t) {
			inserted++
		}
	}
	return inserted
}

// Add inserts a term, trimmed the way RecordSelection trims it.
// Returns false if the term already exists.
func (m *Memory) Add(t models.Term) bool {
	t.Term = validation.NormalizeTerm(t.Term)
	now := time.Now()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.trie.Insert(key(t.Term), &t) {
		return false
	}
	m.size++
	return true
}

// Len returns the number of stored terms.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.size
}

// GetTerm returns a copy of the stored term.
func (m *Memory) GetTerm(_ context.Context, term string) (*models.Term, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item := m.trie.Get(key(term))
	if item == nil {
		return nil, models.ErrTermNotFound
	}
	t := *item.(*models.Term)
	return &t, nil
}

// SearchTerms returns up to limit terms containing query in ranked order.
// Prefix matches come from the trie subtree; the remaining keys are scanned
// for substring-only matches only when prefix matches cannot fill the limit.
func (m *Memory) SearchTerms(ctx context.Context, query string, limit int) ([]models.Term, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var prefixed []models.Term
	m.trie.VisitSubtree(key(query), func(_ patricia.Prefix, item patricia.Item) error {
		prefixed = append(prefixed, *item.(*models.Term))
		return nil
	})
	ranking.Sort(query, prefixed)
	if len(prefixed) >= limit {
		return prefixed[:limit], nil
	}

	var substring []models.Term
	m.trie.Visit(func(p patricia.Prefix, item patricia.Item) error {
		k := string(p)
		if !strings.HasPrefix(k, query) && strings.Contains(k, query) {
			substring = append(substring, *item.(*models.Term))
		}
		return nil
	})
	ranking.Sort(query, substring)

	out := append(prefixed, substring...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// RandomTerms returns up to limit terms in uniformly random order.
func (m *Memory) RandomTerms(ctx context.Context, limit int) ([]models.Term, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	all := make([]models.Term, 0, m.size)
	m.trie.Visit(func(_ patricia.Prefix, item patricia.Item) error {
		all = append(all, *item.(*models.Term))
		return nil
	})
	m.mu.RUnlock()

	rand.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// TopTerms returns the n most popular terms.
func (m *Memory) TopTerms(ctx context.Context, n int) ([]models.Term, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	all := make([]models.Term, 0, m.size)
	m.trie.Visit(func(_ patricia.Prefix, item patricia.Item) error {
		all = append(all, *item.(*models.Term))
		return nil
	})
	m.mu.RUnlock()

	// Empty query puts every term in the prefix class, leaving popularity first.
	ranking.Sort("", all)
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

// IncrementPopularity adds one to the term's popularity under the write lock.
func (m *Memory) IncrementPopularity(ctx context.Context, term string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	item := m.trie.Get(key(term))
	if item == nil {
		return models.ErrTermNotFound
	}
	t := item.(*models.Term)
	t.Popularity++
	t.UpdatedAt = time.Now()
	return nil
}

func key(term string) patricia.Prefix {
	return patricia.Prefix(strings.ToLower(strings.TrimSpace(term)))
}

// Ping always succeeds; the store lives in process memory.
func (m *Memory) Ping(context.Context) error {
	return nil
}

// SeedTerms is Seed behind the context-aware signature the background
// reloader expects.
func (m *Memory) SeedTerms(ctx context.Context, seed *config.SeedFile) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return m.Seed(seed), nil
}
