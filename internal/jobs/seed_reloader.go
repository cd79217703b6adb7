package jobs

import (
	"context"
	"log/slog"
	"os"
	"time"

	"autosuggest/internal/config"
)

// Seeder inserts seed terms, leaving existing terms untouched.
type Seeder interface {
	SeedTerms(ctx context.Context, seed *config.SeedFile) (int, error)
}

// SeedReloader periodically re-reads the seed file so terms added to it
// out of band become searchable without a restart.
type SeedReloader struct {
	store    Seeder
	path     string
	interval time.Duration
	modTime  time.Time
}

// NewSeedReloader creates a new seed reloader.
func NewSeedReloader(store Seeder, path string, interval time.Duration) *SeedReloader {
	return &SeedReloader{
		store:    store,
		path:     path,
		interval: interval,
	}
}

// Start begins the background reload loop. It returns when ctx is done.
func (r *SeedReloader) Start(ctx context.Context) {
	slog.Info("seed reloader started", "path", r.path, "interval", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("seed reloader stopped")
			return
		case <-ticker.C:
			r.ReloadOnce(ctx)
		}
	}
}

// ReloadOnce loads the seed file if it changed since the last reload and
// returns the number of newly inserted terms.
func (r *SeedReloader) ReloadOnce(ctx context.Context) int {
	info, err := os.Stat(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("seed reloader: failed to stat seed file", "path", r.path, "error", err)
		}
		return 0
	}
	if !info.ModTime().After(r.modTime) {
		return 0
	}

	seed, err := config.LoadSeedFile(r.path)
	if err != nil {
		slog.Warn("seed reloader: failed to load seed file", "path", r.path, "error", err)
		return 0
	}

	n, err := r.store.SeedTerms(ctx, seed)
	if err != nil {
		slog.Error("seed reloader: failed to insert terms", "error", err)
		return n
	}
	r.modTime = info.ModTime()

	if n > 0 {
		slog.Info("seed reloader: inserted new terms", "count", n)
	}
	return n
}
