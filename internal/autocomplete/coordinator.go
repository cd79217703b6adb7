package autocomplete

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"autosuggest/internal/models"
	"autosuggest/internal/validation"
)

// Defaults applied by NewCoordinator.
const (
	DefaultDelay           = 150 * time.Millisecond
	DefaultFeedbackTimeout = 5 * time.Second
)

// ErrStaleResponse marks a fetch result for a query that is no longer current.
// Such results are cached but never shown.
var ErrStaleResponse = errors.New("stale response")

// State is the coordinator's position in the fetch cycle.
type State int

const (
	Idle State = iota
	Debouncing
	Fetching
	Settled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Debouncing:
		return "debouncing"
	case Fetching:
		return "fetching"
	case Settled:
		return "settled"
	default:
		return "unknown"
	}
}

// Fetcher runs a ranking query. The response echoes the normalized query
// the server actually matched.
type Fetcher interface {
	Fetch(ctx context.Context, query string, limit int) (*models.SearchResponse, error)
}

// Recorder reports a chosen term.
type Recorder interface {
	RecordSelection(ctx context.Context, term string) error
}

// Timer is a pending debounce callback.
type Timer interface {
	Stop() bool
}

// Snapshot is a copy of the coordinator's visible state.
type Snapshot struct {
	Input       string
	Query       string
	Suggestions []models.Suggestion
	Selected    int
	State       State
}

// Options configures a Coordinator. Zero values take defaults.
type Options struct {
	Delay           time.Duration
	Limit           int
	FeedbackTimeout time.Duration

	// Initial seeds the suggestion list before any input.
	Initial []models.Suggestion
	Cache   *Cache
	Logger  *slog.Logger

	// OnUpdate receives every state change. It runs while the coordinator
	// is locked and must not call back into it.
	OnUpdate func(Snapshot)
	// OnSearch is notified once per chosen term.
	OnSearch func(term string)

	AfterFunc func(d time.Duration, f func()) Timer
}

// Coordinator debounces input, serves repeated queries from the cache,
// and owns the current suggestion list and selection.
type Coordinator struct {
	fetcher  Fetcher
	recorder Recorder
	cache    *Cache
	opts     Options
	log      *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu          sync.Mutex
	input       string
	query       string
	suggestions []models.Suggestion
	sel         Selection
	state       State
	timer       Timer
	generation  uint64
	closed      bool
}

// NewCoordinator creates a coordinator in the Idle state.
func NewCoordinator(fetcher Fetcher, recorder Recorder, opts Options) *Coordinator {
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	opts.Limit = validation.CoerceLimit(opts.Limit)
	if opts.FeedbackTimeout <= 0 {
		opts.FeedbackTimeout = DefaultFeedbackTimeout
	}
	if opts.Cache == nil {
		opts.Cache = NewCache()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.AfterFunc == nil {
		opts.AfterFunc = func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		fetcher:     fetcher,
		recorder:    recorder,
		cache:       opts.Cache,
		opts:        opts,
		log:         opts.Logger,
		ctx:         ctx,
		cancel:      cancel,
		suggestions: clone(opts.Initial),
		state:       Idle,
	}
}

// SetInput records new raw input and restarts the debounce window.
func (c *Coordinator) SetInput(raw string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.input = raw
	c.generation++
	gen := c.generation
	query := validation.NormalizeQuery(raw)

	// At most one live timer: stop the old one before arming the new one.
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = c.opts.AfterFunc(c.opts.Delay, func() { c.settle(gen, query) })

	c.transition(Debouncing)
}

// settle runs when the debounce window for generation gen elapses. query is
// the input as typed when the timer was armed; a later commit that replaces
// the input does not change it.
func (c *Coordinator) settle(gen uint64, query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.generation {
		return
	}
	c.timer = nil
	c.query = query

	if query == "" {
		c.suggestions = []models.Suggestion{}
		c.transition(Idle)
		return
	}

	if cached, ok := c.cache.Get(query); ok {
		c.log.Debug("suggestion cache hit", "query", query)
		c.suggestions = cached
		c.transition(Settled)
		return
	}

	c.transition(Fetching)
	c.wg.Add(1)
	go c.fetch(gen, query)
}

func (c *Coordinator) fetch(gen uint64, query string) {
	defer c.wg.Done()

	resp, err := c.fetcher.Fetch(c.ctx, query, c.opts.Limit)

	var echoed string
	if err == nil {
		echoed = validation.NormalizeQuery(resp.Query)
		c.cache.Put(echoed, resp.Suggestions)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if gen != c.generation || (err == nil && echoed != c.query) {
		c.log.Debug("discarding suggestions", "query", query, "echoed", echoed, "current", c.query, "error", ErrStaleResponse)
		return
	}

	if err != nil {
		c.log.Warn("failed to fetch suggestions", "query", query, "error", err)
		c.suggestions = []models.Suggestion{}
	} else {
		c.suggestions = clone(resp.Suggestions)
	}
	c.transition(Settled)
}

// transition enters state, resets the selection and publishes. Callers hold mu.
func (c *Coordinator) transition(state State) {
	c.state = state
	c.sel.Reset()
	c.publish()
}

func (c *Coordinator) publish() {
	if c.opts.OnUpdate != nil {
		c.opts.OnUpdate(c.snapshot())
	}
}

// MoveDown highlights the next suggestion.
func (c *Coordinator) MoveDown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sel.MoveDown(len(c.suggestions))
	c.publish()
}

// MoveUp highlights the previous suggestion, or none.
func (c *Coordinator) MoveUp() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sel.MoveUp()
	c.publish()
}

// Cancel clears the selection, keeping the input and suggestions.
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sel.Reset()
	c.publish()
}

// Commit chooses the highlighted suggestion, or the trimmed input when
// nothing is highlighted. It reports false when there is nothing to choose.
func (c *Coordinator) Commit() (string, bool) {
	c.mu.Lock()
	term, ok := c.sel.Commit(c.suggestions, c.input)
	if !ok || c.closed {
		c.mu.Unlock()
		return "", false
	}
	c.choose(term)
	c.mu.Unlock()

	c.notify(term)
	return term, true
}

// Choose commits the suggestion at index i, as a pointer click does.
func (c *Coordinator) Choose(i int) (string, bool) {
	c.mu.Lock()
	if c.closed || i < 0 || i >= len(c.suggestions) {
		c.mu.Unlock()
		return "", false
	}
	term := c.suggestions[i].Term
	c.choose(term)
	c.mu.Unlock()

	c.notify(term)
	return term, true
}

// choose replaces the input with term and records the selection in the
// background. Callers hold mu.
func (c *Coordinator) choose(term string) {
	c.input = term
	c.sel.Reset()
	c.publish()

	if c.recorder == nil {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), c.opts.FeedbackTimeout)
		defer cancel()
		if err := c.recorder.RecordSelection(ctx, term); err != nil {
			c.log.Warn("failed to record selection", "term", term, "error", err)
		}
	}()
}

func (c *Coordinator) notify(term string) {
	if c.opts.OnSearch != nil {
		c.opts.OnSearch(term)
	}
}

// Snapshot returns the current visible state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Coordinator) snapshot() Snapshot {
	return Snapshot{
		Input:       c.input,
		Query:       c.query,
		Suggestions: clone(c.suggestions),
		Selected:    c.sel.Index(),
		State:       c.state,
	}
}

// Close stops the pending timer, cancels in-flight fetches and waits for
// background work to finish. No fetch is issued after Close.
func (c *Coordinator) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
}
