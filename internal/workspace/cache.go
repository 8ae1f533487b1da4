// Package workspace implements the lookup-or-create cache shared by the
// transform, convolution and moving-statistics engines. Each cache keeps at
// most one workspace per integer key, never evicts, and is emptied only by
// Teardown.
package workspace

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/cwbudde/algo-analytics/logging"
)

// ErrResourceExhausted is returned when a configured limit would be exceeded.
// No entry is recorded for the failed request.
var ErrResourceExhausted = errors.New("workspace: resource exhausted")

type config struct {
	name       string
	logger     logging.Logger
	maxKey     int
	maxEntries int
}

// Option configures a Cache.
type Option func(*config)

// WithName sets the cache name reported in log fields.
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}

// WithLogger sets the logger used for creation and teardown messages.
func WithLogger(l logging.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMaxKey rejects keys above n. n <= 0 means unlimited.
func WithMaxKey(n int) Option {
	return func(c *config) { c.maxKey = n }
}

// WithMaxEntries limits the number of live workspaces. n <= 0 means unlimited.
func WithMaxEntries(n int) Option {
	return func(c *config) { c.maxEntries = n }
}

// Cache maps an integer key to exactly one workspace of type W.
// It is safe for concurrent use; the lock is held only across
// lookup-or-create, never while the caller uses a workspace.
type Cache[W any] struct {
	mu      sync.RWMutex
	items   map[int]W
	create  func(key int) (W, error)
	release func(W)
	cfg     config
	log     logging.Logger
}

// New returns an empty cache. create builds the workspace for a key on first
// use; release, if non-nil, is called for every workspace on Teardown.
func New[W any](create func(key int) (W, error), release func(W), opts ...Option) *Cache[W] {
	cfg := config{name: "workspace"}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	return &Cache[W]{
		items:   make(map[int]W),
		create:  create,
		release: release,
		cfg:     cfg,
		log:     logging.OrNoOp(cfg.logger).WithFields(logging.Fields{"cache": cfg.name}),
	}
}

// Get returns the workspace for key, creating it if none exists yet.
// Repeated calls with the same key return the identical workspace.
func (c *Cache[W]) Get(key int) (W, error) {
	c.mu.RLock()
	w, ok := c.items[key]
	c.mu.RUnlock()
	if ok {
		return w, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another goroutine may have won the race for the write lock.
	if w, ok := c.items[key]; ok {
		return w, nil
	}

	var zero W
	if c.cfg.maxKey > 0 && key > c.cfg.maxKey {
		return zero, fmt.Errorf("%s: key %d exceeds limit %d: %w", c.cfg.name, key, c.cfg.maxKey, ErrResourceExhausted)
	}
	if c.cfg.maxEntries > 0 && len(c.items) >= c.cfg.maxEntries {
		return zero, fmt.Errorf("%s: %d workspaces already allocated: %w", c.cfg.name, len(c.items), ErrResourceExhausted)
	}

	w, err := c.create(key)
	if err != nil {
		return zero, err
	}

	c.items[key] = w
	c.log.Info("workspace created", logging.Fields{"key": key, "entries": len(c.items)})

	return w, nil
}

// Len returns the number of live workspaces.
func (c *Cache[W]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Keys returns the keys of all live workspaces in ascending order.
func (c *Cache[W]) Keys() []int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.items))
}

// Teardown releases every workspace and empties the cache. Workspaces handed
// out earlier must not be used afterwards; the next Get builds a fresh one.
func (c *Cache[W]) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.items)
	if c.release != nil {
		for _, w := range c.items {
			c.release(w)
		}
	}
	clear(c.items)

	if n > 0 {
		c.log.Debug("workspaces released", logging.Fields{"count": n})
	}
}
