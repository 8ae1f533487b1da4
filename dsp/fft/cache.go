package fft

import (
	"fmt"

	"github.com/cwbudde/algo-analytics/internal/workspace"
	"github.com/cwbudde/algo-analytics/logging"
)

// CacheOption configures a Cache.
type CacheOption = workspace.Option

// WithLogger logs workspace creation and teardown through l.
func WithLogger(l logging.Logger) CacheOption { return workspace.WithLogger(l) }

// WithMaxLength rejects transform lengths above n with ErrResourceExhausted.
func WithMaxLength(n int) CacheOption { return workspace.WithMaxKey(n) }

// WithMaxEntries limits how many distinct lengths may be cached at once.
func WithMaxEntries(n int) CacheOption { return workspace.WithMaxEntries(n) }

// Cache hands out at most one Workspace per transform length.
type Cache struct {
	ws *workspace.Cache[*Workspace]
}

// NewCache returns an empty workspace cache.
func NewCache(opts ...CacheOption) *Cache {
	opts = append([]CacheOption{workspace.WithName("fft")}, opts...)
	return &Cache{
		ws: workspace.New(NewWorkspace, (*Workspace).Release, opts...),
	}
}

// GetOrCreate returns the workspace for length n, building it on first use.
func (c *Cache) GetOrCreate(n int) (*Workspace, error) {
	if n < MinLength {
		return nil, fmt.Errorf("fft: length %d: %w", n, ErrInvalidLength)
	}
	return c.ws.Get(n)
}

// Len returns the number of cached workspaces.
func (c *Cache) Len() int { return c.ws.Len() }

// Lengths returns the cached transform lengths in ascending order.
func (c *Cache) Lengths() []int { return c.ws.Keys() }

// Teardown releases all workspaces. Subsequent requests build fresh ones.
func (c *Cache) Teardown() { c.ws.Teardown() }
