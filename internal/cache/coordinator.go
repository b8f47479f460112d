package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/TemirB/opsboard/internal/domain"
	"github.com/TemirB/opsboard/internal/observability"
)

const defaultFetchTimeout = 10 * time.Second

// FetchFunc performs one fetch+transform round trip for a key.
type FetchFunc[T any] func(ctx context.Context) (T, error)

type CoordinatorConfig[T any] struct {
	Key      string
	Timeout  time.Duration
	Fallback Fallback[T]
	OnStore  func(Entry[T]) // called with every entry written to the store
	Logger   *zap.Logger
	Metrics  observability.Metrics
}

// Coordinator keeps one cache key fresh. Concurrent refreshes of the key are
// collapsed into a single upstream call whose result every caller shares.
type Coordinator[T any] struct {
	key      string
	store    *Store[T]
	fetch    FetchFunc[T]
	fallback Fallback[T]
	onStore  func(Entry[T])
	timeout  time.Duration
	group    singleflight.Group
	logger   *zap.Logger
	metrics  observability.Metrics
}

func NewCoordinator[T any](store *Store[T], fetch FetchFunc[T], cfg CoordinatorConfig[T]) *Coordinator[T] {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultFetchTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observability.Noop{}
	}
	return &Coordinator[T]{
		key:      cfg.Key,
		store:    store,
		fetch:    fetch,
		fallback: cfg.Fallback,
		onStore:  cfg.OnStore,
		timeout:  cfg.Timeout,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
	}
}

func (c *Coordinator[T]) Key() string { return c.key }

// Peek returns the cached entry without any I/O.
func (c *Coordinator[T]) Peek() (Entry[T], bool) { return c.store.Get(c.key) }

// EnsureFresh serves the cached value while it is within TTL and refreshes
// it otherwise. It never fails: on refresh errors it serves the stale value
// or the static default.
func (c *Coordinator[T]) EnsureFresh(ctx context.Context) Result[T] {
	if e, ok := c.store.Get(c.key); ok && !e.Expired(c.store.Now()) {
		c.metrics.IncCacheHit()
		return Result[T]{Value: e.Value, FetchedAt: e.FetchedAt, Provenance: ProvenanceCache}
	}
	c.metrics.IncCacheMiss()
	return c.refresh(ctx, false)
}

// ForceRefresh skips the TTL check but still joins an in-flight refresh.
// It reports ErrNoData only when the refresh failed and nothing was ever cached.
func (c *Coordinator[T]) ForceRefresh(ctx context.Context) (Result[T], error) {
	r := c.refresh(ctx, true)
	if r.Provenance == ProvenanceFallback {
		return r, fmt.Errorf("%w for %s: %w", domain.ErrNoData, c.key, r.Err)
	}
	return r, nil
}

func (c *Coordinator[T]) refresh(ctx context.Context, force bool) Result[T] {
	ch := c.group.DoChan(c.key, func() (any, error) {
		// A caller that saw an expired entry may start a flight right after
		// the previous one stored a fresh value.
		if e, ok := c.store.Get(c.key); ok && !force && !e.Expired(c.store.Now()) {
			return Result[T]{Value: e.Value, FetchedAt: e.FetchedAt, Provenance: ProvenanceCache}, nil
		}
		return c.attempt(ctx), nil
	})
	select {
	case res := <-ch:
		r := res.Val.(Result[T])
		if res.Shared {
			c.logger.Debug("joined in-flight refresh", zap.String("key", c.key))
		}
		return r
	case <-ctx.Done():
		// The flight keeps running for the other waiters; this caller gets
		// the best value available right now.
		cached, _ := c.store.Get(c.key)
		return Decide(Entry[T]{}, ctx.Err(), cached, c.fallback)
	}
}

type fetchOutcome[T any] struct {
	value T
	err   error
}

func (c *Coordinator[T]) attempt(ctx context.Context) Result[T] {
	fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	start := time.Now()
	done := make(chan fetchOutcome[T], 1)
	go func() {
		v, err := c.fetch(fctx)
		done <- fetchOutcome[T]{value: v, err: err}
	}()

	var out fetchOutcome[T]
	select {
	case out = <-done:
	case <-fctx.Done():
		out.err = fctx.Err()
	}
	if out.err != nil && errors.Is(out.err, context.DeadlineExceeded) && !errors.Is(out.err, domain.ErrNetwork) {
		out.err = fmt.Errorf("%w: fetch %s timed out after %s: %w", domain.ErrNetwork, c.key, c.timeout, out.err)
	}

	var fetched Entry[T]
	if out.err == nil {
		fetched = c.store.Set(c.key, out.value)
		if c.onStore != nil {
			c.onStore(fetched)
		}
	}
	cached, _ := c.store.Get(c.key)
	r := Decide(fetched, out.err, cached, c.fallback)

	ms := float64(time.Since(start).Microseconds()) / 1000.0
	c.metrics.ObserveRefresh(c.key, string(r.Provenance), ms)
	switch r.Provenance {
	case ProvenanceLive:
		c.logger.Info("cache refreshed",
			zap.String("key", c.key),
			zap.Float64("fetch_ms", ms),
		)
	case ProvenanceStale:
		c.logger.Warn("refresh failed, serving stale value",
			zap.String("key", c.key),
			zap.Time("fetched_at", r.FetchedAt),
			zap.Error(out.err),
		)
	default:
		c.logger.Error("refresh failed with empty cache, serving default",
			zap.String("key", c.key),
			zap.Error(out.err),
		)
	}
	return r
}
