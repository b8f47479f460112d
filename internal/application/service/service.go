package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/TemirB/opsboard/internal/cache"
	"github.com/TemirB/opsboard/internal/config"
	"github.com/TemirB/opsboard/internal/domain"
	"github.com/TemirB/opsboard/internal/observability"
	"github.com/TemirB/opsboard/internal/transform"
	"github.com/TemirB/opsboard/internal/upstream"
)

//go:generate mockgen -source internal/application/service/service.go -destination=internal/application/service/service_mock_test.go -package=service

const (
	KeyOrders = "orders"
	KeyRates  = "rates"
)

type Upstream interface {
	FetchOrders(ctx context.Context) ([]upstream.RawOrder, error)
	FetchRate(ctx context.Context, currency string) (upstream.RawRate, error)
}

type Config struct {
	Orders  config.Orders
	Rates   config.Rates
	Average transform.AverageStrategy
	Now     cache.Clock
}

// Service owns the order and rate caches and is the only way callers reach
// upstream data. Reads never fail; only the force operations report errors.
type Service struct {
	orders   *cache.Coordinator[[]domain.OrderRecord]
	rates    *cache.Coordinator[domain.Rate]
	index    *cache.OrderIndex
	currency string
	buffer   transform.Buffer
	average  transform.AverageStrategy
	now      cache.Clock
	logger   *zap.Logger
	metrics  observability.Metrics
}

func NewService(up Upstream, cfg Config, logger *zap.Logger, metrics observability.Metrics) (*Service, error) {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Average == nil {
		cfg.Average = transform.CurrentAverage{}
	}
	index, err := cache.NewOrderIndex(cfg.Orders.IndexSize)
	if err != nil {
		return nil, err
	}

	s := &Service{
		index:    index,
		currency: cfg.Rates.Currency,
		buffer:   transform.Buffer{Percent: cfg.Rates.BufferPercent},
		average:  cfg.Average,
		now:      cfg.Now,
		logger:   logger,
		metrics:  metrics,
	}

	s.orders = cache.NewCoordinator(
		cache.NewStore[[]domain.OrderRecord](cfg.Orders.TTL, cfg.Now),
		func(ctx context.Context) ([]domain.OrderRecord, error) {
			raw, err := up.FetchOrders(ctx)
			if err != nil {
				return nil, err
			}
			return transform.Orders(raw), nil
		},
		cache.CoordinatorConfig[[]domain.OrderRecord]{
			Key:      KeyOrders,
			Timeout:  cfg.Orders.Timeout,
			Fallback: func() []domain.OrderRecord { return []domain.OrderRecord{} },
			OnStore:  s.index.Fill,
			Logger:   logger,
			Metrics:  metrics,
		},
	)

	defaultRate := cfg.Rates.DefaultRate
	s.rates = cache.NewCoordinator(
		cache.NewStore[domain.Rate](cfg.Rates.TTL, cfg.Now),
		func(ctx context.Context) (domain.Rate, error) {
			raw, err := up.FetchRate(ctx, s.currency)
			if err != nil {
				return domain.Rate{}, err
			}
			return transform.Rate(raw, s.now())
		},
		cache.CoordinatorConfig[domain.Rate]{
			Key:     KeyRates,
			Timeout: cfg.Rates.Timeout,
			Fallback: func() domain.Rate {
				return domain.Rate{Current: defaultRate, LastUpdate: s.now(), Source: domain.RateSourceFallback}
			},
			OnStore: func(e cache.Entry[domain.Rate]) { s.average.Observe(e.Value.Current, e.Value.LastUpdate) },
			Logger:  logger,
			Metrics: metrics,
		},
	)
	return s, nil
}

// GetOrders returns the cached orders, refreshing them once the TTL expired.
func (s *Service) GetOrders(ctx context.Context) Orders {
	r := s.orders.EnsureFresh(ctx)
	return Orders{Items: r.Value, FetchedAt: r.FetchedAt, Provenance: r.Provenance}
}

func (s *Service) GetOrderByID(ctx context.Context, id string) (*domain.OrderRecord, error) {
	o, _, err := s.GetOrderByIDWithStats(ctx, id)
	return o, err
}

func (s *Service) GetOrderByIDWithStats(ctx context.Context, id string) (*domain.OrderRecord, LookupStats, error) {
	var st LookupStats

	r := s.orders.EnsureFresh(ctx)
	st.Provenance = r.Provenance

	tIndex := time.Now()
	if order, ok := s.index.Get(id); ok {
		st.Source = SourceIndex
		st.IndexMs = convertToMs(tIndex)
		s.metrics.ObserveLookup(string(st.Source), st.IndexMs, 0)
		return order, st, nil
	}
	st.IndexMs = convertToMs(tIndex)

	tScan := time.Now()
	for i := range r.Value {
		if r.Value[i].ID != id {
			continue
		}
		order := r.Value[i]
		st.Source = SourceScan
		st.ScanMs = convertToMs(tScan)
		if !s.index.Promote(&order, r.FetchedAt) {
			s.logger.Debug("Orders refreshed during scan, not indexing",
				zap.String("order_id", id),
			)
		}
		s.metrics.ObserveLookup(string(st.Source), st.IndexMs, st.ScanMs)
		s.logger.Debug("Order found by scan",
			zap.String("order_id", id),
			zap.Float64("scan_ms", st.ScanMs),
		)
		return &order, st, nil
	}
	st.ScanMs = convertToMs(tScan)

	s.logger.Info("Can't find order",
		zap.String("order_id", id),
		zap.String("provenance", string(r.Provenance)),
	)
	return nil, st, domain.ErrNotFound
}

// ForceSyncOrders refetches orders regardless of TTL. It fails only when the
// refetch failed and no orders were ever loaded.
func (s *Service) ForceSyncOrders(ctx context.Context) (domain.SyncResult, error) {
	r, err := s.orders.ForceRefresh(ctx)
	if err != nil {
		return domain.SyncResult{}, err
	}
	return domain.SyncResult{
		Imported: len(r.Value),
		LastSync: r.FetchedAt,
		Stale:    r.Provenance == cache.ProvenanceStale,
	}, nil
}

func (s *Service) GetCurrencyRates(ctx context.Context) domain.RateSnapshot {
	return s.snapshot(s.rates.EnsureFresh(ctx))
}

func (s *Service) ForceRefreshRates(ctx context.Context) (domain.RateSnapshot, error) {
	r, err := s.rates.ForceRefresh(ctx)
	if err != nil {
		return domain.RateSnapshot{}, err
	}
	return s.snapshot(r), nil
}

func (s *Service) snapshot(r cache.Result[domain.Rate]) domain.RateSnapshot {
	snap := transform.Snapshot(r.Value, s.buffer, s.average, s.now())
	snap.Stale = r.Provenance == cache.ProvenanceStale
	return snap
}

// Warm loads both caches concurrently. Failures are already handled by the
// fallback policy, so Warm only logs what it ended up with.
func (s *Service) Warm(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error {
		r := s.orders.EnsureFresh(ctx)
		s.logger.Info("Orders warmed",
			zap.Int("count", len(r.Value)),
			zap.String("provenance", string(r.Provenance)),
		)
		return nil
	})
	g.Go(func() error {
		r := s.rates.EnsureFresh(ctx)
		s.logger.Info("Rates warmed",
			zap.Float64("current", r.Value.Current),
			zap.String("provenance", string(r.Provenance)),
		)
		return nil
	})
	_ = g.Wait()
}

func (s *Service) Health() Health {
	var h Health
	if e, ok := s.orders.Peek(); ok {
		h.OrdersFetchedAt = e.FetchedAt
		h.OrdersCached = len(e.Value)
	}
	if e, ok := s.rates.Peek(); ok {
		h.RatesFetchedAt = e.FetchedAt
	}
	return h
}
