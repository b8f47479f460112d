package service

import (
	"time"

	"github.com/TemirB/opsboard/internal/cache"
	"github.com/TemirB/opsboard/internal/domain"
)

type LookupSource string

const (
	SourceIndex LookupSource = "index"
	SourceScan  LookupSource = "scan"
)

type LookupStats struct {
	Source     LookupSource
	Provenance cache.Provenance
	IndexMs    float64
	ScanMs     float64
}

// Orders is the order list together with where it came from.
type Orders struct {
	Items      []domain.OrderRecord
	FetchedAt  time.Time
	Provenance cache.Provenance
}

// Health reports when each upstream was last fetched successfully.
type Health struct {
	OrdersFetchedAt time.Time `json:"orders_fetched_at"`
	RatesFetchedAt  time.Time `json:"rates_fetched_at"`
	OrdersCached    int       `json:"orders_cached"`
}

func convertToMs(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000.0
}
