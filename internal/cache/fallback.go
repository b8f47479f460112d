package cache

import "time"

// Provenance tells the caller where a returned value came from.
type Provenance string

const (
	ProvenanceLive     Provenance = "live"
	ProvenanceCache    Provenance = "cache"
	ProvenanceStale    Provenance = "stale"
	ProvenanceFallback Provenance = "fallback"
)

type Result[T any] struct {
	Value      T
	FetchedAt  time.Time
	Provenance Provenance
	// Err is the refresh error behind a stale or fallback result.
	Err error
}

// Fallback builds the static default served when nothing was ever fetched.
type Fallback[T any] func() T

// Decide applies the fallback policy to the outcome of one refresh attempt:
// a fresh value wins, then any previously cached value (stale or not), then
// the static default.
func Decide[T any](fetched Entry[T], fetchErr error, cached Entry[T], def Fallback[T]) Result[T] {
	if fetchErr == nil && fetched.Present() {
		return Result[T]{Value: fetched.Value, FetchedAt: fetched.FetchedAt, Provenance: ProvenanceLive}
	}
	if cached.Present() {
		return Result[T]{Value: cached.Value, FetchedAt: cached.FetchedAt, Provenance: ProvenanceStale, Err: fetchErr}
	}
	var v T
	if def != nil {
		v = def()
	}
	return Result[T]{Value: v, Provenance: ProvenanceFallback, Err: fetchErr}
}
