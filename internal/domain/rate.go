package domain

import "time"

const (
	RateSourceCBR      = "CBR"
	RateSourceFallback = "fallback"
)

// Rate is what the cache keeps for the currency feed. Derived figures are
// computed on read, see RateSnapshot.
type Rate struct {
	Current    float64   `json:"current"`
	LastUpdate time.Time `json:"last_update"`
	Source     string    `json:"source"`
}

// RateSnapshot is the public view of the cached rate.
type RateSnapshot struct {
	Current           float64   `json:"current"`
	CurrentWithBuffer float64   `json:"current_with_buffer"`
	Average30Days     float64   `json:"average_30_days"`
	BufferPercent     float64   `json:"buffer_percent"`
	LastUpdate        time.Time `json:"last_update"`
	Source            string    `json:"source"`
	Stale             bool      `json:"stale"`
}
