package transform

import (
	"fmt"
	"time"

	"github.com/TemirB/opsboard/internal/domain"
	"github.com/TemirB/opsboard/internal/upstream"
)

// Rate converts a feed entry quoted per Nominal units into roubles per unit.
func Rate(raw upstream.RawRate, at time.Time) (domain.Rate, error) {
	if raw.Nominal <= 0 {
		return domain.Rate{}, fmt.Errorf("%w: %s nominal %v", domain.ErrParse, raw.CharCode, raw.Nominal)
	}
	if raw.Value <= 0 {
		return domain.Rate{}, fmt.Errorf("%w: %s value %v", domain.ErrParse, raw.CharCode, raw.Value)
	}
	return domain.Rate{
		Current:    raw.Value / raw.Nominal,
		LastUpdate: at,
		Source:     domain.RateSourceCBR,
	}, nil
}
