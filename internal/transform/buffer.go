package transform

import (
	"fmt"
	"sync"
	"time"

	"github.com/TemirB/opsboard/internal/domain"
)

const (
	AverageCurrent = "current"
	AverageWindow  = "window"
)

type Buffer struct {
	Percent float64
}

func (b Buffer) Apply(current float64) float64 {
	return current * (1 + b.Percent)
}

// AverageStrategy derives the trailing average figure of the rate snapshot.
type AverageStrategy interface {
	// Observe is called with every freshly fetched rate.
	Observe(current float64, at time.Time)
	Average(current float64, now time.Time) float64
}

// CurrentAverage reports the current rate as the average.
type CurrentAverage struct{}

func (CurrentAverage) Observe(float64, time.Time) {}

func (CurrentAverage) Average(current float64, _ time.Time) float64 { return current }

type sample struct {
	value float64
	at    time.Time
}

// SampleWindow averages the rates observed by this process within Window.
// It knows nothing before process start, so early values lean on few samples.
type SampleWindow struct {
	Window time.Duration

	mu      sync.Mutex
	samples []sample
}

func NewSampleWindow(window time.Duration) *SampleWindow {
	return &SampleWindow{Window: window}
}

func (w *SampleWindow) Observe(current float64, at time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.samples = append(w.samples, sample{value: current, at: at})
	w.trim(at)
}

func (w *SampleWindow) Average(current float64, now time.Time) float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.trim(now)
	if len(w.samples) == 0 {
		return current
	}
	var sum float64
	for _, s := range w.samples {
		sum += s.value
	}
	return sum / float64(len(w.samples))
}

func (w *SampleWindow) trim(now time.Time) {
	cut := now.Add(-w.Window)
	i := 0
	for i < len(w.samples) && w.samples[i].at.Before(cut) {
		i++
	}
	if i > 0 {
		w.samples = append(w.samples[:0], w.samples[i:]...)
	}
}

// NewAverageStrategy picks a strategy by its config name.
func NewAverageStrategy(name string, window time.Duration) (AverageStrategy, error) {
	switch name {
	case "", AverageCurrent:
		return CurrentAverage{}, nil
	case AverageWindow:
		if window <= 0 {
			return nil, fmt.Errorf("%w: average window %s", domain.ErrValidation, window)
		}
		return NewSampleWindow(window), nil
	}
	return nil, fmt.Errorf("%w: unknown average strategy %q", domain.ErrValidation, name)
}

// Snapshot builds the public rate view. Derived figures are computed here
// on every read and never cached.
func Snapshot(rate domain.Rate, buf Buffer, avg AverageStrategy, now time.Time) domain.RateSnapshot {
	return domain.RateSnapshot{
		Current:           rate.Current,
		CurrentWithBuffer: buf.Apply(rate.Current),
		Average30Days:     avg.Average(rate.Current, now),
		BufferPercent:     buf.Percent,
		LastUpdate:        rate.LastUpdate,
		Source:            rate.Source,
	}
}
