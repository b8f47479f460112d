package observability

import (
	"fmt"
	"net/http"
	"time"
)

func AppendServerTiming(w http.ResponseWriter, name string, durMs float64, desc string) {
	if durMs > 0 && desc != "" {
		w.Header().Add("Server-Timing", fmt.Sprintf("%s;dur=%.2f;desc=%q", name, durMs, desc))
		return
	}
	if durMs > 0 {
		w.Header().Add("Server-Timing", fmt.Sprintf("%s;dur=%.2f", name, durMs))
		return
	}
	if desc != "" {
		w.Header().Add("Server-Timing", fmt.Sprintf("%s;desc=%q", name, desc))
	}
}

func SetIfPos(w http.ResponseWriter, key string, ms float64) {
	if ms > 0 {
		w.Header().Set(key, fmt.Sprintf("%.2f", ms))
	}
}

// SetProvenance writes X-Source and, for values that were fetched at some
// point, X-Data-Age in whole seconds.
func SetProvenance(w http.ResponseWriter, source string, fetchedAt, now time.Time) {
	w.Header().Set("X-Source", source)
	if fetchedAt.IsZero() {
		return
	}
	age := now.Sub(fetchedAt)
	if age < 0 {
		age = 0
	}
	w.Header().Set("X-Data-Age", fmt.Sprintf("%d", int64(age/time.Second)))
}
