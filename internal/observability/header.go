package observability

import (
	"fmt"
	"net/http"
	"time"
)

// AppendServerTiming adds one Server-Timing entry. Zero durations and empty
// descriptions are left out; an entry with neither is skipped.
func AppendServerTiming(w http.ResponseWriter, name string, d time.Duration, desc string) {
	durMs := ToMs(d)
	switch {
	case durMs > 0 && desc != "":
		w.Header().Add("Server-Timing", fmt.Sprintf("%s;dur=%.2f;desc=%q", name, durMs, desc))
	case durMs > 0:
		w.Header().Add("Server-Timing", fmt.Sprintf("%s;dur=%.2f", name, durMs))
	case desc != "":
		w.Header().Add("Server-Timing", fmt.Sprintf("%s;desc=%q", name, desc))
	}
}

func ToMs(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
