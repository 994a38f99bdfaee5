package report

import (
	"time"

	"github.com/dreamshub/backend/internal/domain/shared"
)

// Window is a resolved time range filter. A zero Since means unbounded
// history; a zero Until means "up to now".
type Window struct {
	Since time.Time
	Until time.Time
}

// Contains reports whether t falls inside the window, both ends inclusive
func (w Window) Contains(t time.Time) bool {
	if !w.Since.IsZero() && t.Before(w.Since) {
		return false
	}
	if !w.Until.IsZero() && t.After(w.Until) {
		return false
	}
	return true
}

// Range tokens accepted by ParseWindow
const (
	RangeSecond = "second"
	RangeMinute = "minute"
	RangeHour   = "hour"
	RangeDay    = "day"
	RangeWeek   = "week"
	RangeMonth  = "month"
	RangeYear   = "year"
	RangeAll    = "all"
	RangeCustom = "custom"
)

// rangeDurations holds the fixed lookback per token. Month and year are
// flat 30 and 365 day spans, not calendar months.
var rangeDurations = map[string]time.Duration{
	RangeSecond: time.Second,
	RangeMinute: time.Minute,
	RangeHour:   time.Hour,
	RangeDay:    24 * time.Hour,
	RangeWeek:   7 * 24 * time.Hour,
	RangeMonth:  30 * 24 * time.Hour,
	RangeYear:   365 * 24 * time.Hour,
}

// ParseWindow resolves a range token against now. The custom token
// requires both bounds and is inclusive on each end.
func ParseWindow(token string, now time.Time, start, end *time.Time) (Window, error) {
	switch token {
	case "", RangeAll:
		return Window{}, nil
	case RangeCustom:
		if start == nil || end == nil {
			return Window{}, shared.NewDomainError(shared.CodeValidation, "Custom range requires both start and end")
		}
		if end.Before(*start) {
			return Window{}, shared.NewDomainError(shared.CodeValidation, "Custom range end precedes start")
		}
		return Window{Since: *start, Until: *end}, nil
	}

	d, ok := rangeDurations[token]
	if !ok {
		return Window{}, shared.NewDomainErrorf(shared.CodeValidation, "Unknown range token %q", token)
	}
	return Window{Since: now.Add(-d)}, nil
}
