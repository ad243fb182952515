// Package datewindow normalizes the optional start/end query parameters every
// analytics request carries into a concrete inclusive date range.
package datewindow

import (
	"time"

	"github.com/tastehub/tastehub-manager/internal/entity"
)

const defaultSpan = 30 * 24 * time.Hour

// Resolve turns optional ISO date strings into a concrete window:
//
//	neither given:   [now-30d, now]
//	only start:      [start, now]
//	only end:        [end-30d, end of that day]
//	both:            as given, end normalized to end of day
//
// Invalid date strings are treated as absent; Resolve fails open to the
// default and never errors. An explicit end is normalized to 23:59:59.999 of
// its calendar day so the range stays inclusive, and a reversed explicit pair
// is reordered so Start never exceeds End.
func Resolve(now time.Time, start, end string) entity.DateWindow {
	startDate, startOk := parseDate(start)
	endDate, endOk := parseDate(end)
	if endOk {
		endDate = endOfDay(endDate)
	}

	switch {
	case !startOk && !endOk:
		return entity.DateWindow{Start: now.Add(-defaultSpan), End: now}
	case startOk && !endOk:
		if startDate.After(now) {
			// A future start with no end would invert the window; close it
			// over the start's own day instead.
			return entity.DateWindow{Start: startDate, End: endOfDay(startDate)}
		}
		return entity.DateWindow{Start: startDate, End: now}
	case !startOk && endOk:
		return entity.DateWindow{Start: endDate.Add(-defaultSpan), End: endDate}
	default:
		if startDate.After(endDate) {
			startDate, endDate = startOfDay(endDate), endOfDay(startDate)
		}
		return entity.DateWindow{Start: startDate, End: endDate}
	}
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999_000_000, t.Location())
}
