package utils

import (
	"fmt"
	"time"

	"github.com/clinera/appointment-slots-service/internal/core/json_types"
)

// StartOfDay returns t with the time set to 00:00, keeping the zone.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartNextDay returns midnight of the day after t, keeping the zone.
func StartNextDay(t time.Time) time.Time {
	next := t.AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, next.Location())
}

// SameCivilDate reports whether a and b fall on the same calendar day
// when both are viewed in a's location.
func SameCivilDate(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// CombineDateTime anchors a time-of-day on the given civil date in
// the date's location, producing an absolute timestamp.
func CombineDateTime(date time.Time, tod json_types.TimeOfDay) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), tod.Hour(), tod.Minute(), 0, 0, date.Location())
}

// ParseCivilDate parses a bare "2006-01-02" date in the given location.
func ParseCivilDate(str string, loc *time.Location) (time.Time, error) {
	parsed, err := time.ParseInLocation("2006-01-02", str, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date: %v", err)
	}
	return parsed, nil
}
