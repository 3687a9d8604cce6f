package json_types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const MinutesPerDay = 24 * 60

// TimeOfDay is a clock time without a date, stored as minutes since
// midnight. Slot arithmetic stays in integer minutes so boundary
// comparisons (slot end == window end) are exact.
type TimeOfDay struct {
	Minutes int
}

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay{Minutes: hour*60 + minute}
}

// ParseTimeOfDay accepts "15:04" and "15:04:05" (seconds are dropped).
func ParseTimeOfDay(str string) (TimeOfDay, error) {
	parts := strings.Split(str, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeOfDay{}, fmt.Errorf("failed to parse time of day: %q", str)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("failed to parse time of day: %q", str)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("failed to parse time of day: %q", str)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("time of day out of range: %q", str)
	}

	return NewTimeOfDay(hour, minute), nil
}

func (t TimeOfDay) Hour() int {
	return t.Minutes / 60
}

func (t TimeOfDay) Minute() int {
	return t.Minutes % 60
}

func (t TimeOfDay) AddMinutes(minutes int) TimeOfDay {
	return TimeOfDay{Minutes: t.Minutes + minutes}
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes < other.Minutes
}

func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.Minutes > other.Minutes
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	parsed, err := ParseTimeOfDay(str)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}
