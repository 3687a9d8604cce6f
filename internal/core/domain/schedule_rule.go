package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinera/appointment-slots-service/internal/core/json_types"
)

// ScheduleRule is a recurring weekly availability window for a doctor.
// DayOfWeek follows time.Weekday numbering: 0=Sunday .. 6=Saturday.
// Several rules may exist for the same doctor and weekday.
type ScheduleRule struct {
	ID          uuid.UUID            `json:"id"`
	DoctorID    uuid.UUID            `json:"doctor_id"`
	DayOfWeek   int                  `json:"day_of_week"`
	StartTime   json_types.TimeOfDay `json:"start_time"`
	EndTime     json_types.TimeOfDay `json:"end_time"`
	SlotMinutes int                  `json:"slot_duration"`
	Active      bool                 `json:"is_active"`
}

// Valid checks the rule invariants: start before end and a positive
// stepping granularity. Rules violating them are skipped, not fatal.
func (r ScheduleRule) Valid() bool {
	return r.StartTime.Before(r.EndTime) && r.SlotMinutes > 0
}

func (r ScheduleRule) Weekday() time.Weekday {
	return time.Weekday(r.DayOfWeek)
}
