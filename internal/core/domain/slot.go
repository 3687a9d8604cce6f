package domain

import (
	"github.com/google/uuid"

	"github.com/clinera/appointment-slots-service/internal/core/json_types"
)

// Slot is a computed bookable start time. It is never persisted;
// existence means the interval sits inside an active rule window,
// lands on the presentation grid, and overlaps no block or
// non-cancelled appointment.
type Slot struct {
	DoctorID  uuid.UUID            `json:"doctor_id"`
	Date      json_types.Date      `json:"date"`
	StartTime json_types.TimeOfDay `json:"start"`
	EndTime   json_types.TimeOfDay `json:"end"`
}
