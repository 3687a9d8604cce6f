package domain

import (
	"github.com/google/uuid"

	"github.com/clinera/appointment-slots-service/internal/core/json_types"
)

// BlockedInterval removes availability for a doctor over an absolute
// timestamp range (vacation, personal block). It overrides any
// schedule rule it overlaps.
type BlockedInterval struct {
	ID       uuid.UUID           `json:"id"`
	DoctorID uuid.UUID           `json:"doctor_id"`
	Start    json_types.DateTime `json:"start_datetime"`
	End      json_types.DateTime `json:"end_datetime"`
	Reason   string              `json:"reason,omitempty"`
}
