package out

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinera/appointment-slots-service/internal/core/domain"
)

// ClinicPort reads the three availability inputs from the managed
// backend and writes new appointments. All reads are point-in-time
// snapshots; consistency across them is not guaranteed.
type ClinicPort interface {
	// DoctorExists resolves the doctor ID without loading the record.
	DoctorExists(ctx context.Context, doctorID uuid.UUID) (bool, error)

	// GetScheduleRules returns the active weekly rules for the doctor
	// on the given weekday.
	GetScheduleRules(ctx context.Context, doctorID uuid.UUID, weekday time.Weekday) ([]domain.ScheduleRule, error)

	// GetBlockedIntervals returns blocks overlapping [from, to).
	GetBlockedIntervals(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]domain.BlockedInterval, error)

	// GetAppointments returns non-cancelled appointments for the
	// doctor on the given civil date.
	GetAppointments(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]domain.Appointment, error)

	// CreateAppointment persists a new appointment. A storage-level
	// uniqueness violation on (doctor, date, start time) surfaces as
	// domain.ErrSlotTaken.
	CreateAppointment(ctx context.Context, appointment domain.Appointment) (*domain.Appointment, error)
}
