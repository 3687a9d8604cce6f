package in

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinera/appointment-slots-service/internal/core/domain"
)

type AvailabilityUseCase interface {
	// GetAvailableSlots computes the sorted bookable start times for
	// the doctor on the given civil date. An empty result is not an
	// error.
	GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date time.Time, durationMinutes int) ([]domain.Slot, []domain.DebugInfo, error)

	// Cache maintenance, driven by the event listener.
	InvalidateDaySlots(ctx context.Context, doctorID uuid.UUID, date time.Time)
	InvalidateDoctorSlots(ctx context.Context, doctorID uuid.UUID)
	InvalidateAllSlots(ctx context.Context)
}
