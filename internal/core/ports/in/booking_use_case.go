package in

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinera/appointment-slots-service/internal/core/domain"
	"github.com/clinera/appointment-slots-service/internal/core/json_types"
)

type BookingRequest struct {
	DoctorID        uuid.UUID
	PatientRef      string
	Date            time.Time
	StartTime       json_types.TimeOfDay
	DurationMinutes int

	// ClientKey identifies the submitting client for rate limiting
	// (typically the remote address).
	ClientKey string
}

type BookingUseCase interface {
	// BookAppointment re-validates the chosen start against a fresh
	// availability computation and persists the appointment with
	// status pending. A lost race surfaces as domain.ErrSlotTaken.
	BookAppointment(ctx context.Context, req BookingRequest) (*domain.Appointment, error)
}
