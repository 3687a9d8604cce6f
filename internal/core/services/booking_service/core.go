package booking_service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinera/appointment-slots-service/internal/config"
	"github.com/clinera/appointment-slots-service/internal/core/domain"
	"github.com/clinera/appointment-slots-service/internal/core/json_types"
	"github.com/clinera/appointment-slots-service/internal/core/ports/in"
	"github.com/clinera/appointment-slots-service/internal/core/ports/out"
	"github.com/clinera/appointment-slots-service/internal/utils"
)

type BookingService struct {
	clinicPort   out.ClinicPort
	availability in.AvailabilityUseCase
	rateLimiter  out.RateLimiterPort
	logger       out.LoggerPort
	cfg          *config.Config
}

func NewBookingService(
	clinicPort out.ClinicPort,
	availability in.AvailabilityUseCase,
	rateLimiter out.RateLimiterPort,
	logger out.LoggerPort,
	cfg *config.Config,
) *BookingService {
	return &BookingService{
		clinicPort:   clinicPort,
		availability: availability,
		rateLimiter:  rateLimiter,
		logger:       logger.WithModule("BookingService"),
		cfg:          cfg,
	}
}

// BookAppointment re-validates the chosen start against a fresh
// availability computation and persists the appointment with status
// pending. The availability read is advisory: the authoritative
// exclusivity guarantee is the storage-level uniqueness constraint on
// (doctor, date, start time) among non-cancelled rows, surfaced by
// the clinic port as domain.ErrSlotTaken.
func (s *BookingService) BookAppointment(ctx context.Context, req in.BookingRequest) (*domain.Appointment, error) {
	if s.rateLimiter != nil && s.cfg.RateLimit.Enabled && req.ClientKey != "" {
		if !s.rateLimiter.Allow(req.ClientKey) {
			s.logger.Warn("booking.rate_limited", out.LogFields{
				"clientKey": req.ClientKey,
			})
			return nil, fmt.Errorf("%w: too many booking attempts", domain.ErrRateLimited)
		}
	}

	if req.DoctorID == uuid.Nil {
		return nil, fmt.Errorf("%w: doctor id is required", domain.ErrInvalidArgument)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", domain.ErrInvalidArgument)
	}
	if req.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %d", domain.ErrInvalidArgument, req.DurationMinutes)
	}
	if req.PatientRef == "" {
		return nil, fmt.Errorf("%w: patient reference is required", domain.ErrInvalidArgument)
	}

	s.logger.Info("booking.started", out.LogFields{
		"doctorId": req.DoctorID,
		"date":     req.Date.Format("2006-01-02"),
		"start":    req.StartTime.String(),
		"duration": req.DurationMinutes,
	})

	slots, _, err := s.availability.GetAvailableSlots(ctx, req.DoctorID, req.Date, req.DurationMinutes)
	if err != nil {
		return nil, err
	}

	if !containsStart(slots, req.StartTime) {
		s.logger.Info("booking.slot_unavailable", out.LogFields{
			"doctorId": req.DoctorID,
			"start":    req.StartTime.String(),
		})
		return nil, fmt.Errorf("%w: %s on %s", domain.ErrSlotTaken, req.StartTime, req.Date.Format("2006-01-02"))
	}

	appointment := domain.Appointment{
		ID:         uuid.New(),
		DoctorID:   req.DoctorID,
		PatientRef: req.PatientRef,
		Date:       json_types.Date{Date: utils.StartOfDay(req.Date)},
		StartTime:  req.StartTime,
		EndTime:    req.StartTime.AddMinutes(req.DurationMinutes),
		Status:     domain.AppointmentStatusPending,
	}

	created, err := s.clinicPort.CreateAppointment(ctx, appointment)
	if err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			s.logger.Info("booking.conflict", out.LogFields{
				"doctorId": req.DoctorID,
				"start":    req.StartTime.String(),
			})
			return nil, err
		}
		s.logger.Error("booking.create_failed", out.LogFields{
			"doctorId": req.DoctorID,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("%w: create appointment: %v", domain.ErrSourceUnavailable, err)
	}

	// The slot set for this day just changed under any cached copy.
	s.availability.InvalidateDaySlots(ctx, req.DoctorID, req.Date)

	s.logger.Info("booking.created", out.LogFields{
		"appointmentId": created.ID,
		"doctorId":      created.DoctorID,
	})

	return created, nil
}

func containsStart(slots []domain.Slot, start json_types.TimeOfDay) bool {
	for _, slot := range slots {
		if slot.StartTime.Minutes == start.Minutes {
			return true
		}
	}
	return false
}
