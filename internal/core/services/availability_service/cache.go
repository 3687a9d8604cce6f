package availability_service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinera/appointment-slots-service/internal/core/ports/out"
)

// Cache maintenance entry points, driven by the event listener when
// appointments, rules or blocks change behind this service's back.

func (s *AvailabilityService) InvalidateDaySlots(ctx context.Context, doctorID uuid.UUID, date time.Time) {
	if s.cachePort == nil || !s.cfg.Cache.Enabled {
		return
	}

	s.cachePort.InvalidateDay(ctx, doctorID, date.In(s.location))
	s.logger.Debug("slots.cache.day.invalidated", out.LogFields{
		"doctorId": doctorID,
		"date":     date.Format("2006-01-02"),
	})
}

func (s *AvailabilityService) InvalidateDoctorSlots(ctx context.Context, doctorID uuid.UUID) {
	if s.cachePort == nil || !s.cfg.Cache.Enabled {
		return
	}

	s.cachePort.InvalidateDoctor(ctx, doctorID)
	s.logger.Debug("slots.cache.doctor.invalidated", out.LogFields{
		"doctorId": doctorID,
	})
}

func (s *AvailabilityService) InvalidateAllSlots(ctx context.Context) {
	if s.cachePort == nil || !s.cfg.Cache.Enabled {
		return
	}

	s.cachePort.InvalidateAll(ctx)
	s.logger.Debug("slots.cache.all.invalidated", out.LogFields{})
}
