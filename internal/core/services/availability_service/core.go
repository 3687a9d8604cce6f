package availability_service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinera/appointment-slots-service/internal/config"
	"github.com/clinera/appointment-slots-service/internal/core/domain"
	"github.com/clinera/appointment-slots-service/internal/core/json_types"
	"github.com/clinera/appointment-slots-service/internal/core/ports/out"
	"github.com/clinera/appointment-slots-service/internal/utils"
)

type AvailabilityService struct {
	clinicPort out.ClinicPort
	cachePort  out.CachePort
	logger     out.LoggerPort
	cfg        *config.Config
	location   *time.Location

	// now is swapped out by tests; past-time filtering depends on it.
	now func() time.Time
}

func NewAvailabilityService(
	clinicPort out.ClinicPort,
	cachePort out.CachePort,
	logger out.LoggerPort,
	cfg *config.Config,
) *AvailabilityService {
	return &AvailabilityService{
		clinicPort: clinicPort,
		cachePort:  cachePort,
		logger:     logger.WithModule("AvailabilityService"),
		cfg:        cfg,
		location:   cfg.Location(),
		now:        time.Now,
	}
}

// GetAvailableSlots computes the ordered bookable start times for the
// doctor on the given civil date. Recomputing later with unchanged
// rule/block/appointment state can only lose slots to the past-time
// filter, never reorder or invent them.
func (s *AvailabilityService) GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date time.Time, durationMinutes int) ([]domain.Slot, []domain.DebugInfo, error) {
	debugInfo := AvailabilityServiceDebug{
		data: make([]domain.DebugInfo, 0),
	}

	if doctorID == uuid.Nil {
		return nil, nil, fmt.Errorf("%w: doctor id is required", domain.ErrInvalidArgument)
	}
	if date.IsZero() {
		return nil, nil, fmt.Errorf("%w: date is required", domain.ErrInvalidArgument)
	}
	if durationMinutes <= 0 {
		return nil, nil, fmt.Errorf("%w: duration must be positive, got %d", domain.ErrInvalidArgument, durationMinutes)
	}

	date = utils.StartOfDay(date.In(s.location))

	s.logger.Info("slots.compute.started", out.LogFields{
		"doctorId": doctorID,
		"date":     date.Format("2006-01-02"),
		"duration": durationMinutes,
	})

	exists, err := s.clinicPort.DoctorExists(ctx, doctorID)
	if err != nil {
		s.logger.Error("slots.compute.doctor.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, nil, fmt.Errorf("%w: doctor lookup: %v", domain.ErrSourceUnavailable, err)
	}
	if !exists {
		return nil, nil, fmt.Errorf("%w: unknown doctor %s", domain.ErrInvalidArgument, doctorID)
	}

	if s.cachePort != nil && s.cfg.Cache.Enabled {
		if slots, ok := s.cachePort.GetSlots(ctx, doctorID, date, durationMinutes); ok {
			s.logger.Debug("slots.compute.cache.hit", out.LogFields{
				"doctorId":   doctorID,
				"slotsCount": len(slots),
			})
			return s.finalizeSlots(&debugInfo, date, slots), debugInfo.data, nil
		}
		s.logger.Debug("slots.compute.cache.miss", out.LogFields{
			"doctorId": doctorID,
		})
	}

	slots, err := s.computeSlots(ctx, &debugInfo, doctorID, date, durationMinutes)
	if err != nil {
		return nil, nil, err
	}

	if s.cachePort != nil && s.cfg.Cache.Enabled {
		s.cachePort.StoreSlots(ctx, doctorID, date, durationMinutes, slots)
	}

	return s.finalizeSlots(&debugInfo, date, slots), debugInfo.data, nil
}

// computeSlots runs the candidate generation and the occupancy and
// block filters. The past-time filter is deliberately left out so the
// result stays cacheable; finalizeSlots applies it per request.
func (s *AvailabilityService) computeSlots(ctx context.Context, debugInfo *AvailabilityServiceDebug, doctorID uuid.UUID, date time.Time, durationMinutes int) ([]domain.Slot, error) {
	fetch_rules_debug := domain.DebugInfo{
		Event: "slots.compute.rules.fetch",
	}
	fetch_rules_debug.Start()

	rules, err := s.clinicPort.GetScheduleRules(ctx, doctorID, date.Weekday())
	if err != nil {
		s.logger.Error("slots.compute.rules.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("%w: schedule rules: %v", domain.ErrSourceUnavailable, err)
	}
	fetch_rules_debug.Elapse()
	debugInfo.AddDebugInfo(fetch_rules_debug)

	candidates := generateCandidates(rules, durationMinutes)
	if len(candidates) == 0 {
		return []domain.Slot{}, nil
	}

	fetch_appointments_debug := domain.DebugInfo{
		Event: "slots.compute.appointments.fetch",
	}
	fetch_appointments_debug.Start()

	appointments, err := s.clinicPort.GetAppointments(ctx, doctorID, date)
	if err != nil {
		s.logger.Error("slots.compute.appointments.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("%w: appointments: %v", domain.ErrSourceUnavailable, err)
	}
	fetch_appointments_debug.Elapse()
	debugInfo.AddDebugInfo(fetch_appointments_debug)

	fetch_blocks_debug := domain.DebugInfo{
		Event: "slots.compute.blocked_intervals.fetch",
	}
	fetch_blocks_debug.Start()

	dayStart := date
	dayEnd := utils.StartNextDay(date)
	blocks, err := s.clinicPort.GetBlockedIntervals(ctx, doctorID, dayStart, dayEnd)
	if err != nil {
		s.logger.Error("slots.compute.blocked_intervals.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("%w: blocked intervals: %v", domain.ErrSourceUnavailable, err)
	}
	fetch_blocks_debug.Elapse()
	debugInfo.AddDebugInfo(fetch_blocks_debug)

	filter_debug := domain.DebugInfo{
		Event: "slots.compute.candidates.filter",
	}
	filter_debug.Start()

	slots := make([]domain.Slot, 0, len(candidates))
	for startMinute := range candidates {
		endMinute := startMinute + durationMinutes

		if isOccupied(startMinute, endMinute, appointments) {
			continue
		}

		slotStart := utils.CombineDateTime(date, json_types.TimeOfDay{Minutes: startMinute})
		slotEnd := slotStart.Add(time.Duration(durationMinutes) * time.Minute)
		if isBlocked(slotStart, slotEnd, blocks) {
			continue
		}

		if !onPresentationGrid(startMinute) {
			continue
		}

		slots = append(slots, domain.Slot{
			DoctorID:  doctorID,
			Date:      json_types.Date{Date: date},
			StartTime: json_types.TimeOfDay{Minutes: startMinute},
			EndTime:   json_types.TimeOfDay{Minutes: endMinute},
		})
	}

	filter_debug.Elapse()
	filter_debug.AddOption("candidates", fmt.Sprintf("%d", len(candidates)))
	filter_debug.AddOption("kept", fmt.Sprintf("%d", len(slots)))
	debugInfo.AddDebugInfo(filter_debug)

	return slots, nil
}

// finalizeSlots drops starts already in the past when the date is
// today, then sorts ascending.
func (s *AvailabilityService) finalizeSlots(debugInfo *AvailabilityServiceDebug, date time.Time, slots []domain.Slot) []domain.Slot {
	now := s.now().In(s.location)

	result := make([]domain.Slot, 0, len(slots))
	if utils.SameCivilDate(date, now) {
		for _, slot := range slots {
			slotStart := utils.CombineDateTime(date, slot.StartTime)
			if slotStart.After(now) {
				result = append(result, slot)
			}
		}
	} else {
		result = append(result, slots...)
	}

	sort_debug := domain.DebugInfo{
		Event: "slots.compute.sort",
	}
	sort_debug.Start()
	result = SlotSlice(result).quickSort()
	sort_debug.Elapse()
	debugInfo.AddDebugInfo(sort_debug)

	return result
}
