package availability_service

import (
	"time"

	"github.com/clinera/appointment-slots-service/internal/core/domain"
)

// SlotGridMinutes is the fixed presentation grid: only starts landing
// on :00/:30 boundaries are exposed, whatever granularity the rule
// generated candidates on. Candidates on finer grids are discarded
// here, not rejected earlier.
const SlotGridMinutes = 30

func onPresentationGrid(startMinute int) bool {
	return startMinute%SlotGridMinutes == 0
}

// overlapsMinutes is the half-open interval intersection test on
// minute-of-day values: [aStart,aEnd) against [bStart,bEnd).
func overlapsMinutes(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// isOccupied reports whether the candidate interval collides with any
// appointment still holding its slot.
func isOccupied(startMinute, endMinute int, appointments []domain.Appointment) bool {
	for _, appointment := range appointments {
		if !appointment.Occupying() {
			continue
		}
		if overlapsMinutes(startMinute, endMinute, appointment.StartTime.Minutes, appointment.EndTime.Minutes) {
			return true
		}
	}
	return false
}

// isBlocked reports whether the candidate's absolute interval crosses
// any blocked interval, under the same half-open test.
func isBlocked(slotStart, slotEnd time.Time, blocks []domain.BlockedInterval) bool {
	for _, block := range blocks {
		if slotStart.Before(block.End.Date) && slotEnd.After(block.Start.Date) {
			return true
		}
	}
	return false
}
