package availability_service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clinera/appointment-slots-service/internal/core/domain"
	"github.com/clinera/appointment-slots-service/internal/core/json_types"
)

func TestOverlapsMinutes(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"identical", 600, 630, 600, 630, true},
		{"partial overlap", 600, 660, 630, 690, true},
		{"contained", 600, 720, 630, 660, true},
		{"touching end to start", 600, 630, 630, 660, false},
		{"touching start to end", 630, 660, 600, 630, false},
		{"disjoint", 540, 570, 600, 630, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, overlapsMinutes(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}

func TestIsOccupiedSkipsCancelled(t *testing.T) {
	appointments := []domain.Appointment{
		{
			StartTime: json_types.NewTimeOfDay(10, 0),
			EndTime:   json_types.NewTimeOfDay(10, 30),
			Status:    domain.AppointmentStatusCancelled,
		},
	}

	assert.False(t, isOccupied(600, 630, appointments))

	appointments[0].Status = domain.AppointmentStatusPending
	assert.True(t, isOccupied(600, 630, appointments))
}

func TestIsBlockedHalfOpen(t *testing.T) {
	blocks := []domain.BlockedInterval{
		{
			Start: json_types.DateTime{Date: time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC)},
			End:   json_types.DateTime{Date: time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)},
		},
	}

	slotAt := func(hour, minute int) (time.Time, time.Time) {
		start := time.Date(2026, 9, 7, hour, minute, 0, 0, time.UTC)
		return start, start.Add(30 * time.Minute)
	}

	start, end := slotAt(11, 0)
	assert.True(t, isBlocked(start, end, blocks))

	// Slot ending exactly where the block starts is free.
	start, end = slotAt(10, 30)
	assert.False(t, isBlocked(start, end, blocks))

	// Slot starting exactly at block end is free.
	start, end = slotAt(12, 0)
	assert.False(t, isBlocked(start, end, blocks))

	start, end = slotAt(11, 45)
	assert.True(t, isBlocked(start, end, blocks))
}

func TestOnPresentationGrid(t *testing.T) {
	assert.True(t, onPresentationGrid(9*60))
	assert.True(t, onPresentationGrid(9*60+30))
	assert.False(t, onPresentationGrid(9*60+15))
	assert.False(t, onPresentationGrid(9*60+45))
}

func TestGenerateCandidates_InclusiveBoundary(t *testing.T) {
	rules := []domain.ScheduleRule{
		rule(1, json_types.NewTimeOfDay(9, 0), json_types.NewTimeOfDay(12, 0), 30),
	}

	candidates := generateCandidates(rules, 30)

	// 11:30 fits exactly; 12:00 would end past the window.
	assert.Contains(t, candidates, 11*60+30)
	assert.NotContains(t, candidates, 12*60)
	assert.Len(t, candidates, 6)
}

func TestGenerateCandidates_UnevenWindow(t *testing.T) {
	// 09:00-10:15 stepping 30: the trailing partial step is simply
	// not emitted.
	rules := []domain.ScheduleRule{
		rule(1, json_types.NewTimeOfDay(9, 0), json_types.NewTimeOfDay(10, 15), 30),
	}

	candidates := generateCandidates(rules, 30)
	assert.Contains(t, candidates, 9*60)
	assert.Contains(t, candidates, 9*60+30)
	assert.NotContains(t, candidates, 10*60)
	assert.Len(t, candidates, 2)
}

func TestGenerateCandidates_SkipsInvalidRules(t *testing.T) {
	inverted := rule(1, json_types.NewTimeOfDay(12, 0), json_types.NewTimeOfDay(9, 0), 30)
	zeroStep := rule(1, json_types.NewTimeOfDay(9, 0), json_types.NewTimeOfDay(12, 0), 0)
	inactive := rule(1, json_types.NewTimeOfDay(9, 0), json_types.NewTimeOfDay(12, 0), 30)
	inactive.Active = false

	candidates := generateCandidates([]domain.ScheduleRule{inverted, zeroStep, inactive}, 30)
	assert.Empty(t, candidates)
}
