package availability_service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinera/appointment-slots-service/internal/adapters/out/logger"
	"github.com/clinera/appointment-slots-service/internal/config"
	"github.com/clinera/appointment-slots-service/internal/core/domain"
	"github.com/clinera/appointment-slots-service/internal/core/json_types"
)

type fakeClinicPort struct {
	rules        []domain.ScheduleRule
	appointments []domain.Appointment
	blocks       []domain.BlockedInterval
	doctorKnown  bool
	failWith     error
}

func (f *fakeClinicPort) DoctorExists(ctx context.Context, doctorID uuid.UUID) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	return f.doctorKnown, nil
}

func (f *fakeClinicPort) GetScheduleRules(ctx context.Context, doctorID uuid.UUID, weekday time.Weekday) ([]domain.ScheduleRule, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var matching []domain.ScheduleRule
	for _, rule := range f.rules {
		if rule.Weekday() == weekday && rule.Active {
			matching = append(matching, rule)
		}
	}
	return matching, nil
}

func (f *fakeClinicPort) GetBlockedIntervals(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]domain.BlockedInterval, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.blocks, nil
}

func (f *fakeClinicPort) GetAppointments(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]domain.Appointment, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.appointments, nil
}

func (f *fakeClinicPort) CreateAppointment(ctx context.Context, appointment domain.Appointment) (*domain.Appointment, error) {
	return &appointment, nil
}

var (
	testDoctorID = uuid.MustParse("7c3f9a1e-2b4d-4c8a-9f0e-1d2c3b4a5968")

	// 2026-09-07 is a Monday.
	testMonday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Timezone = "UTC"
	return cfg
}

func newTestService(port *fakeClinicPort) *AvailabilityService {
	svc := NewAvailabilityService(port, nil, logger.NewNopLogger(), newTestConfig())
	// A moment well before the test date, so past filtering is inert
	// unless a test moves the clock.
	svc.now = func() time.Time {
		return time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	}
	return svc
}

func rule(weekday int, start, end json_types.TimeOfDay, slotMinutes int) domain.ScheduleRule {
	return domain.ScheduleRule{
		ID:          uuid.New(),
		DoctorID:    testDoctorID,
		DayOfWeek:   weekday,
		StartTime:   start,
		EndTime:     end,
		SlotMinutes: slotMinutes,
		Active:      true,
	}
}

func appointment(start, end json_types.TimeOfDay, status domain.AppointmentStatus) domain.Appointment {
	return domain.Appointment{
		ID:        uuid.New(),
		DoctorID:  testDoctorID,
		Date:      json_types.Date{Date: testMonday},
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
}

func block(start, end time.Time) domain.BlockedInterval {
	return domain.BlockedInterval{
		ID:       uuid.New(),
		DoctorID: testDoctorID,
		Start:    json_types.DateTime{Date: start},
		End:      json_types.DateTime{Date: end},
	}
}

func startTimes(slots []domain.Slot) []string {
	times := make([]string, 0, len(slots))
	for _, slot := range slots {
		times = append(times, slot.StartTime.String())
	}
	return times
}

func TestGetAvailableSlots_BasicMorningRule(t *testing.T) {
	port := &fakeClinicPort{
		doctorKnown: true,
		rules: []domain.ScheduleRule{
			rule(1, json_types.NewTimeOfDay(9, 0), json_types.NewTimeOfDay(12, 0), 30),
		},
	}
	svc := newTestService(port)

	slots, _, err := svc.GetAvailableSlots(context.Background(), testDoctorID, testMonday, 30)
	require.NoError(t, err)

	// 11:30 + 30min == 12:00 lands exactly on the rule end and stays in.
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, startTimes(slots))
}

func TestGetAvailableSlots_NoRuleForWeekday(t *testing.T) {
	port := &fakeClinicPort{
		doctorKnown: true,
		rules: []domain.ScheduleRule{
			rule(3, json_types.NewTimeOfDay(9, 0), json_types.NewTimeOfDay(12, 0), 30),
		},
	}
	svc := newTestService(port)

	slots, _, err := svc.GetAvailableSlots(context.Background(), testDoctorID, testMonday, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailableSlots_AppointmentExcludesSlot(t *testing.T) {
	port := &fakeClinicPort{
		doctorKnown: true,
		rules: []domain.ScheduleRule{
			rule(1, json_types.NewTimeOfDay(9, 0), json_types.NewTimeOfDay(12, 0), 30),
		},
		appointments: []domain.Appointment{
			appointment(json_types.NewTimeOfDay(10, 0), json_types.NewTimeOfDay(10, 30), domain.AppointmentStatusConfirmed),
		},
	}
	svc := newTestService(port)

	slots, _, err := svc.GetAvailableSlots(context.Background(), testDoctorID, testMonday, 30)
	require.NoError(t, err)
	assert.NotContains(t, startTimes(slots), "10:00")
	assert.Contains(t, startTimes(slots), "10:30")
}

func TestGetAvailableSlots_CancelledAppointmentFreesSlot(t *testing.T) {
	port := &fakeClinicPort{
		doctorKnown: true,
		rules: []domain.ScheduleRule{
			rule(1, json_types.NewTimeOfDay(9, 0), json_types.NewTimeOfDay(12, 0), 30),
		},
		appointments: []domain.Appointment{
			appointment(json_types.NewTimeOfDay(10, 0), json_types.NewTimeOfDay(10, 30), domain.AppointmentStatusCancelled),
		},
	}
	svc := newTestService(port)

	slots, _, err := svc.GetAvailableSlots(context.Background(), testDoctorID, testMonday, 30)
	require.NoError(t, err)
	assert.Contains(t, startTimes(slots), "10:00")
}

func TestGetAvailableSlots_BlockedIntervalExcludesSlot(t *testing.T) {
	port := &fakeClinicPort{
		doctorKnown: true,
		rules: []domain.ScheduleRule{
			rule(1, json_types.NewTimeOfDay(9, 0), json_types.NewTimeOfDay(12, 0), 30),
		},
		blocks: []domain.BlockedInterval{
			block(
				time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC),
				time.Date(2026, 9, 7, 11, 30, 0, 0, time.UTC),
			),
		},
	}
	svc := newTestService(port)

	slots, _, err := svc.GetAvailableSlots(context.Background(), testDoctorID, testMonday, 30)
	require.NoError(t, err)
	assert.NotContains(t, startTimes(slots), "11:00")
	assert.Contains(t, startTimes(slots), "11:30")
}

func TestGetAvailableSlots_LongerDurationStepsOnRuleGrid(t *testing.T) {
	port := &fakeClinicPort{
		doctorKnown: true,
		rules: []domain.ScheduleRule{
			rule(1, json_types.NewTimeOfDay(9, 0), json_types.NewTimeOfDay(13, 0), 30),
		},
	}
	svc := newTestService(port)

	// 60-minute slots still start on the rule's 30-minute grid.
	slots, _, err := svc.GetAvailableSlots(context.Background(), testDoctorID, testMonday, 60)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00"}, startTimes(slots))
}

func TestGetAvailableSlots_LongerDurationWithAppointment(t *testing.T) {
	port := &fakeClinicPort{
		doctorKnown: true,
		rules: []domain.ScheduleRule{
			rule(1, json_types.NewTimeOfDay(9, 0), json_types.NewTimeOfDay(13, 0), 30),
		},
		appointments: []domain.Appointment{
			appointment(json_types.NewTimeOfDay(10, 0), json_types.NewTimeOfDay(11, 0), domain.AppointmentStatusPending),
		},
	}
	svc := newTestService(port)

	// Every 60-minute slot overlapping [10:00,11:00) drops out:
	// 09:30, 10:00 and 10:30 all collide.
	slots, _, err := svc.GetAvailableSlots(context.Background(), testDoctorID, testMonday, 60)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "11:00", "11:30", "12:00"}, startTimes(slots))
}

func TestGetAvailableSlots_GridSnapDropsQuarterHours(t *testing.T) {
	port := &fakeClinicPort{
		doctorKnown: true,
		rules: []domain.ScheduleRule{
			rule(1, json_types.NewTimeOfDay(9, 0), json_types.NewTimeOfDay(11, 0), 15),
		},
	}
	svc := newTestService(port)

	slots, _, err := svc.GetAvailableSlots(context.Background(), testDoctorID, testMonday, 30)
	require.NoError(t, err)
	for _, slot := range slots {
		minute := slot.StartTime.Minute()
		assert.True(t, minute == 0 || minute == 30, "unexpected off-grid start %s", slot.StartTime)
	}
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, startTimes(slots))
}

func TestGetAvailableSlots_TodayFiltersPastStarts(t *testing.T) {
	port := &fakeClinicPort{
		doctorKnown: true,
		rules: []domain.ScheduleRule{
			rule(1, json_types.NewTimeOfDay(9, 0), json_types.NewTimeOfDay(12, 0), 30),
		},
	}
	svc := newTestService(port)
	svc.now = func() time.Time {
		return time.Date(2026, 9, 7, 10, 15, 0, 0, time.UTC)
	}

	slots, _, err := svc.GetAvailableSlots(context.Background(), testDoctorID, testMonday, 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:30", "11:00", "11:30"}, startTimes(slots))
}

func TestGetAvailableSlots_OverlappingRulesDeduplicate(t *testing.T) {
	port := &fakeClinicPort{
		doctorKnown: true,
		rules: []domain.ScheduleRule{
			rule(1, json_types.NewTimeOfDay(9, 0), json_types.NewTimeOfDay(12, 0), 30),
			rule(1, json_types.NewTimeOfDay(10, 0), json_types.NewTimeOfDay(13, 0), 30),
		},
	}
	svc := newTestService(port)

	slots, _, err := svc.GetAvailableSlots(context.Background(), testDoctorID, testMonday, 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00", "12:30"}, startTimes(slots))
}

func TestGetAvailableSlots_DurationExceedsWindow(t *testing.T) {
	port := &fakeClinicPort{
		doctorKnown: true,
		rules: []domain.ScheduleRule{
			rule(1, json_types.NewTimeOfDay(9, 0), json_types.NewTimeOfDay(10, 0), 30),
		},
	}
	svc := newTestService(port)

	slots, _, err := svc.GetAvailableSlots(context.Background(), testDoctorID, testMonday, 90)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailableSlots_Idempotent(t *testing.T) {
	port := &fakeClinicPort{
		doctorKnown: true,
		rules: []domain.ScheduleRule{
			rule(1, json_types.NewTimeOfDay(9, 0), json_types.NewTimeOfDay(12, 0), 30),
		},
		appointments: []domain.Appointment{
			appointment(json_types.NewTimeOfDay(9, 30), json_types.NewTimeOfDay(10, 0), domain.AppointmentStatusPending),
		},
	}
	svc := newTestService(port)

	first, _, err := svc.GetAvailableSlots(context.Background(), testDoctorID, testMonday, 30)
	require.NoError(t, err)
	second, _, err := svc.GetAvailableSlots(context.Background(), testDoctorID, testMonday, 30)
	require.NoError(t, err)
	assert.Equal(t, startTimes(first), startTimes(second))
}

func TestGetAvailableSlots_InvalidArguments(t *testing.T) {
	svc := newTestService(&fakeClinicPort{doctorKnown: true})

	_, _, err := svc.GetAvailableSlots(context.Background(), uuid.Nil, testMonday, 30)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, _, err = svc.GetAvailableSlots(context.Background(), testDoctorID, time.Time{}, 30)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, _, err = svc.GetAvailableSlots(context.Background(), testDoctorID, testMonday, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, _, err = svc.GetAvailableSlots(context.Background(), testDoctorID, testMonday, -15)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestGetAvailableSlots_UnknownDoctor(t *testing.T) {
	svc := newTestService(&fakeClinicPort{doctorKnown: false})

	_, _, err := svc.GetAvailableSlots(context.Background(), testDoctorID, testMonday, 30)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestGetAvailableSlots_SourceFailure(t *testing.T) {
	svc := newTestService(&fakeClinicPort{
		doctorKnown: true,
		failWith:    errors.New("connection refused"),
	})

	_, _, err := svc.GetAvailableSlots(context.Background(), testDoctorID, testMonday, 30)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}
