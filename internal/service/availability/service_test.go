package availability

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookwell/booking-api/internal/model"
	"github.com/bookwell/booking-api/internal/repository"
	"github.com/bookwell/booking-api/internal/service/account"
	apperrors "github.com/bookwell/booking-api/pkg/errors"
	"github.com/bookwell/booking-api/pkg/metrics"
)

var (
	testAccountID = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	testServiceID = uuid.MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8")

	// 2026-03-02 is a Monday.
	monday = model.Date{Year: 2026, Month: time.March, Day: 2}
)

type fakeAccountRepo struct {
	account *model.Account
}

func (f *fakeAccountRepo) Get(ctx context.Context, accountID uuid.UUID) (*model.Account, error) {
	if f.account == nil || f.account.ID != accountID {
		return nil, repository.ErrNotFound
	}
	return f.account, nil
}

type fakeServiceRepo struct {
	services map[uuid.UUID]*model.Service
}

func (f *fakeServiceRepo) GetActive(ctx context.Context, accountID, serviceID uuid.UUID) (*model.Service, error) {
	svc, ok := f.services[serviceID]
	if !ok || svc.AccountID != accountID || !svc.Active {
		return nil, repository.ErrNotFound
	}
	return svc, nil
}

type fakeScheduleRepo struct {
	rows map[time.Weekday]*model.Schedule
}

func (f *fakeScheduleRepo) GetForWeekday(ctx context.Context, accountID uuid.UUID, weekday time.Weekday) (*model.Schedule, error) {
	row, ok := f.rows[weekday]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return row, nil
}

type fakeBookingRepo struct {
	occupied []model.BookedInterval
}

func (f *fakeBookingRepo) Get(ctx context.Context, accountID, bookingID uuid.UUID) (*model.Booking, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeBookingRepo) ListForDate(ctx context.Context, accountID uuid.UUID, date model.Date) ([]*model.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) ListOccupied(ctx context.Context, accountID uuid.UUID, date model.Date) ([]model.BookedInterval, error) {
	return f.occupied, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, accountID, bookingID uuid.UUID, status model.BookingStatus) error {
	return repository.ErrNotFound
}

func (f *fakeBookingRepo) InTx(ctx context.Context, accountID uuid.UUID, date model.Date, fn func(repository.BookingTx) error) error {
	panic("not used by the calculator")
}

func clockPtr(c model.ClockMinutes) *model.ClockMinutes {
	return &c
}

func mondaySchedule() *model.Schedule {
	return &model.Schedule{
		AccountID: testAccountID,
		Weekday:   time.Monday,
		Enabled:   true,
		StartTime: 540,  // 09:00
		EndTime:   1080, // 18:00
	}
}

func newTestService(svc *model.Service, schedule *model.Schedule, occupied []model.BookedInterval) *Service {
	services := &fakeServiceRepo{services: map[uuid.UUID]*model.Service{}}
	if svc != nil {
		services.services[svc.ID] = svc
	}
	schedules := &fakeScheduleRepo{rows: map[time.Weekday]*model.Schedule{}}
	if schedule != nil {
		schedules.rows[schedule.Weekday] = schedule
	}
	accounts := account.NewService(&fakeAccountRepo{account: &model.Account{
		ID:              testAccountID,
		SlotStepMinutes: 30,
	}}, time.Minute, 0)

	s := NewService(services, schedules, &fakeBookingRepo{occupied: occupied}, accounts, nil)
	// Pin the clock far from the test date so the past-time cutoff
	// stays out of the way unless a test moves it.
	s.now = func() time.Time {
		return time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func defaultService() *model.Service {
	return &model.Service{
		ID:              testServiceID,
		AccountID:       testAccountID,
		Name:            "Consultation",
		DurationMinutes: 30,
		BufferMinutes:   10,
		Active:          true,
	}
}

func TestFullDayGrid(t *testing.T) {
	s := newTestService(defaultService(), mondaySchedule(), nil)

	slots, err := s.GetAvailableSlots(context.Background(), testAccountID, testServiceID, monday, Options{})
	require.NoError(t, err)

	// 09:00 through 17:30: every step start c with c+30 <= 18:00.
	require.Len(t, slots, 18)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "09:30", slots[1])
	assert.Equal(t, "17:30", slots[17])
}

func TestSlotsComputedCounter(t *testing.T) {
	s := newTestService(defaultService(), mondaySchedule(), nil)
	s.metrics = metrics.New(prometheus.NewRegistry(), "booking_api_test")

	slots, err := s.GetAvailableSlots(context.Background(), testAccountID, testServiceID, monday, Options{})
	require.NoError(t, err)

	assert.Equal(t, float64(len(slots)), testutil.ToFloat64(s.metrics.SlotsComputed))

	_, err = s.GetAvailableSlots(context.Background(), testAccountID, testServiceID, monday, Options{})
	require.NoError(t, err)
	assert.Equal(t, float64(2*len(slots)), testutil.ToFloat64(s.metrics.SlotsComputed))
}

func TestBreakWindowRemovesIntersectingSlots(t *testing.T) {
	schedule := mondaySchedule()
	schedule.BreakStart = clockPtr(780) // 13:00
	schedule.BreakEnd = clockPtr(840)   // 14:00
	s := newTestService(defaultService(), schedule, nil)

	slots, err := s.GetAvailableSlots(context.Background(), testAccountID, testServiceID, monday, Options{})
	require.NoError(t, err)

	assert.NotContains(t, slots, "13:00")
	assert.NotContains(t, slots, "13:30")
	// 12:30 ends exactly at the break start; half-open, so it stays.
	assert.Contains(t, slots, "12:30")
	assert.Contains(t, slots, "14:00")
}

func TestExistingBookingBlocksOverlappingCandidates(t *testing.T) {
	// 10:00 booking with 30m duration + 10m buffer occupies [10:00, 10:40).
	occupied := []model.BookedInterval{
		{StartTime: 600, DurationMinutes: 30, BufferMinutes: 10},
	}

	// Different service: 20 minutes, no buffer, 15 minute grid.
	svc := defaultService()
	svc.DurationMinutes = 20
	svc.BufferMinutes = 0
	s := newTestService(svc, mondaySchedule(), occupied)

	slots, err := s.GetAvailableSlots(context.Background(), testAccountID, testServiceID, monday, Options{StepMinutes: 15})
	require.NoError(t, err)

	// [10:15, 10:35) overlaps [10:00, 10:40).
	assert.NotContains(t, slots, "10:15")
	assert.NotContains(t, slots, "10:00")
	assert.NotContains(t, slots, "10:30")
	// [09:30, 09:50) and [10:45, 11:05) are clear.
	assert.Contains(t, slots, "09:30")
	assert.Contains(t, slots, "10:45")
}

func TestInactiveServiceIsNotFound(t *testing.T) {
	svc := defaultService()
	svc.Active = false
	s := newTestService(svc, mondaySchedule(), nil)

	_, err := s.GetAvailableSlots(context.Background(), testAccountID, testServiceID, monday, Options{})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestUnknownServiceIsNotFound(t *testing.T) {
	s := newTestService(nil, mondaySchedule(), nil)

	_, err := s.GetAvailableSlots(context.Background(), testAccountID, testServiceID, monday, Options{})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestClosedDayIsEmptyNotError(t *testing.T) {
	t.Run("no schedule row", func(t *testing.T) {
		s := newTestService(defaultService(), nil, nil)
		slots, err := s.GetAvailableSlots(context.Background(), testAccountID, testServiceID, monday, Options{})
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("disabled day", func(t *testing.T) {
		schedule := mondaySchedule()
		schedule.Enabled = false
		s := newTestService(defaultService(), schedule, nil)
		slots, err := s.GetAvailableSlots(context.Background(), testAccountID, testServiceID, monday, Options{})
		require.NoError(t, err)
		assert.Empty(t, slots)
	})
}

func TestTodayDropsPastSlots(t *testing.T) {
	s := newTestService(defaultService(), mondaySchedule(), nil)
	// 10:00 sharp on the requested Monday.
	s.now = func() time.Time {
		return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	}

	slots, err := s.GetAvailableSlots(context.Background(), testAccountID, testServiceID, monday, Options{Location: time.UTC})
	require.NoError(t, err)

	// Strictly after now: 10:00 itself is gone.
	assert.NotContains(t, slots, "09:30")
	assert.NotContains(t, slots, "10:00")
	assert.Equal(t, "10:30", slots[0])
}

func TestFutureDateKeepsMorningSlots(t *testing.T) {
	s := newTestService(defaultService(), mondaySchedule(), nil)
	// The Monday before the requested date.
	s.now = func() time.Time {
		return time.Date(2026, 2, 23, 15, 0, 0, 0, time.UTC)
	}

	slots, err := s.GetAvailableSlots(context.Background(), testAccountID, testServiceID, monday, Options{Location: time.UTC})
	require.NoError(t, err)
	assert.Equal(t, "09:00", slots[0])
}

func TestStepOverride(t *testing.T) {
	s := newTestService(defaultService(), mondaySchedule(), nil)

	slots, err := s.GetAvailableSlots(context.Background(), testAccountID, testServiceID, monday, Options{StepMinutes: 60})
	require.NoError(t, err)

	require.NotEmpty(t, slots)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "10:00", slots[1])
	assert.Len(t, slots, 9) // 09:00..17:00
}

func TestReadIdempotence(t *testing.T) {
	occupied := []model.BookedInterval{
		{StartTime: 600, DurationMinutes: 30, BufferMinutes: 10},
	}
	s := newTestService(defaultService(), mondaySchedule(), occupied)

	first, err := s.GetAvailableSlots(context.Background(), testAccountID, testServiceID, monday, Options{})
	require.NoError(t, err)
	second, err := s.GetAvailableSlots(context.Background(), testAccountID, testServiceID, monday, Options{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCancelledBookingFreesSlot(t *testing.T) {
	bookings := &fakeBookingRepo{occupied: []model.BookedInterval{
		{StartTime: 600, DurationMinutes: 30, BufferMinutes: 10},
	}}
	services := &fakeServiceRepo{services: map[uuid.UUID]*model.Service{testServiceID: defaultService()}}
	schedules := &fakeScheduleRepo{rows: map[time.Weekday]*model.Schedule{time.Monday: mondaySchedule()}}
	accounts := account.NewService(&fakeAccountRepo{account: &model.Account{ID: testAccountID}}, time.Minute, 0)
	s := NewService(services, schedules, bookings, accounts, nil)
	s.now = func() time.Time { return time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC) }

	before, err := s.GetAvailableSlots(context.Background(), testAccountID, testServiceID, monday, Options{})
	require.NoError(t, err)
	assert.NotContains(t, before, "10:00")

	// Cancellation removes the booking from the non-cancelled set.
	bookings.occupied = nil

	after, err := s.GetAvailableSlots(context.Background(), testAccountID, testServiceID, monday, Options{})
	require.NoError(t, err)
	assert.Contains(t, after, "10:00")
}

func TestSlotsAreAscending(t *testing.T) {
	s := newTestService(defaultService(), mondaySchedule(), nil)

	slots, err := s.GetAvailableSlots(context.Background(), testAccountID, testServiceID, monday, Options{})
	require.NoError(t, err)

	for i := 1; i < len(slots); i++ {
		assert.Less(t, slots[i-1], slots[i])
	}
}
