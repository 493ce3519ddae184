package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TB-ReservationService/internal/domain"
	restaurantStorage "github.com/m04kA/TB-ReservationService/internal/infra/storage/restaurant"
	"github.com/m04kA/TB-ReservationService/pkg/types"
)

// --- фейки ---

type fakeReservationRepo struct {
	reservations []*domain.Reservation
}

func (f *fakeReservationRepo) GetByRestaurantWithFilter(_ context.Context, filter domain.RestaurantReservationsFilter) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, res := range f.reservations {
		if res.RestaurantID != filter.RestaurantID {
			continue
		}
		if filter.StartDate != nil && res.ReservationDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && res.ReservationDate.After(*filter.EndDate) {
			continue
		}
		if !filter.IncludeInactive && res.IsTerminal() {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

type fakeRestaurantRepo struct {
	restaurant *domain.Restaurant
	rules      []*domain.ScheduleRule
	policy     *domain.BookingPolicy
	tables     []*domain.Table
}

func (f *fakeRestaurantRepo) GetByID(_ context.Context, id int64) (*domain.Restaurant, error) {
	if f.restaurant == nil || f.restaurant.ID != id {
		return nil, restaurantStorage.ErrRestaurantNotFound
	}
	return f.restaurant, nil
}

func (f *fakeRestaurantRepo) GetScheduleRules(_ context.Context, _ int64) ([]*domain.ScheduleRule, error) {
	return f.rules, nil
}

func (f *fakeRestaurantRepo) GetPolicy(_ context.Context, _ int64) (*domain.BookingPolicy, error) {
	if f.policy == nil {
		return nil, restaurantStorage.ErrPolicyNotFound
	}
	return f.policy, nil
}

func (f *fakeRestaurantRepo) GetActiveTables(_ context.Context, _ int64) ([]*domain.Table, error) {
	return f.tables, nil
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- обвязка ---

type fixture struct {
	uc              *UseCase
	reservationRepo *fakeReservationRepo
	restaurantRepo  *fakeRestaurantRepo
	clock           *fakeClock
	date            time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	// Сейчас среда 2025-10-15 12:00, запрос на понедельник 2025-10-20.
	// Расписание пн-сб 11:00-22:00, слот 90 минут, столы на {2, 4, 6}.
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	date := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)

	rules := make([]*domain.ScheduleRule, 0, 6)
	for dow := 1; dow <= 6; dow++ {
		rules = append(rules, &domain.ScheduleRule{
			RestaurantID: 1,
			DayOfWeek:    dow,
			OpenTime:     "11:00",
			CloseTime:    "22:00",
		})
	}

	reservationRepo := &fakeReservationRepo{}
	restaurantRepo := &fakeRestaurantRepo{
		restaurant: &domain.Restaurant{ID: 1, OwnerUserID: 99, Name: "Bistro", IsActive: true},
		rules:      rules,
		policy: &domain.BookingPolicy{
			RestaurantID:        1,
			SlotDurationMinutes: 90,
			AdvanceBookingDays:  30,
			SameDayCutoffHours:  2,
			MaxPartySize:        10,
		},
		tables: []*domain.Table{
			{ID: 1, RestaurantID: 1, Capacity: 2, IsActive: true},
			{ID: 2, RestaurantID: 1, Capacity: 4, IsActive: true},
			{ID: 3, RestaurantID: 1, Capacity: 6, IsActive: true},
		},
	}
	clock := &fakeClock{now: now}

	uc := NewUseCase(reservationRepo, restaurantRepo, nopLogger{})
	uc.timeProvider = clock

	return &fixture{
		uc:              uc,
		reservationRepo: reservationRepo,
		restaurantRepo:  restaurantRepo,
		clock:           clock,
		date:            date,
	}
}

func (f *fixture) request() *Request {
	return &Request{RestaurantID: 1, Date: f.date, PartySize: 4}
}

// --- тесты ---

func TestExecute_FullDayOfSlots(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	// 11:00-22:00, шаг 30 минут, последний старт 20:30
	require.Len(t, resp.Slots, 20)
	assert.Equal(t, types.TimeString("11:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("20:30"), resp.Slots[len(resp.Slots)-1].StartTime)
	assert.Equal(t, 2, resp.EligibleTableCount)

	for _, slot := range resp.Slots {
		assert.Equal(t, 90, slot.DurationMinutes)
		assert.Equal(t, 2, slot.Total)
	}
}

func TestExecute_ReservedSlotsClassified(t *testing.T) {
	f := newFixture(t)

	// Компании из 4 подходят два стола; 19:00 занят частично, 20:00 полностью
	f.reservationRepo.reservations = []*domain.Reservation{
		{ID: 1, RestaurantID: 1, ReservationDate: f.date, StartTime: "19:00", PartySize: 4, Status: domain.StatusConfirmed},
		{ID: 2, RestaurantID: 1, ReservationDate: f.date, StartTime: "20:00", PartySize: 4, Status: domain.StatusPending},
		{ID: 3, RestaurantID: 1, ReservationDate: f.date, StartTime: "20:00", PartySize: 2, Status: domain.StatusSeated},
		{ID: 4, RestaurantID: 1, ReservationDate: f.date, StartTime: "18:00", PartySize: 4, Status: domain.StatusCancelled},
	}

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	byStart := map[types.TimeString]Slot{}
	for _, slot := range resp.Slots {
		byStart[slot.StartTime] = slot
	}

	assert.Equal(t, domain.SlotLimited, byStart["19:00"].Status)
	assert.Equal(t, 1, byStart["19:00"].Remaining)
	assert.Equal(t, domain.SlotUnavailable, byStart["20:00"].Status)
	assert.Equal(t, 0, byStart["20:00"].Remaining)
	// Отменённая бронь на 18:00 вместимость не занимает
	assert.Equal(t, 2, byStart["18:00"].Remaining)
}

func TestExecute_ClosedDayReturnsEmptyList(t *testing.T) {
	f := newFixture(t)

	// Воскресенье без правила - выходной: пустой список, не ошибка
	req := f.request()
	req.Date = time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.NotNil(t, resp.Slots)
}

func TestExecute_InactiveRestaurantLooksAbsent(t *testing.T) {
	f := newFixture(t)
	f.restaurantRepo.restaurant.IsActive = false

	// Скрытый ресторан не отдаёт даже частичный список слотов
	resp, err := f.uc.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
	assert.Nil(t, resp)
}

func TestExecute_UnknownRestaurant(t *testing.T) {
	f := newFixture(t)

	req := f.request()
	req.RestaurantID = 42

	resp, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
	assert.Nil(t, resp)
}

func TestExecute_SameDayCutoffFiltersMorning(t *testing.T) {
	f := newFixture(t)

	// Сегодня (среда, сейчас 12:00, cutoff 2ч): остаются слоты с 14:00
	req := f.request()
	req.Date = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, types.TimeString("14:00"), resp.Slots[0].StartTime)
	for _, slot := range resp.Slots {
		assert.False(t, slot.StartTime.IsBefore("14:00"))
	}
}

func TestExecute_DateWindowEnforced(t *testing.T) {
	f := newFixture(t)

	past := f.request()
	past.Date = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	_, err := f.uc.Execute(context.Background(), past)
	assert.ErrorIs(t, err, ErrInvalidDate)

	tooFar := f.request()
	tooFar.Date = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	_, err = f.uc.Execute(context.Background(), tooFar)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_PartySizeExceedsLimit(t *testing.T) {
	f := newFixture(t)

	req := f.request()
	req.PartySize = 11

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPartySizeExceedsLimit)
}

func TestExecute_NoEligibleTablesAllSlotsUnavailable(t *testing.T) {
	f := newFixture(t)

	req := f.request()
	req.PartySize = 8 // самый большой стол на 6

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Zero(t, resp.EligibleTableCount)
	require.NotEmpty(t, resp.Slots)
	for _, slot := range resp.Slots {
		assert.Equal(t, domain.SlotUnavailable, slot.Status)
		assert.Zero(t, slot.Remaining)
	}
}

func TestExecute_InvalidScheduleSurfaced(t *testing.T) {
	f := newFixture(t)

	for _, r := range f.restaurantRepo.rules {
		r.OpenTime = "22:00"
		r.CloseTime = "11:00"
	}

	_, err := f.uc.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestExecute_DefaultPolicyWhenNotConfigured(t *testing.T) {
	f := newFixture(t)
	f.restaurantRepo.policy = nil

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, resp.Slots[0].DurationMinutes)
}
