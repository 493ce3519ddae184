package modify_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TB-ReservationService/internal/domain"
	reservationStorage "github.com/m04kA/TB-ReservationService/internal/infra/storage/reservation"
	restaurantStorage "github.com/m04kA/TB-ReservationService/internal/infra/storage/restaurant"
	"github.com/m04kA/TB-ReservationService/internal/integrations/mailerservice"
	"github.com/m04kA/TB-ReservationService/pkg/ptr"
	"github.com/m04kA/TB-ReservationService/pkg/types"
)

// --- фейки ---

type rescheduleCall struct {
	id        int64
	date      time.Time
	startTime types.TimeString
	partySize int
	status    domain.ReservationStatus
}

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	rescheduled  []rescheduleCall
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	for _, res := range f.reservations {
		if res.ID == id {
			copied := *res
			return &copied, nil
		}
	}
	return nil, reservationStorage.ErrReservationNotFound
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
		copied := *res
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeReservationRepo) Reschedule(_ context.Context, id int64, date time.Time, startTime types.TimeString, partySize int, status domain.ReservationStatus) error {
	f.rescheduled = append(f.rescheduled, rescheduleCall{id, date, startTime, partySize, status})
	for _, res := range f.reservations {
		if res.ID == id {
			res.ReservationDate = date
			res.StartTime = startTime
			res.PartySize = partySize
			res.Status = status
		}
	}
	return nil
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

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMailer struct {
	updated []int64
}

func (f *fakeMailer) NotifyReservationUpdated(_ context.Context, _ mailerservice.RestaurantInfo, res mailerservice.ReservationInfo) {
	f.updated = append(f.updated, res.ID)
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
	mailer          *fakeMailer
	now             time.Time
	date            time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	// Сейчас среда 2025-10-15 12:00; бронирование на понедельник 2025-10-20 19:00.
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

	reservationRepo := &fakeReservationRepo{
		reservations: []*domain.Reservation{
			{
				ID:              1,
				RestaurantID:    1,
				UserID:          7,
				ReservationDate: date,
				StartTime:       "19:00",
				PartySize:       4,
				Status:          domain.StatusConfirmed,
				GuestContact:    domain.GuestContact{Name: "Анна", Email: "anna@example.com"},
			},
		},
	}
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
	mailer := &fakeMailer{}

	uc := NewUseCase(reservationRepo, restaurantRepo, mailer, fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fakeClock{now: now}

	return &fixture{
		uc:              uc,
		reservationRepo: reservationRepo,
		restaurantRepo:  restaurantRepo,
		mailer:          mailer,
		now:             now,
		date:            date,
	}
}

// --- тесты ---

func TestExecute_ReschedulesToNewTime(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 1,
		UserID:        7,
		StartTime:     ptr.Ptr(types.TimeString("20:00")),
	})
	require.NoError(t, err)

	// Непереданные поля сохраняются, статус после изменения - confirmed
	assert.Equal(t, types.TimeString("20:00"), resp.StartTime)
	assert.Equal(t, f.date, resp.Date)
	assert.Equal(t, 4, resp.PartySize)
	assert.Equal(t, domain.StatusConfirmed, resp.Status)

	require.Len(t, f.reservationRepo.rescheduled, 1)
	assert.Equal(t, domain.StatusConfirmed, f.reservationRepo.rescheduled[0].status)
	assert.Equal(t, []int64{1}, f.mailer.updated)
}

func TestExecute_ReservationNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 42, UserID: 7, StartTime: ptr.Ptr(types.TimeString("20:00"))})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_OnlyOwnerMayModify(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 1, UserID: 8, StartTime: ptr.Ptr(types.TimeString("20:00"))})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestExecute_OnlyPendingAndConfirmedModifiable(t *testing.T) {
	f := newFixture(t)

	for _, status := range []domain.ReservationStatus{
		domain.StatusSeated,
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusNoShow,
	} {
		t.Run(string(status), func(t *testing.T) {
			f.reservationRepo.reservations[0].Status = status

			_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 1, UserID: 7, StartTime: ptr.Ptr(types.TimeString("20:00"))})
			assert.ErrorIs(t, err, ErrCannotModify)
		})
	}
}

func TestExecute_ModifyCutoff(t *testing.T) {
	f := newFixture(t)

	// Бронирование сегодня в 13:30: до начала меньше двух часов
	today := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	f.reservationRepo.reservations[0].ReservationDate = today
	f.reservationRepo.reservations[0].StartTime = "13:30"

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 1, UserID: 7, PartySize: ptr.Ptr(2)})
	assert.ErrorIs(t, err, ErrModifyCutoffPassed)
	assert.Empty(t, f.reservationRepo.rescheduled)

	// Ровно за два часа до начала уже поздно: требуется строго раньше
	f.reservationRepo.reservations[0].StartTime = "14:00"

	_, err = f.uc.Execute(context.Background(), &Request{ReservationID: 1, UserID: 7, PartySize: ptr.Ptr(2)})
	assert.ErrorIs(t, err, ErrModifyCutoffPassed)

	// А за два с половиной часа - ещё можно
	f.reservationRepo.reservations[0].StartTime = "14:30"

	_, err = f.uc.Execute(context.Background(), &Request{ReservationID: 1, UserID: 7, PartySize: ptr.Ptr(2)})
	assert.NoError(t, err)
}

func TestExecute_OwnRowDoesNotBlockItself(t *testing.T) {
	f := newFixture(t)

	// Единственный стол; собственное бронирование занимает целевой слот
	f.restaurantRepo.tables = []*domain.Table{
		{ID: 1, RestaurantID: 1, Capacity: 6, IsActive: true},
	}

	// Меняем только размер компании, слот тот же
	resp, err := f.uc.Execute(context.Background(), &Request{ReservationID: 1, UserID: 7, PartySize: ptr.Ptr(6)})
	require.NoError(t, err)
	assert.Equal(t, 6, resp.PartySize)
}

func TestExecute_NoAvailabilityLeavesOriginalUntouched(t *testing.T) {
	f := newFixture(t)

	// Чужое бронирование занимает единственный стол в целевом слоте
	f.restaurantRepo.tables = []*domain.Table{
		{ID: 1, RestaurantID: 1, Capacity: 6, IsActive: true},
	}
	f.reservationRepo.reservations = append(f.reservationRepo.reservations, &domain.Reservation{
		ID:              2,
		RestaurantID:    1,
		UserID:          8,
		ReservationDate: f.date,
		StartTime:       "20:00",
		PartySize:       4,
		Status:          domain.StatusConfirmed,
	})

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 1, UserID: 7, StartTime: ptr.Ptr(types.TimeString("20:00"))})
	assert.ErrorIs(t, err, ErrNoAvailability)

	// Исходное бронирование не тронуто
	assert.Empty(t, f.reservationRepo.rescheduled)
	assert.Equal(t, types.TimeString("19:00"), f.reservationRepo.reservations[0].StartTime)
	assert.Empty(t, f.mailer.updated)
}

func TestExecute_NewSlotFullyRevalidated(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			name:    "размер компании сверх лимита",
			req:     &Request{ReservationID: 1, UserID: 7, PartySize: ptr.Ptr(11)},
			wantErr: ErrPartySizeExceedsLimit,
		},
		{
			name:    "нет стола под новый размер",
			req:     &Request{ReservationID: 1, UserID: 7, PartySize: ptr.Ptr(8)},
			wantErr: ErrNoTableForPartySize,
		},
		{
			name:    "перенос на закрытый день",
			req:     &Request{ReservationID: 1, UserID: 7, Date: ptr.Ptr(time.Date(2025, 10, 26, 0, 0, 0, 0, time.UTC))},
			wantErr: ErrClosedOrOutOfWindow,
		},
		{
			name:    "время вне слотовой сетки",
			req:     &Request{ReservationID: 1, UserID: 7, StartTime: ptr.Ptr(types.TimeString("19:45"))},
			wantErr: ErrClosedOrOutOfWindow,
		},
		{
			name:    "слот не помещается до закрытия",
			req:     &Request{ReservationID: 1, UserID: 7, StartTime: ptr.Ptr(types.TimeString("21:30"))},
			wantErr: ErrClosedOrOutOfWindow,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, f.reservationRepo.rescheduled)
		})
	}
}

func TestExecute_InactiveRestaurantLooksAbsent(t *testing.T) {
	f := newFixture(t)
	f.restaurantRepo.restaurant.IsActive = false

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 1, UserID: 7, StartTime: ptr.Ptr(types.TimeString("20:00"))})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}
