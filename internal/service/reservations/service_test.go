package reservations

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
	"github.com/m04kA/TB-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/TB-ReservationService/pkg/ptr"
)

const (
	guestUserID    = 7
	ownerUserID    = 99
	strangerUserID = 1000
)

// --- фейки ---

type statusUpdate struct {
	id     int64
	status domain.ReservationStatus
}

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	updates      []statusUpdate
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

func (f *fakeReservationRepo) GetByUserID(_ context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, res := range f.reservations {
		if res.UserID != userID {
			continue
		}
		if status != nil && res.Status != *status {
			continue
		}
		copied := *res
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeReservationRepo) GetByRestaurantWithFilter(_ context.Context, filter domain.RestaurantReservationsFilter) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, res := range f.reservations {
		if res.RestaurantID != filter.RestaurantID {
			continue
		}
		if filter.Status != nil && res.Status != *filter.Status {
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

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus) error {
	for _, res := range f.reservations {
		if res.ID == id {
			res.Status = status
			f.updates = append(f.updates, statusUpdate{id, status})
			return nil
		}
	}
	return reservationStorage.ErrReservationNotFound
}

type fakeRestaurantRepo struct {
	restaurants map[int64]*domain.Restaurant
}

func (f *fakeRestaurantRepo) GetByID(_ context.Context, id int64) (*domain.Restaurant, error) {
	restaurant, ok := f.restaurants[id]
	if !ok {
		return nil, restaurantStorage.ErrRestaurantNotFound
	}
	return restaurant, nil
}

type fakeMailer struct {
	cancelled []int64
}

func (f *fakeMailer) NotifyReservationCancelled(_ context.Context, _ mailerservice.RestaurantInfo, res mailerservice.ReservationInfo) {
	f.cancelled = append(f.cancelled, res.ID)
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
	svc             *Service
	reservationRepo *fakeReservationRepo
	mailer          *fakeMailer
	clock           *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	// Сейчас 2025-10-15 12:00; бронирование #1 сегодня в 19:00
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	today := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	reservationRepo := &fakeReservationRepo{
		reservations: []*domain.Reservation{
			{
				ID:              1,
				RestaurantID:    1,
				UserID:          guestUserID,
				ReservationDate: today,
				StartTime:       "19:00",
				PartySize:       4,
				Status:          domain.StatusConfirmed,
				GuestContact:    domain.GuestContact{Name: "Анна", Email: "anna@example.com"},
			},
		},
	}
	restaurantRepo := &fakeRestaurantRepo{
		restaurants: map[int64]*domain.Restaurant{
			1: {ID: 1, OwnerUserID: ownerUserID, Name: "Bistro", IsActive: true},
		},
	}
	mailer := &fakeMailer{}
	clock := &fakeClock{now: now}

	svc := NewService(reservationRepo, restaurantRepo, mailer, nopLogger{})
	svc.timeProvider = clock

	return &fixture{svc: svc, reservationRepo: reservationRepo, mailer: mailer, clock: clock}
}

func (f *fixture) reservation() *domain.Reservation {
	return f.reservationRepo.reservations[0]
}

// --- тесты ---

func TestGetByID_OwnerAndStaffSeeReservation(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.GetByID(context.Background(), 1, guestUserID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	_, err = f.svc.GetByID(context.Background(), 1, ownerUserID)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), 1, strangerUserID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetByID(context.Background(), 42, guestUserID)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetUserReservations_FiltersByStatus(t *testing.T) {
	f := newFixture(t)

	f.reservationRepo.reservations = append(f.reservationRepo.reservations, &domain.Reservation{
		ID: 2, RestaurantID: 1, UserID: guestUserID,
		ReservationDate: time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       "18:00", PartySize: 2, Status: domain.StatusCompleted,
	})

	all, err := f.svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{UserID: guestUserID})
	require.NoError(t, err)
	assert.Len(t, all.Reservations, 2)

	filtered, err := f.svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{UserID: guestUserID, Status: ptr.Ptr("completed")})
	require.NoError(t, err)
	require.Len(t, filtered.Reservations, 1)
	assert.Equal(t, int64(2), filtered.Reservations[0].ID)

	_, err = f.svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{UserID: guestUserID, Status: ptr.Ptr("eaten")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetRestaurantReservations_StaffOnly(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.GetRestaurantReservations(context.Background(), &models.GetRestaurantReservationsRequest{
		UserID:       ownerUserID,
		RestaurantID: 1,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 1)

	_, err = f.svc.GetRestaurantReservations(context.Background(), &models.GetRestaurantReservationsRequest{
		UserID:       guestUserID,
		RestaurantID: 1,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_OwnerBeforeStart(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{UserID: guestUserID})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, f.reservation().Status)
	assert.Equal(t, []int64{1}, f.mailer.cancelled)
}

func TestCancel_OwnerAfterStartRejected(t *testing.T) {
	f := newFixture(t)

	// 19:00 уже наступило (и ровно в 19:00 - тоже поздно)
	f.clock.now = time.Date(2025, 10, 15, 19, 0, 0, 0, time.UTC)

	err := f.svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{UserID: guestUserID})
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Empty(t, f.reservationRepo.updates)
}

func TestCancel_StaffNotBoundByStart(t *testing.T) {
	f := newFixture(t)

	// Персонал отменяет и после начала: гость сидит за столом, но ушёл
	f.clock.now = time.Date(2025, 10, 15, 19, 30, 0, 0, time.UTC)
	f.reservation().Status = domain.StatusSeated

	err := f.svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{UserID: ownerUserID})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, f.reservation().Status)
}

func TestCancel_StrangerRejected(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{UserID: strangerUserID})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_TerminalStatusRejected(t *testing.T) {
	f := newFixture(t)

	for _, status := range []domain.ReservationStatus{
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusNoShow,
	} {
		t.Run(string(status), func(t *testing.T) {
			f.reservation().Status = status

			err := f.svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{UserID: guestUserID})
			assert.ErrorIs(t, err, ErrCannotCancel)
		})
	}
}

func TestUpdateStatus_LifecycleGraph(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name    string
		from    domain.ReservationStatus
		to      string
		wantErr error
	}{
		{name: "pending подтверждается", from: domain.StatusPending, to: "confirmed"},
		{name: "pending сажается сразу", from: domain.StatusPending, to: "seated"},
		{name: "confirmed сажается", from: domain.StatusConfirmed, to: "seated"},
		{name: "seated завершается", from: domain.StatusSeated, to: "completed"},
		{name: "confirmed нельзя завершить мимо seated", from: domain.StatusConfirmed, to: "completed", wantErr: ErrInvalidTransition},
		{name: "confirmed нельзя вернуть в pending", from: domain.StatusConfirmed, to: "pending", wantErr: ErrInvalidTransition},
		{name: "completed терминален", from: domain.StatusCompleted, to: "seated", wantErr: ErrInvalidTransition},
		{name: "cancelled терминален", from: domain.StatusCancelled, to: "confirmed", wantErr: ErrInvalidTransition},
		{name: "неизвестный статус", from: domain.StatusPending, to: "vanished", wantErr: ErrInvalidStatus},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f.reservation().Status = tc.from

			err := f.svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: ownerUserID, Status: tc.to})
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.ReservationStatus(tc.to), f.reservation().Status)
		})
	}
}

func TestUpdateStatus_StaffOnly(t *testing.T) {
	f := newFixture(t)

	// Даже владелец бронирования не меняет статусы напрямую
	err := f.svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: guestUserID, Status: "seated"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_NoShowOnlyAfterStart(t *testing.T) {
	f := newFixture(t)

	// До 19:00 неявку фиксировать рано
	err := f.svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: ownerUserID, Status: "no_show"})
	assert.ErrorIs(t, err, ErrNoShowBeforeStart)

	f.clock.now = time.Date(2025, 10, 15, 19, 15, 0, 0, time.UTC)

	err = f.svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: ownerUserID, Status: "no_show"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNoShow, f.reservation().Status)
}

func TestUpdateStatus_StaffCancellationNotifiesGuest(t *testing.T) {
	f := newFixture(t)

	err := f.svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: ownerUserID, Status: "cancelled"})
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, f.mailer.cancelled)

	// Подтверждение статуса уведомлением об отмене не сопровождается
	f.reservation().Status = domain.StatusPending
	err = f.svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: ownerUserID, Status: "confirmed"})
	require.NoError(t, err)
	assert.Len(t, f.mailer.cancelled, 1)
}
