package notification_sweep

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TB-ReservationService/internal/domain"
	notificationStorage "github.com/m04kA/TB-ReservationService/internal/infra/storage/notification"
	restaurantStorage "github.com/m04kA/TB-ReservationService/internal/infra/storage/restaurant"
	"github.com/m04kA/TB-ReservationService/internal/integrations/mailerservice"
)

// --- фейки ---

type fakeReservationRepo struct {
	reservations []*domain.Reservation
}

func (f *fakeReservationRepo) GetByDateAndStatuses(_ context.Context, date time.Time, statuses []domain.ReservationStatus) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, res := range f.reservations {
		if !sameDay(res.ReservationDate, date) {
			continue
		}
		for _, status := range statuses {
			if res.Status == status {
				out = append(out, res)
				break
			}
		}
	}
	return out, nil
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

type fakeRestaurantRepo struct {
	restaurants map[int64]*domain.Restaurant
	calls       int
}

func (f *fakeRestaurantRepo) GetByID(_ context.Context, id int64) (*domain.Restaurant, error) {
	f.calls++
	restaurant, ok := f.restaurants[id]
	if !ok {
		return nil, restaurantStorage.ErrRestaurantNotFound
	}
	return restaurant, nil
}

type journalKey struct {
	reservationID int64
	kind          domain.NotificationKind
}

type fakeNotificationRepo struct {
	records   map[journalKey]bool
	recordErr error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{records: map[journalKey]bool{}}
}

func (f *fakeNotificationRepo) Exists(_ context.Context, reservationID int64, kind domain.NotificationKind) (bool, error) {
	return f.records[journalKey{reservationID, kind}], nil
}

func (f *fakeNotificationRepo) RecordSent(_ context.Context, reservationID int64, kind domain.NotificationKind) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	key := journalKey{reservationID, kind}
	if f.records[key] {
		return notificationStorage.ErrAlreadyRecorded
	}
	f.records[key] = true
	return nil
}

type fakeMailer struct {
	events  []mailerservice.Event
	failIDs map[int64]bool
}

func (f *fakeMailer) SendEvent(_ context.Context, event mailerservice.Event) error {
	if f.failIDs[event.Reservation.ID] {
		return fmt.Errorf("mailer unavailable")
	}
	f.events = append(f.events, event)
	return nil
}

type metricKey struct {
	kind   string
	status string
}

type fakeMetrics struct {
	counts map[metricKey]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{counts: map[metricKey]int{}}
}

func (f *fakeMetrics) IncNotificationSent(kind, status string) {
	f.counts[metricKey{kind, status}]++
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- обвязка ---

type fixture struct {
	uc               *UseCase
	reservationRepo  *fakeReservationRepo
	restaurantRepo   *fakeRestaurantRepo
	notificationRepo *fakeNotificationRepo
	mailer           *fakeMailer
	metrics          *fakeMetrics
	asOf             time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	asOf := time.Date(2025, 10, 15, 3, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)
	yesterday := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)

	reservationRepo := &fakeReservationRepo{
		reservations: []*domain.Reservation{
			{ID: 1, RestaurantID: 1, UserID: 7, ReservationDate: tomorrow, StartTime: "19:00", PartySize: 4, Status: domain.StatusPending, GuestContact: domain.GuestContact{Name: "Анна", Email: "anna@example.com"}},
			{ID: 2, RestaurantID: 1, UserID: 8, ReservationDate: tomorrow, StartTime: "20:00", PartySize: 2, Status: domain.StatusConfirmed, GuestContact: domain.GuestContact{Name: "Борис", Phone: "+79990000000"}},
			{ID: 3, RestaurantID: 2, UserID: 9, ReservationDate: tomorrow, StartTime: "18:00", PartySize: 6, Status: domain.StatusCancelled},
			{ID: 4, RestaurantID: 1, UserID: 7, ReservationDate: yesterday, StartTime: "19:00", PartySize: 4, Status: domain.StatusCompleted, GuestContact: domain.GuestContact{Name: "Анна", Email: "anna@example.com"}},
			{ID: 5, RestaurantID: 1, UserID: 8, ReservationDate: yesterday, StartTime: "12:00", PartySize: 2, Status: domain.StatusNoShow},
		},
	}
	restaurantRepo := &fakeRestaurantRepo{
		restaurants: map[int64]*domain.Restaurant{
			1: {ID: 1, OwnerUserID: 99, Name: "Bistro", IsActive: true},
			2: {ID: 2, OwnerUserID: 98, Name: "Trattoria", IsActive: true},
		},
	}
	notificationRepo := newFakeNotificationRepo()
	mailer := &fakeMailer{failIDs: map[int64]bool{}}
	metrics := newFakeMetrics()

	uc := NewUseCase(reservationRepo, restaurantRepo, notificationRepo, mailer, metrics, nopLogger{})
	uc.timeProvider = &fakeClock{now: asOf}

	return &fixture{
		uc:               uc,
		reservationRepo:  reservationRepo,
		restaurantRepo:   restaurantRepo,
		notificationRepo: notificationRepo,
		mailer:           mailer,
		metrics:          metrics,
		asOf:             asOf,
	}
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

// --- тесты ---

func TestExecute_ReminderSweepTargetsTomorrowActive(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{Kind: domain.KindReminder24h, AsOf: f.asOf})
	require.NoError(t, err)

	// Отменённая бронь #3 кандидатом не является
	assert.Equal(t, 2, resp.Candidates)
	assert.Equal(t, 2, resp.Sent)
	assert.Zero(t, resp.Skipped)
	assert.Zero(t, resp.Failed)

	require.Len(t, f.mailer.events, 2)
	for _, event := range f.mailer.events {
		assert.Equal(t, mailerservice.EventReservationReminder, event.Type)
		assert.NotEmpty(t, event.EventID)
		assert.Equal(t, "Bistro", event.Restaurant.Name)
	}

	assert.Equal(t, 2, f.metrics.counts[metricKey{"reminder_24h", "sent"}])
}

func TestExecute_ReviewSweepTargetsYesterdayCompleted(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{Kind: domain.KindReviewRequest, AsOf: f.asOf})
	require.NoError(t, err)

	// Неявка #5 запрос отзыва не получает
	assert.Equal(t, 1, resp.Candidates)
	assert.Equal(t, 1, resp.Sent)

	require.Len(t, f.mailer.events, 1)
	assert.Equal(t, mailerservice.EventReviewRequest, f.mailer.events[0].Type)
	assert.Equal(t, int64(4), f.mailer.events[0].Reservation.ID)
}

func TestExecute_SecondRunSendsNothing(t *testing.T) {
	f := newFixture(t)

	req := &Request{Kind: domain.KindReminder24h, AsOf: f.asOf}

	first, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 2, first.Sent)

	second, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Zero(t, second.Sent)
	assert.Equal(t, 2, second.Skipped)
	assert.Len(t, f.mailer.events, 2)
	assert.Equal(t, 2, f.metrics.counts[metricKey{"reminder_24h", "skipped"}])
}

func TestExecute_FailedSendIsRetriedNextRun(t *testing.T) {
	f := newFixture(t)
	f.mailer.failIDs[2] = true

	req := &Request{Kind: domain.KindReminder24h, AsOf: f.asOf}

	first, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, first.Sent)
	assert.Equal(t, 1, first.Failed)
	// Неотправленное уведомление в журнал не попадает
	assert.False(t, f.notificationRepo.records[journalKey{2, domain.KindReminder24h}])

	// Почтовый сервис ожил - следующий прогон досылает
	f.mailer.failIDs = map[int64]bool{}

	second, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, second.Sent)
	assert.Equal(t, 1, second.Skipped)
	assert.True(t, f.notificationRepo.records[journalKey{2, domain.KindReminder24h}])
}

func TestExecute_ConcurrentRecordCountsAsSkip(t *testing.T) {
	f := newFixture(t)
	f.notificationRepo.recordErr = notificationStorage.ErrAlreadyRecorded

	resp, err := f.uc.Execute(context.Background(), &Request{Kind: domain.KindReminder24h, AsOf: f.asOf})
	require.NoError(t, err)

	assert.Zero(t, resp.Sent)
	assert.Equal(t, 2, resp.Skipped)
}

func TestExecute_JournalWriteErrorCountsAsFailure(t *testing.T) {
	f := newFixture(t)
	f.notificationRepo.recordErr = errors.New("connection reset")

	resp, err := f.uc.Execute(context.Background(), &Request{Kind: domain.KindReminder24h, AsOf: f.asOf})
	require.NoError(t, err)

	assert.Zero(t, resp.Sent)
	assert.Equal(t, 2, resp.Failed)
}

func TestExecute_RestaurantFetchedOncePerSweep(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{Kind: domain.KindReminder24h, AsOf: f.asOf})
	require.NoError(t, err)

	// Оба кандидата из одного ресторана - один поход в справочник
	assert.Equal(t, 1, f.restaurantRepo.calls)
}

func TestExecute_UnknownKindRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{Kind: "marketing_blast", AsOf: f.asOf})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
