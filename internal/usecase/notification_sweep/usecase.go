package notification_sweep

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TB-ReservationService/internal/domain"
	notificationRepo "github.com/m04kA/TB-ReservationService/internal/infra/storage/notification"
	"github.com/m04kA/TB-ReservationService/internal/integrations/mailerservice"
)

// UseCase use case периодического свипа уведомлений.
// Свип идемпотентен: повторный прогон по тем же данным ничего не отправит -
// журнал notification_records хранит по одной записи на пару
// (бронирование, вид уведомления).
type UseCase struct {
	reservationRepo  ReservationRepository
	restaurantRepo   RestaurantRepository
	notificationRepo NotificationRepository
	mailerClient     MailerClient
	metrics          Metrics
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	restaurantRepo RestaurantRepository,
	notificationRepo NotificationRepository,
	mailerClient MailerClient,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo:  reservationRepo,
		restaurantRepo:   restaurantRepo,
		notificationRepo: notificationRepo,
		mailerClient:     mailerClient,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет один прогон свипа для заданного вида уведомлений.
// Ошибка по отдельному бронированию не прерывает прогон: кандидат без
// записи в журнале будет подхвачен следующим прогоном.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown notification kind %q", ErrInvalidInput, req.Kind)
	}

	asOf := req.AsOf
	if asOf.IsZero() {
		asOf = uc.timeProvider.Now()
	}

	// 2. Выбираем кандидатов: для напоминания - завтрашние активные брони,
	// для запроса отзыва - вчерашние завершённые
	var targetDate time.Time
	var statuses []domain.ReservationStatus
	var eventType mailerservice.EventType

	switch req.Kind {
	case domain.KindReminder24h:
		targetDate = asOf.AddDate(0, 0, 1)
		statuses = domain.ActiveStatuses
		eventType = mailerservice.EventReservationReminder
	case domain.KindReviewRequest:
		targetDate = asOf.AddDate(0, 0, -1)
		statuses = []domain.ReservationStatus{domain.StatusCompleted}
		eventType = mailerservice.EventReviewRequest
	}

	uc.logger.Info("NotificationSweep: kind=%s, target_date=%s",
		req.Kind, targetDate.Format(domain.DateFormat))

	candidates, err := uc.reservationRepo.GetByDateAndStatuses(ctx, targetDate, statuses)
	if err != nil {
		uc.logger.Error("NotificationSweep: failed to get candidates: %v", err)
		return nil, fmt.Errorf("%w: failed to get candidates: %v", ErrInternal, err)
	}

	resp := &Response{Kind: req.Kind, Candidates: len(candidates)}
	restaurants := map[int64]*domain.Restaurant{}

	// 3. Обрабатываем кандидатов по одному
	for _, res := range candidates {
		// 3.1. Журнал: уже отправляли - пропускаем
		sent, err := uc.notificationRepo.Exists(ctx, res.ID, req.Kind)
		if err != nil {
			uc.logger.Error("NotificationSweep: failed to check journal for reservation id=%d: %v", res.ID, err)
			resp.Failed++
			continue
		}
		if sent {
			resp.Skipped++
			uc.metrics.IncNotificationSent(string(req.Kind), "skipped")
			continue
		}

		restaurant, ok := restaurants[res.RestaurantID]
		if !ok {
			restaurant, err = uc.restaurantRepo.GetByID(ctx, res.RestaurantID)
			if err != nil {
				uc.logger.Error("NotificationSweep: failed to get restaurant id=%d: %v", res.RestaurantID, err)
				resp.Failed++
				continue
			}
			restaurants[res.RestaurantID] = restaurant
		}

		// 3.2. Передаём событие почтовому сервису. Запись в журнал - только
		// после успешной передачи: неотправленное уведомление должно быть
		// повторено следующим прогоном.
		event := mailerservice.Event{
			EventID: uuid.NewString(),
			Type:    eventType,
			Restaurant: mailerservice.RestaurantInfo{
				Name:    restaurant.Name,
				Address: restaurant.Address,
				Phone:   restaurant.Phone,
			},
			Reservation: mailerservice.ReservationInfo{
				ID:         res.ID,
				Date:       res.ReservationDate.Format(domain.DateFormat),
				StartTime:  res.StartTime.String(),
				PartySize:  res.PartySize,
				Status:     string(res.Status),
				GuestName:  res.GuestContact.Name,
				GuestEmail: res.GuestContact.Email,
				GuestPhone: res.GuestContact.Phone,
			},
		}
		if err := uc.mailerClient.SendEvent(ctx, event); err != nil {
			uc.logger.Error("NotificationSweep: failed to send %s for reservation id=%d: %v",
				req.Kind, res.ID, err)
			uc.metrics.IncNotificationSent(string(req.Kind), "failed")
			resp.Failed++
			continue
		}

		// 3.3. Фиксируем отправку. Параллельный прогон мог успеть первым -
		// тогда получатель дедуплицирует по EventID, а мы считаем пропуск.
		if err := uc.notificationRepo.RecordSent(ctx, res.ID, req.Kind); err != nil {
			if errors.Is(err, notificationRepo.ErrAlreadyRecorded) {
				resp.Skipped++
				uc.metrics.IncNotificationSent(string(req.Kind), "skipped")
				continue
			}
			uc.logger.Error("NotificationSweep: failed to record %s for reservation id=%d: %v",
				req.Kind, res.ID, err)
			resp.Failed++
			continue
		}

		uc.metrics.IncNotificationSent(string(req.Kind), "sent")
		resp.Sent++
	}

	uc.logger.Info("NotificationSweep: kind=%s done: candidates=%d sent=%d skipped=%d failed=%d",
		req.Kind, resp.Candidates, resp.Sent, resp.Skipped, resp.Failed)

	return resp, nil
}
