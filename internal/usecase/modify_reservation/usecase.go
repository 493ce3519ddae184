package modify_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/TB-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/TB-ReservationService/internal/infra/storage/reservation"
	restaurantRepo "github.com/m04kA/TB-ReservationService/internal/infra/storage/restaurant"
	"github.com/m04kA/TB-ReservationService/internal/integrations/mailerservice"
)

// UseCase use case для изменения бронирования гостем
type UseCase struct {
	reservationRepo ReservationRepository
	restaurantRepo  RestaurantRepository
	mailerClient    MailerClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	restaurantRepo RestaurantRepository,
	mailerClient MailerClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		restaurantRepo:  restaurantRepo,
		mailerClient:    mailerClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case изменения бронирования. Новый слот проходит
// полную проверку допуска в той же SERIALIZABLE транзакции, что и у
// создания; при отказе исходное бронирование остаётся нетронутым.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ModifyReservation: reservation=%d, user=%d", req.ReservationID, req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ModifyReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var updated *domain.Reservation
	var restaurant *domain.Restaurant

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3. Получаем бронирование
		original, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to get reservation: %w", ErrInternal, err)
		}

		// 4. Проверяем владельца
		if original.UserID != req.UserID {
			return ErrPermissionDenied
		}

		// 5. Изменять можно только pending и confirmed
		if !original.CanBeModified() {
			return fmt.Errorf("%w: status %s", ErrCannotModify, original.Status)
		}

		// 6. Cutoff на изменение: строго раньше, чем за 2 часа до начала,
		// ровно за 2 часа уже поздно. Отмена этим лимитом не ограничена.
		if !now.Before(original.StartsAt().Add(-domain.ModifyCutoffHours * time.Hour)) {
			return fmt.Errorf("%w: starts at %s", ErrModifyCutoffPassed, original.StartsAt().Format(time.RFC3339))
		}

		// 7. Собираем целевые значения: непереданные поля берём из оригинала
		newDate := original.ReservationDate
		if req.Date != nil {
			newDate = *req.Date
		}
		newStartTime := original.StartTime
		if req.StartTime != nil {
			newStartTime = *req.StartTime
		}
		newPartySize := original.PartySize
		if req.PartySize != nil {
			newPartySize = *req.PartySize
		}

		// 8. Ресторан всё ещё должен быть виден
		restaurant, err = uc.restaurantRepo.GetByID(txCtx, original.RestaurantID)
		if err != nil {
			if errors.Is(err, restaurantRepo.ErrRestaurantNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to get restaurant: %w", ErrInternal, err)
		}
		if !restaurant.IsActive {
			return ErrReservationNotFound
		}

		// 9. Политика бронирования; без настроенной - дефолтная
		policy, err := uc.restaurantRepo.GetPolicy(txCtx, original.RestaurantID)
		if err != nil {
			if !errors.Is(err, restaurantRepo.ErrPolicyNotFound) {
				return fmt.Errorf("%w: failed to get policy: %w", ErrInternal, err)
			}
			policy = domain.DefaultBookingPolicy(original.RestaurantID)
		}

		if newPartySize > policy.MaxPartySize {
			return fmt.Errorf("%w: %d > %d", ErrPartySizeExceedsLimit, newPartySize, policy.MaxPartySize)
		}

		// 10. Новый слот проходит те же проверки расписания, что и при создании
		if err := validateDate(newDate, now, policy.AdvanceBookingDays); err != nil {
			return err
		}

		rules, err := uc.restaurantRepo.GetScheduleRules(txCtx, original.RestaurantID)
		if err != nil {
			return fmt.Errorf("%w: failed to get schedule rules: %w", ErrInternal, err)
		}
		rule := domain.RuleForDate(rules, newDate)
		if rule == nil {
			return fmt.Errorf("%w: restaurant is closed on %s",
				ErrClosedOrOutOfWindow, newDate.Format(domain.DateFormat))
		}
		if !rule.IsValid() {
			return fmt.Errorf("%w: close time %s is not after open time %s",
				ErrInvalidSchedule, rule.CloseTime, rule.OpenTime)
		}

		if err := validateSlotTime(rule, newStartTime, policy.SlotDurationMinutes); err != nil {
			return err
		}

		if err := validateSameDayCutoff(newDate, newStartTime, now, policy.SameDayCutoffHours); err != nil {
			return err
		}

		// 11. Подходящие столы под новый размер компании
		tables, err := uc.restaurantRepo.GetActiveTables(txCtx, original.RestaurantID)
		if err != nil {
			return fmt.Errorf("%w: failed to get tables: %w", ErrInternal, err)
		}
		eligible := domain.EligibleTableCount(tables, newPartySize)
		if eligible == 0 {
			return fmt.Errorf("%w: party of %d", ErrNoTableForPartySize, newPartySize)
		}

		// 12. Активные бронирования на новую дату, строки блокируются FOR UPDATE
		filter := domain.RestaurantReservationsFilter{
			RestaurantID: original.RestaurantID,
			StartDate:    &newDate,
			EndDate:      &newDate,
		}
		reservations, err := uc.reservationRepo.GetByRestaurantWithFilter(txCtx, filter)
		if err != nil {
			return fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
		}

		// 13. Собственная строка в подсчёте не участвует
		reserved := countReservedAt(reservations, newStartTime, original.ID)
		if reserved >= eligible {
			return fmt.Errorf("%w: %s on %s", ErrNoAvailability,
				newStartTime, newDate.Format(domain.DateFormat))
		}

		// 14. Переносим бронирование; статус после изменения - confirmed
		if err := uc.reservationRepo.Reschedule(txCtx, original.ID, newDate, newStartTime, newPartySize, domain.StatusConfirmed); err != nil {
			return fmt.Errorf("%w: failed to reschedule: %w", ErrInternal, err)
		}

		updated = original
		updated.ReservationDate = newDate
		updated.StartTime = newStartTime
		updated.PartySize = newPartySize
		updated.Status = domain.StatusConfirmed
		updated.UpdatedAt = now

		return nil
	})
	if err != nil {
		uc.logger.Warn("ModifyReservation: failed for reservation=%d: %v", req.ReservationID, err)
		return nil, err
	}

	uc.logger.Info("ModifyReservation: reservation id=%d rescheduled to %s %s",
		updated.ID, updated.ReservationDate.Format(domain.DateFormat), updated.StartTime)

	// 15. Уведомляем гостя; сбой доставки не откатывает изменение
	uc.mailerClient.NotifyReservationUpdated(ctx,
		mailerservice.RestaurantInfo{
			Name:    restaurant.Name,
			Address: restaurant.Address,
			Phone:   restaurant.Phone,
		},
		mailerservice.ReservationInfo{
			ID:         updated.ID,
			Date:       updated.ReservationDate.Format(domain.DateFormat),
			StartTime:  updated.StartTime.String(),
			PartySize:  updated.PartySize,
			Status:     string(updated.Status),
			GuestName:  updated.GuestContact.Name,
			GuestEmail: updated.GuestContact.Email,
			GuestPhone: updated.GuestContact.Phone,
		},
	)

	return toResponse(updated), nil
}
