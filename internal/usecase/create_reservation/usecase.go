package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TB-ReservationService/internal/domain"
	restaurantRepo "github.com/m04kA/TB-ReservationService/internal/infra/storage/restaurant"
	"github.com/m04kA/TB-ReservationService/internal/integrations/mailerservice"
)

// UseCase use case для создания бронирования
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

// Execute выполняет use case создания бронирования.
// Проверка допуска и вставка выполняются в одной SERIALIZABLE транзакции
// с блокировкой строк бронирований на дату - конкурирующие заявки на
// последний стол сериализуются, и успешной окажется ровно одна.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, restaurant=%d, date=%s, time=%s, party_size=%d",
		req.UserID, req.RestaurantID, req.Date.Format(domain.DateFormat), req.StartTime, req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем ресторан; скрытый ресторан равнозначен отсутствующему
	restaurant, err := uc.restaurantRepo.GetByID(ctx, req.RestaurantID)
	if err != nil {
		if errors.Is(err, restaurantRepo.ErrRestaurantNotFound) {
			uc.logger.Warn("CreateReservation: restaurant id=%d not found", req.RestaurantID)
			return nil, ErrRestaurantNotFound
		}
		uc.logger.Error("CreateReservation: failed to get restaurant id=%d: %v", req.RestaurantID, err)
		return nil, fmt.Errorf("%w: failed to get restaurant: %w", ErrInternal, err)
	}
	if !restaurant.IsActive {
		uc.logger.Warn("CreateReservation: restaurant id=%d is inactive", req.RestaurantID)
		return nil, ErrRestaurantNotFound
	}

	status := domain.StatusPending
	if req.Confirm {
		status = domain.StatusConfirmed
	}

	var created *domain.Reservation

	// 4. Проверка допуска и вставка атомарны: между подсчетом занятых
	// слотов и INSERT никто не может вклиниться
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем политику бронирования; без настроенной - дефолтная
		policy, err := uc.restaurantRepo.GetPolicy(txCtx, req.RestaurantID)
		if err != nil {
			if !errors.Is(err, restaurantRepo.ErrPolicyNotFound) {
				return fmt.Errorf("%w: failed to get policy: %w", ErrInternal, err)
			}
			policy = domain.DefaultBookingPolicy(req.RestaurantID)
		}

		// 4.2. Проверяем размер компании против лимита ресторана
		if req.PartySize > policy.MaxPartySize {
			return fmt.Errorf("%w: %d > %d", ErrPartySizeExceedsLimit, req.PartySize, policy.MaxPartySize)
		}

		// 4.3. Дата в пределах окна бронирования
		if err := validateDate(req.Date, now, policy.AdvanceBookingDays); err != nil {
			return err
		}

		// 4.4. Ищем правило расписания; отсутствие правила - выходной день
		rules, err := uc.restaurantRepo.GetScheduleRules(txCtx, req.RestaurantID)
		if err != nil {
			return fmt.Errorf("%w: failed to get schedule rules: %w", ErrInternal, err)
		}
		rule := domain.RuleForDate(rules, req.Date)
		if rule == nil {
			return fmt.Errorf("%w: restaurant is closed on %s",
				ErrClosedOrOutOfWindow, req.Date.Format(domain.DateFormat))
		}
		if !rule.IsValid() {
			return fmt.Errorf("%w: close time %s is not after open time %s",
				ErrInvalidSchedule, rule.CloseTime, rule.OpenTime)
		}

		// 4.5. Время на слотовой сетке, слот помещается до закрытия
		if err := validateSlotTime(rule, req.StartTime, policy.SlotDurationMinutes); err != nil {
			return err
		}

		// 4.6. Same-day cutoff
		if err := validateSameDayCutoff(req.Date, req.StartTime, now, policy.SameDayCutoffHours); err != nil {
			return err
		}

		// 4.7. Подходящие столы: активные, вмещающие компанию
		tables, err := uc.restaurantRepo.GetActiveTables(txCtx, req.RestaurantID)
		if err != nil {
			return fmt.Errorf("%w: failed to get tables: %w", ErrInternal, err)
		}
		eligible := domain.EligibleTableCount(tables, req.PartySize)
		if eligible == 0 {
			return fmt.Errorf("%w: party of %d", ErrNoTableForPartySize, req.PartySize)
		}

		// 4.8. Активные бронирования на дату, строки блокируются FOR UPDATE
		filter := domain.RestaurantReservationsFilter{
			RestaurantID: req.RestaurantID,
			StartDate:    &req.Date,
			EndDate:      &req.Date,
		}
		reservations, err := uc.reservationRepo.GetByRestaurantWithFilter(txCtx, filter)
		if err != nil {
			return fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
		}

		// 4.9. Свободный стол на запрошенное время
		reserved := countReservedAt(reservations, req.StartTime, nil)
		if reserved >= eligible {
			return fmt.Errorf("%w: %s on %s", ErrNoAvailability,
				req.StartTime, req.Date.Format(domain.DateFormat))
		}

		// 4.10. Вставляем бронирование
		created, err = uc.reservationRepo.Create(txCtx, &domain.Reservation{
			RestaurantID:    req.RestaurantID,
			UserID:          req.UserID,
			ReservationDate: req.Date,
			StartTime:       req.StartTime,
			PartySize:       req.PartySize,
			Status:          status,
			GuestContact: domain.GuestContact{
				Name:  req.GuestName,
				Email: req.GuestEmail,
				Phone: req.GuestPhone,
			},
			SpecialRequests: req.SpecialRequests,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		uc.logger.Warn("CreateReservation: admission failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateReservation: created reservation id=%d status=%s", created.ID, created.Status)

	// 5. Уведомляем гостя; сбой доставки не откатывает бронирование
	uc.mailerClient.NotifyReservationConfirmed(ctx,
		mailerservice.RestaurantInfo{
			Name:    restaurant.Name,
			Address: restaurant.Address,
			Phone:   restaurant.Phone,
		},
		mailerservice.ReservationInfo{
			ID:         created.ID,
			Date:       created.ReservationDate.Format(domain.DateFormat),
			StartTime:  created.StartTime.String(),
			PartySize:  created.PartySize,
			Status:     string(created.Status),
			GuestName:  created.GuestContact.Name,
			GuestEmail: created.GuestContact.Email,
			GuestPhone: created.GuestContact.Phone,
		},
	)

	return toResponse(created), nil
}
