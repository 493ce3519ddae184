package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TB-ReservationService/internal/domain"
	restaurantRepo "github.com/m04kA/TB-ReservationService/internal/infra/storage/restaurant"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	reservationRepo ReservationRepository
	restaurantRepo  RestaurantRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	restaurantRepo RestaurantRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		restaurantRepo:  restaurantRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: restaurant=%d, date=%s, party_size=%d",
		req.RestaurantID, req.Date.Format(domain.DateFormat), req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем ресторан; скрытый ресторан равнозначен отсутствующему -
	// частичный список слотов наружу не отдаём
	restaurant, err := uc.restaurantRepo.GetByID(ctx, req.RestaurantID)
	if err != nil {
		if errors.Is(err, restaurantRepo.ErrRestaurantNotFound) {
			uc.logger.Warn("GetAvailableSlots: restaurant id=%d not found", req.RestaurantID)
			return nil, ErrRestaurantNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get restaurant id=%d: %v", req.RestaurantID, err)
		return nil, fmt.Errorf("%w: failed to get restaurant: %v", ErrInternal, err)
	}
	if !restaurant.IsActive {
		uc.logger.Warn("GetAvailableSlots: restaurant id=%d is inactive", req.RestaurantID)
		return nil, ErrRestaurantNotFound
	}

	// 4. Получаем политику бронирования; без настроенной - дефолтная
	policy, err := uc.restaurantRepo.GetPolicy(ctx, req.RestaurantID)
	if err != nil {
		if !errors.Is(err, restaurantRepo.ErrPolicyNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get policy: %v", err)
			return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
		}
		policy = domain.DefaultBookingPolicy(req.RestaurantID)
		uc.logger.Info("GetAvailableSlots: using default policy for restaurant=%d", req.RestaurantID)
	}

	// 5. Проверяем размер компании против лимита ресторана
	if req.PartySize > policy.MaxPartySize {
		uc.logger.Warn("GetAvailableSlots: party size %d exceeds limit %d", req.PartySize, policy.MaxPartySize)
		return nil, fmt.Errorf("%w: %d > %d", ErrPartySizeExceedsLimit, req.PartySize, policy.MaxPartySize)
	}

	// 6. Валидация даты с учетом окна бронирования
	if err := validateDate(req.Date, now, policy.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 7. Ищем правило расписания на день недели.
	// Отсутствие правила - выходной: пустой список слотов, не ошибка.
	rules, err := uc.restaurantRepo.GetScheduleRules(ctx, req.RestaurantID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get schedule rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule rules: %v", ErrInternal, err)
	}

	rule := domain.RuleForDate(rules, req.Date)
	if rule == nil {
		uc.logger.Info("GetAvailableSlots: restaurant=%d closed on %s",
			req.RestaurantID, req.Date.Format(domain.DateFormat))
		return &Response{
			RestaurantID: req.RestaurantID,
			Date:         req.Date,
			PartySize:    req.PartySize,
			Slots:        []Slot{},
		}, nil
	}

	// 8. Считаем подходящие столы: активные, вмещающие компанию
	tables, err := uc.restaurantRepo.GetActiveTables(ctx, req.RestaurantID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get tables: %v", err)
		return nil, fmt.Errorf("%w: failed to get tables: %v", ErrInternal, err)
	}
	eligibleTableCount := domain.EligibleTableCount(tables, req.PartySize)

	// 9. Получаем активные бронирования на дату
	filter := domain.RestaurantReservationsFilter{
		RestaurantID: req.RestaurantID,
		StartDate:    &req.Date,
		EndDate:      &req.Date,
	}

	reservations, err := uc.reservationRepo.GetByRestaurantWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 10. Вычисляем слоты (чистая функция от уже собранных данных)
	slots, err := computeSlots(rule, policy.SlotDurationMinutes, eligibleTableCount, countReservedByStart(reservations))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to compute slots: %v", err)
		return nil, err
	}

	// 11. На сегодняшнюю дату отбрасываем слоты, нарушающие same-day cutoff
	slots = filterSameDaySlots(slots, req.Date, now, policy.SameDayCutoffHours)

	uc.logger.Info("GetAvailableSlots: %d slots for restaurant=%d, date=%s, eligible_tables=%d",
		len(slots), req.RestaurantID, req.Date.Format(domain.DateFormat), eligibleTableCount)

	return &Response{
		RestaurantID:       req.RestaurantID,
		Date:               req.Date,
		PartySize:          req.PartySize,
		EligibleTableCount: eligibleTableCount,
		Slots:              toResponseSlots(slots),
	}, nil
}

func toResponseSlots(slots []domain.Slot) []Slot {
	result := make([]Slot, len(slots))
	for i := range slots {
		result[i] = Slot{
			StartTime:       slots[i].StartTime,
			DurationMinutes: slots[i].DurationMinutes,
			Status:          slots[i].Availability(),
			Remaining:       slots[i].Remaining,
			Total:           slots[i].Total,
		}
	}
	return result
}
