package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TB-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/TB-ReservationService/internal/infra/storage/reservation"
	restaurantRepo "github.com/m04kA/TB-ReservationService/internal/infra/storage/restaurant"
	"github.com/m04kA/TB-ReservationService/internal/integrations/mailerservice"
	"github.com/m04kA/TB-ReservationService/internal/service/reservations/models"
)

// Service сервис для работы с жизненным циклом бронирований
type Service struct {
	reservationRepo ReservationRepository
	restaurantRepo  RestaurantRepository
	mailerClient    MailerClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	restaurantRepo RestaurantRepository,
	mailerClient MailerClient,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		restaurantRepo:  restaurantRepo,
		mailerClient:    mailerClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - пользователь может видеть только своё бронирование
// или если он персонал ресторана
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, reservation, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// GetUserReservations получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	// Конвертируем статус из строки в domain.ReservationStatus
	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: successfully fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// GetRestaurantReservations получает бронирования ресторана с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению неактивных бронирований
// Доступно только персоналу ресторана
func (s *Service) GetRestaurantReservations(ctx context.Context, req *models.GetRestaurantReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetRestaurantReservations: fetching reservations for restaurant=%d, user=%d", req.RestaurantID, req.UserID)

	// Проверяем права доступа персонала
	if err := s.checkStaffAccess(ctx, req.RestaurantID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetRestaurantReservations: invalid filter for restaurant=%d: %v", req.RestaurantID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByRestaurantWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetRestaurantReservations: repository error for restaurant=%d: %v", req.RestaurantID, err)
		return nil, fmt.Errorf("%w: GetRestaurantReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetRestaurantReservations: successfully fetched %d reservations for restaurant=%d", len(reservations), req.RestaurantID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование
// Гость может отменить своё бронирование без cutoff, но строго до его начала.
// Персонал ресторана может отменить любое бронирование ресторана.
// Политики отмены и изменения намеренно раздельные: у изменения есть
// двухчасовой cutoff, у отмены его нет.
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", reservationID, req.UserID)

	// Получаем бронирование
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Терминальное бронирование отменить нельзя
	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, reservation.Status)
		return ErrCannotCancel
	}

	if reservation.UserID == req.UserID {
		// Гостевая отмена допустима только до начала бронирования
		if !s.timeProvider.Now().Before(reservation.StartsAt()) {
			s.logger.Warn("Cancel: reservation id=%d already started", reservationID)
			return ErrCannotCancel
		}
	} else {
		// Не владелец - проверяем, что пользователь персонал ресторана
		if err := s.checkStaffAccess(ctx, reservation.RestaurantID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel reservation id=%d", req.UserID, reservationID)
			return ErrAccessDenied
		}
	}

	// Отменяем бронирование; cancelled_at проставляет репозиторий
	if err := s.reservationRepo.UpdateStatus(ctx, reservationID, domain.StatusCancelled); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found during cancellation", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)

	// Уведомляем гостя; сбой доставки не откатывает отмену
	s.notifyCancelled(ctx, reservation)

	return nil
}

// UpdateStatus обновляет статус бронирования
// Доступно только персоналу ресторана. Переходы ограничены графом
// жизненного цикла; no_show можно выставить только после наступления
// времени бронирования.
func (s *Service) UpdateStatus(ctx context.Context, reservationID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating reservation id=%d to status=%s by user=%d",
		reservationID, req.Status, req.UserID)

	// Получаем бронирование
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа (только персонал ресторана)
	if err := s.checkStaffAccess(ctx, reservation.RestaurantID, req.UserID); err != nil {
		return err
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%d", req.Status, reservationID)
		return fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	// Проверяем допустимость перехода
	if !reservation.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for reservation id=%d",
			reservation.Status, newStatus, reservationID)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, reservation.Status, newStatus)
	}

	// Неявку можно зафиксировать только после времени начала
	if newStatus == domain.StatusNoShow && s.timeProvider.Now().Before(reservation.StartsAt()) {
		s.logger.Warn("UpdateStatus: no_show before start for reservation id=%d", reservationID)
		return ErrNoShowBeforeStart
	}

	// Обновляем статус
	if err := s.reservationRepo.UpdateStatus(ctx, reservationID, newStatus); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found during update", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated reservation id=%d to status=%s", reservationID, newStatus)

	// Отмена персоналом тоже уведомляет гостя
	if newStatus == domain.StatusCancelled {
		s.notifyCancelled(ctx, reservation)
	}

	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Пользователь может видеть своё бронирование или если он персонал ресторана
func (s *Service) checkUserAccess(ctx context.Context, reservation *domain.Reservation, userID int64) error {
	// Если пользователь владелец бронирования - доступ разрешён
	if reservation.UserID == userID {
		return nil
	}

	if err := s.checkStaffAccess(ctx, reservation.RestaurantID, userID); err != nil {
		// Ошибка уже залогирована в checkStaffAccess
		return ErrAccessDenied
	}

	return nil
}

// checkStaffAccess проверяет, что пользователь является персоналом ресторана
func (s *Service) checkStaffAccess(ctx context.Context, restaurantID int64, userID int64) error {
	restaurant, err := s.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, restaurantRepo.ErrRestaurantNotFound) {
			s.logger.Warn("checkStaffAccess: restaurant id=%d not found", restaurantID)
			return ErrRestaurantNotFound
		}
		s.logger.Error("checkStaffAccess: failed to get restaurant id=%d: %v", restaurantID, err)
		return fmt.Errorf("%w: checkStaffAccess - repository error: %v", ErrInternal, err)
	}

	if !restaurant.IsStaff(userID) {
		s.logger.Warn("checkStaffAccess: user=%d is not staff of restaurant=%d", userID, restaurantID)
		return ErrAccessDenied
	}

	return nil
}

// notifyCancelled отправляет событие отмены почтовому сервису
func (s *Service) notifyCancelled(ctx context.Context, reservation *domain.Reservation) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, reservation.RestaurantID)
	if err != nil {
		s.logger.Error("notifyCancelled: failed to get restaurant id=%d: %v", reservation.RestaurantID, err)
		return
	}

	s.mailerClient.NotifyReservationCancelled(ctx,
		mailerservice.RestaurantInfo{
			Name:    restaurant.Name,
			Address: restaurant.Address,
			Phone:   restaurant.Phone,
		},
		mailerservice.ReservationInfo{
			ID:         reservation.ID,
			Date:       reservation.ReservationDate.Format(domain.DateFormat),
			StartTime:  reservation.StartTime.String(),
			PartySize:  reservation.PartySize,
			Status:     string(domain.StatusCancelled),
			GuestName:  reservation.GuestContact.Name,
			GuestEmail: reservation.GuestContact.Email,
			GuestPhone: reservation.GuestContact.Phone,
		},
	)
}
