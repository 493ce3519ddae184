package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/TB-ReservationService/internal/api/handlers"
	"github.com/m04kA/TB-ReservationService/internal/api/middleware"
	createReservation "github.com/m04kA/TB-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgRestaurantNotFound  = "ресторан не найден"
	msgPartySizeTooLarge   = "размер компании превышает лимит ресторана"
	msgClosedOrOutOfWindow = "ресторан закрыт или дата/время вне окна бронирования"
	msgNoTableForParty     = "нет стола, вмещающего компанию такого размера"
	msgNoAvailability      = "на выбранное время свободных столов не осталось"
	msgInvalidSchedule     = "расписание ресторана настроено некорректно"
	msgInvalidInput        = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createReservation.ErrNoAvailability):
			h.logger.Warn("POST /reservations - No availability: user_id=%d, restaurant_id=%d, date=%s, time=%s",
				userID, req.RestaurantID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgNoAvailability)

		case errors.Is(err, createReservation.ErrRestaurantNotFound):
			h.logger.Warn("POST /reservations - Restaurant not found: restaurant_id=%d", req.RestaurantID)
			handlers.RespondNotFound(w, msgRestaurantNotFound)

		case errors.Is(err, createReservation.ErrPartySizeExceedsLimit):
			h.logger.Warn("POST /reservations - Party size exceeds limit: user_id=%d, restaurant_id=%d",
				userID, req.RestaurantID)
			handlers.RespondBadRequest(w, msgPartySizeTooLarge)

		case errors.Is(err, createReservation.ErrClosedOrOutOfWindow):
			h.logger.Warn("POST /reservations - Closed or out of window: user_id=%d, restaurant_id=%d, date=%s, time=%s",
				userID, req.RestaurantID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgClosedOrOutOfWindow)

		case errors.Is(err, createReservation.ErrNoTableForPartySize):
			h.logger.Warn("POST /reservations - No table for party size: user_id=%d, restaurant_id=%d",
				userID, req.RestaurantID)
			handlers.RespondBadRequest(w, msgNoTableForParty)

		case errors.Is(err, createReservation.ErrInvalidSchedule):
			h.logger.Error("POST /reservations - Invalid schedule: restaurant_id=%d", req.RestaurantID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidSchedule)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, restaurant_id=%d, error=%v",
				userID, req.RestaurantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, user_id=%d, restaurant_id=%d",
		result.ID, userID, req.RestaurantID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
