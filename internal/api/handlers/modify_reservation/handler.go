package modify_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TB-ReservationService/internal/api/handlers"
	"github.com/m04kA/TB-ReservationService/internal/api/middleware"
	modifyReservation "github.com/m04kA/TB-ReservationService/internal/usecase/modify_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateOrTime    = "некорректный формат даты или времени"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgCannotModify         = "бронирование в текущем статусе изменить нельзя"
	msgCutoffPassed         = "до начала бронирования осталось меньше двух часов"
	msgPartySizeTooLarge    = "размер компании превышает лимит ресторана"
	msgClosedOrOutOfWindow  = "ресторан закрыт или дата/время вне окна бронирования"
	msgNoTableForParty      = "нет стола, вмещающего компанию такого размера"
	msgNoAvailability       = "на выбранное время свободных столов не осталось"
	msgInvalidSchedule      = "расписание ресторана настроено некорректно"
	msgInvalidInput         = "некорректные данные бронирования"
)

type Handler struct {
	useCase ModifyReservationUseCase
	logger  Logger
}

func NewHandler(useCase ModifyReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем reservationId из URL
	vars := mux.Vars(r)
	reservationIDStr := vars["reservationId"]

	reservationID, err := strconv.ParseInt(reservationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ModifyReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(reservationID, userID)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, modifyReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, modifyReservation.ErrPermissionDenied):
			h.logger.Warn("PATCH /reservations/{id} - Access denied: reservation_id=%d, user_id=%d",
				reservationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, modifyReservation.ErrCannotModify):
			h.logger.Warn("PATCH /reservations/{id} - Cannot modify: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgCannotModify)

		case errors.Is(err, modifyReservation.ErrModifyCutoffPassed):
			h.logger.Warn("PATCH /reservations/{id} - Modify cutoff passed: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgCutoffPassed)

		case errors.Is(err, modifyReservation.ErrPartySizeExceedsLimit):
			h.logger.Warn("PATCH /reservations/{id} - Party size exceeds limit: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgPartySizeTooLarge)

		case errors.Is(err, modifyReservation.ErrClosedOrOutOfWindow):
			h.logger.Warn("PATCH /reservations/{id} - Closed or out of window: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgClosedOrOutOfWindow)

		case errors.Is(err, modifyReservation.ErrNoTableForPartySize):
			h.logger.Warn("PATCH /reservations/{id} - No table for party size: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgNoTableForParty)

		case errors.Is(err, modifyReservation.ErrNoAvailability):
			h.logger.Warn("PATCH /reservations/{id} - No availability: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgNoAvailability)

		case errors.Is(err, modifyReservation.ErrInvalidSchedule):
			h.logger.Error("PATCH /reservations/{id} - Invalid schedule: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidSchedule)

		case errors.Is(err, modifyReservation.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /reservations/{id} - Failed to modify reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("PATCH /reservations/{id} - Reservation modified successfully: reservation_id=%d, user_id=%d",
		reservationID, userID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
