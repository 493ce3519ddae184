package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TB-ReservationService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/TB-ReservationService/internal/usecase/get_available_slots"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgMissingDate         = "дата обязательна"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingPartySize    = "размер компании обязателен"
	msgInvalidPartySize    = "некорректный размер компании"
	msgRestaurantNotFound  = "ресторан не найден"
	msgPartySizeTooLarge   = "размер компании превышает лимит ресторана"
	msgDateOutOfWindow     = "дата вне окна бронирования"
	msgInvalidSchedule     = "расписание ресторана настроено некорректно"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/restaurants/{restaurantId}/available-slots
// Query params: date (required, YYYY-MM-DD), partySize (required, "20+" допустим)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем restaurantId из URL
	restaurantIDStr := vars["restaurantId"]
	restaurantID, err := strconv.ParseInt(restaurantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/available-slots - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /restaurants/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Извлекаем partySize из query параметров; "20+" нормализуется здесь
	partySizeStr := r.URL.Query().Get("partySize")
	if partySizeStr == "" {
		h.logger.Warn("GET /restaurants/{id}/available-slots - Missing party size")
		handlers.RespondBadRequest(w, msgMissingPartySize)
		return
	}

	partySize, err := handlers.ParsePartySize(partySizeStr)
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/available-slots - Invalid party size: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPartySize)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(restaurantID, dateStr, partySize)
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, getAvailableSlots.ErrRestaurantNotFound):
			h.logger.Warn("GET /restaurants/{id}/available-slots - Restaurant not found: restaurant_id=%d", restaurantID)
			handlers.RespondNotFound(w, msgRestaurantNotFound)

		case errors.Is(err, getAvailableSlots.ErrPartySizeExceedsLimit):
			h.logger.Warn("GET /restaurants/{id}/available-slots - Party size exceeds limit: restaurant_id=%d, party_size=%d",
				restaurantID, partySize)
			handlers.RespondBadRequest(w, msgPartySizeTooLarge)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate),
			errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /restaurants/{id}/available-slots - Date out of window: restaurant_id=%d, date=%s",
				restaurantID, dateStr)
			handlers.RespondBadRequest(w, msgDateOutOfWindow)

		case errors.Is(err, getAvailableSlots.ErrInvalidSchedule):
			h.logger.Error("GET /restaurants/{id}/available-slots - Invalid schedule: restaurant_id=%d", restaurantID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidSchedule)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /restaurants/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPartySize)

		default:
			h.logger.Error("GET /restaurants/{id}/available-slots - Failed to get slots: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /restaurants/{id}/available-slots - Slots retrieved successfully: restaurant_id=%d, date=%s, slots_count=%d",
		restaurantID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
