package get_restaurant_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TB-ReservationService/internal/api/handlers"
	"github.com/m04kA/TB-ReservationService/internal/api/middleware"
	"github.com/m04kA/TB-ReservationService/internal/service/reservations"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidParams       = "некорректные параметры запроса"
	msgRestaurantNotFound  = "ресторан не найден"
	msgForbidden           = "доступ запрещен"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/restaurants/{restaurantId}/reservations
// Query params: date, startDate, endDate, status, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем restaurantId из URL
	vars := mux.Vars(r)
	restaurantIDStr := vars["restaurantId"]

	restaurantID, err := strconv.ParseInt(restaurantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/reservations - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /restaurants/{id}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем опциональные query параметры
	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(
		restaurantID,
		userID,
		query.Get("date"),
		query.Get("startDate"),
		query.Get("endDate"),
		query.Get("status"),
		query.Get("includeInactive"),
	)
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/reservations - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Получаем бронирования ресторана (сервис сам проверит права персонала)
	result, err := h.service.GetRestaurantReservations(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrRestaurantNotFound):
			h.logger.Warn("GET /restaurants/{id}/reservations - Restaurant not found: restaurant_id=%d", restaurantID)
			handlers.RespondNotFound(w, msgRestaurantNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /restaurants/{id}/reservations - Access denied: restaurant_id=%d, user_id=%d",
				restaurantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /restaurants/{id}/reservations - Invalid filter: restaurant_id=%d", restaurantID)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /restaurants/{id}/reservations - Failed to get reservations: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /restaurants/{id}/reservations - Reservations retrieved successfully: restaurant_id=%d, count=%d",
		restaurantID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
