package get_restaurant_reservations

import (
	"context"

	"github.com/m04kA/TB-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	GetRestaurantReservations(ctx context.Context, req *models.GetRestaurantReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
