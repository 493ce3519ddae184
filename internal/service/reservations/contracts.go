package reservations

import (
	"context"
	"time"

	"github.com/m04kA/TB-ReservationService/internal/domain"
	"github.com/m04kA/TB-ReservationService/internal/integrations/mailerservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	GetByRestaurantWithFilter(ctx context.Context, filter domain.RestaurantReservationsFilter) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
}

// RestaurantRepository интерфейс репозитория справочных данных ресторана
type RestaurantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Restaurant, error)
}

// MailerClient интерфейс клиента почтового сервиса
type MailerClient interface {
	NotifyReservationCancelled(ctx context.Context, restaurant mailerservice.RestaurantInfo, reservation mailerservice.ReservationInfo)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
