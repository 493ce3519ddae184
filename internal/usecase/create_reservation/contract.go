package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/TB-ReservationService/internal/domain"
	"github.com/m04kA/TB-ReservationService/internal/integrations/mailerservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByRestaurantWithFilter(ctx context.Context, filter domain.RestaurantReservationsFilter) ([]*domain.Reservation, error)
}

// RestaurantRepository интерфейс репозитория справочных данных ресторана
type RestaurantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Restaurant, error)
	GetScheduleRules(ctx context.Context, restaurantID int64) ([]*domain.ScheduleRule, error)
	GetPolicy(ctx context.Context, restaurantID int64) (*domain.BookingPolicy, error)
	GetActiveTables(ctx context.Context, restaurantID int64) ([]*domain.Table, error)
}

// MailerClient интерфейс клиента почтового сервиса
type MailerClient interface {
	NotifyReservationConfirmed(ctx context.Context, restaurant mailerservice.RestaurantInfo, reservation mailerservice.ReservationInfo)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
