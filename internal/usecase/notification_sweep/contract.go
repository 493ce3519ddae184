package notification_sweep

import (
	"context"
	"time"

	"github.com/m04kA/TB-ReservationService/internal/domain"
	"github.com/m04kA/TB-ReservationService/internal/integrations/mailerservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByDateAndStatuses(ctx context.Context, date time.Time, statuses []domain.ReservationStatus) ([]*domain.Reservation, error)
}

// RestaurantRepository интерфейс репозитория справочных данных ресторана
type RestaurantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Restaurant, error)
}

// NotificationRepository интерфейс репозитория журнала уведомлений
type NotificationRepository interface {
	Exists(ctx context.Context, reservationID int64, kind domain.NotificationKind) (bool, error)
	RecordSent(ctx context.Context, reservationID int64, kind domain.NotificationKind) error
}

// MailerClient интерфейс клиента почтового сервиса. Свип использует
// ошибко-возвращающий SendEvent: запись в журнал делается только после
// успешной передачи события.
type MailerClient interface {
	SendEvent(ctx context.Context, event mailerservice.Event) error
}

// Metrics интерфейс метрик уведомлений
type Metrics interface {
	IncNotificationSent(kind, status string)
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
