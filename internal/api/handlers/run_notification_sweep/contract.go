package run_notification_sweep

import (
	"context"

	notificationSweep "github.com/m04kA/TB-ReservationService/internal/usecase/notification_sweep"
)

type NotificationSweepUseCase interface {
	Execute(ctx context.Context, req *notificationSweep.Request) (*notificationSweep.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
