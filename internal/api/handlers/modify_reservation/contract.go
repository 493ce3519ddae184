package modify_reservation

import (
	"context"

	modifyReservation "github.com/m04kA/TB-ReservationService/internal/usecase/modify_reservation"
)

type ModifyReservationUseCase interface {
	Execute(ctx context.Context, req *modifyReservation.Request) (*modifyReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
