package notification_sweep

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("notification_sweep: invalid input data")

	// ErrInternal возвращается, когда свип не смог даже получить список
	// кандидатов. Ошибки по отдельным бронированиям свип не роняют - они
	// логируются и попадают в счётчик Failed.
	ErrInternal = errors.New("notification_sweep: internal error")
)
