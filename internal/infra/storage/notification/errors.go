package notification

import "errors"

var (
	// ErrAlreadyRecorded возвращается, когда запись для пары
	// (reservation_id, kind) уже существует
	ErrAlreadyRecorded = errors.New("notification.repository: notification already recorded")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("notification.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("notification.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("notification.repository: failed to scan row")
)
