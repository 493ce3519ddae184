package restaurant

import "errors"

var (
	// ErrRestaurantNotFound возвращается, когда ресторан не найден
	ErrRestaurantNotFound = errors.New("restaurant.repository: restaurant not found")

	// ErrPolicyNotFound возвращается, когда у ресторана нет настроенной политики бронирования
	ErrPolicyNotFound = errors.New("restaurant.repository: booking policy not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("restaurant.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("restaurant.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("restaurant.repository: failed to scan row")
)
