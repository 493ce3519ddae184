package get_available_slots

import "errors"

var (
	// ErrRestaurantNotFound возвращается, когда ресторан не найден или скрыт
	ErrRestaurantNotFound = errors.New("get_available_slots: restaurant not found")

	// ErrPartySizeExceedsLimit возвращается, когда размер компании превышает лимит ресторана
	ErrPartySizeExceedsLimit = errors.New("get_available_slots: party size exceeds restaurant limit")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("get_available_slots: date is too far in the future")

	// ErrInvalidSchedule возвращается при некорректном расписании (закрытие
	// раньше открытия). Это ошибка конфигурации ресторана, а не бизнес-исход.
	ErrInvalidSchedule = errors.New("get_available_slots: invalid schedule rule")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
