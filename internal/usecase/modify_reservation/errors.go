package modify_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("modify_reservation: reservation not found")

	// ErrPermissionDenied возвращается, когда бронирование принадлежит
	// другому пользователю
	ErrPermissionDenied = errors.New("modify_reservation: reservation belongs to another user")

	// ErrCannotModify возвращается, когда бронирование уже не в
	// изменяемом статусе (seated и терминальные статусы)
	ErrCannotModify = errors.New("modify_reservation: reservation cannot be modified in its current status")

	// ErrModifyCutoffPassed возвращается, когда до начала бронирования
	// осталось меньше двух часов
	ErrModifyCutoffPassed = errors.New("modify_reservation: too close to the reservation start time")

	// ErrPartySizeExceedsLimit возвращается, когда новый размер компании
	// превышает max_party_size ресторана
	ErrPartySizeExceedsLimit = errors.New("modify_reservation: party size exceeds restaurant limit")

	// ErrClosedOrOutOfWindow возвращается, когда новые дата/время не
	// попадают в рабочее расписание или окно бронирования
	ErrClosedOrOutOfWindow = errors.New("modify_reservation: restaurant closed or out of booking window")

	// ErrNoTableForPartySize возвращается, когда ни один активный стол не
	// вмещает новую компанию
	ErrNoTableForPartySize = errors.New("modify_reservation: no table fits the party size")

	// ErrNoAvailability возвращается, когда на новый слот нет свободных
	// столов. Исходное бронирование при этом остаётся нетронутым.
	ErrNoAvailability = errors.New("modify_reservation: no availability for the requested slot")

	// ErrInvalidSchedule возвращается при некорректном расписании ресторана
	ErrInvalidSchedule = errors.New("modify_reservation: invalid schedule rule")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("modify_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("modify_reservation: internal error")
)
