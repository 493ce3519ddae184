package create_reservation

import "errors"

var (
	// ErrRestaurantNotFound возвращается, когда ресторан не найден или скрыт
	ErrRestaurantNotFound = errors.New("create_reservation: restaurant not found")

	// ErrPartySizeExceedsLimit возвращается, когда размер компании превышает
	// max_party_size ресторана
	ErrPartySizeExceedsLimit = errors.New("create_reservation: party size exceeds restaurant limit")

	// ErrClosedOrOutOfWindow возвращается, когда запрошенные дата/время не
	// попадают в рабочее расписание или окно бронирования: выходной день,
	// дата в прошлом или за пределами advance-окна, время вне рабочих часов
	// или не на слотовой сетке, нарушение same-day cutoff
	ErrClosedOrOutOfWindow = errors.New("create_reservation: restaurant closed or out of booking window")

	// ErrNoTableForPartySize возвращается, когда ни один активный стол не
	// вмещает компанию
	ErrNoTableForPartySize = errors.New("create_reservation: no table fits the party size")

	// ErrNoAvailability возвращается, когда все подходящие столы на слот заняты
	ErrNoAvailability = errors.New("create_reservation: no availability for the requested slot")

	// ErrInvalidSchedule возвращается при некорректном расписании ресторана
	// (закрытие раньше открытия) - ошибка конфигурации, а не бизнес-исход
	ErrInvalidSchedule = errors.New("create_reservation: invalid schedule rule")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
