package domain

// Default booking policy values
const (
	DefaultSlotDurationMinutes = 90
	DefaultAdvanceBookingDays  = 30
	DefaultSameDayCutoffHours  = 2
	DefaultMaxPartySize        = 20
)

// Business validation constants
const (
	MinSlotDurationMinutes = 15
	MaxSlotDurationMinutes = 480 // 8 часов
	MinPartySize           = 1
	MaxAdvanceBookingDays  = 365
	MaxSameDayCutoffHours  = 48
	MaxSpecialRequestsLen  = 500

	// SlotStepMinutes шаг генерации слотов, не зависит от их длительности
	SlotStepMinutes = 30

	// LargePartySentinel нормализованное значение заявки "20+"
	LargePartySentinel = 20

	// LimitedRemainingThreshold верхняя граница остатка для статуса "limited"
	LimitedRemainingThreshold = 2

	// ModifyCutoffHours за сколько часов до начала гость ещё может изменить бронь.
	// Отмена этим лимитом не ограничена - политики намеренно раздельные.
	ModifyCutoffHours = 2
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses список терминальных статусов бронирования.
// Используется для фильтрации при подсчёте занятых слотов.
var TerminalStatuses = []ReservationStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// ActiveStatuses список статусов, занимающих вместимость слота
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusSeated,
}
