package get_available_slots

import (
	"time"

	"github.com/m04kA/TB-ReservationService/internal/domain"
	"github.com/m04kA/TB-ReservationService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	RestaurantID int64     // ID ресторана
	Date         time.Time // Дата для получения слотов (без времени)
	PartySize    int       // Размер компании (уже нормализованный, "20+" -> 20)
}

// Response модель ответа со списком слотов
type Response struct {
	RestaurantID       int64     // ID ресторана
	Date               time.Time // Дата, на которую запрашивались слоты
	PartySize          int       // Размер компании
	EligibleTableCount int       // Сколько активных столов подходит компании
	Slots              []Slot    // Список слотов в хронологическом порядке
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString        // Время начала слота (например, "19:00")
	DurationMinutes int                     // Длительность слота в минутах
	Status          domain.SlotAvailability // available / limited / unavailable
	Remaining       int                     // Свободные подходящие столы
	Total           int                     // Всего подходящих столов
}
