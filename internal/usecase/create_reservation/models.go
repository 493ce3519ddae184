package create_reservation

import (
	"time"

	"github.com/m04kA/TB-ReservationService/internal/domain"
	"github.com/m04kA/TB-ReservationService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID          int64            // ID владельца бронирования
	RestaurantID    int64            // ID ресторана
	Date            time.Time        // Дата бронирования (без времени)
	StartTime       types.TimeString // Время начала слота (например, "19:00")
	PartySize       int              // Размер компании, уже нормализованный ("20+" -> 20)
	GuestName       string           // Имя гостя
	GuestEmail      string           // Email гостя
	GuestPhone      string           // Телефон гостя
	SpecialRequests *string          // Пожелания (опционально)
	Confirm         bool             // true - immediate-confirm поток, статус confirmed
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	UserID          int64
	RestaurantID    int64
	Date            time.Time
	StartTime       types.TimeString
	PartySize       int
	Status          domain.ReservationStatus
	GuestName       string
	GuestEmail      string
	GuestPhone      string
	SpecialRequests *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func toResponse(res *domain.Reservation) *Response {
	return &Response{
		ID:              res.ID,
		UserID:          res.UserID,
		RestaurantID:    res.RestaurantID,
		Date:            res.ReservationDate,
		StartTime:       res.StartTime,
		PartySize:       res.PartySize,
		Status:          res.Status,
		GuestName:       res.GuestContact.Name,
		GuestEmail:      res.GuestContact.Email,
		GuestPhone:      res.GuestContact.Phone,
		SpecialRequests: res.SpecialRequests,
		CreatedAt:       res.CreatedAt,
		UpdatedAt:       res.UpdatedAt,
	}
}
