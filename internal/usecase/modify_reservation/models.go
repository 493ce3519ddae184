package modify_reservation

import (
	"time"

	"github.com/m04kA/TB-ReservationService/internal/domain"
	"github.com/m04kA/TB-ReservationService/pkg/types"
)

// Request модель запроса на изменение бронирования.
// Поля-указатели опциональны: nil означает "оставить как есть".
type Request struct {
	ReservationID int64             // ID изменяемого бронирования
	UserID        int64             // ID пользователя, выполняющего изменение
	Date          *time.Time        // Новая дата (опционально)
	StartTime     *types.TimeString // Новое время начала (опционально)
	PartySize     *int              // Новый размер компании (опционально)
}

// Response модель ответа с обновленным бронированием
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
