package modify_reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/TB-ReservationService/internal/api/handlers"
	"github.com/m04kA/TB-ReservationService/internal/domain"
	modifyReservation "github.com/m04kA/TB-ReservationService/internal/usecase/modify_reservation"
	"github.com/m04kA/TB-ReservationService/pkg/ptr"
	"github.com/m04kA/TB-ReservationService/pkg/types"
)

// PartySize размер компании с провода: число или строка, "20+" допустим
type PartySize int

// UnmarshalJSON принимает и числовое значение, и строку с сентинелом "20+"
func (p *PartySize) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)

	size, err := handlers.ParsePartySize(raw)
	if err != nil {
		return fmt.Errorf("partySize: %w", err)
	}

	*p = PartySize(size)
	return nil
}

// ModifyReservationRequest HTTP request model.
// Все поля опциональны: непереданные остаются как есть.
type ModifyReservationRequest struct {
	Date      *string    `json:"date,omitempty"`      // "2025-10-15"
	StartTime *string    `json:"startTime,omitempty"` // "19:00"
	PartySize *PartySize `json:"partySize,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"userId"`
	RestaurantID    int64   `json:"restaurantId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	PartySize       int     `json:"partySize"`
	Status          string  `json:"status"`
	GuestName       string  `json:"guestName"`
	GuestEmail      string  `json:"guestEmail,omitempty"`
	GuestPhone      string  `json:"guestPhone,omitempty"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ModifyReservationRequest) ToUseCaseRequest(reservationID, userID int64) (*modifyReservation.Request, error) {
	req := &modifyReservation.Request{
		ReservationID: reservationID,
		UserID:        userID,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = ptr.Ptr(date)
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = ptr.Ptr(startTime)
	}

	if r.PartySize != nil {
		req.PartySize = ptr.Ptr(int(*r.PartySize))
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *modifyReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		RestaurantID:    resp.RestaurantID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		PartySize:       resp.PartySize,
		Status:          string(resp.Status),
		GuestName:       resp.GuestName,
		GuestEmail:      resp.GuestEmail,
		GuestPhone:      resp.GuestPhone,
		SpecialRequests: resp.SpecialRequests,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
