package models

import (
	"errors"
	"time"

	"github.com/m04kA/TB-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	UserID int64 `json:"userId"`
}

// UpdateStatusRequest запрос на смену статуса бронирования персоналом
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetUserReservationsRequest запрос на получение бронирований пользователя
type GetUserReservationsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetRestaurantReservationsRequest запрос на получение бронирований ресторана
type GetRestaurantReservationsRequest struct {
	UserID          int64      `json:"userId"`
	RestaurantID    int64      `json:"restaurantId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить завершённые и отменённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetRestaurantReservationsRequest) ToDomainFilter() (domain.RestaurantReservationsFilter, error) {
	filter := domain.RestaurantReservationsFilter{
		RestaurantID:    r.RestaurantID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"userId"`
	RestaurantID int64  `json:"restaurantId"`
	Date         string `json:"date"`      // "2025-10-15"
	StartTime    string `json:"startTime"` // "19:00"
	PartySize    int    `json:"partySize"`
	Status       string `json:"status"`

	GuestName       string  `json:"guestName"`
	GuestEmail      string  `json:"guestEmail,omitempty"`
	GuestPhone      string  `json:"guestPhone,omitempty"`
	SpecialRequests *string `json:"specialRequests,omitempty"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(res *domain.Reservation) *ReservationResponse {
	if res == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:              res.ID,
		UserID:          res.UserID,
		RestaurantID:    res.RestaurantID,
		Date:            res.ReservationDate.Format(domain.DateFormat),
		StartTime:       res.StartTime.String(),
		PartySize:       res.PartySize,
		Status:          string(res.Status),
		GuestName:       res.GuestContact.Name,
		GuestEmail:      res.GuestContact.Email,
		GuestPhone:      res.GuestContact.Phone,
		SpecialRequests: res.SpecialRequests,
		CreatedAt:       res.CreatedAt,
		UpdatedAt:       res.UpdatedAt,
	}

	if res.CancelledAt != nil {
		cancelledStr := res.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	if reservations == nil {
		return &ReservationListResponse{
			Reservations: []ReservationResponse{},
		}
	}

	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, len(reservations)),
	}

	for i, res := range reservations {
		if r := FromDomainReservation(res); r != nil {
			resp.Reservations[i] = *r
		}
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)

	validStatuses := []domain.ReservationStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusSeated,
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusNoShow,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
