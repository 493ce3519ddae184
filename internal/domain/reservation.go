package domain

import (
	"time"

	"github.com/m04kA/TB-ReservationService/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusSeated    ReservationStatus = "seated"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusNoShow    ReservationStatus = "no_show"
)

// GuestContact holds the contact details a reservation was made with
type GuestContact struct {
	Name  string
	Email string
	Phone string
}

// Reservation represents a table reservation in the system
type Reservation struct {
	ID              int64
	RestaurantID    int64
	UserID          int64 // ID владельца бронирования (пользователь или гостевая сессия)
	ReservationDate time.Time
	StartTime       types.TimeString
	PartySize       int
	Status          ReservationStatus
	GuestContact    GuestContact
	SpecialRequests *string

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation still occupies slot capacity
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending ||
		r.Status == StatusConfirmed ||
		r.Status == StatusSeated
}

// IsTerminal returns true if no further transition is possible
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusCompleted ||
		r.Status == StatusCancelled ||
		r.Status == StatusNoShow
}

// CanBeCancelled returns true if a guest may still cancel the reservation
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed || r.Status == StatusSeated
}

// CanBeModified returns true if a guest may still change date/time/party size
func (r *Reservation) CanBeModified() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// StartsAt combines the reservation date and wall-clock start time.
// The zero time is returned for a malformed start time.
func (r *Reservation) StartsAt() time.Time {
	minutes, err := r.StartTime.MinutesFromMidnight()
	if err != nil {
		return time.Time{}
	}
	d := r.ReservationDate
	return time.Date(d.Year(), d.Month(), d.Day(), minutes/60, minutes%60, 0, 0, d.Location())
}

// CanTransitionTo reports whether the status change is legal for staff
// transitions. Guest cancel/modify have their own gates on top of this.
func (r *Reservation) CanTransitionTo(next ReservationStatus) bool {
	if r.IsTerminal() {
		return false
	}

	switch next {
	case StatusConfirmed:
		return r.Status == StatusPending
	case StatusSeated:
		return r.Status == StatusPending || r.Status == StatusConfirmed
	case StatusCompleted:
		return r.Status == StatusSeated
	case StatusCancelled, StatusNoShow:
		return r.Status == StatusPending || r.Status == StatusConfirmed || r.Status == StatusSeated
	default:
		return false
	}
}

// RestaurantReservationsFilter фильтр для получения бронирований ресторана
type RestaurantReservationsFilter struct {
	RestaurantID    int64              // Обязательный параметр
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	ExcludeID       *int64             // Исключить конкретное бронирование (для modify)
	IncludeInactive bool               // Включать ли терминальные бронирования
}
