package domain

import "github.com/m04kA/TB-ReservationService/pkg/types"

// SlotAvailability classifies how much capacity a slot has left
type SlotAvailability string

const (
	SlotAvailable   SlotAvailability = "available"
	SlotLimited     SlotAvailability = "limited"
	SlotUnavailable SlotAvailability = "unavailable"
)

// Slot represents a bookable time window for a given date and party size
type Slot struct {
	StartTime       types.TimeString
	DurationMinutes int
	Remaining       int // Свободные столы, подходящие по размеру компании
	Total           int // Всего подходящих активных столов
}

// Availability classifies the slot by its remaining capacity:
// 0 tables left is unavailable, 1-2 is limited, more is available.
func (s *Slot) Availability() SlotAvailability {
	switch {
	case s.Remaining <= 0:
		return SlotUnavailable
	case s.Remaining <= LimitedRemainingThreshold:
		return SlotLimited
	default:
		return SlotAvailable
	}
}

// IsBookable reports whether at least one eligible table is free.
func (s *Slot) IsBookable() bool {
	return s.Remaining > 0
}
