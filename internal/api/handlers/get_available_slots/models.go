package get_available_slots

import (
	"time"

	"github.com/m04kA/TB-ReservationService/internal/domain"
	getAvailableSlots "github.com/m04kA/TB-ReservationService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	RestaurantID       int64           `json:"restaurantId"`
	Date               string          `json:"date"`
	PartySize          int             `json:"partySize"`
	EligibleTableCount int             `json:"eligibleTableCount"`
	Slots              []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"` // available / limited / unavailable
	Remaining       int    `json:"remaining"`
	Total           int    `json:"total"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			Status:          string(slot.Status),
			Remaining:       slot.Remaining,
			Total:           slot.Total,
		}
	}

	return &AvailableSlotsResponse{
		RestaurantID:       resp.RestaurantID,
		Date:               resp.Date.Format(domain.DateFormat),
		PartySize:          resp.PartySize,
		EligibleTableCount: resp.EligibleTableCount,
		Slots:              slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(restaurantID int64, dateStr string, partySize int) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		RestaurantID: restaurantID,
		Date:         date,
		PartySize:    partySize,
	}, nil
}
