package modify_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/TB-ReservationService/internal/domain"
	"github.com/m04kA/TB-ReservationService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.Date == nil && req.StartTime == nil && req.PartySize == nil {
		return fmt.Errorf("%w: nothing to modify", ErrInvalidInput)
	}

	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
		}
	}

	if req.PartySize != nil && *req.PartySize < domain.MinPartySize {
		return fmt.Errorf("%w: partySize must be at least %d", ErrInvalidInput, domain.MinPartySize)
	}

	return nil
}

// validateDate проверяет, что новая дата попадает в окно бронирования
func validateDate(date time.Time, now time.Time, advanceBookingDays int) error {
	if isDateInPast(date, now) {
		return fmt.Errorf("%w: date is in the past", ErrClosedOrOutOfWindow)
	}

	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)

	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrClosedOrOutOfWindow, advanceBookingDays)
	}

	return nil
}

// validateSlotTime проверяет, что новое время лежит на слотовой сетке и
// слот целиком помещается в рабочие часы
func validateSlotTime(rule *domain.ScheduleRule, startTime types.TimeString, slotDuration int) error {
	if startTime.IsBefore(rule.OpenTime) {
		return fmt.Errorf("%w: %s is before opening time %s", ErrClosedOrOutOfWindow, startTime, rule.OpenTime)
	}

	startMin, err := startTime.MinutesFromMidnight()
	if err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	openMin, err := rule.OpenTime.MinutesFromMidnight()
	if err != nil {
		return fmt.Errorf("%w: invalid schedule: %v", ErrInvalidSchedule, err)
	}

	if (startMin-openMin)%domain.SlotStepMinutes != 0 {
		return fmt.Errorf("%w: %s is not on the %d-minute slot grid", ErrClosedOrOutOfWindow, startTime, domain.SlotStepMinutes)
	}

	slotEnd, err := startTime.AddMinutes(slotDuration)
	if err != nil || slotEnd.IsAfter(rule.CloseTime) {
		return fmt.Errorf("%w: slot at %s does not fit before closing time %s", ErrClosedOrOutOfWindow, startTime, rule.CloseTime)
	}

	return nil
}

// validateSameDayCutoff проверяет same-day cutoff для нового слота
func validateSameDayCutoff(date time.Time, startTime types.TimeString, now time.Time, cutoffHours int) error {
	if !isSameDay(date, now) {
		return nil
	}

	minAllowed, err := types.NewTimeString(now).AddMinutes(cutoffHours * 60)
	if err != nil {
		return fmt.Errorf("%w: same-day cutoff of %dh has passed", ErrClosedOrOutOfWindow, cutoffHours)
	}

	if startTime.IsBefore(minAllowed) {
		return fmt.Errorf("%w: must book at least %dh in advance on the same day", ErrClosedOrOutOfWindow, cutoffHours)
	}

	return nil
}

// countReservedAt подсчитывает активные бронирования с точно таким же
// временем начала, исключая собственную строку изменяемого бронирования -
// иначе бронь конкурировала бы сама с собой за последний стол
func countReservedAt(reservations []*domain.Reservation, startTime types.TimeString, excludeID int64) int {
	count := 0
	for _, res := range reservations {
		if res.ID == excludeID {
			continue
		}
		if !res.IsActive() {
			continue
		}
		if res.StartTime == startTime {
			count++
		}
	}
	return count
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
