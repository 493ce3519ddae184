package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/TB-ReservationService/internal/domain"
	"github.com/m04kA/TB-ReservationService/pkg/types"
)

// computeSlots вычисляет слоты на день по расписанию, вместимости и текущей
// загрузке. Функция чистая: никаких обращений к часам или хранилищу, при
// одинаковых входах результат всегда одинаковый - тесты проверяют это свойство
// напрямую.
//
// Кандидаты генерируются от open_time с фиксированным шагом domain.SlotStepMinutes
// (шаг не зависит от длительности слота). Последний слот обязан целиком
// помещаться до закрытия: start + slotDuration <= close_time.
func computeSlots(
	rule *domain.ScheduleRule,
	slotDuration int,
	eligibleTableCount int,
	reservedByStart map[types.TimeString]int,
) ([]domain.Slot, error) {
	// Расписание с закрытием раньше открытия (переход через полночь) не
	// поддерживается - это ошибка конфигурации, её нельзя молча интерпретировать
	if !rule.IsValid() {
		return nil, fmt.Errorf("%w: open=%s close=%s", ErrInvalidSchedule, rule.OpenTime, rule.CloseTime)
	}

	slots := make([]domain.Slot, 0)
	current := rule.OpenTime

	for {
		slotEnd, err := current.AddMinutes(slotDuration)
		if err != nil {
			break
		}
		if slotEnd.IsAfter(rule.CloseTime) {
			break
		}

		reserved := reservedByStart[current]
		remaining := eligibleTableCount - reserved
		if remaining < 0 {
			remaining = 0
		}

		slots = append(slots, domain.Slot{
			StartTime:       current,
			DurationMinutes: slotDuration,
			Remaining:       remaining,
			Total:           eligibleTableCount,
		})

		current, err = current.AddMinutes(domain.SlotStepMinutes)
		if err != nil {
			break
		}
	}

	return slots, nil
}

// countReservedByStart группирует активные бронирования по точному времени
// начала. Учитываются только статусы, занимающие вместимость (pending,
// confirmed, seated); терминальные пропускаются.
func countReservedByStart(reservations []*domain.Reservation) map[types.TimeString]int {
	counts := make(map[types.TimeString]int, len(reservations))
	for _, res := range reservations {
		if !res.IsActive() {
			continue
		}
		counts[res.StartTime]++
	}
	return counts
}

// filterSameDaySlots отбрасывает слоты, начало которых нарушает same-day
// cutoff. Применяется только когда запрошенная дата - сегодня; на будущие
// даты возвращает вход без изменений. Чистая функция от (slots, date, now).
func filterSameDaySlots(slots []domain.Slot, date time.Time, now time.Time, cutoffHours int) []domain.Slot {
	if !isSameDay(date, now) {
		return slots
	}

	minAllowed, err := types.NewTimeString(now).AddMinutes(cutoffHours * 60)
	if err != nil {
		// Граница ушла за полночь - сегодня бронировать уже нечего
		return []domain.Slot{}
	}

	filtered := make([]domain.Slot, 0, len(slots))
	for _, slot := range slots {
		if !slot.StartTime.IsBefore(minAllowed) {
			filtered = append(filtered, slot)
		}
	}
	return filtered
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
