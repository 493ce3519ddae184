package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	allowed := map[ReservationStatus][]ReservationStatus{
		StatusPending:   {StatusConfirmed, StatusSeated, StatusCancelled, StatusNoShow},
		StatusConfirmed: {StatusSeated, StatusCancelled, StatusNoShow},
		StatusSeated:    {StatusCompleted, StatusCancelled, StatusNoShow},
		StatusCompleted: {},
		StatusCancelled: {},
		StatusNoShow:    {},
	}

	all := []ReservationStatus{
		StatusPending, StatusConfirmed, StatusSeated,
		StatusCompleted, StatusCancelled, StatusNoShow,
	}

	for from, targets := range allowed {
		res := &Reservation{Status: from}
		for _, to := range all {
			want := false
			for _, legal := range targets {
				if to == legal {
					want = true
					break
				}
			}
			assert.Equal(t, want, res.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestStartsAt(t *testing.T) {
	res := &Reservation{
		ReservationDate: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       "19:30",
	}
	assert.Equal(t, time.Date(2025, 10, 15, 19, 30, 0, 0, time.UTC), res.StartsAt())

	malformed := &Reservation{StartTime: "half past seven"}
	assert.True(t, malformed.StartsAt().IsZero())
}

func TestEligibleTableCount(t *testing.T) {
	tables := []*Table{
		{ID: 1, Capacity: 2, IsActive: true},
		{ID: 2, Capacity: 4, IsActive: true},
		{ID: 3, Capacity: 6, IsActive: true},
		{ID: 4, Capacity: 8, IsActive: false}, // выключенный стол не считается
	}

	assert.Equal(t, 3, EligibleTableCount(tables, 2))
	assert.Equal(t, 2, EligibleTableCount(tables, 4))
	assert.Equal(t, 1, EligibleTableCount(tables, 5))
	assert.Equal(t, 0, EligibleTableCount(tables, 7))
}

func TestRuleForDate(t *testing.T) {
	rules := []*ScheduleRule{
		{DayOfWeek: 1, OpenTime: "11:00", CloseTime: "22:00"},
		{DayOfWeek: 5, OpenTime: "11:00", CloseTime: "23:00"},
	}

	monday := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)

	rule := RuleForDate(rules, monday)
	if assert.NotNil(t, rule) {
		assert.Equal(t, 1, rule.DayOfWeek)
	}
	assert.Nil(t, RuleForDate(rules, sunday))
}

func TestScheduleRuleIsValid(t *testing.T) {
	assert.True(t, (&ScheduleRule{OpenTime: "11:00", CloseTime: "22:00"}).IsValid())
	// Закрытие не позже открытия - ошибка конфигурации, не ночной график
	assert.False(t, (&ScheduleRule{OpenTime: "22:00", CloseTime: "11:00"}).IsValid())
	assert.False(t, (&ScheduleRule{OpenTime: "12:00", CloseTime: "12:00"}).IsValid())
	assert.False(t, (&ScheduleRule{}).IsValid())
}
