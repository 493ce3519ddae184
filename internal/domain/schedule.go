package domain

import (
	"time"

	"github.com/m04kA/TB-ReservationService/pkg/types"
)

// ScheduleRule represents the operating hours of a restaurant for one day of
// the week (0=Sunday..6=Saturday). A restaurant has zero or one rule per day;
// a missing rule means the restaurant is closed that day.
type ScheduleRule struct {
	ID           int64
	RestaurantID int64
	DayOfWeek    int // 0=Sunday .. 6=Saturday
	OpenTime     types.TimeString
	CloseTime    types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValid reports whether the rule describes a supported open interval.
// Close at or before open (a wrap-past-midnight schedule) is a configuration
// error the caller must surface, never silently interpret.
func (r *ScheduleRule) IsValid() bool {
	return !r.OpenTime.IsZero() && !r.CloseTime.IsZero() && r.OpenTime.IsBefore(r.CloseTime)
}

// RuleForDate returns the rule matching the date's day of week, or nil if the
// restaurant is closed that day.
func RuleForDate(rules []*ScheduleRule, date time.Time) *ScheduleRule {
	dow := int(date.Weekday())
	for _, rule := range rules {
		if rule.DayOfWeek == dow {
			return rule
		}
	}
	return nil
}

// BookingPolicy represents the per-restaurant booking policy
type BookingPolicy struct {
	RestaurantID        int64
	SlotDurationMinutes int
	AdvanceBookingDays  int // 0 = без ограничения
	SameDayCutoffHours  int
	MaxPartySize        int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance reservations can be made
func (p *BookingPolicy) HasAdvanceBookingLimit() bool {
	return p.AdvanceBookingDays > 0
}

// DefaultBookingPolicy returns the policy applied when a restaurant has not
// configured one.
func DefaultBookingPolicy(restaurantID int64) *BookingPolicy {
	return &BookingPolicy{
		RestaurantID:        restaurantID,
		SlotDurationMinutes: DefaultSlotDurationMinutes,
		AdvanceBookingDays:  DefaultAdvanceBookingDays,
		SameDayCutoffHours:  DefaultSameDayCutoffHours,
		MaxPartySize:        DefaultMaxPartySize,
	}
}
