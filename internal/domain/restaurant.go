package domain

import "time"

// Restaurant represents a bookable restaurant. Only the fields the
// reservation engine needs are modeled here; the rest of the restaurant
// profile lives in owner tooling outside this service.
type Restaurant struct {
	ID          int64
	OwnerUserID int64
	Name        string
	Address     string
	Phone       string
	IsActive    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsStaff reports whether the user manages this restaurant.
func (r *Restaurant) IsStaff(userID int64) bool {
	return r.OwnerUserID == userID
}

// Table represents one physical table of a restaurant
type Table struct {
	ID           int64
	RestaurantID int64
	Capacity     int
	IsActive     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EligibleTableCount returns how many active tables can seat the party.
func EligibleTableCount(tables []*Table, partySize int) int {
	count := 0
	for _, t := range tables {
		if t.IsActive && t.Capacity >= partySize {
			count++
		}
	}
	return count
}
