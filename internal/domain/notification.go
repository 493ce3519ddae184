package domain

import "time"

// NotificationKind identifies a once-per-reservation notification sweep
type NotificationKind string

const (
	// KindReminder24h reminds the guest one day before the reservation
	KindReminder24h NotificationKind = "reminder_24h"

	// KindReviewRequest asks for a review the day after a completed visit
	KindReviewRequest NotificationKind = "review_request"
)

// IsValid reports whether the kind is one the sweep knows how to run.
func (k NotificationKind) IsValid() bool {
	return k == KindReminder24h || k == KindReviewRequest
}

// NotificationRecord marks a (reservation, kind) pair as dispatched.
// The unique pair is the idempotency key: existence of a record is the sole
// admission check for a repeat sweep, there is no queue.
type NotificationRecord struct {
	ID            int64
	ReservationID int64
	Kind          NotificationKind
	SentAt        time.Time
}
