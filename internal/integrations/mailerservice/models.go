package mailerservice

// EventType вид события для почтового сервиса
type EventType string

const (
	EventReservationConfirmed EventType = "reservation.confirmed"
	EventReservationUpdated   EventType = "reservation.updated"
	EventReservationCancelled EventType = "reservation.cancelled"
	EventReservationReminder  EventType = "reservation.reminder"
	EventReviewRequest        EventType = "reservation.review_request"
)

// RestaurantInfo отображаемые поля ресторана для письма.
// Движок бронирования писем не рендерит и не отправляет - только передаёт
// данные почтовому сервису.
type RestaurantInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// ReservationInfo данные бронирования для письма
type ReservationInfo struct {
	ID              int64  `json:"id"`
	Date            string `json:"date"`      // YYYY-MM-DD
	StartTime       string `json:"startTime"` // HH:MM
	PartySize       int    `json:"partySize"`
	Status          string `json:"status"`
	GuestName       string `json:"guestName"`
	GuestEmail      string `json:"guestEmail"`
	GuestPhone      string `json:"guestPhone"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

// Event событие для почтового сервиса. EventID уникален на каждую отправку,
// чтобы получатель мог дедуплицировать доставку.
type Event struct {
	EventID     string          `json:"eventId"`
	Type        EventType       `json:"type"`
	Restaurant  RestaurantInfo  `json:"restaurant"`
	Reservation ReservationInfo `json:"reservation"`
}

// ErrorResponse модель ошибки от почтового сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
