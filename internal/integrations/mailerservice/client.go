package mailerservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с почтовым сервисом
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента почтового сервиса
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendEvent отправляет событие почтовому сервису
func (c *Client) SendEvent(ctx context.Context, event Event) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/events", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusCreated:
		return nil
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: status code %d", ErrServiceUnavailable, resp.StatusCode)
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// NotifyReservationConfirmed отправляет событие подтверждения бронирования.
// Недоступность почтового сервиса логируется, но не роняет операцию:
// бронирование уже зафиксировано, письмо вторично.
func (c *Client) NotifyReservationConfirmed(ctx context.Context, restaurant RestaurantInfo, reservation ReservationInfo) {
	c.notify(ctx, EventReservationConfirmed, restaurant, reservation)
}

// NotifyReservationUpdated отправляет событие изменения бронирования
func (c *Client) NotifyReservationUpdated(ctx context.Context, restaurant RestaurantInfo, reservation ReservationInfo) {
	c.notify(ctx, EventReservationUpdated, restaurant, reservation)
}

// NotifyReservationCancelled отправляет событие отмены бронирования
func (c *Client) NotifyReservationCancelled(ctx context.Context, restaurant RestaurantInfo, reservation ReservationInfo) {
	c.notify(ctx, EventReservationCancelled, restaurant, reservation)
}

func (c *Client) notify(ctx context.Context, eventType EventType, restaurant RestaurantInfo, reservation ReservationInfo) {
	event := Event{
		EventID:     uuid.NewString(),
		Type:        eventType,
		Restaurant:  restaurant,
		Reservation: reservation,
	}

	if err := c.SendEvent(ctx, event); err != nil {
		c.log.Error("mailerservice: failed to send %s for reservation id=%d: %v",
			eventType, reservation.ID, err)
		return
	}

	c.log.Info("mailerservice: sent %s for reservation id=%d", eventType, reservation.ID)
}
