package run_notification_sweep

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/TB-ReservationService/internal/api/handlers"
	"github.com/m04kA/TB-ReservationService/internal/domain"
	notificationSweep "github.com/m04kA/TB-ReservationService/internal/usecase/notification_sweep"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidKind        = "некорректный вид уведомления"
	msgInvalidAsOfDate    = "некорректный формат asOfDate, ожидается YYYY-MM-DD"
)

// SweepRequest HTTP request model для внешнего планировщика
type SweepRequest struct {
	Kind     string `json:"kind"`               // reminder_24h / review_request
	AsOfDate string `json:"asOfDate,omitempty"` // опорная дата, по умолчанию сегодня
}

// SweepResponse HTTP response model с итогами прогона
type SweepResponse struct {
	Kind       string `json:"kind"`
	Candidates int    `json:"candidates"`
	Sent       int    `json:"sent"`
	Skipped    int    `json:"skipped"`
	Failed     int    `json:"failed"`
}

type Handler struct {
	useCase NotificationSweepUseCase
	logger  Logger
}

func NewHandler(useCase NotificationSweepUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /internal/notification-sweeps
// Внутренний эндпоинт для внешних планировщиков; cron внутри процесса
// дергает тот же use case напрямую.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SweepRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /internal/notification-sweeps - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq := &notificationSweep.Request{
		Kind: domain.NotificationKind(req.Kind),
	}

	if req.AsOfDate != "" {
		asOf, err := time.Parse(domain.DateFormat, req.AsOfDate)
		if err != nil {
			h.logger.Warn("POST /internal/notification-sweeps - Invalid asOfDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidAsOfDate)
			return
		}
		useCaseReq.AsOf = asOf
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, notificationSweep.ErrInvalidInput):
			h.logger.Warn("POST /internal/notification-sweeps - Invalid kind: %s", req.Kind)
			handlers.RespondBadRequest(w, msgInvalidKind)

		default:
			h.logger.Error("POST /internal/notification-sweeps - Sweep failed: kind=%s, error=%v", req.Kind, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /internal/notification-sweeps - Sweep finished: kind=%s, sent=%d, skipped=%d, failed=%d",
		result.Kind, result.Sent, result.Skipped, result.Failed)
	handlers.RespondJSON(w, http.StatusOK, &SweepResponse{
		Kind:       string(result.Kind),
		Candidates: result.Candidates,
		Sent:       result.Sent,
		Skipped:    result.Skipped,
		Failed:     result.Failed,
	})
}
