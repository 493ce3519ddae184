package get_restaurant_reservations

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/TB-ReservationService/internal/domain"
	"github.com/m04kA/TB-ReservationService/internal/service/reservations/models"
)

// ToServiceRequest собирает запрос к сервису из path и query параметров.
// date задаёт один день; startDate/endDate - период. Одновременно их
// передавать нельзя.
func ToServiceRequest(restaurantID, userID int64, dateStr, startDateStr, endDateStr, statusStr, includeInactiveStr string) (*models.GetRestaurantReservationsRequest, error) {
	req := &models.GetRestaurantReservationsRequest{
		RestaurantID: restaurantID,
		UserID:       userID,
	}

	if dateStr != "" && (startDateStr != "" || endDateStr != "") {
		return nil, fmt.Errorf("date and startDate/endDate are mutually exclusive")
	}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		req.StartDate = &date
		req.EndDate = &date
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate: %w", err)
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate: %w", err)
		}
		req.EndDate = &endDate
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("endDate is before startDate")
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
