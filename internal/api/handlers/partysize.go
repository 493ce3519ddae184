package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/m04kA/TB-ReservationService/internal/domain"
)

// ParsePartySize разбирает размер компании с провода. Значение "20+"
// нормализуется к сентинелу больших компаний до любой валидации.
func ParsePartySize(raw string) (int, error) {
	raw = strings.TrimSpace(raw)

	if strings.HasSuffix(raw, "+") {
		base, err := strconv.Atoi(strings.TrimSuffix(raw, "+"))
		if err != nil || base != domain.LargePartySentinel {
			return 0, fmt.Errorf("invalid party size %q", raw)
		}
		return domain.LargePartySentinel, nil
	}

	size, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid party size %q", raw)
	}

	return size, nil
}
