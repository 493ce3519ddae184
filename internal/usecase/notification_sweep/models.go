package notification_sweep

import (
	"time"

	"github.com/m04kA/TB-ReservationService/internal/domain"
)

// Request модель запроса на прогон свипа
type Request struct {
	Kind domain.NotificationKind // Вид уведомления
	AsOf time.Time               // Опорный момент; нулевое значение - текущее время
}

// Response итоги прогона свипа
type Response struct {
	Kind       domain.NotificationKind
	Candidates int // Сколько бронирований попало в выборку
	Sent       int // Сколько уведомлений отправлено в этом прогоне
	Skipped    int // Сколько пропущено как уже отправленные
	Failed     int // Сколько завершилось ошибкой (будут повторены следующим прогоном)
}
