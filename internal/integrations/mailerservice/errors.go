package mailerservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mailerservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("mailerservice client: invalid response")

	// ErrServiceUnavailable возвращается, когда почтовый сервис недоступен.
	// Бронирование при этом не откатывается - уведомление вторично.
	ErrServiceUnavailable = errors.New("mailerservice client: service unavailable")
)
