package txmanager

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	serialization := &pq.Error{Code: pq.ErrorCode(pqSerializationFailure)}
	deadlock := &pq.Error{Code: pq.ErrorCode(pqDeadlockDetected)}
	duplicate := &pq.Error{Code: pq.ErrorCode("23505")}

	errExecQuery := errors.New("reservations: exec query failed")
	errInternal := errors.New("create_reservation: internal error")

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "серийный конфликт", err: serialization, want: true},
		{name: "deadlock", err: deadlock, want: true},
		{name: "не-серийная ошибка драйвера", err: duplicate, want: false},
		{name: "бизнес-ошибка", err: errors.New("no availability"), want: false},
		{name: "nil", err: nil, want: false},
		{
			// Репозитории оборачивают ошибку драйвера своим сентинелом;
			// конфликт сериализации должен остаться видимым сквозь обертку
			name: "конфликт сквозь обертку репозитория",
			err:  fmt.Errorf("%w: GetByRestaurantWithFilter - execute query: %w", errExecQuery, serialization),
			want: true,
		},
		{
			// И сквозь вторую обертку на уровне usecase внутри транзакции
			name: "конфликт сквозь две обертки",
			err: fmt.Errorf("%w: failed to get reservations: %w", errInternal,
				fmt.Errorf("%w: execute query: %w", errExecQuery, serialization)),
			want: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isRetryable(tc.err))
		})
	}
}
