// Package txmanager runs functions inside SERIALIZABLE transactions over a
// metrics-wrapped connection. The slot admission check-then-insert must not
// interleave with a concurrent admission for the same slot, so the whole
// sequence runs at the serializable level and serialization failures are
// retried.
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/TB-ReservationService/pkg/dbmetrics"
)

// Серийные конфликты Postgres: serialization_failure и deadlock_detected
const (
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

const maxRetries = 3

// ErrTxFailed возвращается, когда транзакция не удалась после всех попыток
var ErrTxFailed = errors.New("txmanager: transaction failed")

// TxBeginner открывает транзакции (реализуется *dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager управляет сериализуемыми транзакциями
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable выполняет fn внутри SERIALIZABLE транзакции.
// Транзакция передается репозиториям через контекст (dbmetrics.WithTransaction).
// Конфликты сериализации ретраятся до maxRetries раз; бизнес-ошибки из fn
// не ретраятся и возвращаются как есть.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := m.runOnce(ctx, fn)
		if err == nil {
			return nil
		}

		if !isRetryable(err) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("%w: after %d attempts: %v", ErrTxFailed, maxRetries, lastErr)
}

func (m *TransactionManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrTxFailed, err)
	}

	txCtx := dbmetrics.WithTransaction(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return nil
}

func isRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqSerializationFailure || string(pqErr.Code) == pqDeadlockDetected
	}
	return false
}
