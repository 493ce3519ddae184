package notification

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TB-ReservationService/internal/domain"
	"github.com/m04kA/TB-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/TB-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий записей об отправленных уведомлениях.
// Уникальность пары (reservation_id, kind) обеспечивается констрейнтом в БД -
// это единственный механизм идемпотентности рассылки, очереди нет.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория уведомлений
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Exists проверяет, отправлялось ли уже уведомление этого вида по бронированию
func (r *Repository) Exists(ctx context.Context, reservationID int64, kind domain.NotificationKind) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("notification_records").
		Where(squirrel.Eq{"reservation_id": reservationID, "kind": kind}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Exists - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Exists - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	exists := rows.Next()
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("%w: Exists - rows error: %w", ErrScanRow, err)
	}

	return exists, nil
}

// RecordSent фиксирует отправку уведомления.
// ON CONFLICT DO NOTHING: при гонке двух пересекающихся прогонов рассылки
// второй получает ErrAlreadyRecorded, а уникальность пары никогда не
// нарушается.
func (r *Repository) RecordSent(ctx context.Context, reservationID int64, kind domain.NotificationKind) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("notification_records").
		Columns("reservation_id", "kind").
		Values(reservationID, kind).
		Suffix("ON CONFLICT (reservation_id, kind) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RecordSent - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RecordSent - execute insert: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RecordSent - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAlreadyRecorded
	}

	return nil
}
