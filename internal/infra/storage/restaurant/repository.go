package restaurant

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TB-ReservationService/internal/domain"
	"github.com/m04kA/TB-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/TB-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий справочных данных ресторана: профиль, расписание,
// политика бронирования, столы. Движок бронирования их только читает -
// изменяются они инструментами владельца вне этого сервиса.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория ресторанов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает ресторан по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Restaurant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_user_id",
		"name",
		"address",
		"phone",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("restaurants").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var rest domain.Restaurant
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rest.ID,
		&rest.OwnerUserID,
		&rest.Name,
		&rest.Address,
		&rest.Phone,
		&rest.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRestaurantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan restaurant: %w", ErrScanRow, err)
	}

	rest.CreatedAt = createdAt.Time
	rest.UpdatedAt = updatedAt.Time

	return &rest, nil
}

// GetScheduleRules получает недельное расписание ресторана.
// На день недели приходится ноль или одна запись; отсутствие записи означает
// выходной.
func (r *Repository) GetScheduleRules(ctx context.Context, restaurantID int64) ([]*domain.ScheduleRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"restaurant_id",
		"day_of_week",
		"open_time",
		"close_time",
		"created_at",
		"updated_at",
	).
		From("schedule_rules").
		Where(squirrel.Eq{"restaurant_id": restaurantID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduleRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduleRules - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.ScheduleRule, 0)

	for rows.Next() {
		var rule domain.ScheduleRule
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&rule.ID,
			&rule.RestaurantID,
			&rule.DayOfWeek,
			&rule.OpenTime,
			&rule.CloseTime,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetScheduleRules - scan row: %w", ErrScanRow, err)
		}

		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time

		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetScheduleRules - rows error: %w", ErrScanRow, err)
	}

	return rules, nil
}

// GetPolicy получает политику бронирования ресторана.
// Если политика не настроена, возвращает ErrPolicyNotFound - вызывающий
// подставляет дефолтную.
func (r *Repository) GetPolicy(ctx context.Context, restaurantID int64) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"restaurant_id",
		"slot_duration_minutes",
		"advance_booking_days",
		"same_day_cutoff_hours",
		"max_party_size",
		"created_at",
		"updated_at",
	).
		From("booking_policies").
		Where(squirrel.Eq{"restaurant_id": restaurantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPolicy - build select query: %v", ErrBuildQuery, err)
	}

	var policy domain.BookingPolicy
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&policy.RestaurantID,
		&policy.SlotDurationMinutes,
		&policy.AdvanceBookingDays,
		&policy.SameDayCutoffHours,
		&policy.MaxPartySize,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPolicy - scan policy: %w", ErrScanRow, err)
	}

	policy.CreatedAt = createdAt.Time
	policy.UpdatedAt = updatedAt.Time

	return &policy, nil
}

// GetActiveTables получает активные столы ресторана.
// Только активные столы участвуют в подсчёте доступности; выключенные
// сохраняются ради истории бронирований.
func (r *Repository) GetActiveTables(ctx context.Context, restaurantID int64) ([]*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"restaurant_id",
		"capacity",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("restaurant_tables").
		Where(squirrel.Eq{"restaurant_id": restaurantID, "is_active": true}).
		OrderBy("capacity ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveTables - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveTables - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	tables := make([]*domain.Table, 0)

	for rows.Next() {
		var table domain.Table
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&table.ID,
			&table.RestaurantID,
			&table.Capacity,
			&table.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveTables - scan row: %w", ErrScanRow, err)
		}

		table.CreatedAt = createdAt.Time
		table.UpdatedAt = updatedAt.Time

		tables = append(tables, &table)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveTables - rows error: %w", ErrScanRow, err)
	}

	return tables, nil
}
