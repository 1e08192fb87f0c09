package bookingtype

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий типов и подтипов игр
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория типов игр
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает тип игры по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BookingType, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"arena_id",
		"name",
		"slot_length_minutes",
		"slot_capacity",
		"created_at",
		"updated_at",
	).
		From("booking_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var bookingType domain.BookingType
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&bookingType.ID,
		&bookingType.ArenaID,
		&bookingType.Name,
		&bookingType.SlotLengthMinutes,
		&bookingType.SlotCapacity,
		&bookingType.CreatedAt,
		&bookingType.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking type: %v", ErrScanRow, err)
	}

	return &bookingType, nil
}

// GetSubTypeByID получает подтип игры по ID
func (r *Repository) GetSubTypeByID(ctx context.Context, id int64) (*domain.BookingSubType, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"booking_type_id",
		"name",
		"slot_capacity_override",
		"locks_whole_slot",
		"uses_on_call_hours",
		"created_at",
		"updated_at",
	).
		From("booking_sub_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSubTypeByID - build select query: %v", ErrBuildQuery, err)
	}

	var subType domain.BookingSubType
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&subType.ID,
		&subType.BookingTypeID,
		&subType.Name,
		&subType.SlotCapacityOverride,
		&subType.LocksWholeSlot,
		&subType.UsesOnCallHours,
		&subType.CreatedAt,
		&subType.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSubTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSubTypeByID - scan sub type: %v", ErrScanRow, err)
	}

	return &subType, nil
}

// ListByArena получает все типы игр арены
// Используется CLI-инструментом для вывода справки по арене
func (r *Repository) ListByArena(ctx context.Context, arenaID int64) ([]*domain.BookingType, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"arena_id",
		"name",
		"slot_length_minutes",
		"slot_capacity",
		"created_at",
		"updated_at",
	).
		From("booking_types").
		Where(squirrel.Eq{"arena_id": arenaID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByArena - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByArena - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookingTypes := make([]*domain.BookingType, 0)
	for rows.Next() {
		var bookingType domain.BookingType
		err := rows.Scan(
			&bookingType.ID,
			&bookingType.ArenaID,
			&bookingType.Name,
			&bookingType.SlotLengthMinutes,
			&bookingType.SlotCapacity,
			&bookingType.CreatedAt,
			&bookingType.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByArena - scan row: %v", ErrScanRow, err)
		}
		bookingTypes = append(bookingTypes, &bookingType)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByArena - rows error: %v", ErrScanRow, err)
	}

	return bookingTypes, nil
}
