package openhours

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Repository репозиторий часов работы арен
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория часов работы
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindWeekly получает еженедельные часы работы арены на день недели
// typeID = nil ищет записи без привязки к типу игры (общие для арены)
func (r *Repository) FindWeekly(ctx context.Context, arenaID int64, typeID *int64, weekday time.Weekday) ([]*domain.WeeklyHours, error) {
	selectBuilder := psqlbuilder.Select(
		"id",
		"arena_id",
		"booking_type_id",
		"weekday",
		"opens_at",
		"closes_at",
		"on_call_opens_at",
		"on_call_closes_at",
		"created_at",
		"updated_at",
	).
		From("arena_weekly_hours").
		Where(squirrel.Eq{"arena_id": arenaID}).
		Where(squirrel.Eq{"weekday": int(weekday)}).
		OrderBy("id ASC")

	// NULL = запись для всех типов игр арены
	if typeID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_type_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_type_id": *typeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindWeekly - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindWeekly - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.WeeklyHours, 0)
	for rows.Next() {
		var (
			record  domain.WeeklyHours
			weekday int
			bounds  hourBounds
		)

		err := rows.Scan(
			&record.ID,
			&record.ArenaID,
			&record.BookingTypeID,
			&weekday,
			&bounds.opensAt,
			&bounds.closesAt,
			&bounds.onCallOpensAt,
			&bounds.onCallClosesAt,
			&record.CreatedAt,
			&record.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: FindWeekly - scan row: %v", ErrScanRow, err)
		}

		record.Weekday = time.Weekday(weekday)
		bounds.apply(&record.OpensAt, &record.ClosesAt, &record.OnCallOpensAt, &record.OnCallClosesAt)

		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindWeekly - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}

// FindSpecial получает особые часы работы арены на конкретную дату
// typeID = nil ищет записи без привязки к типу игры (общие для арены)
func (r *Repository) FindSpecial(ctx context.Context, arenaID int64, typeID *int64, date time.Time) ([]*domain.SpecialHours, error) {
	selectBuilder := psqlbuilder.Select(
		"id",
		"arena_id",
		"booking_type_id",
		"date",
		"closed",
		"opens_at",
		"closes_at",
		"on_call_opens_at",
		"on_call_closes_at",
		"created_at",
		"updated_at",
	).
		From("arena_special_hours").
		Where(squirrel.Eq{"arena_id": arenaID}).
		Where(squirrel.Eq{"date": date.Format(domain.DateFormat)}).
		OrderBy("id ASC")

	if typeID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_type_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_type_id": *typeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindSpecial - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindSpecial - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.SpecialHours, 0)
	for rows.Next() {
		var (
			record domain.SpecialHours
			bounds hourBounds
		)

		err := rows.Scan(
			&record.ID,
			&record.ArenaID,
			&record.BookingTypeID,
			&record.Date,
			&record.Closed,
			&bounds.opensAt,
			&bounds.closesAt,
			&bounds.onCallOpensAt,
			&bounds.onCallClosesAt,
			&record.CreatedAt,
			&record.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: FindSpecial - scan row: %v", ErrScanRow, err)
		}

		bounds.apply(&record.OpensAt, &record.ClosesAt, &record.OnCallOpensAt, &record.OnCallClosesAt)

		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindSpecial - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}

// hourBounds nullable-колонки времени, сканируются строками "HH:MM[:SS]"
type hourBounds struct {
	opensAt        sql.NullString
	closesAt       sql.NullString
	onCallOpensAt  sql.NullString
	onCallClosesAt sql.NullString
}

// apply раскладывает отсканированные значения по полям записи
func (b *hourBounds) apply(opensAt, closesAt, onCallOpensAt, onCallClosesAt **types.TimeString) {
	*opensAt = toTimeString(b.opensAt)
	*closesAt = toTimeString(b.closesAt)
	*onCallOpensAt = toTimeString(b.onCallOpensAt)
	*onCallClosesAt = toTimeString(b.onCallClosesAt)
}

// toTimeString конвертирует NULL-able колонку TIME в *types.TimeString
// Postgres отдаёт TIME как "HH:MM:SS" - секунды отбрасываем
func toTimeString(v sql.NullString) *types.TimeString {
	if !v.Valid {
		return nil
	}
	s := v.String
	if len(s) > 5 {
		s = s[:5]
	}
	ts, err := types.NewTimeStringFromString(s)
	if err != nil {
		return nil
	}
	return &ts
}
