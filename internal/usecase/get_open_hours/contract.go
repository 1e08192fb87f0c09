package get_open_hours

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/rediscache"
)

// OpenHoursRepository интерфейс репозитория часов работы
type OpenHoursRepository interface {
	// FindWeekly получает еженедельные часы работы на день недели
	FindWeekly(ctx context.Context, arenaID int64, typeID *int64, weekday time.Weekday) ([]*domain.WeeklyHours, error)
	// FindSpecial получает особые часы работы на конкретную дату
	FindSpecial(ctx context.Context, arenaID int64, typeID *int64, date time.Time) ([]*domain.SpecialHours, error)
}

// Cache интерфейс кеша с тегами
type Cache interface {
	Load(ctx context.Context, key string, opts rediscache.Options, dest any, produce func(ctx context.Context) (any, error)) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
