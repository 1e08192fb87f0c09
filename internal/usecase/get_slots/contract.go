package get_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/rediscache"
	getOpenHours "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_open_hours"
)

// BookingRepository интерфейс репозитория броней
type BookingRepository interface {
	// GetActiveForTypeAndDate получает активные брони типа игры на дату
	GetActiveForTypeAndDate(ctx context.Context, typeID int64, date time.Time) ([]*domain.Booking, error)
}

// BookingTypeRepository интерфейс репозитория типов игр
type BookingTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingType, error)
	GetSubTypeByID(ctx context.Context, id int64) (*domain.BookingSubType, error)
}

// OpenHoursProvider интерфейс разрешения часов работы (usecase get_open_hours)
type OpenHoursProvider interface {
	Execute(ctx context.Context, req *getOpenHours.Request) (*getOpenHours.Response, error)
}

// Cache интерфейс кеша с тегами
type Cache interface {
	Load(ctx context.Context, key string, opts rediscache.Options, dest any, produce func(ctx context.Context) (any, error)) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
