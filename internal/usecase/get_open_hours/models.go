package get_open_hours

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса на получение часов работы арены
type Request struct {
	ArenaID       int64      // ID арены
	BookingTypeID *int64     // ID типа игры (nil - общие часы арены)
	Date          time.Time  // Дата, на которую запрашиваются часы

	// IgnoreSpecial пропустить особые часы и взять только еженедельное расписание
	// Используется фасадом слотов для визуализации закрытого дня
	IgnoreSpecial bool
	// NoCache обойти кеш и вычислить напрямую
	NoCache bool
}

// Response модель ответа с объединёнными интервалами работы
type Response struct {
	ArenaID       int64                 `json:"arenaId"`
	BookingTypeID *int64                `json:"bookingTypeId,omitempty"`
	Date          time.Time             `json:"date"`
	Intervals     []domain.TimeInterval `json:"intervals"`
}
