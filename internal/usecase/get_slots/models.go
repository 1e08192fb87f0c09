package get_slots

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса на получение карты слотов
type Request struct {
	BookingTypeID int64     // ID типа игры
	Date          time.Time // Дата, на которую запрашиваются слоты
	SubTypeID     *int64    // ID подтипа игры (опционально)

	// Now переопределение текущего времени ("как выглядела бы доступность в момент T")
	// Запросы с переопределённым временем не кешируются
	Now *time.Time

	// IncludePast включать прошедшие слоты (со статусом closed)
	IncludePast bool
	// IncludeClosedTimes в закрытый день вернуть слоты еженедельного расписания со статусом closed
	IncludeClosedTimes bool
	// IncludeBookings прикладывать к слотам список броней
	IncludeBookings bool
	// NoCache обойти кеш итоговой карты слотов (кеш часов работы не затрагивает)
	NoCache bool
}

// Response модель ответа с картой слотов
type Response struct {
	BookingTypeID int64           `json:"bookingTypeId"`
	ArenaID       int64           `json:"arenaId"`
	Date          time.Time       `json:"date"`
	Slots         *domain.SlotMap `json:"slots"`
}
