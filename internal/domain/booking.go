package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking represents an arena reservation occupying one or more consecutive slots
type Booking struct {
	ID            int64
	ArenaID       int64
	BookingTypeID int64
	SubTypeID     *int64

	// StartsAt начало первого занятого слота
	StartsAt time.Time
	// SlotCount количество последовательных слотов (>= 1)
	SlotCount int
	// PlayerCount количество игроков (>= 1)
	PlayerCount int
	// Locked бронь полностью блокирует свои слоты независимо от вместимости
	Locked bool

	Status BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slots
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusNoShow
}

// FilledSlots returns the slot-start timestamps the booking occupies:
// SlotCount consecutive starts spaced by slotLength, beginning at StartsAt
func (b *Booking) FilledSlots(slotLength time.Duration) []time.Time {
	if b.SlotCount < 1 {
		return nil
	}
	starts := make([]time.Time, 0, b.SlotCount)
	for i := 0; i < b.SlotCount; i++ {
		starts = append(starts, b.StartsAt.Add(time.Duration(i)*slotLength))
	}
	return starts
}

// EndsAt returns the end of the last occupied slot
func (b *Booking) EndsAt(slotLength time.Duration) time.Time {
	return b.StartsAt.Add(time.Duration(b.SlotCount) * slotLength)
}
