package domain

import "time"

// BookingType represents a bookable game type of an arena
// Defines the slot quantization unit and the default per-slot capacity
type BookingType struct {
	ID                int64
	ArenaID           int64
	Name              string
	SlotLengthMinutes int
	SlotCapacity      int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SlotLength returns the slot length as a duration
func (t *BookingType) SlotLength() time.Duration {
	return time.Duration(t.SlotLengthMinutes) * time.Minute
}

// BookingSubType optional per-subtype overrides of the booking type behaviour
type BookingSubType struct {
	ID            int64
	BookingTypeID int64
	Name          string

	// SlotCapacityOverride переопределяет вместимость слота (NULL - берётся из типа)
	SlotCapacityOverride *int
	// LocksWholeSlot любое бронирование этого подтипа полностью блокирует слот
	LocksWholeSlot bool
	// UsesOnCallHours on-call часы для этого подтипа считаются обычными
	UsesOnCallHours bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CapacityFor returns the effective slot capacity for the given booking type
func (s *BookingSubType) CapacityFor(t *BookingType) int {
	if s != nil && s.SlotCapacityOverride != nil {
		return *s.SlotCapacityOverride
	}
	return t.SlotCapacity
}
