package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// WeeklyHours recurring open hours for one arena and weekday
// BookingTypeID = NULL means the record applies to every booking type of the arena
type WeeklyHours struct {
	ID            int64
	ArenaID       int64
	BookingTypeID *int64
	Weekday       time.Weekday

	OpensAt        *types.TimeString
	ClosesAt       *types.TimeString
	OnCallOpensAt  *types.TimeString
	OnCallClosesAt *types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalInterval returns the normal open interval projected onto date (empty if hours are not set)
func (h *WeeklyHours) NormalInterval(date time.Time) TimeInterval {
	return intervalOnDate(h.OpensAt, h.ClosesAt, date, IntervalNormal)
}

// OnCallInterval returns the on-call interval projected onto date (empty if hours are not set)
func (h *WeeklyHours) OnCallInterval(date time.Time) TimeInterval {
	return intervalOnDate(h.OnCallOpensAt, h.OnCallClosesAt, date, IntervalOnCall)
}

// SpecialHours date-specific override of the weekly schedule
// Closed = true closes the arena (or booking type) for the whole day regardless of any other record
type SpecialHours struct {
	ID            int64
	ArenaID       int64
	BookingTypeID *int64
	Date          time.Time
	Closed        bool

	OpensAt        *types.TimeString
	ClosesAt       *types.TimeString
	OnCallOpensAt  *types.TimeString
	OnCallClosesAt *types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalInterval returns the normal open interval projected onto date (empty if hours are not set)
func (h *SpecialHours) NormalInterval(date time.Time) TimeInterval {
	return intervalOnDate(h.OpensAt, h.ClosesAt, date, IntervalNormal)
}

// OnCallInterval returns the on-call interval projected onto date (empty if hours are not set)
func (h *SpecialHours) OnCallInterval(date time.Time) TimeInterval {
	return intervalOnDate(h.OnCallOpensAt, h.OnCallClosesAt, date, IntervalOnCall)
}

// intervalOnDate строит интервал на дату из пары "HH:MM" границ
// Возвращает пустой интервал, если какая-то из границ не задана или невалидна
func intervalOnDate(from, to *types.TimeString, date time.Time, kind IntervalKind) TimeInterval {
	if from == nil || to == nil {
		return TimeInterval{Kind: kind}
	}
	start, err := from.OnDate(date)
	if err != nil {
		return TimeInterval{Kind: kind}
	}
	end, err := to.OnDate(date)
	if err != nil {
		return TimeInterval{Kind: kind}
	}
	return TimeInterval{Start: start, End: end, Kind: kind}
}
