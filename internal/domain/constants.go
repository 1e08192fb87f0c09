package domain

// Default configuration values
const (
	DefaultSlotLengthMinutes = 30
	DefaultSlotCapacity      = 10
)

// Business validation constants
const (
	MinSlotLengthMinutes = 5
	MaxSlotLengthMinutes = 480 // 8 hours
	MinSlotCapacity      = 1
	MaxSlotCapacity      = 100
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов броней, не занимающих слоты
// Используется при подсчёте занятости слотов
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}

// ActiveStatuses список статусов броней, занимающих слоты
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
