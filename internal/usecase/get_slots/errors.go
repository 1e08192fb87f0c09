package get_slots

import "errors"

var (
	// ErrBookingTypeNotFound возвращается, когда тип игры не найден
	ErrBookingTypeNotFound = errors.New("booking type not found")

	// ErrSubTypeNotFound возвращается, когда подтип игры не найден
	ErrSubTypeNotFound = errors.New("booking sub type not found")

	// ErrSubTypeMismatch возвращается, когда подтип не относится к запрошенному типу
	ErrSubTypeMismatch = errors.New("sub type does not belong to booking type")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
