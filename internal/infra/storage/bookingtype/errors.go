package bookingtype

import "errors"

var (
	// ErrTypeNotFound возвращается, когда тип игры не найден
	ErrTypeNotFound = errors.New("bookingtype.repository: booking type not found")

	// ErrSubTypeNotFound возвращается, когда подтип игры не найден
	ErrSubTypeNotFound = errors.New("bookingtype.repository: booking sub type not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("bookingtype.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("bookingtype.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("bookingtype.repository: failed to scan row")
)
