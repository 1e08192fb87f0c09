package get_open_hours

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ArenaID <= 0 {
		return fmt.Errorf("%w: arenaID must be positive", ErrInvalidInput)
	}

	if req.BookingTypeID != nil && *req.BookingTypeID <= 0 {
		return fmt.Errorf("%w: bookingTypeID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
