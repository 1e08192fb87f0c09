package get_slots

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingTypeID <= 0 {
		return fmt.Errorf("%w: bookingTypeID must be positive", ErrInvalidInput)
	}

	if req.SubTypeID != nil && *req.SubTypeID <= 0 {
		return fmt.Errorf("%w: subTypeID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
