package get_open_hours

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getOpenHours "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_open_hours"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// OpenHoursResponse HTTP response model
type OpenHoursResponse struct {
	ArenaID       int64          `json:"arenaId"`
	BookingTypeID *int64         `json:"bookingTypeId,omitempty"`
	Date          string         `json:"date"`
	Intervals     []OpenInterval `json:"intervals"`
}

// OpenInterval модель интервала работы
type OpenInterval struct {
	Start string `json:"start"` // "10:00"
	End   string `json:"end"`   // "22:00"
	Kind  string `json:"kind"`  // normal | on_call
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getOpenHours.Response) *OpenHoursResponse {
	intervals := make([]OpenInterval, len(resp.Intervals))
	for i, interval := range resp.Intervals {
		intervals[i] = OpenInterval{
			Start: types.NewTimeString(interval.Start).String(),
			End:   types.NewTimeString(interval.End).String(),
			Kind:  string(interval.Kind),
		}
	}

	return &OpenHoursResponse{
		ArenaID:       resp.ArenaID,
		BookingTypeID: resp.BookingTypeID,
		Date:          resp.Date.Format(domain.DateFormat),
		Intervals:     intervals,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(arenaID int64, typeID *int64, dateStr string) (*getOpenHours.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getOpenHours.Request{
		ArenaID:       arenaID,
		BookingTypeID: typeID,
		Date:          date,
	}, nil
}
