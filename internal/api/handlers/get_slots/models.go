package get_slots

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_slots"
)

// SlotsResponse HTTP response model
// Slots сериализуется объектом с ключами "HH:MM" в хронологическом порядке
type SlotsResponse struct {
	BookingTypeID int64           `json:"bookingTypeId"`
	ArenaID       int64           `json:"arenaId"`
	Date          string          `json:"date"`
	Slots         *domain.SlotMap `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.Response) *SlotsResponse {
	return &SlotsResponse{
		BookingTypeID: resp.BookingTypeID,
		ArenaID:       resp.ArenaID,
		Date:          resp.Date.Format(domain.DateFormat),
		Slots:         resp.Slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(typeID int64, query url.Values) (*getSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		return nil, err
	}

	req := &getSlots.Request{
		BookingTypeID:      typeID,
		Date:               date,
		IncludePast:        parseBool(query.Get("includePast")),
		IncludeClosedTimes: parseBool(query.Get("includeClosedTimes")),
		IncludeBookings:    parseBool(query.Get("includeBookings")),
		NoCache:            parseBool(query.Get("noCache")),
	}

	if subTypeStr := query.Get("subTypeId"); subTypeStr != "" {
		subTypeID, err := strconv.ParseInt(subTypeStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.SubTypeID = &subTypeID
	}

	return req, nil
}

// parseBool трактует невалидные значения как false
func parseBool(s string) bool {
	v, err := strconv.ParseBool(s)
	return err == nil && v
}
