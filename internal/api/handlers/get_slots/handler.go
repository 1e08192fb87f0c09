package get_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	getSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_slots"
)

const (
	msgInvalidTypeID   = "некорректный ID типа игры"
	msgMissingDate     = "дата обязательна"
	msgInvalidParams   = "некорректные параметры запроса"
	msgTypeNotFound    = "тип игры не найден"
	msgSubTypeNotFound = "подтип игры не найден"
	msgSubTypeMismatch = "подтип не относится к выбранному типу игры"
)

type Handler struct {
	useCase GetSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/booking-types/{typeId}/slots
// Query params: date (required, YYYY-MM-DD), subTypeId, includePast,
// includeClosedTimes, includeBookings, noCache
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	typeIDStr := vars["typeId"]
	typeID, err := strconv.ParseInt(typeIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /booking-types/{id}/slots - Invalid type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTypeID)
		return
	}

	if r.URL.Query().Get("date") == "" {
		h.logger.Warn("GET /booking-types/{id}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(typeID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /booking-types/{id}/slots - Invalid params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrBookingTypeNotFound):
			h.logger.Warn("GET /booking-types/{id}/slots - Type not found: type_id=%d", typeID)
			handlers.RespondNotFound(w, msgTypeNotFound)

		case errors.Is(err, getSlots.ErrSubTypeNotFound):
			h.logger.Warn("GET /booking-types/{id}/slots - Sub type not found: type_id=%d", typeID)
			handlers.RespondNotFound(w, msgSubTypeNotFound)

		case errors.Is(err, getSlots.ErrSubTypeMismatch):
			h.logger.Warn("GET /booking-types/{id}/slots - Sub type mismatch: type_id=%d", typeID)
			handlers.RespondBadRequest(w, msgSubTypeMismatch)

		case errors.Is(err, getSlots.ErrInvalidInput):
			h.logger.Warn("GET /booking-types/{id}/slots - Invalid input: type_id=%d, error=%v", typeID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /booking-types/{id}/slots - Failed to get slots: type_id=%d, error=%v", typeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /booking-types/{id}/slots - Slots retrieved: type_id=%d, date=%s, slots_count=%d",
		typeID, r.URL.Query().Get("date"), result.Slots.Len())
	handlers.RespondJSON(w, http.StatusOK, response)
}
