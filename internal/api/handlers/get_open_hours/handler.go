package get_open_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	getOpenHours "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_open_hours"
)

const (
	msgInvalidArenaID = "некорректный ID арены"
	msgInvalidTypeID  = "некорректный ID типа игры"
	msgMissingDate    = "дата обязательна"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase GetOpenHoursUseCase
	logger  Logger
}

func NewHandler(useCase GetOpenHoursUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/arenas/{arenaId}/open-hours
// Query params: date (required, YYYY-MM-DD), typeId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	arenaIDStr := vars["arenaId"]
	arenaID, err := strconv.ParseInt(arenaIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /arenas/{id}/open-hours - Invalid arena ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidArenaID)
		return
	}

	// typeId опционален: без него возвращаются общие часы арены
	var typeID *int64
	if typeIDStr := r.URL.Query().Get("typeId"); typeIDStr != "" {
		parsed, err := strconv.ParseInt(typeIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /arenas/{id}/open-hours - Invalid type ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTypeID)
			return
		}
		typeID = &parsed
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /arenas/{id}/open-hours - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(arenaID, typeID, dateStr)
	if err != nil {
		h.logger.Warn("GET /arenas/{id}/open-hours - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getOpenHours.ErrInvalidInput):
			h.logger.Warn("GET /arenas/{id}/open-hours - Invalid input: arena_id=%d, error=%v", arenaID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /arenas/{id}/open-hours - Failed to resolve hours: arena_id=%d, error=%v", arenaID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /arenas/{id}/open-hours - Hours resolved: arena_id=%d, date=%s, intervals=%d",
		arenaID, dateStr, len(result.Intervals))
	handlers.RespondJSON(w, http.StatusOK, response)
}
