package get_open_hours

import (
	"context"

	getOpenHours "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_open_hours"
)

type GetOpenHoursUseCase interface {
	Execute(ctx context.Context, req *getOpenHours.Request) (*getOpenHours.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
