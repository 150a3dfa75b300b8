package in

import (
	"context"

	"serene/internal/modules/device/dto"
	devicein "serene/internal/modules/device/port/in"
)

type CLIHandler struct {
	usecase devicein.Usecase
}

func NewCLIHandler(usecase devicein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.DriverInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) Pulse(ctx context.Context, driver string, intensity, sharpness float64) (dto.PulseOutput, error) {
	return h.usecase.Pulse(ctx, dto.PulseInput{Driver: driver, Intensity: intensity, Sharpness: sharpness})
}
