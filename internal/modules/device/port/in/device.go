package in

import (
	"context"

	"serene/internal/modules/device/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.DriverInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	Pulse(ctx context.Context, input dto.PulseInput) (dto.PulseOutput, error)
	Close() error
}
