package usecase

import (
	"context"

	"serene/internal/modules/device/dto"
	devicein "serene/internal/modules/device/port/in"
	"serene/internal/modules/device/service"
)

type Interactor struct {
	svc *service.DeviceService
}

func NewInteractor(svc *service.DeviceService) devicein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.DriverInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Pulse(ctx context.Context, input dto.PulseInput) (dto.PulseOutput, error) {
	return i.svc.Pulse(ctx, input)
}

func (i *Interactor) Close() error {
	return i.svc.Close()
}
