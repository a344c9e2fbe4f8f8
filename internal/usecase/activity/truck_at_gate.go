package activity

import (
	"context"

	"github.com/gatelogix/tos-gate-service/internal/domain"
	activitydto "github.com/gatelogix/tos-gate-service/internal/usecase/dto/activity"
)

// TrucksAtGate answers with the plates seen at a gate inside the rolling
// window, newest first. Empty result means the bridge is clear.
func (uc *DefaultUsecase) TrucksAtGate(ctx context.Context, input *activitydto.TruckAtGateInput) ([]*domain.TruckAtGate, error) {
	if input.GateID != 0 {
		gate, err := uc.GateRepo.ByID(ctx, input.GateID)
		if err != nil {
			return nil, err
		}
		if !gate.IsActive {
			return nil, domain.ErrGateInactive
		}
	}
	return uc.DetectionRepo.TrucksAtGate(ctx, input.GateID, input.Search, uc.TruckWindow)
}
