package manualmode

import (
	"context"
	"fmt"
	"time"

	"github.com/gatelogix/tos-gate-service/internal/domain"
	anprdto "github.com/gatelogix/tos-gate-service/internal/usecase/dto/anpr"
)

// PostManualModeLog records an operator-entered plate while the gate runs
// manually. The gate must exist and be active; no weight correlation is
// attempted for manual entries.
func (uc *DefaultUsecase) PostManualModeLog(ctx context.Context, input *anprdto.ManualLogInput) error {
	if input.Plate == "" {
		return domain.NewRejection("plate number is required")
	}

	gate, err := uc.GateRepo.ByID(ctx, input.GateID)
	if err != nil {
		return err
	}
	if !gate.IsActive {
		return domain.ErrGateInactive
	}

	_, err = uc.DetectionRepo.CreateDetection(ctx, &domain.Detection{
		TruckNo:  input.Plate,
		GateID:   gate.ID,
		SnapTime: time.Now(),
		Mode:     domain.ModeManual,
	})
	if err != nil {
		return fmt.Errorf("failed to store manual detection: %w", err)
	}

	uc.Metrics.RecordDetection("", string(domain.ModeManual))
	uc.Log.Info("manual detection recorded", "plate", input.Plate, "gate_id", gate.ID)
	return nil
}
