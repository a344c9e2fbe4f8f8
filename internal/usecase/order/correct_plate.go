package order

import (
	"context"
	"fmt"
	"time"

	"github.com/gatelogix/tos-gate-service/internal/domain"
	orderdto "github.com/gatelogix/tos-gate-service/internal/usecase/dto/order"
)

// CorrectPlate fixes a misread plate on an order after the fact. The order
// keeps the camera's read in old_truck_no for audit, and a corrected
// detection row is written so the at-gate view shows the right plate.
func (uc *DefaultUsecase) CorrectPlate(ctx context.Context, input *orderdto.CorrectPlateInput) error {
	if input.OrderNumber == "" || input.NewPlate == "" {
		return domain.NewRejection("order number and corrected plate are required")
	}

	if err := uc.OrderRepo.CorrectPlate(ctx, input.OrderNumber, input.OldPlate, input.NewPlate); err != nil {
		return err
	}

	if input.GateID != 0 {
		det := &domain.Detection{
			TruckNo:         input.NewPlate,
			GateID:          input.GateID,
			SnapTime:        time.Now(),
			Mode:            domain.ModeManual,
			OldTruckNo:      input.OldPlate,
			DetectedTruckNo: input.OldPlate,
		}
		if _, err := uc.DetectionRepo.CreateDetection(ctx, det); err != nil {
			return fmt.Errorf("failed to record corrected detection: %w", err)
		}
	}

	uc.Log.Info("plate corrected", "order_number", input.OrderNumber,
		"old_plate", input.OldPlate, "new_plate", input.NewPlate)
	uc.Metrics.RecordPlateCorrection()
	return nil
}
