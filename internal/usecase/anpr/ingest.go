package anpr

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/gatelogix/tos-gate-service/internal/correlator"
	"github.com/gatelogix/tos-gate-service/internal/domain"
	"github.com/gatelogix/tos-gate-service/internal/plate"
	anprdto "github.com/gatelogix/tos-gate-service/internal/usecase/dto/anpr"
)

// Ingest processes one camera detection. The raw read always lands in the
// per-camera log; the audit record is written against the camera's gate, and
// a weight correlation session is handed off once both writes stick. The
// acknowledgement echoes plate validity and is returned even when the plate
// failed validation.
func (uc *DefaultUsecase) Ingest(ctx context.Context, input *anprdto.DetectionInput) (anprdto.DetectionOutput, error) {
	if input.CameraID == "" || input.SnapTime.IsZero() {
		return anprdto.DetectionOutput{}, domain.NewRejection("camera id and snap time are required")
	}

	rawPlate := input.Plate
	unlicensed := false
	if rawPlate == "" {
		// A plate-less frame is only meaningful when the vehicle box is
		// real and an operator armed a capture for this camera type.
		if !input.BoxPositive || !uc.Correlation.ConsumeSnapshot(input.CameraType) {
			return anprdto.DetectionOutput{}, domain.NewRejection("plate number is required")
		}
		rawPlate = fmt.Sprintf("DUMMY_%d", time.Now().UnixMilli())
		unlicensed = true
		uc.Metrics.RecordDummyPlate()
		uc.Log.Info("unlicensed vehicle recorded", "plate", rawPlate, "camera_id", input.CameraID)
	}

	result := plate.Identify(rawPlate)
	verified := plate.Verify(result)
	bestPlate := rawPlate
	if result.Valid && verified {
		bestPlate = result.Normalized
	}
	if !result.Valid && !unlicensed {
		uc.Metrics.RecordInvalidPlate()
	}
	uc.Metrics.RecordDetection(input.CameraType, string(domain.ModeSnapshot))

	logID, err := uc.DetectionRepo.CreateLog(ctx, &domain.DetectionLog{
		TruckNo:  rawPlate,
		CameraID: input.CameraID,
		SnapTime: input.SnapTime,
	})
	if err != nil {
		return anprdto.DetectionOutput{}, fmt.Errorf("failed to store detection log: %w", err)
	}

	gate, err := uc.resolveGate(ctx, input.CameraID)
	if err != nil {
		// The raw log survived; acknowledge so the camera does not retry.
		uc.Log.Warn("detection not resolved to a gate",
			"camera_id", input.CameraID, "plate", rawPlate, "error", err)
		return anprdto.Acknowledged(result.Valid), nil
	}

	detID, err := uc.DetectionRepo.CreateDetection(ctx, &domain.Detection{
		TruckNo:         bestPlate,
		GateID:          gate.ID,
		SnapTime:        input.SnapTime,
		IsUnlicensed:    unlicensed,
		CameraType:      input.CameraType,
		Mode:            domain.ModeSnapshot,
		DetectedTruckNo: rawPlate,
	})
	if err != nil {
		uc.Log.Warn("audit detection write failed",
			"camera_id", input.CameraID, "plate", bestPlate, "error", err)
		return anprdto.Acknowledged(result.Valid), nil
	}

	uc.handoffCorrelation(gate, logID, detID)
	return anprdto.Acknowledged(result.Valid), nil
}

func (uc *DefaultUsecase) resolveGate(ctx context.Context, cameraID string) (*domain.ActivityPoint, error) {
	id, err := strconv.ParseInt(cameraID, 10, 64)
	if err != nil {
		return nil, domain.ErrGateNotFound
	}
	gate, err := uc.GateRepo.ByCamera(ctx, id)
	if err != nil {
		return nil, err
	}
	if !gate.IsActive {
		return nil, domain.ErrGateInactive
	}
	return gate, nil
}

// handoffCorrelation never blocks the acknowledgement; a busy gate or an
// unreachable bridge leaves the weight unset.
func (uc *DefaultUsecase) handoffCorrelation(gate *domain.ActivityPoint, logID, detID uint) {
	if gate.Address == "" {
		return
	}
	in := correlator.Input{
		GateID:      gate.ID,
		BridgeAddr:  net.JoinHostPort(gate.Address, uc.BridgePort),
		LogID:       logID,
		DetectionID: detID,
	}
	go func() {
		if err := uc.Correlation.Correlate(context.Background(), in); err != nil {
			uc.Log.Warn("weight correlation not started",
				"gate_id", gate.ID, "detection_id", detID, "error", err)
		}
	}()
}
