package gate

import (
	"context"

	"github.com/gatelogix/tos-gate-service/internal/domain"
	"github.com/jaevor/go-nanoid"
)

// UpsertGate creates or refreshes an activity point keyed by name.
func (uc *DefaultUsecase) UpsertGate(ctx context.Context, point *domain.ActivityPoint) error {
	if point.Name == "" {
		return domain.NewRejection("activity point name is required")
	}
	if err := uc.GateRepo.Upsert(ctx, point); err != nil {
		return err
	}
	uc.Log.Info("activity point upserted", "name", point.Name, "address", point.Address)
	return nil
}

func (uc *DefaultUsecase) GetGate(ctx context.Context, id uint) (*domain.ActivityPoint, error) {
	return uc.GateRepo.ByID(ctx, id)
}

func (uc *DefaultUsecase) GetGateByName(ctx context.Context, name string) (*domain.ActivityPoint, error) {
	return uc.GateRepo.ByName(ctx, name)
}

func (uc *DefaultUsecase) ListGates(ctx context.Context, search string) ([]*domain.ActivityPoint, error) {
	return uc.GateRepo.List(ctx, search)
}

// UpsertCamera creates or refreshes a camera keyed by IP address.
func (uc *DefaultUsecase) UpsertCamera(ctx context.Context, cam *domain.Camera) (uint, error) {
	if cam.IPAddress == "" {
		return 0, domain.NewRejection("camera ip address is required")
	}
	return uc.GateRepo.UpsertCamera(ctx, cam)
}

func (uc *DefaultUsecase) ListCameras(ctx context.Context) ([]*domain.Camera, error) {
	return uc.GateRepo.ListCameras(ctx)
}

// ArmCapture arms the one-shot snapshot signal for a gate camera and hands
// back a reference token the operator UI can correlate the capture with.
func (uc *DefaultUsecase) ArmCapture(ctx context.Context, gateID uint, cameraType string) (string, error) {
	point, err := uc.GateRepo.ByID(ctx, gateID)
	if err != nil {
		return "", err
	}
	if !point.IsActive {
		return "", domain.ErrGateInactive
	}

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return "", err
	}
	ref := idGenerator()

	uc.Armer.ArmSnapshot(cameraType)
	uc.Log.Info("snapshot capture armed",
		"gate_id", gateID, "camera_type", cameraType, "capture_ref", ref)
	return ref, nil
}
