package gate

import (
	"context"
	"log/slog"

	"github.com/gatelogix/tos-gate-service/internal/domain"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/metrics"
)

// SnapshotArmer is the slice of the correlator the capture flow needs.
type SnapshotArmer interface {
	ArmSnapshot(cameraType string)
}

type Usecase interface {
	UpsertGate(ctx context.Context, point *domain.ActivityPoint) error
	GetGate(ctx context.Context, id uint) (*domain.ActivityPoint, error)
	GetGateByName(ctx context.Context, name string) (*domain.ActivityPoint, error)
	ListGates(ctx context.Context, search string) ([]*domain.ActivityPoint, error)
	UpsertCamera(ctx context.Context, cam *domain.Camera) (uint, error)
	ListCameras(ctx context.Context) ([]*domain.Camera, error)
	ArmCapture(ctx context.Context, gateID uint, cameraType string) (string, error)
}

type DefaultUsecase struct {
	GateRepo domain.GateRepository
	Armer    SnapshotArmer
	Metrics  *metrics.GateMetrics
	Log      *slog.Logger
}

func NewDefaultUsecase(
	gateRepo domain.GateRepository,
	armer SnapshotArmer,
	gateMetrics *metrics.GateMetrics,
	log *slog.Logger) *DefaultUsecase {

	return &DefaultUsecase{
		GateRepo: gateRepo,
		Armer:    armer,
		Metrics:  gateMetrics,
		Log:      log.With("component", "gate-usecase"),
	}
}
