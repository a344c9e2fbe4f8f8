package anpr

import (
	"context"
	"log/slog"

	"github.com/gatelogix/tos-gate-service/internal/correlator"
	"github.com/gatelogix/tos-gate-service/internal/domain"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/metrics"
	anprdto "github.com/gatelogix/tos-gate-service/internal/usecase/dto/anpr"
)

// Correlation is the slice of the correlator the ingestor needs.
type Correlation interface {
	ConsumeSnapshot(cameraType string) bool
	Correlate(ctx context.Context, in correlator.Input) error
}

type Usecase interface {
	Ingest(ctx context.Context, input *anprdto.DetectionInput) (anprdto.DetectionOutput, error)
}

type DefaultUsecase struct {
	DetectionRepo domain.DetectionRepository
	GateRepo      domain.GateRepository
	Correlation   Correlation
	Metrics       *metrics.GateMetrics
	Log           *slog.Logger

	// BridgePort is appended to a gate's address to reach its weighbridge
	// bridge.
	BridgePort string
}

func NewDefaultUsecase(
	detectionRepo domain.DetectionRepository,
	gateRepo domain.GateRepository,
	correlation Correlation,
	gateMetrics *metrics.GateMetrics,
	log *slog.Logger,
	bridgePort string) *DefaultUsecase {

	return &DefaultUsecase{
		DetectionRepo: detectionRepo,
		GateRepo:      gateRepo,
		Correlation:   correlation,
		Metrics:       gateMetrics,
		Log:           log.With("component", "anpr-usecase"),
		BridgePort:    bridgePort,
	}
}
