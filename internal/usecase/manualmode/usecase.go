package manualmode

import (
	"context"
	"log/slog"
	"time"

	"github.com/gatelogix/tos-gate-service/internal/domain"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/metrics"
	anprdto "github.com/gatelogix/tos-gate-service/internal/usecase/dto/anpr"
)

type Usecase interface {
	Request(ctx context.Context, userID uint, reason string) (*domain.ManualModeSession, error)
	Approve(ctx context.Context, sessionID uint, expiresAt time.Time) (*domain.ManualModeSession, error)
	Reject(ctx context.Context, sessionID uint, reason string) (*domain.ManualModeSession, error)
	Extend(ctx context.Context, sessionID uint, newExpiry time.Time) (*domain.ManualModeSession, error)
	End(ctx context.Context, sessionID uint) (*domain.ManualModeSession, error)
	IsUserInManualMode(ctx context.Context, userID uint) (bool, error)
	PostManualModeLog(ctx context.Context, input *anprdto.ManualLogInput) error
	ListSessions(ctx context.Context) ([]*domain.ManualModeSession, error)
}

type DefaultUsecase struct {
	SessionRepo   domain.ManualModeRepository
	DetectionRepo domain.DetectionRepository
	GateRepo      domain.GateRepository
	Metrics       *metrics.GateMetrics
	Log           *slog.Logger
}

func NewDefaultUsecase(
	sessionRepo domain.ManualModeRepository,
	detectionRepo domain.DetectionRepository,
	gateRepo domain.GateRepository,
	gateMetrics *metrics.GateMetrics,
	log *slog.Logger) *DefaultUsecase {

	return &DefaultUsecase{
		SessionRepo:   sessionRepo,
		DetectionRepo: detectionRepo,
		GateRepo:      gateRepo,
		Metrics:       gateMetrics,
		Log:           log.With("component", "manualmode-usecase"),
	}
}
