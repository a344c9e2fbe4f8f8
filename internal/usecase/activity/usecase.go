package activity

import (
	"context"
	"log/slog"
	"time"

	"github.com/gatelogix/tos-gate-service/internal/domain"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/kafka"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/metrics"
	activitydto "github.com/gatelogix/tos-gate-service/internal/usecase/dto/activity"
	"github.com/gatelogix/tos-gate-service/internal/usecase/order"
)

// EventPublisher pushes weighing lifecycle events to the broker.
type EventPublisher interface {
	PublishWeighing(ctx context.Context, event kafka.WeighingEvent) error
}

type Usecase interface {
	RecordWeighing(ctx context.Context, input *activitydto.RecordWeighingInput) (*activitydto.WeighingOutput, error)
	ApproveActivity(ctx context.Context, input *activitydto.ApproveActivityInput) (*activitydto.ActivityOutput, error)
	TrucksAtGate(ctx context.Context, input *activitydto.TruckAtGateInput) ([]*domain.TruckAtGate, error)
	ActivitiesByOrder(ctx context.Context, orderRef string) ([]*activitydto.ActivityOutput, error)
}

type DefaultUsecase struct {
	ActivityRepo  domain.ActivityRepository
	OrderRepo     domain.DeliveryOrderRepository
	DetectionRepo domain.DetectionRepository
	GateRepo      domain.GateRepository
	Orders        order.Usecase
	Publisher     EventPublisher
	Printer       domain.ReceiptPrinter
	Metrics       *metrics.GateMetrics
	Log           *slog.Logger

	// TruckWindow is the rolling lookback for the trucks-at-gate view.
	TruckWindow time.Duration
}

func NewDefaultUsecase(
	activityRepo domain.ActivityRepository,
	orderRepo domain.DeliveryOrderRepository,
	detectionRepo domain.DetectionRepository,
	gateRepo domain.GateRepository,
	orders order.Usecase,
	pub EventPublisher,
	printer domain.ReceiptPrinter,
	gateMetrics *metrics.GateMetrics,
	log *slog.Logger) *DefaultUsecase {

	return &DefaultUsecase{
		ActivityRepo:  activityRepo,
		OrderRepo:     orderRepo,
		DetectionRepo: detectionRepo,
		GateRepo:      gateRepo,
		Orders:        orders,
		Publisher:     pub,
		Printer:       printer,
		Metrics:       gateMetrics,
		Log:           log.With("component", "activity-usecase"),
		TruckWindow:   40 * time.Second,
	}
}
