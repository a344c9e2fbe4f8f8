package order

import (
	"context"
	"log/slog"

	"github.com/gatelogix/tos-gate-service/internal/domain"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/metrics"
	orderdto "github.com/gatelogix/tos-gate-service/internal/usecase/dto/order"
)

type Usecase interface {
	CreateOrder(ctx context.Context, input *orderdto.CreateOrderInput) (*orderdto.OrderOutput, error)
	UpdateOrder(ctx context.Context, input *orderdto.UpdateOrderInput) error
	SetOrderActive(ctx context.Context, orderNumber string, active bool) error
	CorrectPlate(ctx context.Context, input *orderdto.CorrectPlateInput) error
	GetOrder(ctx context.Context, ref string) (*domain.DeliveryOrder, error)
	ListOrders(ctx context.Context, input *orderdto.ListOrdersInput) ([]*domain.DeliveryOrder, error)
}

type DefaultUsecase struct {
	OrderRepo     domain.DeliveryOrderRepository
	DetectionRepo domain.DetectionRepository
	RefRepo       domain.ReferenceRepository
	Metrics       *metrics.GateMetrics
	Log           *slog.Logger
}

func NewDefaultUsecase(
	orderRepo domain.DeliveryOrderRepository,
	detectionRepo domain.DetectionRepository,
	refRepo domain.ReferenceRepository,
	gateMetrics *metrics.GateMetrics,
	log *slog.Logger) *DefaultUsecase {

	return &DefaultUsecase{
		OrderRepo:     orderRepo,
		DetectionRepo: detectionRepo,
		RefRepo:       refRepo,
		Metrics:       gateMetrics,
		Log:           log.With("component", "order-usecase"),
	}
}
