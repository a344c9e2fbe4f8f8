package order

import (
	"context"

	"github.com/gatelogix/tos-gate-service/internal/domain"
	orderdto "github.com/gatelogix/tos-gate-service/internal/usecase/dto/order"
)

func (uc *DefaultUsecase) GetOrder(ctx context.Context, ref string) (*domain.DeliveryOrder, error) {
	parsed := domain.ParseOrderRef(ref)
	if parsed.IsZero() {
		return nil, domain.NewRejection("order reference is required")
	}
	return uc.OrderRepo.GetByRef(ctx, parsed)
}

func (uc *DefaultUsecase) ListOrders(ctx context.Context, input *orderdto.ListOrdersInput) ([]*domain.DeliveryOrder, error) {
	filter := domain.OrderFilter{
		TruckNo:     input.TruckNo,
		OrderNumber: input.OrderNumber,
		Limit:       input.Limit,
	}
	if input.ActiveOnly {
		active := true
		filter.IsActive = &active
	}
	return uc.OrderRepo.List(ctx, filter)
}
