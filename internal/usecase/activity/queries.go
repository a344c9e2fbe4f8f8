package activity

import (
	"context"

	"github.com/gatelogix/tos-gate-service/internal/domain"
	activitydto "github.com/gatelogix/tos-gate-service/internal/usecase/dto/activity"
)

func (uc *DefaultUsecase) ActivitiesByOrder(ctx context.Context, orderRef string) ([]*activitydto.ActivityOutput, error) {
	ref := domain.ParseOrderRef(orderRef)
	if ref.IsZero() {
		return nil, domain.NewRejection("order reference is required")
	}

	order, err := uc.OrderRepo.GetByRef(ctx, ref)
	if err != nil {
		return nil, err
	}

	acts, err := uc.ActivityRepo.ListByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	out := make([]*activitydto.ActivityOutput, 0, len(acts))
	for _, act := range acts {
		out = append(out, toActivityOutput(act, order.OrderNumber))
	}
	return out, nil
}
