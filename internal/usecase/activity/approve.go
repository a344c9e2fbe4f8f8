package activity

import (
	"context"
	"time"

	"github.com/gatelogix/tos-gate-service/internal/domain"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/kafka"
	activitydto "github.com/gatelogix/tos-gate-service/internal/usecase/dto/activity"
	"github.com/google/uuid"
)

// ApproveActivity is the administrative close of a completed weighing. The
// activity and its delivery order are deactivated together; the cycle is
// terminal after this.
func (uc *DefaultUsecase) ApproveActivity(ctx context.Context, input *activitydto.ApproveActivityInput) (*activitydto.ActivityOutput, error) {
	act, err := uc.ActivityRepo.Approve(ctx, input.ActivityID, input.ApprovedBy, input.Reason)
	if err != nil {
		if _, rejected := domain.RejectionReason(err); rejected {
			uc.Metrics.RecordRejection("approve_activity")
		}
		return nil, err
	}

	order, err := uc.OrderRepo.GetByRef(ctx, domain.OrderRef{ID: act.DeliveryOrderID})
	if err != nil {
		return nil, err
	}

	uc.Log.Info("weighing approved",
		"order_number", order.OrderNumber, "activity_id", act.ID,
		"approved_by", input.ApprovedBy, "reason", input.Reason)
	uc.Metrics.RecordOrderApproved()

	if uc.Publisher != nil {
		event := kafka.WeighingEvent{
			EventID:      uuid.New().String(),
			OrderNumber:  order.OrderNumber,
			ActivityID:   act.ID,
			ActivityType: act.Type.Name(),
			TruckNo:      act.TruckNo,
			Status:       "approved",
		}
		go func() {
			pctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := uc.Publisher.PublishWeighing(pctx, event); err != nil {
				uc.Log.Warn("failed to publish approval event",
					"order_number", event.OrderNumber, "error", err)
			}
		}()
	}

	return toActivityOutput(act, order.OrderNumber), nil
}

func toActivityOutput(act *domain.Activity, orderNumber string) *activitydto.ActivityOutput {
	return &activitydto.ActivityOutput{
		ID:           act.ID,
		OrderNumber:  orderNumber,
		ActivityType: act.Type.Name(),
		TruckNo:      act.TruckNo,
		TareWeight:   act.TareWeight,
		GrossWeight:  act.GrossWeight,
		Qty:          act.Qty,
		IsActive:     act.IsActive,
		CreatedAt:    act.CreatedAt,
	}
}
