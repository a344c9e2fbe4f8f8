package activity

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gatelogix/tos-gate-service/internal/domain"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/kafka"
	activitydto "github.com/gatelogix/tos-gate-service/internal/usecase/dto/activity"
	orderdto "github.com/gatelogix/tos-gate-service/internal/usecase/dto/order"
	"github.com/google/uuid"
)

// RecordWeighing is the single entry point for weighbridge captures. A first
// weight opens the cycle, creating the delivery order on the fly when no
// reference is given; a second weight lands on the in-flight tare activity
// and completes it.
func (uc *DefaultUsecase) RecordWeighing(ctx context.Context, input *activitydto.RecordWeighingInput) (*activitydto.WeighingOutput, error) {
	actType, ok := resolveActivityType(input.ActivityType)
	if !ok {
		uc.Metrics.RecordRejection("record_weighing")
		return nil, domain.NewRejection("unknown activity type: " + input.ActivityType)
	}

	if input.Weight <= 0 {
		uc.Metrics.RecordRejection("record_weighing")
		if actType == domain.ActivityTare {
			return nil, domain.ErrFirstWeightInvalid
		}
		return nil, domain.ErrSecondWeightInvalid
	}

	order, err := uc.resolveOrder(ctx, input, actType)
	if err != nil {
		uc.Metrics.RecordRejection("record_weighing")
		return nil, err
	}

	if input.Update != nil {
		input.Update.OrderRef = order.OrderNumber
		if err := uc.Orders.UpdateOrder(ctx, input.Update); err != nil {
			return nil, err
		}
	}

	var out *activitydto.WeighingOutput
	switch actType {
	case domain.ActivityTare:
		out, err = uc.recordFirstWeight(ctx, input, order)
	case domain.ActivityGross:
		out, err = uc.recordSecondWeight(ctx, input, order)
	}
	if err != nil {
		if _, rejected := domain.RejectionReason(err); rejected {
			uc.Metrics.RecordRejection("record_weighing")
		}
		return nil, err
	}

	uc.Metrics.RecordWeighing(actType.Name())
	uc.publishWeighing(out, input, actType)
	if actType == domain.ActivityGross && uc.Printer != nil {
		go func(orderNumber string) {
			pctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := uc.Printer.PrintWeighing(pctx, orderNumber); err != nil {
				uc.Log.Warn("receipt print failed", "order_number", orderNumber, "error", err)
			}
		}(out.OrderNumber)
	}
	return out, nil
}

// resolveActivityType accepts the terminal name or its numeric wire code.
func resolveActivityType(raw string) (domain.ActivityType, bool) {
	if t, ok := domain.ActivityTypeByName(raw); ok {
		return t, true
	}
	if code, err := strconv.Atoi(raw); err == nil {
		t := domain.ActivityType(code)
		if t == domain.ActivityTare || t == domain.ActivityGross {
			return t, true
		}
	}
	return 0, false
}

// resolveOrder finds the referenced order or, for an unreferenced first
// weight, synthesizes one.
func (uc *DefaultUsecase) resolveOrder(ctx context.Context, input *activitydto.RecordWeighingInput, actType domain.ActivityType) (*domain.DeliveryOrder, error) {
	ref := domain.ParseOrderRef(input.OrderRef)
	if !ref.IsZero() {
		order, err := uc.OrderRepo.GetByRef(ctx, ref)
		if err != nil {
			return nil, err
		}
		if !order.IsActive {
			return nil, domain.ErrOrderInactive
		}
		if actType == domain.ActivityGross && order.ActivityCheck == domain.CheckGross {
			return nil, domain.ErrOrderCompleted
		}
		return order, nil
	}

	if actType != domain.ActivityTare {
		return nil, domain.ErrNoTareWeight
	}

	createInput := input.Order
	if createInput == nil {
		createInput = &orderdto.CreateOrderInput{TruckNo: input.TruckNo}
	}
	if createInput.TruckNo == "" {
		createInput.TruckNo = input.TruckNo
	}

	created, err := uc.Orders.CreateOrder(ctx, createInput)
	if err != nil {
		return nil, err
	}
	uc.Log.Info("delivery order synthesized at gate",
		"order_number", created.OrderNumber, "truck_no", created.TruckNo, "gate_id", input.GateID)

	return uc.OrderRepo.GetByRef(ctx, domain.OrderRef{ID: created.ID})
}

func (uc *DefaultUsecase) recordFirstWeight(ctx context.Context, input *activitydto.RecordWeighingInput, order *domain.DeliveryOrder) (*activitydto.WeighingOutput, error) {
	if existing, err := uc.ActivityRepo.ActiveByOrderAndType(ctx, order.ID, domain.ActivityTare); err != nil {
		if !errors.Is(err, domain.ErrActivityNotFound) {
			return nil, err
		}
	} else if existing != nil {
		return nil, domain.ErrActivityExists
	}

	tare := input.Weight
	act := &domain.Activity{
		DeliveryOrderID:    order.ID,
		Type:               domain.ActivityTare,
		TruckNo:            truckOrOrder(input.TruckNo, order),
		TrailerNo:          input.TrailerNo,
		TareWeight:         &tare,
		AvgWeight:          input.AvgWeight,
		Snapshots:          input.Snapshots,
		WeighbridgeDetails: input.WeighbridgeDetails,
		FirstWeight: domain.PhaseStamp{
			OperatorID: input.OperatorID,
			GateID:     input.GateID,
			At:         time.Now(),
		},
		IsActive: true,
	}

	if err := uc.ActivityRepo.CreateFirstWeight(ctx, act); err != nil {
		return nil, err
	}

	uc.Log.Info("first weight recorded",
		"order_number", order.OrderNumber, "truck_no", act.TruckNo,
		"tare_weight", tare, "gate_id", input.GateID)

	return &activitydto.WeighingOutput{
		ActivityID:   act.ID,
		OrderNumber:  order.OrderNumber,
		ActivityType: domain.ActivityTare.Name(),
		Weight:       tare,
	}, nil
}

func (uc *DefaultUsecase) recordSecondWeight(ctx context.Context, input *activitydto.RecordWeighingInput, order *domain.DeliveryOrder) (*activitydto.WeighingOutput, error) {
	capture := domain.SecondWeightCapture{
		OrderID:            order.ID,
		GrossWeight:        input.Weight,
		TruckNo:            truckOrOrder(input.SecondTruckNo, order),
		Snapshots:          input.Snapshots,
		WeighbridgeDetails: input.WeighbridgeDetails,
		AvgWeight:          input.AvgWeight,
		// The completed row stays active until administrative approval.
		KeepActive: true,
		Stamp: domain.PhaseStamp{
			OperatorID: input.OperatorID,
			GateID:     input.GateID,
			At:         time.Now(),
		},
	}

	result, err := uc.ActivityRepo.CaptureSecondWeight(ctx, capture)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("second weight recorded",
		"order_number", result.OrderNumber, "gross_weight", input.Weight,
		"net_weight", result.NetWeight, "gate_id", input.GateID)

	net := result.NetWeight
	return &activitydto.WeighingOutput{
		ActivityID:   result.ActivityID,
		OrderNumber:  result.OrderNumber,
		ActivityType: domain.ActivityGross.Name(),
		Weight:       input.Weight,
		NetWeight:    &net,
	}, nil
}

func truckOrOrder(truckNo string, order *domain.DeliveryOrder) string {
	if truckNo != "" {
		return truckNo
	}
	return order.TruckNo
}

// publishWeighing is post-commit and fire-and-forget; a broker outage never
// rolls back a capture.
func (uc *DefaultUsecase) publishWeighing(out *activitydto.WeighingOutput, input *activitydto.RecordWeighingInput, actType domain.ActivityType) {
	if uc.Publisher == nil {
		return
	}
	event := kafka.WeighingEvent{
		EventID:      uuid.New().String(),
		OrderNumber:  out.OrderNumber,
		ActivityID:   out.ActivityID,
		ActivityType: actType.Name(),
		TruckNo:      input.TruckNo,
		GateID:       input.GateID,
		Weight:       out.Weight,
		NetWeight:    out.NetWeight,
		Status:       "recorded",
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := uc.Publisher.PublishWeighing(ctx, event); err != nil {
			uc.Log.Warn("failed to publish weighing event",
				"order_number", event.OrderNumber, "error", err)
		}
	}()
}
