package mappers

import (
	"github.com/gatelogix/tos-gate-service/internal/domain"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/postgres/models"
)

func ToDomainActivity(model *models.ActivityModel) *domain.Activity {
	act := &domain.Activity{
		ID:                 model.ID,
		DeliveryOrderID:    model.DeliveryOrderID,
		Type:               domain.ActivityType(model.ActivityType),
		TruckNo:            model.TruckNo,
		TrailerNo:          model.TrailerNo,
		SecondTruckNo:      model.SecondTruckNo,
		TareWeight:         model.TareWeight,
		GrossWeight:        model.GrossWeight,
		Qty:                model.Qty,
		AvgWeight:          model.AvgWeight,
		Snapshots:          model.Snapshots,
		WeighbridgeDetails: model.WeighbridgeDetails,
		FirstWeight: domain.PhaseStamp{
			OperatorID: model.FirstWeightBy,
			GateID:     model.FirstWeightGateID,
			At:         model.FirstWeightAt,
		},
		IsActive:   model.IsActive,
		ApprovedBy: model.ApprovedBy,
		ApprovedAt: model.ApprovedAt,
		Reason:     model.Reason,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
	if model.SecondWeightAt != nil {
		act.SecondWeight = domain.PhaseStamp{
			OperatorID: model.SecondWeightBy,
			GateID:     model.SecondWeightGateID,
			At:         *model.SecondWeightAt,
		}
	}
	return act
}

func ToGORMActivity(act *domain.Activity) *models.ActivityModel {
	model := &models.ActivityModel{
		ID:                 act.ID,
		DeliveryOrderID:    act.DeliveryOrderID,
		ActivityType:       int16(act.Type),
		TruckNo:            act.TruckNo,
		TrailerNo:          act.TrailerNo,
		SecondTruckNo:      act.SecondTruckNo,
		TareWeight:         act.TareWeight,
		GrossWeight:        act.GrossWeight,
		Qty:                act.Qty,
		AvgWeight:          act.AvgWeight,
		Snapshots:          act.Snapshots,
		WeighbridgeDetails: act.WeighbridgeDetails,
		FirstWeightBy:      act.FirstWeight.OperatorID,
		FirstWeightGateID:  act.FirstWeight.GateID,
		FirstWeightAt:      act.FirstWeight.At,
		IsActive:           act.IsActive,
		ApprovedBy:         act.ApprovedBy,
		ApprovedAt:         act.ApprovedAt,
		Reason:             act.Reason,
		CreatedAt:          act.CreatedAt,
		UpdatedAt:          act.UpdatedAt,
	}
	if !act.SecondWeight.At.IsZero() {
		at := act.SecondWeight.At
		model.SecondWeightBy = act.SecondWeight.OperatorID
		model.SecondWeightGateID = act.SecondWeight.GateID
		model.SecondWeightAt = &at
	}
	return model
}
