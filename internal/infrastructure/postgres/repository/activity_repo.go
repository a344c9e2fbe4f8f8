package repository

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/gatelogix/tos-gate-service/internal/domain"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/postgres/mappers"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultActivityRepository struct {
	DB *gorm.DB
}

func NewDefaultActivityRepository(db *gorm.DB) *DefaultActivityRepository {
	return &DefaultActivityRepository{DB: db}
}

func (r *DefaultActivityRepository) ActiveByOrderAndType(ctx context.Context, orderID uint, t domain.ActivityType) (*domain.Activity, error) {
	var model models.ActivityModel
	err := r.DB.WithContext(ctx).
		Where("delivery_order_id = ? AND activity_type = ? AND is_active = ?", orderID, int16(t), true).
		Order("id DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mappers.ToDomainActivity(&model), nil
}

func (r *DefaultActivityRepository) ByID(ctx context.Context, id uint) (*domain.Activity, error) {
	var model models.ActivityModel
	if err := r.DB.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, err
	}
	return mappers.ToDomainActivity(&model), nil
}

// CreateFirstWeight inserts the tare row and moves the order to the
// first-weight phase. The duplicate-active-tare guard is re-checked under the
// order row lock so two concurrent WBIN captures cannot both land.
func (r *DefaultActivityRepository) CreateFirstWeight(ctx context.Context, act *domain.Activity) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.DeliveryOrderModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, act.DeliveryOrderID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOrderNotFound
			}
			return err
		}
		if !order.IsActive {
			return domain.ErrOrderInactive
		}

		var existing int64
		err = tx.Model(&models.ActivityModel{}).
			Where("delivery_order_id = ? AND activity_type = ? AND is_active = ?",
				order.ID, int16(domain.ActivityTare), true).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return domain.ErrActivityExists
		}

		model := mappers.ToGORMActivity(act)
		model.IsActive = true
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		act.ID = model.ID
		act.CreatedAt = model.CreatedAt

		return tx.Model(&order).
			Update("activity_check", int16(domain.CheckTare)).Error
	})
}

// CaptureSecondWeight writes the gross phase onto the in-flight tare row and
// cascades measurement and phase to the order, all under the order row lock.
func (r *DefaultActivityRepository) CaptureSecondWeight(ctx context.Context, cap domain.SecondWeightCapture) (*domain.SecondWeightResult, error) {
	var result domain.SecondWeightResult
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.DeliveryOrderModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, cap.OrderID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOrderNotFound
			}
			return err
		}
		if !order.IsActive {
			return domain.ErrOrderInactive
		}

		var tare models.ActivityModel
		err = tx.Where("delivery_order_id = ? AND activity_type = ? AND is_active = ? AND tare_weight IS NOT NULL",
			order.ID, int16(domain.ActivityTare), true).
			Order("id DESC").
			First(&tare).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNoTareWeight
			}
			return err
		}

		net := math.Abs(cap.GrossWeight - *tare.TareWeight)
		at := cap.Stamp.At
		values := map[string]any{
			"activity_type":       int16(domain.ActivityGross),
			"gross_weight":        cap.GrossWeight,
			"qty":                 net,
			"avg_weight":          cap.AvgWeight,
			"sw_truck_no":         cap.TruckNo,
			"weighbridge_details": cap.WeighbridgeDetails,
			"sw_by":               cap.Stamp.OperatorID,
			"sw_wb":               cap.Stamp.GateID,
			"sw_at":               &at,
			"is_active":           cap.KeepActive,
		}
		if len(cap.Snapshots) > 0 {
			values["snapshots"] = append(tare.Snapshots, cap.Snapshots...)
		}
		if err := tx.Model(&tare).Updates(values).Error; err != nil {
			return err
		}

		orderValues := orderUpdateValues(cap.OrderUpdate)
		orderValues["measurement"] = net
		orderValues["activity_check"] = int16(domain.CheckGross)
		if err := tx.Model(&order).Updates(orderValues).Error; err != nil {
			return err
		}

		result = domain.SecondWeightResult{
			ActivityID:  tare.ID,
			OrderNumber: order.OrderNumber,
			NetWeight:   net,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Approve closes the activity and soft-deletes its order in one transaction.
func (r *DefaultActivityRepository) Approve(ctx context.Context, activityID, approvedBy uint, reason string) (*domain.Activity, error) {
	var model models.ActivityModel
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&model, activityID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrActivityNotFound
			}
			return err
		}

		now := time.Now()
		err = tx.Model(&model).Updates(map[string]any{
			"is_active":   false,
			"approved_by": approvedBy,
			"approved_at": &now,
			"reason":      reason,
		}).Error
		if err != nil {
			return err
		}

		return tx.Model(&models.DeliveryOrderModel{}).
			Where("id = ?", model.DeliveryOrderID).
			Update("is_active", false).Error
	})
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainActivity(&model), nil
}

func (r *DefaultActivityRepository) ListByOrder(ctx context.Context, orderID uint) ([]*domain.Activity, error) {
	var activityModels []models.ActivityModel
	err := r.DB.WithContext(ctx).
		Where("delivery_order_id = ?", orderID).
		Order("id ASC").
		Find(&activityModels).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Activity, 0, len(activityModels))
	for i := range activityModels {
		out = append(out, mappers.ToDomainActivity(&activityModels[i]))
	}
	return out, nil
}

func (r *DefaultActivityRepository) LatestSnapshots(ctx context.Context, truckNo string) ([]string, error) {
	var model models.ActivityModel
	err := r.DB.WithContext(ctx).
		Where("(truck_no = ? OR sw_truck_no = ?) AND snapshots IS NOT NULL", truckNo, truckNo).
		Order("id DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.Snapshots, nil
}
