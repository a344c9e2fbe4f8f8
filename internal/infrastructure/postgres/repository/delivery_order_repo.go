package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gatelogix/tos-gate-service/internal/domain"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/postgres/mappers"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultDeliveryOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultDeliveryOrderRepository(db *gorm.DB) *DefaultDeliveryOrderRepository {
	return &DefaultDeliveryOrderRepository{DB: db}
}

// CreateOrder allocates the next order number from the database sequence and
// inserts the order with its items in one transaction.
func (r *DefaultDeliveryOrderRepository) CreateOrder(ctx context.Context, order *domain.DeliveryOrder) (string, error) {
	var number string
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq int64
		if err := tx.Raw("SELECT nextval('delivery_order_seq')").Scan(&seq).Error; err != nil {
			return fmt.Errorf("failed to allocate order sequence: %w", err)
		}
		number = time.Now().Format("20060102") + fmt.Sprintf("%04d", seq)

		model := mappers.ToGORMOrder(order)
		model.OrderNumber = number
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		order.ID = model.ID
		order.OrderNumber = number
		order.CreatedAt = model.CreatedAt
		return nil
	})
	if err != nil {
		return "", err
	}
	return number, nil
}

func (r *DefaultDeliveryOrderRepository) GetByRef(ctx context.Context, ref domain.OrderRef) (*domain.DeliveryOrder, error) {
	query := r.DB.WithContext(ctx).Preload("Items")
	switch {
	case ref.ID != 0 && ref.Number != "":
		query = query.Where("id = ? OR order_number = ?", ref.ID, ref.Number)
	case ref.ID != 0:
		query = query.Where("id = ?", ref.ID)
	default:
		query = query.Where("order_number = ?", ref.Number)
	}

	var model models.DeliveryOrderModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return mappers.ToDomainOrder(&model), nil
}

func (r *DefaultDeliveryOrderRepository) UpdateFields(ctx context.Context, orderID uint, update domain.OrderUpdate) error {
	values := orderUpdateValues(update)
	if len(values) == 0 {
		return nil
	}

	res := r.DB.WithContext(ctx).Model(&models.DeliveryOrderModel{}).
		Where("id = ? AND is_active = ?", orderID, true).
		Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func orderUpdateValues(update domain.OrderUpdate) map[string]any {
	values := map[string]any{}
	if update.TruckNo != nil {
		values["truck_no"] = *update.TruckNo
	}
	if update.TrailerNo != nil {
		values["trailer_no"] = *update.TrailerNo
	}
	if update.DONumber != nil {
		values["do_number"] = *update.DONumber
	}
	if update.OrderType != nil {
		values["order_type"] = *update.OrderType
	}
	if update.StockTransferCode != nil {
		values["stock_transfer_code"] = *update.StockTransferCode
	}
	if update.CustomerID != nil {
		values["customer_id"] = *update.CustomerID
	}
	if update.DriverID != nil {
		values["driver_id"] = *update.DriverID
	}
	if update.ProductTypeID != nil {
		values["product_type_id"] = *update.ProductTypeID
	}
	if update.PackingTypeID != nil {
		values["packing_type_id"] = *update.PackingTypeID
	}
	if update.VesselID != nil {
		values["vessel_id"] = *update.VesselID
	}
	if update.WheatTypeID != nil {
		values["wheat_type_id"] = *update.WheatTypeID
	}
	if update.TransporterID != nil {
		values["transporter_id"] = *update.TransporterID
	}
	if update.BuyingCenterID != nil {
		values["buying_center_id"] = *update.BuyingCenterID
	}
	if update.SupplierID != nil {
		values["supplier_id"] = *update.SupplierID
	}
	if update.PurchaseTypeID != nil {
		values["purchase_type_id"] = *update.PurchaseTypeID
	}
	return values
}

func (r *DefaultDeliveryOrderRepository) AppendItems(ctx context.Context, orderID uint, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	itemModels := make([]models.OrderItemModel, 0, len(items))
	for i := range items {
		m := mappers.ToGORMOrderItem(&items[i])
		m.DeliveryOrderID = orderID
		itemModels = append(itemModels, *m)
	}
	return r.DB.WithContext(ctx).Create(&itemModels).Error
}

func (r *DefaultDeliveryOrderRepository) SetActive(ctx context.Context, orderNumber string, active bool) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.DeliveryOrderModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("order_number = ?", orderNumber).
			First(&model).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOrderNotFound
			}
			return err
		}
		if active && !model.IsActive {
			return domain.ErrOrderReactivate
		}
		return tx.Model(&model).Update("is_active", active).Error
	})
}

func (r *DefaultDeliveryOrderRepository) List(ctx context.Context, filter domain.OrderFilter) ([]*domain.DeliveryOrder, error) {
	query := r.DB.WithContext(ctx).Model(&models.DeliveryOrderModel{}).Preload("Items")

	if filter.TruckNo != "" {
		query = query.Where("truck_no ILIKE ?", "%"+filter.TruckNo+"%")
	}
	if filter.OrderNumber != "" {
		query = query.Where("order_number = ?", filter.OrderNumber)
	}
	if filter.DONumber != "" {
		query = query.Where("do_number = ?", filter.DONumber)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.OpenOnly {
		query = query.Where("activity_check < ?", int16(domain.CheckGross))
	}
	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var orderModels []models.DeliveryOrderModel
	if err := query.Order("created_at DESC").Limit(limit).Find(&orderModels).Error; err != nil {
		return nil, err
	}

	out := make([]*domain.DeliveryOrder, 0, len(orderModels))
	for i := range orderModels {
		out = append(out, mappers.ToDomainOrder(&orderModels[i]))
	}
	return out, nil
}

// CorrectPlate swaps the plate on an active order, preserving the misread in
// old_truck_no, and carries the correction onto the order's open activities.
func (r *DefaultDeliveryOrderRepository) CorrectPlate(ctx context.Context, orderNumber, oldPlate, newPlate string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.DeliveryOrderModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("order_number = ?", orderNumber).
			First(&model).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOrderNotFound
			}
			return err
		}
		if !model.IsActive {
			return domain.ErrOrderInactive
		}

		previous := oldPlate
		if previous == "" {
			previous = model.TruckNo
		}

		err = tx.Model(&model).Updates(map[string]any{
			"truck_no":          newPlate,
			"old_truck_no":      previous,
			"detected_truck_no": previous,
		}).Error
		if err != nil {
			return err
		}

		return tx.Model(&models.ActivityModel{}).
			Where("delivery_order_id = ? AND is_active = ?", model.ID, true).
			Update("truck_no", newPlate).Error
	})
}
