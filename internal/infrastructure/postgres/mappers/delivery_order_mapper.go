package mappers

import (
	"github.com/gatelogix/tos-gate-service/internal/domain"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/postgres/models"
)

func ToDomainOrder(model *models.DeliveryOrderModel) *domain.DeliveryOrder {
	items := make([]domain.OrderItem, 0, len(model.Items))
	for i := range model.Items {
		items = append(items, *ToDomainOrderItem(&model.Items[i]))
	}
	return &domain.DeliveryOrder{
		ID:                model.ID,
		OrderNumber:       model.OrderNumber,
		TruckNo:           model.TruckNo,
		TrailerNo:         model.TrailerNo,
		OldTruckNo:        model.OldTruckNo,
		DetectedTruckNo:   model.DetectedTruckNo,
		DONumber:          model.DONumber,
		OrderType:         model.OrderType,
		StockTransferCode: model.StockTransferCode,
		CustomerID:        model.CustomerID,
		DriverID:          model.DriverID,
		ProductTypeID:     model.ProductTypeID,
		PackingTypeID:     model.PackingTypeID,
		VesselID:          model.VesselID,
		WheatTypeID:       model.WheatTypeID,
		TransporterID:     model.TransporterID,
		BuyingCenterID:    model.BuyingCenterID,
		SupplierID:        model.SupplierID,
		PurchaseTypeID:    model.PurchaseTypeID,
		ActivityCheck:     domain.ActivityCheck(model.ActivityCheck),
		Measurement:       model.Measurement,
		IsActive:          model.IsActive,
		Items:             items,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}

func ToGORMOrder(order *domain.DeliveryOrder) *models.DeliveryOrderModel {
	items := make([]models.OrderItemModel, 0, len(order.Items))
	for i := range order.Items {
		items = append(items, *ToGORMOrderItem(&order.Items[i]))
	}
	return &models.DeliveryOrderModel{
		ID:                order.ID,
		OrderNumber:       order.OrderNumber,
		TruckNo:           order.TruckNo,
		TrailerNo:         order.TrailerNo,
		OldTruckNo:        order.OldTruckNo,
		DetectedTruckNo:   order.DetectedTruckNo,
		DONumber:          order.DONumber,
		OrderType:         order.OrderType,
		StockTransferCode: order.StockTransferCode,
		CustomerID:        order.CustomerID,
		DriverID:          order.DriverID,
		ProductTypeID:     order.ProductTypeID,
		PackingTypeID:     order.PackingTypeID,
		VesselID:          order.VesselID,
		WheatTypeID:       order.WheatTypeID,
		TransporterID:     order.TransporterID,
		BuyingCenterID:    order.BuyingCenterID,
		SupplierID:        order.SupplierID,
		PurchaseTypeID:    order.PurchaseTypeID,
		ActivityCheck:     int16(order.ActivityCheck),
		Measurement:       order.Measurement,
		IsActive:          order.IsActive,
		Items:             items,
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}
}

func ToDomainOrderItem(model *models.OrderItemModel) *domain.OrderItem {
	return &domain.OrderItem{
		ID:              model.ID,
		DeliveryOrderID: model.DeliveryOrderID,
		ProductID:       model.ProductID,
		PackingTypeID:   model.PackingTypeID,
		Unit:            model.Unit,
		Quantity:        model.Quantity,
		Source:          model.Source,
		Destination:     model.Destination,
		TransactionType: model.TransactionType,
		IsActive:        model.IsActive,
	}
}

func ToGORMOrderItem(item *domain.OrderItem) *models.OrderItemModel {
	return &models.OrderItemModel{
		ID:              item.ID,
		DeliveryOrderID: item.DeliveryOrderID,
		ProductID:       item.ProductID,
		PackingTypeID:   item.PackingTypeID,
		Unit:            item.Unit,
		Quantity:        item.Quantity,
		Source:          item.Source,
		Destination:     item.Destination,
		TransactionType: item.TransactionType,
		IsActive:        item.IsActive,
	}
}
