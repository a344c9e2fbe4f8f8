package order

import (
	"context"
	"fmt"

	"github.com/gatelogix/tos-gate-service/internal/domain"
	orderdto "github.com/gatelogix/tos-gate-service/internal/usecase/dto/order"
)

// UpdateOrder merges a partial header edit into an active order and appends
// any new item lines. Weight and phase columns are out of reach here.
func (uc *DefaultUsecase) UpdateOrder(ctx context.Context, input *orderdto.UpdateOrderInput) error {
	ref := domain.ParseOrderRef(input.OrderRef)
	if ref.IsZero() {
		return domain.NewRejection("order reference is required")
	}

	order, err := uc.OrderRepo.GetByRef(ctx, ref)
	if err != nil {
		return err
	}
	if !order.IsActive {
		return domain.ErrOrderInactive
	}

	if err := uc.validateReferences(ctx, referenceSet{
		domain.RefCustomer:     input.CustomerID,
		domain.RefDriver:       input.DriverID,
		domain.RefProductType:  input.ProductTypeID,
		domain.RefPackingType:  input.PackingTypeID,
		domain.RefVessel:       input.VesselID,
		domain.RefWheatType:    input.WheatTypeID,
		domain.RefTransporter:  input.TransporterID,
		domain.RefBuyingCenter: input.BuyingCenterID,
		domain.RefSupplier:     input.SupplierID,
		domain.RefPurchaseType: input.PurchaseTypeID,
	}); err != nil {
		return err
	}

	update := domain.OrderUpdate{
		TruckNo:           input.TruckNo,
		TrailerNo:         input.TrailerNo,
		DONumber:          input.DONumber,
		OrderType:         input.OrderType,
		StockTransferCode: input.StockTransferCode,
		CustomerID:        input.CustomerID,
		DriverID:          input.DriverID,
		ProductTypeID:     input.ProductTypeID,
		PackingTypeID:     input.PackingTypeID,
		VesselID:          input.VesselID,
		WheatTypeID:       input.WheatTypeID,
		TransporterID:     input.TransporterID,
		BuyingCenterID:    input.BuyingCenterID,
		SupplierID:        input.SupplierID,
		PurchaseTypeID:    input.PurchaseTypeID,
	}
	if err := uc.OrderRepo.UpdateFields(ctx, order.ID, update); err != nil {
		return fmt.Errorf("failed to update order %s: %w", order.OrderNumber, err)
	}

	if len(input.Items) > 0 {
		items, err := uc.resolveItems(ctx, input.Items)
		if err != nil {
			return err
		}
		if err := uc.OrderRepo.AppendItems(ctx, order.ID, items); err != nil {
			return fmt.Errorf("failed to append items to order %s: %w", order.OrderNumber, err)
		}
	}

	uc.Log.Info("delivery order updated", "order_number", order.OrderNumber)
	return nil
}

// SetOrderActive flips the soft-delete flag. Reactivation of a closed order
// is refused by the repository.
func (uc *DefaultUsecase) SetOrderActive(ctx context.Context, orderNumber string, active bool) error {
	if err := uc.OrderRepo.SetActive(ctx, orderNumber, active); err != nil {
		return err
	}
	uc.Log.Info("delivery order active flag changed", "order_number", orderNumber, "active", active)
	return nil
}
