package order

import (
	"context"
	"fmt"

	"github.com/gatelogix/tos-gate-service/internal/domain"
	orderdto "github.com/gatelogix/tos-gate-service/internal/usecase/dto/order"
)

// CreateOrder validates every reference, resolves item product codes and
// persists the order with a freshly generated order number.
func (uc *DefaultUsecase) CreateOrder(ctx context.Context, input *orderdto.CreateOrderInput) (*orderdto.OrderOutput, error) {
	if input.TruckNo == "" {
		return nil, domain.NewRejection("truck number is required")
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
		return nil, err
	}

	items, err := uc.resolveItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	order := &domain.DeliveryOrder{
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
		ActivityCheck:     domain.CheckNone,
		IsActive:          true,
		Items:             items,
	}

	number, err := uc.OrderRepo.CreateOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to create delivery order: %w", err)
	}
	order.OrderNumber = number

	uc.Log.Info("delivery order created", "order_number", number, "truck_no", order.TruckNo)
	uc.Metrics.RecordOrderCreated()

	return &orderdto.OrderOutput{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		TruckNo:       order.TruckNo,
		TrailerNo:     order.TrailerNo,
		DONumber:      order.DONumber,
		OrderType:     order.OrderType,
		ActivityCheck: int16(order.ActivityCheck),
		IsActive:      order.IsActive,
		CreatedAt:     order.CreatedAt,
	}, nil
}

type referenceSet map[domain.ReferenceKind]*uint

func (uc *DefaultUsecase) validateReferences(ctx context.Context, refs referenceSet) error {
	for kind, id := range refs {
		if id == nil {
			continue
		}
		if err := uc.RefRepo.ValidateActive(ctx, kind, *id); err != nil {
			return err
		}
	}
	return nil
}

// resolveItems turns item inputs into persistable lines. Free-text product
// codes go through find-or-create; duplicate codes within one request resolve
// to the same product.
func (uc *DefaultUsecase) resolveItems(ctx context.Context, inputs []orderdto.ItemInput) ([]domain.OrderItem, error) {
	byCode := make(map[string]uint)
	items := make([]domain.OrderItem, 0, len(inputs))

	for _, in := range inputs {
		var productID uint
		switch {
		case in.ProductID != nil:
			productID = *in.ProductID
		case in.ProductCode != "":
			if id, ok := byCode[in.ProductCode]; ok {
				productID = id
			} else {
				id, err := uc.RefRepo.FindOrCreateProductByCode(ctx, in.ProductCode, in.ProductName)
				if err != nil {
					return nil, fmt.Errorf("failed to resolve product %q: %w", in.ProductCode, err)
				}
				byCode[in.ProductCode] = id
				productID = id
			}
		default:
			return nil, domain.NewRejection("order item is missing a product reference")
		}

		items = append(items, domain.OrderItem{
			ProductID:       productID,
			PackingTypeID:   in.PackingTypeID,
			Unit:            in.Unit,
			Quantity:        in.Quantity,
			Source:          in.Source,
			Destination:     in.Destination,
			TransactionType: in.TransactionType,
			IsActive:        true,
		})
	}
	return items, nil
}
