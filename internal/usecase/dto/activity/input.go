package activitydto

import (
	orderdto "github.com/gatelogix/tos-gate-service/internal/usecase/dto/order"
)

// RecordWeighingInput is one weighbridge capture request. OrderRef is empty
// only on the implicit-creation path: a first weight with no existing order
// synthesizes one from Order.
type RecordWeighingInput struct {
	OrderRef     string
	ActivityType string
	Weight       float64

	TruckNo            string
	TrailerNo          string
	SecondTruckNo      string
	AvgWeight          float64
	Snapshots          []string
	WeighbridgeDetails string

	OperatorID uint
	GateID     uint

	Order  *orderdto.CreateOrderInput
	Update *orderdto.UpdateOrderInput
}

type ApproveActivityInput struct {
	ActivityID uint
	ApprovedBy uint
	Reason     string
}

type TruckAtGateInput struct {
	GateID uint
	Search string
}
