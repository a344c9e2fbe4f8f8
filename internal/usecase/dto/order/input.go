package orderdto

// ItemInput is one order line. Product is referenced either by an existing id
// or by an item code that is resolved (and created on first sight) before the
// line is persisted.
type ItemInput struct {
	ProductID       *uint
	ProductCode     string
	ProductName     string
	PackingTypeID   uint
	Unit            string
	Quantity        float64
	Source          string
	Destination     string
	TransactionType string
}

type CreateOrderInput struct {
	TruckNo           string
	TrailerNo         string
	DONumber          string
	OrderType         string
	StockTransferCode string

	CustomerID     *uint
	DriverID       *uint
	ProductTypeID  *uint
	PackingTypeID  *uint
	VesselID       *uint
	WheatTypeID    *uint
	TransporterID  *uint
	BuyingCenterID *uint
	SupplierID     *uint
	PurchaseTypeID *uint

	Items []ItemInput
}

type UpdateOrderInput struct {
	OrderRef string

	TruckNo           *string
	TrailerNo         *string
	DONumber          *string
	OrderType         *string
	StockTransferCode *string

	CustomerID     *uint
	DriverID       *uint
	ProductTypeID  *uint
	PackingTypeID  *uint
	VesselID       *uint
	WheatTypeID    *uint
	TransporterID  *uint
	BuyingCenterID *uint
	SupplierID     *uint
	PurchaseTypeID *uint

	Items []ItemInput
}

type CorrectPlateInput struct {
	OrderNumber string
	OldPlate    string
	NewPlate    string
	GateID      uint
}

type ListOrdersInput struct {
	TruckNo     string
	OrderNumber string
	ActiveOnly  bool
	Page        int
	Limit       int
}
