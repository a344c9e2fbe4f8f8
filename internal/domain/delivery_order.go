package domain

import (
	"strconv"
	"strings"
	"time"
)

// ActivityCheck tracks how far a delivery order has progressed through the
// two-phase weighing cycle.
type ActivityCheck int16

const (
	CheckNone ActivityCheck = 0
	CheckTare ActivityCheck = 1
	CheckGross ActivityCheck = 2
)

type DeliveryOrder struct {
	ID              uint
	OrderNumber     string
	TruckNo         string
	TrailerNo       string
	OldTruckNo      string
	DetectedTruckNo string
	DONumber        string
	OrderType       string
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

	ActivityCheck ActivityCheck
	Measurement   float64
	IsActive      bool

	Items []OrderItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem is one product line attached to a delivery order. ProductID is
// always resolved before persistence; free-text item codes go through the
// reference find-or-create path first.
type OrderItem struct {
	ID              uint
	DeliveryOrderID uint
	ProductID       uint
	PackingTypeID   uint
	Unit            string
	Quantity        float64
	Source          string
	Destination     string
	TransactionType string
	IsActive        bool
}

// OrderRef addresses an order either by numeric id or by order-number string.
type OrderRef struct {
	ID     uint
	Number string
}

// ParseOrderRef interprets a raw reference. An all-digit string may be either
// a numeric id or an order number, so both fields are set and lookups match
// whichever exists; anything else is an order number only.
func ParseOrderRef(raw string) OrderRef {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return OrderRef{}
	}
	if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
		return OrderRef{ID: uint(id), Number: raw}
	}
	return OrderRef{Number: raw}
}

func (r OrderRef) IsZero() bool {
	return r.ID == 0 && r.Number == ""
}

// OrderUpdate carries a partial edit of order header fields. Nil pointers are
// left untouched; weight fields are never part of an update.
type OrderUpdate struct {
	TruckNo           *string
	TrailerNo         *string
	CustomerID        *uint
	DriverID          *uint
	ProductTypeID     *uint
	PackingTypeID     *uint
	VesselID          *uint
	WheatTypeID       *uint
	TransporterID     *uint
	BuyingCenterID    *uint
	SupplierID        *uint
	PurchaseTypeID    *uint
	DONumber          *string
	OrderType         *string
	StockTransferCode *string
}

type OrderFilter struct {
	TruckNo     string
	OrderNumber string
	DONumber    string
	Customer    string
	CreatedAt   string
	IsActive    *bool
	OpenOnly    bool
	Limit       int
}
