package models

import (
	"time"
)

type DeliveryOrderModel struct {
	ID              uint   `gorm:"primaryKey"`
	OrderNumber     string `gorm:"uniqueIndex;not null"`
	TruckNo         string `gorm:"index"`
	TrailerNo       string
	OldTruckNo      string
	DetectedTruckNo string
	DONumber        string `gorm:"column:do_number"`
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

	ActivityCheck int16 `gorm:"not null;default:0"`
	Measurement   float64
	IsActive      bool `gorm:"not null;default:true;index"`

	Items []OrderItemModel `gorm:"foreignKey:DeliveryOrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

type OrderItemModel struct {
	ID              uint `gorm:"primaryKey"`
	DeliveryOrderID uint `gorm:"index;not null"`
	ProductID       uint `gorm:"not null"`
	PackingTypeID   uint
	Unit            string
	Quantity        float64
	Source          string
	Destination     string
	TransactionType string
	IsActive        bool `gorm:"not null;default:true"`
}

// ProductModel backs the item-code find-or-create path. The unique index on
// Code makes concurrent creates converge on one row.
type ProductModel struct {
	ID        uint   `gorm:"primaryKey"`
	Code      string `gorm:"uniqueIndex;not null"`
	Name      string
	IsActive  bool `gorm:"not null;default:true"`
	CreatedAt time.Time
}
