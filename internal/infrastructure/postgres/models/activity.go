package models

import (
	"time"

	"github.com/lib/pq"
)

// ActivityModel is one weigh-phase row. The tare row is updated in place
// when the gross weight lands, so a completed weighing is a single row.
type ActivityModel struct {
	ID              uint  `gorm:"primaryKey"`
	DeliveryOrderID uint  `gorm:"index;not null"`
	ActivityType    int16 `gorm:"not null;index:idx_activity_order_type"`
	TruckNo         string
	TrailerNo       string
	SecondTruckNo   string `gorm:"column:sw_truck_no"`

	TareWeight  *float64
	GrossWeight *float64
	Qty         *float64
	AvgWeight   float64

	Snapshots          pq.StringArray `gorm:"type:text[]"`
	WeighbridgeDetails string

	FirstWeightBy     uint      `gorm:"column:fw_by"`
	FirstWeightGateID uint      `gorm:"column:fw_wb"`
	FirstWeightAt     time.Time `gorm:"column:fw_at"`

	SecondWeightBy     uint       `gorm:"column:sw_by"`
	SecondWeightGateID uint       `gorm:"column:sw_wb"`
	SecondWeightAt     *time.Time `gorm:"column:sw_at"`

	IsActive   bool `gorm:"not null;default:true;index"`
	ApprovedBy *uint
	ApprovedAt *time.Time
	Reason     string

	CreatedAt time.Time
	UpdatedAt time.Time
}
