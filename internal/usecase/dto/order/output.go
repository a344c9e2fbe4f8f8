package orderdto

import "time"

type OrderOutput struct {
	ID            uint
	OrderNumber   string
	TruckNo       string
	TrailerNo     string
	DONumber      string
	OrderType     string
	ActivityCheck int16
	Measurement   float64
	IsActive      bool
	CreatedAt     time.Time
}
