package activitydto

import "time"

type WeighingOutput struct {
	ActivityID   uint
	OrderNumber  string
	ActivityType string
	Weight       float64
	// NetWeight is set only when the second weight completed the cycle.
	NetWeight *float64
}

type ActivityOutput struct {
	ID           uint
	OrderNumber  string
	ActivityType string
	TruckNo      string
	TareWeight   *float64
	GrossWeight  *float64
	Qty          *float64
	IsActive     bool
	CreatedAt    time.Time
}
