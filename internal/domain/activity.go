package domain

import "time"

// ActivityType is the weigh phase of an activity. The wire values 10/20 come
// from the weighbridge terminals and are kept for compatibility.
type ActivityType int16

const (
	ActivityTare  ActivityType = 10 // WBIN, first weight
	ActivityGross ActivityType = 20 // WBOUT, second weight
)

func (t ActivityType) Name() string {
	switch t {
	case ActivityTare:
		return "WBIN"
	case ActivityGross:
		return "WBOUT"
	}
	return "UNKNOWN"
}

// ActivityTypeByName resolves the terminal name of a weigh phase. ok is false
// for anything but the two supported phases.
func ActivityTypeByName(name string) (ActivityType, bool) {
	switch name {
	case "WBIN":
		return ActivityTare, true
	case "WBOUT":
		return ActivityGross, true
	}
	return 0, false
}

// PhaseStamp records who captured a weight, at which gate and when.
type PhaseStamp struct {
	OperatorID uint
	GateID     uint
	At         time.Time
}

// Activity is one weigh-phase record of a delivery order. At most one active
// activity may exist per (order, type); the first-weight row is updated in
// place when the second weight lands, so a completed weighing is a single row
// holding both phases.
type Activity struct {
	ID              uint
	DeliveryOrderID uint
	Type            ActivityType
	TruckNo         string
	TrailerNo       string
	SecondTruckNo   string

	TareWeight  *float64
	GrossWeight *float64
	Qty         *float64
	AvgWeight   float64

	Snapshots          []string
	WeighbridgeDetails string

	FirstWeight  PhaseStamp
	SecondWeight PhaseStamp

	IsActive   bool
	ApprovedBy *uint
	ApprovedAt *time.Time
	Reason     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SecondWeightCapture is the transactional write-set of a gross capture. The
// repository re-validates the active-tare invariant under a row lock before
// applying it.
type SecondWeightCapture struct {
	OrderID            uint
	GrossWeight        float64
	TruckNo            string
	Snapshots          []string
	WeighbridgeDetails string
	AvgWeight          float64
	KeepActive         bool
	Stamp              PhaseStamp
	OrderUpdate        OrderUpdate
}

// SecondWeightResult reports the committed gross capture.
type SecondWeightResult struct {
	ActivityID  uint
	OrderNumber string
	NetWeight   float64
}
