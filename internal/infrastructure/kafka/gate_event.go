package kafka

// WeighingEvent is published on every weighing lifecycle transition: first
// weight, second weight and administrative approval.
type WeighingEvent struct {
	EventID      string   `json:"event_id"`
	OrderNumber  string   `json:"order_number"`
	ActivityID   uint     `json:"activity_id"`
	ActivityType string   `json:"activity_type"`
	TruckNo      string   `json:"truck_no"`
	GateID       uint     `json:"gate_id"`
	Weight       float64  `json:"weight"`
	NetWeight    *float64 `json:"net_weight,omitempty"`
	Status       string   `json:"status"`
}
