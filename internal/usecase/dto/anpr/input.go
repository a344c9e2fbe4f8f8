package anprdto

import "time"

// DetectionInput is the single internal shape every wire payload is resolved
// into at the HTTP boundary. Downstream code never inspects vendor formats.
type DetectionInput struct {
	Plate      string
	CameraID   string
	CameraType string
	SnapTime   time.Time
	// BoxPositive is true when the vendor payload carried a vehicle bounding
	// box with at least one positive coordinate. With no plate it marks an
	// unlicensed vehicle candidate.
	BoxPositive bool
}

// ManualLogInput records an operator-entered plate while a gate runs in
// manual mode.
type ManualLogInput struct {
	Plate  string
	GateID uint
}
