package domain

import "time"

type DetectionMode string

const (
	ModeSnapshot DetectionMode = "snapshot"
	ModeManual   DetectionMode = "manual"
)

// Detection is the audit record of one plate read, resolved to a gate and
// holding the best available plate string. Append-only; the weight field is
// attached once by the correlator and never changed again.
type Detection struct {
	ID              uint
	TruckNo         string
	GateID          uint
	SnapTime        time.Time
	IsUnlicensed    bool
	CameraType      string
	Mode            DetectionMode
	Weight          *float64
	OldTruckNo      string
	DetectedTruckNo string
	CreatedAt       time.Time
}

// DetectionLog is the raw per-camera record used for deduplication and
// lookups; it keeps the plate exactly as the camera reported it.
type DetectionLog struct {
	ID        uint
	TruckNo   string
	CameraID  string
	SnapTime  time.Time
	Weight    *float64
	CreatedAt time.Time
}

// TruckAtGate is a recent detection joined with its gate, used to answer
// "which truck is on the bridge right now".
type TruckAtGate struct {
	GateID       uint
	GateAddress  string
	TruckNo      string
	IsUnlicensed bool
	DetectedAt   time.Time
}
