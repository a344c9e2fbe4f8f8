package models

import "time"

// DetectionModel is the gate-resolved audit record of a plate read.
type DetectionModel struct {
	ID              uint   `gorm:"primaryKey"`
	TruckNo         string `gorm:"index"`
	GateID          uint   `gorm:"index"`
	SnapTime        time.Time `gorm:"index"`
	IsUnlicensed    bool
	CameraType      string
	Mode            string `gorm:"not null;default:snapshot"`
	Weight          *float64
	OldTruckNo      string
	DetectedTruckNo string
	CreatedAt       time.Time `gorm:"index"`
}

// DetectionLogModel keeps every raw camera read for dedup and lookups.
type DetectionLogModel struct {
	ID        uint   `gorm:"primaryKey"`
	TruckNo   string `gorm:"index"`
	CameraID  string `gorm:"index"`
	SnapTime  time.Time
	Weight    *float64
	CreatedAt time.Time
}
