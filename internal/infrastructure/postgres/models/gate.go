package models

import (
	"time"

	"github.com/lib/pq"
)

type ActivityPointModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;not null"`
	Address   string
	IsActive  bool          `gorm:"not null;default:true"`
	CameraIDs pq.Int64Array `gorm:"type:bigint[]"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CameraModel struct {
	ID            uint `gorm:"primaryKey"`
	Model         string
	IPAddress     string `gorm:"uniqueIndex;not null"`
	RTSPURL       string
	Status        string
	Configuration string
	Username      string
	Password      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
