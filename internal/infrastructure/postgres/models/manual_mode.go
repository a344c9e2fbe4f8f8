package models

import "time"

type ManualModeSessionModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	Status    string `gorm:"not null;index"`
	Reason    string
	ExpiresAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
