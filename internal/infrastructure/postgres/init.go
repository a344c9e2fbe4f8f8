package postgres

import (
	"log"

	"github.com/gatelogix/tos-gate-service/internal/config"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.GateConfig) *gorm.DB {
	dsn := cfg.GateDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.DeliveryOrderModel{},
		&models.OrderItemModel{},
		&models.ProductModel{},
		&models.ActivityModel{},
		&models.DetectionModel{},
		&models.DetectionLogModel{},
		&models.ActivityPointModel{},
		&models.CameraModel{},
		&models.ManualModeSessionModel{},
	)

	// Order numbers are date + a 4-digit slice of this sequence.
	db.Exec("CREATE SEQUENCE IF NOT EXISTS delivery_order_seq")

	return db
}
