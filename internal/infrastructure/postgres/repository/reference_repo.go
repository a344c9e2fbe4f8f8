package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatelogix/tos-gate-service/internal/domain"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// referenceTables maps each reference kind to the TOS table it lives in. The
// tables are owned by the upstream terminal system; this service only reads
// them.
var referenceTables = map[domain.ReferenceKind]string{
	domain.RefCustomer:     "customers",
	domain.RefDriver:       "drivers",
	domain.RefProductType:  "product_types",
	domain.RefPackingType:  "packing_types",
	domain.RefVessel:       "vessels",
	domain.RefWheatType:    "wheat_types",
	domain.RefTransporter:  "transporters",
	domain.RefBuyingCenter: "buying_centers",
	domain.RefSupplier:     "suppliers",
	domain.RefPurchaseType: "purchase_types",
}

type DefaultReferenceRepository struct {
	DB *gorm.DB
}

func NewDefaultReferenceRepository(db *gorm.DB) *DefaultReferenceRepository {
	return &DefaultReferenceRepository{DB: db}
}

func (r *DefaultReferenceRepository) ValidateActive(ctx context.Context, kind domain.ReferenceKind, id uint) error {
	table, ok := referenceTables[kind]
	if !ok {
		return fmt.Errorf("unknown reference kind %q", kind)
	}

	var exists bool
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id = ? AND is_active = true)", table)
	if err := r.DB.WithContext(ctx).Raw(query, id).Scan(&exists).Error; err != nil {
		return err
	}
	if !exists {
		return domain.NewRejection(fmt.Sprintf("unknown or inactive %s %d", kind, id))
	}
	return nil
}

// FindOrCreateProductByCode resolves an item code to a product id, creating
// the product when missing. The unique index on code makes concurrent creates
// converge: the loser's insert is a no-op and the follow-up read returns the
// winner's row.
func (r *DefaultReferenceRepository) FindOrCreateProductByCode(ctx context.Context, code, name string) (uint, error) {
	var model models.ProductModel
	err := r.DB.WithContext(ctx).Where("code = ?", code).First(&model).Error
	if err == nil {
		return model.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	model = models.ProductModel{Code: code, Name: name, IsActive: true}
	err = r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(&model).Error
	if err != nil {
		return 0, err
	}
	if model.ID != 0 {
		return model.ID, nil
	}

	if err := r.DB.WithContext(ctx).Where("code = ?", code).First(&model).Error; err != nil {
		return 0, err
	}
	return model.ID, nil
}
