package repository

import (
	"context"
	"errors"
	"time"

	"github.com/gatelogix/tos-gate-service/internal/domain"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/postgres/mappers"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultDetectionRepository struct {
	DB *gorm.DB
}

func NewDefaultDetectionRepository(db *gorm.DB) *DefaultDetectionRepository {
	return &DefaultDetectionRepository{DB: db}
}

func (r *DefaultDetectionRepository) CreateLog(ctx context.Context, log *domain.DetectionLog) (uint, error) {
	model := mappers.ToGORMDetectionLog(log)
	if err := r.DB.WithContext(ctx).Create(model).Error; err != nil {
		return 0, err
	}
	log.ID = model.ID
	log.CreatedAt = model.CreatedAt
	return model.ID, nil
}

func (r *DefaultDetectionRepository) CreateDetection(ctx context.Context, det *domain.Detection) (uint, error) {
	model := mappers.ToGORMDetection(det)
	if err := r.DB.WithContext(ctx).Create(model).Error; err != nil {
		return 0, err
	}
	det.ID = model.ID
	det.CreatedAt = model.CreatedAt
	return model.ID, nil
}

// AttachWeight writes the correlated weight onto both records of one plate
// read. A zero id skips that record; the correlator only holds ids for rows
// that were actually written.
func (r *DefaultDetectionRepository) AttachWeight(ctx context.Context, logID, detectionID uint, weight float64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if logID != 0 {
			err := tx.Model(&models.DetectionLogModel{}).
				Where("id = ?", logID).
				Update("weight", weight).Error
			if err != nil {
				return err
			}
		}
		if detectionID != 0 {
			err := tx.Model(&models.DetectionModel{}).
				Where("id = ?", detectionID).
				Update("weight", weight).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *DefaultDetectionRepository) TrucksAtGate(ctx context.Context, gateID uint, search string, lookback time.Duration) ([]*domain.TruckAtGate, error) {
	since := time.Now().Add(-lookback)
	query := r.DB.WithContext(ctx).
		Table("detection_models AS d").
		Select("d.gate_id, p.address AS gate_address, d.truck_no, d.is_unlicensed, d.snap_time AS detected_at").
		Joins("JOIN activity_point_models p ON p.id = d.gate_id").
		Where("d.snap_time >= ?", since)

	if gateID != 0 {
		query = query.Where("d.gate_id = ?", gateID)
	}
	if search != "" {
		query = query.Where("d.truck_no ILIKE ?", "%"+search+"%")
	}

	var rows []domain.TruckAtGate
	if err := query.Order("d.snap_time DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.TruckAtGate, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	return out, nil
}

func (r *DefaultDetectionRepository) LatestByPlate(ctx context.Context, truckNo string) (*domain.Detection, error) {
	var model models.DetectionModel
	err := r.DB.WithContext(ctx).
		Where("truck_no = ?", truckNo).
		Order("snap_time DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTruckNotFound
		}
		return nil, err
	}
	return mappers.ToDomainDetection(&model), nil
}
