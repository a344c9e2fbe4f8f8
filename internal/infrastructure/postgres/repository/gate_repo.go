package repository

import (
	"context"
	"errors"

	"github.com/gatelogix/tos-gate-service/internal/domain"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/postgres/mappers"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultGateRepository struct {
	DB *gorm.DB
}

func NewDefaultGateRepository(db *gorm.DB) *DefaultGateRepository {
	return &DefaultGateRepository{DB: db}
}

func (r *DefaultGateRepository) ByName(ctx context.Context, name string) (*domain.ActivityPoint, error) {
	var model models.ActivityPointModel
	err := r.DB.WithContext(ctx).Where("name = ?", name).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGateNotFound
		}
		return nil, err
	}
	return mappers.ToDomainActivityPoint(&model), nil
}

func (r *DefaultGateRepository) ByID(ctx context.Context, id uint) (*domain.ActivityPoint, error) {
	var model models.ActivityPointModel
	if err := r.DB.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGateNotFound
		}
		return nil, err
	}
	return mappers.ToDomainActivityPoint(&model), nil
}

func (r *DefaultGateRepository) ByCamera(ctx context.Context, cameraID int64) (*domain.ActivityPoint, error) {
	var model models.ActivityPointModel
	err := r.DB.WithContext(ctx).
		Where("? = ANY(camera_ids)", cameraID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGateNotFound
		}
		return nil, err
	}
	return mappers.ToDomainActivityPoint(&model), nil
}

func (r *DefaultGateRepository) Upsert(ctx context.Context, point *domain.ActivityPoint) error {
	model := mappers.ToGORMActivityPoint(point)
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"address", "is_active", "camera_ids", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		return err
	}
	point.ID = model.ID
	return nil
}

func (r *DefaultGateRepository) List(ctx context.Context, search string) ([]*domain.ActivityPoint, error) {
	query := r.DB.WithContext(ctx).Model(&models.ActivityPointModel{})
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var pointModels []models.ActivityPointModel
	if err := query.Order("name ASC").Find(&pointModels).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.ActivityPoint, 0, len(pointModels))
	for i := range pointModels {
		out = append(out, mappers.ToDomainActivityPoint(&pointModels[i]))
	}
	return out, nil
}

func (r *DefaultGateRepository) UpsertCamera(ctx context.Context, cam *domain.Camera) (uint, error) {
	model := mappers.ToGORMCamera(cam)
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "ip_address"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"model", "rtsp_url", "status", "configuration", "username", "password", "updated_at",
		}),
	}).Create(model).Error
	if err != nil {
		return 0, err
	}
	cam.ID = model.ID
	return model.ID, nil
}

func (r *DefaultGateRepository) ListCameras(ctx context.Context) ([]*domain.Camera, error) {
	var cameraModels []models.CameraModel
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&cameraModels).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Camera, 0, len(cameraModels))
	for i := range cameraModels {
		out = append(out, mappers.ToDomainCamera(&cameraModels[i]))
	}
	return out, nil
}
