package mappers

import (
	"github.com/gatelogix/tos-gate-service/internal/domain"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/postgres/models"
)

func ToDomainActivityPoint(model *models.ActivityPointModel) *domain.ActivityPoint {
	return &domain.ActivityPoint{
		ID:        model.ID,
		Name:      model.Name,
		Address:   model.Address,
		IsActive:  model.IsActive,
		CameraIDs: model.CameraIDs,
	}
}

func ToGORMActivityPoint(point *domain.ActivityPoint) *models.ActivityPointModel {
	return &models.ActivityPointModel{
		ID:        point.ID,
		Name:      point.Name,
		Address:   point.Address,
		IsActive:  point.IsActive,
		CameraIDs: point.CameraIDs,
	}
}

func ToDomainCamera(model *models.CameraModel) *domain.Camera {
	return &domain.Camera{
		ID:            model.ID,
		Model:         model.Model,
		IPAddress:     model.IPAddress,
		RTSPURL:       model.RTSPURL,
		Status:        model.Status,
		Configuration: model.Configuration,
		Username:      model.Username,
		Password:      model.Password,
	}
}

func ToGORMCamera(cam *domain.Camera) *models.CameraModel {
	return &models.CameraModel{
		ID:            cam.ID,
		Model:         cam.Model,
		IPAddress:     cam.IPAddress,
		RTSPURL:       cam.RTSPURL,
		Status:        cam.Status,
		Configuration: cam.Configuration,
		Username:      cam.Username,
		Password:      cam.Password,
	}
}
