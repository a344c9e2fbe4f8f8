package mappers

import (
	"github.com/gatelogix/tos-gate-service/internal/domain"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/postgres/models"
)

func ToDomainDetection(model *models.DetectionModel) *domain.Detection {
	return &domain.Detection{
		ID:              model.ID,
		TruckNo:         model.TruckNo,
		GateID:          model.GateID,
		SnapTime:        model.SnapTime,
		IsUnlicensed:    model.IsUnlicensed,
		CameraType:      model.CameraType,
		Mode:            domain.DetectionMode(model.Mode),
		Weight:          model.Weight,
		OldTruckNo:      model.OldTruckNo,
		DetectedTruckNo: model.DetectedTruckNo,
		CreatedAt:       model.CreatedAt,
	}
}

func ToGORMDetection(det *domain.Detection) *models.DetectionModel {
	return &models.DetectionModel{
		ID:              det.ID,
		TruckNo:         det.TruckNo,
		GateID:          det.GateID,
		SnapTime:        det.SnapTime,
		IsUnlicensed:    det.IsUnlicensed,
		CameraType:      det.CameraType,
		Mode:            string(det.Mode),
		Weight:          det.Weight,
		OldTruckNo:      det.OldTruckNo,
		DetectedTruckNo: det.DetectedTruckNo,
		CreatedAt:       det.CreatedAt,
	}
}

func ToGORMDetectionLog(log *domain.DetectionLog) *models.DetectionLogModel {
	return &models.DetectionLogModel{
		ID:       log.ID,
		TruckNo:  log.TruckNo,
		CameraID: log.CameraID,
		SnapTime: log.SnapTime,
		Weight:   log.Weight,
	}
}

func ToDomainDetectionLog(model *models.DetectionLogModel) *domain.DetectionLog {
	return &domain.DetectionLog{
		ID:        model.ID,
		TruckNo:   model.TruckNo,
		CameraID:  model.CameraID,
		SnapTime:  model.SnapTime,
		Weight:    model.Weight,
		CreatedAt: model.CreatedAt,
	}
}
