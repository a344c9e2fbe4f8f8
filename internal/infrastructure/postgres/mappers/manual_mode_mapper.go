package mappers

import (
	"github.com/gatelogix/tos-gate-service/internal/domain"
	"github.com/gatelogix/tos-gate-service/internal/infrastructure/postgres/models"
)

func ToDomainManualSession(model *models.ManualModeSessionModel) *domain.ManualModeSession {
	return &domain.ManualModeSession{
		ID:        model.ID,
		UserID:    model.UserID,
		Status:    domain.ManualModeStatus(model.Status),
		Reason:    model.Reason,
		ExpiresAt: model.ExpiresAt,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
