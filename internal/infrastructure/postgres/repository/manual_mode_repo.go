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

type DefaultManualModeRepository struct {
	DB *gorm.DB
}

func NewDefaultManualModeRepository(db *gorm.DB) *DefaultManualModeRepository {
	return &DefaultManualModeRepository{DB: db}
}

// manualSessionLockKey namespaces the per-user advisory lock so it cannot
// collide with other advisory users on the same database.
const manualSessionLockKey = int64(0x6d616e) // "man"

// Request inserts a pending session unless the user already holds a pending
// or approved one. A per-user transaction-scoped advisory lock serializes
// concurrent requests so the check and insert cannot interleave at READ
// COMMITTED; the partial unique index on (user_id) WHERE status IN
// ('pending','approved') backstops it.
func (r *DefaultManualModeRepository) Request(ctx context.Context, userID uint, reason string) (*domain.ManualModeSession, error) {
	var model models.ManualModeSessionModel
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?, ?)", manualSessionLockKey, int64(userID)).Error; err != nil {
			return err
		}

		var held int64
		err := tx.Model(&models.ManualModeSessionModel{}).
			Where("user_id = ? AND status IN ?", userID,
				[]string{string(domain.ManualPending), string(domain.ManualApproved)}).
			Count(&held).Error
		if err != nil {
			return err
		}
		if held > 0 {
			return domain.ErrManualSessionExists
		}

		model = models.ManualModeSessionModel{
			UserID: userID,
			Status: string(domain.ManualPending),
			Reason: reason,
		}
		if err := tx.Create(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrManualSessionExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainManualSession(&model), nil
}

func (r *DefaultManualModeRepository) Approve(ctx context.Context, id uint, expiresAt time.Time) (*domain.ManualModeSession, error) {
	return r.transition(ctx, id, []string{string(domain.ManualPending)}, map[string]any{
		"status":     string(domain.ManualApproved),
		"expires_at": &expiresAt,
	})
}

func (r *DefaultManualModeRepository) Reject(ctx context.Context, id uint, reason string) (*domain.ManualModeSession, error) {
	values := map[string]any{"status": string(domain.ManualRejected)}
	if reason != "" {
		values["reason"] = reason
	}
	return r.transition(ctx, id, []string{string(domain.ManualPending)}, values)
}

func (r *DefaultManualModeRepository) Extend(ctx context.Context, id uint, newExpiry time.Time) (*domain.ManualModeSession, error) {
	return r.transition(ctx, id, []string{string(domain.ManualApproved)}, map[string]any{
		"expires_at": &newExpiry,
	})
}

// End cuts the override off from any state and stamps the expiry so the
// session can never be read as live afterwards.
func (r *DefaultManualModeRepository) End(ctx context.Context, id uint) (*domain.ManualModeSession, error) {
	now := time.Now()
	return r.transition(ctx, id, nil, map[string]any{
		"status":     string(domain.ManualEnded),
		"expires_at": &now,
	})
}

// transition applies values to the session only when it is in one of the
// allowed states (nil fromStates allows any), distinguishing a missing
// session from a wrong-state one.
func (r *DefaultManualModeRepository) transition(ctx context.Context, id uint, fromStates []string, values map[string]any) (*domain.ManualModeSession, error) {
	var model models.ManualModeSessionModel
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&models.ManualModeSessionModel{}).Where("id = ?", id)
		if len(fromStates) > 0 {
			query = query.Where("status IN ?", fromStates)
		}
		res := query.Updates(values)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var exists int64
			if err := tx.Model(&models.ManualModeSessionModel{}).
				Where("id = ?", id).Count(&exists).Error; err != nil {
				return err
			}
			if exists == 0 {
				return domain.ErrSessionNotFound
			}
			return domain.ErrManualSessionState
		}
		return tx.First(&model, id).Error
	})
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainManualSession(&model), nil
}

func (r *DefaultManualModeRepository) LiveByUser(ctx context.Context, userID uint) (*domain.ManualModeSession, error) {
	var model models.ManualModeSessionModel
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(domain.ManualApproved)).
		Order("id DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return mappers.ToDomainManualSession(&model), nil
}

func (r *DefaultManualModeRepository) List(ctx context.Context) ([]*domain.ManualModeSession, error) {
	var sessionModels []models.ManualModeSessionModel
	err := r.DB.WithContext(ctx).Order("id DESC").Limit(200).Find(&sessionModels).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.ManualModeSession, 0, len(sessionModels))
	for i := range sessionModels {
		out = append(out, mappers.ToDomainManualSession(&sessionModels[i]))
	}
	return out, nil
}
