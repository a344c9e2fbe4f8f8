package manualmode

import (
	"context"
	"errors"
	"time"

	"github.com/gatelogix/tos-gate-service/internal/domain"
)

// Request opens a pending override session for an operator. A user holds at
// most one pending or approved session; the repository enforces that inside
// one transaction so concurrent requests cannot both win.
func (uc *DefaultUsecase) Request(ctx context.Context, userID uint, reason string) (*domain.ManualModeSession, error) {
	if reason == "" {
		return nil, domain.NewRejection("a reason is required to request manual mode")
	}

	session, err := uc.SessionRepo.Request(ctx, userID, reason)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("manual mode requested", "user_id", userID, "session_id", session.ID)
	uc.Metrics.RecordManualSession(string(domain.ManualPending))
	return session, nil
}

// Approve grants a pending session until expiresAt.
func (uc *DefaultUsecase) Approve(ctx context.Context, sessionID uint, expiresAt time.Time) (*domain.ManualModeSession, error) {
	if !expiresAt.After(time.Now()) {
		return nil, domain.NewRejection("expiry must be in the future")
	}

	session, err := uc.SessionRepo.Approve(ctx, sessionID, expiresAt)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("manual mode approved",
		"session_id", session.ID, "user_id", session.UserID, "expires_at", expiresAt)
	uc.Metrics.RecordManualSession(string(domain.ManualApproved))
	return session, nil
}

func (uc *DefaultUsecase) Reject(ctx context.Context, sessionID uint, reason string) (*domain.ManualModeSession, error) {
	session, err := uc.SessionRepo.Reject(ctx, sessionID, reason)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("manual mode rejected", "session_id", session.ID, "reason", reason)
	uc.Metrics.RecordManualSession(string(domain.ManualRejected))
	return session, nil
}

// Extend pushes the expiry of an approved session. Any other state fails.
func (uc *DefaultUsecase) Extend(ctx context.Context, sessionID uint, newExpiry time.Time) (*domain.ManualModeSession, error) {
	if !newExpiry.After(time.Now()) {
		return nil, domain.NewRejection("new expiry must be in the future")
	}

	session, err := uc.SessionRepo.Extend(ctx, sessionID, newExpiry)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("manual mode extended", "session_id", session.ID, "expires_at", newExpiry)
	return session, nil
}

// End forces the session to ended from any state, cutting the override off
// immediately.
func (uc *DefaultUsecase) End(ctx context.Context, sessionID uint) (*domain.ManualModeSession, error) {
	session, err := uc.SessionRepo.End(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("manual mode ended", "session_id", session.ID, "user_id", session.UserID)
	uc.Metrics.RecordManualSession(string(domain.ManualEnded))
	return session, nil
}

// IsUserInManualMode reports whether the user holds an approved, unexpired
// session right now.
func (uc *DefaultUsecase) IsUserInManualMode(ctx context.Context, userID uint) (bool, error) {
	session, err := uc.SessionRepo.LiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return false, nil
		}
		return false, err
	}
	return session != nil && session.Live(time.Now()), nil
}

func (uc *DefaultUsecase) ListSessions(ctx context.Context) ([]*domain.ManualModeSession, error) {
	return uc.SessionRepo.List(ctx)
}
