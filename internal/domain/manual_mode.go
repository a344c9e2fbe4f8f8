package domain

import "time"

type ManualModeStatus string

const (
	ManualPending  ManualModeStatus = "pending"
	ManualApproved ManualModeStatus = "approved"
	ManualRejected ManualModeStatus = "rejected"
	ManualEnded    ManualModeStatus = "ended"
)

// ManualModeSession is one operator's override window. A user holds at most
// one session in {pending, approved} at a time; an approved session past its
// expiry is inactive but keeps its status until explicitly ended.
type ManualModeSession struct {
	ID        uint
	UserID    uint
	Status    ManualModeStatus
	Reason    string
	ExpiresAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *ManualModeSession) Live(now time.Time) bool {
	return s.Status == ManualApproved && s.ExpiresAt != nil && s.ExpiresAt.After(now)
}
