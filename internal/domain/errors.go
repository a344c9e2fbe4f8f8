package domain

import "errors"

// Rejection is a recoverable business-rule violation. Handlers turn it into
// a {success:false, message} payload; it never carries side effects.
type Rejection struct {
	Reason string
}

func (r *Rejection) Error() string {
	return r.Reason
}

func NewRejection(reason string) *Rejection {
	return &Rejection{Reason: reason}
}

// RejectionReason extracts the human-readable reason when err is a business
// rejection. Infrastructure errors return ok=false and must be treated as
// faults.
func RejectionReason(err error) (string, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r.Reason, true
	}
	return "", false
}

var (
	ErrOrderNotFound       = NewRejection("delivery order not found")
	ErrOrderInactive       = NewRejection("delivery order is inactive")
	ErrOrderCompleted      = NewRejection("weighing already completed for this delivery order")
	ErrOrderReactivate     = NewRejection("cannot reactivate an already inactive order")
	ErrActivityNotFound    = NewRejection("activity not found")
	ErrActivityExists      = NewRejection("this activity type has already been performed for this delivery order")
	ErrNoTareWeight        = NewRejection("no valid tare weight found for this delivery order")
	ErrFirstWeightInvalid  = NewRejection("first weight cannot be zero or less than zero")
	ErrSecondWeightInvalid = NewRejection("second weight cannot be zero or less than zero")
	ErrGateNotFound        = NewRejection("activity point not found")
	ErrGateInactive        = NewRejection("activity point is inactive")
	ErrManualSessionExists = NewRejection("you already have an active or pending manual mode request")
	ErrManualSessionState  = NewRejection("approved request not found or invalid")
	ErrSessionNotFound     = NewRejection("manual mode session not found")
	ErrTruckNotFound       = NewRejection("truck not found")
)

// ErrSessionBusy reports a correlation already in flight for a gate. It is an
// operational condition, not a business rejection.
var ErrSessionBusy = errors.New("weight correlation already in progress for this gate")
