package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/pawpoint/grooming-scheduler/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Active statuses block overlapping slots; completed and cancelled
// appointments never do.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Actors & transition guards
// ===============================

// Actor is the authenticated principal attempting a transition.
type Actor struct {
	ID      uuid.UUID
	IsStaff bool
}

// CanConfirm: pending -> confirmed, staff only.
func CanConfirm(current Status, actor Actor) error {
	if !actor.IsStaff {
		return httperr.ErrBusiness(httperr.CodeForbidden)
	}
	if current != StatusPending {
		return httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}
	return nil
}

// CanComplete: confirmed -> completed, staff only.
func CanComplete(current Status, actor Actor) error {
	if !actor.IsStaff {
		return httperr.ErrBusiness(httperr.CodeForbidden)
	}
	if current != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}
	return nil
}

// CanCancel: pending|confirmed -> cancelled, by staff or the owning
// customer, while the scheduled start is still in the future.
func CanCancel(current Status, actor Actor, ownerID uuid.UUID, start, now time.Time) error {
	if !actor.IsStaff && actor.ID != ownerID {
		return httperr.ErrBusiness(httperr.CodeForbidden)
	}
	if !current.Active() {
		return httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}
	if !start.After(now) {
		return httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}
	return nil
}
