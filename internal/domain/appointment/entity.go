package appointment

import (
	"time"

	"github.com/pawpoint/grooming-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// WarnLateCancellation is returned when a cancellation lands inside
// the configured notice window. It never blocks the cancellation.
const WarnLateCancellation = "late_cancellation"

func Confirm(ap *models.Appointment, actor Actor, now time.Time) error {
	if err := CanConfirm(Status(ap.Status), actor); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	ap.ConfirmedAt = &now
	return nil
}

func Complete(ap *models.Appointment, actor Actor, now time.Time) error {
	if err := CanComplete(Status(ap.Status), actor); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// Cancel transitions the appointment and reports a non-fatal warning
// when less than the notice window remains before the start time.
func Cancel(ap *models.Appointment, actor Actor, now time.Time, notice time.Duration) (string, error) {
	if err := CanCancel(Status(ap.Status), actor, ap.CustomerID, ap.StartTime, now); err != nil {
		return "", err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now

	if ap.StartTime.Sub(now) < notice {
		return WarnLateCancellation, nil
	}
	return "", nil
}
