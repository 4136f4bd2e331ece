package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pawpoint/grooming-scheduler/internal/audit"
	"github.com/pawpoint/grooming-scheduler/internal/config"
	domain "github.com/pawpoint/grooming-scheduler/internal/domain/appointment"
	"github.com/pawpoint/grooming-scheduler/internal/httperr"
	"github.com/pawpoint/grooming-scheduler/internal/models"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	sched config.Scheduling
	now   func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	sched config.Scheduling,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
		sched: sched,
		now:   func() time.Time { return time.Now().In(sched.Location) },
	}
}

// Execute cancels an appointment. The returned warning is non-empty
// when the cancellation happened inside the notice window; it never
// blocks the cancellation, but it is recorded as a note.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uuid.UUID,
) (*models.Appointment, string, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, "", httperr.ErrBusiness("appointment_not_found")
	}

	now := uc.now()
	warning, err := domain.Cancel(ap, actor, now, uc.sched.CancelNotice)
	if err != nil {
		return nil, "", err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, "", err
	}

	meta := map[string]any{"warning": warning}

	if warning != "" {
		if err := uc.repo.CreateNote(ctx, &models.AppointmentNote{
			AppointmentID: ap.ID,
			AuthorID:      actor.ID,
			StaffAuthored: actor.IsStaff,
			Note:          "Cancelled inside the cancellation notice window",
		}); err != nil {
			meta["note_error"] = err.Error()
		}
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: meta,
	})

	return ap, warning, nil
}
