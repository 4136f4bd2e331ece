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

type CompleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	sched config.Scheduling
	now   func() time.Time
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	sched config.Scheduling,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: audit,
		sched: sched,
		now:   func() time.Time { return time.Now().In(sched.Location) },
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := uc.now()
	if err := domain.Complete(ap, actor, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	ev := audit.Event{
		ActorID:  &actor.ID,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	}

	if err := uc.repo.CreateNote(ctx, &models.AppointmentNote{
		AppointmentID: ap.ID,
		AuthorID:      actor.ID,
		StaffAuthored: true,
		Note:          "Appointment completed",
	}); err != nil {
		ev.Metadata = map[string]any{"note_error": err.Error()}
	}

	uc.audit.Dispatch(ev)

	return ap, nil
}
