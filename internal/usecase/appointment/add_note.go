package appointment

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/pawpoint/grooming-scheduler/internal/audit"
	domain "github.com/pawpoint/grooming-scheduler/internal/domain/appointment"
	"github.com/pawpoint/grooming-scheduler/internal/httperr"
	"github.com/pawpoint/grooming-scheduler/internal/models"
)

type AddNote struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAddNote(repo domain.Repository, audit *audit.Dispatcher) *AddNote {
	return &AddNote{repo: repo, audit: audit}
}

// Execute attaches a note to an appointment. Staff can annotate any
// appointment; customers only their own. The staff/customer authorship
// tag is derived from the actor's role, never taken from input.
func (uc *AddNote) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uuid.UUID,
	text string,
) (*models.AppointmentNote, error) {

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, httperr.ErrBusiness("empty_note")
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if !actor.IsStaff && ap.CustomerID != actor.ID {
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}

	note := &models.AppointmentNote{
		AppointmentID: ap.ID,
		AuthorID:      actor.ID,
		StaffAuthored: actor.IsStaff,
		Note:          text,
	}

	if err := uc.repo.CreateNote(ctx, note); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "appointment_note_added",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return note, nil
}
