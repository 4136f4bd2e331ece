package appointment

import (
	"context"

	domain "github.com/pawpoint/grooming-scheduler/internal/domain/appointment"
	"github.com/pawpoint/grooming-scheduler/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute lists appointments newest-first. Staff see everything;
// customers are pinned to their own bookings regardless of the filter.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	actor domain.Actor,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	if !actor.IsStaff {
		f.CustomerID = &actor.ID
	}

	return uc.repo.ListAppointments(ctx, f)
}
