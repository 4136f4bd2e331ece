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

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	CustomerID uuid.UUID
	PetID      uuid.UUID
	ServiceID  uuid.UUID

	Date string // 2006-01-02
	Time string // 15:04
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	sched config.Scheduling
	now   func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	sched config.Scheduling,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		sched: sched,
		now:   func() time.Time { return time.Now().In(sched.Location) },
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute validates a proposed booking and creates it in pending state.
// Checks run in a fixed order and each failure is a hard stop carrying
// its own business code; nothing is partially applied.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Date / time in the business timezone
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		uc.sched.Location,
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	date := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, uc.sched.Location)

	// --------------------------------------------------
	// 1. No past bookings
	// --------------------------------------------------
	if start.Before(uc.now()) {
		return nil, httperr.ErrBusiness(httperr.CodePastDate)
	}

	// --------------------------------------------------
	// 2. Calendar policy (holiday precedence, weekday row)
	// --------------------------------------------------
	onHoliday, err := uc.repo.IsHoliday(ctx, date)
	if err != nil {
		return nil, err
	}

	hours, err := uc.repo.GetBusinessHours(ctx, domain.ISOWeekday(date))
	if err != nil {
		return nil, err
	}

	window, open := domain.ResolveDayWindow(date, hours, onHoliday)
	if !open {
		return nil, httperr.ErrBusiness(httperr.CodeClosedDate)
	}

	// --------------------------------------------------
	// 3. Service duration inside the day window
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil || !svc.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)
	if !window.Contains(start, end) {
		return nil, httperr.ErrBusiness(httperr.CodeOutsideHours)
	}

	// --------------------------------------------------
	// 4. Pet ownership
	// --------------------------------------------------
	pet, err := uc.repo.GetPet(ctx, in.PetID)
	if err != nil {
		return nil, httperr.ErrBusiness("pet_not_found")
	}
	if pet.OwnerID != in.CustomerID {
		return nil, httperr.ErrBusiness(httperr.CodePetOwnership)
	}

	// --------------------------------------------------
	// 5. Price for (service, pet size)
	// --------------------------------------------------
	price, err := uc.repo.GetServicePrice(ctx, svc.ID, pet.Size)
	if err != nil {
		return nil, err
	}
	if price == nil {
		return nil, httperr.ErrBusiness(httperr.CodePriceNotConfigured)
	}

	// --------------------------------------------------
	// 6. Overlap pre-check against the booking ledger
	// --------------------------------------------------
	conflict, err := uc.repo.HasConflict(ctx, date, start, end, nil)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, httperr.ErrBusiness(httperr.CodeSlotConflict)
	}

	// --------------------------------------------------
	// 7. Create; the storage constraint is the final arbiter
	// --------------------------------------------------
	ap := &models.Appointment{
		CustomerID: in.CustomerID,
		PetID:      pet.ID,
		ServiceID:  svc.ID,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
		Status:     string(domain.InitialStatus()),
		TotalPrice: price.Price,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.CustomerID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
