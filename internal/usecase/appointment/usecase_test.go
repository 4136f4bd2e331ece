package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawpoint/grooming-scheduler/internal/config"
	domain "github.com/pawpoint/grooming-scheduler/internal/domain/appointment"
	"github.com/pawpoint/grooming-scheduler/internal/httperr"
	"github.com/pawpoint/grooming-scheduler/internal/models"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

type fakeRepo struct {
	services map[uuid.UUID]*models.Service
	prices   map[uuid.UUID]map[string]*models.ServicePrice
	pets     map[uuid.UUID]*models.Pet
	hours    map[int]*models.BusinessHours
	holidays map[string]bool

	appointments []*models.Appointment
	notes        []*models.AppointmentNote

	noteErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services: map[uuid.UUID]*models.Service{},
		prices:   map[uuid.UUID]map[string]*models.ServicePrice{},
		pets:     map[uuid.UUID]*models.Pet{},
		hours:    map[int]*models.BusinessHours{},
		holidays: map[string]bool{},
	}
}

var _ domain.Repository = (*fakeRepo)(nil)

func (r *fakeRepo) GetService(_ context.Context, id uuid.UUID) (*models.Service, error) {
	svc, ok := r.services[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return svc, nil
}

func (r *fakeRepo) GetServicePrice(_ context.Context, serviceID uuid.UUID, dogSize string) (*models.ServicePrice, error) {
	return r.prices[serviceID][dogSize], nil
}

func (r *fakeRepo) GetPet(_ context.Context, id uuid.UUID) (*models.Pet, error) {
	pet, ok := r.pets[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return pet, nil
}

func (r *fakeRepo) GetBusinessHours(_ context.Context, weekday int) (*models.BusinessHours, error) {
	return r.hours[weekday], nil
}

func (r *fakeRepo) IsHoliday(_ context.Context, date time.Time) (bool, error) {
	return r.holidays[date.Format("2006-01-02")], nil
}

func (r *fakeRepo) ListActiveForDay(_ context.Context, date time.Time, exclude *uuid.UUID) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if exclude != nil && ap.ID == *exclude {
			continue
		}
		if ap.Date.Equal(date) && domain.Status(ap.Status).Active() {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) HasConflict(ctx context.Context, date, start, end time.Time, exclude *uuid.UUID) (bool, error) {
	active, _ := r.ListActiveForDay(ctx, date, exclude)
	for _, ap := range active {
		if domain.Overlaps(start, end, ap.StartTime, ap.EndTime) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	ap.ID = uuid.New()
	r.appointments = append(r.appointments, ap)
	return nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	for _, ap := range r.appointments {
		if ap.ID == id {
			return ap, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i, existing := range r.appointments {
		if existing.ID == ap.ID {
			r.appointments[i] = ap
			return nil
		}
	}
	return errors.New("record not found")
}

func (r *fakeRepo) ListAppointments(_ context.Context, f domain.ListFilter) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if f.CustomerID != nil && ap.CustomerID != *f.CustomerID {
			continue
		}
		if f.Date != nil && !ap.Date.Equal(*f.Date) {
			continue
		}
		if f.Status != "" && ap.Status != f.Status {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

func (r *fakeRepo) CreateNote(_ context.Context, note *models.AppointmentNote) error {
	if r.noteErr != nil {
		return r.noteErr
	}
	note.ID = uuid.New()
	r.notes = append(r.notes, note)
	return nil
}

// ======================================================
// FIXTURE
// ======================================================

// Fixed clock: Tuesday 2026-09-01 12:00, business timezone UTC for
// test readability. The target booking day is the following Monday.
var (
	testNow    = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	mondayDate = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	repo  *fakeRepo
	sched config.Scheduling

	customerID uuid.UUID
	serviceID  uuid.UUID
	petID      uuid.UUID
}

func newFixture() *fixture {
	f := &fixture{
		repo: newFakeRepo(),
		sched: config.Scheduling{
			Location:     time.UTC,
			SlotStride:   30 * time.Minute,
			CancelNotice: 24 * time.Hour,
		},
		customerID: uuid.New(),
		serviceID:  uuid.New(),
		petID:      uuid.New(),
	}

	f.repo.services[f.serviceID] = &models.Service{
		ID:          f.serviceID,
		Name:        "Full Groom",
		DurationMin: 60,
		Active:      true,
	}
	f.repo.prices[f.serviceID] = map[string]*models.ServicePrice{
		models.SizeMedium: {ServiceID: f.serviceID, DogSize: models.SizeMedium, Price: 55},
	}
	f.repo.pets[f.petID] = &models.Pet{
		ID:      f.petID,
		OwnerID: f.customerID,
		Name:    "Rex",
		Size:    models.SizeMedium,
	}

	// Monday through Saturday 09:00-17:00, closed Sunday.
	for wd := 1; wd <= 6; wd++ {
		f.repo.hours[wd] = &models.BusinessHours{
			Weekday: wd, OpenTime: "09:00", CloseTime: "17:00", IsOpen: true,
		}
	}

	return f
}

func (f *fixture) slotsUC() *GetAvailableSlots {
	uc := NewGetAvailableSlots(f.repo, f.sched)
	uc.now = func() time.Time { return testNow }
	return uc
}

func (f *fixture) createUC() *CreateAppointment {
	uc := NewCreateAppointment(f.repo, nil, f.sched)
	uc.now = func() time.Time { return testNow }
	return uc
}

func (f *fixture) cancelUC() *CancelAppointment {
	uc := NewCancelAppointment(f.repo, nil, f.sched)
	uc.now = func() time.Time { return testNow }
	return uc
}

func (f *fixture) confirmUC() *ConfirmAppointment {
	uc := NewConfirmAppointment(f.repo, nil, f.sched)
	uc.now = func() time.Time { return testNow }
	return uc
}

func (f *fixture) completeUC() *CompleteAppointment {
	uc := NewCompleteAppointment(f.repo, nil, f.sched)
	uc.now = func() time.Time { return testNow }
	return uc
}

func (f *fixture) book(t *testing.T, date, clock string) *models.Appointment {
	t.Helper()

	ap, err := f.createUC().Execute(context.Background(), CreateAppointmentInput{
		CustomerID: f.customerID,
		PetID:      f.petID,
		ServiceID:  f.serviceID,
		Date:       date,
		Time:       clock,
	})
	require.NoError(t, err)
	return ap
}

func assertBusiness(t *testing.T, err error, code string) {
	t.Helper()
	got, ok := httperr.BusinessCode(err)
	require.True(t, ok, "expected a business error, got %v", err)
	assert.Equal(t, code, got)
}

// ======================================================
// AVAILABLE SLOTS
// ======================================================

func TestAvailableSlotsEmptyLedger(t *testing.T) {
	f := newFixture()

	slots, err := f.slotsUC().Execute(context.Background(), AvailableSlotsInput{
		Date:      mondayDate,
		ServiceID: f.serviceID,
	})
	require.NoError(t, err)

	// 09:00 through 16:00 on a 30 minute stride for a 60 minute service.
	require.Len(t, slots, 15)
	assert.Equal(t, "09:00", slots[0].Start.Format("15:04"))
	assert.Equal(t, "16:00", slots[14].Start.Format("15:04"))
}

func TestAvailableSlotsExcludeBookedWindow(t *testing.T) {
	f := newFixture()
	f.book(t, "2026-09-07", "10:00")

	slots, err := f.slotsUC().Execute(context.Background(), AvailableSlotsInput{
		Date:      mondayDate,
		ServiceID: f.serviceID,
	})
	require.NoError(t, err)

	// The 09:30, 10:00 and 10:30 candidates all collide with the
	// 10:00-11:00 booking.
	require.Len(t, slots, 12)
	for _, s := range slots {
		assert.NotContains(t, []string{"09:30", "10:00", "10:30"}, s.Start.Format("15:04"))
	}
}

func TestAvailableSlotsCancelledBookingFreesTheWindow(t *testing.T) {
	f := newFixture()
	ap := f.book(t, "2026-09-07", "10:00")

	actor := domain.Actor{ID: f.customerID}
	_, _, err := f.cancelUC().Execute(context.Background(), actor, ap.ID)
	require.NoError(t, err)

	slots, err := f.slotsUC().Execute(context.Background(), AvailableSlotsInput{
		Date:      mondayDate,
		ServiceID: f.serviceID,
	})
	require.NoError(t, err)
	assert.Len(t, slots, 15)
}

func TestAvailableSlotsHolidayIsEmpty(t *testing.T) {
	f := newFixture()
	f.repo.holidays["2026-09-07"] = true

	slots, err := f.slotsUC().Execute(context.Background(), AvailableSlotsInput{
		Date:      mondayDate,
		ServiceID: f.serviceID,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlotsClosedWeekdayIsEmpty(t *testing.T) {
	f := newFixture()
	sunday := mondayDate.AddDate(0, 0, 6)

	slots, err := f.slotsUC().Execute(context.Background(), AvailableSlotsInput{
		Date:      sunday,
		ServiceID: f.serviceID,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlotsPastDateRejected(t *testing.T) {
	f := newFixture()

	_, err := f.slotsUC().Execute(context.Background(), AvailableSlotsInput{
		Date:      testNow.AddDate(0, 0, -1),
		ServiceID: f.serviceID,
	})
	assertBusiness(t, err, httperr.CodePastDate)
}

func TestAvailableSlotsInactiveServiceRejected(t *testing.T) {
	f := newFixture()
	f.repo.services[f.serviceID].Active = false

	_, err := f.slotsUC().Execute(context.Background(), AvailableSlotsInput{
		Date:      mondayDate,
		ServiceID: f.serviceID,
	})
	assertBusiness(t, err, "service_not_found")
}

func TestAvailableSlotsIdempotent(t *testing.T) {
	f := newFixture()
	f.book(t, "2026-09-07", "14:00")

	in := AvailableSlotsInput{Date: mondayDate, ServiceID: f.serviceID}

	first, err := f.slotsUC().Execute(context.Background(), in)
	require.NoError(t, err)
	second, err := f.slotsUC().Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// ======================================================
// CREATE
// ======================================================

func TestCreateAppointmentHappyPath(t *testing.T) {
	f := newFixture()

	ap := f.book(t, "2026-09-07", "10:00")

	assert.Equal(t, "pending", ap.Status)
	assert.Equal(t, 55.0, ap.TotalPrice)
	assert.Equal(t, "10:00", ap.StartTime.Format("15:04"))
	assert.Equal(t, "11:00", ap.EndTime.Format("15:04"))
	assert.True(t, ap.Date.Equal(mondayDate))
}

func TestCreateAppointmentRejectsPastStart(t *testing.T) {
	f := newFixture()

	_, err := f.createUC().Execute(context.Background(), CreateAppointmentInput{
		CustomerID: f.customerID,
		PetID:      f.petID,
		ServiceID:  f.serviceID,
		Date:       "2026-08-31",
		Time:       "10:00",
	})
	assertBusiness(t, err, httperr.CodePastDate)
}

func TestCreateAppointmentRejectsHoliday(t *testing.T) {
	f := newFixture()
	f.repo.holidays["2026-09-07"] = true

	_, err := f.createUC().Execute(context.Background(), CreateAppointmentInput{
		CustomerID: f.customerID,
		PetID:      f.petID,
		ServiceID:  f.serviceID,
		Date:       "2026-09-07",
		Time:       "10:00",
	})
	assertBusiness(t, err, httperr.CodeClosedDate)
}

func TestCreateAppointmentRejectsOutsideHours(t *testing.T) {
	f := newFixture()

	// A 60 minute service starting at 16:30 would run past close.
	_, err := f.createUC().Execute(context.Background(), CreateAppointmentInput{
		CustomerID: f.customerID,
		PetID:      f.petID,
		ServiceID:  f.serviceID,
		Date:       "2026-09-07",
		Time:       "16:30",
	})
	assertBusiness(t, err, httperr.CodeOutsideHours)
}

func TestCreateAppointmentRejectsForeignPet(t *testing.T) {
	f := newFixture()
	f.repo.pets[f.petID].OwnerID = uuid.New()

	_, err := f.createUC().Execute(context.Background(), CreateAppointmentInput{
		CustomerID: f.customerID,
		PetID:      f.petID,
		ServiceID:  f.serviceID,
		Date:       "2026-09-07",
		Time:       "10:00",
	})
	assertBusiness(t, err, httperr.CodePetOwnership)
}

func TestCreateAppointmentRejectsMissingPrice(t *testing.T) {
	f := newFixture()
	f.repo.pets[f.petID].Size = models.SizeLarge

	_, err := f.createUC().Execute(context.Background(), CreateAppointmentInput{
		CustomerID: f.customerID,
		PetID:      f.petID,
		ServiceID:  f.serviceID,
		Date:       "2026-09-07",
		Time:       "10:00",
	})
	assertBusiness(t, err, httperr.CodePriceNotConfigured)
}

func TestCreateAppointmentRejectsOverlap(t *testing.T) {
	f := newFixture()
	f.book(t, "2026-09-07", "10:00")

	_, err := f.createUC().Execute(context.Background(), CreateAppointmentInput{
		CustomerID: f.customerID,
		PetID:      f.petID,
		ServiceID:  f.serviceID,
		Date:       "2026-09-07",
		Time:       "10:30",
	})
	assertBusiness(t, err, httperr.CodeSlotConflict)
}

func TestCreateAppointmentBackToBackAllowed(t *testing.T) {
	f := newFixture()
	f.book(t, "2026-09-07", "10:00")

	// [10:00,11:00) and [11:00,12:00) share only a boundary.
	ap := f.book(t, "2026-09-07", "11:00")
	assert.Equal(t, "11:00", ap.StartTime.Format("15:04"))
}

func TestCreateAppointmentAfterCancellationReusesSlot(t *testing.T) {
	f := newFixture()
	ap := f.book(t, "2026-09-07", "10:00")

	actor := domain.Actor{ID: f.customerID}
	_, _, err := f.cancelUC().Execute(context.Background(), actor, ap.ID)
	require.NoError(t, err)

	again := f.book(t, "2026-09-07", "10:00")
	assert.NotEqual(t, ap.ID, again.ID)
}

// ======================================================
// LIFECYCLE
// ======================================================

func TestConfirmLeavesStaffNote(t *testing.T) {
	f := newFixture()
	ap := f.book(t, "2026-09-07", "10:00")

	staff := domain.Actor{ID: uuid.New(), IsStaff: true}
	confirmed, err := f.confirmUC().Execute(context.Background(), staff, ap.ID)
	require.NoError(t, err)

	assert.Equal(t, "confirmed", confirmed.Status)
	require.Len(t, f.repo.notes, 1)
	assert.True(t, f.repo.notes[0].StaffAuthored)
	assert.Equal(t, "Appointment confirmed", f.repo.notes[0].Note)
}

func TestConfirmSurvivesNoteWriteFailure(t *testing.T) {
	f := newFixture()
	ap := f.book(t, "2026-09-07", "10:00")
	f.repo.noteErr = errors.New("notes table unavailable")

	staff := domain.Actor{ID: uuid.New(), IsStaff: true}
	confirmed, err := f.confirmUC().Execute(context.Background(), staff, ap.ID)
	require.NoError(t, err)

	assert.Equal(t, "confirmed", confirmed.Status)
	assert.Empty(t, f.repo.notes)
}

func TestConfirmRejectsCustomer(t *testing.T) {
	f := newFixture()
	ap := f.book(t, "2026-09-07", "10:00")

	customer := domain.Actor{ID: f.customerID}
	_, err := f.confirmUC().Execute(context.Background(), customer, ap.ID)
	assertBusiness(t, err, httperr.CodeForbidden)
}

func TestCompleteRequiresConfirmedStatus(t *testing.T) {
	f := newFixture()
	ap := f.book(t, "2026-09-07", "10:00")

	staff := domain.Actor{ID: uuid.New(), IsStaff: true}
	_, err := f.completeUC().Execute(context.Background(), staff, ap.ID)
	assertBusiness(t, err, httperr.CodeInvalidTransition)

	_, err = f.confirmUC().Execute(context.Background(), staff, ap.ID)
	require.NoError(t, err)

	completed, err := f.completeUC().Execute(context.Background(), staff, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", completed.Status)
}

// ======================================================
// CANCEL
// ======================================================

func TestCancelWithAmpleNoticeHasNoWarning(t *testing.T) {
	f := newFixture()
	ap := f.book(t, "2026-09-07", "10:00")

	actor := domain.Actor{ID: f.customerID}
	cancelled, warning, err := f.cancelUC().Execute(context.Background(), actor, ap.ID)
	require.NoError(t, err)

	assert.Equal(t, "cancelled", cancelled.Status)
	assert.Empty(t, warning)
	assert.Empty(t, f.repo.notes)
}

func TestCancelLateRecordsWarningNote(t *testing.T) {
	f := newFixture()
	// Tomorrow 10:00 is within the 24h notice window of the fixed
	// Tuesday noon clock.
	ap := f.book(t, "2026-09-02", "10:00")

	actor := domain.Actor{ID: f.customerID}
	_, warning, err := f.cancelUC().Execute(context.Background(), actor, ap.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.WarnLateCancellation, warning)
	require.Len(t, f.repo.notes, 1)
	assert.False(t, f.repo.notes[0].StaffAuthored)
}

func TestCancelLateSurvivesNoteWriteFailure(t *testing.T) {
	f := newFixture()
	ap := f.book(t, "2026-09-02", "10:00")
	f.repo.noteErr = errors.New("notes table unavailable")

	actor := domain.Actor{ID: f.customerID}
	cancelled, warning, err := f.cancelUC().Execute(context.Background(), actor, ap.ID)
	require.NoError(t, err)

	assert.Equal(t, "cancelled", cancelled.Status)
	assert.Equal(t, domain.WarnLateCancellation, warning)
}

func TestCancelByStrangerForbidden(t *testing.T) {
	f := newFixture()
	ap := f.book(t, "2026-09-07", "10:00")

	stranger := domain.Actor{ID: uuid.New()}
	_, _, err := f.cancelUC().Execute(context.Background(), stranger, ap.ID)
	assertBusiness(t, err, httperr.CodeForbidden)
}

// ======================================================
// LIST
// ======================================================

func TestListPinsCustomersToOwnBookings(t *testing.T) {
	f := newFixture()
	f.book(t, "2026-09-07", "10:00")

	otherCustomer := uuid.New()
	otherPet := uuid.New()
	f.repo.pets[otherPet] = &models.Pet{ID: otherPet, OwnerID: otherCustomer, Size: models.SizeMedium}

	_, err := f.createUC().Execute(context.Background(), CreateAppointmentInput{
		CustomerID: otherCustomer,
		PetID:      otherPet,
		ServiceID:  f.serviceID,
		Date:       "2026-09-07",
		Time:       "13:00",
	})
	require.NoError(t, err)

	listUC := NewListAppointments(f.repo)

	mine, err := listUC.Execute(context.Background(), domain.Actor{ID: f.customerID}, domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, f.customerID, mine[0].CustomerID)

	all, err := listUC.Execute(context.Background(), domain.Actor{ID: uuid.New(), IsStaff: true}, domain.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
