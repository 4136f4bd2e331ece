package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pawpoint/grooming-scheduler/internal/models"
)

type ListFilter struct {
	CustomerID *uuid.UUID
	Date       *time.Time
	Status     string
}

type Repository interface {
	// -------- Catalog --------
	GetService(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Service, error)

	// GetServicePrice returns (nil, nil) when no price is configured
	// for the (service, dog size) pair.
	GetServicePrice(
		ctx context.Context,
		serviceID uuid.UUID,
		dogSize string,
	) (*models.ServicePrice, error)

	// -------- Pet --------
	GetPet(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Pet, error)

	// -------- Calendar --------
	// GetBusinessHours returns (nil, nil) when no row exists for the
	// weekday.
	GetBusinessHours(
		ctx context.Context,
		weekday int,
	) (*models.BusinessHours, error)

	IsHoliday(
		ctx context.Context,
		date time.Time,
	) (bool, error)

	// -------- Booking ledger --------
	ListActiveForDay(
		ctx context.Context,
		date time.Time,
		exclude *uuid.UUID,
	) ([]models.Appointment, error)

	HasConflict(
		ctx context.Context,
		date time.Time,
		start time.Time,
		end time.Time,
		exclude *uuid.UUID,
	) (bool, error)

	// -------- Appointment lifecycle --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointments(
		ctx context.Context,
		f ListFilter,
	) ([]models.Appointment, error)

	// -------- Notes --------
	CreateNote(
		ctx context.Context,
		note *models.AppointmentNote,
	) error
}
