package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/pawpoint/grooming-scheduler/internal/domain/appointment"
	"github.com/pawpoint/grooming-scheduler/internal/httperr"
	"github.com/pawpoint/grooming-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uuid.UUID,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetServicePrice(
	ctx context.Context,
	serviceID uuid.UUID,
	dogSize string,
) (*models.ServicePrice, error) {

	var price models.ServicePrice
	err := r.db.WithContext(ctx).
		Where("service_id = ? AND dog_size = ?", serviceID, dogSize).
		First(&price).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &price, nil
}

// --------------------------------------------------
// Pet
// --------------------------------------------------

func (r *AppointmentGormRepository) GetPet(
	ctx context.Context,
	id uuid.UUID,
) (*models.Pet, error) {

	var pet models.Pet
	if err := r.db.WithContext(ctx).First(&pet, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pet, nil
}

// --------------------------------------------------
// Calendar
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBusinessHours(
	ctx context.Context,
	weekday int,
) (*models.BusinessHours, error) {

	var hours models.BusinessHours
	err := r.db.WithContext(ctx).
		Where("weekday = ?", weekday).
		First(&hours).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &hours, nil
}

func (r *AppointmentGormRepository) IsHoliday(
	ctx context.Context,
	date time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Holiday{}).
		Where("start_date <= ? AND end_date >= ?", date, date).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Booking ledger
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveForDay(
	ctx context.Context,
	date time.Time,
	exclude *uuid.UUID,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time", "status").
		Where(
			"date = ? AND status IN ?",
			date,
			[]string{string(domain.StatusPending), string(domain.StatusConfirmed)},
		)

	if exclude != nil {
		q = q.Where("id <> ?", *exclude)
	}

	var aps []models.Appointment
	if err := q.Order("start_time ASC").Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// overlapScope narrows to active appointments whose half-open window
// intersects [start, end) on the given date.
func overlapScope(tx *gorm.DB, date, start, end time.Time) *gorm.DB {
	return tx.
		Model(&models.Appointment{}).
		Where(
			"date = ? AND status IN ? AND start_time < ? AND end_time > ?",
			date,
			[]string{string(domain.StatusPending), string(domain.StatusConfirmed)},
			end,
			start,
		)
}

func (r *AppointmentGormRepository) HasConflict(
	ctx context.Context,
	date time.Time,
	start time.Time,
	end time.Time,
	exclude *uuid.UUID,
) (bool, error) {

	q := overlapScope(r.db.WithContext(ctx), date, start, end)

	if exclude != nil {
		q = q.Where("id <> ?", *exclude)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Appointment lifecycle
// --------------------------------------------------

// CreateAppointment re-checks for overlaps under a row lock and inserts
// in one transaction. The partial unique index on
// (date, start_time, end_time) catches the race two validated requests
// can still lose; its violation is remapped to the slot-conflict
// rejection instead of leaking as a generic failure.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Postgres refuses FOR UPDATE on an aggregate, so lock the
		// blocking rows themselves and count them here.
		var blockers []models.Appointment
		if err := overlapScope(tx, ap.Date, ap.StartTime, ap.EndTime).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Find(&blockers).Error; err != nil {
			return err
		}

		if len(blockers) > 0 {
			return httperr.ErrBusiness(httperr.CodeSlotConflict)
		}

		return tx.Create(ap).Error
	})

	return remapCreateError(err)
}

// remapCreateError converts the partial-unique-index violation raised
// by a racing insert into the slot-conflict rejection; anything else
// passes through untouched.
func remapCreateError(err error) error {
	if err != nil && httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness(httperr.CodeSlotConflict)
	}
	return err
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Pet").
		Preload("Service").
		Preload("Notes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&ap, "id = ?", id).Error

	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Pet").
		Preload("Service")

	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}
	if f.Date != nil {
		q = q.Where("date = ?", *f.Date)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var aps []models.Appointment
	if err := q.
		Order("date DESC, start_time DESC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// --------------------------------------------------
// Notes
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateNote(
	ctx context.Context,
	note *models.AppointmentNote,
) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
