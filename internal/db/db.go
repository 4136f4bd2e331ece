package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pawpoint/grooming-scheduler/internal/config"
	"github.com/pawpoint/grooming-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Pet{},
		&models.PetHealthRecord{},
		&models.Service{},
		&models.ServicePrice{},
		&models.BusinessHours{},
		&models.Holiday{},
		&models.Appointment{},
		&models.AppointmentNote{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Final arbiter for concurrent bookings: cancelled rows never block
	// a time window, everything else must be unique per window.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS uniq_appointment_time
        ON appointments (date, start_time, end_time)
        WHERE status <> 'cancelled'
    `)

	return db
}
