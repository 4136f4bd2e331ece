package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer   Customer  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	PetID uuid.UUID `gorm:"type:uuid;not null;index" json:"pet_id"`
	Pet   Pet       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"pet"`

	// Services cannot be removed while appointments reference them.
	ServiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"service_id"`
	Service   Service   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	Date      time.Time `gorm:"type:date;not null;index" json:"date"`
	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Status     string  `gorm:"size:10;default:'pending'" json:"status"`
	TotalPrice float64 `gorm:"not null" json:"total_price"`

	Notes []AppointmentNote `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"notes,omitempty"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AppointmentNote is a free-text annotation on an appointment, written
// either by staff or by the owning customer. Ordered newest-first.
type AppointmentNote struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	AppointmentID uuid.UUID   `gorm:"type:uuid;not null;index" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	AuthorID uuid.UUID `gorm:"type:uuid;not null" json:"author_id"`
	Author   Customer  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	StaffAuthored bool   `gorm:"not null" json:"staff_authored"`
	Note          string `gorm:"type:text;not null" json:"note"`

	CreatedAt time.Time `json:"created_at"`
}

func (n *AppointmentNote) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
