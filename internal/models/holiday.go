package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Holiday is an inclusive date range during which the shop is fully
// closed, regardless of the weekday business hours.
type Holiday struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name        string    `gorm:"size:100;not null" json:"name"`
	StartDate   time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate     time.Time `gorm:"type:date;not null" json:"end_date"`
	Description string    `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (h *Holiday) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
