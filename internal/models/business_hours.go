package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BusinessHours holds one row per ISO weekday (1=Monday .. 7=Sunday).
// Times are stored as "15:04" strings in the business timezone.
type BusinessHours struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Weekday   int    `gorm:"uniqueIndex;not null" json:"weekday"`
	OpenTime  string `gorm:"size:5" json:"open_time"`
	CloseTime string `gorm:"size:5" json:"close_time"`
	IsOpen    bool   `gorm:"default:true" json:"is_open"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *BusinessHours) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
