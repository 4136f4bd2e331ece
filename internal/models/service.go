package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	DurationMin int    `gorm:"not null" json:"duration_min"`
	ImageURL    string `gorm:"size:500" json:"image_url"`
	Active      bool   `gorm:"default:true" json:"active"`

	Prices []ServicePrice `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"prices,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// One price row per (service, dog size).
type ServicePrice struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ServiceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_service_size" json:"service_id"`
	DogSize   string    `gorm:"size:10;not null;uniqueIndex:uniq_service_size" json:"dog_size"`
	Price     float64   `gorm:"not null" json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *ServicePrice) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
