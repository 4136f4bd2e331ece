package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ===============================
// Dog size
// ===============================

const (
	SizeSmall  = "small"  // up to 8kg
	SizeMedium = "medium" // up to 15kg
	SizeLarge  = "large"
)

// SizeForWeight is the canonical size derivation. The result is
// materialized into Pet.Size on every save so that pricing and
// historical rows read a single stored value.
func SizeForWeight(weightKg float64) string {
	switch {
	case weightKg <= 8:
		return SizeSmall
	case weightKg <= 15:
		return SizeMedium
	default:
		return SizeLarge
	}
}

type Pet struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner   Customer  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name         string     `gorm:"size:50;not null" json:"name"`
	Breed        string     `gorm:"size:50" json:"breed"`
	WeightKg     float64    `gorm:"not null" json:"weight_kg"`
	Size         string     `gorm:"size:10;not null" json:"size"`
	Birthday     *time.Time `gorm:"type:date" json:"birthday"`
	Gender       string     `gorm:"size:1" json:"gender"`
	IsSterilized bool       `gorm:"default:false" json:"is_sterilized"`
	Notes        string     `gorm:"type:text" json:"notes"`
	PhotoURL     string     `gorm:"size:500" json:"photo_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Pet) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeSave keeps the stored size in sync with the weight.
func (p *Pet) BeforeSave(tx *gorm.DB) error {
	p.Size = SizeForWeight(p.WeightKg)
	return nil
}

type PetHealthRecord struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	PetID uuid.UUID `gorm:"type:uuid;not null;index" json:"pet_id"`
	Pet   Pet       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Date        time.Time `gorm:"type:date;not null" json:"date"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *PetHealthRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
