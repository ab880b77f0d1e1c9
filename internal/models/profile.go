package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BiometricProfile holds the measurements and goal selection the target
// calculator runs on. One row per user, mutated only by explicit
// profile edits.
type BiometricProfile struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Gender            string         `gorm:"size:10;not null" json:"gender"`
	Age               int            `gorm:"not null" json:"age"`
	HeightCM          float64        `gorm:"not null" json:"height_cm"`
	WeightKG          float64        `gorm:"not null" json:"weight_kg"`
	ActivityLevel     string         `gorm:"size:20;not null" json:"activity_level"`
	Goal              string         `gorm:"size:20;not null;default:'maintain'" json:"goal"`
	BodyFatPercentage float64        `json:"body_fat_percentage,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (BiometricProfile) TableName() string {
	return "biometric_profiles"
}

func (p *BiometricProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// MacroTarget is a user-set daily target. When present it overrides
// the calculated one; the service layer warns (never rejects) when its
// calories diverge from the 4/4/9 macro identity.
type MacroTarget struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Protein   float64   `gorm:"not null" json:"protein"`
	Fats      float64   `gorm:"not null" json:"fats"`
	Carbs     float64   `gorm:"not null" json:"carbs"`
	Calories  float64   `gorm:"not null" json:"calories"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (MacroTarget) TableName() string {
	return "macro_targets"
}

func (t *MacroTarget) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
