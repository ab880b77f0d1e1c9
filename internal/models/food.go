package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// FoodCatalogEntry is the nutrition/cost reference for one food. Values
// are per discrete unit when IsUnitFood is set, per 100 g otherwise.
// Name is normalized by the catalog service and unique per user.
type FoodCatalogEntry struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index:idx_catalog_user_name,unique" json:"user_id"`
	Name            string         `gorm:"size:255;not null;index:idx_catalog_user_name,unique" json:"name"`
	Protein         float64        `gorm:"not null" json:"protein"`
	Fats            float64        `gorm:"not null" json:"fats"`
	Carbs           float64        `gorm:"not null" json:"carbs"`
	Calories        float64        `gorm:"not null" json:"calories"`
	CostPerQuantity float64        `json:"cost_per_quantity"`
	IsUnitFood      bool           `gorm:"not null;default:false" json:"is_unit_food"`
	Tags            pq.StringArray `gorm:"type:text[]" json:"tags"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (FoodCatalogEntry) TableName() string {
	return "food_catalog_entries"
}

func (e *FoodCatalogEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
