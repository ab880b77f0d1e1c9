package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutritrack/backend/internal/nutrition"
)

// JSONBFoodSelections stores a slot's food selections as JSONB.
type JSONBFoodSelections []nutrition.FoodSelection

// Value implements the driver.Valuer interface.
func (s JSONBFoodSelections) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Scan implements the sql.Scanner interface.
func (s *JSONBFoodSelections) Scan(value interface{}) error {
	if value == nil {
		*s = JSONBFoodSelections{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, s)
}

// MealSlotLog is one time-slot of one calendar day: the selected foods
// plus manually entered external nutrition. Date is a local calendar
// date (YYYY-MM-DD), never a UTC instant, so late-evening logging does
// not shift days. Keyed uniquely by (user, date, slot) for idempotent
// overwrite.
type MealSlotLog struct {
	ID               uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID           `gorm:"type:uuid;not null;index:idx_meal_slot,unique" json:"user_id"`
	Date             string              `gorm:"size:10;not null;index:idx_meal_slot,unique" json:"date"`
	SlotID           string              `gorm:"size:50;not null;index:idx_meal_slot,unique" json:"slot_id"`
	SelectedFoods    JSONBFoodSelections `gorm:"type:jsonb;not null;default:'[]'" json:"selected_foods"`
	ExternalProtein  float64             `json:"external_protein"`
	ExternalFats     float64             `json:"external_fats"`
	ExternalCarbs    float64             `json:"external_carbs"`
	ExternalCalories float64             `json:"external_calories"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

func (MealSlotLog) TableName() string {
	return "meal_slot_logs"
}

func (m *MealSlotLog) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// External returns the slot's external nutrition as a macro set.
func (m *MealSlotLog) External() nutrition.Macros {
	return nutrition.Macros{
		Protein:  m.ExternalProtein,
		Fats:     m.ExternalFats,
		Carbs:    m.ExternalCarbs,
		Calories: m.ExternalCalories,
	}
}
