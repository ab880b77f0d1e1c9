package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WaterEntry is one logged drink.
type WaterEntry struct {
	AmountML int       `json:"amount_ml"`
	LoggedAt time.Time `json:"logged_at"`
	Source   string    `json:"source"`
}

// JSONBWaterEntries stores the ordered entry list as JSONB.
type JSONBWaterEntries []WaterEntry

// Value implements the driver.Valuer interface.
func (e JSONBWaterEntries) Value() (driver.Value, error) {
	if len(e) == 0 {
		return "[]", nil
	}
	return json.Marshal(e)
}

// Scan implements the sql.Scanner interface.
func (e *JSONBWaterEntries) Scan(value interface{}) error {
	if value == nil {
		*e = JSONBWaterEntries{}
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

	return json.Unmarshal(bytes, e)
}

// WaterIntakeRecord is the per-(user, date) running water total.
// TotalAmountML is only ever changed through an atomic SQL increment
// (see WaterService.AddEntry) so concurrent writers cannot lose
// updates.
type WaterIntakeRecord struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID         `gorm:"type:uuid;not null;index:idx_water_day,unique" json:"user_id"`
	Date           string            `gorm:"size:10;not null;index:idx_water_day,unique" json:"date"`
	TotalAmountML  int               `gorm:"not null;default:0" json:"total_amount_ml"`
	TargetAmountML int               `gorm:"not null;default:2000" json:"target_amount_ml"`
	Entries        JSONBWaterEntries `gorm:"type:jsonb;not null;default:'[]'" json:"entries"`
	GoalAchieved   bool              `gorm:"not null;default:false" json:"goal_achieved"`
	StreakCount    int               `gorm:"not null;default:0" json:"streak_count"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func (WaterIntakeRecord) TableName() string {
	return "water_intake_records"
}

func (w *WaterIntakeRecord) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
