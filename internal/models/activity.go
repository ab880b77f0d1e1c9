package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityHistoryRecord is one (user, date, activity type) completion
// row. Completed is an explicit toggle set by the caller, never derived
// from logged foods. Rows are overwritten on later updates to the same
// key and never deleted.
type ActivityHistoryRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index:idx_activity_day,unique" json:"user_id"`
	Date         string    `gorm:"size:10;not null;index:idx_activity_day,unique" json:"date"`
	ActivityType string    `gorm:"size:50;not null;index:idx_activity_day,unique" json:"activity_type"`
	Completed    bool      `gorm:"not null;default:false" json:"completed"`
	Value        float64   `json:"value"`
	MaxValue     float64   `gorm:"default:1" json:"max_value"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (ActivityHistoryRecord) TableName() string {
	return "activity_history_records"
}

func (a *ActivityHistoryRecord) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
