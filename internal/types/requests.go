package types

import (
	"github.com/nutritrack/backend/internal/nutrition"
)

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents the request body for updating the
// biometric profile. All biometric values are validated here, before
// the calculator (which performs no validation of its own) ever runs.
type UpdateProfileRequest struct {
	Gender            string   `json:"gender" binding:"required,oneof=male female"`
	Age               int      `json:"age" binding:"required,gt=0"`
	HeightCM          float64  `json:"height_cm" binding:"required,gt=0"`
	WeightKG          float64  `json:"weight_kg" binding:"required,gt=0"`
	ActivityLevel     string   `json:"activity_level" binding:"required,oneof=sedentary light moderate active very_active"`
	Goal              string   `json:"goal"`
	BodyFatPercentage *float64 `json:"body_fat_percentage" binding:"omitempty,gte=0,lte=100"`
}

// SetTargetsRequest represents a user-set macro target.
type SetTargetsRequest struct {
	Protein  float64 `json:"protein" binding:"gte=0"`
	Fats     float64 `json:"fats" binding:"gte=0"`
	Carbs    float64 `json:"carbs" binding:"gte=0"`
	Calories float64 `json:"calories" binding:"gte=0"`
}

// SetTargetsResponse echoes the stored target plus a consistency
// warning when calories diverge from the 4/4/9 macro identity.
type SetTargetsResponse struct {
	Protein  float64 `json:"protein"`
	Fats     float64 `json:"fats"`
	Carbs    float64 `json:"carbs"`
	Calories float64 `json:"calories"`
	Warning  string  `json:"warning,omitempty"`
}

// CreateFoodRequest represents a food catalog entry create/update body.
type CreateFoodRequest struct {
	Name            string   `json:"name" binding:"required,max=255"`
	Protein         float64  `json:"protein" binding:"gte=0"`
	Fats            float64  `json:"fats" binding:"gte=0"`
	Carbs           float64  `json:"carbs" binding:"gte=0"`
	Calories        float64  `json:"calories" binding:"gte=0"`
	CostPerQuantity float64  `json:"cost_per_quantity" binding:"gte=0"`
	IsUnitFood      bool     `json:"is_unit_food"`
	Tags            []string `json:"tags"`
}

// UpdateSlotRequest replaces one time-slot's selections and external
// nutrition.
type UpdateSlotRequest struct {
	SelectedFoods []nutrition.FoodSelection `json:"selected_foods"`
	External      nutrition.Macros          `json:"external"`
}

// SlotSummary is one time-slot with its derived totals.
type SlotSummary struct {
	SlotID        string                    `json:"slot_id"`
	SelectedFoods []nutrition.FoodSelection `json:"selected_foods"`
	External      nutrition.Macros          `json:"external"`
	Totals        nutrition.Macros          `json:"totals"`
	Cost          nutrition.CostBreakdown   `json:"cost"`
}

// DaySummary is a full day: every slot plus daily totals.
type DaySummary struct {
	Date      string           `json:"date"`
	Slots     []SlotSummary    `json:"slots"`
	Totals    nutrition.Macros `json:"totals"`
	TotalCost float64          `json:"total_cost"`
}

// RangeSummary is a field-wise sum over a date range.
type RangeSummary struct {
	FromDate string           `json:"from_date"`
	ToDate   string           `json:"to_date"`
	Days     []DaySummary     `json:"days"`
	Totals   nutrition.Macros `json:"totals"`
}

// UpdateActivityRequest sets the explicit completion toggle for one
// (date, activity type) pair.
type UpdateActivityRequest struct {
	Completed bool    `json:"completed"`
	Value     float64 `json:"value" binding:"gte=0"`
	MaxValue  float64 `json:"max_value" binding:"gte=0"`
}

// StreakResponse reports current and longest streaks for an activity.
type StreakResponse struct {
	ActivityType  string `json:"activity_type"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	Truncated     bool   `json:"truncated"`
}

// AddWaterRequest logs one drink.
type AddWaterRequest struct {
	AmountML int    `json:"amount_ml" binding:"required,gt=0"`
	Source   string `json:"source"`
}

// SetWaterTargetRequest sets the daily water target.
type SetWaterTargetRequest struct {
	TargetAmountML int `json:"target_amount_ml" binding:"required,gt=0"`
}

// DashboardStats is the landing-page snapshot: today's intake against
// targets, water status, and activity streaks.
type DashboardStats struct {
	Date          string                     `json:"date"`
	Totals        nutrition.Macros           `json:"totals"`
	Targets       nutrition.CalculatedMacros `json:"targets"`
	WaterTotalML  int                        `json:"water_total_ml"`
	WaterTargetML int                        `json:"water_target_ml"`
	WaterStreak   int                        `json:"water_streak"`
	Streaks       []StreakResponse           `json:"streaks"`
}
