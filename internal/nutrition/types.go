// Package nutrition implements the calculation and aggregation core of
// the tracker: calorie/macro target derivation, meal and cost
// aggregation, streak computation, and history grids. Every function in
// this package is a pure transformation over in-memory snapshots; all
// I/O, validation, and logging belong to the calling service layer.
package nutrition

import "time"

// DateLayout is the local calendar-date format used for all day-keyed
// lookups. Dates are local calendar days, not UTC instants, so a meal
// logged at 23:30 never shifts to the next day.
const DateLayout = "2006-01-02"

// Macros holds a nutrition value set. Protein, fats and carbs are in
// grams, calories in kcal. The same shape is used for per-entry
// nutrition, slot totals, daily totals and user-set targets.
type Macros struct {
	Protein  float64 `json:"protein"`
	Fats     float64 `json:"fats"`
	Carbs    float64 `json:"carbs"`
	Calories float64 `json:"calories"`
}

// Add returns the field-wise sum of m and other.
func (m Macros) Add(other Macros) Macros {
	return Macros{
		Protein:  m.Protein + other.Protein,
		Fats:     m.Fats + other.Fats,
		Carbs:    m.Carbs + other.Carbs,
		Calories: m.Calories + other.Calories,
	}
}

// Scale returns m with every field multiplied by factor.
func (m Macros) Scale(factor float64) Macros {
	return Macros{
		Protein:  m.Protein * factor,
		Fats:     m.Fats * factor,
		Carbs:    m.Carbs * factor,
		Calories: m.Calories * factor,
	}
}

// Clamped returns m with every negative field raised to zero.
// Manually entered external nutrition comes through here.
func (m Macros) Clamped() Macros {
	clamp := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		return v
	}
	return Macros{
		Protein:  clamp(m.Protein),
		Fats:     clamp(m.Fats),
		Carbs:    clamp(m.Carbs),
		Calories: clamp(m.Calories),
	}
}

// CatalogEntry is the nutrition/cost reference for one food. When
// IsUnitFood is true the values are per discrete item (one egg),
// otherwise per 100 g.
type CatalogEntry struct {
	PerQuantity     Macros
	CostPerQuantity float64
	IsUnitFood      bool
}

// Catalog maps food names to their reference entries.
type Catalog map[string]CatalogEntry

// FoodSelection references a catalog entry by name with a quantity:
// grams for weight-based foods, item count for unit foods.
type FoodSelection struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

// quantityMultiplier converts a selection quantity into a multiplier
// against the entry's reference quantity.
func quantityMultiplier(entry CatalogEntry, quantity float64) float64 {
	if entry.IsUnitFood {
		return quantity
	}
	return quantity / 100
}

func formatDate(t time.Time) string {
	return t.Format(DateLayout)
}
