package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testCatalog() Catalog {
	return Catalog{
		"chicken breast": {
			PerQuantity:     Macros{Protein: 31, Fats: 3.6, Carbs: 0, Calories: 165},
			CostPerQuantity: 1.20,
		},
		"rice": {
			PerQuantity:     Macros{Protein: 2.7, Fats: 0.3, Carbs: 28, Calories: 130},
			CostPerQuantity: 0.40,
		},
		"egg": {
			PerQuantity:     Macros{Protein: 6, Fats: 5, Carbs: 0.6, Calories: 78},
			CostPerQuantity: 0.50,
			IsUnitFood:      true,
		},
	}
}

func TestSelectionMacrosPer100g(t *testing.T) {
	got := SelectionMacros(testCatalog(), FoodSelection{Name: "chicken breast", Quantity: 200})
	assert.InDelta(t, 62, got.Protein, 0.001)
	assert.InDelta(t, 7.2, got.Fats, 0.001)
	assert.InDelta(t, 330, got.Calories, 0.001)
}

func TestSelectionMacrosUnitFood(t *testing.T) {
	got := SelectionMacros(testCatalog(), FoodSelection{Name: "egg", Quantity: 3})
	assert.InDelta(t, 18, got.Protein, 0.001)
	assert.InDelta(t, 234, got.Calories, 0.001)
}

func TestSelectionMacrosUnknownFoodIsZero(t *testing.T) {
	got := SelectionMacros(testCatalog(), FoodSelection{Name: "unicorn steak", Quantity: 500})
	assert.Equal(t, Macros{}, got)
}

func TestSlotMacrosIncludesClampedExternal(t *testing.T) {
	slot := MealSlot{
		Selections: []FoodSelection{{Name: "egg", Quantity: 2}},
		External:   Macros{Protein: 10, Fats: -5, Carbs: 20, Calories: 180},
	}
	got := SlotMacros(testCatalog(), slot)
	assert.InDelta(t, 22, got.Protein, 0.001)
	// Negative external fats are clamped, only the eggs contribute.
	assert.InDelta(t, 10, got.Fats, 0.001)
	assert.InDelta(t, 336, got.Calories, 0.001)
}

func TestAggregationIsCommutativeAndAssociative(t *testing.T) {
	catalog := testCatalog()
	a := FoodSelection{Name: "chicken breast", Quantity: 150}
	b := FoodSelection{Name: "rice", Quantity: 250}
	c := FoodSelection{Name: "egg", Quantity: 2}

	direct := SlotMacros(catalog, MealSlot{Selections: []FoodSelection{a, b, c}})
	split := CombineMacros(
		SlotMacros(catalog, MealSlot{Selections: []FoodSelection{a, b}}),
		SlotMacros(catalog, MealSlot{Selections: []FoodSelection{c}}),
	)
	reordered := SlotMacros(catalog, MealSlot{Selections: []FoodSelection{c, a, b}})

	assert.InDelta(t, direct.Calories, split.Calories, 0.0001)
	assert.InDelta(t, direct.Protein, split.Protein, 0.0001)
	assert.InDelta(t, direct.Calories, reordered.Calories, 0.0001)
}

func TestDayMacrosSumsSlots(t *testing.T) {
	catalog := testCatalog()
	slots := map[string]MealSlot{
		"8am": {Selections: []FoodSelection{{Name: "egg", Quantity: 2}}},
		"6pm": {Selections: []FoodSelection{{Name: "rice", Quantity: 100}}},
	}
	got := DayMacros(catalog, slots)
	assert.InDelta(t, 286, got.Calories, 0.001)
}

func TestSlotCostUnitAndWeightRates(t *testing.T) {
	catalog := testCatalog()

	// Unit food: 3 eggs at 0.50 each.
	eggs := SlotCost(catalog, []FoodSelection{{Name: "egg", Quantity: 3}})
	assert.InDelta(t, 1.50, eggs.IndividualCosts["egg"], 0.0001)
	assert.InDelta(t, 1.50, eggs.TotalCost, 0.0001)

	// Weight food: 250 g of rice at 0.40 per 100 g.
	rice := SlotCost(catalog, []FoodSelection{{Name: "rice", Quantity: 250}})
	assert.InDelta(t, 1.00, rice.IndividualCosts["rice"], 0.0001)
}

func TestSlotCostDuplicateFoodAccumulates(t *testing.T) {
	got := SlotCost(testCatalog(), []FoodSelection{
		{Name: "egg", Quantity: 2},
		{Name: "egg", Quantity: 1},
	})
	assert.InDelta(t, 1.50, got.IndividualCosts["egg"], 0.0001)
	assert.InDelta(t, 1.50, got.TotalCost, 0.0001)
}

func TestSlotCostUnknownFoodIsZero(t *testing.T) {
	got := SlotCost(testCatalog(), []FoodSelection{{Name: "unicorn steak", Quantity: 100}})
	assert.Zero(t, got.IndividualCosts["unicorn steak"])
	assert.Zero(t, got.TotalCost)
}

func TestDayCost(t *testing.T) {
	slots := map[string]MealSlot{
		"8am": {Selections: []FoodSelection{{Name: "egg", Quantity: 3}}},
		"6pm": {Selections: []FoodSelection{{Name: "rice", Quantity: 250}}},
	}
	assert.InDelta(t, 2.50, DayCost(testCatalog(), slots), 0.0001)
}
