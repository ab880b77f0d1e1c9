package nutrition

// MealSlot holds the food selections and manually entered external
// nutrition for one named time-slot of a day.
type MealSlot struct {
	Selections []FoodSelection
	External   Macros
}

// SelectionMacros returns the nutrition contributed by one selection.
// A name missing from the catalog contributes zero rather than
// aborting the aggregation: one stale reference must not blank out the
// rest of the plan.
func SelectionMacros(catalog Catalog, sel FoodSelection) Macros {
	entry, ok := catalog[sel.Name]
	if !ok {
		return Macros{}
	}
	return entry.PerQuantity.Scale(quantityMultiplier(entry, sel.Quantity))
}

// SlotMacros sums a slot's selections plus its external nutrition.
// External values are clamped non-negative.
func SlotMacros(catalog Catalog, slot MealSlot) Macros {
	total := slot.External.Clamped()
	for _, sel := range slot.Selections {
		total = total.Add(SelectionMacros(catalog, sel))
	}
	return total
}

// CombineMacros is the plain field-wise sum used for multi-slot and
// multi-day totals. No weighting, no deduplication.
func CombineMacros(values ...Macros) Macros {
	var total Macros
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// DayMacros sums every slot of a day.
func DayMacros(catalog Catalog, slots map[string]MealSlot) Macros {
	var total Macros
	for _, slot := range slots {
		total = total.Add(SlotMacros(catalog, slot))
	}
	return total
}

// CostBreakdown is the monetary cost of one slot's selections.
type CostBreakdown struct {
	IndividualCosts map[string]float64 `json:"individual_costs"`
	TotalCost       float64            `json:"total_cost"`
}

// SelectionCost applies the same unit/weight multiplier rule as
// SelectionMacros to the entry's cost rate. Unknown foods cost zero.
func SelectionCost(catalog Catalog, sel FoodSelection) float64 {
	entry, ok := catalog[sel.Name]
	if !ok {
		return 0
	}
	return entry.CostPerQuantity * quantityMultiplier(entry, sel.Quantity)
}

// SlotCost computes a slot's cost breakdown. A food appearing more
// than once accumulates into a single breakdown entry, so the
// individual costs always sum to the total.
func SlotCost(catalog Catalog, selections []FoodSelection) CostBreakdown {
	breakdown := CostBreakdown{IndividualCosts: make(map[string]float64)}
	for _, sel := range selections {
		cost := SelectionCost(catalog, sel)
		breakdown.IndividualCosts[sel.Name] += cost
		breakdown.TotalCost += cost
	}
	return breakdown
}

// DayCost sums slot costs into a daily total.
func DayCost(catalog Catalog, slots map[string]MealSlot) float64 {
	var total float64
	for _, slot := range slots {
		total += SlotCost(catalog, slot.Selections).TotalCost
	}
	return total
}
