package nutrition

import (
	"errors"
	"math"
)

// ErrUnsupportedGoal is returned when a goal key has no entry in the
// adjustment table. Unmapped keys are a caller defect and must not be
// silently treated as maintain.
var ErrUnsupportedGoal = errors.New("unsupported goal")

// Gender selects the sex-specific BMR constant.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ActivityLevel scales BMR into TDEE.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// activityMultipliers is the single source of truth for valid activity
// levels; the profile service validates input against it.
var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// Goal is a weight-change category with an associated calorie
// deficit/surplus fraction.
type Goal string

const (
	GoalLoseAggressive Goal = "lose_20_25"
	GoalLoseModerate   Goal = "lose_15_20"
	GoalLoseLight      Goal = "lose_10_15"
	GoalLoseGentle     Goal = "lose_5_10"
	GoalMaintain       Goal = "maintain"
	GoalGainGentle     Goal = "gain_5_10"
	GoalGainLight      Goal = "gain_10_15"
	GoalGainModerate   Goal = "gain_15_20"
	GoalGainAggressive Goal = "gain_20_25"
)

// goalAdjustments maps every supported goal key, including legacy
// aliases from older clients, to its TDEE adjustment fraction. The
// empty key is the documented fallback for profiles created before
// goal selection existed. Any other key is an error.
var goalAdjustments = map[Goal]float64{
	GoalLoseAggressive: -0.225,
	GoalLoseModerate:   -0.175,
	GoalLoseLight:      -0.125,
	GoalLoseGentle:     -0.075,
	GoalMaintain:       0,
	GoalGainGentle:     0.075,
	GoalGainLight:      0.125,
	GoalGainModerate:   0.175,
	GoalGainAggressive: 0.225,

	// Legacy keys written by pre-tier clients.
	"lose": -0.125,
	"gain": 0.125,
	"":     0,
}

// GoalAdjustment returns the calorie adjustment fraction for a goal, or
// ErrUnsupportedGoal when the key is not in the table.
func GoalAdjustment(goal Goal) (float64, error) {
	adj, ok := goalAdjustments[goal]
	if !ok {
		return 0, ErrUnsupportedGoal
	}
	return adj, nil
}

// macroSplit is a protein/carb/fat percentage triple over adjusted
// calories.
type macroSplit struct {
	protein float64
	carbs   float64
	fats    float64
}

// Three fixed splits selected by adjustment thresholds: aggressive
// cuts get the high-protein triple, bulks the high-carb one, and the
// band in between (maintain and gentle changes) the balanced one.
var (
	splitCut      = macroSplit{protein: 0.40, carbs: 0.30, fats: 0.30}
	splitMaintain = macroSplit{protein: 0.25, carbs: 0.45, fats: 0.30}
	splitBulk     = macroSplit{protein: 0.25, carbs: 0.50, fats: 0.25}
)

const splitThreshold = 0.10

func splitFor(adjustment float64) macroSplit {
	switch {
	case adjustment <= -splitThreshold:
		return splitCut
	case adjustment >= splitThreshold:
		return splitBulk
	default:
		return splitMaintain
	}
}

// BiometricProfile is the calculation input. The calculator performs no
// validation; callers must reject non-positive age/height/weight before
// invoking it.
type BiometricProfile struct {
	Gender            Gender
	Age               int
	HeightCM          float64
	WeightKG          float64
	ActivityLevel     ActivityLevel
	Goal              Goal
	BodyFatPercentage float64 // 0 means not provided
}

// CalculatedMacros is the full derived target set.
type CalculatedMacros struct {
	BMR              float64 `json:"bmr"`
	TDEE             float64 `json:"tdee"`
	AdjustedCalories int     `json:"adjusted_calories"`
	Protein          int     `json:"protein"`
	Carbs            int     `json:"carbs"`
	Fats             int     `json:"fats"`
	Calories         int     `json:"calories"`
}

// CalculateBMR estimates resting energy expenditure. With a known body
// fat percentage it uses the lean-mass (Katch-McArdle) formula,
// otherwise the sex-specific Mifflin-St Jeor formula.
func CalculateBMR(p BiometricProfile) float64 {
	if p.BodyFatPercentage > 0 {
		leanMass := p.WeightKG * (1 - p.BodyFatPercentage/100)
		return 370 + 21.6*leanMass
	}
	bmr := 10*p.WeightKG + 6.25*p.HeightCM - 5*float64(p.Age)
	if p.Gender == GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}
	return bmr
}

// CalculateTDEE scales BMR by the activity multiplier. Unknown levels
// fall back to sedentary, the most conservative multiplier.
func CalculateTDEE(bmr float64, level ActivityLevel) float64 {
	mult, ok := activityMultipliers[level]
	if !ok {
		mult = activityMultipliers[ActivitySedentary]
	}
	return bmr * mult
}

// AdjustedCalories applies the goal's deficit/surplus fraction to TDEE
// and rounds to the nearest kcal.
func AdjustedCalories(tdee float64, goal Goal) (int, error) {
	adj, err := GoalAdjustment(goal)
	if err != nil {
		return 0, err
	}
	return int(math.Round(tdee * (1 + adj))), nil
}

// CalculateTargets derives the complete target set from a profile.
// Each macro is rounded to the nearest gram independently; the 4/4/9
// kcal identity is therefore approximate, which CheckTargetConsistency
// tolerates.
func CalculateTargets(p BiometricProfile) (CalculatedMacros, error) {
	adj, err := GoalAdjustment(p.Goal)
	if err != nil {
		return CalculatedMacros{}, err
	}

	bmr := CalculateBMR(p)
	tdee := CalculateTDEE(bmr, p.ActivityLevel)
	calories := int(math.Round(tdee * (1 + adj)))

	split := splitFor(adj)
	return CalculatedMacros{
		BMR:              bmr,
		TDEE:             tdee,
		AdjustedCalories: calories,
		Protein:          int(math.Round(float64(calories) * split.protein / 4)),
		Carbs:            int(math.Round(float64(calories) * split.carbs / 4)),
		Fats:             int(math.Round(float64(calories) * split.fats / 9)),
		Calories:         calories,
	}, nil
}

// targetTolerance is how far the stated calories may diverge from the
// 4P+4C+9F identity before the targets are flagged as inconsistent.
const targetTolerance = 0.10

// CheckTargetConsistency reports whether a user-set target diverges
// from its macro-implied calories by more than the tolerance. A false
// result is a warning for the caller to surface, never a rejection.
func CheckTargetConsistency(t Macros) bool {
	implied := t.Protein*4 + t.Carbs*4 + t.Fats*9
	if t.Calories == 0 {
		return implied == 0
	}
	return math.Abs(implied-t.Calories)/t.Calories <= targetTolerance
}
