package nutrition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// achievedFromMap builds an AchievedFunc over a fixed date->achieved map.
func achievedFromMap(days map[string]bool) AchievedFunc {
	return func(date string) (bool, bool) {
		v, ok := days[date]
		return v, ok
	}
}

func TestCurrentStreakCountsBackFromStart(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	// Oldest to newest: T T F T T T
	days := map[string]bool{
		"2026-03-05": true,
		"2026-03-06": true,
		"2026-03-07": false,
		"2026-03-08": true,
		"2026-03-09": true,
		"2026-03-10": true,
	}

	streak, truncated := CurrentStreak(achievedFromMap(days), today)
	assert.Equal(t, 3, streak)
	assert.False(t, truncated)
}

func TestCurrentStreakZeroWhenTodayMissingOrFailed(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)

	streak, _ := CurrentStreak(achievedFromMap(map[string]bool{}), today)
	assert.Zero(t, streak)

	streak, _ = CurrentStreak(achievedFromMap(map[string]bool{"2026-03-10": false}), today)
	assert.Zero(t, streak)
}

func TestCurrentStreakBreaksOnGap(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	days := map[string]bool{
		"2026-03-10": true,
		"2026-03-09": true,
		// 03-08 has no record
		"2026-03-07": true,
	}
	streak, _ := CurrentStreak(achievedFromMap(days), today)
	assert.Equal(t, 2, streak)
}

func TestCurrentStreakTruncatedAtLookbackCap(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	always := func(string) (bool, bool) { return true, true }

	streak, truncated := CurrentStreak(always, today)
	assert.Equal(t, MaxStreakLookback, streak)
	assert.True(t, truncated)
}

func TestLongestStreakForwardScan(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	days := map[string]bool{
		"2026-03-01": true,
		"2026-03-02": true,
		"2026-03-03": true,
		"2026-03-04": true,
		// gap
		"2026-03-07": true,
		"2026-03-08": false,
		"2026-03-09": true,
		"2026-03-10": true,
	}

	assert.Equal(t, 4, LongestStreak(achievedFromMap(days), from, to))
}

func TestLongestStreakEmptyWindow(t *testing.T) {
	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	to := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	assert.Zero(t, LongestStreak(achievedFromMap(nil), from, to))
}
