package nutrition

import "time"

// MaxStreakLookback caps the backward walk of CurrentStreak so it
// terminates even on pathological data (for example a lookup that
// answers true for every date).
const MaxStreakLookback = 365

// AchievedFunc reports whether the goal was achieved on the given
// local date (DateLayout). The second result is false when no record
// exists for that date; a missing day breaks a streak the same way a
// failed one does.
type AchievedFunc func(date string) (achieved bool, ok bool)

// CurrentStreak walks backward from start counting consecutive
// achieved days. It returns the streak length and whether the count
// was truncated by MaxStreakLookback.
func CurrentStreak(achieved AchievedFunc, start time.Time) (int, bool) {
	done, ok := achieved(formatDate(start))
	if !ok || !done {
		return 0, false
	}

	streak := 1
	day := start
	for i := 1; i < MaxStreakLookback; i++ {
		day = day.AddDate(0, 0, -1)
		done, ok := achieved(formatDate(day))
		if !ok || !done {
			return streak, false
		}
		streak++
	}
	return streak, true
}

// LongestStreak scans the window [from, to] chronologically, resetting
// a running counter on every non-achieved or missing day and tracking
// the maximum. Single linear pass over the window.
func LongestStreak(achieved AchievedFunc, from, to time.Time) int {
	longest, run := 0, 0
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		done, ok := achieved(formatDate(day))
		if ok && done {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}
