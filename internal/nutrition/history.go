package nutrition

import "time"

// DefaultHistoryDays is the standard window length for history grids.
const DefaultHistoryDays = 100

// GridRecord is the stored activity value for one day.
type GridRecord struct {
	Completed bool
	Value     float64
	MaxValue  float64
}

// GridCell is one day of a rendered history grid.
type GridCell struct {
	Date      string  `json:"date"`
	Completed bool    `json:"completed"`
	Value     float64 `json:"value"`
	MaxValue  float64 `json:"max_value"`
	IsToday   bool    `json:"is_today"`
	IsWeekend bool    `json:"is_weekend"`
}

// RecordFunc looks up the stored record for a local date. The second
// result is false when no record exists.
type RecordFunc func(date string) (GridRecord, bool)

// BuildHistoryGrid produces a dense, ordered sequence of days days
// ending at today. Missing days default to not completed with
// value 0 / max 1, so callers can render a calendar or heatmap without
// handling gaps. days values below 1 fall back to DefaultHistoryDays.
func BuildHistoryGrid(recordFor RecordFunc, days int, today time.Time) []GridCell {
	if days < 1 {
		days = DefaultHistoryDays
	}

	cells := make([]GridCell, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		cell := GridCell{
			Date:      formatDate(day),
			MaxValue:  1,
			IsToday:   i == 0,
			IsWeekend: day.Weekday() == time.Saturday || day.Weekday() == time.Sunday,
		}
		if rec, ok := recordFor(cell.Date); ok {
			cell.Completed = rec.Completed
			cell.Value = rec.Value
			cell.MaxValue = rec.MaxValue
		}
		cells = append(cells, cell)
	}
	return cells
}
