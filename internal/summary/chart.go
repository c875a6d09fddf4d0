package summary

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/slateapp/slate/internal/models"
)

// chartCloseDay is the day the spending series is padded out to, so the
// chart always spans a full month view.
const chartCloseDay = 30

// maxFlatGap is the widest day gap the chart renderer interpolates across
// on its own; wider gaps get an explicit hold point so the line stays flat
// between sparse bills instead of ramping.
const maxFlatGap = 2

// ChartPoint is one step of the cumulative spending series.
type ChartPoint struct {
	// Day is the day of month, 1-based.
	Day int `json:"day"`

	// Amount is the cumulative unpaid total through this day.
	Amount decimal.Decimal `json:"amount"`
}

// SpendingSeries builds the cumulative spending step series for a single
// month view from unpaid bills sorted by ascending due date.
//
// The series starts at (1, 0). Each bill adds a point at its due day with
// the new cumulative amount; when a bill's due day is more than two days
// past the previous point, a flat hold point is inserted just before it.
// If the final point lands before day 30 a closing point holds the total
// through day 30. The amounts are monotonically non-decreasing.
func SpendingSeries(unpaid []models.Bill) []ChartPoint {
	points := []ChartPoint{{Day: 1, Amount: decimal.Zero}}
	cumulative := decimal.Zero

	for _, b := range unpaid {
		day := dueDay(b.DueDate)
		if day == 0 {
			continue
		}
		prev := points[len(points)-1]
		if day-prev.Day > maxFlatGap {
			points = append(points, ChartPoint{Day: day - 1, Amount: cumulative})
		}
		cumulative = cumulative.Add(b.Amount)
		points = append(points, ChartPoint{Day: day, Amount: cumulative})
	}

	if last := points[len(points)-1]; last.Day < chartCloseDay {
		points = append(points, ChartPoint{Day: chartCloseDay, Amount: last.Amount})
	}
	return points
}

// dueDay extracts the day of month from a "YYYY-MM-DD" string.
// Returns 0 for dates that do not parse.
func dueDay(date string) int {
	t, err := time.Parse(models.DateFormat, date)
	if err != nil {
		return 0
	}
	return t.Day()
}
