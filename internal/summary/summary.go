// Package summary derives display values from a bill list.
//
// Every function here is pure: it reads the given bills, allocates its own
// results, and never mutates its input. Callers recompute after any change
// to the underlying list.
package summary

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/slateapp/slate/internal/models"
)

// UpcomingDays is the width of the "due soon" window, inclusive of today.
const UpcomingDays = 7

// Partition splits bills into unpaid and paid lists.
// Unpaid bills are sorted by ascending due date, paid bills by descending
// due date; bills sharing a due date keep their original relative order.
func Partition(bills []models.Bill) (unpaid, paid []models.Bill) {
	for _, b := range bills {
		if b.IsPaid {
			paid = append(paid, b)
		} else {
			unpaid = append(unpaid, b)
		}
	}
	sort.SliceStable(unpaid, func(i, j int) bool {
		return unpaid[i].DueDate < unpaid[j].DueDate
	})
	sort.SliceStable(paid, func(i, j int) bool {
		return paid[i].DueDate > paid[j].DueDate
	})
	return unpaid, paid
}

// TotalDue sums the amounts of the given unpaid bills.
func TotalDue(unpaid []models.Bill) decimal.Decimal {
	total := decimal.Zero
	for _, b := range unpaid {
		total = total.Add(b.Amount)
	}
	return total
}

// OverdueCount counts unpaid bills strictly past their due date.
// A bill due today is not overdue. The comparison is lexical, which is
// chronological for zero-padded "YYYY-MM-DD" strings.
func OverdueCount(unpaid []models.Bill, today string) int {
	count := 0
	for _, b := range unpaid {
		if b.DueDate < today {
			count++
		}
	}
	return count
}

// UpcomingCount counts unpaid bills due within [today, today+7] inclusive.
func UpcomingCount(unpaid []models.Bill, today string) int {
	t, err := time.Parse(models.DateFormat, today)
	if err != nil {
		return 0
	}
	cutoff := t.AddDate(0, 0, UpcomingDays).Format(models.DateFormat)

	count := 0
	for _, b := range unpaid {
		if b.DueDate >= today && b.DueDate <= cutoff {
			count++
		}
	}
	return count
}

// MonthGroup is one calendar month of paid bills for the history view.
type MonthGroup struct {
	// Key is the "YYYY-MM" month prefix shared by the group's bills.
	Key string `json:"key"`

	// Label is the human-readable month name, e.g. "February 2026".
	Label string `json:"label"`

	// Total is the sum of the group's bill amounts.
	Total decimal.Decimal `json:"total"`

	// Bills are the group members, in the order they were given.
	Bills []models.Bill `json:"bills"`
}

// MonthGroups buckets bills by the "YYYY-MM" prefix of their due date.
// Groups are ordered newest month first.
func MonthGroups(bills []models.Bill) []MonthGroup {
	byKey := make(map[string]*MonthGroup)
	var keys []string

	for _, b := range bills {
		if len(b.DueDate) < 7 {
			continue
		}
		key := b.DueDate[:7]
		g, ok := byKey[key]
		if !ok {
			g = &MonthGroup{Key: key, Label: monthLabel(key), Total: decimal.Zero}
			byKey[key] = g
			keys = append(keys, key)
		}
		g.Bills = append(g.Bills, b)
		g.Total = g.Total.Add(b.Amount)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	groups := make([]MonthGroup, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, *byKey[key])
	}
	return groups
}

// monthLabel renders a "YYYY-MM" key as "February 2026".
// Keys that do not parse fall back to the raw key.
func monthLabel(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return fmt.Sprintf("%s %d", t.Month(), t.Year())
}
