package summary

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/slateapp/slate/internal/models"
)

func bill(id, due string, amount float64, paid bool) models.Bill {
	return models.Bill{
		ID:      id,
		Name:    id,
		Amount:  decimal.NewFromFloat(amount),
		DueDate: due,
		IsPaid:  paid,
	}
}

func TestPartition(t *testing.T) {
	tests := []struct {
		name       string
		bills      []models.Bill
		wantUnpaid []string
		wantPaid   []string
	}{
		{
			name: "unpaid ascending, paid descending",
			bills: []models.Bill{
				bill("a", "2026-02-20", 50, false),
				bill("b", "2026-01-05", 10, true),
				bill("c", "2026-02-10", 100, false),
				bill("d", "2026-03-01", 25, true),
			},
			wantUnpaid: []string{"c", "a"},
			wantPaid:   []string{"d", "b"},
		},
		{
			name: "ties keep original order",
			bills: []models.Bill{
				bill("first", "2026-02-10", 1, false),
				bill("second", "2026-02-10", 2, false),
				bill("third", "2026-02-10", 3, false),
			},
			wantUnpaid: []string{"first", "second", "third"},
		},
		{
			name: "empty list",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unpaid, paid := Partition(tt.bills)

			if len(unpaid)+len(paid) != len(tt.bills) {
				t.Errorf("partition dropped bills: %d unpaid + %d paid, want %d total",
					len(unpaid), len(paid), len(tt.bills))
			}
			for i, id := range tt.wantUnpaid {
				if unpaid[i].ID != id {
					t.Errorf("unpaid[%d] = %s, want %s", i, unpaid[i].ID, id)
				}
			}
			for i, id := range tt.wantPaid {
				if paid[i].ID != id {
					t.Errorf("paid[%d] = %s, want %s", i, paid[i].ID, id)
				}
			}
		})
	}
}

func TestPartitionDoesNotMutateInput(t *testing.T) {
	bills := []models.Bill{
		bill("z", "2026-03-01", 1, false),
		bill("a", "2026-01-01", 1, false),
	}
	Partition(bills)

	if bills[0].ID != "z" || bills[1].ID != "a" {
		t.Errorf("input order changed: got [%s %s]", bills[0].ID, bills[1].ID)
	}
}

func TestTotalDueAndOverdue(t *testing.T) {
	// Scenario from the product brief: two unpaid bills, one past due.
	bills := []models.Bill{
		bill("a", "2026-02-10", 100, false),
		bill("b", "2026-02-20", 50, false),
	}
	unpaid, _ := Partition(bills)
	today := "2026-02-15"

	if got := TotalDue(unpaid); !got.Equal(decimal.NewFromInt(150)) {
		t.Errorf("TotalDue = %s, want 150", got)
	}
	if got := OverdueCount(unpaid, today); got != 1 {
		t.Errorf("OverdueCount = %d, want 1", got)
	}
}

func TestOverdueCount(t *testing.T) {
	tests := []struct {
		name  string
		bills []models.Bill
		today string
		want  int
	}{
		{
			name:  "due today is not overdue",
			bills: []models.Bill{bill("a", "2026-02-15", 10, false)},
			today: "2026-02-15",
			want:  0,
		},
		{
			name:  "yesterday is overdue",
			bills: []models.Bill{bill("a", "2026-02-14", 10, false)},
			today: "2026-02-15",
			want:  1,
		},
		{
			name: "lexical order crosses month boundary",
			bills: []models.Bill{
				bill("a", "2026-01-31", 10, false),
				bill("b", "2026-02-01", 10, false),
			},
			today: "2026-02-01",
			want:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverdueCount(tt.bills, tt.today); got != tt.want {
				t.Errorf("OverdueCount = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUpcomingCount(t *testing.T) {
	tests := []struct {
		name  string
		bills []models.Bill
		today string
		want  int
	}{
		{
			name: "window is inclusive on both ends",
			bills: []models.Bill{
				bill("today", "2026-02-15", 10, false),
				bill("last_day", "2026-02-22", 10, false),
				bill("past_window", "2026-02-23", 10, false),
				bill("overdue", "2026-02-14", 10, false),
			},
			today: "2026-02-15",
			want:  2,
		},
		{
			name: "window spans month boundary",
			bills: []models.Bill{
				bill("a", "2026-03-02", 10, false),
			},
			today: "2026-02-27",
			want:  1,
		},
		{
			name:  "bad today yields zero",
			bills: []models.Bill{bill("a", "2026-02-15", 10, false)},
			today: "not-a-date",
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UpcomingCount(tt.bills, tt.today); got != tt.want {
				t.Errorf("UpcomingCount = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMonthGroups(t *testing.T) {
	bills := []models.Bill{
		bill("jan", "2026-01-05", 40, true),
		bill("feb", "2026-02-02", 60, true),
		bill("jan2", "2026-01-20", 10, true),
	}

	groups := MonthGroups(bills)

	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Key != "2026-02" || groups[1].Key != "2026-01" {
		t.Errorf("group order = [%s %s], want [2026-02 2026-01]", groups[0].Key, groups[1].Key)
	}
	if groups[0].Label != "February 2026" {
		t.Errorf("label = %q, want %q", groups[0].Label, "February 2026")
	}
	if !groups[1].Total.Equal(decimal.NewFromInt(50)) {
		t.Errorf("January total = %s, want 50", groups[1].Total)
	}
	if len(groups[1].Bills) != 2 {
		t.Errorf("January group has %d bills, want 2", len(groups[1].Bills))
	}
}

func TestMonthGroupsEmpty(t *testing.T) {
	if groups := MonthGroups(nil); len(groups) != 0 {
		t.Errorf("got %d groups for empty input, want 0", len(groups))
	}
}
