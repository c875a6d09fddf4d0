package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the wire format for due dates. Fixed-width and zero-padded,
// so lexical comparison of two dates is also chronological comparison.
const DateFormat = "2006-01-02"

// Bill represents a single payable obligation.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	// Assigned at creation, immutable afterwards.
	ID string `json:"id"`

	// Name is the free-text label shown to the user (e.g. "Meralco").
	Name string `json:"name"`

	// Category tags the bill for display and grouping.
	Category Category `json:"category"`

	// Amount is the non-negative bill amount with cent precision.
	Amount decimal.Decimal `json:"amount"`

	// DueDate is the calendar date the bill is due, as "YYYY-MM-DD".
	// There is no time component.
	DueDate string `json:"dueDate"`

	// IsPaid reports whether the bill has been settled.
	IsPaid bool `json:"isPaid"`

	// PaidAt is the instant the bill was marked paid. It is set exactly
	// when IsPaid flips to true and cleared when it flips back.
	PaidAt *time.Time `json:"paidAt,omitempty"`

	// IsRecurring marks bills that repeat (rent, subscriptions).
	// Informational only; nothing regenerates bills automatically.
	IsRecurring bool `json:"isRecurring"`

	// Notes is optional free text.
	Notes string `json:"notes,omitempty"`
}

// BillPatch is a partial update to a bill. Nil fields are left untouched.
// Remote updates send only the set fields plus an updated-at marker.
type BillPatch struct {
	Name        *string
	Category    *Category
	Amount      *decimal.Decimal
	DueDate     *string
	IsPaid      *bool
	PaidAt      **time.Time
	IsRecurring *bool
	Notes       *string
}

// Apply merges the set fields of the patch into the bill.
func (p BillPatch) Apply(b *Bill) {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.Amount != nil {
		b.Amount = *p.Amount
	}
	if p.DueDate != nil {
		b.DueDate = *p.DueDate
	}
	if p.IsPaid != nil {
		b.IsPaid = *p.IsPaid
	}
	if p.PaidAt != nil {
		b.PaidAt = *p.PaidAt
	}
	if p.IsRecurring != nil {
		b.IsRecurring = *p.IsRecurring
	}
	if p.Notes != nil {
		b.Notes = *p.Notes
	}
}
