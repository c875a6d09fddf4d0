package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/slateapp/slate/internal/models"
	"github.com/slateapp/slate/internal/storage"
)

// ListBills returns all bills owned by ownerID, oldest created first.
func (s *Store) ListBills(ctx context.Context, ownerID string) ([]models.Bill, error) {
	query := `
		SELECT id, name, category_label, category_emoji, amount, due_date,
		       is_paid, paid_at, is_recurring, notes
		FROM bills
		WHERE owner_id = ?
		ORDER BY created_at, id
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []models.Bill
	for rows.Next() {
		var (
			b      models.Bill
			amount string
			paidAt sql.NullString
		)
		if err := rows.Scan(
			&b.ID,
			&b.Name,
			&b.Category.Label,
			&b.Category.Emoji,
			&amount,
			&b.DueDate,
			&b.IsPaid,
			&paidAt,
			&b.IsRecurring,
			&b.Notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}

		b.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount for bill %s: %w", b.ID, err)
		}
		if paidAt.Valid {
			t, err := time.Parse(time.RFC3339, paidAt.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse paid_at for bill %s: %w", b.ID, err)
			}
			b.PaidAt = &t
		}

		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	return bills, nil
}

// InsertBill persists a new bill row for the owner.
func (s *Store) InsertBill(ctx context.Context, ownerID string, bill models.Bill) error {
	query := `
		INSERT INTO bills (id, owner_id, name, category_label, category_emoji,
		                   amount, due_date, is_paid, paid_at, is_recurring,
		                   notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now().Unix()
	_, err := s.db.ExecContext(ctx, query,
		bill.ID,
		ownerID,
		bill.Name,
		bill.Category.Label,
		bill.Category.Emoji,
		bill.Amount.String(),
		bill.DueDate,
		bill.IsPaid,
		nullableTime(bill.PaidAt),
		bill.IsRecurring,
		bill.Notes,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	return nil
}

// UpdateBill applies a partial update to the owner's bill. Only the set
// fields of the patch are written, plus a fresh updated_at marker.
func (s *Store) UpdateBill(ctx context.Context, ownerID, billID string, patch models.BillPatch) error {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now().Unix()}

	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Category != nil {
		sets = append(sets, "category_label = ?", "category_emoji = ?")
		args = append(args, patch.Category.Label, patch.Category.Emoji)
	}
	if patch.Amount != nil {
		sets = append(sets, "amount = ?")
		args = append(args, patch.Amount.String())
	}
	if patch.DueDate != nil {
		sets = append(sets, "due_date = ?")
		args = append(args, *patch.DueDate)
	}
	if patch.IsPaid != nil {
		sets = append(sets, "is_paid = ?")
		args = append(args, *patch.IsPaid)
	}
	if patch.PaidAt != nil {
		sets = append(sets, "paid_at = ?")
		args = append(args, nullableTime(*patch.PaidAt))
	}
	if patch.IsRecurring != nil {
		sets = append(sets, "is_recurring = ?")
		args = append(args, *patch.IsRecurring)
	}
	if patch.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *patch.Notes)
	}

	query := fmt.Sprintf(
		"UPDATE bills SET %s WHERE id = ? AND owner_id = ?",
		strings.Join(sets, ", "),
	)
	args = append(args, billID, ownerID)

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}

	return nil
}

// DeleteBill removes the owner's bill row. Missing rows are not an error.
func (s *Store) DeleteBill(ctx context.Context, ownerID, billID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM bills WHERE id = ? AND owner_id = ?",
		billID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	return nil
}

// nullableTime converts an optional timestamp to its column value.
func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
