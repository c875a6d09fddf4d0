package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/slateapp/slate/internal/models"
	"github.com/slateapp/slate/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "slate-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

// createOwner inserts the user row a remote write is scoped to. The schema
// enforces the ownership foreign key, so every owner used by a test must
// exist first, exactly as in production where sign-up precedes any remote
// write.
func createOwner(t *testing.T, store *Store, id string) {
	t.Helper()

	user := &models.User{
		ID:           id,
		Email:        id + "@example.com",
		Name:         id,
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
}

func testBill(id string, amount string, due string) models.Bill {
	amt, _ := decimal.NewFromString(amount)
	return models.Bill{
		ID:       id,
		Name:     "Electricity",
		Category: models.Category{Label: "Electricity", Emoji: "💡"},
		Amount:   amt,
		DueDate:  due,
	}
}

func TestBills(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, owner := range []string{"owner-a", "owner-b", "owner-c", "owner-d", "owner-e"} {
		createOwner(t, store, owner)
	}

	t.Run("InsertBill requires an existing owner", func(t *testing.T) {
		err := store.InsertBill(ctx, "ghost-owner", testBill("bill-0", "5", "2026-07-01"))
		if err == nil {
			t.Error("expected foreign key error for unknown owner, got nil")
		}
	})

	t.Run("InsertBill and ListBills round trip", func(t *testing.T) {
		paidAt := time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)
		bill := testBill("bill-1", "1450.75", "2026-02-10")
		bill.IsPaid = true
		bill.PaidAt = &paidAt
		bill.IsRecurring = true
		bill.Notes = "account 5521"

		if err := store.InsertBill(ctx, "owner-a", bill); err != nil {
			t.Fatalf("InsertBill failed: %v", err)
		}

		bills, err := store.ListBills(ctx, "owner-a")
		if err != nil {
			t.Fatalf("ListBills failed: %v", err)
		}
		if len(bills) != 1 {
			t.Fatalf("got %d bills, want 1", len(bills))
		}

		got := bills[0]
		if got.ID != bill.ID || got.Name != bill.Name || got.DueDate != bill.DueDate {
			t.Errorf("bill fields mismatch: got %+v", got)
		}
		if !got.Amount.Equal(bill.Amount) {
			t.Errorf("Amount = %s, want %s", got.Amount, bill.Amount)
		}
		if got.Category != bill.Category {
			t.Errorf("Category = %+v, want %+v", got.Category, bill.Category)
		}
		if got.PaidAt == nil || !got.PaidAt.Equal(paidAt) {
			t.Errorf("PaidAt = %v, want %v", got.PaidAt, paidAt)
		}
		if !got.IsRecurring || got.Notes != "account 5521" {
			t.Errorf("IsRecurring/Notes mismatch: got %+v", got)
		}
	})

	t.Run("ListBills is owner scoped", func(t *testing.T) {
		if err := store.InsertBill(ctx, "owner-b", testBill("bill-2", "100", "2026-03-01")); err != nil {
			t.Fatalf("InsertBill failed: %v", err)
		}

		bills, err := store.ListBills(ctx, "owner-b")
		if err != nil {
			t.Fatalf("ListBills failed: %v", err)
		}
		if len(bills) != 1 || bills[0].ID != "bill-2" {
			t.Errorf("owner-b bills = %+v, want just bill-2", bills)
		}

		bills, err = store.ListBills(ctx, "nobody")
		if err != nil {
			t.Fatalf("ListBills failed: %v", err)
		}
		if len(bills) != 0 {
			t.Errorf("expected no bills for unknown owner, got %d", len(bills))
		}
	})

	t.Run("UpdateBill applies only set fields", func(t *testing.T) {
		if err := store.InsertBill(ctx, "owner-c", testBill("bill-3", "200", "2026-04-01")); err != nil {
			t.Fatalf("InsertBill failed: %v", err)
		}

		newAmount := decimal.NewFromInt(250)
		newNotes := "raised this month"
		err := store.UpdateBill(ctx, "owner-c", "bill-3", models.BillPatch{
			Amount: &newAmount,
			Notes:  &newNotes,
		})
		if err != nil {
			t.Fatalf("UpdateBill failed: %v", err)
		}

		bills, err := store.ListBills(ctx, "owner-c")
		if err != nil {
			t.Fatalf("ListBills failed: %v", err)
		}
		got := bills[0]
		if !got.Amount.Equal(newAmount) {
			t.Errorf("Amount = %s, want 250", got.Amount)
		}
		if got.Notes != newNotes {
			t.Errorf("Notes = %q, want %q", got.Notes, newNotes)
		}
		// Untouched fields survive.
		if got.DueDate != "2026-04-01" || got.Name != "Electricity" {
			t.Errorf("untouched fields changed: %+v", got)
		}
	})

	t.Run("UpdateBill can set and clear paid_at", func(t *testing.T) {
		if err := store.InsertBill(ctx, "owner-d", testBill("bill-4", "80", "2026-05-01")); err != nil {
			t.Fatalf("InsertBill failed: %v", err)
		}

		paid := true
		paidAt := time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)
		paidAtPtr := &paidAt
		err := store.UpdateBill(ctx, "owner-d", "bill-4", models.BillPatch{
			IsPaid: &paid,
			PaidAt: &paidAtPtr,
		})
		if err != nil {
			t.Fatalf("UpdateBill failed: %v", err)
		}

		bills, _ := store.ListBills(ctx, "owner-d")
		if !bills[0].IsPaid || bills[0].PaidAt == nil {
			t.Fatalf("expected paid bill with timestamp, got %+v", bills[0])
		}

		unpaid := false
		var cleared *time.Time
		err = store.UpdateBill(ctx, "owner-d", "bill-4", models.BillPatch{
			IsPaid: &unpaid,
			PaidAt: &cleared,
		})
		if err != nil {
			t.Fatalf("UpdateBill failed: %v", err)
		}

		bills, _ = store.ListBills(ctx, "owner-d")
		if bills[0].IsPaid || bills[0].PaidAt != nil {
			t.Errorf("expected unpaid bill with nil timestamp, got %+v", bills[0])
		}
	})

	t.Run("UpdateBill on missing or foreign bill returns ErrNotFound", func(t *testing.T) {
		name := "x"
		err := store.UpdateBill(ctx, "owner-a", "no-such-bill", models.BillPatch{Name: &name})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}

		// bill-2 belongs to owner-b
		err = store.UpdateBill(ctx, "owner-a", "bill-2", models.BillPatch{Name: &name})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound for foreign bill, got %v", err)
		}
	})

	t.Run("DeleteBill removes row and ignores missing", func(t *testing.T) {
		if err := store.InsertBill(ctx, "owner-e", testBill("bill-5", "10", "2026-06-01")); err != nil {
			t.Fatalf("InsertBill failed: %v", err)
		}

		if err := store.DeleteBill(ctx, "owner-e", "bill-5"); err != nil {
			t.Fatalf("DeleteBill failed: %v", err)
		}
		bills, _ := store.ListBills(ctx, "owner-e")
		if len(bills) != 0 {
			t.Errorf("expected no bills after delete, got %d", len(bills))
		}

		if err := store.DeleteBill(ctx, "owner-e", "bill-5"); err != nil {
			t.Errorf("deleting a missing bill should not error, got %v", err)
		}
	})
}

func TestProfiles(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	createOwner(t, store, "owner-a")

	profile := models.Profile{
		Name:           "Ana",
		Country:        "Philippines",
		CurrencySymbol: "₱",
		Locale:         "en-PH",
		Email:          "ana@example.com",
	}

	t.Run("GetProfile before save returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetProfile(ctx, "owner-a")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("SaveProfile requires an existing owner", func(t *testing.T) {
		if err := store.SaveProfile(ctx, "ghost-owner", profile); err == nil {
			t.Error("expected foreign key error for unknown owner, got nil")
		}
	})

	t.Run("SaveProfile round trip with is_pro defaulting to false", func(t *testing.T) {
		// A client-side IsPro must not survive the write.
		in := profile
		in.IsPro = true

		if err := store.SaveProfile(ctx, "owner-a", in); err != nil {
			t.Fatalf("SaveProfile failed: %v", err)
		}

		got, err := store.GetProfile(ctx, "owner-a")
		if err != nil {
			t.Fatalf("GetProfile failed: %v", err)
		}
		if got.IsPro {
			t.Error("IsPro was written by a client save")
		}
		got.IsPro = false
		in.IsPro = false
		if got != in {
			t.Errorf("profile mismatch: got %+v, want %+v", got, in)
		}
	})

	t.Run("SaveProfile update preserves server-set is_pro", func(t *testing.T) {
		// Simulate the server granting the entitlement out of band.
		if _, err := store.db.ExecContext(ctx,
			"UPDATE profiles SET is_pro = 1 WHERE owner_id = ?", "owner-a"); err != nil {
			t.Fatalf("failed to grant entitlement: %v", err)
		}

		updated := profile
		updated.Name = "Ana Maria"
		if err := store.SaveProfile(ctx, "owner-a", updated); err != nil {
			t.Fatalf("SaveProfile failed: %v", err)
		}

		got, err := store.GetProfile(ctx, "owner-a")
		if err != nil {
			t.Fatalf("GetProfile failed: %v", err)
		}
		if !got.IsPro {
			t.Error("client save clobbered server-set is_pro")
		}
		if got.Name != "Ana Maria" {
			t.Errorf("Name = %q, want %q", got.Name, "Ana Maria")
		}
	})
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser and lookups", func(t *testing.T) {
		user := models.NewUser("bob@example.com", "Bob", "hash")
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		byEmail, err := store.GetUserByEmail(ctx, "bob@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if byEmail == nil || byEmail.ID != user.ID {
			t.Errorf("GetUserByEmail = %+v, want user %s", byEmail, user.ID)
		}

		byID, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if byID == nil || byID.Email != user.Email {
			t.Errorf("GetUserByID = %+v, want email %s", byID, user.Email)
		}
	})

	t.Run("missing user returns nil without error", func(t *testing.T) {
		user, err := store.GetUserByEmail(ctx, "nobody@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if user != nil {
			t.Errorf("expected nil user, got %+v", user)
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		if err := store.CreateUser(ctx, models.NewUser("bob@example.com", "Other Bob", "hash2")); err == nil {
			t.Error("expected unique constraint error, got nil")
		}
	})
}
