// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/slateapp/slate/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// RemoteStore is the authenticated, per-user backing store. Every operation
// is scoped to an owner: callers can only see and touch their own rows.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// a hosted service) without changing the reconciliation layer.
type RemoteStore interface {
	// ListBills returns all bills owned by ownerID, oldest created first.
	ListBills(ctx context.Context, ownerID string) ([]models.Bill, error)

	// InsertBill persists a new bill row for the owner.
	// The bill must already carry its ID.
	InsertBill(ctx context.Context, ownerID string, bill models.Bill) error

	// UpdateBill applies a partial update to the owner's bill and stamps
	// the row's updated-at marker. Returns ErrNotFound if no such row.
	UpdateBill(ctx context.Context, ownerID, billID string, patch models.BillPatch) error

	// DeleteBill removes the owner's bill row. Deleting a row that does
	// not exist is not an error.
	DeleteBill(ctx context.Context, ownerID, billID string) error

	// GetProfile returns the owner's profile row, including the
	// server-controlled entitlement flag. Returns ErrNotFound if the
	// owner has no profile row yet.
	GetProfile(ctx context.Context, ownerID string) (models.Profile, error)

	// SaveProfile inserts or updates the owner's profile row.
	// The entitlement flag is never written: on insert it defaults to
	// false, on update the stored value is left untouched.
	SaveProfile(ctx context.Context, ownerID string, profile models.Profile) error
}

// UserStore persists registered accounts. Kept separate from RemoteStore so
// the authenticator does not depend on bill storage.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
