package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/slateapp/slate/internal/models"
	"github.com/slateapp/slate/internal/storage"
)

// GetProfile returns the owner's profile row, including the entitlement
// flag. Returns storage.ErrNotFound if no row exists yet.
func (s *Store) GetProfile(ctx context.Context, ownerID string) (models.Profile, error) {
	query := `
		SELECT name, country, currency_symbol, locale, email, is_pro
		FROM profiles
		WHERE owner_id = ?
	`

	var p models.Profile
	err := s.db.QueryRowContext(ctx, query, ownerID).Scan(
		&p.Name,
		&p.Country,
		&p.CurrencySymbol,
		&p.Locale,
		&p.Email,
		&p.IsPro,
	)
	if err == sql.ErrNoRows {
		return models.Profile{}, fmt.Errorf("profile for %s: %w", ownerID, storage.ErrNotFound)
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}

	return p, nil
}

// SaveProfile inserts or updates the owner's profile row. The is_pro
// column is absent from the statement entirely: inserts take the schema
// default (false) and updates leave the stored value untouched.
func (s *Store) SaveProfile(ctx context.Context, ownerID string, profile models.Profile) error {
	query := `
		INSERT INTO profiles (owner_id, name, country, currency_symbol, locale, email)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner_id) DO UPDATE SET
			name = excluded.name,
			country = excluded.country,
			currency_symbol = excluded.currency_symbol,
			locale = excluded.locale,
			email = excluded.email
	`

	_, err := s.db.ExecContext(ctx, query,
		ownerID,
		profile.Name,
		profile.Country,
		profile.CurrencySymbol,
		profile.Locale,
		profile.Email,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	return nil
}
