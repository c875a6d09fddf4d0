// Package localcache is the on-device durable cache: two JSON slots, one
// for the bill list and one for the profile, stored as files in a data
// directory.
//
// The cache is deliberately forgiving. A missing, unreadable, or corrupt
// slot reads as "no data" rather than an error, so a damaged cache can
// never take the application down; the slot is simply rewritten on the
// next save.
package localcache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/slateapp/slate/internal/models"
)

const (
	billsSlot   = "bills.json"
	profileSlot = "profile.json"
)

// Cache reads and writes the device's cache slots.
type Cache struct {
	dir string
}

// New creates a cache rooted at dir, creating the directory if needed.
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// LoadBills reads the bill slot. Missing or corrupt data reads as empty.
func (c *Cache) LoadBills() []models.Bill {
	var bills []models.Bill
	if !c.read(billsSlot, &bills) {
		return nil
	}
	return bills
}

// SaveBills overwrites the bill slot.
func (c *Cache) SaveBills(bills []models.Bill) error {
	if bills == nil {
		bills = []models.Bill{}
	}
	return c.write(billsSlot, bills)
}

// LoadProfile reads the profile slot. Returns nil if absent or corrupt.
// The entitlement flag is never part of the slot, so a loaded profile
// always has IsPro false.
func (c *Cache) LoadProfile() *models.Profile {
	var profile models.Profile
	if !c.read(profileSlot, &profile) {
		return nil
	}
	return &profile
}

// SaveProfile overwrites the profile slot.
func (c *Cache) SaveProfile(profile models.Profile) error {
	return c.write(profileSlot, profile)
}

// ClearProfile removes the profile slot.
func (c *Cache) ClearProfile() error {
	err := os.Remove(filepath.Join(c.dir, profileSlot))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear profile slot: %w", err)
	}
	return nil
}

// read unmarshals a slot into v. Returns false when the slot has no
// usable data, for any reason.
func (c *Cache) read(slot string, v any) bool {
	data, err := os.ReadFile(filepath.Join(c.dir, slot))
	if err != nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

// write marshals v into a slot via a temp file and rename, so a crash
// mid-write cannot leave a half-written slot behind.
func (c *Cache) write(slot string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", slot, err)
	}

	tmp, err := os.CreateTemp(c.dir, slot+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", slot, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(c.dir, slot)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", slot, err)
	}
	return nil
}
