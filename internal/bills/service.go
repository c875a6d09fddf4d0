// Package bills is the reconciliation layer for the bill list.
//
// A Service owns the one authoritative in-memory bill list for the
// session. Reads and writes go through the local cache unconditionally;
// the remote store participates only while an owner identity is set, and
// only best-effort: a failed remote write is reported through the
// notifier and never rolls back the optimistic local change.
package bills

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/slateapp/slate/internal/metrics"
	"github.com/slateapp/slate/internal/models"
	"github.com/slateapp/slate/internal/notify"
	"github.com/slateapp/slate/internal/storage"
	"github.com/slateapp/slate/internal/storage/localcache"
)

// ErrBillNotFound is returned when an operation names an unknown bill ID.
var ErrBillNotFound = errors.New("bill not found")

// Service maintains the in-memory bill list and reconciles it with the
// local cache and, when signed in, the remote store.
//
// All fields are guarded by mu. The lock is held across remote writes,
// which serializes them behind the in-memory mutation that triggered
// them; this is the Go rendition of the single-owner execution model.
type Service struct {
	mu     sync.Mutex
	cache  *localcache.Cache
	remote storage.RemoteStore
	notify notify.Notifier
	now    func() time.Time

	ownerID string
	bills   []models.Bill
	loaded  bool
}

// NewService creates a bill service. The remote store may be shared with
// other services; the cache must be exclusive to this device.
func NewService(cache *localcache.Cache, remote storage.RemoteStore, notifier notify.Notifier) *Service {
	return &Service{
		cache:  cache,
		remote: remote,
		notify: notifier,
		now:    time.Now,
	}
}

// Load runs the load protocol for the given identity. It is called once
// per identity change: ownerID is empty when signed out.
//
// Signed out, the local cache is the only source. Signed in, a non-empty
// remote set is authoritative and overwrites both memory and cache; an
// empty remote set with local data triggers the first-sync push of every
// local bill; a remote read failure degrades to the cached data.
// No failure mode is fatal.
func (s *Service) Load(ctx context.Context, ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ownerID = ownerID

	if ownerID == "" {
		s.bills = s.cache.LoadBills()
		s.loaded = true
		return
	}

	remoteBills, err := s.remote.ListBills(ctx, ownerID)
	metrics.ObserveRemoteOp("list bills", err)
	if err != nil {
		s.notify.Warn("load bills", err)
		s.bills = s.cache.LoadBills()
		s.loaded = true
		return
	}

	local := s.cache.LoadBills()
	s.loaded = true
	switch {
	case len(remoteBills) > 0:
		// Remote is source of truth once it has data. Local-only bills
		// not present remotely are discarded here.
		s.bills = remoteBills
		s.saveCacheLocked()
	case len(local) > 0:
		// First sync from this device: seed the remote with the local
		// list. Failed pushes keep the bill locally and are reported.
		s.bills = local
		for _, b := range local {
			err := s.remote.InsertBill(ctx, ownerID, b)
			metrics.ObserveRemoteOp("insert bill", err)
			if err != nil {
				s.notify.Warn("push local bill", err)
				continue
			}
			metrics.FirstSyncPushes.Inc()
		}
	default:
		s.bills = nil
	}
}

// Bills returns a snapshot of the current bill list.
func (s *Service) Bills() []models.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Bill, len(s.bills))
	copy(out, s.bills)
	return out
}

// AddParams are the caller-supplied fields of a new bill.
type AddParams struct {
	Name        string
	Category    models.Category
	Amount      decimal.Decimal
	DueDate     string
	IsPaid      bool
	IsRecurring bool
	Notes       string
}

// Add creates a bill with a fresh unique ID, appends it to the list, and
// mirrors it to the remote store if signed in.
func (s *Service) Add(ctx context.Context, params AddParams) models.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()

	bill := models.Bill{
		ID:          uuid.New().String(),
		Name:        params.Name,
		Category:    params.Category,
		Amount:      params.Amount,
		DueDate:     params.DueDate,
		IsPaid:      params.IsPaid,
		IsRecurring: params.IsRecurring,
		Notes:       params.Notes,
	}
	if bill.IsPaid {
		now := s.now().UTC()
		bill.PaidAt = &now
	}

	s.bills = append(s.bills, bill)
	s.saveCacheLocked()

	s.remoteWriteLocked("insert bill", func() error {
		return s.remote.InsertBill(ctx, s.ownerID, bill)
	})

	return bill
}

// Update merges the patch into the matching bill. When signed in, only
// the patched fields are sent as a remote partial update.
func (s *Service) Update(ctx context.Context, id string, patch models.BillPatch) (models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return models.Bill{}, ErrBillNotFound
	}

	patch.Apply(&s.bills[idx])
	s.saveCacheLocked()

	s.remoteWriteLocked("update bill", func() error {
		return s.remote.UpdateBill(ctx, s.ownerID, id, patch)
	})

	return s.bills[idx], nil
}

// TogglePaid flips the bill's paid state. Transitioning to paid stamps
// PaidAt with the current instant; transitioning back clears it. The
// remote transition is computed from the authoritative in-memory prior
// value, not from a remote read, so rapid toggles cannot race a stale
// remote row.
func (s *Service) TogglePaid(ctx context.Context, id string) (models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return models.Bill{}, ErrBillNotFound
	}

	bill := &s.bills[idx]
	if bill.IsPaid {
		bill.IsPaid = false
		bill.PaidAt = nil
	} else {
		now := s.now().UTC()
		bill.IsPaid = true
		bill.PaidAt = &now
	}
	s.saveCacheLocked()

	isPaid := bill.IsPaid
	paidAt := bill.PaidAt
	s.remoteWriteLocked("toggle bill", func() error {
		return s.remote.UpdateBill(ctx, s.ownerID, id, models.BillPatch{
			IsPaid: &isPaid,
			PaidAt: &paidAt,
		})
	})

	return *bill, nil
}

// Delete removes the bill from the list and the remote store.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return ErrBillNotFound
	}

	s.bills = append(s.bills[:idx], s.bills[idx+1:]...)
	s.saveCacheLocked()

	s.remoteWriteLocked("delete bill", func() error {
		return s.remote.DeleteBill(ctx, s.ownerID, id)
	})

	return nil
}

// indexLocked returns the position of the bill with the given ID, or -1.
func (s *Service) indexLocked(id string) int {
	for i := range s.bills {
		if s.bills[i].ID == id {
			return i
		}
	}
	return -1
}

// saveCacheLocked persists the in-memory list to the local cache.
// Nothing is written before the initial load has completed, so a slow
// startup can never clobber the cache with an empty default.
func (s *Service) saveCacheLocked() {
	if !s.loaded {
		return
	}
	if err := s.cache.SaveBills(s.bills); err != nil {
		slog.Error("failed to write local bill cache", "error", err)
	}
}

// remoteWriteLocked runs a best-effort remote write when signed in.
// Failures are counted and reported, never returned: the optimistic
// in-memory change stands and the remote stays inconsistent until the
// next successful write or full reload.
func (s *Service) remoteWriteLocked(op string, fn func() error) {
	if s.ownerID == "" {
		return
	}
	err := fn()
	metrics.ObserveRemoteOp(op, err)
	if err != nil {
		s.notify.Warn(op, err)
	}
}
