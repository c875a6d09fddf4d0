// Package profile is the reconciliation layer for the user profile.
//
// It mirrors the bill reconciliation rules for a single record: the local
// cache is the signed-out source of truth, the remote profile row wins
// once it exists, and the server-controlled entitlement flag is only ever
// taken from that row.
package profile

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/slateapp/slate/internal/metrics"
	"github.com/slateapp/slate/internal/models"
	"github.com/slateapp/slate/internal/notify"
	"github.com/slateapp/slate/internal/storage"
	"github.com/slateapp/slate/internal/storage/localcache"
)

// Service maintains the in-memory profile and reconciles it with the
// local cache and, when signed in, the remote store.
type Service struct {
	mu     sync.Mutex
	cache  *localcache.Cache
	remote storage.RemoteStore
	notify notify.Notifier

	ownerID string
	profile *models.Profile
	loaded  bool
}

// NewService creates a profile service sharing the device cache and the
// remote store with the bill service.
func NewService(cache *localcache.Cache, remote storage.RemoteStore, notifier notify.Notifier) *Service {
	return &Service{
		cache:  cache,
		remote: remote,
		notify: notifier,
	}
}

// Load runs the load protocol for the given identity (empty = signed out).
//
// A remote profile row is authoritative, including the entitlement flag.
// With no remote row but a cached local profile, the local profile seeds
// the remote (entitlement defaults to false server-side). With neither,
// the profile is absent and the caller should route to onboarding.
func (s *Service) Load(ctx context.Context, ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ownerID = ownerID

	if ownerID == "" {
		// Signed out there is no entitlement, whatever the cache says.
		s.profile = s.cache.LoadProfile()
		s.loaded = true
		return
	}

	remote, err := s.remote.GetProfile(ctx, ownerID)
	metrics.ObserveRemoteOp("get profile", err)
	switch {
	case err == nil:
		s.profile = &remote
		s.loaded = true
		s.saveCacheLocked()
	case errors.Is(err, storage.ErrNotFound):
		s.profile = s.cache.LoadProfile()
		s.loaded = true
		if s.profile != nil {
			s.remoteWriteLocked(ctx, "seed profile", *s.profile)
		}
	default:
		s.notify.Warn("load profile", err)
		s.profile = s.cache.LoadProfile()
		s.loaded = true
	}
}

// Profile returns the current profile, or nil when absent.
func (s *Service) Profile() *models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// Set replaces the profile and mirrors it to cache and remote.
// The entitlement flag of the argument is ignored: the in-memory value
// keeps whatever the remote last reported.
func (s *Service) Set(ctx context.Context, p models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile != nil {
		p.IsPro = s.profile.IsPro
	} else {
		p.IsPro = false
	}
	s.profile = &p
	s.saveCacheLocked()

	if s.ownerID != "" {
		s.remoteWriteLocked(ctx, "save profile", p)
	}
}

// Clear drops the in-memory profile and its cache slot. The remote row,
// if any, is left intact so signing in again restores the profile.
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = nil
	if !s.loaded {
		return
	}
	if err := s.cache.ClearProfile(); err != nil {
		slog.Error("failed to clear local profile cache", "error", err)
	}
}

// saveCacheLocked persists the profile slot once loading has completed.
// IsPro is stripped by the cache serialization itself.
func (s *Service) saveCacheLocked() {
	if !s.loaded || s.profile == nil {
		return
	}
	if err := s.cache.SaveProfile(*s.profile); err != nil {
		slog.Error("failed to write local profile cache", "error", err)
	}
}

// remoteWriteLocked mirrors the profile to the remote store best-effort.
func (s *Service) remoteWriteLocked(ctx context.Context, op string, p models.Profile) {
	err := s.remote.SaveProfile(ctx, s.ownerID, p)
	metrics.ObserveRemoteOp(op, err)
	if err != nil {
		s.notify.Warn(op, err)
	}
}
