package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slateapp/slate/internal/models"
	"github.com/slateapp/slate/internal/storage"
	"github.com/slateapp/slate/internal/storage/localcache"
)

// fakeRemote implements the profile side of storage.RemoteStore.
type fakeRemote struct {
	profiles map[string]models.Profile
	fail     bool
}

var _ storage.RemoteStore = (*fakeRemote)(nil)

func newFakeRemote() *fakeRemote {
	return &fakeRemote{profiles: make(map[string]models.Profile)}
}

func (f *fakeRemote) GetProfile(_ context.Context, ownerID string) (models.Profile, error) {
	if f.fail {
		return models.Profile{}, errors.New("remote unavailable")
	}
	p, ok := f.profiles[ownerID]
	if !ok {
		return models.Profile{}, storage.ErrNotFound
	}
	return p, nil
}

func (f *fakeRemote) SaveProfile(_ context.Context, ownerID string, p models.Profile) error {
	if f.fail {
		return errors.New("remote unavailable")
	}
	// The store owns the entitlement flag: inserts default to false,
	// updates keep the stored value.
	if existing, ok := f.profiles[ownerID]; ok {
		p.IsPro = existing.IsPro
	} else {
		p.IsPro = false
	}
	f.profiles[ownerID] = p
	return nil
}

func (f *fakeRemote) ListBills(_ context.Context, _ string) ([]models.Bill, error) {
	return nil, nil
}
func (f *fakeRemote) InsertBill(_ context.Context, _ string, _ models.Bill) error { return nil }
func (f *fakeRemote) UpdateBill(_ context.Context, _, _ string, _ models.BillPatch) error {
	return nil
}
func (f *fakeRemote) DeleteBill(_ context.Context, _, _ string) error { return nil }

type recorder struct {
	ops []string
}

func (r *recorder) Warn(op string, _ error) { r.ops = append(r.ops, op) }

func newTestService(t *testing.T) (*Service, *localcache.Cache, *fakeRemote, *recorder) {
	t.Helper()

	cache, err := localcache.New(t.TempDir())
	require.NoError(t, err)

	remote := newFakeRemote()
	rec := &recorder{}
	return NewService(cache, remote, rec), cache, remote, rec
}

func testProfile(name string) models.Profile {
	return models.Profile{
		Name:           name,
		Country:        "Philippines",
		CurrencySymbol: "₱",
		Locale:         "en-PH",
	}
}

func TestSignedOutProfileComesFromCache(t *testing.T) {
	svc, cache, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, cache.SaveProfile(testProfile("Ana")))

	svc.Load(ctx, "")

	got := svc.Profile()
	require.NotNil(t, got)
	assert.Equal(t, "Ana", got.Name)
	assert.False(t, got.IsPro, "signed out entitlement is always false")
}

func TestAbsentProfileEverywhere(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	svc.Load(context.Background(), "owner-a")

	assert.Nil(t, svc.Profile(), "no profile anywhere routes to onboarding")
}

func TestRemoteProfileIsAuthoritative(t *testing.T) {
	svc, cache, remote, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, cache.SaveProfile(testProfile("Stale Local")))
	remoteProfile := testProfile("Ana")
	remoteProfile.IsPro = true
	remote.profiles["owner-a"] = remoteProfile

	svc.Load(ctx, "owner-a")

	got := svc.Profile()
	require.NotNil(t, got)
	assert.Equal(t, "Ana", got.Name)
	assert.True(t, got.IsPro, "entitlement comes from the remote row")

	// Cache was overwritten by the remote copy (sans entitlement).
	cached := cache.LoadProfile()
	require.NotNil(t, cached)
	assert.Equal(t, "Ana", cached.Name)
	assert.False(t, cached.IsPro)
}

func TestLocalProfileSeedsEmptyRemote(t *testing.T) {
	svc, cache, remote, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, cache.SaveProfile(testProfile("Ana")))

	svc.Load(ctx, "owner-a")

	seeded, ok := remote.profiles["owner-a"]
	require.True(t, ok, "local profile should seed the remote row")
	assert.Equal(t, "Ana", seeded.Name)
	assert.False(t, seeded.IsPro, "seeded entitlement defaults to false")
}

func TestRemoteFailureFallsBackToCache(t *testing.T) {
	svc, cache, remote, rec := newTestService(t)
	ctx := context.Background()

	require.NoError(t, cache.SaveProfile(testProfile("Ana")))
	remote.fail = true

	svc.Load(ctx, "owner-a")

	got := svc.Profile()
	require.NotNil(t, got)
	assert.Equal(t, "Ana", got.Name)
	assert.Contains(t, rec.ops, "load profile")
}

func TestSetIgnoresClientEntitlement(t *testing.T) {
	svc, cache, remote, _ := newTestService(t)
	ctx := context.Background()
	svc.Load(ctx, "owner-a")

	in := testProfile("Ana")
	in.IsPro = true // client cannot grant itself the entitlement
	svc.Set(ctx, in)

	got := svc.Profile()
	require.NotNil(t, got)
	assert.False(t, got.IsPro)
	require.NotNil(t, cache.LoadProfile())
	assert.False(t, remote.profiles["owner-a"].IsPro)
}

func TestSetPreservesRemoteEntitlement(t *testing.T) {
	svc, _, remote, _ := newTestService(t)
	ctx := context.Background()

	p := testProfile("Ana")
	p.IsPro = true
	remote.profiles["owner-a"] = p
	svc.Load(ctx, "owner-a")

	updated := testProfile("Ana Maria")
	svc.Set(ctx, updated)

	got := svc.Profile()
	require.NotNil(t, got)
	assert.Equal(t, "Ana Maria", got.Name)
	assert.True(t, got.IsPro, "entitlement survives a settings edit")
}

func TestClearDropsLocalOnly(t *testing.T) {
	svc, cache, remote, _ := newTestService(t)
	ctx := context.Background()

	remote.profiles["owner-a"] = testProfile("Ana")
	svc.Load(ctx, "owner-a")
	require.NotNil(t, svc.Profile())

	svc.Clear()

	assert.Nil(t, svc.Profile())
	assert.Nil(t, cache.LoadProfile())
	_, ok := remote.profiles["owner-a"]
	assert.True(t, ok, "remote row survives a local reset")
}
