// Package app coordinates the identity state machine across the
// reconciliation services.
//
// The session moves between Anonymous and Synced(user); every transition
// re-runs the load protocol on both services so the data source always
// matches the identity.
package app

import (
	"context"
	"sync"
)

// Loader is the load half of a reconciliation service.
type Loader interface {
	Load(ctx context.Context, ownerID string)
}

// App fans identity changes out to the reconciliation services.
// Transitions are serialized; handlers may call SignIn, SignOut and
// UserID concurrently.
type App struct {
	mu      sync.Mutex
	loaders []Loader
	userID  string
}

// New creates the coordinator. Loaders run in the given order on every
// identity change.
func New(loaders ...Loader) *App {
	return &App{loaders: loaders}
}

// SignIn switches the session to the given user and reloads all services
// against the remote store.
func (a *App) SignIn(ctx context.Context, userID string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.userID = userID
	for _, l := range a.loaders {
		l.Load(ctx, userID)
	}
}

// SignOut switches the session back to anonymous, local-cache-only data.
func (a *App) SignOut(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.userID = ""
	for _, l := range a.loaders {
		l.Load(ctx, "")
	}
}

// UserID returns the signed-in user, or empty when anonymous.
func (a *App) UserID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userID
}
