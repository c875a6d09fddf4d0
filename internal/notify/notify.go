// Package notify is the side channel for degraded-mode warnings.
//
// Remote store failures never surface as errors to the caller that
// triggered them: the optimistic local state stands, and the failure is
// reported here instead so the presentation layer can tell the user their
// changes may not have synced.
package notify

import "log/slog"

// Notifier receives user-facing warnings about failed remote operations.
type Notifier interface {
	// Warn reports a non-fatal failure. op names the operation that
	// failed ("insert bill", "push local bills", ...).
	Warn(op string, err error)
}

// Log is a Notifier that writes warnings to the default slog logger.
type Log struct{}

var _ Notifier = Log{}

// Warn logs the failed operation.
func (Log) Warn(op string, err error) {
	slog.Warn("remote sync failed, local changes kept", "op", op, "error", err)
}
