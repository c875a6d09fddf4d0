// Package models defines the core domain models for Slate.
//
// # Models
//
//   - Bill: a single payable obligation with an amount and a due date
//   - Category: a bill tag with a display label and an emoji glyph
//   - Profile: the device owner's profile and display preferences
//   - User: a registered account on the remote store
//
// # Design Principles
//
// 1. **Local-first**: Bill and Profile are serialized into the on-device
// cache as JSON; the struct tags define that format.
//
// 2. **Server-owned entitlement**: Profile.IsPro is never written to the
// local cache and is only trusted when it comes from the remote store.
// The `json:"-"` tag enforces this at the serialization boundary.
//
// 3. **Lexically ordered dates**: due dates are "YYYY-MM-DD" strings, so
// plain string comparison orders them correctly. Paid timestamps are real
// time.Time values because they record an instant, not a calendar day.
//
// 4. **Exact money**: amounts use decimal.Decimal with cent precision,
// never floats.
package models
