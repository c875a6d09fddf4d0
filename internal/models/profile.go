package models

// Profile holds the device owner's identity and display preferences.
// There is at most one profile per user.
type Profile struct {
	// Name is the display name entered during onboarding.
	Name string `json:"name"`

	// Country is the user's country name.
	Country string `json:"country"`

	// CurrencySymbol is the symbol used when rendering amounts (e.g. "₱").
	CurrencySymbol string `json:"currencySymbol"`

	// Locale is a BCP 47 tag used for number and date formatting
	// (e.g. "en-PH").
	Locale string `json:"locale"`

	// Email is optional and only set once the user signs in.
	Email string `json:"email,omitempty"`

	// IsPro is the server-controlled entitlement flag. It is excluded from
	// JSON so it can never leak into (or be resurrected from) the local
	// cache: the only source of a true value is the remote profile row.
	IsPro bool `json:"-"`
}
