package models

// Category is a bill tag: a display label plus an emoji glyph.
// Categories either come from the fixed catalog below or are user-defined.
type Category struct {
	Label string `json:"label"`
	Emoji string `json:"emoji"`
}

// Catalog is the fixed set of built-in bill categories, in display order.
var Catalog = []Category{
	// Needs
	{Label: "Rent", Emoji: "🏠"},
	{Label: "Electricity", Emoji: "💡"},
	{Label: "Water", Emoji: "💧"},
	{Label: "Internet", Emoji: "🌐"},
	{Label: "Phone", Emoji: "📱"},
	{Label: "Insurance", Emoji: "🛡️"},
	{Label: "Loans", Emoji: "💳"},
	{Label: "Car Payment", Emoji: "🚗"},
	{Label: "Food", Emoji: "🍔"},
	// Wants
	{Label: "Shopping", Emoji: "🛍️"},
	{Label: "Transport", Emoji: "🚌"},
}

// CatalogLookup returns the built-in category with the given label.
// The second return is false for labels outside the catalog, which callers
// should treat as user-defined ("custom") categories.
func CatalogLookup(label string) (Category, bool) {
	for _, c := range Catalog {
		if c.Label == label {
			return c, true
		}
	}
	return Category{}, false
}
