package domain

// AvatarStyleDefault is the sentinel style stored when a character has never
// picked one. Records missing a style are normalized to it on load.
const AvatarStyleDefault = "classic"

// AvatarStyleOption is one entry in the fixed style catalog, with the
// swatch color the UI renders for it.
type AvatarStyleOption struct {
	ID    string `json:"id"`
	Color string `json:"color"`
}

// avatarStyleCatalog is the fixed set of selectable styles. Order matters:
// the UI renders swatches in this order.
var avatarStyleCatalog = []AvatarStyleOption{
	{ID: AvatarStyleDefault, Color: "#8d99ae"},
	{ID: "crimson", Color: "#d90429"},
	{ID: "emerald", Color: "#2a9d8f"},
	{ID: "azure", Color: "#0077b6"},
	{ID: "violet", Color: "#7209b7"},
	{ID: "amber", Color: "#f4a261"},
}

// AvatarStyles returns the selectable style catalog
func AvatarStyles() []AvatarStyleOption {
	out := make([]AvatarStyleOption, len(avatarStyleCatalog))
	copy(out, avatarStyleCatalog)
	return out
}

// AvatarColor returns the swatch color for a style ID. Unrecognized IDs are
// legal (styles are stored as given) and render with the default swatch.
func AvatarColor(styleID string) string {
	for _, s := range avatarStyleCatalog {
		if s.ID == styleID {
			return s.Color
		}
	}
	return avatarStyleCatalog[0].Color
}

// KnownAvatarStyle reports whether the style ID is in the catalog
func KnownAvatarStyle(styleID string) bool {
	for _, s := range avatarStyleCatalog {
		if s.ID == styleID {
			return true
		}
	}
	return false
}
