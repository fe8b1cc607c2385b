package sse

import "github.com/questkeeper-app/questkeeper/internal/domain"

// CharacterPayload is the SSE payload for character.updated frames: the
// full snapshot plus the resolved swatch color, so clients render without
// knowing the style catalog.
type CharacterPayload struct {
	Character   domain.Character `json:"character"`
	AvatarColor string           `json:"avatar_color"`
}

// ConnectedPayload is the payload of the first frame on every stream
type ConnectedPayload struct {
	ClientID string   `json:"client_id"`
	Filters  []string `json:"filters,omitempty"`
}
