package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload converts an event payload to T. Payloads published in
// process are already the typed struct and pass through untouched; anything
// that crossed a serialization boundary falls back to a JSON round-trip.
func DecodePayload[T any](payload interface{}) (T, error) {
	if typed, ok := payload.(T); ok {
		return typed, nil
	}

	var decoded T
	raw, err := json.Marshal(payload)
	if err != nil {
		return decoded, fmt.Errorf("encode payload: %w", err)
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return decoded, fmt.Errorf("decode payload as %T: %w", decoded, err)
	}
	return decoded, nil
}
