package feed

import (
	"encoding/json"
	"fmt"

	"court-grid/internal/domain/event"
)

// Encode serializes an envelope for the wire.
func Encode(env event.Envelope) ([]byte, error) {
	if _, err := event.ParseKind(env.Kind); err != nil {
		return nil, err
	}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}
	return data, nil
}

// Decode parses a wire message. Messages with an unknown kind are rejected
// here so they never reach the reconciler.
func Decode(data []byte) (event.Envelope, error) {
	var env event.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return event.Envelope{}, fmt.Errorf("failed to unmarshal envelope: %w", err)
	}
	if _, err := event.ParseKind(env.Kind); err != nil {
		return event.Envelope{}, err
	}
	return env, nil
}
