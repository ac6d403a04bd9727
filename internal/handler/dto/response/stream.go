package response

import (
	"court-grid/internal/usecase/projection"
)

// ChangeMessage is one websocket frame of the change stream.
type ChangeMessage struct {
	Kind   string            `json:"kind"`
	Key    *KeyResponse      `json:"key,omitempty"`
	Before *SnapshotResponse `json:"before,omitempty"`
	After  *SnapshotResponse `json:"after,omitempty"`
}

func FromChange(c projection.Change) (ChangeMessage, error) {
	msg := ChangeMessage{Kind: string(c.Kind)}
	switch c.Kind {
	case projection.ChangeSet, projection.ChangeDeleted:
		key := FromKey(c.Key)
		msg.Key = &key
		before, err := FromSnapshot(c.Key, c.Before)
		if err != nil {
			return ChangeMessage{}, err
		}
		after, err := FromSnapshot(c.Key, c.After)
		if err != nil {
			return ChangeMessage{}, err
		}
		msg.Before = &before
		msg.After = &after
	}
	return msg, nil
}
