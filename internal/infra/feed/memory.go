package feed

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"court-grid/internal/domain/event"
)

var ErrClosed = errors.New("feed is closed")

// Hub is an in-process broker. Every MemoryFeed attached to the same hub
// sees the others' publications for the rooms it has joined.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[int64]map[*MemoryFeed]struct{}
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		rooms:  make(map[int64]map[*MemoryFeed]struct{}),
		logger: logger,
	}
}

// Attach creates a client of the hub with the given event buffer.
func (h *Hub) Attach(buffer int) *MemoryFeed {
	if buffer <= 0 {
		buffer = 1
	}
	return &MemoryFeed{
		hub:    h,
		events: make(chan event.Envelope, buffer),
		lost:   newLossSignal(),
		joined: make(map[int64]struct{}),
	}
}

func (h *Hub) join(f *MemoryFeed, facilityID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[facilityID]
	if !ok {
		room = make(map[*MemoryFeed]struct{})
		h.rooms[facilityID] = room
	}
	room[f] = struct{}{}
}

func (h *Hub) leave(f *MemoryFeed, facilityID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[facilityID]
	if !ok {
		return
	}
	delete(room, f)
	if len(room) == 0 {
		delete(h.rooms, facilityID)
	}
}

func (h *Hub) broadcast(env event.Envelope) {
	h.mu.RLock()
	members := make([]*MemoryFeed, 0, len(h.rooms[env.FacilityID]))
	for f := range h.rooms[env.FacilityID] {
		members = append(members, f)
	}
	h.mu.RUnlock()

	for _, f := range members {
		if !f.deliver(env) {
			h.logger.Warn("dropping event for slow subscriber",
				"facility_id", env.FacilityID,
				"kind", env.Kind)
		}
	}
}

// RoomSize reports how many clients are in a facility room.
func (h *Hub) RoomSize(facilityID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[facilityID])
}

// MemoryFeed is one client of a Hub.
type MemoryFeed struct {
	hub    *Hub
	mu     sync.Mutex
	events chan event.Envelope
	lost   lossSignal
	joined map[int64]struct{}
	closed bool
}

func (f *MemoryFeed) Join(_ context.Context, facilityID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	f.joined[facilityID] = struct{}{}
	f.hub.join(f, facilityID)
	return nil
}

func (f *MemoryFeed) Leave(_ context.Context, facilityID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	delete(f.joined, facilityID)
	f.hub.leave(f, facilityID)
	return nil
}

func (f *MemoryFeed) Publish(_ context.Context, env event.Envelope) error {
	f.mu.Lock()
	closed := f.closed
	f.mu.Unlock()
	if closed {
		return ErrClosed
	}
	// Round-trip through the codec so in-process delivery sees the same
	// values a networked transport would.
	data, err := Encode(env)
	if err != nil {
		return err
	}
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	f.hub.broadcast(decoded)
	return nil
}

func (f *MemoryFeed) Events() <-chan event.Envelope {
	return f.events
}

func (f *MemoryFeed) Lost() <-chan struct{} {
	return f.lost
}

func (f *MemoryFeed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	for id := range f.joined {
		f.hub.leave(f, id)
	}
	f.joined = nil
	close(f.events)
	return nil
}

func (f *MemoryFeed) deliver(env event.Envelope) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return true
	}
	select {
	case f.events <- env:
		return true
	default:
		f.lost.mark()
		return false
	}
}
