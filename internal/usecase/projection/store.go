package projection

import (
	"sort"
	"sync"
	"sync/atomic"

	"court-grid/internal/domain/slot"
)

type ChangeKind string

const (
	ChangeSet      ChangeKind = "set"
	ChangeDeleted  ChangeKind = "deleted"
	ChangeReplaced ChangeKind = "replaced"
	ChangeCleared  ChangeKind = "cleared"
)

// Change describes one successful write. Key, Before and After are only
// meaningful for ChangeSet and ChangeDeleted.
type Change struct {
	Kind   ChangeKind
	Key    slot.Key
	Before slot.Snapshot
	After  slot.Snapshot
}

type Listener func(Change)

// Op is the decision returned by an Update callback.
type Op int

const (
	Keep Op = iota
	Put
	Remove
)

// Store is the in-memory projection of the grid. Absent keys read as
// available. Listeners run on the writing goroutine after the lock is
// released.
type Store struct {
	mu      sync.RWMutex
	entries map[slot.Key]slot.Snapshot
	rev     atomic.Uint64

	subMu     sync.Mutex
	listeners map[int]Listener
	nextSub   int
}

func NewStore() *Store {
	return &Store{
		entries:   make(map[slot.Key]slot.Snapshot),
		listeners: make(map[int]Listener),
	}
}

// NextRevision hands out the session-wide monotonic revision shared by local
// mutations and event arrivals.
func (s *Store) NextRevision() uint64 {
	return s.rev.Add(1)
}

func (s *Store) Get(key slot.Key) slot.Snapshot {
	snap, ok := s.Lookup(key)
	if !ok {
		return slot.Available()
	}
	return snap
}

func (s *Store) Lookup(key slot.Key) (slot.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.entries[key]
	return snap, ok
}

func (s *Store) Set(key slot.Key, snap slot.Snapshot) {
	s.mu.Lock()
	before, ok := s.entries[key]
	if !ok {
		before = slot.Available()
	}
	s.entries[key] = snap
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeSet, Key: key, Before: before, After: snap})
}

func (s *Store) Delete(key slot.Key) bool {
	s.mu.Lock()
	before, ok := s.entries[key]
	if ok {
		delete(s.entries, key)
	}
	s.mu.Unlock()

	if ok {
		s.notify(Change{Kind: ChangeDeleted, Key: key, Before: before, After: slot.Available()})
	}
	return ok
}

// Replace swaps the whole content in one step.
func (s *Store) Replace(entries map[slot.Key]slot.Snapshot) {
	next := make(map[slot.Key]slot.Snapshot, len(entries))
	for k, v := range entries {
		next[k] = v
	}
	s.mu.Lock()
	s.entries = next
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeReplaced})
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = make(map[slot.Key]slot.Snapshot)
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeCleared})
}

// Commit is evaluated under the write lock right before a conditional write.
// Returning false aborts the write. It must not call back into the store.
type Commit func() bool

// ReplaceIf is Replace gated by commit. The check and the swap are one step,
// so a write whose commit fails never lands after a newer one.
func (s *Store) ReplaceIf(entries map[slot.Key]slot.Snapshot, commit Commit) bool {
	next := make(map[slot.Key]slot.Snapshot, len(entries))
	for k, v := range entries {
		next[k] = v
	}
	s.mu.Lock()
	if !commit() {
		s.mu.Unlock()
		return false
	}
	s.entries = next
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeReplaced})
	return true
}

// ClearIf is Clear gated by commit.
func (s *Store) ClearIf(commit Commit) bool {
	s.mu.Lock()
	if !commit() {
		s.mu.Unlock()
		return false
	}
	s.entries = make(map[slot.Key]slot.Snapshot)
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeCleared})
	return true
}

// SetIf writes every entry or none, gated by commit.
func (s *Store) SetIf(entries map[slot.Key]slot.Snapshot, commit Commit) bool {
	s.mu.Lock()
	if !commit() {
		s.mu.Unlock()
		return false
	}
	changes := make([]Change, 0, len(entries))
	for key, snap := range entries {
		before, ok := s.entries[key]
		if !ok {
			before = slot.Available()
		}
		s.entries[key] = snap
		changes = append(changes, Change{Kind: ChangeSet, Key: key, Before: before, After: snap})
	}
	s.mu.Unlock()

	sort.Slice(changes, func(i, j int) bool { return keyLess(changes[i].Key, changes[j].Key) })
	for _, c := range changes {
		s.notify(c)
	}
	return true
}

// Exclusive runs fn while holding the write lock, ordering it against every
// conditional write. fn must not call back into the store.
func (s *Store) Exclusive(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// Update runs a read-compare-write on a single key under the write lock.
// It returns the resulting snapshot and whether anything was written.
func (s *Store) Update(key slot.Key, fn func(cur slot.Snapshot, exists bool) (slot.Snapshot, Op)) (slot.Snapshot, bool) {
	s.mu.Lock()
	cur, exists := s.entries[key]
	if !exists {
		cur = slot.Available()
	}
	next, op := fn(cur, exists)

	var change Change
	switch op {
	case Put:
		s.entries[key] = next
		change = Change{Kind: ChangeSet, Key: key, Before: cur, After: next}
	case Remove:
		if !exists {
			s.mu.Unlock()
			return cur, false
		}
		delete(s.entries, key)
		next = slot.Available()
		change = Change{Kind: ChangeDeleted, Key: key, Before: cur, After: next}
	default:
		s.mu.Unlock()
		return cur, false
	}
	s.mu.Unlock()

	s.notify(change)
	return next, true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Keys returns every stored key ordered by resource, date and interval.
func (s *Store) Keys() []slot.Key {
	s.mu.RLock()
	keys := make([]slot.Key, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	s.mu.RUnlock()

	SortKeys(keys)
	return keys
}

// Entries copies the current content.
func (s *Store) Entries() map[slot.Key]slot.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[slot.Key]slot.Snapshot, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}

// FindByBooking returns every key currently holding bookingID.
func (s *Store) FindByBooking(bookingID int64) map[slot.Key]slot.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[slot.Key]slot.Snapshot)
	for k, v := range s.entries {
		if v.HasBooking(bookingID) {
			out[k] = v
		}
	}
	return out
}

// Subscribe registers fn for every subsequent change and returns a function
// that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) notify(c Change) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]Listener, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}

func SortKeys(keys []slot.Key) {
	sort.Slice(keys, func(i, j int) bool { return keyLess(keys[i], keys[j]) })
}

func keyLess(a, b slot.Key) bool {
	if a.ResourceID != b.ResourceID {
		return a.ResourceID < b.ResourceID
	}
	if a.Date != b.Date {
		return a.Date.String() < b.Date.String()
	}
	return a.Interval < b.Interval
}
