package shared

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"court-grid/internal/domain/slot"
)

// Selection is the facility/date the session is looking at. Generation is
// bumped on every change and acts as the cancellation token of in-flight work.
type Selection struct {
	FacilityID int64
	Date       slot.Date
	Generation uint64
}

func (s Selection) IsSet() bool {
	return s.FacilityID > 0 && !s.Date.IsZero()
}

// Session is the state of one open owner dashboard. It is passed by
// reference to every component instead of living in globals.
type Session struct {
	mu       sync.RWMutex
	sel      Selection
	clientID string
	loading  *LoadingFlags
	detail   *DetailView
}

func NewSession() *Session {
	return &Session{
		clientID: uuid.NewString(),
		loading:  NewLoadingFlags(),
		detail:   &DetailView{},
	}
}

// Select switches the selection and returns the previous and new values.
func (s *Session) Select(facilityID int64, date slot.Date) (prev, next Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev = s.sel
	s.sel = Selection{
		FacilityID: facilityID,
		Date:       date,
		Generation: prev.Generation + 1,
	}
	return prev, s.sel
}

func (s *Session) Token() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sel
}

// IsCurrent reports whether work started under tok may still write.
func (s *Session) IsCurrent(tok Selection) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sel.Generation == tok.Generation
}

func (s *Session) ClientID() string    { return s.clientID }
func (s *Session) Loading() *LoadingFlags { return s.loading }
func (s *Session) Detail() *DetailView    { return s.detail }

// LoadingFlags tracks every in-flight suspension point by name so duplicate
// invocations can be refused and the UI can show progress.
type LoadingFlags struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func NewLoadingFlags() *LoadingFlags {
	return &LoadingFlags{active: make(map[string]struct{})}
}

// Begin claims name; it returns false when it is already held.
func (f *LoadingFlags) Begin(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.active[name]; ok {
		return false
	}
	f.active[name] = struct{}{}
	return true
}

func (f *LoadingFlags) End(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.active, name)
}

func (f *LoadingFlags) IsActive(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.active[name]
	return ok
}

func (f *LoadingFlags) Active() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.active))
	for name := range f.active {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// DetailView is the slot currently inspected by the owner.
type DetailView struct {
	mu       sync.RWMutex
	open     bool
	key      slot.Key
	snapshot slot.Snapshot
}

func (d *DetailView) Open(key slot.Key, s slot.Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = true
	d.key = key
	d.snapshot = s
}

func (d *DetailView) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = false
	d.key = slot.Key{}
	d.snapshot = slot.Snapshot{}
}

func (d *DetailView) Current() (slot.Key, slot.Snapshot, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.key, d.snapshot, d.open
}

// Refresh replaces the shown snapshot when key is the open one.
func (d *DetailView) Refresh(key slot.Key, s slot.Snapshot) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open || d.key != key {
		return false
	}
	d.snapshot = s
	return true
}
