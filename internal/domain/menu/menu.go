package menu

import (
	"errors"
)

var (
	ErrMenuHidden     = errors.New("context menu is not open")
	ErrActionDisabled = errors.New("context menu action is disabled")
	ErrUnknownAction  = errors.New("unknown context menu action")
)

type State string

const (
	StateHidden  State = "hidden"
	StateVisible State = "visible"
)

type Action string

const (
	ActionMarkSlot Action = "mark_slot"
	// ActionBlock is rendered for layout parity but is never invocable.
	ActionBlock Action = "block"
)

type Item struct {
	Action  Action
	Label   string
	Enabled bool
}

var items = []Item{
	{Action: ActionMarkSlot, Label: "Mark slot", Enabled: true},
	{Action: ActionBlock, Label: "Block", Enabled: false},
}

// Target is the cell a menu was opened over.
type Target struct {
	ResourceID int64
	Interval   string
}

// Menu is the single context menu of a session. Only one menu is visible at
// a time; opening a new one replaces the old target.
type Menu struct {
	state  State
	target Target
}

func New() *Menu {
	return &Menu{state: StateHidden}
}

func (m *Menu) State() State { return m.state }

func (m *Menu) IsVisible() bool { return m.state == StateVisible }

func (m *Menu) Target() (Target, bool) {
	if m.state != StateVisible {
		return Target{}, false
	}
	return m.target, true
}

func (m *Menu) Open(t Target) {
	m.state = StateVisible
	m.target = t
}

func (m *Menu) Close() {
	m.state = StateHidden
	m.target = Target{}
}

func (m *Menu) Items() []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// Choose resolves an action against the visible menu and hides it. Disabled
// actions leave the menu open.
func (m *Menu) Choose(a Action) (Target, error) {
	if m.state != StateVisible {
		return Target{}, ErrMenuHidden
	}
	item, ok := lookup(a)
	if !ok {
		return Target{}, ErrUnknownAction
	}
	if !item.Enabled {
		return Target{}, ErrActionDisabled
	}
	t := m.target
	m.Close()
	return t, nil
}

func lookup(a Action) (Item, bool) {
	for _, it := range items {
		if it.Action == a {
			return it, true
		}
	}
	return Item{}, false
}
