package commands

import (
	"context"
	"sync"

	"court-grid/internal/domain/menu"
	"court-grid/internal/domain/slot"
	"court-grid/internal/usecase/projection"
	"court-grid/internal/usecase/queries"
	"court-grid/internal/usecase/shared"
)

type MenuView struct {
	State  menu.State
	Target *menu.Target
	Items  []menu.Item
}

type ChooseResult struct {
	Action   menu.Action
	Key      slot.Key
	Snapshot slot.Snapshot
}

// Dispatcher drives the per-cell context menu.
type Dispatcher interface {
	Open(resourceID int64, interval string) (MenuView, error)
	Close() MenuView
	Choose(ctx context.Context, action menu.Action, categoryID int64) (*ChooseResult, error)
	View() MenuView
}

type dispatcherImpl struct {
	store   *projection.Store
	session *shared.Session
	mutator Mutator

	mu   sync.Mutex
	menu *menu.Menu
}

func NewDispatcher(store *projection.Store, session *shared.Session, mutator Mutator) Dispatcher {
	return &dispatcherImpl{
		store:   store,
		session: session,
		mutator: mutator,
		menu:    menu.New(),
	}
}

// Open shows the menu over a bookable cell. Any open menu is closed first.
func (d *dispatcherImpl) Open(resourceID int64, interval string) (MenuView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.menu.Close()
	key, err := queries.KeyFor(d.session, resourceID, interval)
	if err != nil {
		return d.view(), err
	}
	if !d.store.Get(key).IsBookable() {
		return d.view(), shared.Invalid(shared.ErrSlotNotAvailable)
	}
	d.menu.Open(menu.Target{ResourceID: key.ResourceID, Interval: key.Interval})
	return d.view(), nil
}

func (d *dispatcherImpl) Close() MenuView {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.menu.Close()
	return d.view()
}

func (d *dispatcherImpl) View() MenuView {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.view()
}

func (d *dispatcherImpl) Choose(ctx context.Context, action menu.Action, categoryID int64) (*ChooseResult, error) {
	d.mu.Lock()
	target, err := d.menu.Choose(action)
	d.mu.Unlock()
	if err != nil {
		return nil, shared.Invalid(err)
	}

	switch action {
	case menu.ActionMarkSlot:
		key, snap, err := d.mutator.MarkSlot(ctx, target.ResourceID, target.Interval, categoryID)
		if err != nil {
			return nil, err
		}
		return &ChooseResult{Action: action, Key: key, Snapshot: snap}, nil
	case menu.ActionBlock:
		return nil, shared.Invalid(shared.ErrActionDisabled)
	default:
		return nil, shared.Invalid(shared.ErrUnknownAction)
	}
}

func (d *dispatcherImpl) view() MenuView {
	v := MenuView{State: d.menu.State(), Items: d.menu.Items()}
	if t, ok := d.menu.Target(); ok {
		v.Target = &t
	}
	return v
}
