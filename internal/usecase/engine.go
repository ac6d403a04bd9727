package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"court-grid/internal/domain/event"
	"court-grid/internal/domain/menu"
	"court-grid/internal/domain/slot"
	"court-grid/internal/infra/metrics"
	"court-grid/internal/pkg/errs"
	"court-grid/internal/usecase/commands"
	"court-grid/internal/usecase/projection"
	"court-grid/internal/usecase/queries"
	"court-grid/internal/usecase/reconcile"
	"court-grid/internal/usecase/shared"
)

// Engine is the caller contract of the booking grid session.
type Engine interface {
	Facilities(ctx context.Context) ([]shared.Facility, error)
	Select(ctx context.Context, facilityID int64, date slot.Date) error
	Reload(ctx context.Context) error
	Selection() shared.Selection

	CurrentStatus(resourceID int64, interval string) (slot.Status, error)
	Snapshot(resourceID int64, interval string) (slot.Key, slot.Snapshot, error)
	Grid() (*queries.Grid, error)

	MarkSlot(ctx context.Context, resourceID int64, interval string, categoryID int64) (slot.Key, slot.Snapshot, error)
	CreateBooking(ctx context.Context, slots []commands.SlotRef, categoryID int64) (*commands.CreateBookingOutcome, error)
	CompleteBooking(ctx context.Context, bookingID int64) error

	OpenDetail(resourceID int64, interval string) (slot.Key, slot.Snapshot, error)
	CloseDetail()
	Detail() (slot.Key, slot.Snapshot, bool)
	LookupCustomer(ctx context.Context, customerID int64) (*shared.CustomerDetails, error)

	Menu() commands.MenuView
	OpenMenu(resourceID int64, interval string) (commands.MenuView, error)
	CloseMenu() commands.MenuView
	ChooseMenu(ctx context.Context, action menu.Action, categoryID int64) (*commands.ChooseResult, error)

	Loading() []string
	Subscribe(fn projection.Listener) func()
	Apply(ctx context.Context, env event.Envelope) reconcile.Outcome
	Run(ctx context.Context) error
}

type engineImpl struct {
	store      *projection.Store
	session    *shared.Session
	loader     queries.Loader
	grid       queries.GridQueries
	facilities queries.FacilityQueries
	customers  queries.CustomerCache
	mutator    commands.Mutator
	dispatcher commands.Dispatcher
	reconciler *reconcile.Reconciler
	feed       shared.EventFeed
	logger     *slog.Logger
}

func NewEngine(
	store *projection.Store,
	session *shared.Session,
	loader queries.Loader,
	grid queries.GridQueries,
	facilities queries.FacilityQueries,
	customers queries.CustomerCache,
	mutator commands.Mutator,
	dispatcher commands.Dispatcher,
	reconciler *reconcile.Reconciler,
	feed shared.EventFeed,
	rec *metrics.Recorder,
	logger *slog.Logger,
) Engine {
	store.Subscribe(func(projection.Change) {
		rec.SetStoreEntries(store.Len())
	})
	return &engineImpl{
		store:      store,
		session:    session,
		loader:     loader,
		grid:       grid,
		facilities: facilities,
		customers:  customers,
		mutator:    mutator,
		dispatcher: dispatcher,
		reconciler: reconciler,
		feed:       feed,
		logger:     logger,
	}
}

func (e *engineImpl) Facilities(ctx context.Context) ([]shared.Facility, error) {
	return e.facilities.List(ctx)
}

// Select switches facility/date and awaits the snapshot load. A facility
// change moves the feed subscription and forgets settled bookings.
func (e *engineImpl) Select(ctx context.Context, facilityID int64, date slot.Date) error {
	if facilityID <= 0 || date.IsZero() {
		return shared.Invalid(shared.ErrNoFacility)
	}

	// Switching under the store lock orders the switch against every
	// selection-gated write.
	var prev, next shared.Selection
	e.store.Exclusive(func() {
		prev, next = e.session.Select(facilityID, date)
	})
	e.session.Detail().Close()
	e.dispatcher.Close()

	if prev.FacilityID != next.FacilityID {
		e.reconciler.ResetTombstones()
		e.store.Clear()
		if prev.FacilityID > 0 {
			if err := e.feed.Leave(ctx, prev.FacilityID); err != nil {
				e.logger.WarnContext(ctx, "failed to leave facility feed",
					slog.Int64("facility_id", prev.FacilityID),
					slog.String("error", err.Error()))
			}
		}
		if err := e.feed.Join(ctx, next.FacilityID); err != nil {
			e.logger.WarnContext(ctx, "failed to join facility feed",
				slog.Int64("facility_id", next.FacilityID),
				slog.String("error", err.Error()))
		}
	}

	e.logger.InfoContext(ctx, "selection changed",
		slog.Int64("facility_id", next.FacilityID),
		slog.String("date", next.Date.String()),
		slog.Uint64("generation", next.Generation))
	return e.loader.Load(ctx)
}

func (e *engineImpl) Reload(ctx context.Context) error {
	return e.loader.Load(ctx)
}

func (e *engineImpl) Selection() shared.Selection {
	return e.session.Token()
}

func (e *engineImpl) CurrentStatus(resourceID int64, interval string) (slot.Status, error) {
	return e.grid.CurrentStatus(resourceID, interval)
}

func (e *engineImpl) Snapshot(resourceID int64, interval string) (slot.Key, slot.Snapshot, error) {
	return e.grid.Snapshot(resourceID, interval)
}

func (e *engineImpl) Grid() (*queries.Grid, error) {
	return e.grid.Grid()
}

func (e *engineImpl) MarkSlot(ctx context.Context, resourceID int64, interval string, categoryID int64) (slot.Key, slot.Snapshot, error) {
	return e.mutator.MarkSlot(ctx, resourceID, interval, categoryID)
}

func (e *engineImpl) CreateBooking(ctx context.Context, slots []commands.SlotRef, categoryID int64) (*commands.CreateBookingOutcome, error) {
	return e.mutator.CreateBooking(ctx, slots, categoryID)
}

func (e *engineImpl) CompleteBooking(ctx context.Context, bookingID int64) error {
	return e.mutator.CompleteBooking(ctx, bookingID)
}

func (e *engineImpl) OpenDetail(resourceID int64, interval string) (slot.Key, slot.Snapshot, error) {
	key, snap, err := e.grid.Snapshot(resourceID, interval)
	if err != nil {
		return slot.Key{}, slot.Snapshot{}, err
	}
	e.session.Detail().Open(key, snap)
	return key, snap, nil
}

func (e *engineImpl) CloseDetail() {
	e.session.Detail().Close()
}

func (e *engineImpl) Detail() (slot.Key, slot.Snapshot, bool) {
	return e.session.Detail().Current()
}

// LookupCustomer resolves customer details and fills every cell still
// showing the loading placeholder for that customer.
func (e *engineImpl) LookupCustomer(ctx context.Context, customerID int64) (*shared.CustomerDetails, error) {
	// Concurrent lookups of one customer share the flag; only the first clears it.
	flag := fmt.Sprintf("customer:%d", customerID)
	if e.session.Loading().Begin(flag) {
		defer e.session.Loading().End(flag)
	}

	details, err := e.customers.Lookup(ctx, customerID)
	if err != nil {
		return nil, errs.Wrapf(err, "lookup customer %d", customerID)
	}

	resolved := slot.Customer{Name: details.Name, Phone: details.Phone, Email: details.Email}
	for key, snap := range e.store.Entries() {
		if !snap.Customer.Loading || snap.CustomerID == nil || *snap.CustomerID != customerID {
			continue
		}
		next, changed := e.store.Update(key, func(cur slot.Snapshot, _ bool) (slot.Snapshot, projection.Op) {
			if !cur.Customer.Loading || cur.CustomerID == nil || *cur.CustomerID != customerID {
				return cur, projection.Keep
			}
			filled := cur.WithCustomer(cur.CustomerID, resolved)
			return filled.WithRevision(e.store.NextRevision(), cur.Origin), projection.Put
		})
		if changed {
			e.session.Detail().Refresh(key, next)
		}
	}
	return details, nil
}

func (e *engineImpl) Menu() commands.MenuView {
	return e.dispatcher.View()
}

func (e *engineImpl) OpenMenu(resourceID int64, interval string) (commands.MenuView, error) {
	return e.dispatcher.Open(resourceID, interval)
}

func (e *engineImpl) CloseMenu() commands.MenuView {
	return e.dispatcher.Close()
}

func (e *engineImpl) ChooseMenu(ctx context.Context, action menu.Action, categoryID int64) (*commands.ChooseResult, error) {
	return e.dispatcher.Choose(ctx, action, categoryID)
}

func (e *engineImpl) Loading() []string {
	return e.session.Loading().Active()
}

func (e *engineImpl) Subscribe(fn projection.Listener) func() {
	return e.store.Subscribe(fn)
}

func (e *engineImpl) Apply(ctx context.Context, env event.Envelope) reconcile.Outcome {
	return e.reconciler.Apply(ctx, env)
}

// Run hands every feed envelope to the reconciler until ctx ends or the feed
// is closed. Dropped envelopes trigger a reload.
func (e *engineImpl) Run(ctx context.Context) error {
	events := e.feed.Events()
	lost := e.feed.Lost()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case env, ok := <-events:
			if !ok {
				return nil
			}
			e.reconciler.Apply(ctx, env)
		case <-lost:
			e.resync(ctx)
		}
	}
}

// resync reloads the selection after the feed dropped envelopes; only the
// backend knows what they said.
func (e *engineImpl) resync(ctx context.Context) {
	if !e.session.Token().IsSet() {
		return
	}
	e.logger.WarnContext(ctx, "event feed dropped envelopes, reloading")
	if err := e.loader.Load(ctx); err != nil {
		e.logger.WarnContext(ctx, "resync after dropped envelopes failed", slog.String("error", err.Error()))
	}
}
