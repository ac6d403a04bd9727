package reconcile

import (
	"context"
	"log/slog"
	"sync"

	"court-grid/internal/domain/event"
	"court-grid/internal/domain/slot"
	"court-grid/internal/infra/metrics"
	"court-grid/internal/pkg/ptr"
	"court-grid/internal/usecase/projection"
	"court-grid/internal/usecase/shared"
)

type Outcome string

const (
	OutcomeApplied    Outcome = "applied"
	OutcomeDuplicate  Outcome = "duplicate"
	OutcomeStale      Outcome = "stale"
	OutcomeTombstoned Outcome = "tombstoned"
	OutcomeIgnored    Outcome = "ignored"
	OutcomeRejected   Outcome = "rejected"
)

// Reconciler folds push events into the projection store.
type Reconciler struct {
	store   *projection.Store
	session *shared.Session
	metrics *metrics.Recorder
	logger  *slog.Logger

	mu         sync.Mutex
	tombstones map[int64]slot.Status
}

func NewReconciler(store *projection.Store, session *shared.Session, rec *metrics.Recorder, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		store:      store,
		session:    session,
		metrics:    rec,
		logger:     logger,
		tombstones: make(map[int64]slot.Status),
	}
}

func (r *Reconciler) Apply(ctx context.Context, env event.Envelope) Outcome {
	outcome, key := r.apply(env)

	r.metrics.ObserveEvent(env.Kind, string(outcome))
	r.logger.DebugContext(ctx, "push event reconciled",
		slog.String("kind", env.Kind),
		slog.Int64("facility_id", env.FacilityID),
		slog.String("key", key.String()),
		slog.String("outcome", string(outcome)))
	return outcome
}

func (r *Reconciler) apply(env event.Envelope) (Outcome, slot.Key) {
	ev, err := event.Decode(env)
	if err != nil {
		return OutcomeRejected, slot.Key{}
	}
	p := ev.Data()

	sel := r.session.Token()
	if !sel.IsSet() || p.FacilityID != sel.FacilityID {
		return OutcomeIgnored, slot.Key{}
	}
	date, err := slot.ParseDate(p.RawDate)
	if err != nil {
		return OutcomeRejected, slot.Key{}
	}
	if date != sel.Date {
		return OutcomeIgnored, slot.Key{}
	}
	key, err := slot.NewKey(p.ResourceID, date, p.Interval)
	if err != nil {
		return OutcomeRejected, slot.Key{}
	}

	var status slot.Status
	switch ev.(type) {
	case event.BookingCompleted:
		status = slot.StatusCompleted
	case event.BookingCancelled:
		status = slot.StatusCancelled
	case event.BookingCreated, event.BookingUpdated:
		status = slot.MapStatus(p.RawStatus)
	}

	if p.BookingID != nil && !status.IsTerminal() && r.IsTombstoned(*p.BookingID) {
		return OutcomeTombstoned, key
	}

	incoming := slot.Snapshot{
		BookingID:      ptr.Clone(p.BookingID),
		Status:         status,
		CustomerID:     ptr.Clone(p.CustomerID),
		Customer:       p.Customer,
		Price:          p.Price,
		OriginalStatus: p.RawStatus,
	}

	outcome := OutcomeApplied
	result, changed := r.store.Update(key, func(cur slot.Snapshot, exists bool) (slot.Snapshot, projection.Op) {
		if !r.session.IsCurrent(sel) {
			outcome = OutcomeIgnored
			return cur, projection.Keep
		}
		if incoming.BookingID != nil && cur.HasBooking(*incoming.BookingID) && cur.Status.Rank() > status.Rank() {
			outcome = OutcomeStale
			return cur, projection.Keep
		}
		// A settlement only ever settles the booking it names.
		if status.IsTerminal() && cur.BookingID != nil && !cur.HasBooking(ptr.Deref(incoming.BookingID, 0)) {
			outcome = OutcomeStale
			return cur, projection.Keep
		}
		merged := merge(cur, incoming)
		if exists && cur.SameState(merged) {
			outcome = OutcomeDuplicate
			return cur, projection.Keep
		}
		return merged.WithRevision(r.store.NextRevision(), slot.OriginRemote), projection.Put
	})
	if outcome != OutcomeIgnored && p.BookingID != nil && status.IsTerminal() {
		r.tombstone(*p.BookingID, status)
	}
	if changed {
		r.session.Detail().Refresh(key, result)
	}
	return outcome, key
}

// merge keeps the known customer display when the event for the same booking
// carries none.
func merge(cur, incoming slot.Snapshot) slot.Snapshot {
	sameBooking := incoming.BookingID != nil && cur.HasBooking(*incoming.BookingID)
	if incoming.Customer.IsEmpty() {
		switch {
		case sameBooking && (incoming.CustomerID == nil || ptr.Deref(cur.CustomerID, 0) == *incoming.CustomerID):
			return incoming.WithCustomer(cur.CustomerID, cur.Customer)
		case incoming.CustomerID != nil:
			return incoming.WithCustomer(incoming.CustomerID, slot.LoadingCustomer())
		}
	}
	return incoming
}

func (r *Reconciler) tombstone(bookingID int64, status slot.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tombstones[bookingID] = status
}

func (r *Reconciler) IsTombstoned(bookingID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.tombstones[bookingID]
	return ok
}

// ResetTombstones forgets every settled booking. Called on facility change.
func (r *Reconciler) ResetTombstones() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tombstones = make(map[int64]slot.Status)
}
