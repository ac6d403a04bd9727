package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"court-grid/internal/domain/event"
	"court-grid/internal/domain/slot"
	"court-grid/internal/infra/metrics"
	"court-grid/internal/pkg/clock"
	"court-grid/internal/pkg/errs"
	"court-grid/internal/usecase/projection"
	"court-grid/internal/usecase/queries"
	"court-grid/internal/usecase/shared"

	"github.com/shopspring/decimal"
)

// SlotRef addresses a cell of the selected date.
type SlotRef struct {
	ResourceID int64
	Interval   string
}

type CreateBookingOutcome struct {
	BookingID int64
	Keys      []slot.Key
	Status    slot.Status
	// Reloaded is false when the follow-up reload was skipped or failed.
	Reloaded bool
}

type Mutator interface {
	MarkSlot(ctx context.Context, resourceID int64, interval string, categoryID int64) (slot.Key, slot.Snapshot, error)
	CreateBooking(ctx context.Context, slots []SlotRef, categoryID int64) (*CreateBookingOutcome, error)
	CompleteBooking(ctx context.Context, bookingID int64) error
}

type mutatorImpl struct {
	bookings    shared.BookingGateway
	feed        shared.EventFeed
	store       *projection.Store
	session     *shared.Session
	loader      queries.Loader
	metrics     *metrics.Recorder
	logger      *slog.Logger
	clock       clock.Clock
	reloadGrace time.Duration
}

func NewMutator(
	bookings shared.BookingGateway,
	feed shared.EventFeed,
	store *projection.Store,
	session *shared.Session,
	loader queries.Loader,
	rec *metrics.Recorder,
	logger *slog.Logger,
	clk clock.Clock,
	reloadGrace time.Duration,
) Mutator {
	return &mutatorImpl{
		bookings:    bookings,
		feed:        feed,
		store:       store,
		session:     session,
		loader:      loader,
		metrics:     rec,
		logger:      logger,
		clock:       clk,
		reloadGrace: reloadGrace,
	}
}

func (m *mutatorImpl) MarkSlot(ctx context.Context, resourceID int64, interval string, categoryID int64) (key slot.Key, snap slot.Snapshot, err error) {
	defer func() { m.metrics.ObserveMutation("mark", err) }()

	if categoryID <= 0 {
		return slot.Key{}, slot.Snapshot{}, shared.Invalid(shared.ErrCategoryRequired)
	}
	key, err = queries.KeyFor(m.session, resourceID, interval)
	if err != nil {
		return slot.Key{}, slot.Snapshot{}, err
	}
	sel := m.session.Token()
	if !m.store.Get(key).IsBookable() {
		return slot.Key{}, slot.Snapshot{}, shared.Invalid(shared.ErrSlotNotAvailable)
	}

	flag := "mark:" + key.String()
	if !m.session.Loading().Begin(flag) {
		return slot.Key{}, slot.Snapshot{}, shared.ErrBusy
	}
	defer m.session.Loading().End(flag)

	res, err := m.bookings.MarkSlot(ctx, shared.MarkSlotRequest{
		FacilityID: sel.FacilityID,
		ResourceID: key.ResourceID,
		Date:       key.Date,
		Interval:   key.Interval,
		CategoryID: categoryID,
	})
	if err != nil {
		return slot.Key{}, slot.Snapshot{}, m.fail(ctx, sel, "mark slot", err)
	}

	snap = slot.NewBookingSnapshot(res.BookingID, slot.StatusDeposited, decimal.Zero)
	snap.OriginalStatus = slot.StatusDeposited.RawLabel()
	snap = snap.WithRevision(m.store.NextRevision(), slot.OriginLocal)
	if !m.writeIf(sel, map[slot.Key]slot.Snapshot{key: snap}) {
		return slot.Key{}, slot.Snapshot{}, shared.ErrStaleSelection
	}

	m.publish(ctx, event.KindBookingCreated, sel.FacilityID, key, snap)
	m.logger.InfoContext(ctx, "slot marked",
		slog.String("key", key.String()),
		slog.Int64("booking_id", res.BookingID))
	return key, snap, nil
}

func (m *mutatorImpl) CreateBooking(ctx context.Context, slots []SlotRef, categoryID int64) (out *CreateBookingOutcome, err error) {
	defer func() { m.metrics.ObserveMutation("create", err) }()

	if categoryID <= 0 {
		return nil, shared.Invalid(shared.ErrCategoryRequired)
	}
	if len(slots) == 0 {
		return nil, shared.Invalid(shared.ErrNoIntervals)
	}

	sel := m.session.Token()
	keys := make([]slot.Key, 0, len(slots))
	seen := make(map[slot.Key]struct{}, len(slots))
	for _, ref := range slots {
		key, err := queries.KeyFor(m.session, ref.ResourceID, ref.Interval)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[key]; dup {
			continue
		}
		if !m.store.Get(key).IsBookable() {
			return nil, shared.Invalid(errs.Wrapf(shared.ErrSlotNotAvailable, "%s", key))
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	projection.SortKeys(keys)

	if !m.session.Loading().Begin("create") {
		return nil, shared.ErrBusy
	}
	defer m.session.Loading().End("create")

	req := shared.CreateBookingRequest{FacilityID: sel.FacilityID, Date: sel.Date, CategoryID: categoryID}
	for _, k := range keys {
		req.Slots = append(req.Slots, shared.BookingSlice{ResourceID: k.ResourceID, Interval: k.Interval})
	}

	res, err := m.bookings.CreateBooking(ctx, req)
	if err != nil {
		return nil, m.fail(ctx, sel, "create booking", err)
	}

	status := slot.StatusDeposited
	raw := status.RawLabel()
	if res.Status != "" {
		status = slot.MapStatus(res.Status)
		raw = res.Status
	}
	prices := make(map[string]decimal.Decimal, len(res.Slices))
	for _, sl := range res.Slices {
		if label, err := slot.NormalizeInterval(sl.Interval); err == nil {
			prices[fmt.Sprintf("%d/%s", sl.ResourceID, label)] = sl.Price
		}
	}

	rev := m.store.NextRevision()
	written := make(map[slot.Key]slot.Snapshot, len(keys))
	for _, k := range keys {
		price, ok := prices[fmt.Sprintf("%d/%s", k.ResourceID, k.Interval)]
		if !ok {
			price = res.Price
		}
		snap := slot.NewBookingSnapshot(res.BookingID, status, price)
		snap.OriginalStatus = raw
		written[k] = snap.WithRevision(rev, slot.OriginLocal)
	}
	if !m.writeIf(sel, written) {
		return nil, shared.ErrStaleSelection
	}
	for _, k := range keys {
		m.publish(ctx, event.KindBookingCreated, sel.FacilityID, k, written[k])
	}

	out = &CreateBookingOutcome{BookingID: res.BookingID, Keys: keys, Status: status}
	out.Reloaded = m.reloadAfterCreate(ctx, sel, res.Consistent)
	return out, nil
}

// reloadAfterCreate waits out the backend's read replication lag unless the
// backend acknowledged read-your-writes.
func (m *mutatorImpl) reloadAfterCreate(ctx context.Context, sel shared.Selection, consistent bool) bool {
	if !consistent && m.reloadGrace > 0 {
		select {
		case <-m.clock.After(m.reloadGrace):
		case <-ctx.Done():
			return false
		}
	}
	return m.reload(ctx, sel)
}

func (m *mutatorImpl) CompleteBooking(ctx context.Context, bookingID int64) (err error) {
	defer func() { m.metrics.ObserveMutation("complete", err) }()

	sel := m.session.Token()
	if !sel.IsSet() {
		return shared.Invalid(shared.ErrNoFacility)
	}
	held := m.store.FindByBooking(bookingID)
	if len(held) == 0 {
		return shared.Invalid(shared.ErrBookingNotFound)
	}
	for _, snap := range held {
		if snap.Status != slot.StatusDeposited {
			return shared.Invalid(shared.ErrNotDeposited)
		}
	}

	flag := fmt.Sprintf("complete:%d", bookingID)
	if !m.session.Loading().Begin(flag) {
		return shared.ErrBusy
	}
	defer m.session.Loading().End(flag)

	rev := m.store.NextRevision()
	prior := make(map[slot.Key]slot.Snapshot, len(held))
	applied := make(map[slot.Key]slot.Snapshot, len(held))
	for key := range held {
		next, changed := m.store.Update(key, func(cur slot.Snapshot, _ bool) (slot.Snapshot, projection.Op) {
			if !m.session.IsCurrent(sel) || !cur.HasBooking(bookingID) || cur.Status != slot.StatusDeposited {
				return cur, projection.Keep
			}
			prior[key] = cur
			next := cur
			next.Status = slot.StatusCompleted
			next.OriginalStatus = slot.StatusCompleted.RawLabel()
			return next.WithRevision(rev, slot.OriginLocal), projection.Put
		})
		if changed {
			applied[key] = next
			m.session.Detail().Refresh(key, next)
		}
	}

	if _, err := m.bookings.CompleteBooking(ctx, bookingID); err != nil {
		classified := m.fail(ctx, sel, "complete booking", err)
		if errs.Is(classified, shared.ErrRequestFailed) {
			m.rollback(sel, prior, rev)
		}
		return classified
	}
	if !m.session.IsCurrent(sel) {
		return shared.ErrStaleSelection
	}

	for key, snap := range applied {
		m.publish(ctx, event.KindBookingCompleted, sel.FacilityID, key, snap)
	}
	m.logger.InfoContext(ctx, "booking completed",
		slog.Int64("booking_id", bookingID),
		slog.Int("cells", len(applied)))
	return nil
}

// rollback restores each key only while it still holds the optimistic
// revision, so a concurrent event is never clobbered.
func (m *mutatorImpl) rollback(sel shared.Selection, prior map[slot.Key]slot.Snapshot, rev uint64) {
	for key, before := range prior {
		restored, changed := m.store.Update(key, func(cur slot.Snapshot, _ bool) (slot.Snapshot, projection.Op) {
			if !m.session.IsCurrent(sel) || cur.Revision != rev || cur.Origin != slot.OriginLocal {
				return cur, projection.Keep
			}
			return before, projection.Put
		})
		if changed {
			m.session.Detail().Refresh(key, restored)
		}
	}
}

// fail classifies a gateway error and resolves an unknown outcome with a
// full reload.
func (m *mutatorImpl) fail(ctx context.Context, sel shared.Selection, op string, err error) error {
	classified := errs.Wrap(shared.ClassifyGatewayError(err), op)
	m.logger.WarnContext(ctx, op+" failed",
		slog.Int64("facility_id", sel.FacilityID),
		slog.String("error", err.Error()))
	if errs.Is(classified, shared.ErrUnknownOutcome) {
		m.reload(ctx, sel)
	}
	return classified
}

func (m *mutatorImpl) reload(ctx context.Context, sel shared.Selection) bool {
	if !m.session.IsCurrent(sel) {
		return false
	}
	if err := m.loader.Load(ctx); err != nil {
		m.logger.WarnContext(ctx, "reload failed", slog.String("error", err.Error()))
		return false
	}
	return true
}

// writeIf stores every entry while sel is still the selection, checked under
// the store lock.
func (m *mutatorImpl) writeIf(sel shared.Selection, entries map[slot.Key]slot.Snapshot) bool {
	if !m.store.SetIf(entries, func() bool { return m.session.IsCurrent(sel) }) {
		return false
	}
	for key, snap := range entries {
		m.session.Detail().Refresh(key, snap)
	}
	return true
}

// publish never fails the action; other clients converge on their next load.
func (m *mutatorImpl) publish(ctx context.Context, kind event.Kind, facilityID int64, key slot.Key, snap slot.Snapshot) {
	env := event.NewEnvelope(kind, facilityID, key, snap, m.session.ClientID(), m.clock.Now())
	if err := m.feed.Publish(ctx, env); err != nil {
		m.logger.WarnContext(ctx, "failed to publish booking event",
			slog.String("kind", kind.String()),
			slog.String("key", key.String()),
			slog.String("error", err.Error()))
	}
}
