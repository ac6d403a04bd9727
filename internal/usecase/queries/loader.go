package queries

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"court-grid/internal/domain/slot"
	"court-grid/internal/infra/metrics"
	"court-grid/internal/pkg/clock"
	"court-grid/internal/pkg/errs"
	"court-grid/internal/usecase/projection"
	"court-grid/internal/usecase/shared"

	"golang.org/x/sync/errgroup"
)

// Catalog is the court list and interval catalog of the selected facility.
type Catalog struct {
	Courts    []shared.Court
	Intervals []slot.IntervalDef
}

type Loader interface {
	Load(ctx context.Context) error
	Catalog() Catalog
}

type loaderImpl struct {
	bookings  shared.BookingGateway
	catalogGW shared.CatalogGateway
	store     *projection.Store
	session   *shared.Session
	customers CustomerCache
	metrics   *metrics.Recorder
	logger    *slog.Logger
	clock     clock.Clock

	mu      sync.RWMutex
	catalog Catalog
}

func NewLoader(
	bookings shared.BookingGateway,
	catalogGW shared.CatalogGateway,
	store *projection.Store,
	session *shared.Session,
	customers CustomerCache,
	rec *metrics.Recorder,
	logger *slog.Logger,
	clk clock.Clock,
) Loader {
	return &loaderImpl{
		bookings:  bookings,
		catalogGW: catalogGW,
		store:     store,
		session:   session,
		customers: customers,
		metrics:   rec,
		logger:    logger,
		clock:     clk,
	}
}

func (l *loaderImpl) Catalog() Catalog {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.catalog
}

// Load replaces the store with the backend's view of the current selection.
// A result that arrives after the selection changed is dropped.
func (l *loaderImpl) Load(ctx context.Context) error {
	sel := l.session.Token()
	if !sel.IsSet() {
		return shared.Invalid(shared.ErrNoFacility)
	}

	flag := fmt.Sprintf("load:%d", sel.Generation)
	if !l.session.Loading().Begin(flag) {
		return shared.ErrBusy
	}
	defer l.session.Loading().End(flag)

	start := l.clock.Now()
	records, catalog, err := l.fetch(ctx, sel)

	if err != nil {
		cleared := l.store.ClearIf(func() bool {
			if !l.session.IsCurrent(sel) {
				return false
			}
			l.setCatalog(Catalog{})
			return true
		})
		if !cleared {
			return l.discard(ctx, sel)
		}
		l.metrics.ObserveLoad(start, err)
		l.metrics.SetStoreEntries(0)
		l.logger.ErrorContext(ctx, "snapshot load failed",
			slog.Int64("facility_id", sel.FacilityID),
			slog.String("date", sel.Date.String()),
			slog.String("error", err.Error()))
		return errs.Mark(errs.Wrap(err, "load bookings"), shared.ErrLoadFailed)
	}

	// The selection check and the swap happen under the store lock, after
	// every entry is built.
	entries := l.buildEntries(ctx, sel, records)
	replaced := l.store.ReplaceIf(entries, func() bool {
		if !l.session.IsCurrent(sel) {
			return false
		}
		l.setCatalog(catalog)
		return true
	})
	if !replaced {
		return l.discard(ctx, sel)
	}
	l.customers.Invalidate()

	l.metrics.ObserveLoad(start, nil)
	l.metrics.SetStoreEntries(len(entries))
	l.logger.InfoContext(ctx, "snapshot loaded",
		slog.Int64("facility_id", sel.FacilityID),
		slog.String("date", sel.Date.String()),
		slog.Int("records", len(records)),
		slog.Int("cells", len(entries)))
	return nil
}

func (l *loaderImpl) discard(ctx context.Context, sel shared.Selection) error {
	l.logger.InfoContext(ctx, "discarding load for stale selection",
		slog.Int64("facility_id", sel.FacilityID),
		slog.String("date", sel.Date.String()))
	return shared.ErrStaleSelection
}

func (l *loaderImpl) fetch(ctx context.Context, sel shared.Selection) ([]shared.BookingRecord, Catalog, error) {
	var (
		records []shared.BookingRecord
		catalog Catalog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = l.fetchAllPages(gctx, sel)
		return err
	})
	g.Go(func() error {
		courts, err := l.catalogGW.ListCourts(gctx, sel.FacilityID)
		if err != nil {
			return errs.Wrap(err, "list courts")
		}
		catalog.Courts = courts
		return nil
	})
	g.Go(func() error {
		intervals, err := l.catalogGW.ListIntervals(gctx)
		if err != nil {
			return errs.Wrap(err, "list intervals")
		}
		catalog.Intervals = intervals
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, Catalog{}, err
	}
	return records, catalog, nil
}

func (l *loaderImpl) fetchAllPages(ctx context.Context, sel shared.Selection) ([]shared.BookingRecord, error) {
	var out []shared.BookingRecord
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := l.bookings.ListBookings(ctx, sel.FacilityID, sel.Date, page)
		if err != nil {
			return nil, errs.Wrapf(err, "list bookings page %d", page)
		}
		out = append(out, res.Records...)
		if page >= res.TotalPages {
			return out, nil
		}
	}
}

func (l *loaderImpl) buildEntries(ctx context.Context, sel shared.Selection, records []shared.BookingRecord) map[slot.Key]slot.Snapshot {
	entries := make(map[slot.Key]slot.Snapshot)
	for _, rec := range records {
		if rec.FacilityID != 0 && rec.FacilityID != sel.FacilityID {
			continue
		}
		date, err := slot.ParseDate(rec.Date)
		if err != nil || date != sel.Date {
			continue
		}

		status := slot.MapStatus(rec.Status)
		customer := slot.Customer{Name: rec.CustomerName, Phone: rec.CustomerPhone, Email: rec.CustomerEmail}
		if customer.IsEmpty() && rec.CustomerID != nil {
			customer = slot.LoadingCustomer()
		}

		for _, sl := range rec.Slices {
			key, err := slot.NewKey(sl.ResourceID, date, sl.Interval)
			if err != nil {
				l.logger.WarnContext(ctx, "skipping malformed booking slice",
					slog.Int64("booking_id", rec.ID),
					slog.String("interval", sl.Interval),
					slog.String("error", err.Error()))
				continue
			}
			// A cancelled booking frees its cell; it never hides a live one.
			if prev, ok := entries[key]; ok && status.IsBookable() && !prev.IsBookable() {
				continue
			}

			price := rec.Price
			if !sl.Price.IsZero() {
				price = sl.Price
			}
			snap := slot.NewBookingSnapshot(rec.ID, status, price).WithCustomer(rec.CustomerID, customer)
			snap.OriginalStatus = rec.Status
			entries[key] = snap.WithRevision(l.store.NextRevision(), slot.OriginLoad)
		}
	}
	return entries
}

func (l *loaderImpl) setCatalog(c Catalog) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.catalog = c
}
