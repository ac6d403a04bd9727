package queries

import (
	"sort"

	"court-grid/internal/domain/slot"
	"court-grid/internal/usecase/projection"
	"court-grid/internal/usecase/shared"
)

type Cell struct {
	Key      slot.Key
	Snapshot slot.Snapshot
}

type Row struct {
	Court shared.Court
	Cells []Cell
}

// Grid is the court × interval matrix of the current selection.
type Grid struct {
	FacilityID int64
	Date       slot.Date
	Intervals  []string
	Rows       []Row
}

type GridQueries interface {
	CurrentStatus(resourceID int64, interval string) (slot.Status, error)
	Snapshot(resourceID int64, interval string) (slot.Key, slot.Snapshot, error)
	Grid() (*Grid, error)
}

type gridQueriesImpl struct {
	store   *projection.Store
	session *shared.Session
	loader  Loader
}

func NewGridQueries(store *projection.Store, session *shared.Session, loader Loader) GridQueries {
	return &gridQueriesImpl{store: store, session: session, loader: loader}
}

// KeyFor builds the key of a cell of the currently selected date.
func KeyFor(session *shared.Session, resourceID int64, interval string) (slot.Key, error) {
	sel := session.Token()
	if !sel.IsSet() {
		return slot.Key{}, shared.Invalid(shared.ErrNoFacility)
	}
	label, err := shared.ValidateInterval(interval)
	if err != nil {
		return slot.Key{}, err
	}
	key, err := slot.NewKey(resourceID, sel.Date, label)
	if err != nil {
		return slot.Key{}, shared.Invalid(shared.ErrInvalidInterval)
	}
	return key, nil
}

func (q *gridQueriesImpl) CurrentStatus(resourceID int64, interval string) (slot.Status, error) {
	_, snap, err := q.Snapshot(resourceID, interval)
	if err != nil {
		return "", err
	}
	return snap.Status, nil
}

func (q *gridQueriesImpl) Snapshot(resourceID int64, interval string) (slot.Key, slot.Snapshot, error) {
	key, err := KeyFor(q.session, resourceID, interval)
	if err != nil {
		return slot.Key{}, slot.Snapshot{}, err
	}
	return key, q.store.Get(key), nil
}

func (q *gridQueriesImpl) Grid() (*Grid, error) {
	sel := q.session.Token()
	if !sel.IsSet() {
		return nil, shared.Invalid(shared.ErrNoFacility)
	}

	catalog := q.loader.Catalog()
	entries := q.store.Entries()

	intervals := intervalLabels(catalog.Intervals)
	courts := catalog.Courts
	if len(courts) == 0 || len(intervals) == 0 {
		courts, intervals = deriveAxes(entries, courts, intervals)
	}

	grid := &Grid{FacilityID: sel.FacilityID, Date: sel.Date, Intervals: intervals}
	for _, court := range courts {
		row := Row{Court: court, Cells: make([]Cell, 0, len(intervals))}
		for _, label := range intervals {
			key := slot.Key{ResourceID: court.ID, Date: sel.Date, Interval: label}
			snap, ok := entries[key]
			if !ok {
				snap = slot.Available()
			}
			row.Cells = append(row.Cells, Cell{Key: key, Snapshot: snap})
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid, nil
}

func intervalLabels(defs []slot.IntervalDef) []string {
	out := make([]string, 0, len(defs))
	seen := make(map[string]struct{}, len(defs))
	for _, d := range defs {
		label, err := d.Label()
		if err != nil {
			continue
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// deriveAxes fills missing courts or intervals from the stored keys.
func deriveAxes(entries map[slot.Key]slot.Snapshot, courts []shared.Court, intervals []string) ([]shared.Court, []string) {
	if len(courts) == 0 {
		ids := make(map[int64]struct{})
		for k := range entries {
			ids[k.ResourceID] = struct{}{}
		}
		for id := range ids {
			courts = append(courts, shared.Court{ID: id})
		}
		sort.Slice(courts, func(i, j int) bool { return courts[i].ID < courts[j].ID })
	}
	if len(intervals) == 0 {
		seen := make(map[string]struct{})
		for k := range entries {
			if _, ok := seen[k.Interval]; !ok {
				seen[k.Interval] = struct{}{}
				intervals = append(intervals, k.Interval)
			}
		}
		sort.Strings(intervals)
	}
	return courts, intervals
}
