//go:build unit

package queries_test

import (
	"context"
	"testing"

	"court-grid/internal/domain/slot"
	"court-grid/internal/pkg/errs"
	"court-grid/internal/usecase/projection"
	"court-grid/internal/usecase/queries"
	"court-grid/internal/usecase/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticLoader struct {
	catalog queries.Catalog
}

func (l staticLoader) Load(context.Context) error { return nil }
func (l staticLoader) Catalog() queries.Catalog  { return l.catalog }

func TestGridQueries(t *testing.T) {
	date := slot.MustParseDate("2025-08-01")

	setup := func(catalog queries.Catalog) (*projection.Store, *shared.Session, queries.GridQueries) {
		store := projection.NewStore()
		session := shared.NewSession()
		session.Select(1, date)
		return store, session, queries.NewGridQueries(store, session, staticLoader{catalog: catalog})
	}

	t.Run("current status defaults to available", func(t *testing.T) {
		_, _, q := setup(queries.Catalog{})

		status, err := q.CurrentStatus(5, "08:00-09:00")

		require.NoError(t, err)
		assert.Equal(t, slot.StatusAvailable, status)
	})

	t.Run("snapshot normalizes the interval", func(t *testing.T) {
		store, _, q := setup(queries.Catalog{})
		k, err := slot.NewKey(5, date, "08:00–09:00")
		require.NoError(t, err)
		store.Set(k, slot.NewBookingSnapshot(42, slot.StatusDeposited, decimal.NewFromInt(40)))

		gotKey, snap, err := q.Snapshot(5, "08:00 - 09:00")

		require.NoError(t, err)
		assert.Equal(t, k, gotKey)
		assert.True(t, snap.HasBooking(42))
	})

	t.Run("malformed interval is a validation error", func(t *testing.T) {
		_, _, q := setup(queries.Catalog{})

		_, err := q.CurrentStatus(5, "morning")

		assert.True(t, errs.Is(err, shared.ErrInvalidInterval))
		assert.True(t, errs.Is(err, shared.ErrValidation))
	})

	t.Run("no selection", func(t *testing.T) {
		q := queries.NewGridQueries(projection.NewStore(), shared.NewSession(), staticLoader{})

		_, err := q.Grid()

		assert.True(t, errs.Is(err, shared.ErrNoFacility))
	})

	t.Run("grid spans the catalog", func(t *testing.T) {
		store, _, q := setup(queries.Catalog{
			Courts: []shared.Court{{ID: 5, Name: "Court 5"}, {ID: 6, Name: "Court 6"}},
			Intervals: []slot.IntervalDef{
				{ID: 2, Start: "09:00", End: "10:00"},
				{ID: 1, Start: "08:00", End: "09:00"},
			},
		})
		k, err := slot.NewKey(6, date, "09:00–10:00")
		require.NoError(t, err)
		store.Set(k, slot.NewBookingSnapshot(7, slot.StatusPending, decimal.Zero))

		grid, err := q.Grid()

		require.NoError(t, err)
		assert.Equal(t, []string{"08:00–09:00", "09:00–10:00"}, grid.Intervals)
		require.Len(t, grid.Rows, 2)
		assert.True(t, grid.Rows[0].Cells[0].Snapshot.IsAvailable())
		assert.True(t, grid.Rows[1].Cells[1].Snapshot.HasBooking(7))
	})

	t.Run("grid falls back to stored keys without a catalog", func(t *testing.T) {
		store, _, q := setup(queries.Catalog{})
		k, err := slot.NewKey(9, date, "18:00–19:00")
		require.NoError(t, err)
		store.Set(k, slot.NewBookingSnapshot(1, slot.StatusDeposited, decimal.Zero))

		grid, err := q.Grid()

		require.NoError(t, err)
		require.Len(t, grid.Rows, 1)
		assert.Equal(t, int64(9), grid.Rows[0].Court.ID)
		assert.Equal(t, []string{"18:00–19:00"}, grid.Intervals)
	})
}
