//go:build unit

package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"court-grid/internal/domain/event"
	"court-grid/internal/domain/slot"
	"court-grid/internal/infra/feed"
	"court-grid/internal/infra/metrics"
	"court-grid/internal/pkg/clock"
	"court-grid/internal/pkg/errs"
	"court-grid/internal/usecase"
	"court-grid/internal/usecase/commands"
	"court-grid/internal/usecase/projection"
	"court-grid/internal/usecase/queries"
	"court-grid/internal/usecase/reconcile"
	"court-grid/internal/usecase/shared"
	"court-grid/tests/common/builder"
	sharedmock "court-grid/tests/mock/shared"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var engineDate = slot.MustParseDate("2025-08-01")

type EngineTestSuite struct {
	suite.Suite
	ctx      context.Context
	cancel   context.CancelFunc
	ctrl     *gomock.Controller
	bookings *sharedmock.MockBookingGateway
	catalog  *sharedmock.MockCatalogGateway
	accounts *sharedmock.MockAccountGateway
	hub      *feed.Hub
	other    *feed.MemoryFeed
	store    *projection.Store
	engine   usecase.Engine
	runDone  chan error
}

func (s *EngineTestSuite) SetupTest() {
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.ctrl = gomock.NewController(s.T())
	s.bookings = sharedmock.NewMockBookingGateway(s.ctrl)
	s.catalog = sharedmock.NewMockCatalogGateway(s.ctrl)
	s.accounts = sharedmock.NewMockAccountGateway(s.ctrl)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rec := metrics.New()
	clk := clock.NewMockClock(time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC))

	s.hub = feed.NewHub(logger)
	own := s.hub.Attach(16)
	s.other = s.hub.Attach(16)

	s.store = projection.NewStore()
	session := shared.NewSession()
	customers := queries.NewCustomerCache(s.accounts, rec)
	loader := queries.NewLoader(s.bookings, s.catalog, s.store, session, customers, rec, logger, clk)
	grid := queries.NewGridQueries(s.store, session, loader)
	mutator := commands.NewMutator(s.bookings, own, s.store, session, loader, rec, logger, clk, time.Second)
	dispatcher := commands.NewDispatcher(s.store, session, mutator)
	reconciler := reconcile.NewReconciler(s.store, session, rec, logger)

	s.engine = usecase.NewEngine(s.store, session, loader, grid, queries.NewFacilityQueries(s.catalog, session, logger), customers, mutator, dispatcher, reconciler, own, rec, logger)
	s.runDone = make(chan error, 1)
}

func (s *EngineTestSuite) TearDownTest() {
	s.cancel()
	s.ctrl.Finish()
}

func TestEngineTestSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) expectLoad(facilityID int64, records ...shared.BookingRecord) {
	s.catalog.EXPECT().ListCourts(gomock.Any(), facilityID).
		Return([]shared.Court{{ID: 5, FacilityID: facilityID, Name: "Court 5"}}, nil)
	s.catalog.EXPECT().ListIntervals(gomock.Any()).
		Return([]slot.IntervalDef{{ID: 1, Start: "08:00", End: "09:00"}, {ID: 2, Start: "09:00", End: "10:00"}}, nil)
	s.bookings.EXPECT().ListBookings(gomock.Any(), facilityID, engineDate, 1).
		Return(&shared.BookingPage{Records: records, PageInfo: shared.PageInfo{Page: 1, TotalPages: 1}}, nil)
}

func (s *EngineTestSuite) run() {
	go func() { s.runDone <- s.engine.Run(s.ctx) }()
}

func (s *EngineTestSuite) TestSelectJoinsFeedAndLoads() {
	s.expectLoad(1, builder.NewBookingRecordBuilder().WithCustomerID(7).Build())

	s.Require().NoError(s.engine.Select(s.ctx, 1, engineDate))

	s.Equal(1, s.hub.RoomSize(1))
	s.Equal(int64(1), s.engine.Selection().FacilityID)

	_, snap, err := s.engine.Snapshot(5, "08:00–09:00")
	s.Require().NoError(err)
	s.Equal(slot.StatusDeposited, snap.Status)
	s.True(snap.Customer.Loading)
	s.Empty(s.engine.Loading())
}

func (s *EngineTestSuite) TestSelectRejectsMissingFacility() {
	err := s.engine.Select(s.ctx, 0, engineDate)
	s.Truef(errs.Is(err, shared.ErrNoFacility), "got %v", err)
	s.Truef(errs.Is(err, shared.ErrValidation), "got %v", err)
}

func (s *EngineTestSuite) TestFacilityChangeMovesFeed() {
	s.expectLoad(1, builder.NewBookingRecordBuilder().Build())
	s.Require().NoError(s.engine.Select(s.ctx, 1, engineDate))

	s.expectLoad(2)
	s.Require().NoError(s.engine.Select(s.ctx, 2, engineDate))

	s.Equal(0, s.hub.RoomSize(1))
	s.Equal(1, s.hub.RoomSize(2))
	s.Equal(0, s.store.Len())
}

func (s *EngineTestSuite) TestRunReconcilesRemoteEvents() {
	s.expectLoad(1)
	s.Require().NoError(s.engine.Select(s.ctx, 1, engineDate))
	s.run()

	env := builder.NewEnvelopeBuilder().Build()
	s.Require().NoError(s.other.Publish(s.ctx, env))

	s.Eventually(func() bool {
		status, err := s.engine.CurrentStatus(5, "08:00–09:00")
		return err == nil && status == slot.StatusDeposited
	}, time.Second, 10*time.Millisecond)

	// Another facility's traffic never reaches this session.
	s.Require().NoError(s.other.Publish(s.ctx,
		builder.NewEnvelopeBuilder().WithFacilityID(2).WithResourceID(6).Build()))
	s.Never(func() bool { return s.store.Len() != 1 }, 100*time.Millisecond, 10*time.Millisecond)
}

func (s *EngineTestSuite) TestRunReloadsAfterDroppedEvents() {
	s.expectLoad(1)
	s.Require().NoError(s.engine.Select(s.ctx, 1, engineDate))

	// The session's buffer holds 16 envelopes; the rest are dropped.
	for i := 0; i < 20; i++ {
		s.Require().NoError(s.other.Publish(s.ctx, builder.NewEnvelopeBuilder().Build()))
	}
	s.expectLoad(1, builder.NewBookingRecordBuilder().WithID(77).
		WithSlices(shared.BookingSlice{ResourceID: 5, Interval: "09:00-10:00"}).Build())

	s.run()

	s.Eventually(func() bool {
		_, snap, err := s.engine.Snapshot(5, "09:00–10:00")
		return err == nil && snap.HasBooking(77)
	}, time.Second, 10*time.Millisecond)
}

func (s *EngineTestSuite) TestRunStopsOnCancel() {
	s.run()
	s.cancel()
	select {
	case err := <-s.runDone:
		s.ErrorIs(err, context.Canceled)
	case <-time.After(time.Second):
		s.Fail("Run did not return")
	}
}

func (s *EngineTestSuite) TestApplyReportsOutcome() {
	s.expectLoad(1)
	s.Require().NoError(s.engine.Select(s.ctx, 1, engineDate))

	env := builder.NewEnvelopeBuilder().Build()
	s.Equal(reconcile.OutcomeApplied, s.engine.Apply(s.ctx, env))
	s.Equal(reconcile.OutcomeDuplicate, s.engine.Apply(s.ctx, env))
}

func (s *EngineTestSuite) TestLookupCustomerFillsPlaceholders() {
	s.expectLoad(1,
		builder.NewBookingRecordBuilder().WithCustomerID(7).
			WithSlices(
				shared.BookingSlice{ResourceID: 5, Interval: "08:00–09:00"},
				shared.BookingSlice{ResourceID: 5, Interval: "09:00–10:00"},
			).Build(),
	)
	s.Require().NoError(s.engine.Select(s.ctx, 1, engineDate))

	_, _, err := s.engine.OpenDetail(5, "09:00–10:00")
	s.Require().NoError(err)

	s.accounts.EXPECT().LookupCustomer(gomock.Any(), int64(7)).
		Return(&shared.CustomerDetails{ID: 7, Name: "Dana", Phone: "555-0100"}, nil)

	details, err := s.engine.LookupCustomer(s.ctx, 7)
	s.Require().NoError(err)
	s.Equal("Dana", details.Name)

	for _, interval := range []string{"08:00–09:00", "09:00–10:00"} {
		_, snap, err := s.engine.Snapshot(5, interval)
		s.Require().NoError(err)
		s.False(snap.Customer.Loading, interval)
		s.Equal("Dana", snap.Customer.Name, interval)
	}

	_, detail, open := s.engine.Detail()
	s.True(open)
	s.Equal("Dana", detail.Customer.Name)
}

func (s *EngineTestSuite) TestLookupCustomerFailureKeepsPlaceholder() {
	s.expectLoad(1, builder.NewBookingRecordBuilder().WithCustomerID(7).Build())
	s.Require().NoError(s.engine.Select(s.ctx, 1, engineDate))

	s.accounts.EXPECT().LookupCustomer(gomock.Any(), int64(7)).
		Return(nil, errs.New("boom"))

	_, err := s.engine.LookupCustomer(s.ctx, 7)
	s.Error(err)

	_, snap, err := s.engine.Snapshot(5, "08:00–09:00")
	s.Require().NoError(err)
	s.True(snap.Customer.Loading)
}

func (s *EngineTestSuite) TestSubscribeSeesChanges() {
	s.expectLoad(1)
	s.Require().NoError(s.engine.Select(s.ctx, 1, engineDate))

	var changes []projection.Change
	unsubscribe := s.engine.Subscribe(func(c projection.Change) { changes = append(changes, c) })
	defer unsubscribe()

	s.engine.Apply(s.ctx, builder.NewEnvelopeBuilder().WithKind(event.KindBookingUpdated).Build())
	s.Require().Len(changes, 1)
	s.Equal(projection.ChangeSet, changes[0].Kind)
}
