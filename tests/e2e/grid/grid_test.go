//go:build e2e

package grid_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"testing"
	"time"

	"court-grid/internal/domain/event"
	"court-grid/internal/infra/feed"
	resdto "court-grid/internal/handler/dto/response"
	"court-grid/tests/common/builder"
	"court-grid/tests/common/httptest"
	"court-grid/tests/e2e"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	facilityID = int64(1)
	testDate   = "2025-08-01"
	firstSlot  = "08:00–09:00"
	secondSlot = "09:00–10:00"
)

type GridSuite struct {
	e2e.SharedSuite
	remote *feed.RedisFeed
}

func TestGridSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(GridSuite))
}

// SetupSuite adds a second client on the same channels, standing in for
// another terminal showing the same facility.
func (s *GridSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()

	remote, err := feed.NewRedisFeed(s.Config.Feed, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(s.T(), err)
	s.remote = remote
	s.T().Cleanup(func() { _ = remote.Close() })
	require.NoError(s.T(), s.remote.Join(context.Background(), facilityID))
}

func (s *GridSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func (s *GridSuite) selectFacility() {
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPut, "/api/session/selection",
		gin.H{"facilityId": facilityID, "date": testDate})

	var sel resdto.SelectionResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &sel)
	s.Require().Equal(facilityID, sel.FacilityID)
}

func (s *GridSuite) status(resourceID, interval string) string {
	q := url.Values{"resourceId": {resourceID}, "interval": {interval}}
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/grid/status?"+q.Encode(), nil)

	var body resdto.StatusResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	return body.Status
}

func (s *GridSuite) TestFacilities() {
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/facilities", nil)

	var body []resdto.FacilityResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Equal([]resdto.FacilityResponse{{ID: 1, Name: "Riverside"}, {ID: 2, Name: "Hilltop"}}, body)
}

func (s *GridSuite) TestLoadFromBackend() {
	s.Run("bookings on the selected date land on the grid", func() {
		s.Backend.Seed(e2e.BackendBooking{
			ID: 42, FacilityID: facilityID, Date: testDate, Status: "paid",
			Price: decimal.NewFromInt(40),
			Slots: []e2e.BackendSlot{{CourtID: 5, Interval: firstSlot}},
		})
		s.selectFacility()

		s.Equal("deposited", s.status("5", firstSlot))
		s.Equal("available", s.status("6", firstSlot))

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/grid", nil)
		var grid resdto.GridResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &grid)
		s.Len(grid.Rows, 2)
		s.Equal([]string{firstSlot, secondSlot, "10:00–11:00"}, grid.Intervals)
	})
}

func (s *GridSuite) TestRemoteEventsReconcile() {
	s.Run("another client's booking shows up without a reload", func() {
		s.selectFacility()
		env := builder.NewEnvelopeBuilder().
			WithBookingID(77).
			WithResourceID(6).
			WithInterval(secondSlot).
			WithStatus("active").
			Build()

		s.Eventually(func() bool {
			// At-least-once delivery: republishing is harmless.
			_ = s.remote.Publish(context.Background(), env)
			return s.status("6", secondSlot) == "pending"
		}, 5*time.Second, 100*time.Millisecond)
	})

	s.Run("cancellation frees the cell", func() {
		s.Backend.Seed(e2e.BackendBooking{
			ID: 43, FacilityID: facilityID, Date: testDate, Status: "paid",
			Slots: []e2e.BackendSlot{{CourtID: 5, Interval: secondSlot}},
		})
		s.selectFacility()
		s.Require().Equal("deposited", s.status("5", secondSlot))

		env := builder.NewEnvelopeBuilder().
			WithBookingID(43).
			WithInterval(secondSlot).
			AsCancelled().
			Build()

		s.Eventually(func() bool {
			_ = s.remote.Publish(context.Background(), env)
			return s.status("5", secondSlot) != "deposited"
		}, 5*time.Second, 100*time.Millisecond)
	})
}

func (s *GridSuite) TestMarkSlotBroadcasts() {
	s.Run("marked slot is booked and announced to the facility", func() {
		s.selectFacility()
		drain(s.remote.Events())

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/grid/mark",
			gin.H{"resourceId": 6, "interval": firstSlot, "categoryId": 2})

		var snap resdto.SnapshotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &snap)
		s.Require().NotNil(snap.BookingID)
		s.Equal("deposited", snap.Status)
		s.Equal("local", snap.Origin)

		_, ok := s.Backend.Booking(*snap.BookingID)
		s.True(ok, "backend should hold the new booking")

		s.Eventually(func() bool {
			select {
			case env := <-s.remote.Events():
				return env.Kind == event.KindBookingCreated.String() &&
					env.ResourceID == 6 && env.Interval == firstSlot
			default:
				return false
			}
		}, 5*time.Second, 20*time.Millisecond)
	})

	s.Run("taken slot is refused", func() {
		s.Backend.Seed(e2e.BackendBooking{
			ID: 44, FacilityID: facilityID, Date: testDate, Status: "active",
			Slots: []e2e.BackendSlot{{CourtID: 5, Interval: firstSlot}},
		})
		s.selectFacility()

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/grid/mark",
			gin.H{"resourceId": 5, "interval": firstSlot, "categoryId": 2})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Slot is not available")
	})
}

func (s *GridSuite) TestCompleteBooking() {
	s.Run("deposited booking is settled", func() {
		s.Backend.Seed(e2e.BackendBooking{
			ID: 45, FacilityID: facilityID, Date: testDate, Status: "paid",
			Price: decimal.NewFromInt(40),
			Slots: []e2e.BackendSlot{{CourtID: 6, Interval: firstSlot}},
		})
		s.selectFacility()

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings/45/complete", nil)
		s.Require().Equal(http.StatusNoContent, rec.Code, rec.Body.String())

		s.Equal("completed", s.status("6", firstSlot))
		bk, ok := s.Backend.Booking(45)
		s.Require().True(ok)
		s.Equal("completed", bk.Status)
	})
}

func drain(ch <-chan event.Envelope) {
	for {
		select {
		case <-ch:
		case <-time.After(200 * time.Millisecond):
			return
		}
	}
}
