//go:build unit

package api_test

import (
	"net/http"
	"net/url"

	"court-grid/internal/domain/slot"
	resdto "court-grid/internal/handler/dto/response"
	"court-grid/internal/usecase/queries"
	"court-grid/internal/usecase/shared"
	"court-grid/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func cellQuery(path string, resourceID, interval string) string {
	q := url.Values{}
	if resourceID != "" {
		q.Set("resourceId", resourceID)
	}
	if interval != "" {
		q.Set("interval", interval)
	}
	return path + "?" + q.Encode()
}

func (s *HandlerTestSuite) TestGrid() {
	s.Run("success: renders rows and cells", func() {
		booked := s.key(5, testInterval)
		free := s.key(5, "09:00–10:00")
		s.engine.EXPECT().Grid().Return(&queries.Grid{
			FacilityID: 1,
			Date:       testDate,
			Intervals:  []string{testInterval, "09:00–10:00"},
			Rows: []queries.Row{{
				Court: shared.Court{ID: 5, FacilityID: 1, Name: "Court 5"},
				Cells: []queries.Cell{
					{Key: booked, Snapshot: paidSnapshot(42)},
					{Key: free, Snapshot: slot.Available()},
				},
			}},
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/grid", nil)

		var body resdto.GridResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("2025-08-01", body.Date)
		s.Require().Len(body.Rows, 1)
		s.Equal("Court 5", body.Rows[0].Court.Name)
		s.Require().Len(body.Rows[0].Cells, 2)

		cell := body.Rows[0].Cells[0]
		s.Equal("deposited", cell.Status)
		s.Equal(int64(42), *cell.BookingID)
		s.Equal("40", cell.Price.String())
		s.Equal("paid", cell.OriginalStatus)
		s.Equal(uint64(3), cell.Revision)
		s.Equal("load", cell.Origin)
		s.Equal(testInterval, cell.Interval)

		s.Equal("available", body.Rows[0].Cells[1].Status)
		s.Nil(body.Rows[0].Cells[1].BookingID)
	})

	s.Run("error: 400 without a selection", func() {
		s.engine.EXPECT().Grid().Return(nil, shared.Invalid(shared.ErrNoFacility))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/grid", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "No facility selected")
	})
}

func (s *HandlerTestSuite) TestStatusAndSnapshot() {
	s.Run("status of a booked cell", func() {
		s.engine.EXPECT().Snapshot(int64(5), testInterval).Return(s.key(5, testInterval), paidSnapshot(42), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, cellQuery("/api/grid/status", "5", testInterval), nil)

		var body resdto.StatusResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("deposited", body.Status)
		s.Equal(int64(5), body.ResourceID)
	})

	s.Run("snapshot with a loading customer", func() {
		customerID := int64(7)
		snap := paidSnapshot(42).WithCustomer(&customerID, slot.LoadingCustomer())
		s.engine.EXPECT().Snapshot(int64(5), testInterval).Return(s.key(5, testInterval), snap, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, cellQuery("/api/grid/snapshot", "5", testInterval), nil)

		var body resdto.SnapshotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(7), *body.CustomerID)
		s.True(body.Customer.Loading)
	})

	s.Run("error: 400 on missing interval", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, cellQuery("/api/grid/status", "5", ""), nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 400 on malformed interval", func() {
		s.engine.EXPECT().Snapshot(int64(5), "late").Return(slot.Key{}, slot.Snapshot{}, shared.Invalid(shared.ErrInvalidInterval))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, cellQuery("/api/grid/snapshot", "5", "late"), nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid interval")
	})
}

func (s *HandlerTestSuite) TestMarkSlot() {
	path := "/api/grid/mark"
	reqBody := gin.H{"resourceId": 5, "interval": testInterval, "categoryId": 2}

	s.Run("success: 201 with the optimistic snapshot", func() {
		snap := slot.NewBookingSnapshot(77, slot.StatusDeposited, decimal.Zero)
		snap.OriginalStatus = "paid"
		snap = snap.WithRevision(9, slot.OriginLocal)
		s.engine.EXPECT().MarkSlot(gomock.Any(), int64(5), testInterval, int64(2)).Return(s.key(5, testInterval), snap, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, reqBody)

		var body resdto.SnapshotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(int64(77), *body.BookingID)
		s.Equal("deposited", body.Status)
		s.True(body.Price.IsZero())
		s.Equal("local", body.Origin)
	})

	errorCases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{name: "slot taken", err: shared.Invalid(shared.ErrSlotNotAvailable), status: http.StatusConflict, msg: "Slot is not available"},
		{name: "no category", err: shared.Invalid(shared.ErrCategoryRequired), status: http.StatusBadRequest, msg: "Category is required"},
		{name: "another request in flight", err: shared.ErrBusy, status: http.StatusConflict, msg: "Another request"},
		{name: "backend rejected", err: classified(shared.ErrRequestFailed), status: http.StatusBadGateway, msg: "rejected"},
		{name: "backend timed out", err: classified(shared.ErrUnknownOutcome), status: http.StatusGatewayTimeout, msg: "reloaded"},
	}
	for _, tc := range errorCases {
		s.Run("error: "+tc.name, func() {
			s.engine.EXPECT().MarkSlot(gomock.Any(), int64(5), testInterval, int64(2)).Return(slot.Key{}, slot.Snapshot{}, tc.err)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, reqBody)
			httptest.AssertErrorResponse(s.T(), rec, tc.status, tc.msg)
		})
	}

	s.Run("error: 400 on malformed body", func() {
		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, path, `{"resourceId":`)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}
