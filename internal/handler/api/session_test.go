//go:build unit

package api_test

import (
	"net/http"

	resdto "court-grid/internal/handler/dto/response"
	"court-grid/internal/usecase/shared"
	"court-grid/tests/common/httptest"
	"court-grid/tests/common/testutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func (s *HandlerTestSuite) TestSelect() {
	url := "/api/session/selection"
	reqBody := gin.H{"facilityId": 1, "date": "2025-08-01"}

	s.Run("success: selects and returns the new selection", func() {
		s.engine.EXPECT().Select(gomock.Any(), int64(1), testDate).Return(nil)
		s.engine.EXPECT().Selection().Return(s.selection())

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody)

		var body resdto.SelectionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(resdto.SelectionResponse{FacilityID: 1, Date: "2025-08-01", Generation: 1}, body)
	})

	invalid := []struct {
		name   string
		edit   testutil.Edit
	}{
		{name: "missing facilityId", edit: testutil.Drop("facilityId")},
		{name: "zero facilityId", edit: testutil.Set("facilityId", 0)},
		{name: "missing date", edit: testutil.Drop("date")},
		{name: "unparseable date", edit: testutil.Set("date", "first of August")},
	}
	for _, tc := range invalid {
		s.Run("error: 400 on "+tc.name, func() {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, testutil.RequestBody(s.T(), reqBody, tc.edit))
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid")
		})
	}

	s.Run("error: 503 when the load fails", func() {
		s.engine.EXPECT().Select(gomock.Any(), int64(1), testDate).Return(classified(shared.ErrLoadFailed))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "Failed to load bookings")
	})
}

func (s *HandlerTestSuite) TestGetSelection() {
	s.engine.EXPECT().Selection().Return(s.selection())

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/session/selection", nil)

	var body resdto.SelectionResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Equal(int64(1), body.FacilityID)
}

func (s *HandlerTestSuite) TestReload() {
	s.Run("error: 400 without a selection", func() {
		s.engine.EXPECT().Selection().Return(shared.Selection{})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/session/reload", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "No facility selected")
	})

	s.Run("success: reloads the current selection", func() {
		s.engine.EXPECT().Selection().Return(s.selection()).Times(2)
		s.engine.EXPECT().Reload(gomock.Any()).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/session/reload", nil)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}

func (s *HandlerTestSuite) TestLoading() {
	s.Run("idle", func() {
		s.engine.EXPECT().Loading().Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/loading", nil)

		var body resdto.LoadingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.Active)
		s.False(body.Busy)
	})

	s.Run("busy", func() {
		s.engine.EXPECT().Loading().Return([]string{"create", "load:2"})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/loading", nil)

		var body resdto.LoadingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal([]string{"create", "load:2"}, body.Active)
		s.True(body.Busy)
	})
}

func (s *HandlerTestSuite) TestFacilities() {
	s.Run("success", func() {
		s.engine.EXPECT().Facilities(gomock.Any()).Return([]shared.Facility{
			{ID: 1, Name: "Riverside"},
			{ID: 2, Name: "Hilltop"},
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/facilities", nil)

		var body []resdto.FacilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal([]resdto.FacilityResponse{{ID: 1, Name: "Riverside"}, {ID: 2, Name: "Hilltop"}}, body)
	})

	s.Run("error: 503 when the catalog is down", func() {
		s.engine.EXPECT().Facilities(gomock.Any()).Return(nil, classified(shared.ErrLoadFailed))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/facilities", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "Failed to load bookings")
	})
}
