//go:build unit

package api_test

import (
	"net/http"
	nethttptest "net/http/httptest"

	"court-grid/tests/common/httptest"
)

func (s *HandlerTestSuite) TestHealth() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/health", nil)

	var body map[string]string
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Equal("ok", body["status"])
}

func (s *HandlerTestSuite) TestMetrics() {
	s.metrics.SetStoreEntries(3)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/metrics", nil)

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "court_grid_store_entries 3")
}

func (s *HandlerTestSuite) TestRequestIDHeader() {
	s.Run("echoes the caller's id", func() {
		req := nethttptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Request-ID", "req-123")
		rec := nethttptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		httptest.AssertRequestID(s.T(), rec, "req-123")
	})

	s.Run("generates one when missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/health", nil)
		httptest.AssertRequestID(s.T(), rec, "")
	})
}
