//go:build unit

package api_test

import (
	"net/http"

	"court-grid/internal/domain/slot"
	resdto "court-grid/internal/handler/dto/response"
	"court-grid/internal/usecase/shared"
	"court-grid/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func (s *HandlerTestSuite) TestDetail() {
	s.Run("closed", func() {
		s.engine.EXPECT().Detail().Return(slot.Key{}, slot.Snapshot{}, false)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/detail", nil)

		var body resdto.DetailResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.False(body.Open)
		s.Nil(body.Snapshot)
	})

	s.Run("open over a cell", func() {
		key := s.key(5, testInterval)
		s.engine.EXPECT().OpenDetail(int64(5), testInterval).Return(key, paidSnapshot(42), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/detail",
			gin.H{"resourceId": 5, "interval": testInterval})

		var body resdto.DetailResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Open)
		s.Require().NotNil(body.Snapshot)
		s.Equal(int64(42), *body.Snapshot.BookingID)
	})

	s.Run("read back the open view", func() {
		key := s.key(5, testInterval)
		s.engine.EXPECT().Detail().Return(key, paidSnapshot(42), true)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/detail", nil)

		var body resdto.DetailResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Open)
		s.Equal("deposited", body.Snapshot.Status)
	})

	s.Run("close", func() {
		s.engine.EXPECT().CloseDetail()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/detail", nil)
		s.Equal(http.StatusNoContent, rec.Code)
	})
}

func (s *HandlerTestSuite) TestCustomer() {
	s.Run("success", func() {
		s.engine.EXPECT().LookupCustomer(gomock.Any(), int64(7)).
			Return(&shared.CustomerDetails{ID: 7, Name: "Dana", Phone: "555-0100", AvatarURL: "https://cdn.example/7.png"}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/customers/7", nil)

		var body resdto.CustomerDetailsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(resdto.CustomerDetailsResponse{ID: 7, Name: "Dana", Phone: "555-0100", AvatarURL: "https://cdn.example/7.png"}, body)
	})

	s.Run("error: 400 on a bad id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/customers/0", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 502 when the backend refuses", func() {
		s.engine.EXPECT().LookupCustomer(gomock.Any(), int64(7)).Return(nil, classified(shared.ErrRequestFailed))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/customers/7", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "")
	})
}
