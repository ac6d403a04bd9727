//go:build unit

package api_test

import (
	"net/http"

	"court-grid/internal/domain/slot"
	resdto "court-grid/internal/handler/dto/response"
	"court-grid/internal/usecase/commands"
	"court-grid/internal/usecase/shared"
	"court-grid/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func (s *HandlerTestSuite) TestCreateBooking() {
	url := "/api/bookings"
	reqBody := gin.H{
		"categoryId": 2,
		"slots": []gin.H{
			{"resourceId": 5, "interval": testInterval},
			{"resourceId": 5, "interval": "09:00–10:00"},
		},
	}
	wantRefs := []commands.SlotRef{
		{ResourceID: 5, Interval: testInterval},
		{ResourceID: 5, Interval: "09:00–10:00"},
	}

	s.Run("success: 201 with booking id and location", func() {
		s.engine.EXPECT().CreateBooking(gomock.Any(), wantRefs, int64(2)).Return(&commands.CreateBookingOutcome{
			BookingID: 88,
			Keys:      []slot.Key{s.key(5, testInterval), s.key(5, "09:00–10:00")},
			Status:    slot.StatusPending,
			Reloaded:  true,
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var body resdto.CreateBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(int64(88), body.BookingID)
		s.Equal("pending", body.Status)
		s.Len(body.Slots, 2)
		s.True(body.Reloaded)
		httptest.AssertBookingLocation(s.T(), rec, 88)
	})

	s.Run("error: 400 when no slots are given", func() {
		s.engine.EXPECT().CreateBooking(gomock.Any(), []commands.SlotRef{}, int64(2)).
			Return(nil, shared.Invalid(shared.ErrNoIntervals))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, gin.H{"categoryId": 2, "slots": []gin.H{}})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "At least one slot")
	})

	s.Run("error: 400 on a slot without interval", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			gin.H{"categoryId": 2, "slots": []gin.H{{"resourceId": 5}}})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *HandlerTestSuite) TestCompleteBooking() {
	s.Run("success: 204", func() {
		s.engine.EXPECT().CompleteBooking(gomock.Any(), int64(42)).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/42/complete", nil)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 on a non-numeric id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/abc/complete", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	errorCases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not on the grid", err: shared.Invalid(shared.ErrBookingNotFound), status: http.StatusNotFound},
		{name: "not deposited", err: shared.Invalid(shared.ErrNotDeposited), status: http.StatusConflict},
		{name: "backend rejected", err: classified(shared.ErrRequestFailed), status: http.StatusBadGateway},
	}
	for _, tc := range errorCases {
		s.Run("error: "+tc.name, func() {
			s.engine.EXPECT().CompleteBooking(gomock.Any(), int64(42)).Return(tc.err)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/42/complete", nil)
			httptest.AssertErrorResponse(s.T(), rec, tc.status, "")
		})
	}
}
