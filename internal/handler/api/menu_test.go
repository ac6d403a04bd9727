//go:build unit

package api_test

import (
	"net/http"

	"court-grid/internal/domain/menu"
	resdto "court-grid/internal/handler/dto/response"
	"court-grid/internal/usecase/commands"
	"court-grid/internal/usecase/shared"
	"court-grid/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func visibleMenu() commands.MenuView {
	return commands.MenuView{
		State:  menu.StateVisible,
		Target: &menu.Target{ResourceID: 5, Interval: testInterval},
		Items:  menu.New().Items(),
	}
}

func (s *HandlerTestSuite) TestMenu() {
	s.Run("get hidden menu", func() {
		s.engine.EXPECT().Menu().Return(commands.MenuView{State: menu.StateHidden, Items: menu.New().Items()})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/menu", nil)

		var body resdto.MenuResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("hidden", body.State)
		s.Nil(body.Target)
	})

	s.Run("open over a free cell", func() {
		s.engine.EXPECT().OpenMenu(int64(5), testInterval).Return(visibleMenu(), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/menu/open",
			gin.H{"resourceId": 5, "interval": testInterval})

		var body resdto.MenuResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("visible", body.State)
		s.Require().NotNil(body.Target)
		s.Equal(int64(5), body.Target.ResourceID)
		s.Require().Len(body.Items, 2)
		s.Equal("mark_slot", body.Items[0].Action)
		s.True(body.Items[0].Enabled)
		s.False(body.Items[1].Enabled)
	})

	s.Run("error: 409 opening over a booked cell", func() {
		s.engine.EXPECT().OpenMenu(int64(5), testInterval).
			Return(commands.MenuView{}, shared.Invalid(shared.ErrSlotNotAvailable))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/menu/open",
			gin.H{"resourceId": 5, "interval": testInterval})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Slot is not available")
	})

	s.Run("close", func() {
		s.engine.EXPECT().CloseMenu().Return(commands.MenuView{State: menu.StateHidden})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/menu/close", nil)

		var body resdto.MenuResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("hidden", body.State)
	})
}

func (s *HandlerTestSuite) TestChooseMenu() {
	s.Run("mark slot", func() {
		key := s.key(5, testInterval)
		s.engine.EXPECT().ChooseMenu(gomock.Any(), menu.ActionMarkSlot, int64(2)).
			Return(&commands.ChooseResult{Action: menu.ActionMarkSlot, Key: key, Snapshot: paidSnapshot(77)}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/menu/choose",
			gin.H{"action": "mark_slot", "categoryId": 2})

		var body resdto.ChooseResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("mark_slot", body.Action)
		s.Equal(int64(77), *body.Snapshot.BookingID)
	})

	errorCases := []struct {
		name   string
		action menu.Action
		err    error
		status int
	}{
		{name: "disabled action", action: menu.ActionBlock, err: menu.ErrActionDisabled, status: http.StatusUnprocessableEntity},
		{name: "menu hidden", action: menu.ActionMarkSlot, err: menu.ErrMenuHidden, status: http.StatusConflict},
		{name: "unknown action", action: menu.Action("teleport"), err: menu.ErrUnknownAction, status: http.StatusBadRequest},
	}
	for _, tc := range errorCases {
		s.Run("error: "+tc.name, func() {
			s.engine.EXPECT().ChooseMenu(gomock.Any(), tc.action, int64(0)).Return(nil, tc.err)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/menu/choose",
				gin.H{"action": string(tc.action)})
			httptest.AssertErrorResponse(s.T(), rec, tc.status, "")
		})
	}

	s.Run("error: 400 without action", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/menu/choose", gin.H{"categoryId": 2})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}
