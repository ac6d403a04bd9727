//go:build unit

package api_test

import (
	"net/http"
	nethttptest "net/http/httptest"
	"strings"
	"time"

	"court-grid/internal/domain/slot"
	resdto "court-grid/internal/handler/dto/response"
	"court-grid/internal/usecase/projection"
	"court-grid/tests/common/httptest"

	"github.com/gorilla/websocket"
	"go.uber.org/mock/gomock"
)

func (s *HandlerTestSuite) TestStream() {
	s.Run("error: 400 without upgrade", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/stream", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Websocket upgrade required")
	})

	s.Run("selection frame then one frame per change", func() {
		listeners := make(chan projection.Listener, 1)
		unsubscribed := make(chan struct{})
		s.engine.EXPECT().Selection().Return(s.selection())
		s.engine.EXPECT().Subscribe(gomock.Any()).DoAndReturn(func(fn projection.Listener) func() {
			listeners <- fn
			return func() { close(unsubscribed) }
		})

		srv := nethttptest.NewServer(s.router)
		defer srv.Close()

		wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/stream"
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		s.Require().NoError(err)
		defer conn.Close()
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

		var first struct {
			Kind      string                   `json:"kind"`
			Selection resdto.SelectionResponse `json:"selection"`
		}
		s.Require().NoError(conn.ReadJSON(&first))
		s.Equal("selection", first.Kind)
		s.Equal(resdto.SelectionResponse{FacilityID: 1, Date: "2025-08-01", Generation: 1}, first.Selection)

		var listener projection.Listener
		select {
		case listener = <-listeners:
		case <-time.After(time.Second):
			s.FailNow("stream never subscribed")
		}

		key := s.key(5, testInterval)
		listener(projection.Change{Kind: projection.ChangeSet, Key: key, Before: slot.Available(), After: paidSnapshot(42)})
		listener(projection.Change{Kind: projection.ChangeCleared})

		var set resdto.ChangeMessage
		s.Require().NoError(conn.ReadJSON(&set))
		s.Equal("set", set.Kind)
		s.Require().NotNil(set.Key)
		s.Equal(int64(5), set.Key.ResourceID)
		s.Equal("available", set.Before.Status)
		s.Equal("deposited", set.After.Status)
		s.Equal(int64(42), *set.After.BookingID)

		var cleared resdto.ChangeMessage
		s.Require().NoError(conn.ReadJSON(&cleared))
		s.Equal("cleared", cleared.Kind)
		s.Nil(cleared.Key)

		s.Require().NoError(conn.Close())
		s.Eventually(func() bool {
			select {
			case <-unsubscribed:
				return true
			default:
				return false
			}
		}, 2*time.Second, 10*time.Millisecond)
	})
}
