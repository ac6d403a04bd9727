//go:build unit || e2e

package httptest

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"court-grid/internal/handler/middleware"

	"github.com/stretchr/testify/assert"
)

// AssertBookingLocation checks the Location header of a created booking.
func AssertBookingLocation(t *testing.T, w *httptest.ResponseRecorder, bookingID int64) {
	t.Helper()
	assert.Equal(t, fmt.Sprintf("/api/bookings/%d", bookingID), w.Header().Get("Location"))
}

// AssertRequestID checks the correlation header. An empty want accepts any
// generated id.
func AssertRequestID(t *testing.T, w *httptest.ResponseRecorder, want string) {
	t.Helper()
	got := w.Header().Get(middleware.RequestIDHeader)
	if want == "" {
		assert.NotEmpty(t, got, "no %s on the response", middleware.RequestIDHeader)
		return
	}
	assert.Equal(t, want, got)
}
