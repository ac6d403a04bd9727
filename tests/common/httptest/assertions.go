//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"court-grid/internal/handler/httperr"

	"github.com/stretchr/testify/require"
)

// AssertSuccessResponse checks the status and, when target is set, that the
// body is a JSON document that decodes into it.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, status int, target any) {
	t.Helper()

	require.Equalf(t, status, w.Code, "unexpected status, body: %s", w.Body.String())
	if target == nil {
		return
	}
	require.Truef(t, strings.HasPrefix(w.Header().Get("Content-Type"), "application/json"),
		"expected a JSON body, got %q", w.Header().Get("Content-Type"))
	require.NoErrorf(t, json.Unmarshal(w.Body.Bytes(), target), "undecodable body: %s", w.Body.String())
}

// AssertErrorResponse checks the status and the public error envelope. An
// empty msg only asserts that the envelope carries some message. The decoded
// envelope is returned so callers can inspect Detail.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, status int, msg string) httperr.Response {
	t.Helper()

	require.Equalf(t, status, w.Code, "unexpected status, body: %s", w.Body.String())

	var resp httperr.Response
	require.NoErrorf(t, json.Unmarshal(w.Body.Bytes(), &resp), "undecodable error body: %s", w.Body.String())
	require.NotEmpty(t, resp.Error.Message, "error envelope without a message")
	if msg != "" {
		require.Contains(t, resp.Error.Message, msg)
	}
	return resp
}
