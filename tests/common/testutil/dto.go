//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequestBody renders v as the generic JSON object a client would send, then
// applies edits, so a test can break one field of an otherwise valid request.
func RequestBody(t *testing.T, v any, edits ...Edit) map[string]any {
	t.Helper()

	raw, err := json.Marshal(v)
	require.NoError(t, err, "request body does not marshal")

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body), "request body is not a JSON object")

	for _, edit := range edits {
		edit(body)
	}
	return body
}
