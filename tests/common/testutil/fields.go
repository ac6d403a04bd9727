//go:build unit || e2e

package testutil

// Edit changes one field of a request body built by RequestBody.
type Edit func(body map[string]any)

func Set(key string, value any) Edit {
	return func(body map[string]any) { body[key] = value }
}

func Drop(key string) Edit {
	return func(body map[string]any) { delete(body, key) }
}
