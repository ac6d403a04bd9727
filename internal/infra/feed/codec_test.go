//go:build unit

package feed_test

import (
	"testing"

	"court-grid/internal/domain/event"
	"court-grid/internal/infra/feed"
	"court-grid/internal/pkg/errs"
	"court-grid/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr error
		check   func(t *testing.T, env event.Envelope)
	}{
		{
			name:    "booking created",
			payload: `{"kind":"BookingCreated","facilityId":1,"bookingId":42,"resourceId":5,"date":"2025-08-01","interval":"08:00–09:00","status":"paid","price":"40.50"}`,
			check: func(t *testing.T, env event.Envelope) {
				assert.Equal(t, int64(42), *env.BookingID)
				assert.Equal(t, "40.5", env.Price.String())
			},
		},
		{
			name:    "numeric price",
			payload: `{"kind":"BookingUpdated","facilityId":1,"resourceId":5,"date":"2025-08-01","interval":"08:00–09:00","status":"deposit","price":12}`,
			check: func(t *testing.T, env event.Envelope) {
				assert.Nil(t, env.BookingID)
				assert.Equal(t, "12", env.Price.String())
			},
		},
		{
			name:    "unknown kind",
			payload: `{"kind":"BookingExploded","facilityId":1}`,
			wantErr: event.ErrUnknownKind,
		},
		{
			name:    "not json",
			payload: `hello`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := feed.Decode([]byte(tt.payload))
			if tt.check == nil {
				require.Error(t, err)
				if tt.wantErr != nil {
					assert.True(t, errs.Is(err, tt.wantErr), "got %v", err)
				}
				return
			}
			require.NoError(t, err)
			tt.check(t, env)
		})
	}
}

func TestEncode_KeepsCustomer(t *testing.T) {
	env := builder.NewEnvelopeBuilder().WithCustomer(7, "Dana", "555-0100").Build()
	data, err := feed.Encode(env)
	require.NoError(t, err)

	got, err := feed.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, int64(7), *got.CustomerID)
	assert.Equal(t, "Dana", got.CustomerName)
	assert.Equal(t, "555-0100", got.CustomerPhone)
}

func TestEncode_RejectsUnknownKind(t *testing.T) {
	env := builder.NewEnvelopeBuilder().Build()
	env.Kind = ""
	_, err := feed.Encode(env)
	assert.True(t, errs.Is(err, event.ErrUnknownKind), "got %v", err)
}
