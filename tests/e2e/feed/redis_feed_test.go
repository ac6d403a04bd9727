//go:build e2e

package feed_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"court-grid/internal/domain/event"
	"court-grid/internal/infra/feed"
	"court-grid/tests/common/builder"
	"court-grid/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RedisFeedSuite struct {
	suite.Suite
	publisher  *feed.RedisFeed
	subscriber *feed.RedisFeed
}

func TestRedisFeedSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(RedisFeedSuite))
}

func (s *RedisFeedSuite) SetupTest() {
	cfg := e2e.RedisFeedConfig(s.T())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var err error
	s.publisher, err = feed.NewRedisFeed(cfg, logger)
	require.NoError(s.T(), err)
	s.subscriber, err = feed.NewRedisFeed(cfg, logger)
	require.NoError(s.T(), err)
}

func (s *RedisFeedSuite) TearDownTest() {
	s.NoError(s.publisher.Close())
	s.NoError(s.subscriber.Close())
}

// publishUntilSeen republishes env until it arrives on ch, since a
// subscription only takes effect once Redis has processed it.
func (s *RedisFeedSuite) publishUntilSeen(env event.Envelope, ch <-chan event.Envelope) event.Envelope {
	var got event.Envelope
	s.Require().Eventually(func() bool {
		if err := s.publisher.Publish(context.Background(), env); err != nil {
			return false
		}
		select {
		case got = <-ch:
			return true
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
	return got
}

func drain(ch <-chan event.Envelope) {
	for {
		select {
		case <-ch:
		case <-time.After(200 * time.Millisecond):
			return
		}
	}
}

func (s *RedisFeedSuite) TestDeliversWithinFacility() {
	ctx := context.Background()
	s.Require().NoError(s.subscriber.Join(ctx, 1))

	env := builder.NewEnvelopeBuilder().WithCustomer(7, "Dana", "555-0100").Build()
	got := s.publishUntilSeen(env, s.subscriber.Events())

	s.Equal(env.Kind, got.Kind)
	s.Equal(env.ResourceID, got.ResourceID)
	s.Equal(env.Interval, got.Interval)
	s.Equal(int64(42), *got.BookingID)
	s.Equal("Dana", got.CustomerName)
	s.True(env.Price.Equal(got.Price))
	s.True(env.SentAt.Equal(got.SentAt))
}

func (s *RedisFeedSuite) TestOtherFacilityIsSilent() {
	ctx := context.Background()
	s.Require().NoError(s.subscriber.Join(ctx, 1))
	s.publishUntilSeen(builder.NewEnvelopeBuilder().Build(), s.subscriber.Events())
	drain(s.subscriber.Events())

	other := builder.NewEnvelopeBuilder().WithFacilityID(2).Build()
	s.Require().NoError(s.publisher.Publish(ctx, other))

	select {
	case env := <-s.subscriber.Events():
		s.Failf("unexpected delivery", "got event for facility %d", env.FacilityID)
	case <-time.After(300 * time.Millisecond):
	}
}

func (s *RedisFeedSuite) TestLeaveStopsDelivery() {
	ctx := context.Background()
	s.Require().NoError(s.subscriber.Join(ctx, 1))
	s.publishUntilSeen(builder.NewEnvelopeBuilder().Build(), s.subscriber.Events())

	s.Require().NoError(s.subscriber.Leave(ctx, 1))
	// Unsubscribe is asynchronous too; let it land before asserting silence.
	time.Sleep(200 * time.Millisecond)
	drain(s.subscriber.Events())

	s.Require().NoError(s.publisher.Publish(ctx, builder.NewEnvelopeBuilder().AsCompleted().Build()))

	select {
	case env := <-s.subscriber.Events():
		s.Failf("unexpected delivery", "got %s after leave", env.Kind)
	case <-time.After(300 * time.Millisecond):
	}
}

func (s *RedisFeedSuite) TestCloseEndsEvents() {
	sub := s.subscriber.Events()
	s.Require().NoError(s.subscriber.Close())

	s.Eventually(func() bool {
		select {
		case _, ok := <-sub:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}
