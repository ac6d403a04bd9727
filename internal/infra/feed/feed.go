package feed

import (
	"fmt"
	"log/slog"

	"court-grid/internal/pkg/config"
	"court-grid/internal/usecase/shared"
)

// NewFeed builds the transport selected by FEED_TRANSPORT. The memory
// transport gets a private hub, so it only echoes the client's own events.
func NewFeed(cfg config.FeedConfig, logger *slog.Logger) (shared.EventFeed, error) {
	switch cfg.Transport {
	case config.TransportRedis:
		f, err := NewRedisFeed(cfg, logger)
		if err != nil {
			return nil, err
		}
		return f, nil
	case config.TransportAMQP:
		f, err := NewAMQPFeed(cfg, logger)
		if err != nil {
			return nil, err
		}
		return f, nil
	case config.TransportMemory:
		return NewHub(logger).Attach(cfg.Buffer), nil
	default:
		return nil, fmt.Errorf("unsupported feed transport %q", cfg.Transport)
	}
}

// lossSignal tells the consumer that at least one envelope was dropped since
// it last looked.
type lossSignal chan struct{}

func newLossSignal() lossSignal {
	return make(lossSignal, 1)
}

func (l lossSignal) mark() {
	select {
	case l <- struct{}{}:
	default:
	}
}
