package components

import (
	"context"
	"log/slog"

	"court-grid/internal/infra/feed"
	"court-grid/internal/infra/gateway"
	"court-grid/internal/infra/metrics"
	"court-grid/internal/pkg/clock"
	"court-grid/internal/pkg/config"
	"court-grid/internal/usecase/shared"

	"go.uber.org/fx"
)

var InfraModule = fx.Module("infra",
	fx.Provide(
		metrics.New,
		clock.NewRealClock,
		NewEventFeed,
		// One REST client serves every backend port.
		fx.Annotate(
			NewGatewayClient,
			fx.As(new(shared.CatalogGateway)),
			fx.As(new(shared.BookingGateway)),
			fx.As(new(shared.AccountGateway)),
		),
	),
)

func NewGatewayClient(cfg config.Config, rec *metrics.Recorder, logger *slog.Logger) (*gateway.Client, error) {
	return gateway.NewClient(cfg.Backend, rec, logger)
}

// NewEventFeed connects the configured transport and closes it on shutdown.
func NewEventFeed(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.EventFeed, error) {
	f, err := feed.NewFeed(cfg.Feed, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("event feed connected", "transport", cfg.Feed.Transport)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return f.Close()
		},
	})
	return f, nil
}
