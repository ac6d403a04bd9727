package components

import (
	"log/slog"

	"court-grid/internal/infra/metrics"
	"court-grid/internal/pkg/clock"
	"court-grid/internal/pkg/config"
	"court-grid/internal/usecase"
	"court-grid/internal/usecase/commands"
	"court-grid/internal/usecase/projection"
	"court-grid/internal/usecase/queries"
	"court-grid/internal/usecase/reconcile"
	"court-grid/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		projection.NewStore,
		shared.NewSession,
		queries.NewCustomerCache,
		queries.NewLoader,
		queries.NewGridQueries,
		queries.NewFacilityQueries,
		NewMutator,
		commands.NewDispatcher,
		reconcile.NewReconciler,
		usecase.NewEngine,
	),
)

func NewMutator(
	bookings shared.BookingGateway,
	feed shared.EventFeed,
	store *projection.Store,
	session *shared.Session,
	loader queries.Loader,
	rec *metrics.Recorder,
	logger *slog.Logger,
	clk clock.Clock,
	cfg config.Config,
) commands.Mutator {
	return commands.NewMutator(bookings, feed, store, session, loader, rec, logger, clk, cfg.Sync.ReloadGrace)
}
