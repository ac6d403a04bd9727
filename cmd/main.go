package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"court-grid/cmd/bootstrap"
	"court-grid/internal/domain/slot"
	"court-grid/internal/pkg/clock"
	"court-grid/internal/pkg/config"
	"court-grid/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

const shutdownTimeout = 10 * time.Second

func init() {
	// Fail safe: never expose debug routes because of a missing setting.
	gin.SetMode(gin.ReleaseMode)

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}
}

// @title           court-grid
// @version         1.0
// @description     Live booking grid of a sports facility, kept in sync with the booking backend.

// @BasePath  /api
// @schemes http https
func startServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			gin.EnableJsonDecoderDisallowUnknownFields()
			logger.Info("starting server", "address", srv.Addr, "mode", gin.Mode())
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping server")
			return srv.Shutdown(ctx)
		},
	})
}

// startEngine consumes the event feed for the lifetime of the app and, when
// SYNC_DEFAULT_FACILITY is set, selects that facility for today.
func startEngine(lc fx.Lifecycle, engine usecase.Engine, cfg config.Config, clk clock.Clock, logger *slog.Logger) {
	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				if err := engine.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("event loop stopped", "error", err)
				}
			}()
			if cfg.Sync.DefaultFacility > 0 {
				go func() {
					today := slot.DateOf(clk.Now())
					if err := engine.Select(runCtx, cfg.Sync.DefaultFacility, today); err != nil {
						logger.Error("initial selection failed",
							"facility_id", cfg.Sync.DefaultFacility,
							"date", today.String(),
							"error", err)
					}
				}()
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-ctx.Done():
			}
			return nil
		},
	})
}

func main() {
	app := fx.New(
		bootstrap.Module,
		fx.Provide(
			func() *gin.Engine {
				return gin.New()
			},
		),
		fx.Invoke(
			startServer,
			startEngine,
		),
		fx.StopTimeout(shutdownTimeout),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("failed to start application", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		slog.Error("failed to stop application", "error", err)
	}

	slog.Info("application stopped")
}
