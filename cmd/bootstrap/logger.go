package bootstrap

import (
	"log/slog"

	"court-grid/internal/handler/middleware"
	"court-grid/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

func NewLogger(cfg config.Config) *slog.Logger {
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()
	slog.SetDefault(logger)
	return logger
}
