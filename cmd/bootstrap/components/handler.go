package components

import (
	"court-grid/internal/handler"
	"court-grid/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewSessionHandler,
		api.NewGridHandler,
		api.NewBookingHandler,
		api.NewDetailHandler,
		api.NewMenuHandler,
		api.NewStreamHandler,
	),
	fx.Invoke(handler.NewRouter),
)
