package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"court-grid/internal/handler/api"
	"court-grid/internal/handler/middleware"
	"court-grid/internal/infra/metrics"
	"court-grid/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	fx.In

	Session *api.SessionHandler
	Grid    *api.GridHandler
	Booking *api.BookingHandler
	Detail  *api.DetailHandler
	Menu    *api.MenuHandler
	Stream  *api.StreamHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, rec *metrics.Recorder, h Handlers) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, rec, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery(logger))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, rec *metrics.Recorder, h Handlers) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(rec.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		session := apiGroup.Group("/session")
		addRoutes(session, []route{
			{Method: http.MethodGet, Path: "/selection", Handler: h.Session.GetSelection},
			{Method: http.MethodPut, Path: "/selection", Handler: h.Session.Select},
			{Method: http.MethodPost, Path: "/reload", Handler: h.Session.Reload},
		})

		grid := apiGroup.Group("/grid")
		addRoutes(grid, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Grid.Grid},
			{Method: http.MethodGet, Path: "/status", Handler: h.Grid.Status},
			{Method: http.MethodGet, Path: "/snapshot", Handler: h.Grid.Snapshot},
			{Method: http.MethodPost, Path: "/mark", Handler: h.Grid.MarkSlot},
		})

		bookings := apiGroup.Group("/bookings")
		addRoutes(bookings, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Booking.Create},
			{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Booking.Complete},
		})

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/facilities", Handler: h.Session.Facilities},
			{Method: http.MethodGet, Path: "/detail", Handler: h.Detail.Get},
			{Method: http.MethodPut, Path: "/detail", Handler: h.Detail.Open},
			{Method: http.MethodDelete, Path: "/detail", Handler: h.Detail.Close},
			{Method: http.MethodGet, Path: "/customers/:id", Handler: h.Detail.Customer},
			{Method: http.MethodGet, Path: "/loading", Handler: h.Session.Loading},
			{Method: http.MethodGet, Path: "/stream", Handler: h.Stream.Stream, Mw: []gin.HandlerFunc{middleware.RequireUpgrade()}},
		})

		menu := apiGroup.Group("/menu")
		addRoutes(menu, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Menu.Get},
			{Method: http.MethodPost, Path: "/open", Handler: h.Menu.Open},
			{Method: http.MethodPost, Path: "/close", Handler: h.Menu.Close},
			{Method: http.MethodPost, Path: "/choose", Handler: h.Menu.Choose},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
