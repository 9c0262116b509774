package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"salon-backoffice/internal/domain/staff"
	"salon-backoffice/internal/handler/api"
	"salon-backoffice/internal/handler/middleware"
	"salon-backoffice/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type handlers struct {
	reservations *api.ReservationHandler
	giftCards    *api.GiftCardHandler
	settings     *api.SettingsHandler
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	reservationHandler *api.ReservationHandler,
	giftCardHandler *api.GiftCardHandler,
	settingsHandler *api.SettingsHandler,
	authMiddleware *middleware.AuthMiddleware,
	logger *slog.Logger,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, handlers{
		reservations: reservationHandler,
		giftCards:    giftCardHandler,
		settings:     settingsHandler,
	}, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		operator := []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(staff.RoleOperator)}
		admin := []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(staff.RoleAdmin)}

		reservations := apiGroup.Group("/reservations")
		addRoutes(reservations, []route{
			{Method: http.MethodGet, Path: "/:id", Handler: h.reservations.GetReservation},
			{Method: http.MethodPost, Path: "/:id/validation/preview", Handler: h.reservations.PreviewValidation, Mw: operator},
			{Method: http.MethodPost, Path: "/:id/validation", Handler: h.reservations.ValidateReservation, Mw: operator},
			{Method: http.MethodPost, Path: "/:id/payment-link", Handler: h.reservations.CreatePaymentLink, Mw: operator},
			{Method: http.MethodDelete, Path: "/:id/payment", Handler: h.reservations.CancelPendingPayment, Mw: operator},
		})

		giftCards := apiGroup.Group("/gift-cards")
		addRoutes(giftCards, []route{
			{Method: http.MethodGet, Path: "/:code", Handler: h.giftCards.VerifyGiftCard, Mw: operator},
		})

		settings := apiGroup.Group("/settings")
		addRoutes(settings, []route{
			{Method: http.MethodGet, Path: "/loyalty", Handler: h.settings.GetLoyaltySettings},
			{Method: http.MethodPut, Path: "/loyalty", Handler: h.settings.UpdateLoyaltySettings, Mw: admin},
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
