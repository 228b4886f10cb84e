package handlers

import (
	"time"

	"energy_tracker/internal/logger"
	"energy_tracker/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services       *service.Service
	log            *logger.Logger
	streamInterval time.Duration
	corsOrigins    []string
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// SetStreamInterval changes the default push interval of the inbox stream.
// Clients can still pick their own with ?interval= or ?interval_ms=.
func (h *Handler) SetStreamInterval(d time.Duration) {
	h.streamInterval = d
}

// SetCORSOrigins enables CORS for the given browser origins. "*" allows any.
func (h *Handler) SetCORSOrigins(origins []string) {
	h.corsOrigins = origins
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if len(h.corsOrigins) > 0 {
		router.Use(cors.New(h.corsConfig()))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// Inbox stream; the token travels in the query string
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	if len(h.corsOrigins) == 1 && h.corsOrigins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = h.corsOrigins
	}
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	cfg.AllowWebSockets = true
	return cfg
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		api.DELETE("/account", h.deleteAccount)
		api.GET("/stats", h.getStats)

		h.registerProfileRoutes(api)
		h.registerApplianceRoutes(api)
		h.registerGoalRoutes(api)
		h.registerCalcRoutes(api)
		h.registerNotificationRoutes(api)
	}
}

func (h *Handler) registerProfileRoutes(api *gin.RouterGroup) {
	profile := api.Group("/profile")
	{
		profile.GET("", h.getProfile)
		profile.PUT("/personal", h.savePersonal)
		profile.PUT("/location", h.saveLocation)
		profile.PUT("/preferences", h.savePreferences)
	}
}

func (h *Handler) registerApplianceRoutes(api *gin.RouterGroup) {
	appliances := api.Group("/appliances")
	{
		appliances.GET("", h.listAppliances)
		appliances.POST("", h.addAppliance)
		appliances.GET("/breakdown", h.applianceBreakdown)
		appliances.DELETE("/:id", h.deleteAppliance)
	}
}

func (h *Handler) registerGoalRoutes(api *gin.RouterGroup) {
	goals := api.Group("/goals")
	{
		goals.GET("", h.listGoals)
		goals.POST("", h.addGoal)
		goals.POST("/check", h.checkGoals)
		goals.DELETE("/:id", h.deleteGoal)
	}
}

func (h *Handler) registerCalcRoutes(api *gin.RouterGroup) {
	calc := api.Group("/calc")
	{
		calc.POST("/carbon", h.calcCarbon)
		calc.POST("/bill", h.calcBill)
		calc.POST("/scenario", h.calcScenario)
	}
}

func (h *Handler) registerNotificationRoutes(api *gin.RouterGroup) {
	n := api.Group("/notifications")
	{
		n.GET("", h.listNotifications)
		n.POST("", h.createNotification)
		n.DELETE("", h.clearNotifications)
		n.POST("/read-all", h.markAllNotificationsRead)
		n.POST("/:id/read", h.markNotificationRead)
		n.DELETE("/:id", h.deleteNotification)
	}
}
