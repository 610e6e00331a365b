package server

import (
	"github.com/gin-gonic/gin"
	"lan_relay/internal/config"
	"lan_relay/internal/handler"
	"lan_relay/internal/middleware"
	"lan_relay/internal/service"
	"lan_relay/pkg/logger"
)

// NewRouter builds the gin engine serving the page, the upload and download
// endpoints and the real-time socket.
func NewRouter(services *service.Services, cfg *config.Config, log logger.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	handlers := handler.NewHandlers(services, cfg, log)
	rateLimit := middleware.NewRateLimitMiddleware(services.RateLimit, cfg.RateLimit.Uploads, cfg.RateLimit.Window, log)

	router := gin.New()
	router.MaxMultipartMemory = 32 << 20
	router.SetHTMLTemplate(handler.Templates())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandler())

	router.GET("/", handlers.Page.Index)
	router.GET("/health", handlers.Health.Check)
	router.GET("/server-info", handlers.Health.ServerInfo)
	router.GET("/api/history", handlers.Page.History)
	router.GET("/api/stats", handlers.Stats.GetSessionStats)

	router.POST("/upload", rateLimit.Limit(), handlers.File.Upload)
	router.GET("/download/:id", handlers.File.Download)

	router.GET("/socket", handlers.WebSocket.HandleSession)

	return router
}
