package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"deploy-monitor/internal/middleware"
)

func (srv *HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()
	srv.registerDomainRoutes()
	return nil
}

func (srv *HTTPServer) registerMiddlewares() {
	mw := middleware.New(srv.l)

	srv.gin.Use(gin.Recovery())
	srv.gin.Use(mw.RequestID())
	srv.gin.Use(mw.AccessLog())
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

func (srv *HTTPServer) registerDomainRoutes() {
	ctx := context.Background()

	srv.gin.POST("/webhook", srv.webhookHandler.HandleGitHubWebhook)
	srv.gin.GET("/webhook", srv.webhookHandler.HandleGitHubInfo)
	srv.gin.POST("/webhook/platform", srv.webhookHandler.HandleDigitalOceanWebhook)
	srv.gin.GET("/webhook/platform", srv.webhookHandler.HandleDigitalOceanInfo)
	srv.gin.GET("/webhook/status", srv.webhookHandler.HandleStatus)
	srv.gin.POST("/webhook/status", srv.webhookHandler.HandleLogEvent)

	srv.l.Infof(ctx, "Webhook routes registered at /webhook, /webhook/platform, /webhook/status")
}
