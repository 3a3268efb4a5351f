package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	identityapp "github.com/riya0704/LeadTrak/internal/application/identity"
	"github.com/riya0704/LeadTrak/internal/infrastructure/auth"
	"github.com/riya0704/LeadTrak/internal/infrastructure/logger"
	"github.com/riya0704/LeadTrak/internal/interfaces/http/handler"
	"github.com/riya0704/LeadTrak/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Config carries everything the router wires together
type Config struct {
	Logger      *zap.Logger
	JWTService  *auth.JWTService
	AuthService *identityapp.AuthService
	AuthHandler *handler.AuthHandler
	LeadHandler *handler.LeadHandler
	CORS        middleware.CORSConfig
}

// Setup builds the gin engine with all middleware and routes registered
func Setup(cfg Config) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(middleware.CORSWithConfig(cfg.CORS))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", cfg.AuthHandler.Register)
		authRoutes.POST("/login", cfg.AuthHandler.Login)
		authRoutes.GET("/me",
			middleware.JWTAuth(cfg.JWTService, cfg.AuthService),
			cfg.AuthHandler.Me)
	}

	leads := api.Group("/leads")
	leads.Use(middleware.JWTAuth(cfg.JWTService, cfg.AuthService))
	{
		leads.GET("", cfg.LeadHandler.List)
		leads.POST("", cfg.LeadHandler.Create)
		leads.GET("/export", cfg.LeadHandler.Export)
		leads.POST("/import", cfg.LeadHandler.Import)
		leads.GET("/:id", cfg.LeadHandler.Get)
		leads.PUT("/:id", cfg.LeadHandler.Update)
		leads.GET("/:id/history", cfg.LeadHandler.History)
	}

	return engine
}
