package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/themobileprof/portfolio-concierge/internal/api/middleware"
	"github.com/themobileprof/portfolio-concierge/internal/chat"
	"github.com/themobileprof/portfolio-concierge/internal/knowledge"
)

// RouterConfig collects what the HTTP surface needs
type RouterConfig struct {
	Engine  *chat.Engine
	Store   *knowledge.Store
	Version string
	Logger  zerolog.Logger

	AllowedOrigins []string
	RateLimiter    *middleware.RateLimiter

	// Admin is mounted only when both are set
	AdminPasswordHash string
	JWTSecret         string
	Auth              *AuthHandler

	QueryLog UnansweredLister
	Features middleware.FeatureChecker

	// Chat serves the WebSocket endpoint when non-nil
	Chat gin.HandlerFunc
}

// NewRouter builds the gin engine with every public and admin route
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	ask := NewAskHandler(cfg.Engine, cfg.Store, cfg.Version)
	router.GET("/health", ask.Health)

	public := router.Group("/api")
	if cfg.RateLimiter != nil {
		public.Use(middleware.PerIP(cfg.RateLimiter))
	}
	public.Use(middleware.MaxBodyBytes(MaxMessageBytes))
	{
		public.POST("/ask", ask.Ask)
		public.GET("/knowledge/summary", ask.Summary)
	}

	if cfg.Chat != nil {
		ws := router.Group("/ws")
		if cfg.RateLimiter != nil {
			ws.Use(middleware.PerIP(cfg.RateLimiter))
		}
		ws.GET("/chat", cfg.Chat)
	}

	if cfg.AdminPasswordHash == "" || cfg.JWTSecret == "" {
		return router
	}

	auth := cfg.Auth
	if auth == nil {
		auth = NewAuthHandler(cfg.AdminPasswordHash, cfg.JWTSecret, 0)
	}
	admin := NewAdminHandler(cfg.Store, cfg.QueryLog)

	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.MaxBodyBytes(MaxMessageBytes))
	if cfg.RateLimiter != nil {
		adminGroup.Use(middleware.PerIP(cfg.RateLimiter))
	}
	adminGroup.POST("/login", auth.Login)

	protected := adminGroup.Group("")
	protected.Use(middleware.JWTAuth(cfg.JWTSecret))
	{
		protected.POST("/reload", middleware.RequireFeature(cfg.Features, middleware.FeatureReload), admin.Reload)
		protected.GET("/unanswered", middleware.RequireFeature(cfg.Features, middleware.FeatureQueryLog), admin.Unanswered)
	}

	return router
}
