package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/blog-backend/internal/http/handlers"
	httpMW "github.com/yungbote/blog-backend/internal/http/middleware"
	"github.com/yungbote/blog-backend/internal/observability"
	"github.com/yungbote/blog-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	AllowedOrigins []string

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware
	PostHandler    *httpH.PostHandler
	CommentHandler *httpH.CommentHandler
	HealthHandler  *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))
	r.Use(httpMW.RequestLogger(cfg.Log))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	if cfg.AuthMiddleware != nil {
		api.Use(cfg.AuthMiddleware.Identify())
	}

	// Auth
	if cfg.AuthHandler != nil {
		auth := api.Group("/auth")
		auth.POST("/register", cfg.AuthHandler.Register)
		auth.POST("/login", cfg.AuthHandler.Login)
		auth.POST("/refresh", cfg.AuthHandler.Refresh)
		if cfg.AuthMiddleware != nil {
			auth.POST("/logout", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.Logout)
		} else {
			auth.POST("/logout", cfg.AuthHandler.Logout)
		}
	}

	// Posts. Writes reject anonymous callers before the body or id is read.
	if cfg.PostHandler != nil {
		api.GET("/posts", cfg.PostHandler.List)
		api.GET("/posts/:id", cfg.PostHandler.Retrieve)

		writes := api.Group("/posts")
		if cfg.AuthMiddleware != nil {
			writes.Use(cfg.AuthMiddleware.RequireAuth())
		}
		writes.POST("", cfg.PostHandler.Create)
		writes.PUT("/:id", cfg.PostHandler.Update)
		writes.PATCH("/:id", cfg.PostHandler.Update)
		writes.DELETE("/:id", cfg.PostHandler.Delete)
		writes.POST("/:id/like", cfg.PostHandler.Like)
		writes.POST("/:id/unlike", cfg.PostHandler.Unlike)
		writes.POST("/:id/comment", cfg.PostHandler.Comment)
	}

	// Comments (read only)
	if cfg.CommentHandler != nil {
		api.GET("/comments", cfg.CommentHandler.List)
		api.GET("/comments/:id", cfg.CommentHandler.Retrieve)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "route not found", "code": "not_found"}})
	})

	return r
}
