package app

import (
	"gorm.io/gorm"

	httpserver "github.com/yungbote/blog-backend/internal/http"
	httpH "github.com/yungbote/blog-backend/internal/http/handlers"
	httpMW "github.com/yungbote/blog-backend/internal/http/middleware"
	"github.com/yungbote/blog-backend/internal/observability"
	"github.com/yungbote/blog-backend/internal/platform/logger"
)

func wireServer(db *gorm.DB, log *logger.Logger, cfg Config, s Services, metrics *observability.Metrics) *httpserver.Server {
	log.Info("Wiring HTTP server...")
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return httpserver.NewServer(httpserver.RouterConfig{
		Log:            log.With("component", "http"),
		Metrics:        metrics,
		ServiceName:    serviceName,
		AllowedOrigins: cfg.AllowedOrigins,
		AuthHandler:    httpH.NewAuthHandler(s.Auth),
		AuthMiddleware: httpMW.NewAuthMiddleware(log, s.Auth),
		PostHandler:    httpH.NewPostHandler(s.Feed, s.Blog, s.Engagement),
		CommentHandler: httpH.NewCommentHandler(s.Feed),
		HealthHandler:  httpH.NewHealthHandler(db),
	})
}
