package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/blog-backend/internal/data/aggregates"
	"github.com/yungbote/blog-backend/internal/observability"
	"github.com/yungbote/blog-backend/internal/platform/logger"
	"github.com/yungbote/blog-backend/internal/services"
)

type Services struct {
	Auth       services.AuthService
	Feed       services.FeedService
	Blog       services.BlogService
	Engagement services.EngagementService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, clients Clients, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")
	runner := aggregates.NewGormTxRunner(db)
	base := aggregates.BaseDeps{
		DB:     db,
		Log:    log,
		Runner: runner,
		Hooks:  aggregates.NewObservabilityHooks(log, metrics),
	}

	auth, err := services.NewAuthService(services.AuthServiceDeps{
		Log:    log,
		Runner: runner,
		Users:  r.User,
		Tokens: r.UserToken,
		Config: cfg.Auth(),
	})
	if err != nil {
		return Services{}, fmt.Errorf("init auth service: %w", err)
	}

	feed := services.NewFeedService(services.FeedServiceDeps{
		Log:            log,
		Runner:         runner,
		Users:          r.User,
		Posts:          r.Post,
		Comments:       r.Comment,
		Likes:          r.Like,
		Paging:         cfg.Paging(),
		LatestComments: cfg.LatestCommentsLimit,
	})

	posts := aggregates.NewPostAggregate(aggregates.PostAggregateDeps{
		Base: base, Posts: r.Post, Comments: r.Comment, Likes: r.Like,
	})
	engagement := aggregates.NewEngagementAggregate(aggregates.EngagementAggregateDeps{
		Base: base, Posts: r.Post, Comments: r.Comment, Likes: r.Like,
	})
	notifier := services.NewEngagementNotifier(log, clients.Bus, metrics)

	return Services{
		Auth:       auth,
		Feed:       feed,
		Blog:       services.NewBlogService(log, posts),
		Engagement: services.NewEngagementService(log, engagement, notifier),
	}, nil
}
