package service

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/huynhhaigiang/cadico-api/internal/config"
	"github.com/huynhhaigiang/cadico-api/internal/plan/repository"
	"github.com/huynhhaigiang/cadico-api/internal/sse"
)

// publishPlanEvent is indirected so unit tests can silence the hub.
var publishPlanEvent = sse.PublishPlanUpdate

// Services bundles the plan-side services for handler wiring.
type Services struct {
	Auth         *AuthService
	Catalog      *CatalogService
	Plan         *PlanService
	Export       *ExportService
	Notification *NotificationService
}

func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config, logger *zap.Logger) *Services {
	notifySvc := NewNotificationService(repos.Notification, repos.Plan, logger)
	planSvc := NewPlanService(repos.Plan, repos.User, notifySvc, logger)
	return &Services{
		Auth:         NewAuthService(repos.User, rdb, cfg),
		Catalog:      NewCatalogService(repos),
		Plan:         planSvc,
		Export:       NewExportService(planSvc),
		Notification: notifySvc,
	}
}
