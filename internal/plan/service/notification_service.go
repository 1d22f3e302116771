package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/huynhhaigiang/cadico-api/internal/plan/entity"
	"github.com/huynhhaigiang/cadico-api/internal/plan/repository"
	"github.com/huynhhaigiang/cadico-api/internal/sse"
)

// ReminderItem is one overdue approval surfaced by a reminder source.
type ReminderItem struct {
	UserID     string
	Title      string
	Content    string
	EntityType string
	EntityID   string
}

// ReminderSource lists approvals that have been waiting longer than the
// cutoff. The supply module registers its own source so ticket reminders
// ride the same cron.
type ReminderSource interface {
	PendingReminders(ctx context.Context, cutoff time.Time) ([]ReminderItem, error)
}

// NotificationService thông báo trong ứng dụng + nhắc việc hằng ngày
type NotificationService struct {
	repo     *repository.NotificationRepository
	planRepo *repository.PlanRepository
	logger   *zap.Logger
	sources  []ReminderSource
	cron     *cron.Cron
}

func NewNotificationService(repo *repository.NotificationRepository, planRepo *repository.PlanRepository, logger *zap.Logger) *NotificationService {
	s := &NotificationService{
		repo:     repo,
		planRepo: planRepo,
		logger:   logger,
	}
	s.sources = append(s.sources, planReminderSource{planRepo})
	return s
}

// AddReminderSource registers an extra source for the daily reminder job.
func (s *NotificationService) AddReminderSource(src ReminderSource) {
	s.sources = append(s.sources, src)
}

func (s *NotificationService) List(ctx context.Context, userID string, limit int) ([]entity.Notification, int64, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	items, err := s.repo.FindByUser(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return items, unread, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	return s.repo.MarkRead(ctx, userID, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllRead(ctx, userID)
}

// Notify persists a notification and pushes it over SSE.
func (s *NotificationService) Notify(ctx context.Context, userID, title, content, typ, entityType, entityID string) {
	if userID == "" {
		return
	}
	n := &entity.Notification{
		ID:         uuid.New().String()[:32],
		UserID:     userID,
		Title:      title,
		Content:    content,
		Type:       typ,
		EntityType: entityType,
		EntityID:   entityID,
		CreatedAt:  time.Now(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("create notification", zap.Error(err), zap.String("user_id", userID))
		return
	}
	if payload, err := json.Marshal(n); err == nil {
		sse.SendNotification(userID, string(payload))
	}
}

// StartReminderJob schedules the 08:00 daily sweep over approvals that
// have been pending for more than 24 hours. Returns the cron so the
// caller can stop it on shutdown.
func (s *NotificationService) StartReminderJob() *cron.Cron {
	c := cron.New()
	c.AddFunc("0 8 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		s.RunReminderSweep(ctx)
	})
	c.Start()
	s.cron = c
	return c
}

// RunReminderSweep sends one reminder per overdue approval.
func (s *NotificationService) RunReminderSweep(ctx context.Context) {
	cutoff := time.Now().Add(-24 * time.Hour)
	for _, src := range s.sources {
		items, err := src.PendingReminders(ctx, cutoff)
		if err != nil {
			s.logger.Error("reminder sweep", zap.Error(err))
			continue
		}
		for _, it := range items {
			s.Notify(ctx, it.UserID, it.Title, it.Content, entity.NotificationTypeReminder, it.EntityType, it.EntityID)
		}
	}
}

type planReminderSource struct {
	planRepo *repository.PlanRepository
}

func (p planReminderSource) PendingReminders(ctx context.Context, cutoff time.Time) ([]ReminderItem, error) {
	plans, err := p.planRepo.FindPendingSince(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	items := make([]ReminderItem, 0, len(plans))
	for _, plan := range plans {
		if plan.NextApproverID == nil {
			continue
		}
		items = append(items, ReminderItem{
			UserID:     *plan.NextApproverID,
			Title:      "Phương án chờ duyệt quá hạn",
			Content:    "Phương án " + plan.Code + " - " + plan.Name + " đang chờ bạn phê duyệt hơn 24 giờ",
			EntityType: entity.NotificationEntityPlan,
			EntityID:   plan.ID,
		})
	}
	return items, nil
}
