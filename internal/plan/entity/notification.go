package entity

import "time"

// Notification thông báo trong ứng dụng. Read state is persisted so the
// unread badge survives reloads.
type Notification struct {
	ID         string    `json:"id" gorm:"primaryKey;size:32"`
	UserID     string    `json:"user_id" gorm:"size:32;not null;index"`
	Title      string    `json:"title" gorm:"size:200;not null"`
	Content    string    `json:"content" gorm:"type:text"`
	Type       string    `json:"type" gorm:"size:30"`
	EntityType string    `json:"entity_type" gorm:"size:30"`
	EntityID   string    `json:"entity_id" gorm:"size:32"`
	IsRead     bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// Notification types
const (
	NotificationTypeApproval = "approval" // chờ bạn phê duyệt
	NotificationTypeApproved = "approved"
	NotificationTypeRejected = "rejected"
	NotificationTypeReminder = "reminder" // nhắc việc tồn đọng
)

// Notified entity types
const (
	NotificationEntityPlan   = "plan"
	NotificationEntityTicket = "supply_ticket"
)
