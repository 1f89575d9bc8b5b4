package domain

import "time"

type NotificationType string

const (
	NotifGoldApproved NotificationType = "gold_approved"
	NotifGoldRejected NotificationType = "gold_rejected"
	NotifNewComment   NotificationType = "new_comment"
)

type Notification struct {
	ID        int64            `json:"id" gorm:"primaryKey"`
	UserID    int64            `json:"user_id" gorm:"not null;index"`
	Type      NotificationType `json:"type" gorm:"size:32;not null"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	AdID      *int64           `json:"ad_id,omitempty"`
	IsRead    bool             `json:"is_read" gorm:"default:false"`
	CreatedAt time.Time        `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
