package domain

import "time"

type GoldVerificationStatus string

const (
	GoldPending  GoldVerificationStatus = "pending"
	GoldApproved GoldVerificationStatus = "approved"
	GoldRejected GoldVerificationStatus = "rejected"
)

// CancelledByUserComment записывается при отмене заявки самим пользователем.
const CancelledByUserComment = "Cancelled by user"

// GoldVerificationRequest — одна попытка получить золотую отметку для объявления.
// Частичный уникальный индекс гарантирует не более одной pending-заявки на объявление;
// гонка check-then-create закрывается на уровне БД, не в приложении.
type GoldVerificationRequest struct {
	ID            int64                  `json:"id" gorm:"primaryKey"`
	AdID          int64                  `json:"ad_id" gorm:"not null;index;uniqueIndex:idx_gold_pending_per_ad,where:status = 'pending'"`
	RequestedBy   int64                  `json:"requested_by" gorm:"not null;index"`
	ProcessedBy   *int64                 `json:"processed_by,omitempty"`
	Status        GoldVerificationStatus `json:"status" gorm:"default:pending"`
	RequestReason string                 `json:"request_reason,omitempty"`
	AdminComment  string                 `json:"admin_comment,omitempty"`
	RequestedAt   time.Time              `json:"requested_at" gorm:"autoCreateTime"`
	ProcessedAt   *time.Time             `json:"processed_at,omitempty"`

	Ad        *Ad   `json:"ad,omitempty" gorm:"foreignKey:AdID;constraint:OnDelete:CASCADE"`
	Requester *User `json:"requester,omitempty" gorm:"foreignKey:RequestedBy;constraint:OnDelete:CASCADE"`
	Processor *User `json:"processor,omitempty" gorm:"foreignKey:ProcessedBy"`
}

func (GoldVerificationRequest) TableName() string { return "gold_verification_requests" }

func (r *GoldVerificationRequest) IsTerminal() bool {
	return r.Status == GoldApproved || r.Status == GoldRejected
}

// GoldStatus — производный статус объявления. Не хранится: каждый раз
// вычисляется из истории заявок (метаданные — от самой свежей по requested_at,
// is_gold_verified — есть ли хоть одна approved).
type GoldStatus struct {
	IsGoldVerified bool                    `json:"is_gold_verified"`
	Status         *GoldVerificationStatus `json:"gold_verification_status,omitempty"`
	RequestedAt    *time.Time              `json:"gold_requested_at,omitempty"`
	ProcessedAt    *time.Time              `json:"gold_processed_at,omitempty"`
	AdminComment   string                  `json:"gold_admin_comment,omitempty"`
}
