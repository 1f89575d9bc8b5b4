package verification

import (
	"context"

	"qavat/internal/domain"
)

// VerificationRepository defines the interface for gold verification storage
type VerificationRepository interface {
	Create(ctx context.Context, req *domain.GoldVerificationRequest) error
	GetByID(ctx context.Context, id int64) (*domain.GoldVerificationRequest, error)
	Update(ctx context.Context, req *domain.GoldVerificationRequest) error
	HasPendingForAd(ctx context.Context, adID int64) (bool, error)
	ListByStatus(ctx context.Context, status domain.GoldVerificationStatus) ([]domain.GoldVerificationRequest, error)
	ListAll(ctx context.Context) ([]domain.GoldVerificationRequest, error)
	ListByRequester(ctx context.Context, userID int64) ([]domain.GoldVerificationRequest, error)
	ListByAd(ctx context.Context, adID int64) ([]domain.GoldVerificationRequest, error)
	ApprovedAdIDs(ctx context.Context) ([]int64, error)
	AdGoldStatus(ctx context.Context, adID int64) (*domain.GoldStatus, error)
}

type AdRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Ad, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Ad, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// FavouriteReader нужен только для аннотации is_favourited в выдаче.
type FavouriteReader interface {
	AdIDsForUser(ctx context.Context, userID int64) (map[int64]bool, error)
}

type NotificationSender interface {
	NotifyGoldProcessed(ctx context.Context, ownerID, adID int64, approved bool, adminComment string) error
}
