package ad

import (
	"context"

	"qavat/internal/domain"
	"qavat/internal/repository"
)

// AdRepository defines the interface for ad storage
type AdRepository interface {
	Create(ctx context.Context, ad *domain.Ad) error
	GetByID(ctx context.Context, id int64) (*domain.Ad, error)
	Update(ctx context.Context, ad *domain.Ad) error
	Delete(ctx context.Context, id int64) error
	IncrementViews(ctx context.Context, id int64) error
	List(ctx context.Context, f repository.AdFilters) ([]domain.Ad, error)
	Nearby(ctx context.Context, lat, lon, radiusKM float64) ([]domain.Ad, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Ad, error)
}

type CategoryReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
}

// GoldStatusReader отдаёт производный золотой статус объявления.
type GoldStatusReader interface {
	AdGoldStatus(ctx context.Context, adID int64) (*domain.GoldStatus, error)
}

type FavouriteReader interface {
	Exists(ctx context.Context, userID, adID int64) (bool, error)
	AdIDsForUser(ctx context.Context, userID int64) (map[int64]bool, error)
}
