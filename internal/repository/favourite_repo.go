package repository

import (
	"context"

	"qavat/internal/domain"

	"gorm.io/gorm"
)

type FavouriteRepository struct {
	db *gorm.DB
}

func NewFavouriteRepository(db *gorm.DB) *FavouriteRepository {
	return &FavouriteRepository{db: db}
}

func (r *FavouriteRepository) DB() *gorm.DB { return r.db }

// Add идемпотентно: при срабатывании уникального индекса (user_id, ad_id)
// возвращается существующая запись, дубликат не создаётся.
func (r *FavouriteRepository) Add(ctx context.Context, userID, adID int64) (*domain.Favourite, error) {
	fav := &domain.Favourite{UserID: userID, AdID: adID}
	err := r.db.WithContext(ctx).Create(fav).Error
	if err != nil {
		if IsUniqueViolation(err) {
			return r.Get(ctx, userID, adID)
		}
		return nil, err
	}
	return fav, nil
}

func (r *FavouriteRepository) Get(ctx context.Context, userID, adID int64) (*domain.Favourite, error) {
	var fav domain.Favourite
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND ad_id = ?", userID, adID).
		First(&fav).Error
	if err != nil {
		return nil, err
	}
	return &fav, nil
}

func (r *FavouriteRepository) Remove(ctx context.Context, userID, adID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND ad_id = ?", userID, adID).
		Delete(&domain.Favourite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *FavouriteRepository) Exists(ctx context.Context, userID, adID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Favourite{}).
		Where("user_id = ? AND ad_id = ?", userID, adID).
		Count(&count).Error
	return count > 0, err
}

func (r *FavouriteRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Favourite, error) {
	var favs []domain.Favourite
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Ad").
		Order("created_at DESC").
		Find(&favs).Error
	return favs, err
}

// AdIDsForUser — множество объявлений в закладках зрителя; нужен для
// аннотации is_favourited без мутации сущностей.
func (r *FavouriteRepository) AdIDsForUser(ctx context.Context, userID int64) (map[int64]bool, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&domain.Favourite{}).
		Where("user_id = ?", userID).
		Pluck("ad_id", &ids).Error
	if err != nil {
		return nil, err
	}
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (r *FavouriteRepository) CountForAds(ctx context.Context, adIDs []int64) (int64, error) {
	if len(adIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Favourite{}).
		Where("ad_id IN ?", adIDs).
		Count(&count).Error
	return count, err
}
