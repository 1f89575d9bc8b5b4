package repository

import (
	"context"
	"time"

	"qavat/internal/domain"

	"gorm.io/gorm"
)

// StatsRepository — счётчики для агрегатов. Помесячные срезы собираются
// сервисом из диапазонных запросов, без диалектных функций даты.
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&count).Error
	return count, err
}

func (r *StatsRepository) CountAds(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Ad{}).Count(&count).Error
	return count, err
}

func (r *StatsRepository) countBetween(ctx context.Context, model any, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(model).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *StatsRepository) CountUsersBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return r.countBetween(ctx, &domain.User{}, from, to)
}

func (r *StatsRepository) CountAdsBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return r.countBetween(ctx, &domain.Ad{}, from, to)
}

// CountVerificationsBetween считает заявки по requested_at.
func (r *StatsRepository) CountVerificationsBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.GoldVerificationRequest{}).
		Where("requested_at >= ? AND requested_at < ?", from, to).
		Count(&count).Error
	return count, err
}
