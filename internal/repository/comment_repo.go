package repository

import (
	"context"

	"qavat/internal/domain"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) DB() *gorm.DB { return r.db }

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// ListByAd — новые сверху.
func (r *CommentRepository) ListByAd(ctx context.Context, adID int64) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := r.db.WithContext(ctx).
		Where("ad_id = ?", adID).
		Preload("User").
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	return comments, err
}
