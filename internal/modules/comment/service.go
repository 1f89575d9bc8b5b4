package comment

import (
	"context"
	"errors"
	"strings"

	"qavat/internal/domain"
	"qavat/internal/repository"
)

var (
	ErrAdNotFound = errors.New("ad not found")
	ErrEmptyText  = errors.New("comment text must not be empty")
)

type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) error
	ListByAd(ctx context.Context, adID int64) ([]domain.Comment, error)
}

type AdReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Ad, error)
}

type NotificationSender interface {
	NotifyNewComment(ctx context.Context, ownerID, adID int64, text string) error
}

type Service struct {
	comments CommentRepository
	ads      AdReader
	notifs   NotificationSender
}

func NewService(comments CommentRepository, ads AdReader, notifs NotificationSender) *Service {
	return &Service{comments: comments, ads: ads, notifs: notifs}
}

func (s *Service) Create(ctx context.Context, userID, adID int64, text string) (*domain.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	ad, err := s.ads.GetByID(ctx, adID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrAdNotFound
		}
		return nil, err
	}

	c := &domain.Comment{AdID: adID, UserID: userID, Text: text}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}

	// владельцу объявления, кроме случая когда он комментирует сам себя
	if s.notifs != nil && ad.UserID != userID {
		_ = s.notifs.NotifyNewComment(ctx, ad.UserID, adID, text)
	}

	return c, nil
}

// ListByAd — свежие сверху.
func (s *Service) ListByAd(ctx context.Context, adID int64) ([]domain.Comment, error) {
	if _, err := s.ads.GetByID(ctx, adID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrAdNotFound
		}
		return nil, err
	}
	return s.comments.ListByAd(ctx, adID)
}
