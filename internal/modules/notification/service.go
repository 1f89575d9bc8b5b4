package notification

import (
	"context"
	"errors"
	"fmt"

	"qavat/internal/domain"
	"qavat/internal/repository"
)

var ErrNotFound = errors.New("notification not found")

type Repository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkAsRead(ctx context.Context, id, userID int64) error
	MarkAllAsRead(ctx context.Context, userID int64) error
}

// Service сначала пишет уведомление в БД, затем пробует дослать его
// в открытый websocket. Оффлайн-пользователь получит его из списка.
type Service struct {
	repo Repository
	hub  *Hub
}

func NewService(repo Repository, hub *Hub) *Service {
	return &Service{repo: repo, hub: hub}
}

func (s *Service) deliver(ctx context.Context, n *domain.Notification) error {
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}
	if s.hub != nil {
		s.hub.Push(n.UserID, n)
	}
	return nil
}

func (s *Service) NotifyGoldProcessed(ctx context.Context, ownerID, adID int64, approved bool, adminComment string) error {
	n := &domain.Notification{
		UserID: ownerID,
		AdID:   &adID,
	}
	if approved {
		n.Type = domain.NotifGoldApproved
		n.Title = "Золотая отметка подтверждена"
		n.Message = "Ваше объявление получило золотую отметку"
	} else {
		n.Type = domain.NotifGoldRejected
		n.Title = "Заявка отклонена"
		n.Message = "Заявка на золотую отметку отклонена"
		if adminComment != "" {
			n.Message = fmt.Sprintf("%s: %s", n.Message, adminComment)
		}
	}
	return s.deliver(ctx, n)
}

func (s *Service) NotifyNewComment(ctx context.Context, ownerID, adID int64, text string) error {
	// обрезка по рунам: срез по байтам рвёт кириллицу посреди символа
	if runes := []rune(text); len(runes) > 80 {
		text = string(runes[:80]) + "…"
	}
	n := &domain.Notification{
		UserID:  ownerID,
		AdID:    &adID,
		Type:    domain.NotifNewComment,
		Title:   "Новый комментарий",
		Message: text,
	}
	return s.deliver(ctx, n)
}

func (s *Service) List(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID, limit)
}

func (s *Service) CountUnread(ctx context.Context, userID int64) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, id, userID int64) error {
	err := s.repo.MarkAsRead(ctx, id, userID)
	if repository.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}

func (s *Service) MarkAllRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
