package favourite

import (
	"context"
	"errors"

	"qavat/internal/domain"
	"qavat/internal/repository"
)

var (
	ErrAdNotFound = errors.New("ad not found")
	ErrNotInList  = errors.New("ad is not in favourites")
)

type FavouriteRepository interface {
	Add(ctx context.Context, userID, adID int64) (*domain.Favourite, error)
	Remove(ctx context.Context, userID, adID int64) error
	Exists(ctx context.Context, userID, adID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Favourite, error)
}

type AdReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Ad, error)
}

type Service struct {
	favs FavouriteRepository
	ads  AdReader
}

func NewService(favs FavouriteRepository, ads AdReader) *Service {
	return &Service{favs: favs, ads: ads}
}

// Add идемпотентен: повторное добавление возвращает существующую закладку.
func (s *Service) Add(ctx context.Context, userID, adID int64) (*domain.Favourite, error) {
	if _, err := s.ads.GetByID(ctx, adID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrAdNotFound
		}
		return nil, err
	}
	return s.favs.Add(ctx, userID, adID)
}

func (s *Service) Remove(ctx context.Context, userID, adID int64) error {
	err := s.favs.Remove(ctx, userID, adID)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrNotInList
		}
		return err
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]domain.Favourite, error) {
	return s.favs.ListByUser(ctx, userID)
}

func (s *Service) Check(ctx context.Context, userID, adID int64) (bool, error) {
	return s.favs.Exists(ctx, userID, adID)
}
