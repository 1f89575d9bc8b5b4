package category

import (
	"context"

	"qavat/internal/domain"
	"qavat/internal/repository"
)

type Service struct {
	cats CategoryRepository
	ads  AdCounter
}

func NewService(cats CategoryRepository, ads AdCounter) *Service {
	return &Service{cats: cats, ads: ads}
}

func (s *Service) checkParent(ctx context.Context, parentID *int64) error {
	if parentID == nil {
		return nil
	}
	if _, err := s.cats.GetByID(ctx, *parentID); err != nil {
		if repository.IsNotFound(err) {
			return ErrParentNotFound
		}
		return err
	}
	return nil
}

func (s *Service) Create(ctx context.Context, req CreateCategoryRequest) (*domain.Category, error) {
	if len(req.Names) == 0 {
		return nil, ErrNoNames
	}
	if err := s.checkParent(ctx, req.ParentID); err != nil {
		return nil, err
	}

	c := &domain.Category{ParentID: req.ParentID, IconURL: req.IconURL}
	if err := s.cats.Create(ctx, c, req.Names); err != nil {
		return nil, err
	}
	return s.cats.GetByID(ctx, c.ID)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Category, error) {
	c, err := s.cats.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateCategoryRequest) (*domain.Category, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		if *req.ParentID == id {
			return nil, ErrSelfParent
		}
		if err := s.checkParent(ctx, req.ParentID); err != nil {
			return nil, err
		}
		c.ParentID = req.ParentID
	}
	if req.IconURL != nil {
		c.IconURL = req.IconURL
	}

	// Save не трогает ассоциации, переводы обновляются отдельно
	names := c.Names
	c.Names = nil
	if err := s.cats.Update(ctx, c); err != nil {
		return nil, err
	}
	c.Names = names

	for lang, name := range req.Names {
		if err := s.cats.UpsertName(ctx, id, lang, name); err != nil {
			return nil, err
		}
	}

	return s.cats.GetByID(ctx, id)
}

// Delete запрещён, пока на категорию ссылаются подкатегории или объявления.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	children, err := s.cats.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return ErrHasChildren
	}

	ads, err := s.ads.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if ads > 0 {
		return ErrHasAds
	}

	return s.cats.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	return s.cats.List(ctx)
}

func (s *Service) ListRoots(ctx context.Context) ([]domain.Category, error) {
	return s.cats.ListRoots(ctx)
}
