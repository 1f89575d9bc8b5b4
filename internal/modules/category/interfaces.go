package category

import (
	"context"

	"qavat/internal/domain"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category, names map[string]string) error
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	UpsertName(ctx context.Context, categoryID int64, lang, name string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Category, error)
	ListRoots(ctx context.Context) ([]domain.Category, error)
	CountChildren(ctx context.Context, id int64) (int64, error)
}

// AdCounter сообщает, сколько объявлений привязано к категории.
type AdCounter interface {
	CountByCategory(ctx context.Context, categoryID int64) (int64, error)
}
