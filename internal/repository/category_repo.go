package repository

import (
	"context"

	"qavat/internal/domain"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) DB() *gorm.DB { return r.db }

// Create сохраняет категорию вместе с переводами названий в одной транзакции.
func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category, names map[string]string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		for lang, name := range names {
			cn := domain.CategoryName{CategoryID: c.ID, Lang: lang, Name: name}
			if err := tx.Create(&cn).Error; err != nil {
				return err
			}
			c.Names = append(c.Names, cn)
		}
		return nil
	})
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	var c domain.Category
	err := r.db.WithContext(ctx).Preload("Names").First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// UpsertName обновляет или создаёт перевод названия для языка.
func (r *CategoryRepository) UpsertName(ctx context.Context, categoryID int64, lang, name string) error {
	return r.db.WithContext(ctx).
		Where("category_id = ? AND lang = ?", categoryID, lang).
		Assign(map[string]any{"name": name}).
		FirstOrCreate(&domain.CategoryName{}, domain.CategoryName{CategoryID: categoryID, Lang: lang}).Error
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&domain.CategoryName{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Category{}, id).Error
	})
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	var cats []domain.Category
	err := r.db.WithContext(ctx).Preload("Names").Order("id ASC").Find(&cats).Error
	return cats, err
}

func (r *CategoryRepository) ListRoots(ctx context.Context) ([]domain.Category, error) {
	var cats []domain.Category
	err := r.db.WithContext(ctx).
		Where("parent_id IS NULL").
		Preload("Names").
		Preload("Children").
		Preload("Children.Names").
		Order("id ASC").
		Find(&cats).Error
	return cats, err
}

func (r *CategoryRepository) CountChildren(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Category{}).
		Where("parent_id = ?", id).
		Count(&count).Error
	return count, err
}
