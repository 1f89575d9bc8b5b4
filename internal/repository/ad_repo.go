package repository

import (
	"context"
	"math"
	"strings"

	"qavat/internal/domain"

	"gorm.io/gorm"
)

// AdFilters — необязательные, независимо комбинируемые фильтры листинга.
// Все заданные условия соединяются через AND.
type AdFilters struct {
	Search     string
	CategoryID *int64
	MinPrice   *int64
	MaxPrice   *int64
	DealType   string
	RoomsCount *int
	City       string
	MinArea    *float64
	MaxArea    *float64
	Skip       int
	Limit      int
}

type AdRepository struct {
	db *gorm.DB
}

func NewAdRepository(db *gorm.DB) *AdRepository {
	return &AdRepository{db: db}
}

func (r *AdRepository) DB() *gorm.DB { return r.db }

func (r *AdRepository) Create(ctx context.Context, ad *domain.Ad) error {
	return r.db.WithContext(ctx).Create(ad).Error
}

func (r *AdRepository) GetByID(ctx context.Context, id int64) (*domain.Ad, error) {
	var ad domain.Ad
	err := r.db.WithContext(ctx).First(&ad, id).Error
	if err != nil {
		return nil, err
	}
	return &ad, nil
}

func (r *AdRepository) Update(ctx context.Context, ad *domain.Ad) error {
	return r.db.WithContext(ctx).Save(ad).Error
}

func (r *AdRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Ad{}, id).Error
}

// IncrementViews обновляет счётчик просмотров одним UPDATE, без чтения строки.
func (r *AdRepository) IncrementViews(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&domain.Ad{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}

// List выполняет листинг с фильтрами. Порядок детерминированный: id ASC.
func (r *AdRepository) List(ctx context.Context, f AdFilters) ([]domain.Ad, error) {
	q := r.db.WithContext(ctx).Model(&domain.Ad{})

	// Поиск идёт по заранее нормализованной колонке: SQL LOWER() в SQLite
	// не понижает кириллицу, поэтому обе стороны сравнения приводятся в Go.
	if s := strings.TrimSpace(f.Search); s != "" {
		q = q.Where("search_text LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.DealType != "" {
		q = q.Where("deal_type = ?", f.DealType)
	}
	if f.RoomsCount != nil {
		q = q.Where("rooms_count = ?", *f.RoomsCount)
	}
	if c := strings.TrimSpace(f.City); c != "" {
		q = q.Where("city_norm LIKE ?", "%"+strings.ToLower(c)+"%")
	}
	if f.MinArea != nil {
		q = q.Where("total_area >= ?", *f.MinArea)
	}
	if f.MaxArea != nil {
		q = q.Where("total_area <= ?", *f.MaxArea)
	}

	q = q.Order("id ASC")
	if f.Skip > 0 {
		q = q.Offset(f.Skip)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var ads []domain.Ad
	err := q.Find(&ads).Error
	return ads, err
}

// Nearby возвращает объявления внутри приближённого bounding box.
// Дельта широты = radiusKM/111, дельта долготы = radiusKM/(111*|lat|) —
// формула унаследована от исходной системы ради совместимости; вблизи
// экватора она расходится, на lat=0 не определена (валидация на границе).
// Границы бокса включительные.
func (r *AdRepository) Nearby(ctx context.Context, lat, lon, radiusKM float64) ([]domain.Ad, error) {
	latDelta := radiusKM / 111.0
	lonDelta := radiusKM / (111.0 * math.Abs(lat))

	var ads []domain.Ad
	err := r.db.WithContext(ctx).
		Where("latitude >= ? AND latitude <= ?", lat-latDelta, lat+latDelta).
		Where("longitude >= ? AND longitude <= ?", lon-lonDelta, lon+lonDelta).
		Order("id ASC").
		Find(&ads).Error
	return ads, err
}

func (r *AdRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Ad, error) {
	var ads []domain.Ad
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&ads).Error
	return ads, err
}

// GetByIDs сохраняет детерминированный порядок id ASC.
func (r *AdRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Ad, error) {
	if len(ids) == 0 {
		return []domain.Ad{}, nil
	}
	var ads []domain.Ad
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&ads).Error
	return ads, err
}

func (r *AdRepository) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Ad{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}
