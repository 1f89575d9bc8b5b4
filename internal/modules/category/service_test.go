package category

import (
	"context"
	"fmt"
	"testing"

	"qavat/internal/database"
	"qavat/internal/domain"
	"qavat/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:category_test_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Category{},
		&domain.CategoryName{},
		&domain.Ad{},
	))

	svc := NewService(repository.NewCategoryRepository(db), repository.NewAdRepository(db))
	return svc, db
}

func TestCreate_WithNames(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, CreateCategoryRequest{
		Names: map[string]string{"ru": "Квартиры", "uz": "Kvartiralar", "en": "Apartments"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Квартиры", c.NamesByLang()["ru"])
	assert.Equal(t, "Apartments", c.NamesByLang()["en"])

	_, err = svc.Create(ctx, CreateCategoryRequest{Names: map[string]string{}})
	assert.ErrorIs(t, err, ErrNoNames)
}

func TestCreate_ParentMustExist(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	missing := int64(404)
	_, err := svc.Create(ctx, CreateCategoryRequest{
		ParentID: &missing,
		Names:    map[string]string{"ru": "Дома"},
	})
	assert.ErrorIs(t, err, ErrParentNotFound)

	root, err := svc.Create(ctx, CreateCategoryRequest{Names: map[string]string{"ru": "Жильё"}})
	require.NoError(t, err)

	child, err := svc.Create(ctx, CreateCategoryRequest{
		ParentID: &root.ID,
		Names:    map[string]string{"ru": "Дома"},
	})
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, root.ID, *child.ParentID)
}

func TestUpdate_SelfParentForbidden(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, CreateCategoryRequest{Names: map[string]string{"ru": "Участки"}})
	require.NoError(t, err)

	_, err = svc.Update(ctx, c.ID, UpdateCategoryRequest{ParentID: &c.ID})
	assert.ErrorIs(t, err, ErrSelfParent)

	// перевод можно дополнить
	updated, err := svc.Update(ctx, c.ID, UpdateCategoryRequest{Names: map[string]string{"uz": "Uchastkalar"}})
	require.NoError(t, err)
	assert.Equal(t, "Uchastkalar", updated.NamesByLang()["uz"])
	assert.Equal(t, "Участки", updated.NamesByLang()["ru"])
}

func TestDelete_Guards(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	root, err := svc.Create(ctx, CreateCategoryRequest{Names: map[string]string{"ru": "Жильё"}})
	require.NoError(t, err)
	child, err := svc.Create(ctx, CreateCategoryRequest{ParentID: &root.ID, Names: map[string]string{"ru": "Дома"}})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, root.ID), ErrHasChildren)

	u := domain.User{Name: "Seller", IsActive: true}
	require.NoError(t, db.Create(&u).Error)
	ad := domain.Ad{
		Title: "t", Description: "d", DealType: domain.DealSale, CategoryID: &child.ID,
		FullName: "S", Email: "s@example.com", PhoneNumber: "+998900000000", UserID: u.ID,
	}
	require.NoError(t, db.Create(&ad).Error)

	assert.ErrorIs(t, svc.Delete(ctx, child.ID), ErrHasAds)

	require.NoError(t, db.Delete(&ad).Error)
	require.NoError(t, svc.Delete(ctx, child.ID))
	require.NoError(t, svc.Delete(ctx, root.ID))

	assert.ErrorIs(t, svc.Delete(ctx, root.ID), ErrNotFound)
}

func TestListRoots(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	root, err := svc.Create(ctx, CreateCategoryRequest{Names: map[string]string{"ru": "Жильё"}})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateCategoryRequest{ParentID: &root.ID, Names: map[string]string{"ru": "Дома"}})
	require.NoError(t, err)

	roots, err := svc.ListRoots(ctx)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, "Дома", roots[0].Children[0].NamesByLang()["ru"])
}
