package favourite

import (
	"context"
	"fmt"
	"testing"

	"qavat/internal/database"
	"qavat/internal/domain"
	"qavat/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRemove(t *testing.T) {
	dsn := fmt.Sprintf("file:favourite_test_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Ad{}, &domain.Favourite{}))

	u := domain.User{Name: "U", IsActive: true}
	require.NoError(t, db.Create(&u).Error)
	ad := domain.Ad{
		Title: "t", Description: "d", DealType: domain.DealSale,
		FullName: "U", Email: "u@example.com", PhoneNumber: "+998900000000", UserID: u.ID,
	}
	require.NoError(t, db.Create(&ad).Error)

	svc := NewService(repository.NewFavouriteRepository(db), repository.NewAdRepository(db))
	ctx := context.Background()

	_, err = svc.Add(ctx, u.ID, 99999)
	assert.ErrorIs(t, err, ErrAdNotFound)

	first, err := svc.Add(ctx, u.ID, ad.ID)
	require.NoError(t, err)

	// идемпотентность: повтор возвращает ту же запись, дубликат не создаётся
	second, err := svc.Add(ctx, u.ID, ad.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&domain.Favourite{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	exists, err := svc.Check(ctx, u.ID, ad.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	list, err := svc.List(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Ad)
	assert.Equal(t, ad.ID, list[0].Ad.ID)

	require.NoError(t, svc.Remove(ctx, u.ID, ad.ID))
	assert.ErrorIs(t, svc.Remove(ctx, u.ID, ad.ID), ErrNotInList)
}
