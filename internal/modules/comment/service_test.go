package comment

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

type notifRecorder struct {
	ownerIDs []int64
	texts    []string
}

func (n *notifRecorder) NotifyNewComment(_ context.Context, ownerID, _ int64, text string) error {
	n.ownerIDs = append(n.ownerIDs, ownerID)
	n.texts = append(n.texts, text)
	return nil
}

func setup(t *testing.T) (*Service, *notifRecorder, *domain.User, *domain.Ad) {
	dsn := fmt.Sprintf("file:comment_test_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Ad{}, &domain.Comment{}))

	owner := domain.User{Name: "Owner", IsActive: true}
	require.NoError(t, db.Create(&owner).Error)
	ad := domain.Ad{
		Title: "t", Description: "d", DealType: domain.DealSale,
		FullName: "Owner", Email: "o@example.com", PhoneNumber: "+998900000000", UserID: owner.ID,
	}
	require.NoError(t, db.Create(&ad).Error)

	notifs := &notifRecorder{}
	svc := NewService(repository.NewCommentRepository(db), repository.NewAdRepository(db), notifs)
	return svc, notifs, &owner, &ad
}

func TestCreate(t *testing.T) {
	svc, notifs, owner, ad := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, 42, ad.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyText)

	_, err = svc.Create(ctx, 42, 99999, "где находится?")
	assert.ErrorIs(t, err, ErrAdNotFound)

	c, err := svc.Create(ctx, 42, ad.ID, "  где находится?  ")
	require.NoError(t, err)
	assert.Equal(t, "где находится?", c.Text)

	// владелец получает уведомление о чужом комментарии
	require.Len(t, notifs.ownerIDs, 1)
	assert.Equal(t, owner.ID, notifs.ownerIDs[0])
	assert.Equal(t, "где находится?", notifs.texts[0])

	// на собственный комментарий уведомления нет
	_, err = svc.Create(ctx, owner.ID, ad.ID, "в центре")
	require.NoError(t, err)
	assert.Len(t, notifs.ownerIDs, 1)
}

func TestListByAd(t *testing.T) {
	svc, _, _, ad := setup(t)
	ctx := context.Background()

	_, err := svc.ListByAd(ctx, 99999)
	assert.ErrorIs(t, err, ErrAdNotFound)

	_, err = svc.Create(ctx, 42, ad.ID, "первый")
	require.NoError(t, err)
	_, err = svc.Create(ctx, 43, ad.ID, "второй")
	require.NoError(t, err)

	list, err := svc.ListByAd(ctx, ad.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// свежие сверху
	assert.Equal(t, "второй", list[0].Text)
	assert.Equal(t, "первый", list[1].Text)
}
