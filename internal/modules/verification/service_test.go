package verification

import (
	"context"
	"fmt"
	"testing"
	"time"

	"qavat/internal/database"
	"qavat/internal/domain"
	"qavat/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type notifRecorder struct {
	ownerIDs []int64
	approved []bool
}

func (n *notifRecorder) NotifyGoldProcessed(ctx context.Context, ownerID, adID int64, approved bool, adminComment string) error {
	n.ownerIDs = append(n.ownerIDs, ownerID)
	n.approved = append(n.approved, approved)
	return nil
}

type testEnv struct {
	svc     *Service
	reqs    *repository.VerificationRepository
	favs    *repository.FavouriteRepository
	notifs  *notifRecorder
	db      *gorm.DB
	owner   domain.User // verified, владеет ad
	other   domain.User // verified, без объявлений
	raw     domain.User // не прошёл OneID
	ad      domain.Ad
	adOther domain.Ad // второе объявление owner-а
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:verification_test_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.OneIDInfo{},
		&domain.Ad{},
		&domain.GoldVerificationRequest{},
		&domain.Favourite{},
	))

	env := &testEnv{
		db:     db,
		reqs:   repository.NewVerificationRepository(db),
		favs:   repository.NewFavouriteRepository(db),
		notifs: &notifRecorder{},
	}

	env.owner = domain.User{Name: "Owner", IsActive: true, IsVerified: true}
	env.other = domain.User{Name: "Other", IsActive: true, IsVerified: true}
	env.raw = domain.User{Name: "Raw", IsActive: true, IsVerified: false}
	require.NoError(t, db.Create(&env.owner).Error)
	require.NoError(t, db.Create(&env.other).Error)
	require.NoError(t, db.Create(&env.raw).Error)

	env.ad = domain.Ad{
		Title: "Квартира в центре", Description: "3 комнаты",
		DealType: domain.DealSale, City: "Tashkent",
		FullName: "Owner", Email: "o@example.com", PhoneNumber: "+998901112233",
		UserID: env.owner.ID,
	}
	env.adOther = domain.Ad{
		Title: "Дом за городом", Description: "участок 6 соток",
		DealType: domain.DealSale, City: "Tashkent",
		FullName: "Owner", Email: "o@example.com", PhoneNumber: "+998901112233",
		UserID: env.owner.ID,
	}
	require.NoError(t, db.Create(&env.ad).Error)
	require.NoError(t, db.Create(&env.adOther).Error)

	env.svc = NewService(
		env.reqs,
		repository.NewAdRepository(db),
		repository.NewUserRepository(db),
		env.favs,
		env.notifs,
	)
	return env
}

func TestSubmit_Success(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	r, err := env.svc.Submit(ctx, env.owner.ID, SubmitRequest{AdID: env.ad.ID, RequestReason: "продаю срочно"})
	require.NoError(t, err)

	assert.Equal(t, domain.GoldPending, r.Status)
	assert.Equal(t, env.ad.ID, r.AdID)
	assert.Equal(t, env.owner.ID, r.RequestedBy)
	assert.Nil(t, r.ProcessedBy)
	assert.Nil(t, r.ProcessedAt)
	assert.False(t, r.RequestedAt.IsZero())
}

func TestSubmit_AdOwnershipMasked(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// чужое объявление и несуществующее дают один и тот же ответ
	_, err := env.svc.Submit(ctx, env.other.ID, SubmitRequest{AdID: env.ad.ID})
	assert.ErrorIs(t, err, ErrAdNotFound)

	_, err = env.svc.Submit(ctx, env.owner.ID, SubmitRequest{AdID: 99999})
	assert.ErrorIs(t, err, ErrAdNotFound)
}

func TestSubmit_RequiresVerifiedUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ad := domain.Ad{
		Title: "t", Description: "d", DealType: domain.DealRent,
		FullName: "Raw", Email: "r@example.com", PhoneNumber: "+998900000000",
		UserID: env.raw.ID,
	}
	require.NoError(t, env.db.Create(&ad).Error)

	_, err := env.svc.Submit(ctx, env.raw.ID, SubmitRequest{AdID: ad.ID})
	assert.ErrorIs(t, err, ErrNotVerified)
}

func TestSubmit_AtMostOnePending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Submit(ctx, env.owner.ID, SubmitRequest{AdID: env.ad.ID})
	require.NoError(t, err)

	_, err = env.svc.Submit(ctx, env.owner.ID, SubmitRequest{AdID: env.ad.ID})
	assert.ErrorIs(t, err, ErrAlreadyPending)

	// гонка: прямой insert мимо сервиса упирается в частичный уникальный индекс
	dup := &domain.GoldVerificationRequest{AdID: env.ad.ID, RequestedBy: env.owner.ID, Status: domain.GoldPending}
	err = env.reqs.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, repository.IsUniqueViolation(err))

	// на второе объявление pending-заявка разрешена
	_, err = env.svc.Submit(ctx, env.owner.ID, SubmitRequest{AdID: env.adOther.ID})
	assert.NoError(t, err)
}

func TestProcess_ApproveAndTerminalImmutability(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	adminID := int64(777)

	r, err := env.svc.Submit(ctx, env.owner.ID, SubmitRequest{AdID: env.ad.ID})
	require.NoError(t, err)

	processed, err := env.svc.Process(ctx, adminID, r.ID, ProcessRequest{Status: "approved", AdminComment: "ок"})
	require.NoError(t, err)
	assert.Equal(t, domain.GoldApproved, processed.Status)
	require.NotNil(t, processed.ProcessedBy)
	assert.Equal(t, adminID, *processed.ProcessedBy)
	assert.NotNil(t, processed.ProcessedAt)
	assert.Equal(t, "ок", processed.AdminComment)

	// терминальная заявка неизменяема
	_, err = env.svc.Process(ctx, adminID, r.ID, ProcessRequest{Status: "rejected"})
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	_, err = env.svc.Cancel(ctx, env.owner.ID, r.ID)
	assert.ErrorIs(t, err, ErrNotPending)

	// после решения можно подать заново
	again, err := env.svc.Submit(ctx, env.owner.ID, SubmitRequest{AdID: env.ad.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.GoldPending, again.Status)

	// уведомление владельцу ушло
	require.Len(t, env.notifs.ownerIDs, 1)
	assert.Equal(t, env.owner.ID, env.notifs.ownerIDs[0])
	assert.True(t, env.notifs.approved[0])
}

func TestProcess_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Process(ctx, 1, 12345, ProcessRequest{Status: "approved"})
	assert.ErrorIs(t, err, ErrRequestNotFound)

	r, err := env.svc.Submit(ctx, env.owner.ID, SubmitRequest{AdID: env.ad.ID})
	require.NoError(t, err)

	_, err = env.svc.Process(ctx, 1, r.ID, ProcessRequest{Status: "pending"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
	_, err = env.svc.Process(ctx, 1, r.ID, ProcessRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCancel_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	r, err := env.svc.Submit(ctx, env.owner.ID, SubmitRequest{AdID: env.ad.ID})
	require.NoError(t, err)

	// чужую заявку отменить нельзя, и её существование не раскрывается
	_, err = env.svc.Cancel(ctx, env.other.ID, r.ID)
	assert.ErrorIs(t, err, ErrRequestNotFound)

	cancelled, err := env.svc.Cancel(ctx, env.owner.ID, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GoldRejected, cancelled.Status)
	assert.Equal(t, domain.CancelledByUserComment, cancelled.AdminComment)
	assert.Nil(t, cancelled.ProcessedBy)
	assert.NotNil(t, cancelled.ProcessedAt)

	// отменённое — терминальное: повторная отмена невозможна, новая подача — да
	_, err = env.svc.Cancel(ctx, env.owner.ID, r.ID)
	assert.ErrorIs(t, err, ErrNotPending)
	_, err = env.svc.Submit(ctx, env.owner.ID, SubmitRequest{AdID: env.ad.ID})
	assert.NoError(t, err)
}

func TestListPopular_DerivedGoldStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	adminID := int64(777)

	// без approved-заявок выдача пуста
	out, err := env.svc.ListPopular(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, out)

	r, err := env.svc.Submit(ctx, env.owner.ID, SubmitRequest{AdID: env.ad.ID})
	require.NoError(t, err)
	_, err = env.svc.Process(ctx, adminID, r.ID, ProcessRequest{Status: "approved"})
	require.NoError(t, err)

	// rejected второй заявки не снимает отметку, но метаданные берутся
	// из самой свежей по requested_at
	r2 := &domain.GoldVerificationRequest{
		AdID:        env.ad.ID,
		RequestedBy: env.owner.ID,
		Status:      domain.GoldRejected,
		RequestedAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, env.db.Create(r2).Error)

	out, err = env.svc.ListPopular(ctx, 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, env.ad.ID, out[0].Ad.ID)
	assert.True(t, out[0].Gold.IsGoldVerified)
	require.NotNil(t, out[0].Gold.Status)
	assert.Equal(t, domain.GoldRejected, *out[0].Gold.Status)
	assert.False(t, out[0].IsFavourited)

	// авторизованный зритель с закладкой получает is_favourited=true
	_, err = env.favs.Add(ctx, env.other.ID, env.ad.ID)
	require.NoError(t, err)
	out, err = env.svc.ListPopular(ctx, env.other.ID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].IsFavourited)
}
