package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"qavat/internal/database"
	"qavat/internal/domain"
	jwtsvc "qavat/internal/pkg/jwt"
	"qavat/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeSMS struct {
	phones   []string
	messages []string
	fail     error
}

func (f *fakeSMS) SendSMS(ctx context.Context, phone, message string) error {
	if f.fail != nil {
		return f.fail
	}
	f.phones = append(f.phones, phone)
	f.messages = append(f.messages, message)
	return nil
}

func newTestService(t *testing.T) (*Service, *gorm.DB, *fakeSMS) {
	t.Helper()

	dsn := fmt.Sprintf("file:auth_test_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.OneIDInfo{}, &domain.OTP{}))

	sms := &fakeSMS{}
	svc := NewService(
		repository.NewUserRepository(db),
		repository.NewOTPRepository(db),
		sms,
		jwtsvc.New("test-secret", 30*time.Minute, 7*24*time.Hour),
		6,
		5*time.Minute,
	)
	return svc, db, sms
}

func seedAdmin(t *testing.T, db *gorm.DB, username, password string) domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	u := domain.User{
		Name:         "Admin",
		Username:     &username,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func TestLoginAdmin(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()
	seedAdmin(t, db, "admin", "s3cret")

	out, err := svc.LoginAdmin(ctx, AdminLoginRequest{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, "bearer", out.TokenType)
	assert.NotNil(t, out.User.LastLogin)

	// неверный пароль и несуществующий логин дают один ответ
	_, err = svc.LoginAdmin(ctx, AdminLoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.LoginAdmin(ctx, AdminLoginRequest{Username: "ghost", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginAdmin_RoleAndActivityGuards(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("pass"), bcrypt.DefaultCost)
	username := "regular"
	u := domain.User{Name: "U", Username: &username, PasswordHash: string(hash), Role: domain.RoleUser, IsActive: true}
	require.NoError(t, db.Create(&u).Error)

	// обычный пользователь через админ-вход не проходит, причина не раскрывается
	_, err := svc.LoginAdmin(ctx, AdminLoginRequest{Username: "regular", Password: "pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	admin := seedAdmin(t, db, "frozen", "pass")
	require.NoError(t, db.Model(&admin).Update("is_active", false).Error)
	_, err = svc.LoginAdmin(ctx, AdminLoginRequest{Username: "frozen", Password: "pass"})
	assert.ErrorIs(t, err, ErrUserInactive)
}

func activeCode(t *testing.T, db *gorm.DB, phone string) string {
	t.Helper()
	var otp domain.OTP
	require.NoError(t, db.Where("phone_number = ? AND used = ?", phone, false).Order("id DESC").First(&otp).Error)
	return otp.Code
}

func TestOTPFlow(t *testing.T) {
	svc, db, sms := newTestService(t)
	ctx := context.Background()
	phone := "+998901234567"

	require.NoError(t, svc.RequestOTP(ctx, phone))
	require.Len(t, sms.phones, 1)
	assert.Equal(t, phone, sms.phones[0])

	code := activeCode(t, db, phone)
	require.Len(t, code, 6)
	assert.Contains(t, sms.messages[0], code)

	// первый вход создаёт пользователя по номеру
	out, err := svc.VerifyOTP(ctx, VerifyOTPRequest{PhoneNumber: phone, Code: code})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	require.NotNil(t, out.User.PhoneNumber)
	assert.Equal(t, phone, *out.User.PhoneNumber)
	assert.Equal(t, domain.RoleUser, out.User.Role)

	// код одноразовый
	_, err = svc.VerifyOTP(ctx, VerifyOTPRequest{PhoneNumber: phone, Code: code})
	assert.ErrorIs(t, err, ErrInvalidOTP)

	// повторный вход тем же номером не плодит пользователей
	require.NoError(t, svc.RequestOTP(ctx, phone))
	out2, err := svc.VerifyOTP(ctx, VerifyOTPRequest{PhoneNumber: phone, Code: activeCode(t, db, phone)})
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, out2.User.ID)

	var count int64
	require.NoError(t, db.Model(&domain.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestOTP_PreviousCodeInvalidated(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()
	phone := "+998907777777"

	require.NoError(t, svc.RequestOTP(ctx, phone))
	first := activeCode(t, db, phone)

	require.NoError(t, svc.RequestOTP(ctx, phone))

	_, err := svc.VerifyOTP(ctx, VerifyOTPRequest{PhoneNumber: phone, Code: first})
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestOTP_Expired(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()
	phone := "+998905555555"

	otp := domain.OTP{PhoneNumber: phone, Code: "123456", ExpiresAt: time.Now().Add(-time.Minute)}
	require.NoError(t, db.Create(&otp).Error)

	_, err := svc.VerifyOTP(ctx, VerifyOTPRequest{PhoneNumber: phone, Code: "123456"})
	assert.ErrorIs(t, err, ErrOTPExpired)
}

func TestRefresh(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()
	seedAdmin(t, db, "admin", "pass")

	login, err := svc.LoginAdmin(ctx, AdminLoginRequest{Username: "admin", Password: "pass"})
	require.NoError(t, err)

	pair, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	// access-токен в refresh-обмен не принимается
	_, err = svc.Refresh(ctx, login.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefresh)

	_, err = svc.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestDeleteExpiredOTPs(t *testing.T) {
	_, db, _ := newTestService(t)
	ctx := context.Background()

	expired := domain.OTP{PhoneNumber: "+998901111111", Code: "111111", ExpiresAt: time.Now().Add(-2 * time.Hour)}
	fresh := domain.OTP{PhoneNumber: "+998902222222", Code: "222222", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, db.Create(&expired).Error)
	require.NoError(t, db.Create(&fresh).Error)

	removed, err := repository.NewOTPRepository(db).DeleteExpired(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	var left []domain.OTP
	require.NoError(t, db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, fresh.Code, left[0].Code)
}
