package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"qavat/internal/domain"
	jwtsvc "qavat/internal/pkg/jwt"
	"qavat/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	users UserRepository
	otps  OTPRepository
	sms   SMSSender
	jwt   *jwtsvc.Service

	otpLength int
	otpTTL    time.Duration
}

func NewService(users UserRepository, otps OTPRepository, sms SMSSender, jwt *jwtsvc.Service, otpLength int, otpTTL time.Duration) *Service {
	return &Service{
		users:     users,
		otps:      otps,
		sms:       sms,
		jwt:       jwt,
		otpLength: otpLength,
		otpTTL:    otpTTL,
	}
}

func (s *Service) tokenPair(userID int64, role domain.UserRole) (*TokenPair, error) {
	access, err := s.jwt.GenerateToken(userID, string(role))
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwt.GenerateRefreshToken(userID, string(role))
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}

// LoginAdmin — вход по логину/паролю для админ-панели. Несуществующий логин
// и неверный пароль неразличимы.
func (s *Service) LoginAdmin(ctx context.Context, req AdminLoginRequest) (*LoginResponse, error) {
	u, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsAdmin() {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrUserInactive
	}

	now := time.Now()
	if err := s.users.TouchLastLogin(ctx, u.ID, now); err != nil {
		return nil, err
	}
	u.LastLogin = &now

	pair, err := s.tokenPair(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{TokenPair: *pair, User: u}, nil
}

func (s *Service) generateCode() (string, error) {
	digits := make([]byte, s.otpLength)
	if _, err := rand.Read(digits); err != nil {
		return "", err
	}
	for i := range digits {
		digits[i] = '0' + digits[i]%10
	}
	return string(digits), nil
}

// RequestOTP создаёт одноразовый код и отправляет его по SMS.
// Предыдущие неиспользованные коды для номера гасятся при вставке.
func (s *Service) RequestOTP(ctx context.Context, phone string) error {
	code, err := s.generateCode()
	if err != nil {
		return err
	}

	otp := &domain.OTP{
		PhoneNumber: phone,
		Code:        code,
		ExpiresAt:   time.Now().Add(s.otpTTL),
	}
	if err := s.otps.Create(ctx, otp); err != nil {
		return err
	}

	return s.sms.SendSMS(ctx, phone, fmt.Sprintf("Kod podtverjdeniya: %s", code))
}

// VerifyOTP меняет валидный код на пару токенов. Пользователь по номеру
// создаётся при первом входе.
func (s *Service) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*LoginResponse, error) {
	otp, err := s.otps.FindByCode(ctx, req.PhoneNumber, req.Code)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidOTP
		}
		return nil, err
	}
	if otp.IsExpired(time.Now()) {
		return nil, ErrOTPExpired
	}
	if err := s.otps.MarkUsed(ctx, otp.ID); err != nil {
		return nil, err
	}

	u, err := s.users.GetByPhone(ctx, req.PhoneNumber)
	if err != nil {
		if !repository.IsNotFound(err) {
			return nil, err
		}
		phone := req.PhoneNumber
		u = &domain.User{
			Name:        phone,
			PhoneNumber: &phone,
			Role:        domain.RoleUser,
			IsActive:    true,
		}
		if err := s.users.Create(ctx, u); err != nil {
			return nil, err
		}
	}
	if !u.IsActive {
		return nil, ErrUserInactive
	}

	now := time.Now()
	if err := s.users.TouchLastLogin(ctx, u.ID, now); err != nil {
		return nil, err
	}
	u.LastLogin = &now

	pair, err := s.tokenPair(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{TokenPair: *pair, User: u}, nil
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrUserInactive
	}

	return s.tokenPair(u.ID, u.Role)
}

func (s *Service) GetMe(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
