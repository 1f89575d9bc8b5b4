package eimzo

import (
	"context"
	"errors"
	"fmt"

	"qavat/internal/domain"
	jwtsvc "qavat/internal/pkg/jwt"
	"qavat/internal/repository"
)

var (
	ErrSignatureRejected = errors.New("e-imzo rejected the signature")
	ErrNoSerialNumber    = errors.New("certificate has no serial number")
	ErrUserInactive      = errors.New("user account is deactivated")
)

// причины отказа по кодам статуса E-IMZO backend'а
var rejectReasons = map[int]string{
	-1:  "certificate status check failed",
	-5:  "signature timestamp is wrong",
	-10: "signature is not valid",
	-11: "certificate is not valid",
	-12: "certificate is not valid at the signing date",
	-20: "challenge not found or expired",
}

type Identity interface {
	Verify(ctx context.Context, signedData string) (*VerifyResult, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEimzoSerial(ctx context.Context, serial string) (*domain.User, error)
}

type Service struct {
	eimzo Identity
	users UserRepository
	jwt   *jwtsvc.Service
}

func NewService(eimzo Identity, users UserRepository, jwt *jwtsvc.Service) *Service {
	return &Service{eimzo: eimzo, users: users, jwt: jwt}
}

type LoginResult struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	User         *domain.User `json:"user"`
}

// Login меняет подписанный challenge на пару токенов. Пользователь
// ищется по серийному номеру сертификата и при первом входе создаётся
// сразу подтверждённым: ЭЦП удостоверяет личность.
func (s *Service) Login(ctx context.Context, signedData string) (*LoginResult, error) {
	res, err := s.eimzo.Verify(ctx, signedData)
	if err != nil {
		return nil, err
	}
	if res.Status != 1 {
		reason, ok := rejectReasons[res.Status]
		if !ok {
			reason = fmt.Sprintf("unknown status %d", res.Status)
		}
		return nil, fmt.Errorf("%w: %s", ErrSignatureRejected, reason)
	}

	serial := res.Cert.SerialNumber
	if serial == "" {
		return nil, ErrNoSerialNumber
	}

	u, err := s.users.GetByEimzoSerial(ctx, serial)
	if err != nil {
		if !repository.IsNotFound(err) {
			return nil, err
		}
		name := res.Cert.FullName()
		if name == "" {
			name = res.Cert.TIN()
		}
		u = &domain.User{
			Name:        name,
			Username:    optional(res.Cert.TIN()),
			Email:       optional(res.Cert.Email()),
			Role:        domain.RoleUser,
			IsActive:    true,
			IsVerified:  true,
			EimzoSerial: &serial,
		}
		if err := s.users.Create(ctx, u); err != nil {
			return nil, err
		}
	}
	if !u.IsActive {
		return nil, ErrUserInactive
	}

	access, err := s.jwt.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwt.GenerateRefreshToken(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		User:         u,
	}, nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
