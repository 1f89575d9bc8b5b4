package oneid

import (
	"context"
	"errors"

	"qavat/internal/domain"
	"qavat/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

// Identity defines the interface for the OneID gateway
type Identity interface {
	AuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (string, error)
	FetchUserInfo(ctx context.Context, accessToken string) (*UserInfo, error)
	Logout(ctx context.Context, accessToken string) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	MarkVerified(ctx context.Context, userID int64, info *domain.OneIDInfo) error
}

type Service struct {
	oneid Identity
	users UserRepository
}

func NewService(oneid Identity, users UserRepository) *Service {
	return &Service{oneid: oneid, users: users}
}

func (s *Service) AuthURL(state string) string {
	return s.oneid.AuthURL(state)
}

// Link проводит полный цикл привязки: код → токен → профиль → отметка
// is_verified. Профиль сохраняется в one_id_info.
func (s *Service) Link(ctx context.Context, userID int64, code string) (*domain.User, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	token, err := s.oneid.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	info, err := s.oneid.FetchUserInfo(ctx, token)
	if err != nil {
		return nil, err
	}

	rec := &domain.OneIDInfo{
		UserID:     userID,
		PIN:        info.PIN,
		PassportNo: info.PassportNo,
		FullName:   info.FullName(),
		BirthDate:  info.BirthDate,
	}
	if len(info.LegalInfo) > 0 {
		rec.LegalTIN = info.LegalInfo[0].TIN
	}

	if err := s.users.MarkVerified(ctx, userID, rec); err != nil {
		return nil, err
	}

	// сессия на стороне OneID больше не нужна
	_ = s.oneid.Logout(ctx, token)

	return s.users.GetByID(ctx, userID)
}
