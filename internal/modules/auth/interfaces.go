package auth

import (
	"context"
	"time"

	"qavat/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
}

type OTPRepository interface {
	Create(ctx context.Context, otp *domain.OTP) error
	FindByCode(ctx context.Context, phone, code string) (*domain.OTP, error)
	MarkUsed(ctx context.Context, id int64) error
}

// SMSSender — граница внешнего SMS-шлюза; в тестах подменяется фейком.
type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) error
}
