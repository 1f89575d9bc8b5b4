package repository

import (
	"context"
	"time"

	"qavat/internal/domain"

	"gorm.io/gorm"
)

type OTPRepository struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) *OTPRepository {
	return &OTPRepository{db: db}
}

func (r *OTPRepository) DB() *gorm.DB { return r.db }

// Create гасит все активные коды телефона и пишет новый — одной транзакцией,
// чтобы в любой момент действовал не более чем один код.
func (r *OTPRepository) Create(ctx context.Context, otp *domain.OTP) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.OTP{}).
			Where("phone_number = ? AND used = ? AND expires_at > ?", otp.PhoneNumber, false, time.Now()).
			UpdateColumn("used", true).Error; err != nil {
			return err
		}
		return tx.Create(otp).Error
	})
}

// FindByCode ищет последний неиспользованный код. Просроченность здесь
// не проверяется: сервис различает "нет такого кода" и "код истёк".
func (r *OTPRepository) FindByCode(ctx context.Context, phone, code string) (*domain.OTP, error) {
	var otp domain.OTP
	err := r.db.WithContext(ctx).
		Where("phone_number = ? AND code = ? AND used = ?", phone, code, false).
		Order("id DESC").
		First(&otp).Error
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *OTPRepository) MarkUsed(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&domain.OTP{}).
		Where("id = ?", id).
		UpdateColumn("used", true).Error
}

// DeleteExpired подчищает старые коды (вызывается из cmd/otp_cleanup).
func (r *OTPRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&domain.OTP{})
	return result.RowsAffected, result.Error
}
