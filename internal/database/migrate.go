package database

import (
	"qavat/internal/domain"

	"gorm.io/gorm"
)

// Migrate прокатывает схему для всех моделей. Частичные уникальные индексы
// (pending-заявки) создаются здесь же из GORM-тегов.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.OneIDInfo{},
		&domain.OTP{},
		&domain.Category{},
		&domain.CategoryName{},
		&domain.Ad{},
		&domain.GoldVerificationRequest{},
		&domain.Favourite{},
		&domain.Comment{},
		&domain.Notification{},
		&domain.Upload{},
	)
}
