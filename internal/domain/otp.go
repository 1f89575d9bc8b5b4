package domain

import "time"

// OTP — одноразовый код входа по номеру телефона.
type OTP struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	PhoneNumber string    `json:"phone_number" gorm:"size:16;not null;index"`
	Code        string    `json:"-" gorm:"size:6;not null"`
	ExpiresAt   time.Time `json:"expires_at" gorm:"not null"`
	Used        bool      `json:"used" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
}

func (OTP) TableName() string { return "otps" }

func (o *OTP) IsExpired(now time.Time) bool {
	return !o.ExpiresAt.After(now)
}
