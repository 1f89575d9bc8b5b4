package domain

import "time"

// OneIDInfo — привязка аккаунта к OneID (sso.egov.uz).
// Наличие записи означает, что личность пользователя подтверждена.
type OneIDInfo struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	UserID     int64     `json:"user_id" gorm:"not null;uniqueIndex"`
	PIN        string    `json:"pin" gorm:"size:14"`
	PassportNo string    `json:"passport_no,omitempty" gorm:"size:16"`
	FullName   string    `json:"full_name"`
	BirthDate  string    `json:"birth_date,omitempty"`
	LegalTIN   string    `json:"legal_tin,omitempty" gorm:"size:16"`
	LinkedAt   time.Time `json:"linked_at" gorm:"autoCreateTime"`
}

func (OneIDInfo) TableName() string { return "one_id_info" }
