package domain

import "time"

// Upload — загруженная картинка объявления или иконка категории.
// Файл лежит на локальном диске, наружу отдаётся по FileURL.
type Upload struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	UserID       int64     `json:"user_id" gorm:"not null;index"`
	OriginalName string    `json:"original_name"`
	FilePath     string    `json:"-"`
	FileURL      string    `json:"url"`
	MimeType     string    `json:"mime_type" gorm:"size:64"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Upload) TableName() string { return "uploads" }
