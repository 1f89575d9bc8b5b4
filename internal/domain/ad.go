package domain

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type DealType string

const (
	DealSale DealType = "sale"
	DealRent DealType = "rent"
)

// Ad — объявление о продаже/аренде недвижимости.
// Координаты хранятся округлёнными до 6 знаков (см. RoundCoordinate).
type Ad struct {
	ID          int64    `json:"id" gorm:"primaryKey"`
	Title       string   `json:"title" gorm:"not null"`
	Description string   `json:"description" gorm:"not null"`
	DealType    DealType `json:"deal_type" gorm:"index"`
	CategoryID  *int64   `json:"category_id,omitempty" gorm:"index"`

	City      string  `json:"city"`
	Street    string  `json:"street"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	RoomsCount  *int     `json:"rooms_count,omitempty"`
	Floor       *int     `json:"floor,omitempty"`
	TotalFloors *int     `json:"total_floors,omitempty"`
	TotalArea   *float64 `json:"total_area,omitempty"`
	LivingArea  *float64 `json:"living_area,omitempty"`

	Price    *int64 `json:"price,omitempty"`
	Currency string `json:"currency" gorm:"default:UZS"`

	ImageURLs []string `json:"image_urls" gorm:"serializer:json"`

	FullName    string `json:"full_name" gorm:"not null"`
	Email       string `json:"email" gorm:"not null"`
	PhoneNumber string `json:"phone_number" gorm:"not null"`
	ContactType string `json:"contact_type,omitempty"`

	UserID     int64 `json:"user_id" gorm:"index;not null"`
	ViewsCount int64 `json:"views_count" gorm:"default:0"`

	// Нормализованные копии текстовых полей для регистронезависимого поиска.
	// SQLite LOWER() понижает только ASCII, поэтому приведение к нижнему
	// регистру делается в Go при записи (см. BeforeSave).
	SearchText string `json:"-" gorm:"index"`
	CityNorm   string `json:"-" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

func (Ad) TableName() string { return "ads" }

func (a *Ad) BeforeSave(tx *gorm.DB) error {
	a.SearchText = strings.ToLower(strings.Join([]string{a.Title, a.Description, a.City, a.Street}, "\n"))
	a.CityNorm = strings.ToLower(a.City)
	return nil
}

const coordPrecision = 1e6

// RoundCoordinate округляет градусы до 6 знаков после запятой.
func RoundCoordinate(v float64) float64 {
	if v >= 0 {
		return float64(int64(v*coordPrecision+0.5)) / coordPrecision
	}
	return float64(int64(v*coordPrecision-0.5)) / coordPrecision
}
