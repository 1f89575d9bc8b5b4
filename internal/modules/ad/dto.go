package ad

import "qavat/internal/domain"

type CreateAdRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	DealType    string  `json:"deal_type" binding:"required"`
	CategoryID  *int64  `json:"category_id"`
	City        string  `json:"city"`
	Street      string  `json:"street"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`

	RoomsCount  *int     `json:"rooms_count"`
	Floor       *int     `json:"floor"`
	TotalFloors *int     `json:"total_floors"`
	TotalArea   *float64 `json:"total_area"`
	LivingArea  *float64 `json:"living_area"`

	Price    *int64 `json:"price"`
	Currency string `json:"currency"`

	ImageURLs []string `json:"image_urls"`

	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	ContactType string `json:"contact_type"`
}

// UpdateAdRequest — частичное обновление: nil означает "не трогать".
type UpdateAdRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	DealType    *string  `json:"deal_type"`
	CategoryID  *int64   `json:"category_id"`
	City        *string  `json:"city"`
	Street      *string  `json:"street"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`

	RoomsCount  *int     `json:"rooms_count"`
	Floor       *int     `json:"floor"`
	TotalFloors *int     `json:"total_floors"`
	TotalArea   *float64 `json:"total_area"`
	LivingArea  *float64 `json:"living_area"`

	Price    *int64  `json:"price"`
	Currency *string `json:"currency"`

	ImageURLs []string `json:"image_urls"`

	FullName    *string `json:"full_name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	ContactType *string `json:"contact_type"`
}

// AdResponse — объявление вместе с производным золотым статусом и
// персональной аннотацией зрителя.
type AdResponse struct {
	domain.Ad
	Gold         *domain.GoldStatus `json:"gold,omitempty"`
	IsFavourited bool               `json:"is_favourited"`
}
