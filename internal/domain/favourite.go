package domain

import "time"

// Favourite — закладка пользователя на объявление. Пара (user_id, ad_id)
// уникальна; повторное добавление возвращает существующую запись.
type Favourite struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;index;uniqueIndex:idx_favourite_user_ad"`
	AdID      int64     `json:"ad_id" gorm:"not null;index;uniqueIndex:idx_favourite_user_ad"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Ad   *Ad   `json:"ad,omitempty" gorm:"foreignKey:AdID;constraint:OnDelete:CASCADE"`
}

func (Favourite) TableName() string { return "favourites" }
