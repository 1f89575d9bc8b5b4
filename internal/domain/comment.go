package domain

import "time"

type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	AdID      int64     `json:"ad_id" gorm:"not null;index"`
	UserID    int64     `json:"user_id" gorm:"not null"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`

	Ad   *Ad   `json:"-" gorm:"foreignKey:AdID;constraint:OnDelete:CASCADE"`
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Comment) TableName() string { return "comments" }
