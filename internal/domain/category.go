package domain

import "time"

// Category — узел дерева категорий. Названия мультиязычные, по одному на язык.
type Category struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	ParentID  *int64    `json:"parent_id,omitempty" gorm:"index"`
	IconURL   *string   `json:"icon_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Parent   *Category      `json:"-" gorm:"foreignKey:ParentID"`
	Children []Category     `json:"children,omitempty" gorm:"foreignKey:ParentID"`
	Names    []CategoryName `json:"names,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

func (Category) TableName() string { return "categories" }

type CategoryName struct {
	ID         int64  `json:"id" gorm:"primaryKey"`
	CategoryID int64  `json:"category_id" gorm:"not null;uniqueIndex:idx_category_lang"`
	Lang       string `json:"lang" gorm:"size:8;not null;uniqueIndex:idx_category_lang"`
	Name       string `json:"name" gorm:"not null"`
}

func (CategoryName) TableName() string { return "category_names" }

// NamesByLang собирает map lang -> name для ответа API.
func (c *Category) NamesByLang() map[string]string {
	out := make(map[string]string, len(c.Names))
	for _, n := range c.Names {
		out[n.Lang] = n.Name
	}
	return out
}
