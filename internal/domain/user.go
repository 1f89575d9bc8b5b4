package domain

import "time"

type UserRole string

const (
	RoleUser    UserRole = "user"
	RoleRealtor UserRole = "realtor"
	RoleLegal   UserRole = "legal"
	RoleAdmin   UserRole = "admin"
)

type User struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name"`
	Username     *string    `json:"username,omitempty" gorm:"uniqueIndex"`
	Email        *string    `json:"email,omitempty" gorm:"uniqueIndex"`
	PhoneNumber  *string    `json:"phone_number,omitempty" gorm:"uniqueIndex"`
	PasswordHash string     `json:"-" gorm:"column:password_hash"`
	Role         UserRole   `json:"role" gorm:"default:user"`
	EimzoSerial  *string    `json:"-" gorm:"uniqueIndex"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	IsVerified   bool       `json:"is_verified" gorm:"default:false"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	OneID *OneIDInfo `json:"one_id,omitempty" gorm:"foreignKey:UserID"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
