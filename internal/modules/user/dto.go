package user

type CreateUserRequest struct {
	Name        string `json:"name" binding:"required"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password" binding:"required"`
	Role        string `json:"role"`
}

// UpdateProfileRequest — самостоятельное редактирование профиля.
// Роль, пароль и статусы отсюда недоступны.
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type UpdateUserRequest struct {
	Name        *string `json:"name"`
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Password    *string `json:"password"`
	Role        *string `json:"role"`
	IsActive    *bool   `json:"is_active"`
}
