package user

import (
	"context"
	"errors"
	"strings"

	"qavat/internal/domain"
	"qavat/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrDuplicate     = errors.New("username, email or phone number is already taken")
	ErrInvalidRole   = errors.New("unknown role")
	ErrShortPassword = errors.New("password must be at least 8 characters")
	ErrLastAdmin     = errors.New("cannot delete the last admin account")
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.User, error)
	ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error)
}

type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

func validRole(role domain.UserRole) bool {
	switch role {
	case domain.RoleUser, domain.RoleRealtor, domain.RoleLegal, domain.RoleAdmin:
		return true
	}
	return false
}

func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	role := domain.UserRole(req.Role)
	if req.Role == "" {
		role = domain.RoleUser
	}
	if !validRole(role) {
		return nil, ErrInvalidRole
	}
	if len(req.Password) < 8 {
		return nil, ErrShortPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Name:         req.Name,
		Username:     trimmedPtr(req.Username),
		Email:        trimmedPtr(req.Email),
		PhoneNumber:  trimmedPtr(req.PhoneNumber),
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateUserRequest) (*domain.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Username != nil {
		u.Username = trimmedPtr(*req.Username)
	}
	if req.Email != nil {
		u.Email = trimmedPtr(*req.Email)
	}
	if req.PhoneNumber != nil {
		u.PhoneNumber = trimmedPtr(*req.PhoneNumber)
	}
	if req.Role != nil {
		role := domain.UserRole(*req.Role)
		if !validRole(role) {
			return nil, ErrInvalidRole
		}
		u.Role = role
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			return nil, ErrShortPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, u); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return u, nil
}

// UpdateProfile меняет только то, что пользователь вправе править сам.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		u.Email = trimmedPtr(*req.Email)
	}

	if err := s.users.Update(ctx, u); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return u, nil
}

// DeleteProfile удаляет собственный аккаунт. Последний администратор
// защищён тем же правилом, что и в админском CRUD.
func (s *Service) DeleteProfile(ctx context.Context, userID int64) error {
	return s.Delete(ctx, userID)
}

// Delete не даёт снести последнего администратора.
func (s *Service) Delete(ctx context.Context, id int64) error {
	u, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if u.IsAdmin() {
		admins, err := s.users.ListByRole(ctx, domain.RoleAdmin)
		if err != nil {
			return err
		}
		if len(admins) <= 1 {
			return ErrLastAdmin
		}
	}

	return s.users.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, role string) ([]domain.User, error) {
	if role != "" {
		r := domain.UserRole(role)
		if !validRole(r) {
			return nil, ErrInvalidRole
		}
		return s.users.ListByRole(ctx, r)
	}
	return s.users.List(ctx)
}

func trimmedPtr(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
