package repository

import (
	"context"
	"strings"
	"time"

	"qavat/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) DB() *gorm.DB { return r.db }

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	if u.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*u.Email))
		u.Email = &normalized
	}
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Preload("OneID").First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Where("username = ?", strings.TrimSpace(username)).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Where("phone_number = ?", strings.TrimSpace(phone)).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEimzoSerial ищет пользователя по серийному номеру сертификата ЭЦП.
func (r *UserRepository) GetByEimzoSerial(ctx context.Context, serial string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Where("eimzo_serial = ?", serial).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.User{}, id).Error
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("id ASC").
		Find(&users).Error
	return users, err
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login", at).Error
}

// MarkVerified выставляет is_verified и сохраняет привязку OneID.
func (r *UserRepository) MarkVerified(ctx context.Context, userID int64, info *domain.OneIDInfo) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.User{}).
			Where("id = ?", userID).
			UpdateColumn("is_verified", true).Error; err != nil {
			return err
		}
		info.UserID = userID
		return tx.Where("user_id = ?", userID).
			Assign(map[string]any{
				"pin":         info.PIN,
				"passport_no": info.PassportNo,
				"full_name":   info.FullName,
				"birth_date":  info.BirthDate,
				"legal_tin":   info.LegalTIN,
			}).
			FirstOrCreate(&domain.OneIDInfo{}, domain.OneIDInfo{UserID: userID}).Error
	})
}
