package repository

import (
	"context"
	"errors"

	"qavat/internal/domain"

	"gorm.io/gorm"
)

type VerificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

func (r *VerificationRepository) DB() *gorm.DB { return r.db }

// Create вставляет заявку. Дубликат pending-заявки на то же объявление
// отбивается частичным уникальным индексом (ad_id WHERE status='pending') —
// вызывающий различает гонку через IsUniqueViolation.
func (r *VerificationRepository) Create(ctx context.Context, req *domain.GoldVerificationRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *VerificationRepository) GetByID(ctx context.Context, id int64) (*domain.GoldVerificationRequest, error) {
	var req domain.GoldVerificationRequest
	err := r.db.WithContext(ctx).First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *VerificationRepository) Update(ctx context.Context, req *domain.GoldVerificationRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *VerificationRepository) HasPendingForAd(ctx context.Context, adID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.GoldVerificationRequest{}).
		Where("ad_id = ? AND status = ?", adID, domain.GoldPending).
		Count(&count).Error
	return count > 0, err
}

func (r *VerificationRepository) ListByStatus(ctx context.Context, status domain.GoldVerificationStatus) ([]domain.GoldVerificationRequest, error) {
	var reqs []domain.GoldVerificationRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("requested_at ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *VerificationRepository) ListAll(ctx context.Context) ([]domain.GoldVerificationRequest, error) {
	var reqs []domain.GoldVerificationRequest
	err := r.db.WithContext(ctx).Order("requested_at ASC").Find(&reqs).Error
	return reqs, err
}

func (r *VerificationRepository) ListByRequester(ctx context.Context, userID int64) ([]domain.GoldVerificationRequest, error) {
	var reqs []domain.GoldVerificationRequest
	err := r.db.WithContext(ctx).
		Where("requested_by = ?", userID).
		Order("requested_at ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *VerificationRepository) ListByAd(ctx context.Context, adID int64) ([]domain.GoldVerificationRequest, error) {
	var reqs []domain.GoldVerificationRequest
	err := r.db.WithContext(ctx).
		Where("ad_id = ?", adID).
		Order("requested_at ASC").
		Find(&reqs).Error
	return reqs, err
}

// LatestByAd — самая свежая заявка по requested_at (при равенстве — больший id).
func (r *VerificationRepository) LatestByAd(ctx context.Context, adID int64) (*domain.GoldVerificationRequest, error) {
	var req domain.GoldVerificationRequest
	err := r.db.WithContext(ctx).
		Where("ad_id = ?", adID).
		Order("requested_at DESC").
		Order("id DESC").
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *VerificationRepository) HasApprovedForAd(ctx context.Context, adID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.GoldVerificationRequest{}).
		Where("ad_id = ? AND status = ?", adID, domain.GoldApproved).
		Count(&count).Error
	return count > 0, err
}

// ApprovedAdIDs — id объявлений хотя бы с одной approved-заявкой, по возрастанию.
func (r *VerificationRepository) ApprovedAdIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&domain.GoldVerificationRequest{}).
		Where("status = ?", domain.GoldApproved).
		Distinct("ad_id").
		Order("ad_id ASC").
		Pluck("ad_id", &ids).Error
	return ids, err
}

// AdGoldStatus вычисляет производный статус объявления на момент чтения.
func (r *VerificationRepository) AdGoldStatus(ctx context.Context, adID int64) (*domain.GoldStatus, error) {
	status := &domain.GoldStatus{}

	approved, err := r.HasApprovedForAd(ctx, adID)
	if err != nil {
		return nil, err
	}
	status.IsGoldVerified = approved

	latest, err := r.LatestByAd(ctx, adID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return status, nil
		}
		return nil, err
	}

	s := latest.Status
	requestedAt := latest.RequestedAt
	status.Status = &s
	status.RequestedAt = &requestedAt
	status.ProcessedAt = latest.ProcessedAt
	status.AdminComment = latest.AdminComment
	return status, nil
}
