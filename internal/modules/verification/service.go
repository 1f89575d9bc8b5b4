package verification

import (
	"context"
	"time"

	"qavat/internal/domain"
	"qavat/internal/repository"
)

type Service struct {
	requests VerificationRepository
	ads      AdRepository
	users    UserReader
	favs     FavouriteReader
	notifs   NotificationSender
}

func NewService(
	requests VerificationRepository,
	ads AdRepository,
	users UserReader,
	favs FavouriteReader,
	notifs NotificationSender,
) *Service {
	return &Service{
		requests: requests,
		ads:      ads,
		users:    users,
		favs:     favs,
		notifs:   notifs,
	}
}

// Submit создаёт pending-заявку на золотую отметку для собственного объявления.
// Чужое или несуществующее объявление неразличимы для вызывающего: ErrAdNotFound.
func (s *Service) Submit(ctx context.Context, userID int64, req SubmitRequest) (*domain.GoldVerificationRequest, error) {
	ad, err := s.ads.GetByID(ctx, req.AdID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrAdNotFound
		}
		return nil, err
	}
	if ad.UserID != userID {
		return nil, ErrAdNotFound
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.IsVerified {
		return nil, ErrNotVerified
	}

	pending, err := s.requests.HasPendingForAd(ctx, req.AdID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrAlreadyPending
	}

	r := &domain.GoldVerificationRequest{
		AdID:          req.AdID,
		RequestedBy:   userID,
		Status:        domain.GoldPending,
		RequestReason: req.RequestReason,
	}
	if err := s.requests.Create(ctx, r); err != nil {
		// гонка двух одновременных Submit: второй упирается в частичный
		// уникальный индекс и получает тот же ответ, что и при проверке выше
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyPending
		}
		return nil, err
	}
	return r, nil
}

// Process — решение администратора. Терминальные заявки неизменяемы.
func (s *Service) Process(ctx context.Context, adminID, requestID int64, req ProcessRequest) (*domain.GoldVerificationRequest, error) {
	status := domain.GoldVerificationStatus(req.Status)
	if status != domain.GoldApproved && status != domain.GoldRejected {
		return nil, ErrInvalidStatus
	}

	r, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if r.IsTerminal() {
		return nil, ErrAlreadyProcessed
	}

	now := time.Now()
	r.Status = status
	r.ProcessedBy = &adminID
	r.ProcessedAt = &now
	r.AdminComment = req.AdminComment

	if err := s.requests.Update(ctx, r); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyGoldProcessed(ctx, r.RequestedBy, r.AdID, status == domain.GoldApproved, r.AdminComment)
	}

	return r, nil
}

// Cancel переводит собственную pending-заявку в rejected с фиксированным
// комментарием. processed_by остаётся пустым: решение принял не администратор.
func (s *Service) Cancel(ctx context.Context, userID, requestID int64) (*domain.GoldVerificationRequest, error) {
	r, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if r.RequestedBy != userID {
		return nil, ErrRequestNotFound
	}
	if r.Status != domain.GoldPending {
		return nil, ErrNotPending
	}

	now := time.Now()
	r.Status = domain.GoldRejected
	r.AdminComment = domain.CancelledByUserComment
	r.ProcessedBy = nil
	r.ProcessedAt = &now

	if err := s.requests.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) ListPending(ctx context.Context) ([]domain.GoldVerificationRequest, error) {
	return s.requests.ListByStatus(ctx, domain.GoldPending)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.GoldVerificationRequest, error) {
	return s.requests.ListAll(ctx)
}

func (s *Service) ListMy(ctx context.Context, userID int64) ([]domain.GoldVerificationRequest, error) {
	return s.requests.ListByRequester(ctx, userID)
}

func (s *Service) ListByAd(ctx context.Context, adID int64) ([]domain.GoldVerificationRequest, error) {
	return s.requests.ListByAd(ctx, adID)
}

// ListPopular возвращает объявления хотя бы с одной approved-заявкой,
// по возрастанию id. viewerID=0 — аноним, is_favourited всегда false.
func (s *Service) ListPopular(ctx context.Context, viewerID int64) ([]GoldAdResponse, error) {
	ids, err := s.requests.ApprovedAdIDs(ctx)
	if err != nil {
		return nil, err
	}

	ads, err := s.ads.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	favSet := map[int64]bool{}
	if viewerID > 0 {
		favSet, err = s.favs.AdIDsForUser(ctx, viewerID)
		if err != nil {
			return nil, err
		}
	}

	out := make([]GoldAdResponse, 0, len(ads))
	for i := range ads {
		gold, err := s.requests.AdGoldStatus(ctx, ads[i].ID)
		if err != nil {
			return nil, err
		}
		out = append(out, GoldAdResponse{
			Ad:           ads[i],
			Gold:         gold,
			IsFavourited: favSet[ads[i].ID],
		})
	}
	return out, nil
}
