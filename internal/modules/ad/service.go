package ad

import (
	"context"

	"qavat/internal/domain"
	"qavat/internal/repository"
)

type Service struct {
	ads  AdRepository
	cats CategoryReader
	gold GoldStatusReader
	favs FavouriteReader
}

func NewService(ads AdRepository, cats CategoryReader, gold GoldStatusReader, favs FavouriteReader) *Service {
	return &Service{ads: ads, cats: cats, gold: gold, favs: favs}
}

func validCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func (s *Service) checkCategory(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	if _, err := s.cats.GetByID(ctx, *id); err != nil {
		if repository.IsNotFound(err) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

func (s *Service) Create(ctx context.Context, userID int64, req CreateAdRequest) (*domain.Ad, error) {
	dealType := domain.DealType(req.DealType)
	if dealType != domain.DealSale && dealType != domain.DealRent {
		return nil, ErrInvalidDealType
	}
	if !validCoordinates(req.Latitude, req.Longitude) {
		return nil, ErrInvalidCoordinates
	}
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "UZS"
	}

	a := &domain.Ad{
		Title:       req.Title,
		Description: req.Description,
		DealType:    dealType,
		CategoryID:  req.CategoryID,
		City:        req.City,
		Street:      req.Street,
		Latitude:    domain.RoundCoordinate(req.Latitude),
		Longitude:   domain.RoundCoordinate(req.Longitude),
		RoomsCount:  req.RoomsCount,
		Floor:       req.Floor,
		TotalFloors: req.TotalFloors,
		TotalArea:   req.TotalArea,
		LivingArea:  req.LivingArea,
		Price:       req.Price,
		Currency:    currency,
		ImageURLs:   req.ImageURLs,
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		ContactType: req.ContactType,
		UserID:      userID,
	}
	if err := s.ads.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Get возвращает объявление, инкрементируя счётчик просмотров.
// viewerID=0 — аноним.
func (s *Service) Get(ctx context.Context, id, viewerID int64) (*AdResponse, error) {
	a, err := s.ads.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.ads.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	a.ViewsCount++

	return s.annotate(ctx, a, viewerID)
}

func (s *Service) annotate(ctx context.Context, a *domain.Ad, viewerID int64) (*AdResponse, error) {
	gold, err := s.gold.AdGoldStatus(ctx, a.ID)
	if err != nil {
		return nil, err
	}

	fav := false
	if viewerID > 0 {
		fav, err = s.favs.Exists(ctx, viewerID, a.ID)
		if err != nil {
			return nil, err
		}
	}

	return &AdResponse{Ad: *a, Gold: gold, IsFavourited: fav}, nil
}

func (s *Service) annotateList(ctx context.Context, ads []domain.Ad, viewerID int64) ([]AdResponse, error) {
	favSet := map[int64]bool{}
	if viewerID > 0 {
		var err error
		favSet, err = s.favs.AdIDsForUser(ctx, viewerID)
		if err != nil {
			return nil, err
		}
	}

	out := make([]AdResponse, 0, len(ads))
	for i := range ads {
		gold, err := s.gold.AdGoldStatus(ctx, ads[i].ID)
		if err != nil {
			return nil, err
		}
		out = append(out, AdResponse{Ad: ads[i], Gold: gold, IsFavourited: favSet[ads[i].ID]})
	}
	return out, nil
}

func (s *Service) List(ctx context.Context, f repository.AdFilters, viewerID int64) ([]AdResponse, error) {
	ads, err := s.ads.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.annotateList(ctx, ads, viewerID)
}

// Nearby ищет объявления в радиусе от точки. Формула приближённая,
// см. repository.AdRepository.Nearby; lat=0 в ней не определена.
func (s *Service) Nearby(ctx context.Context, lat, lon, radiusKM float64, viewerID int64) ([]AdResponse, error) {
	if radiusKM <= 0.1 || radiusKM > 50 {
		return nil, ErrInvalidRadius
	}
	if !validCoordinates(lat, lon) || lat == 0 {
		return nil, ErrInvalidCoordinates
	}

	ads, err := s.ads.Nearby(ctx, lat, lon, radiusKM)
	if err != nil {
		return nil, err
	}
	return s.annotateList(ctx, ads, viewerID)
}

func (s *Service) MyAds(ctx context.Context, userID int64) ([]AdResponse, error) {
	ads, err := s.ads.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.annotateList(ctx, ads, userID)
}

func (s *Service) getOwned(ctx context.Context, id, userID int64, role string) (*domain.Ad, error) {
	a, err := s.ads.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if a.UserID != userID && role != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}
	return a, nil
}

func (s *Service) Update(ctx context.Context, id, userID int64, role string, req UpdateAdRequest) (*domain.Ad, error) {
	a, err := s.getOwned(ctx, id, userID, role)
	if err != nil {
		return nil, err
	}

	if req.DealType != nil {
		dt := domain.DealType(*req.DealType)
		if dt != domain.DealSale && dt != domain.DealRent {
			return nil, ErrInvalidDealType
		}
		a.DealType = dt
	}
	if req.Latitude != nil || req.Longitude != nil {
		lat, lon := a.Latitude, a.Longitude
		if req.Latitude != nil {
			lat = *req.Latitude
		}
		if req.Longitude != nil {
			lon = *req.Longitude
		}
		if !validCoordinates(lat, lon) {
			return nil, ErrInvalidCoordinates
		}
		a.Latitude = domain.RoundCoordinate(lat)
		a.Longitude = domain.RoundCoordinate(lon)
	}
	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, req.CategoryID); err != nil {
			return nil, err
		}
		a.CategoryID = req.CategoryID
	}

	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.City != nil {
		a.City = *req.City
	}
	if req.Street != nil {
		a.Street = *req.Street
	}
	if req.RoomsCount != nil {
		a.RoomsCount = req.RoomsCount
	}
	if req.Floor != nil {
		a.Floor = req.Floor
	}
	if req.TotalFloors != nil {
		a.TotalFloors = req.TotalFloors
	}
	if req.TotalArea != nil {
		a.TotalArea = req.TotalArea
	}
	if req.LivingArea != nil {
		a.LivingArea = req.LivingArea
	}
	if req.Price != nil {
		a.Price = req.Price
	}
	if req.Currency != nil {
		a.Currency = *req.Currency
	}
	if req.ImageURLs != nil {
		a.ImageURLs = req.ImageURLs
	}
	if req.FullName != nil {
		a.FullName = *req.FullName
	}
	if req.Email != nil {
		a.Email = *req.Email
	}
	if req.PhoneNumber != nil {
		a.PhoneNumber = *req.PhoneNumber
	}
	if req.ContactType != nil {
		a.ContactType = *req.ContactType
	}

	if err := s.ads.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id, userID int64, role string) error {
	a, err := s.getOwned(ctx, id, userID, role)
	if err != nil {
		return err
	}
	return s.ads.Delete(ctx, a.ID)
}
