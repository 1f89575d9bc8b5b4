package statistics

import (
	"context"
	"errors"
	"sort"
	"time"

	"qavat/internal/domain"
)

var ErrBadRange = errors.New("start month must not be after end month")

type StatsRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountAds(ctx context.Context) (int64, error)
	CountUsersBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountAdsBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountVerificationsBetween(ctx context.Context, from, to time.Time) (int64, error)
}

type UserLister interface {
	ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error)
}

type AdLister interface {
	GetByUserID(ctx context.Context, userID int64) ([]domain.Ad, error)
}

type FavouriteCounter interface {
	CountForAds(ctx context.Context, adIDs []int64) (int64, error)
}

type Service struct {
	stats StatsRepository
	users UserLister
	ads   AdLister
	favs  FavouriteCounter
}

func NewService(stats StatsRepository, users UserLister, ads AdLister, favs FavouriteCounter) *Service {
	return &Service{stats: stats, users: users, ads: ads, favs: favs}
}

func monthStart(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

func (s *Service) Totals(ctx context.Context) (*Totals, error) {
	users, err := s.stats.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	ads, err := s.stats.CountAds(ctx)
	if err != nil {
		return nil, err
	}
	return &Totals{Users: users, Ads: ads}, nil
}

// AdsByMonth — 12 корзин заданного года, включая нулевые.
func (s *Service) AdsByMonth(ctx context.Context, year int) ([]MonthCount, error) {
	out := make([]MonthCount, 0, 12)
	for m := time.January; m <= time.December; m++ {
		from := monthStart(year, m)
		count, err := s.stats.CountAdsBetween(ctx, from, from.AddDate(0, 1, 0))
		if err != nil {
			return nil, err
		}
		out = append(out, MonthCount{Year: year, Month: int(m), Count: count})
	}
	return out, nil
}

func (s *Service) AdsInYear(ctx context.Context, year int) (int64, error) {
	from := monthStart(year, time.January)
	return s.stats.CountAdsBetween(ctx, from, from.AddDate(1, 0, 0))
}

func (s *Service) AdsInMonth(ctx context.Context, year, month int) (int64, error) {
	from := monthStart(year, time.Month(month))
	return s.stats.CountAdsBetween(ctx, from, from.AddDate(0, 1, 0))
}

func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	totals, err := s.Totals(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	mFrom := monthStart(now.Year(), now.Month())
	yFrom := monthStart(now.Year(), time.January)

	out := &Overview{Totals: *totals}
	if out.AdsThisMonth, err = s.stats.CountAdsBetween(ctx, mFrom, mFrom.AddDate(0, 1, 0)); err != nil {
		return nil, err
	}
	if out.UsersThisMonth, err = s.stats.CountUsersBetween(ctx, mFrom, mFrom.AddDate(0, 1, 0)); err != nil {
		return nil, err
	}
	if out.AdsThisYear, err = s.stats.CountAdsBetween(ctx, yFrom, yFrom.AddDate(1, 0, 0)); err != nil {
		return nil, err
	}
	if out.UsersThisYear, err = s.stats.CountUsersBetween(ctx, yFrom, yFrom.AddDate(1, 0, 0)); err != nil {
		return nil, err
	}
	return out, nil
}

// RealtorRanking сортирует по счёту убыванием, при равенстве — меньший id выше.
func (s *Service) RealtorRanking(ctx context.Context) ([]RealtorRank, error) {
	realtors, err := s.users.ListByRole(ctx, domain.RoleRealtor)
	if err != nil {
		return nil, err
	}

	out := make([]RealtorRank, 0, len(realtors))
	for _, r := range realtors {
		ads, err := s.ads.GetByUserID(ctx, r.ID)
		if err != nil {
			return nil, err
		}

		var views int64
		ids := make([]int64, 0, len(ads))
		for _, a := range ads {
			views += a.ViewsCount
			ids = append(ids, a.ID)
		}

		favs, err := s.favs.CountForAds(ctx, ids)
		if err != nil {
			return nil, err
		}

		out = append(out, RealtorRank{
			UserID:     r.ID,
			Name:       r.Name,
			AdsCount:   len(ads),
			Views:      views,
			Favourites: favs,
			Score:      favs*2 + views,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

// Timeseries — плотный помесячный ряд [start, end] включительно.
// orders — заявки на золотую отметку.
func (s *Service) Timeseries(ctx context.Context, startYear, startMonth, endYear, endMonth int) ([]TimeseriesPoint, error) {
	start := monthStart(startYear, time.Month(startMonth))
	end := monthStart(endYear, time.Month(endMonth))
	if start.After(end) {
		return nil, ErrBadRange
	}

	out := make([]TimeseriesPoint, 0)
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 1, 0) {
		next := cur.AddDate(0, 1, 0)
		p := TimeseriesPoint{Year: cur.Year(), Month: int(cur.Month())}

		var err error
		if p.Ads, err = s.stats.CountAdsBetween(ctx, cur, next); err != nil {
			return nil, err
		}
		if p.Users, err = s.stats.CountUsersBetween(ctx, cur, next); err != nil {
			return nil, err
		}
		if p.Orders, err = s.stats.CountVerificationsBetween(ctx, cur, next); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
