package statistics

type Totals struct {
	Users int64 `json:"users"`
	Ads   int64 `json:"ads"`
}

type MonthCount struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

type Overview struct {
	Totals
	AdsThisMonth   int64 `json:"ads_this_month"`
	UsersThisMonth int64 `json:"users_this_month"`
	AdsThisYear    int64 `json:"ads_this_year"`
	UsersThisYear  int64 `json:"users_this_year"`
}

// RealtorRank — позиция риелтора в рейтинге.
// Счёт = закладки*2 + просмотры по всем его объявлениям.
type RealtorRank struct {
	UserID     int64  `json:"user_id"`
	Name       string `json:"name"`
	AdsCount   int    `json:"total_ads"`
	Views      int64  `json:"total_views"`
	Favourites int64  `json:"total_favourites"`
	Score      int64  `json:"ranking_score"`
}

// TimeseriesPoint — месячная корзина плотного ряда. Нулевые месяцы
// присутствуют явно.
type TimeseriesPoint struct {
	Year   int   `json:"year"`
	Month  int   `json:"month"`
	Ads    int64 `json:"ads"`
	Users  int64 `json:"users"`
	Orders int64 `json:"orders"`
}
