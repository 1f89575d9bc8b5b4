package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"qavat/internal/database"
	"qavat/internal/domain"
	"qavat/internal/middleware"
	"qavat/internal/modules/ad"
	"qavat/internal/modules/auth"
	"qavat/internal/modules/category"
	"qavat/internal/modules/comment"
	"qavat/internal/modules/favourite"
	"qavat/internal/modules/notification"
	"qavat/internal/modules/statistics"
	"qavat/internal/modules/user"
	"qavat/internal/modules/verification"
	jwtsvc "qavat/internal/pkg/jwt"
	"qavat/internal/repository"
)

type e2eSuite struct {
	router *gin.Engine
	db     *gorm.DB
	hub    *notification.Hub
}

type testResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *errorDetail    `json:"error,omitempty"`

	status int
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// silentSMS глотает SMS: код потом читается прямо из таблицы otps.
type silentSMS struct{}

func (silentSMS) SendSMS(_ context.Context, _, _ string) error { return nil }

func setupSuite(t *testing.T) *e2eSuite {
	dsn := fmt.Sprintf("file:e2e_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	adRepo := repository.NewAdRepository(db)
	verificationRepo := repository.NewVerificationRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	favouriteRepo := repository.NewFavouriteRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	j := jwtsvc.New("test_secret_key_32_characters_min", time.Hour, 24*time.Hour)

	hub := notification.NewHub()
	notificationService := notification.NewService(notificationRepo, hub)
	notificationHandler := notification.NewHandler(notificationService, hub, j)

	authService := auth.NewService(userRepo, otpRepo, silentSMS{}, j, 6, 5*time.Minute)
	authHandler := auth.NewHandler(authService)

	adService := ad.NewService(adRepo, categoryRepo, verificationRepo, favouriteRepo)
	adHandler := ad.NewHandler(adService)

	verificationService := verification.NewService(verificationRepo, adRepo, userRepo, favouriteRepo, notificationService)
	verificationHandler := verification.NewHandler(verificationService)

	categoryService := category.NewService(categoryRepo, adRepo)
	categoryHandler := category.NewHandler(categoryService)

	commentService := comment.NewService(commentRepo, adRepo, notificationService)
	commentHandler := comment.NewHandler(commentService)

	favouriteService := favourite.NewService(favouriteRepo, adRepo)
	favouriteHandler := favourite.NewHandler(favouriteService)

	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	statisticsService := statistics.NewService(statsRepo, userRepo, adRepo, favouriteRepo)
	statisticsHandler := statistics.NewHandler(statisticsService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	public := v1.Group("/")
	public.Use(middleware.OptionalJWTAuth(j))

	protected := v1.Group("/")
	protected.Use(middleware.JWTAuth(j))

	adminGroup := v1.Group("/admin")
	adminGroup.Use(middleware.JWTAuth(j), middleware.AdminOnly())

	authHandler.RegisterRoutes(public, protected)
	adHandler.RegisterRoutes(public, protected)
	verificationHandler.RegisterRoutes(public, protected, adminGroup)
	categoryHandler.RegisterRoutes(public, adminGroup)
	commentHandler.RegisterRoutes(public, protected)
	favouriteHandler.RegisterRoutes(protected)
	notificationHandler.RegisterRoutes(public, protected)
	userHandler.RegisterRoutes(adminGroup)
	userHandler.RegisterProfileRoutes(protected)
	statisticsHandler.RegisterRoutes(adminGroup)

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	username := "admin"
	admin := &domain.User{
		Name:         "Admin",
		Username:     &username,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	require.NoError(t, db.Create(admin).Error)

	suite := &e2eSuite{router: r, db: db, hub: hub}
	t.Cleanup(hub.Close)
	return suite
}

func (s *e2eSuite) request(t *testing.T, method, path string, body interface{}, token string) *testResponse {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp testResponse
	require.NoErrorf(t, json.Unmarshal(w.Body.Bytes(), &resp), "%s %s -> %d: %s", method, path, w.Code, w.Body.String())
	resp.status = w.Code
	return &resp
}

func decode(t *testing.T, raw json.RawMessage, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, out))
}

// latestOTP читает последний невыгоревший код из базы вместо реального SMS.
func (s *e2eSuite) latestOTP(t *testing.T, phone string) string {
	t.Helper()
	var otp domain.OTP
	require.NoError(t, s.db.Where("phone_number = ? AND used = ?", phone, false).Order("id DESC").First(&otp).Error)
	return otp.Code
}

func (s *e2eSuite) loginAdmin(t *testing.T) string {
	t.Helper()
	resp := s.request(t, "POST", "/api/v1/auth/admin/login", gin.H{
		"username": "admin",
		"password": "admin123",
	}, "")
	require.Equal(t, http.StatusOK, resp.status)
	require.True(t, resp.Success)

	var login struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, resp.Data, &login)
	require.NotEmpty(t, login.AccessToken)
	return login.AccessToken
}

// loginByPhone проходит полный OTP-цикл и возвращает access token и id пользователя.
func (s *e2eSuite) loginByPhone(t *testing.T, phone string) (string, int64) {
	t.Helper()

	resp := s.request(t, "POST", "/api/v1/auth/otp/request", gin.H{"phone_number": phone}, "")
	require.True(t, resp.Success)

	code := s.latestOTP(t, phone)
	resp = s.request(t, "POST", "/api/v1/auth/otp/verify", gin.H{
		"phone_number": phone,
		"code":         code,
	}, "")
	require.True(t, resp.Success)

	var login struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	decode(t, resp.Data, &login)
	require.NotEmpty(t, login.AccessToken)
	return login.AccessToken, login.User.ID
}

func TestFlow_GoldBadgeLifecycle(t *testing.T) {
	suite := setupSuite(t)

	adminToken := suite.loginAdmin(t)
	realtorToken, realtorID := suite.loginByPhone(t, "+998901112233")
	buyerToken, _ := suite.loginByPhone(t, "+998909998877")

	// продавец прошёл OneID, иначе заявка на отметку недоступна
	require.NoError(t, suite.db.Model(&domain.User{}).Where("id = ?", realtorID).Update("is_verified", true).Error)

	var adID int64
	t.Run("realtor creates ad", func(t *testing.T) {
		resp := suite.request(t, "POST", "/api/v1/ads", gin.H{
			"title":        "2-комнатная у метро",
			"description":  "Свежий ремонт, рядом парк",
			"deal_type":    "sale",
			"city":         "Tashkent",
			"latitude":     41.2995,
			"longitude":    69.2401,
			"price":        85000,
			"full_name":    "Alisher Navoiy",
			"email":        "alisher@example.com",
			"phone_number": "+998901112233",
		}, realtorToken)
		require.True(t, resp.Success)

		var created struct {
			ID       int64   `json:"id"`
			Latitude float64 `json:"latitude"`
		}
		decode(t, resp.Data, &created)
		require.NotZero(t, created.ID)
		assert.Equal(t, 41.2995, created.Latitude)
		adID = created.ID
	})

	t.Run("anonymous sees the ad without gold badge", func(t *testing.T) {
		resp := suite.request(t, "GET", fmt.Sprintf("/api/v1/ads/%d", adID), nil, "")
		require.True(t, resp.Success)

		var got struct {
			ViewsCount int64 `json:"views_count"`
			Gold       *struct {
				IsGoldVerified bool `json:"is_gold_verified"`
			} `json:"gold"`
		}
		decode(t, resp.Data, &got)
		assert.EqualValues(t, 1, got.ViewsCount)
		if got.Gold != nil {
			assert.False(t, got.Gold.IsGoldVerified)
		}
	})

	var requestID int64
	t.Run("realtor submits gold request", func(t *testing.T) {
		resp := suite.request(t, "POST", "/api/v1/verification/gold", gin.H{
			"ad_id":          adID,
			"request_reason": "Документы на руках",
		}, realtorToken)
		require.True(t, resp.Success)

		var req struct {
			ID     int64  `json:"id"`
			Status string `json:"status"`
		}
		decode(t, resp.Data, &req)
		assert.Equal(t, "pending", req.Status)
		requestID = req.ID

		// вторая заявка по тому же объявлению отбивается
		dup := suite.request(t, "POST", "/api/v1/verification/gold", gin.H{"ad_id": adID}, realtorToken)
		require.False(t, dup.Success)
		assert.Equal(t, "ALREADY_PENDING", dup.Error.Code)
	})

	t.Run("buyer cannot submit for foreign ad", func(t *testing.T) {
		resp := suite.request(t, "POST", "/api/v1/verification/gold", gin.H{"ad_id": adID}, buyerToken)
		require.False(t, resp.Success)
		// чужое объявление неотличимо от несуществующего
		assert.Equal(t, "AD_NOT_FOUND", resp.Error.Code)
	})

	t.Run("admin approves", func(t *testing.T) {
		pending := suite.request(t, "GET", "/api/v1/admin/verification/gold?status=pending", nil, adminToken)
		require.True(t, pending.Success)
		var list []struct {
			ID int64 `json:"id"`
		}
		decode(t, pending.Data, &list)
		require.Len(t, list, 1)
		require.Equal(t, requestID, list[0].ID)

		resp := suite.request(t, "PUT", fmt.Sprintf("/api/v1/admin/verification/gold/%d", requestID), gin.H{
			"status":        "approved",
			"admin_comment": "Проверено",
		}, adminToken)
		require.True(t, resp.Success)

		var req struct {
			Status      string `json:"status"`
			ProcessedBy *int64 `json:"processed_by"`
		}
		decode(t, resp.Data, &req)
		assert.Equal(t, "approved", req.Status)
		require.NotNil(t, req.ProcessedBy)

		// терминальное решение не перерешивается
		again := suite.request(t, "PUT", fmt.Sprintf("/api/v1/admin/verification/gold/%d", requestID), gin.H{
			"status": "rejected",
		}, adminToken)
		require.False(t, again.Success)
		assert.Equal(t, "ALREADY_PROCESSED", again.Error.Code)
	})

	t.Run("popular list carries badge and viewer annotation", func(t *testing.T) {
		fav := suite.request(t, "POST", fmt.Sprintf("/api/v1/favourites/%d", adID), nil, buyerToken)
		require.True(t, fav.Success)

		resp := suite.request(t, "GET", "/api/v1/ads/popular", nil, buyerToken)
		require.True(t, resp.Success)

		var golds []struct {
			Ad struct {
				ID int64 `json:"id"`
			} `json:"ad"`
			Gold struct {
				IsGoldVerified bool `json:"is_gold_verified"`
			} `json:"gold"`
			IsFavourited bool `json:"is_favourited"`
		}
		decode(t, resp.Data, &golds)
		require.Len(t, golds, 1)
		assert.Equal(t, adID, golds[0].Ad.ID)
		assert.True(t, golds[0].Gold.IsGoldVerified)
		assert.True(t, golds[0].IsFavourited)

		// аноним видит отметку, но без персональной аннотации
		anon := suite.request(t, "GET", "/api/v1/ads/popular", nil, "")
		require.True(t, anon.Success)
		decode(t, anon.Data, &golds)
		require.Len(t, golds, 1)
		assert.False(t, golds[0].IsFavourited)
	})

	t.Run("owner notification persisted", func(t *testing.T) {
		resp := suite.request(t, "GET", "/api/v1/notifications/unread", nil, realtorToken)
		require.True(t, resp.Success)

		var unread struct {
			Unread int64 `json:"unread"`
		}
		decode(t, resp.Data, &unread)
		assert.EqualValues(t, 1, unread.Unread)
	})
}

func TestFlow_BrowseAndComments(t *testing.T) {
	suite := setupSuite(t)

	realtorToken, _ := suite.loginByPhone(t, "+998935550001")
	buyerToken, _ := suite.loginByPhone(t, "+998935550002")

	mk := func(title, dealType, city string, lat, lon float64, price int64) int64 {
		resp := suite.request(t, "POST", "/api/v1/ads", gin.H{
			"title":        title,
			"description":  "desc",
			"deal_type":    dealType,
			"city":         city,
			"latitude":     lat,
			"longitude":    lon,
			"price":        price,
			"full_name":    "Seller",
			"email":        "seller@example.com",
			"phone_number": "+998935550001",
		}, realtorToken)
		require.True(t, resp.Success)
		var created struct {
			ID int64 `json:"id"`
		}
		decode(t, resp.Data, &created)
		return created.ID
	}

	saleID := mk("Квартира в центре", "sale", "Tashkent", 41.3111, 69.2797, 90000)
	mk("Аренда дома", "rent", "Samarkand", 39.6542, 66.9597, 700)

	t.Run("filter by deal type and city", func(t *testing.T) {
		resp := suite.request(t, "GET", "/api/v1/ads?deal_type=sale&city=Tashkent", nil, "")
		require.True(t, resp.Success)

		var ads []struct {
			ID int64 `json:"id"`
		}
		decode(t, resp.Data, &ads)
		require.Len(t, ads, 1)
		assert.Equal(t, saleID, ads[0].ID)
	})

	t.Run("nearby excludes the far city", func(t *testing.T) {
		resp := suite.request(t, "GET", "/api/v1/ads/nearby?latitude=41.31&longitude=69.28&radius_km=5", nil, "")
		require.True(t, resp.Success)

		var ads []struct {
			ID int64 `json:"id"`
		}
		decode(t, resp.Data, &ads)
		require.Len(t, ads, 1)
		assert.Equal(t, saleID, ads[0].ID)

		bad := suite.request(t, "GET", "/api/v1/ads/nearby?latitude=41.31&longitude=69.28&radius_km=500", nil, "")
		require.False(t, bad.Success)
		assert.Equal(t, "VALIDATION_ERROR", bad.Error.Code)
	})

	t.Run("comments", func(t *testing.T) {
		resp := suite.request(t, "POST", fmt.Sprintf("/api/v1/ads/%d/comments", saleID), gin.H{
			"text": "Торг уместен?",
		}, buyerToken)
		require.True(t, resp.Success)

		list := suite.request(t, "GET", fmt.Sprintf("/api/v1/ads/%d/comments", saleID), nil, "")
		require.True(t, list.Success)

		var comments []struct {
			Text string `json:"text"`
		}
		decode(t, list.Data, &comments)
		require.Len(t, comments, 1)
		assert.Equal(t, "Торг уместен?", comments[0].Text)
	})
}
