package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"qavat/internal/config"
	"qavat/internal/database"
	"qavat/internal/middleware"
	"qavat/internal/modules/ad"
	"qavat/internal/modules/auth"
	"qavat/internal/modules/category"
	"qavat/internal/modules/comment"
	"qavat/internal/modules/eimzo"
	"qavat/internal/modules/favourite"
	"qavat/internal/modules/notification"
	"qavat/internal/modules/oneid"
	"qavat/internal/modules/statistics"
	"qavat/internal/modules/upload"
	"qavat/internal/modules/user"
	"qavat/internal/modules/verification"
	"qavat/internal/pkg/eskiz"
	jwtsvc "qavat/internal/pkg/jwt"
	"qavat/internal/repository"
)

// logSMS подменяет Eskiz в dev-окружении: код уходит в лог вместо SMS.
type logSMS struct{}

func (logSMS) SendSMS(ctx context.Context, phone, message string) error {
	log.Printf("SMS to %s: %s", phone, message)
	return nil
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	adRepo := repository.NewAdRepository(db)
	verificationRepo := repository.NewVerificationRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	favouriteRepo := repository.NewFavouriteRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	uploadRepo := repository.NewUploadRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	var sms auth.SMSSender = logSMS{}
	if cfg.EskizEmail != "" {
		sms = eskiz.NewClient(cfg.EskizEmail, cfg.EskizPassword)
	}

	hub := notification.NewHub()
	defer hub.Close()
	notificationService := notification.NewService(notificationRepo, hub)
	notificationHandler := notification.NewHandler(notificationService, hub, j)

	authService := auth.NewService(userRepo, otpRepo, sms, j, cfg.OTPLength, cfg.OTPTTL)
	authHandler := auth.NewHandler(authService)

	eimzoClient := eimzo.NewClient(cfg.EimzoAuthURL, cfg.EimzoRealIP, cfg.EimzoHost)
	eimzoService := eimzo.NewService(eimzoClient, userRepo, j)
	eimzoHandler := eimzo.NewHandler(eimzoService)

	oneidClient := oneid.NewClient(cfg.OneIDBaseURL, cfg.OneIDClientID, cfg.OneIDClientSecret, cfg.OneIDRedirectURI, cfg.OneIDScope)
	oneidService := oneid.NewService(oneidClient, userRepo)
	oneidHandler := oneid.NewHandler(oneidService)

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

	uploadService := upload.NewService(uploadRepo, cfg.UploadDir, cfg.StaticBase)
	uploadHandler := upload.NewHandler(uploadService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Static(cfg.StaticBase, cfg.UploadDir)

	v1 := r.Group("/api/v1")
	{
		// анонимам можно, авторизованные получают персональные аннотации
		public := v1.Group("/")
		public.Use(middleware.OptionalJWTAuth(j))

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))

		admin := v1.Group("/admin")
		admin.Use(middleware.JWTAuth(j), middleware.AdminOnly())

		authHandler.RegisterRoutes(public, protected)
		eimzoHandler.RegisterRoutes(public)
		oneidHandler.RegisterRoutes(protected)
		adHandler.RegisterRoutes(public, protected)
		verificationHandler.RegisterRoutes(public, protected, admin)
		categoryHandler.RegisterRoutes(public, admin)
		commentHandler.RegisterRoutes(public, protected)
		favouriteHandler.RegisterRoutes(protected)
		notificationHandler.RegisterRoutes(public, protected)
		uploadHandler.RegisterRoutes(protected)
		userHandler.RegisterRoutes(admin)
		userHandler.RegisterProfileRoutes(protected)
		statisticsHandler.RegisterRoutes(admin)
	}

	log.Printf("listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
