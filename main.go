package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"handyhub/config"
	"handyhub/cron"
	"handyhub/database"
	adminRepoPkg "handyhub/database/repository/admin"
	bookingRepoPkg "handyhub/database/repository/booking"
	providerRepoPkg "handyhub/database/repository/provider"
	reviewRepoPkg "handyhub/database/repository/review"
	serviceRepoPkg "handyhub/database/repository/service"
	userRepoPkg "handyhub/database/repository/user"
	"handyhub/handlers"
	"handyhub/middleware"
	"handyhub/routes"
	adminSvc "handyhub/services/admin"
	bookingSvc "handyhub/services/booking"
	catalogSvc "handyhub/services/catalog"
	providerSvc "handyhub/services/provider"
	reviewSvc "handyhub/services/review"
	"handyhub/services/storage"
	userSvc "handyhub/services/user"
	"handyhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	utils.InitializeLogger(cfg.Env)
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	client, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	defer database.Disconnect(client)
	db := client.Database(cfg.DatabaseName)

	authCache := utils.NewAuthCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisAuthDB)

	// repositories
	userRepo := userRepoPkg.NewMongoUserRepo(db)
	providerRepo := providerRepoPkg.NewMongoProviderRepo(db)
	adminRepo := adminRepoPkg.NewMongoAdminRepo(db)
	serviceRepo := serviceRepoPkg.NewMongoServiceRepo(db)
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo(db)
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo(db)
	for name, ensure := range map[string]func() error{
		"users":     userRepo.EnsureIndexes,
		"providers": providerRepo.EnsureIndexes,
		"admins":    adminRepo.EnsureIndexes,
		"services":  serviceRepo.EnsureIndexes,
		"bookings":  bookingRepo.EnsureIndexes,
		"reviews":   reviewRepo.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Fatal("failed to ensure indexes", zap.String("collection", name), zap.Error(err))
		}
	}

	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.AdminJWTSecret)

	storageService, err := storage.NewCloudinaryStorage(
		cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		logger.Warn("cloudinary storage unavailable, image uploads will fail", zap.Error(err))
	}

	// background queue
	enqueuer := cron.NewEnqueuer(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisQueueDB)
	defer enqueuer.Close()

	// services
	userService := &userSvc.DefaultUserService{Repo: userRepo, Tokens: tokens}
	providerService := &providerSvc.DefaultProviderService{Repo: providerRepo, Tokens: tokens}
	adminService := &adminSvc.DefaultAdminService{
		Repo:         adminRepo,
		UserRepo:     userRepo,
		ProviderRepo: providerRepo,
		ServiceRepo:  serviceRepo,
		BookingRepo:  bookingRepo,
		Tokens:       tokens,
	}
	catalogService := &catalogSvc.DefaultCatalogService{
		Repo:        serviceRepo,
		BookingRepo: bookingRepo,
		Storage:     storageService,
	}
	bookingService := &bookingSvc.DefaultBookingService{
		Repo:        bookingRepo,
		ServiceRepo: serviceRepo,
		Reminders:   enqueuer,
		Logger:      logger,
	}
	reviewService := &reviewSvc.DefaultReviewService{
		Repo:         reviewRepo,
		BookingRepo:  bookingRepo,
		ServiceRepo:  serviceRepo,
		ProviderRepo: providerRepo,
		Enqueuer:     enqueuer,
		Logger:       logger,
	}

	cron.InitWorker(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisQueueDB, cron.WorkerDeps{
		Reviews:  reviewService,
		Bookings: bookingRepo,
	})

	// handlers
	bundle := &handlers.HandlerBundle{
		Auth: &handlers.AuthHandler{
			Users:     userService,
			Providers: providerService,
			Admins:    adminService,
		},
		User:     &handlers.UserHandler{Users: userService},
		Provider: &handlers.ProviderHandler{Providers: providerService},
		Service:  &handlers.ServiceHandler{Catalog: catalogService},
		Booking:  &handlers.BookingHandler{Bookings: bookingService},
		Review:   &handlers.ReviewHandler{Reviews: reviewService},
		Admin:    &handlers.AdminHandler{Admins: adminService},
	}

	userGuard := middleware.JWTAuthUserMiddleware(tokens, authCache, userRepo, false)
	providerGuard := middleware.JWTAuthProviderMiddleware(tokens, authCache, providerRepo)
	adminGuard := middleware.JWTAuthAdminMiddleware(tokens, authCache, adminRepo)
	audienceGuards := map[string]gin.HandlerFunc{
		utils.AudienceUser:     userGuard,
		utils.AudienceProvider: providerGuard,
		utils.AudienceAdmin:    adminGuard,
	}
	guards := routes.Guards{
		User:         userGuard,
		UserOptional: middleware.JWTAuthUserMiddleware(tokens, authCache, userRepo, true),
		Provider:     providerGuard,
		Admin:        adminGuard,
		Any:          middleware.JWTAuthAnyMiddleware(tokens, audienceGuards),
		AnyOptional:  middleware.JWTAuthAnyOptionalMiddleware(tokens, audienceGuards),
	}

	router := routes.SetupRouter(cfg, bundle, guards)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: router,
	}
	go func() {
		logger.Info("server listening", zap.String("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
