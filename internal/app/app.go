package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"auditionhub_backend/internal/auth"
	"auditionhub_backend/internal/cache"
	"auditionhub_backend/internal/config"
	"auditionhub_backend/internal/database"
	"auditionhub_backend/internal/email"
	"auditionhub_backend/internal/events"
	"auditionhub_backend/internal/handlers"
	"auditionhub_backend/internal/imageprocessor"
	"auditionhub_backend/internal/importers"
	"auditionhub_backend/internal/logger"
	"auditionhub_backend/internal/metrics"
	"auditionhub_backend/internal/middleware"
	"auditionhub_backend/internal/models"
	"auditionhub_backend/internal/repositories"
	"auditionhub_backend/internal/routes"
	"auditionhub_backend/internal/services"
	"auditionhub_backend/internal/services/subscription"
	"auditionhub_backend/internal/storage"
	"auditionhub_backend/internal/validator"
	"auditionhub_backend/internal/workers"
	"auditionhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

// Deps are the external collaborators of the application. Nil fields are
// built from config; tests pass fakes.
type Deps struct {
	Mailer    email.Provider
	Payments  subscription.PaymentProvider
	Publisher events.Publisher
	Redis     *redis.Client
	Storage   storage.Storage
	Sheets    importers.SheetsReader
	Airtable  importers.AirtableReader
}

// Application is a fully wired HTTP stack.
type Application struct {
	Router   *gin.Engine
	Services *services.ServiceContainer
	Notifier *email.Notifier
	Deps     *Deps
}

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	apperrors.SetDebug(cfg.IsDevelopment())
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	application, err := New(cfg, gormDB, nil)
	if err != nil {
		logger.Fatal("Failed to build application", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	startWorkers(ctx, &wg, cfg, gormDB, application)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              address,
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	wg.Wait()
	application.Close()
	_ = sqlDB.Close()
	logger.Info("Server stopped")
}

// SetupRouter builds the gin engine; deps may be nil.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, deps *Deps) *gin.Engine {
	application, err := New(cfg, gormDB, deps)
	if err != nil {
		logger.Fatal("Failed to build application", "error", err)
	}
	return application.Router
}

// New wires services, handlers and routes.
func New(cfg *config.Config, gormDB *gorm.DB, deps *Deps) (*Application, error) {
	deps, err := buildDeps(cfg, deps)
	if err != nil {
		return nil, err
	}

	templates, err := email.NewTemplateManager(cfg.Email.TemplatesDir)
	if err != nil {
		return nil, fmt.Errorf("load email templates: %w", err)
	}
	notifier := email.NewNotifier(deps.Mailer, templates, cfg.App.BaseURL)

	tokens := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute, cfg.JWT.Issuer)

	// 1. Services
	serviceContainer := initializeServices(cfg, deps, tokens, notifier)

	// 2. Handlers
	rateLimiter := middleware.NewRateLimiter(
		deps.Redis,
		"auditionhub:ratelimit",
		cfg.RateLimit.Requests,
		time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
	)
	appHandlers := initializeHandlers(serviceContainer, deps.Storage, middleware.RateLimitMiddleware(rateLimiter))

	// 3. Gin
	ginRouter := initializeGinRouter(cfg, gormDB)

	// 4. Routes
	routes.RegisterRoutes(ginRouter, appHandlers, middleware.AuthMiddleware(tokens))

	return &Application{
		Router:   ginRouter,
		Services: serviceContainer,
		Notifier: notifier,
		Deps:     deps,
	}, nil
}

// Close releases the connections opened by buildDeps.
func (a *Application) Close() {
	if err := a.Deps.Publisher.Close(); err != nil {
		logger.Warn("event publisher close failed", "error", err.Error())
	}
	if err := a.Deps.Mailer.Close(); err != nil {
		logger.Warn("mailer close failed", "error", err.Error())
	}
	if a.Deps.Redis != nil {
		_ = a.Deps.Redis.Close()
	}
}

func buildDeps(cfg *config.Config, in *Deps) (*Deps, error) {
	deps := &Deps{}
	if in != nil {
		*deps = *in
	}

	if deps.Redis == nil {
		deps.Redis = cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if deps.Redis == nil && cfg.Redis.Addr != "" {
			logger.Warn("Redis unavailable, caching and shared rate limits disabled", "addr", cfg.Redis.Addr)
		}
	}

	if deps.Mailer == nil {
		if cfg.Email.SMTPHost != "" {
			smtp := email.DefaultConfig()
			smtp.Host = cfg.Email.SMTPHost
			smtp.Port = cfg.Email.SMTPPort
			smtp.Username = cfg.Email.SMTPUsername
			smtp.Password = cfg.Email.SMTPPassword
			if cfg.Email.FromEmail != "" {
				smtp.FromEmail = cfg.Email.FromEmail
			}
			smtp.FromName = cfg.Email.FromName

			provider := email.NewSMTPProvider(smtp)
			if err := provider.Validate(); err != nil {
				return nil, fmt.Errorf("smtp config: %w", err)
			}
			deps.Mailer = provider
		} else {
			logger.Warn("SMTP is not configured, emails are only logged")
			deps.Mailer = email.NewLogProvider()
		}
	}

	// A typed nil would make the interface non-nil, so assign only real providers.
	if deps.Payments == nil {
		stripeService := subscription.NewStripeService(subscription.StripeConfig{
			SecretKey:     cfg.Stripe.SecretKey,
			WebhookSecret: cfg.Stripe.WebhookSecret,
			SuccessURL:    cfg.Stripe.SuccessURL,
			CancelURL:     cfg.Stripe.CancelURL,
		})
		if stripeService != nil {
			deps.Payments = stripeService
		} else {
			logger.Warn("Stripe is not configured, checkout is disabled")
		}
	}

	if deps.Sheets == nil {
		if reader := importers.NewGoogleSheetsReader(cfg.Google.CredentialsJSON, cfg.Google.CredentialsFile); reader != nil {
			deps.Sheets = reader
		}
	}
	if deps.Airtable == nil {
		deps.Airtable = importers.NewAirtableClient()
	}

	if deps.Publisher == nil {
		if cfg.RabbitMQ.URL != "" {
			deps.Publisher = events.NewRabbitPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue)
		} else {
			deps.Publisher = events.NoopPublisher{}
		}
	}

	if deps.Storage == nil {
		store, err := storage.NewStorage(storage.Config{
			Type:       cfg.Storage.Type,
			BasePath:   cfg.Storage.BasePath,
			BaseURL:    cfg.Storage.BaseURL,
			Bucket:     cfg.Storage.Bucket,
			Region:     cfg.Storage.Region,
			AccessKey:  cfg.Storage.AccessKey,
			SecretKey:  cfg.Storage.SecretKey,
			Endpoint:   cfg.Storage.Endpoint,
			UseSSL:     cfg.Storage.UseSSL,
			PublicRead: cfg.Storage.PublicRead,
		})
		if err != nil {
			return nil, fmt.Errorf("initialize storage: %w", err)
		}
		deps.Storage = store
		logger.Info("Storage initialized", "type", cfg.Storage.Type)
	}

	return deps, nil
}

func initializeServices(cfg *config.Config, deps *Deps, tokens *auth.TokenManager, notifier *email.Notifier) *services.ServiceContainer {
	responseCache := cache.New(deps.Redis, "auditionhub")

	// --- Repositories ---
	userRepo := repositories.NewUserRepository()
	refreshTokenRepo := repositories.NewRefreshTokenRepository()
	subscriptionRepo := repositories.NewSubscriptionRepository()
	actorRepo := repositories.NewActorRepository()
	auditionRepo := repositories.NewAuditionRepository()
	expenseRepo := repositories.NewExpenseRepository()
	contactRepo := repositories.NewContactRepository()
	bookingRepo := repositories.NewBookingRepository()
	emailRepo := repositories.NewEmailRepository()
	uploadRepo := repositories.NewUploadRepository()

	// --- Services ---
	bookingService := services.NewBookingService(bookingRepo)
	plans := subscription.Plans(cfg.Stripe.PremiumMonthlyPrice, cfg.Stripe.PremiumAnnualPrice)

	return &services.ServiceContainer{
		AuthService: services.NewAuthService(
			userRepo,
			refreshTokenRepo,
			subscriptionRepo,
			emailRepo,
			tokens,
			notifier,
			time.Duration(cfg.JWT.RefreshTTLDays)*24*time.Hour,
			cfg.JWT.Issuer,
			cfg.Email.InboundDomain,
		),
		ProfileService:      services.NewProfileService(userRepo),
		ActorService:        services.NewActorService(actorRepo, subscriptionRepo),
		AuditionService:     services.NewAuditionService(auditionRepo, actorRepo, subscriptionRepo, deps.Publisher, responseCache),
		ExpenseService:      services.NewExpenseService(expenseRepo, auditionRepo, responseCache),
		ContactService:      services.NewContactService(contactRepo),
		BookingService:      bookingService,
		SubscriptionService: services.NewSubscriptionService(subscriptionRepo, userRepo, bookingRepo, bookingService, deps.Payments, plans),
		EmailService:        services.NewEmailService(emailRepo, auditionRepo, responseCache, cfg.Email.InboundDomain, cfg.Email.WebhookSecret),
		ImportService:       services.NewImportService(auditionRepo, deps.Sheets, deps.Airtable, responseCache),
		AnalyticsService:    services.NewAnalyticsService(auditionRepo, expenseRepo, actorRepo, responseCache),
		UploadService: services.NewUploadService(
			uploadRepo,
			actorRepo,
			auditionRepo,
			expenseRepo,
			deps.Storage,
			imageprocessor.NewProcessor(cfg.Upload.ImageQuality),
			services.UploadLimits{
				MaxImageSize: cfg.Upload.MaxImageSize,
				MaxPDFSize:   cfg.Upload.MaxPDFSize,
				MaxVideoSize: cfg.Upload.MaxVideoSize,
			},
		),
		AdminService: services.NewAdminService(userRepo),
	}
}

func initializeHandlers(services *services.ServiceContainer, store storage.Storage, rateLimit gin.HandlerFunc) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, services.AuthService, rateLimit),
		ProfileHandler:      handlers.NewProfileHandler(baseHandler, services.ProfileService),
		ActorHandler:        handlers.NewActorHandler(baseHandler, services.ActorService),
		AuditionHandler:     handlers.NewAuditionHandler(baseHandler, services.AuditionService),
		ExpenseHandler:      handlers.NewExpenseHandler(baseHandler, services.ExpenseService),
		ContactHandler:      handlers.NewContactHandler(baseHandler, services.ContactService),
		BookingHandler:      handlers.NewBookingHandler(baseHandler, services.BookingService),
		SubscriptionHandler: handlers.NewSubscriptionHandler(baseHandler, services.SubscriptionService),
		EmailHandler:        handlers.NewEmailHandler(baseHandler, services.EmailService),
		ImportHandler:       handlers.NewImportHandler(baseHandler, services.ImportService),
		AnalyticsHandler:    handlers.NewAnalyticsHandler(baseHandler, services.AnalyticsService),
		UploadHandler:       handlers.NewUploadHandler(baseHandler, services.UploadService),
		FileHandler:         handlers.NewFileHandler(baseHandler, store),
		AdminHandler:        handlers.NewAdminHandler(baseHandler, services.AdminService),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(metrics.Middleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// startWorkers launches the background loops; they exit when ctx is cancelled.
func startWorkers(ctx context.Context, wg *sync.WaitGroup, cfg *config.Config, db *gorm.DB, a *Application) {
	userRepo := repositories.NewUserRepository()

	if cfg.RabbitMQ.URL != "" {
		consumer := events.NewConsumer(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, workers.NewStatusNotifier(db, userRepo, a.Notifier))
		wg.Add(1)
		go func() {
			defer wg.Done()
			consumer.Run(ctx)
		}()
	}

	if !cfg.Workers.Enabled {
		logger.Info("Background workers disabled")
		return
	}

	reminders := workers.NewReminderWorker(
		db,
		repositories.NewAuditionRepository(),
		userRepo,
		a.Notifier,
		time.Duration(cfg.Workers.ReminderIntervalMin)*time.Minute,
	)
	expiry := workers.NewSubscriptionWorker(
		db,
		a.Services.SubscriptionService,
		repositories.NewRefreshTokenRepository(),
		time.Duration(cfg.Workers.SubscriptionIntervalMin)*time.Minute,
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		reminders.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		expiry.Run(ctx)
	}()
}

// seedFirstAdmin creates the configured admin account once.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := strings.ToLower(strings.TrimSpace(cfg.App.FirstAdminEmail))
	if adminEmail == "" || cfg.App.FirstAdminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is empty, skipping admin seed")
		return nil
	}

	userRepo := repositories.NewUserRepository()
	subscriptionRepo := repositories.NewSubscriptionRepository()

	return db.Transaction(func(tx *gorm.DB) error {
		_, err := userRepo.FindByEmail(tx, adminEmail)
		if err == nil {
			logger.Info("Admin user already exists", "email", adminEmail)
			return nil
		}
		if !errors.Is(err, repositories.ErrUserNotFound) {
			return fmt.Errorf("lookup admin: %w", err)
		}

		hash, err := auth.HashPassword(cfg.App.FirstAdminPassword)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}

		admin := &models.User{
			Email:        adminEmail,
			PasswordHash: hash,
			Name:         "Administrator",
			Role:         models.UserRoleAdmin,
		}
		if err := userRepo.Create(tx, admin); err != nil {
			return fmt.Errorf("create admin: %w", err)
		}

		if err := subscriptionRepo.Create(tx, &models.Subscription{
			UserID:    admin.ID,
			Tier:      models.SubscriptionTierFree,
			Status:    models.SubscriptionStatusActive,
			StartDate: time.Now().UTC(),
		}); err != nil {
			return fmt.Errorf("create admin subscription: %w", err)
		}

		logger.Info("First admin user created", "email", adminEmail)
		return nil
	})
}
