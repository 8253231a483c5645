package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-portal/config"
	"hospital-portal/internal/delivery/dto"
	deliveryHttp "hospital-portal/internal/delivery/http"
	"hospital-portal/internal/delivery/http/handler"
	"hospital-portal/internal/delivery/http/middleware"
	"hospital-portal/internal/infrastructure/cache"
	"hospital-portal/internal/infrastructure/database"
	"hospital-portal/internal/infrastructure/mail"
	"hospital-portal/internal/infrastructure/storage"
	"hospital-portal/internal/repository"
	"hospital-portal/internal/service"
	"hospital-portal/internal/usecase"
	"hospital-portal/pkg/jwt"
	"hospital-portal/pkg/validator"
	"hospital-portal/pkg/whatsapp"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// App holds all dependencies for the application
type App struct {
	Config        *config.Config
	DB            *gorm.DB
	RedisClient   *redis.Client
	Server        *http.Server
	Store         *repository.DocumentStore
	Dashboard     *service.DashboardController
	Directory     *service.DirectoryService
	Notifications *service.NotificationService
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	setupLogger(cfg.App.LogLevel)
	logrus.Info("Configuration loaded successfully")

	if cfg.DB.RunMigrations {
		if err := database.RunMigrations(cfg.DB); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	if err := app.initialize(); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// initialize wires stores, services and the HTTP server
func (app *App) initialize() error {
	cfg := app.Config
	log := logrus.StandardLogger()
	location := cfg.App.Location()

	// Initialize stores
	app.Store = repository.NewDocumentStore(app.DB, app.RedisClient, log)
	blobStore, err := storage.NewCloudinaryStore(cfg.Cloudinary, log)
	if err != nil {
		return fmt.Errorf("failed to initialize blob store: %w", err)
	}
	accountRepo := repository.NewPatientAccountRepository()

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize services
	links := whatsapp.NewComposer(cfg.Site.MessagingHost, cfg.Site.HospitalName)
	auditService := service.NewAuditService(app.Store, log)

	app.Dashboard = service.NewDashboardController(app.Store, auditService, links, location, log)
	if err := app.Dashboard.Start(context.Background()); err != nil {
		return fmt.Errorf("failed to start dashboard: %w", err)
	}

	app.Directory = service.NewDirectoryService(app.Store, log)
	app.Directory.Start(context.Background())

	mailer := mail.NewMailer(cfg.SMTP)
	app.Notifications = service.NewNotificationService(mailer, app.Dashboard, cfg.Site.HospitalName, cfg.SMTP.AdminInbox, cfg.Site.DigestSchedule, log)
	if err := app.Notifications.Start(); err != nil {
		return fmt.Errorf("failed to start notifications: %w", err)
	}

	// Initialize usecases
	display := cfg.Site.ConfirmationDisplay
	authUsecase := usecase.NewAuthUsecase(app.DB, log, accountRepo, jwtService, app.RedisClient, cfg.Admin)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, app.Store, blobStore, app.Notifications, display)
	messageUsecase := usecase.NewMessageUsecase(log, app.Store, cfg.Site.DefaultCountryCode, display)
	doctorUsecase := usecase.NewDoctorUsecase(log, app.Store, auditService, display)
	patientUsecase := usecase.NewPatientUsecase(log, app.Store, auditService, display)
	healthRecordUsecase := usecase.NewHealthRecordUsecase(log, app.Store, blobStore)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, app.Store)

	// Each dashboard stream gets a controller of its own
	newLiveDashboard := func() handler.LiveDashboard {
		return service.NewDashboardController(app.Store, auditService, links, location, log)
	}

	// Initialize handlers
	paymentQR := dto.PaymentQRResponse{QRCodeURL: cfg.Site.PaymentQRURL, Payee: cfg.Site.PaymentPayee}
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator, paymentQR)
	messageHandler := handler.NewMessageHandler(messageUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, app.Directory, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, authUsecase, healthRecordUsecase, customValidator)
	healthRecordHandler := handler.NewHealthRecordHandler(healthRecordUsecase)
	dashboardHandler := handler.NewDashboardHandler(app.Dashboard, newLiveDashboard, customValidator, log)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, app.RedisClient)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		appointmentHandler,
		messageHandler,
		doctorHandler,
		patientHandler,
		healthRecordHandler,
		dashboardHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
	)

	// Create server; no write timeout so dashboard streams stay open
	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return nil
}

// Run serves HTTP until SIGINT/SIGTERM, then shuts down gracefully
func (app *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return app.waitForShutdown(gctx)
	})

	err := g.Wait()
	app.Close()
	logrus.Info("Server shutdown complete")
	return err
}

// waitForShutdown blocks until ctx ends, then stops the HTTP server
func (app *App) waitForShutdown(ctx context.Context) error {
	<-ctx.Done()
	logrus.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
		return err
	}
	return nil
}

// Close stops background work and closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.Notifications != nil {
		app.Notifications.Stop()
	}
	if app.Dashboard != nil {
		app.Dashboard.Close()
	}
	if app.Directory != nil {
		app.Directory.Close()
	}
	if app.Store != nil {
		app.Store.Close()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
