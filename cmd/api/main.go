package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/agendamento-backend/docs"
	httphandlers "github.com/rafabene/agendamento-backend/internal/handlers/http"
	"github.com/rafabene/agendamento-backend/internal/handlers/dto"
	"github.com/rafabene/agendamento-backend/internal/handlers/middleware"
	"github.com/rafabene/agendamento-backend/internal/infrastructure/auth"
	"github.com/rafabene/agendamento-backend/internal/infrastructure/config"
	"github.com/rafabene/agendamento-backend/internal/infrastructure/i18n"
	"github.com/rafabene/agendamento-backend/internal/infrastructure/logging"
	"github.com/rafabene/agendamento-backend/internal/infrastructure/persistence/gormdb"
	"github.com/rafabene/agendamento-backend/internal/infrastructure/realtime"
	"github.com/rafabene/agendamento-backend/internal/infrastructure/seed"
	"github.com/rafabene/agendamento-backend/internal/services"
)

//	@title						Agendamento API
//	@version					1.0
//	@description				API de marcação de consultas médicas
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer <JWT>
func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting agendamento backend",
		"env", cfg.Env,
		"version", docs.SwaggerInfo.Version,
	)

	// Conectar ao banco de dados
	db, err := gormdb.NewDatabaseConnection(&cfg.Database, cfg.IsProduction(), logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}

	// Inicializar i18n
	i18nService, err := i18n.NewService(cfg.I18n.LocalesDir, cfg.I18n.DefaultLanguage)
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	// Inicializar repositories
	userRepo := gormdb.NewUserRepository(db)
	specialtyRepo := gormdb.NewSpecialtyRepository(db)
	doctorRepo := gormdb.NewDoctorRepository(db)
	appointmentRepo := gormdb.NewAppointmentRepository(db)
	uow := gormdb.NewUnitOfWork(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.Seed {
		seeded, err := seed.NewSeeder(userRepo, specialtyRepo, doctorRepo, appointmentRepo, uow, logger).Run(ctx)
		if err != nil {
			logger.Error("failed to seed database", "error", err)
			log.Fatal(err)
		}
		logger.Info("seed finished", "seeded", seeded)
	}

	// Tempo real
	hub := realtime.NewHub(logger, middleware.OriginChecker(cfg.CORS.AllowedOrigins))
	go hub.Run(ctx)
	publisher := dto.NewAppointmentEventPresenter(hub)

	// Inicializar services
	tokens := auth.NewJWTIssuer(cfg.JWT.Secret, cfg.JWT.AccessExpiry)
	google := auth.NewGoogleProvider(cfg.OAuth.GoogleClientID, cfg.OAuth.GoogleClientSecret, cfg.OAuth.GoogleCallbackURL)

	userService := services.NewUserService(userRepo, appointmentRepo, uow, logger)
	specialtyService := services.NewSpecialtyService(specialtyRepo, uow, logger)
	doctorService := services.NewDoctorService(doctorRepo, specialtyRepo, appointmentRepo, uow, logger)
	appointmentService := services.NewAppointmentService(appointmentRepo, doctorRepo, uow, publisher, logger)
	exportService := services.NewExportService(appointmentService)
	authService := services.NewAuthService(userRepo, google, tokens, uow, logger)

	if cfg.Reminder.Enabled {
		reminders := services.NewReminderService(appointmentRepo, publisher, logger, cfg.Reminder.LeadTime)
		scheduler, err := reminders.Start(ctx, cfg.Reminder.Interval)
		if err != nil {
			logger.Error("failed to start reminders", "error", err)
			log.Fatal(err)
		}
		defer scheduler.Stop()
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	go rateLimiter.Run(ctx)

	// Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := httphandlers.NewRouter(httphandlers.RouterDeps{
		BaseURL:        cfg.Server.BaseURL,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		I18n:           i18nService,
		Auth:           middleware.NewAuthMiddleware(authService),
		RateLimiter:    rateLimiter,
		Users:          httphandlers.NewUserHandler(userService, logger),
		Specialties:    httphandlers.NewSpecialtyHandler(specialtyService, logger),
		Doctors:        httphandlers.NewDoctorHandler(doctorService, logger),
		Appointments:   httphandlers.NewAppointmentHandler(appointmentService, exportService, logger),
		Login:          httphandlers.NewAuthHandler(authService, cfg.Server.FrontendURL, cfg.IsProduction(), logger),
		Realtime:       httphandlers.NewRealtimeHandler(hub, logger),
	})

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("server exited")
}
