package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/carelink/healthcare-api/internal/config"
	"github.com/carelink/healthcare-api/internal/handler"
	authHandler "github.com/carelink/healthcare-api/internal/handler/auth"
	doctorHandler "github.com/carelink/healthcare-api/internal/handler/doctor"
	mappingHandler "github.com/carelink/healthcare-api/internal/handler/mapping"
	patientHandler "github.com/carelink/healthcare-api/internal/handler/patient"
	"github.com/carelink/healthcare-api/internal/middleware"
	"github.com/carelink/healthcare-api/internal/repository/postgres"
	"github.com/carelink/healthcare-api/internal/router"
	authService "github.com/carelink/healthcare-api/internal/service/auth"
	doctorService "github.com/carelink/healthcare-api/internal/service/doctor"
	mappingService "github.com/carelink/healthcare-api/internal/service/mapping"
	patientService "github.com/carelink/healthcare-api/internal/service/patient"
	"github.com/carelink/healthcare-api/pkg/auth"
	"github.com/carelink/healthcare-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	mappingRepo := postgres.NewMappingRepository(db)

	// Services
	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:             cfg.JWT.Secret,
		RefreshSecret:      cfg.JWT.RefreshSecret,
		ExpiryMinutes:      cfg.JWT.ExpiryMinutes,
		RefreshExpiryHours: cfg.JWT.RefreshExpiryHours,
	})
	hasher := security.NewBcryptHasher(cfg.Bcrypt.Cost)
	authSvc := authService.NewService(userRepo, jwtSvc, hasher)
	patientSvc := patientService.NewService(patientRepo)
	doctorSvc := doctorService.NewService(doctorRepo)
	mappingSvc := mappingService.NewService(mappingRepo, patientRepo, doctorRepo)

	// Handlers
	h := handler.NewHandler(db)
	authH := authHandler.NewHandler(authSvc)
	patientH := patientHandler.NewHandler(patientSvc)
	doctorH := doctorHandler.NewHandler(doctorSvc)
	mappingH := mappingHandler.NewHandler(mappingSvc)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	r := router.NewRouter(authMiddleware, authH, patientH, doctorH, mappingH, h, router.Config{
		RateLimitEnabled: cfg.RateLimit.Enabled,
		RateLimitRPS:     cfg.RateLimit.RPS,
		RateLimitBurst:   cfg.RateLimit.Burst,
		CORS:             corsConfig(cfg),
	})
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	return corsCfg
}
