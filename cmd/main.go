package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/EldritchWeaver/MatchPoint/config"
	"github.com/EldritchWeaver/MatchPoint/db"
	"github.com/EldritchWeaver/MatchPoint/handlers"
	"github.com/EldritchWeaver/MatchPoint/live"
	"github.com/EldritchWeaver/MatchPoint/repositories"
	"github.com/EldritchWeaver/MatchPoint/routes"
	"github.com/EldritchWeaver/MatchPoint/services"
	"github.com/EldritchWeaver/MatchPoint/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Open(cfg.DatabasePath, 5*time.Second)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()
	logger.Info("database ready", slog.String("path", cfg.DatabasePath))

	// Media uploads are optional: without R2 credentials the endpoints
	// answer 503 and everything else works.
	var uploader storage.FileUploader
	if cfg.R2Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("media storage disabled, R2 credentials not set")
	}

	hub := live.NewHub(logger)
	go hub.Run()

	userRepo := repositories.NewSQLiteUserRepository(dbConn)
	teamRepo := repositories.NewSQLiteTeamRepository(dbConn)
	memberRepo := repositories.NewSQLiteMemberRepository(dbConn)
	tournamentRepo := repositories.NewSQLiteTournamentRepository(dbConn)
	inscriptionRepo := repositories.NewSQLiteInscriptionRepository(dbConn)
	paymentRepo := repositories.NewSQLitePaymentRepository(dbConn)
	matchRepo := repositories.NewSQLiteMatchRepository(dbConn)

	userService := services.NewUserService(userRepo)
	authService := services.NewAuthService(userRepo, cfg.JWTSecretKey, cfg.TokenTTL)
	teamService := services.NewTeamService(dbConn, teamRepo, userRepo, memberRepo, uploader)
	memberService := services.NewMemberService(dbConn, memberRepo, teamRepo, userRepo)
	tournamentService := services.NewTournamentService(
		dbConn,
		tournamentRepo,
		userRepo,
		inscriptionRepo,
		paymentRepo,
		matchRepo,
		uploader,
		hub,
		logger,
	)
	inscriptionService := services.NewInscriptionService(inscriptionRepo)
	paymentService := services.NewPaymentService(paymentRepo)
	matchService := services.NewMatchService(matchRepo, hub, logger)

	userHandler := handlers.NewUserHandler(userService, authService, logger)
	teamHandler := handlers.NewTeamHandler(teamService, logger)
	memberHandler := handlers.NewMemberHandler(memberService, logger)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService, logger)
	inscriptionHandler := handlers.NewInscriptionHandler(inscriptionService, logger)
	paymentHandler := handlers.NewPaymentHandler(paymentService, logger)
	matchHandler := handlers.NewMatchHandler(matchService, logger)
	liveHandler := handlers.NewLiveHandler(hub, tournamentService, logger)

	router := chi.NewRouter()
	routes.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		userHandler,
		teamHandler,
		memberHandler,
		tournamentHandler,
		inscriptionHandler,
		paymentHandler,
		matchHandler,
		liveHandler,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
}
