package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vibescine/cinevibes/internal/config"
	"github.com/vibescine/cinevibes/internal/domain"
	"github.com/vibescine/cinevibes/internal/handler"
	"github.com/vibescine/cinevibes/internal/mailer"
	"github.com/vibescine/cinevibes/internal/moviedata"
	"github.com/vibescine/cinevibes/internal/repository/sqlite"
	"github.com/vibescine/cinevibes/internal/service"
	"github.com/vibescine/cinevibes/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	movieData := moviedata.NewClient(cfg.MovieAPIKey, cfg.MovieAPIBaseURL)
	if !movieData.Enabled() {
		slog.Warn("movie API key not set, search and imports are disabled")
	}

	// Profile pictures go to the object-storage bucket when configured,
	// local disk otherwise. Only disk storage needs the uploads route.
	var pictures domain.PictureStore
	uploadsDir := ""
	if cfg.BucketEnabled() {
		pictures = storage.NewBucketStore(cfg.StorageURL, cfg.StorageServiceKey, cfg.StorageBucket)
		slog.Info("profile pictures stored in bucket", "bucket", cfg.StorageBucket)
	} else {
		disk, err := storage.NewDiskStore(cfg.UploadDir)
		if err != nil {
			slog.Error("failed to prepare upload directory", "error", err)
			os.Exit(1)
		}
		pictures = disk
		uploadsDir = cfg.UploadDir
		slog.Info("profile pictures stored on disk", "dir", cfg.UploadDir)
	}

	var mail mailer.Mailer
	if cfg.MailEnabled() {
		smtp, err := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailSender, cfg.AdminEmail)
		if err != nil {
			slog.Error("failed to configure SMTP", "error", err)
			os.Exit(1)
		}
		mail = smtp
	} else {
		mail = mailer.LogMailer{}
		slog.Warn("SMTP not configured, outgoing mail is logged instead")
	}

	authService := service.NewAuthService(db.Users(), pictures, mail, cfg.JWTSecret, cfg.BcryptCost)
	catalogService := service.NewCatalogService(db.Movies(), db.Reviews(), movieData)
	reviewService := service.NewReviewService(db.Reviews(), db.Movies(), movieData)
	favoriteService := service.NewFavoriteService(db.Favorites(), db.Movies(), movieData)
	historyService := service.NewHistoryService(db.History(), db.Movies())
	requestService := service.NewRequestService(movieData, mail)

	// Five quick login or resend attempts per IP, then one every five seconds.
	loginLimiter := service.NewTokenBucket(0.2, 5)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, catalogService, reviewService, favoriteService,
		historyService, requestService, loginLimiter, cfg.CookieSecure, uploadsDir)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.LogRequests(handler.SecurityHeaders(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
