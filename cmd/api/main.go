package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inneranimal/inneranimal-api/internal/config"
	"github.com/inneranimal/inneranimal-api/internal/domain/analytics"
	"github.com/inneranimal/inneranimal-api/internal/domain/asset"
	"github.com/inneranimal/inneranimal-api/internal/domain/billing"
	"github.com/inneranimal/inneranimal-api/internal/domain/chat"
	"github.com/inneranimal/inneranimal-api/internal/domain/forum"
	"github.com/inneranimal/inneranimal-api/internal/domain/project"
	"github.com/inneranimal/inneranimal-api/internal/domain/user"
	"github.com/inneranimal/inneranimal-api/internal/middleware"
	"github.com/inneranimal/inneranimal-api/internal/pkg/database"
	pkgimaging "github.com/inneranimal/inneranimal-api/internal/pkg/imaging"
	"github.com/inneranimal/inneranimal-api/internal/pkg/jwt"
	pkgresponse "github.com/inneranimal/inneranimal-api/internal/pkg/response"
	"github.com/inneranimal/inneranimal-api/internal/pkg/storage"
	"github.com/inneranimal/inneranimal-api/internal/pkg/vision"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting InnerAnimal API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	if redisClient != nil {
		defer database.CloseRedis(redisClient)
	}

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	// ---------- Asset pipeline ----------
	rawStore := newBucketStorage(cfg, cfg.RawBucket)
	optimizedStore := newBucketStorage(cfg, cfg.OptimizedBucket)
	metaStore := newBucketStorage(cfg, cfg.MetaBucket)

	var labeler vision.Labeler
	if cfg.VisionAPIKey != "" {
		gl, err := vision.NewGoogleLabeler(context.Background(), cfg.VisionAPIKey)
		if err != nil {
			log.Warn().Err(err).Msg("Vision labeler unavailable, uploads fall back to category labels")
		} else {
			labeler = gl
		}
	}

	optimizer := pkgimaging.NewOptimizer(pkgimaging.DefaultConfig())
	processor := asset.NewProcessor(rawStore, optimizedStore, metaStore, labeler, optimizer, cfg.PublicBaseURL)

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	projectRepo := project.NewRepository(db)
	forumRepo := forum.NewRepository(db)
	chatRepo := chat.NewRepository(db)
	billingRepo := billing.NewRepository(db)

	// ---------- Services ----------
	userService := user.NewService(userRepo, jwtService)
	tracker := analytics.NewTracker(redisClient)
	defer tracker.Close()

	// ---------- Handlers ----------
	userHandler := user.NewHandler(userService)
	projectHandler := project.NewHandler(projectRepo)
	forumHandler := forum.NewHandler(forumRepo)
	assetHandler := asset.NewHandler(processor)
	chatHandler := chat.NewHandler(chatRepo, chat.ProviderKeys{
		Anthropic: cfg.AnthropicAPIKey,
		OpenAI:    cfg.OpenAIAPIKey,
	})
	billingHandler := billing.NewHandler(billingRepo, cfg.StripeWebhookSecret)
	analyticsHandler := analytics.NewHandler(tracker)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", userHandler.Routes())
		r.Mount("/projects", projectHandler.Routes())
		r.Mount("/forum", forumHandler.Routes(authMiddleware))
		r.Mount("/assets", assetHandler.Routes())
		r.Mount("/ai", chatHandler.Routes(authMiddleware))
		r.Mount("/events", analytics.Routes(analyticsHandler))
	})

	r.Mount("/shared", assetHandler.SharedRoutes())
	r.Mount("/webhooks", billing.Routes(billingHandler))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

// newBucketStorage builds an S3 client for one bucket, or an in-memory store
// when S3 credentials are absent (local development).
func newBucketStorage(cfg *config.Config, bucket string) storage.Storage {
	if cfg.S3AccessKey == "" || cfg.S3SecretKey == "" {
		log.Warn().Str("bucket", bucket).Msg("S3 not configured, using in-memory storage")
		return storage.NewMemoryStorage(cfg.PublicBaseURL + "/" + bucket)
	}

	s3Store, err := storage.NewS3Storage(storage.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    bucket,
	})
	if err != nil {
		log.Fatal().Err(err).Str("bucket", bucket).Msg("Failed to create S3 storage")
	}
	return s3Store
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
