package main

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/homebase/internal/config"
	"github.com/yukikurage/homebase/internal/constants"
	"github.com/yukikurage/homebase/internal/database"
	"github.com/yukikurage/homebase/internal/football"
	"github.com/yukikurage/homebase/internal/forms"
	"github.com/yukikurage/homebase/internal/handlers"
	"github.com/yukikurage/homebase/internal/logging"
	"github.com/yukikurage/homebase/internal/middleware"
	"github.com/yukikurage/homebase/internal/repository"
	"github.com/yukikurage/homebase/internal/services"
	"github.com/yukikurage/homebase/internal/storage"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.GinMode, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg, logger); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	if err := forms.RegisterValidators(); err != nil {
		logger.Fatal("Failed to register validators", zap.Error(err))
	}

	r := gin.New()
	r.MaxMultipartMemory = constants.MaxUploadBytes
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	store, err := newSessionStore(cfg)
	if err != nil {
		logger.Fatal("Failed to create session store", zap.Error(err))
	}
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	uploader, err := newUploader(cfg)
	if err != nil {
		logger.Fatal("Failed to create uploader", zap.Error(err))
	}
	if cfg.StorageDriver == config.StorageLocal {
		r.StaticFS(strings.TrimRight(cfg.MediaURL, "/"), http.Dir(cfg.MediaRoot))
	}

	db := database.GetDB()
	likeRepo := repository.NewLikeRepository(db)

	authService := services.NewAuthService(repository.NewUserRepository(db), uploader, logger)
	blogService := services.NewBlogService(services.BlogRepositories{
		Posts:      repository.NewPostRepository(db),
		Categories: repository.NewCategoryRepository(db),
		Comments:   repository.NewCommentRepository(db),
		Replies:    repository.NewReplyRepository(db),
		Likes:      likeRepo,
	}, uploader, logger)
	memoService := services.NewMemoService(repository.NewMemoRepository(db), likeRepo)
	scheduleService := services.NewScheduleService(repository.NewEventRepository(db))

	provider := football.NewClient(football.ClientConfig{
		BaseURL: cfg.FootballAPIBaseURL,
		Host:    cfg.FootballAPIHost,
		APIKey:  cfg.FootballAPIKey,
		Timeout: cfg.FootballAPITimeout,
		Logger:  logger.Named("football"),
	})
	leagueService := services.NewLeagueService(provider,
		repository.NewStandingRepository(db),
		repository.NewPlayerRepository(db),
		cfg.FootballSeason,
		logger,
	)

	handlers.RegisterRoutes(r, handlers.Handlers{
		Accounts: handlers.NewAccountHandler(authService, blogService, logger),
		Blog:     handlers.NewBlogHandler(blogService, logger),
		Memo:     handlers.NewMemoHandler(memoService, logger),
		Schedule: handlers.NewScheduleHandler(scheduleService, logger),
		League:   handlers.NewLeagueHandler(leagueService, logger),
	})

	// Start server
	logger.Info("Server starting", zap.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// newSessionStore uses Redis when REDIS_HOST is set and signed cookies otherwise.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	if cfg.RedisHost != "" {
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		rs, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, err
		}
		store = rs
	} else {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

func newUploader(cfg *config.Config) (storage.FileUploader, error) {
	if cfg.StorageDriver == config.StorageS3 {
		return storage.NewS3Uploader(context.Background(), storage.S3UploaderConfig{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			BucketName:      cfg.S3Bucket,
			PublicBaseURL:   cfg.S3PublicBaseURL,
		})
	}
	return storage.NewLocalUploader(cfg.MediaRoot, cfg.MediaURL)
}
