package http

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mural/internal/config"
	"mural/internal/database"
	"mural/internal/handler"
	"mural/internal/logger"
	"mural/internal/redis"
	"mural/internal/repository"
	"mural/internal/service"
)

// Run wires the whole application together and serves until interrupted.
func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(cfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = redis.NewClient(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer rdb.Close()
		if err := rdb.Ping(context.Background()); err != nil {
			return err
		}
	} else {
		logger.S.Warn("REDIS_URL not set, rate limiting disabled")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	followRepo := repository.NewFollowRepository(db)

	// Services
	sessions := service.NewSessionService(cfg)
	mediaService, err := service.NewMediaService(context.Background(), cfg, mediaRepo, userRepo)
	if err != nil {
		return fmt.Errorf("init media service: %w", err)
	}
	reactionService := service.NewReactionService(reactionRepo, postRepo, commentRepo)
	postService := service.NewPostService(postRepo, mediaRepo, mediaService, reactionService, db)
	commentService := service.NewCommentService(commentRepo, postRepo, userRepo, reactionService)
	userService := service.NewUserService(userRepo, followRepo, mediaService)
	followService := service.NewFollowService(followRepo, userRepo)

	router := NewRouter(RouterConfig{
		AuthHandler:     handler.NewAuthHandler(userService, sessions),
		UserHandler:     handler.NewUserHandler(userService, postService, followService, sessions),
		PostHandler:     handler.NewPostHandler(postService),
		CommentHandler:  handler.NewCommentHandler(commentService),
		ReactionHandler: handler.NewReactionHandler(reactionService),
		MediaHandler:    handler.NewMediaHandler(mediaService),

		Sessions:           sessions,
		Redis:              rdb,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		AllowedOrigins:     cfg.CORSAllowedOrigins,
	})

	srv := &stdhttp.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.S.Infow("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case sig := <-quit:
		logger.S.Infow("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.S.Info("server stopped")
	return nil
}
