package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"thewall/internal/cache"
	"thewall/internal/config"
	"thewall/internal/database"
	"thewall/internal/handler"
	"thewall/internal/logger"
	"thewall/internal/queue"
	"thewall/internal/redis"
	"thewall/internal/repository"
	"thewall/internal/service"
	transporthttp "thewall/internal/transport/http"
	"thewall/internal/worker"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	NoWorkers bool
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API until SIGINT or SIGTERM.

When REDIS_URL is set the wall snapshot cache and the event workers are
started as well. Pending migrations are applied first unless
DB_AUTO_MIGRATE=false.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.NoWorkers, "no-workers", false, "do not start the event workers even when Redis is configured")

	return cmd
}

func runServe(ctx context.Context, opts *ServeOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, database.MigrateUp, log); err != nil {
			return err
		}
	}

	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	userRepo := repository.NewUserRepository(db)

	var (
		wallCache cache.WallCache
		publisher queue.Publisher
	)
	if cfg.Redis.URL != "" {
		client, err := redis.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, serving without wall cache and events")
		} else {
			defer client.Close()
			wallCache = cache.NewWallCache(client.Client, cfg.Redis.WallCacheTTL)
			publisher = queue.NewPublisher(client.Client, log)

			if !opts.NoWorkers {
				manager, err := startWorkers(ctx, cfg.Redis, client, wallCache, postRepo, log)
				if err != nil {
					return err
				}
				defer manager.Stop()
			}
		}
	}

	contentService := service.NewContentService(postRepo, commentRepo, wallCache, publisher, log)
	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(cfg.Auth)

	router := transporthttp.NewRouter(transporthttp.RouterConfig{
		AuthHandler:    handler.NewAuthHandler(userService, authService, cfg.Auth, log),
		WallHandler:    handler.NewWallHandler(contentService, log),
		PostHandler:    handler.NewPostHandler(contentService, log),
		CommentHandler: handler.NewCommentHandler(contentService, log),
		TokenVerifier:  authService,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         log,
	})

	logStartup(log, cfg, db, wallCache != nil)
	return transporthttp.NewServer(cfg.Server, router, log).Run(ctx)
}

func startWorkers(ctx context.Context, cfg config.RedisConfig, client *redis.Client, wallCache cache.WallCache, source worker.WallSource, log zerolog.Logger) (*worker.Manager, error) {
	h := worker.NewHandler(wallCache, source, log)
	mcfg := worker.DefaultManagerConfig()
	mcfg.WorkerCount = cfg.WorkerCount

	manager := worker.NewManager(queue.NewConsumer(client.Client, log), h, mcfg, log)
	if err := manager.Start(ctx); err != nil {
		return nil, fmt.Errorf("start workers: %w", err)
	}
	return manager, nil
}

func logStartup(log zerolog.Logger, cfg *config.Config, db *sqlx.DB, cached bool) {
	log.Info().
		Str("port", cfg.Server.Port).
		Str("db_driver", db.DriverName()).
		Bool("wall_cache", cached).
		Msg("thewall ready")
}
