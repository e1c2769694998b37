package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/filevault/internal"
	"github.com/dmitrymomot/filevault/internal/auth"
	"github.com/dmitrymomot/filevault/internal/config"
	"github.com/dmitrymomot/filevault/internal/emails"
	"github.com/dmitrymomot/filevault/internal/files"
	"github.com/dmitrymomot/filevault/internal/migrations"
	"github.com/dmitrymomot/filevault/internal/stats"
	"github.com/dmitrymomot/filevault/internal/users"
	"github.com/dmitrymomot/filevault/middlewares"
	"github.com/dmitrymomot/filevault/pkg/cache"
	"github.com/dmitrymomot/filevault/pkg/db"
	"github.com/dmitrymomot/filevault/pkg/health"
	"github.com/dmitrymomot/filevault/pkg/job"
	"github.com/dmitrymomot/filevault/pkg/logger"
	"github.com/dmitrymomot/filevault/pkg/mailer"
	"github.com/dmitrymomot/filevault/pkg/mailer/resend"
	"github.com/dmitrymomot/filevault/pkg/redis"
	"github.com/dmitrymomot/filevault/pkg/storage"
)

const setupTimeout = 30 * time.Second

var errRedisDisabled = errors.New("redis is not configured")

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log,
		middlewares.RequestIDExtractor(),
		middlewares.UserIDExtractor(),
	)

	if err := run(cfg, log); err != nil {
		log.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	pool, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	// River's tables must exist before the job manager starts.
	if err := db.Migrate(ctx, pool, migrations.FS, cfg.DB.MigrationsTable, log); err != nil {
		return err
	}
	if err := job.Migrate(ctx, pool); err != nil {
		return err
	}

	var (
		rdb        goredis.UniversalClient
		tokenStore cache.Cache[string]
		statsCache cache.Cache[stats.Stats]
		redisCheck health.CheckFunc = func(context.Context) error { return errRedisDisabled }
	)
	switch cfg.TokenStore {
	case config.TokenStoreRedis:
		rdb, err = redis.Open(ctx, cfg.Redis.ConnectionURL())
		if err != nil {
			return err
		}
		tokenStore = cache.NewRedis[string](rdb, cache.Raw{})
		statsCache = cache.NewRedis[stats.Stats](rdb, cache.JSON[stats.Stats]{}, cache.WithPrefix("filevault:"))
		redisCheck = redis.Healthcheck(rdb)
	default:
		log.Warn("using in-memory token store, tokens are lost on restart")
		tokenStore = cache.NewMemory[string]()
		statsCache = cache.NewMemory[stats.Stats]()
	}

	store, err := storage.Open(cfg.Storage)
	if err != nil {
		return err
	}

	var sender mailer.Sender = mailer.NewLogSender(log)
	if cfg.Resend.Enabled() {
		sender = resend.New(cfg.Resend)
	}
	mail := mailer.New(sender, mailer.NewRenderer(emails.FS), cfg.Mailer)

	userRepo := users.NewRepository(pool)
	fileRepo := files.NewRepository(pool)

	// Stats is needed by the scheduled report before the manager exists.
	statsSvc := stats.NewService(userRepo, fileRepo, statsCache, cfg.StatsCacheTTL)

	jobs, err := job.NewManager(pool,
		job.WithLogger(log),
		job.WithMaxWorkers(cfg.Jobs.MaxWorkers),
		job.WithQueue(files.ThumbnailQueue, cfg.Jobs.FilesWorkers),
		job.WithQueue(users.WelcomeQueue, cfg.Jobs.UsersWorkers),
		job.WithTask[files.ThumbnailPayload](files.NewThumbnailTask(fileRepo, store, log)),
		job.WithTask[users.WelcomePayload](users.NewWelcomeTask(userRepo, mail, log)),
		job.WithScheduledTask(stats.NewReportTask(statsSvc, cfg.StatsSchedule, log)),
	)
	if err != nil {
		return err
	}

	tokens := auth.NewTokens(tokenStore, auth.WithTTL(cfg.TokenTTL))
	userSvc := users.NewService(pool, jobs)
	fileSvc := files.NewService(fileRepo, store, jobs, files.WithLogger(log))

	app := internal.New(
		internal.WithLogger(log),
		internal.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Logging(),
			middlewares.Recover(),
			middlewares.Timeout(cfg.RequestTimeout),
		),
		internal.WithErrorHandler(middlewares.JSONErrorHandler()),
		internal.WithNotFoundHandler(func(internal.Context) error {
			return internal.ErrNotFound("Not found")
		}),
		internal.WithHealthChecks(
			internal.WithReadinessCheck("db", db.Healthcheck(pool)),
			internal.WithReadinessCheck("jobs", job.Healthcheck(jobs)),
		),
		internal.WithJobs(jobs),
		internal.WithHandlers(
			auth.NewHandler(tokens, userSvc),
			users.NewHandler(userSvc, tokens),
			files.NewHandler(fileSvc, tokens),
			stats.NewHandler(statsSvc, health.Checks{
				"redis": redisCheck,
				"db":    db.Healthcheck(pool),
			}, health.WithLogger(log)),
		),
	)

	opts := []internal.RunOption{
		internal.Logger(log),
		internal.ShutdownHook(db.Shutdown(pool)),
		internal.ShutdownHook(logger.Flush(2 * time.Second)),
	}
	if rdb != nil {
		opts = append(opts, internal.ShutdownHook(redis.Shutdown(rdb)))
	}

	log.Info("starting filevault", "addr", cfg.Addr(), "token_store", cfg.TokenStore)
	return app.Run(cfg.Addr(), opts...)
}
