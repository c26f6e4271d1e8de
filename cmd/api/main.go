// @title        Alumni Directory API
// @version      1.0
// @description  Cohort, alumni and project directory with a GitHub OAuth relay.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/codecohort/alumni-directory/internal/api"
	"github.com/codecohort/alumni-directory/internal/core/ports"
	"github.com/codecohort/alumni-directory/internal/core/service"
	"github.com/codecohort/alumni-directory/internal/infrastructure/config"
	"github.com/codecohort/alumni-directory/internal/infrastructure/db/memory"
	"github.com/codecohort/alumni-directory/internal/infrastructure/db/mongo"
	"github.com/codecohort/alumni-directory/internal/infrastructure/db/redis"
	"github.com/codecohort/alumni-directory/internal/infrastructure/github"
	"github.com/codecohort/alumni-directory/internal/infrastructure/queue"
	"github.com/codecohort/alumni-directory/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// repositories is the store selected by STORE_DRIVER.
type repositories struct {
	users    ports.UserRepository
	cohorts  ports.CohortRepository
	projects ports.ProjectRepository
	tx       ports.Transactor
	client   *mongodriver.Client
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "alumni-directory",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	repos, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	if repos.client != nil {
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = repos.client.Disconnect(dctx)
		}()
	}

	locker, rdb, err := openLocker(ctx, cfg, log)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	reconciler := service.NewReconcileService(repos.users, repos.cohorts, repos.tx, logger.Component("reconcile"))
	dispatcher := queue.NewDispatcher(cfg.Reconcile.Workers, reconciler, logger.Component("reconcile"))
	dispatcher.Start(ctx)
	if cfg.Reconcile.Interval > 0 {
		go dispatcher.Sweep(ctx, cfg.Reconcile.Interval, reconciler)
	}

	gh := github.NewClient(github.Config{
		ClientID:     cfg.GitHub.ClientID,
		ClientSecret: cfg.GitHub.ClientSecret,
		TokenURL:     cfg.GitHub.TokenURL,
		APIURL:       cfg.GitHub.APIURL,
		Timeout:      cfg.GitHub.Timeout,
	}, logger.Component("github"))

	e := api.NewRouter(api.Dependencies{
		Users:       service.NewUserService(repos.users, repos.cohorts, repos.tx, locker, dispatcher, logger.Component("users")),
		Cohorts:     service.NewCohortService(repos.cohorts, logger.Component("cohorts")),
		Projects:    service.NewProjectService(repos.projects, logger.Component("projects")),
		GitHub:      service.NewGitHubService(gh, logger.Component("github")),
		Mongo:       repos.client,
		Redis:       rdb,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*repositories, error) {
	if cfg.StoreDriver == config.StoreMemory {
		log.Warn().Msg("using in-memory store; data is lost on restart")
		store := memory.NewStore()
		return &repositories{
			users:    memory.NewUserRepository(store),
			cohorts:  memory.NewCohortRepository(store),
			projects: memory.NewProjectRepository(store),
			tx:       store,
		}, nil
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		// Existing duplicate usernames block the unique index; keep serving.
		log.Warn().Err(err).Msg("could not ensure indexes")
	}
	if !cfg.Mongo.Transactions {
		log.Warn().Msg("mongo transactions disabled; cohort moves rely on reconciliation")
	}

	return &repositories{
		users:    mongo.NewUserRepository(db),
		cohorts:  mongo.NewCohortRepository(db),
		projects: mongo.NewProjectRepository(db),
		tx:       mongo.NewTransactor(client, cfg.Mongo.Transactions),
		client:   client,
	}, nil
}

func openLocker(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.Locker, *goredis.Client, error) {
	rcfg := redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
	if !rcfg.Enabled() {
		log.Info().Msg("REDIS_ADDR not set; using in-process locks")
		return memory.NewLocker(cfg.Lock.Wait), nil, nil
	}

	rdb, err := redis.Connect(ctx, rcfg)
	if err != nil {
		return nil, nil, err
	}
	return redis.NewLocker(rdb, cfg.Lock.TTL, cfg.Lock.Wait), rdb, nil
}
