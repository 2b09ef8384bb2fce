package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/alltabs/alltabsd/internal/config"
	"github.com/alltabs/alltabsd/internal/coordinator"
	"github.com/alltabs/alltabsd/internal/httpserver"
	"github.com/alltabs/alltabsd/internal/httpserver/deps"
	"github.com/alltabs/alltabsd/internal/httpserver/handlers"
	"github.com/alltabs/alltabsd/internal/logger"
	"github.com/alltabs/alltabsd/internal/redis"
	"github.com/alltabs/alltabsd/internal/remote"
	"github.com/alltabs/alltabsd/internal/scheduler"
	"github.com/alltabs/alltabsd/internal/session"
	"github.com/alltabs/alltabsd/internal/sources/seedfile"
	"github.com/alltabs/alltabsd/internal/store"
	redisstore "github.com/alltabs/alltabsd/internal/store/redis"
	"github.com/alltabs/alltabsd/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	coord       *coordinator.Coordinator
	gate        *session.Gate
	cache       *redisstore.Cache
	store       *store.Store
	refresher   *scheduler.RefreshScheduler
	importer    *seedfile.Importer
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Snapshot cache is optional. No Redis address means the daemon starts
	// cold on every launch and nothing else changes.
	var redisClient *goredis.Client
	var cache *redisstore.Cache
	if cfg.RedisAddr != "" {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("Redis initialized successfully")
		redisClient = client
		cache = redisstore.NewCache(client, cfg.SnapshotTTL)
	} else {
		loggerClient.Info("Redis not configured, snapshot cache disabled")
	}

	st := store.New()
	gate := session.New(loggerClient)

	// The token hook keeps the backend client current across sign-in and
	// sign-out without plumbing the gate through it.
	backend := remote.NewClient(remote.Options{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.BackendTimeout,
		Token:   gate.Token,
		Logger:  loggerClient,
	})

	notifications := coordinator.NewRing(0)

	opts := coordinator.Options{
		Remote:   backend,
		Store:    st,
		Gate:     gate,
		Confirm:  handlers.Confirmer,
		Notifier: notifications,
		Logger:   loggerClient,
	}
	if cache != nil {
		opts.Cache = cache
	}
	coord := coordinator.New(opts)

	// A pre-provisioned token skips the sign-in step for single-user
	// installs. Installed before any subscriber so it fires no callbacks.
	if cfg.AuthToken != "" {
		gate.SetToken(cfg.AuthToken)
	}

	var importer *seedfile.Importer
	if cfg.SeedFile != "" {
		loggerClient.Info("seed file configured",
			logger.String("file", cfg.SeedFile))
		importer = seedfile.NewImporter(cfg.SeedFile, coord, loggerClient)
	}

	refreshTrigger := make(chan struct{}, 1)

	refresher := scheduler.NewRefreshScheduler(
		coord,
		loggerClient,
		cfg.RefreshInterval,
		cfg.RefreshRetryWait,
		cfg.RefreshRetryMax,
		refreshTrigger,
	)

	// Sign-in drives the initial load, and the seed import once the
	// loaded snapshot is available to dedupe against.
	gate.Subscribe(func(authenticated bool) {
		if !authenticated {
			return
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.BackendTimeout)
			defer cancel()
			if err := coord.Refresh(ctx); err != nil {
				loggerClient.Warn("initial load after sign-in failed", logger.Error(err))
				return
			}
			runImport(ctx, importer, loggerClient)
		}()
	})

	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		Coordinator:    coord,
		Store:          st,
		Gate:           gate,
		Notifications:  notifications,
		RedisClient:    redisClient,
		RefreshTrigger: refreshTrigger,
		AllowedOrigins: cfg.AllowedOrigins,
		BackendURL:     cfg.BackendURL,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		coord:       coord,
		gate:        gate,
		cache:       cache,
		store:       st,
		refresher:   refresher,
		importer:    importer,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting alltabsd v%s on %s", version.Version, a.cfg.ListenAddr)
	a.logger.Infof("alltabsd %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Warm the in-memory state from the cached snapshot so the UI has
	// something to show before the first backend round-trip completes.
	if a.cache != nil {
		syncer := scheduler.NewCacheSyncer(a.cache, a.store, a.logger)
		if err := syncer.Sync(ctx); err != nil {
			a.logger.Warn("failed to restore cached snapshot, starting cold",
				logger.Error(err))
		}
	}

	a.refresher.Start(ctx)
	a.logger.Info("refresh scheduler started",
		logger.Duration("interval", a.cfg.RefreshInterval))

	// A pre-provisioned token never passes through the gate's transition
	// signal, so the seed import runs here instead.
	if a.gate.Authenticated() && a.importer != nil {
		go runImport(ctx, a.importer, a.logger)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.refresher.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ alltabsd stopped cleanly")
	return nil
}

func runImport(ctx context.Context, importer *seedfile.Importer, log logger.Logger) {
	if importer == nil {
		return
	}
	if err := importer.Run(ctx); err != nil {
		log.Warn("seed import failed", logger.Error(err))
	}
}
