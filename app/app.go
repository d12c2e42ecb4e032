// Package app wires the service together from configuration.
package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/dailyyoga/coinboard/analytics"
	"github.com/dailyyoga/coinboard/api"
	"github.com/dailyyoga/coinboard/auth"
	"github.com/dailyyoga/coinboard/cache"
	"github.com/dailyyoga/coinboard/config"
	"github.com/dailyyoga/coinboard/dashboard"
	"github.com/dailyyoga/coinboard/db"
	"github.com/dailyyoga/coinboard/feedback"
	"github.com/dailyyoga/coinboard/logger"
	"github.com/dailyyoga/coinboard/maintenance"
	"github.com/dailyyoga/coinboard/market/coingecko"
	"github.com/dailyyoga/coinboard/market/cryptopanic"
	"github.com/dailyyoga/coinboard/market/insight"
	"github.com/dailyyoga/coinboard/market/meme"
	"github.com/dailyyoga/coinboard/symbols"
	"github.com/dailyyoga/coinboard/user"
)

// App holds the wired components and their lifecycles.
type App struct {
	config   *config.Config
	logger   logger.Logger
	database db.Database

	redisStore *cache.RedisStore
	gormStore  *cache.GormStore
	symbols    *symbols.Directory
	emitter    feedback.Emitter
	recorder   analytics.Recorder
	scheduler  *maintenance.Scheduler
	server     *api.Server
}

// New builds the application from configuration.
func New(cfg *config.Config) (*App, error) {
	log, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, err
	}

	database, err := db.NewMySQL(log, cfg.Database)
	if err != nil {
		return nil, err
	}

	models := cache.Models()
	models = append(models, user.Models()...)
	models = append(models, feedback.Models()...)
	if err := database.AutoMigrate(models...); err != nil {
		return nil, err
	}
	gormDB, err := database.DB()
	if err != nil {
		return nil, err
	}

	a := &App{config: cfg, logger: log, database: database}

	cacheCfg := cfg.Cache
	if cacheCfg == nil {
		cacheCfg = cache.DefaultConfig()
	} else {
		cacheCfg = cacheCfg.MergeDefaults()
	}
	if err := cacheCfg.Validate(); err != nil {
		return nil, err
	}

	var store cache.Store
	if cacheCfg.Backend == cache.BackendRedis {
		a.redisStore, err = cache.NewRedisStore(log, cacheCfg.Redis)
		if err != nil {
			return nil, err
		}
		store = a.redisStore
	} else {
		a.gormStore = cache.NewGormStore(gormDB)
		store = a.gormStore
	}
	cached := cache.NewCachedStore(log, store, cacheCfg.PolicySet())

	// The symbol sync pulls from CoinGecko, and the CoinGecko client
	// resolves through the directory; the closure breaks the cycle.
	var prices *coingecko.Client
	a.symbols, err = symbols.NewDirectory(log, cfg.Symbols, func(ctx context.Context) (map[string]string, error) {
		return prices.CoinList(ctx)
	})
	if err != nil {
		return nil, err
	}
	prices = coingecko.New(log, cfg.CoinGecko, a.symbols)

	news := cryptopanic.New(log, cfg.CryptoPanic)
	memes := meme.New(log, cfg.Meme)
	insights := insight.New(log, cfg.Insight)

	users, err := user.NewService(gormDB)
	if err != nil {
		return nil, err
	}
	tokens, err := auth.NewTokens(cfg.Auth)
	if err != nil {
		return nil, err
	}

	a.emitter = feedback.Emitter(feedback.NopEmitter{})
	if cfg.Feedback != nil && len(cfg.Feedback.Brokers) > 0 {
		a.emitter, err = feedback.NewKafkaEmitter(log, cfg.Feedback)
		if err != nil {
			return nil, err
		}
	}
	feedbackSvc, err := feedback.NewService(log, gormDB, a.emitter)
	if err != nil {
		return nil, err
	}

	a.recorder = analytics.Recorder(analytics.NopRecorder{})
	if cfg.Analytics != nil && len(cfg.Analytics.Addr) > 0 {
		a.recorder, err = analytics.NewClickHouseRecorder(log, cfg.Analytics)
		if err != nil {
			return nil, err
		}
	}

	dashboardSvc, err := dashboard.NewService(
		log, cached, user.NewResolver(users, log),
		prices, news, memes, insights, a.recorder,
	)
	if err != nil {
		return nil, err
	}

	a.server, err = api.NewServer(log, cfg.API, api.Services{
		Users:     users,
		Tokens:    tokens,
		Dashboard: dashboardSvc,
		Feedback:  feedbackSvc,
	})
	if err != nil {
		return nil, err
	}

	if err := a.setupSweep(cacheCfg); err != nil {
		return nil, err
	}

	return a, nil
}

// setupSweep schedules the cache retention sweep. Only the MySQL backend
// needs it; Redis entries are superseded in place and carry no history.
func (a *App) setupSweep(cacheCfg *cache.Config) error {
	if a.config.Maintenance == nil {
		return nil
	}
	schedule := a.config.Maintenance.SweepSchedule
	if schedule == "" || cacheCfg.Backend != cache.BackendMySQL {
		return nil
	}

	task, err := maintenance.NewSweepTask(a.logger, a.gormStore, a.config.Maintenance.SweepMaxAge)
	if err != nil {
		return err
	}
	a.scheduler = maintenance.NewScheduler(a.logger)
	return a.scheduler.Add(schedule, task)
}

// Run starts the background components and serves HTTP until ctx is
// cancelled, then shuts everything down.
func (a *App) Run(ctx context.Context) error {
	if err := a.symbols.Start(); err != nil {
		return err
	}
	if a.scheduler != nil {
		a.scheduler.Start()
	}

	serveErr := a.server.Start(ctx)

	a.shutdown()
	return serveErr
}

func (a *App) shutdown() {
	a.symbols.Stop()
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if err := a.emitter.Close(); err != nil {
		a.logger.Error("failed to close feedback emitter", zap.Error(err))
	}
	if err := a.recorder.Close(); err != nil {
		a.logger.Error("failed to close analytics recorder", zap.Error(err))
	}
	if a.redisStore != nil {
		if err := a.redisStore.Close(); err != nil {
			a.logger.Error("failed to close redis store", zap.Error(err))
		}
	}
	if err := a.database.Close(); err != nil {
		a.logger.Error("failed to close database", zap.Error(err))
	}
	_ = a.logger.Sync()
}
