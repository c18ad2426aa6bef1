package di

import (
	"context"
	"fmt"
	"time"

	"FinScore/internal/domain/repository"
	"FinScore/internal/handler/api"
	internalrepo "FinScore/internal/repository"
	icache "FinScore/internal/service/cache"
	"FinScore/internal/service/ratelimit"
	"FinScore/internal/usecase"
	pkgch "FinScore/pkg/clickhouse"
	"FinScore/pkg/config"
	xhttp "FinScore/pkg/http"
	applogger "FinScore/pkg/logger"
	"FinScore/pkg/metrics"
	"FinScore/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
)

const l1CacheSize = 4096

// ProvideLogger builds the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("service", "finscore"), applogger.String("env", cfg.Environment)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder on the default registry.
func ProvideMetrics(cfg *config.Config) repository.Metrics {
	if !cfg.Metrics.Enabled {
		return repository.NopMetrics{}
	}
	return metrics.New(prometheus.DefaultRegisterer)
}

// ProvideClickHouseClient creates a ClickHouse client. It returns nil when
// the price store is disabled.
func ProvideClickHouseClient(cfg *config.Config, l *applogger.Logger) (*pkgch.Client, func(), error) {
	if !cfg.ClickHouse.Enabled {
		return nil, func() {}, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
		pkgch.WithCompression(cfg.ClickHouse.Compress),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("clickhouse client: %w", err)
	}

	if cfg.ClickHouse.InitSchema {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.InitSchema(ctx, pkgch.DailyCandleSchema(cfg.ClickHouse.Database, cfg.ClickHouse.Table)); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("clickhouse schema: %w", err)
		}
	}
	l.Info("clickhouse ready",
		applogger.String("host", cfg.ClickHouse.Host),
		applogger.String("table", cfg.ClickHouse.Database+"."+cfg.ClickHouse.Table))

	cleanup := func() {
		if err := client.Close(); err != nil {
			l.Warn("clickhouse close error", applogger.Error(err))
		}
	}
	return client, cleanup, nil
}

// ProvidePriceStore wraps the ClickHouse client. Nil client gives nil store.
func ProvidePriceStore(ch *pkgch.Client, cfg *config.Config, l *applogger.Logger) *internalrepo.CHPriceStore {
	if ch == nil {
		return nil
	}
	store := internalrepo.NewCHPriceStore(ch, cfg.ClickHouse.Database, cfg.ClickHouse.Table)
	store.SetLogger(l)
	return store
}

// ProvideRedisCache connects the shared report cache when enabled.
func ProvideRedisCache(cfg *config.Config, l *applogger.Logger) (*icache.RedisCache, func(), error) {
	if !cfg.Cache.Enabled || !cfg.Cache.Redis.Enabled {
		return nil, func() {}, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rc, err := icache.NewRedisCache(ctx, icache.RedisConfig{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
		Prefix:   "finscore",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("redis cache: %w", err)
	}
	l.Info("redis cache ready", applogger.String("addr", cfg.Cache.Redis.Addr))
	cleanup := func() {
		if err := rc.Close(); err != nil {
			l.Warn("redis close error", applogger.Error(err))
		}
	}
	return rc, cleanup, nil
}

// ProvideReportCache layers the in-process cache over Redis when present.
func ProvideReportCache(cfg *config.Config, rc *icache.RedisCache) icache.BytesCache {
	if !cfg.Cache.Enabled {
		return nil
	}
	l1 := icache.NewTTLCache(l1CacheSize)
	if rc == nil {
		return l1
	}
	return icache.NewLayeredCache(l1, rc, cfg.Cache.TTL)
}

// ProvideEngine builds the scoring engine for the configured weight mode.
func ProvideEngine(cfg *config.Config, l *applogger.Logger, m repository.Metrics) (*usecase.Engine, error) {
	engine, err := usecase.NewEngine(cfg.Scoring,
		usecase.WithEngineLogger(l),
		usecase.WithEngineMetrics(m),
	)
	if err != nil {
		return nil, fmt.Errorf("scoring engine: %w", err)
	}
	return engine, nil
}

func ProvideBatchScorer(cfg *config.Config, engine *usecase.Engine) *usecase.BatchScorer {
	return usecase.NewBatchScorer(engine, cfg.Scoring.BatchWorkers)
}

// ProvideScoreHandler assembles the HTTP handler. Routes backed by the price
// store answer 503 when it is disabled.
func ProvideScoreHandler(
	cfg *config.Config,
	l *applogger.Logger,
	engine *usecase.Engine,
	batch *usecase.BatchScorer,
	store *internalrepo.CHPriceStore,
	rc *icache.RedisCache,
	reports icache.BytesCache,
) *api.ScoreEchoHandler {
	opts := []api.ScoreHandlerOption{
		api.WithRateLimiter(ratelimit.New(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst)),
	}
	if reports != nil {
		opts = append(opts, api.WithCache(reports, cfg.Cache.TTL))
	}
	if store != nil {
		opts = append(opts,
			api.WithPriceStoreUseCases(usecase.NewSymbolScorer(store, engine), usecase.NewCandlesUseCase(store)),
			api.WithHealthCheck("clickhouse", store.Health),
		)
	}
	if rc != nil {
		opts = append(opts, api.WithHealthCheck("redis", rc.Health))
	}
	return api.NewScoreEchoHandler(l, engine, batch, opts...)
}

// ProvideHTTPHandler exposes the score handler as the route registrar.
func ProvideHTTPHandler(h *api.ScoreEchoHandler) xhttp.Handler {
	return h
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, h xhttp.Handler) *server.App {
	return server.New(cfg, l, h)
}
