//go:build wireinject
// +build wireinject

package di

import (
	internalrepo "FinScore/internal/repository"
	"FinScore/internal/usecase"
	"FinScore/pkg/config"
	"FinScore/pkg/server"

	"github.com/google/wire"
)

var infraSet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,
	ProvideClickHouseClient,
	ProvidePriceStore,
	ProvideRedisCache,
	ProvideReportCache,
)

var scoringSet = wire.NewSet(
	ProvideEngine,
	ProvideBatchScorer,
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		infraSet,
		scoringSet,

		// HTTP
		ProvideScoreHandler,
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return nil, nil, nil
}

// InitializeEngine builds a standalone engine for one-shot scoring.
func InitializeEngine(cfg *config.Config) (*usecase.Engine, error) {
	wire.Build(ProvideLogger, ProvideMetrics, ProvideEngine)
	return nil, nil
}

// InitializePriceStore opens the ClickHouse price store for imports.
func InitializePriceStore(cfg *config.Config) (*internalrepo.CHPriceStore, func(), error) {
	wire.Build(ProvideLogger, ProvideClickHouseClient, ProvidePriceStore)
	return nil, nil, nil
}
