// Package app wires configuration, storage, the provider client, and the
// services into a ready-to-use core shared by the command binaries.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kestrelhq/kestrel/internal/clients/eodhd"
	"github.com/kestrelhq/kestrel/internal/common"
	"github.com/kestrelhq/kestrel/internal/interfaces"
	"github.com/kestrelhq/kestrel/internal/services/collector"
	"github.com/kestrelhq/kestrel/internal/services/research"
	"github.com/kestrelhq/kestrel/internal/services/screener"
	"github.com/kestrelhq/kestrel/internal/storage/sqlite"
)

// App holds all initialized services, the provider client, and storage
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.Storage
	EODHDClient      interfaces.MarketDataClient
	ResearchService  interfaces.ResearchService
	ScreenerService  interfaces.ScreenerService
	CollectorService interfaces.CollectorService
	StartupTime      time.Time
}

// NewApp initializes the full application core. configPath may be empty, in
// which case KESTREL_CONFIG and then config/kestrel.toml are consulted.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	if configPath == "" {
		configPath = os.Getenv("KESTREL_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join("config", "kestrel.toml")
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	store, err := sqlite.Open(config.Storage.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	if config.Clients.EODHD.APIKey == "" {
		logger.Warn().Msg("EODHD API key not configured, provider calls will fail")
	}

	client := eodhd.NewClient(config.Clients.EODHD.APIKey,
		eodhd.WithBaseURL(config.Clients.EODHD.BaseURL),
		eodhd.WithLogger(logger),
		eodhd.WithRateLimit(config.Clients.EODHD.RateLimit),
		eodhd.WithTimeout(config.Clients.EODHD.GetTimeout()),
	)

	researchService := research.NewService(store, client, logger)
	screenerService := screener.NewService(store, logger)
	collectorService := collector.NewService(store, client, logger,
		collector.WithBatchSize(config.Download.BatchSize),
		collector.WithBatchPause(config.Download.GetBatchPause()),
	)

	logger.Info().
		Str("version", common.GetVersion()).
		Str("db", config.Storage.Path).
		Dur("startup", time.Since(startupStart)).
		Msg("app initialized")

	return &App{
		Config:           config,
		Logger:           logger,
		Storage:          store,
		EODHDClient:      client,
		ResearchService:  researchService,
		ScreenerService:  screenerService,
		CollectorService: collectorService,
		StartupTime:      startupStart,
	}, nil
}

// Close releases all resources held by the App
func (a *App) Close() {
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("storage close failed")
		}
		a.Storage = nil
	}
}
