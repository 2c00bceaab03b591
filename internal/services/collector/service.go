// Package collector bulk-populates and refreshes the store. Downloads run in
// fixed-size batches: each batch fetches its symbols concurrently, then
// persists sequentially with one transaction per symbol, so an interrupted
// run still leaves a valid partially-populated store.
package collector

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kestrelhq/kestrel/internal/common"
	"github.com/kestrelhq/kestrel/internal/interfaces"
	"github.com/kestrelhq/kestrel/internal/models"
)

const (
	defaultBatchSize  = 10
	defaultBatchPause = 1 * time.Second

	downloadPriceYears = 10
	refreshPriceDays   = 30
	refreshTxnMonths   = 6
	refreshQuarters    = 2
)

type Service struct {
	storage    interfaces.Storage
	client     interfaces.MarketDataClient
	logger     *common.Logger
	batchSize  int
	batchPause time.Duration
}

var _ interfaces.CollectorService = (*Service)(nil)

// Option configures the collector service
type Option func(*Service)

// WithBatchSize sets how many symbols are fetched per batch
func WithBatchSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithBatchPause sets the pause between batches
func WithBatchPause(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.batchPause = d
		}
	}
}

// NewService creates a collector service
func NewService(storage interfaces.Storage, client interfaces.MarketDataClient, logger *common.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	s := &Service{
		storage:    storage,
		client:     client,
		logger:     logger,
		batchSize:  defaultBatchSize,
		batchPause: defaultBatchPause,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// runBatches drives a download or refresh run: symbols are split into
// fixed-size batches, each batch is handled by process, and a pause separates
// consecutive batches. One symbol failing never aborts the batch or the run.
func (s *Service) runBatches(ctx context.Context, symbols []string, mode string,
	process func(ctx context.Context, batch []string, report *models.DownloadReport) error) (*models.DownloadReport, error) {

	report := &models.DownloadReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Total:     len(symbols),
	}

	s.logger.Info().
		Str("run_id", report.RunID).
		Str("mode", mode).
		Int("symbols", len(symbols)).
		Int("batch_size", s.batchSize).
		Msg("collector run started")

	for start := 0; start < len(symbols); start += s.batchSize {
		if err := ctx.Err(); err != nil {
			report.Elapsed = time.Since(report.StartedAt)
			return report, err
		}

		end := start + s.batchSize
		if end > len(symbols) {
			end = len(symbols)
		}
		if err := process(ctx, symbols[start:end], report); err != nil {
			report.Elapsed = time.Since(report.StartedAt)
			return report, err
		}

		if end < len(symbols) && s.batchPause > 0 {
			select {
			case <-ctx.Done():
				report.Elapsed = time.Since(report.StartedAt)
				return report, ctx.Err()
			case <-time.After(s.batchPause):
			}
		}
	}

	report.Elapsed = time.Since(report.StartedAt)

	s.logger.Info().
		Str("run_id", report.RunID).
		Str("mode", mode).
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed).
		Dur("elapsed", report.Elapsed).
		Msg("collector run finished")

	return report, nil
}

func (s *Service) recordFailure(report *models.DownloadReport, symbol string, err error) {
	report.Failed++
	report.FailedSymbols = append(report.FailedSymbols, symbol)
	s.logger.Warn().Str("symbol", symbol).Err(err).Msg("symbol failed, continuing run")
}
