package collector

import (
	"context"
	"sync"
	"time"

	"github.com/kestrelhq/kestrel/internal/interfaces"
	"github.com/kestrelhq/kestrel/internal/models"
	"github.com/kestrelhq/kestrel/internal/services/research"
)

// fetchResult pairs one symbol's full fetch with its outcome
type fetchResult struct {
	symbol string
	data   *models.SymbolData
	err    error
}

// DownloadAll fetches and persists full histories for the given symbols:
// the complete fundamentals document plus ten years of daily prices
func (s *Service) DownloadAll(ctx context.Context, symbols []string) (*models.DownloadReport, error) {
	return s.runBatches(ctx, symbols, "download", func(ctx context.Context, batch []string, report *models.DownloadReport) error {
		results := make([]fetchResult, len(batch))

		var wg sync.WaitGroup
		for i, symbol := range batch {
			wg.Add(1)
			go func(i int, symbol string) {
				defer wg.Done()
				data, err := s.fetchSymbol(ctx, symbol)
				results[i] = fetchResult{symbol: symbol, data: data, err: err}
			}(i, symbol)
		}
		wg.Wait()

		// Persist sequentially, one transaction per symbol
		for _, r := range results {
			if r.err != nil {
				s.recordFailure(report, r.symbol, r.err)
				continue
			}
			if err := s.storage.SaveSymbolData(ctx, r.data); err != nil {
				s.recordFailure(report, r.symbol, err)
				continue
			}
			report.Succeeded++
			s.logger.Debug().Str("symbol", r.symbol).Msg("symbol downloaded")
		}
		return nil
	})
}

// fetchSymbol pulls everything the store holds for one symbol: the full
// fundamentals document and a decade of price history
func (s *Service) fetchSymbol(ctx context.Context, symbol string) (*models.SymbolData, error) {
	doc, err := s.client.GetFundamentals(ctx, symbol)
	if err != nil {
		return nil, err
	}
	for i := range doc.Annual {
		research.DeriveRatios(&doc.Annual[i])
	}

	now := time.Now()
	bars, err := s.client.GetEOD(ctx, symbol,
		interfaces.WithDateRange(now.AddDate(-downloadPriceYears, 0, 0), now))
	if err != nil {
		// Fundamentals without prices still beat nothing
		s.logger.Warn().Str("symbol", symbol).Err(err).Msg("price fetch failed, keeping fundamentals")
		bars = nil
	}

	return &models.SymbolData{
		Symbol:              symbol,
		Company:             doc.Company,
		Annual:              doc.Annual,
		Quarterly:           doc.Quarterly,
		Prices:              bars,
		Ownership:           doc.Ownership,
		InsiderTransactions: doc.InsiderTransactions,
		Holders:             doc.Holders,
		MajorHolders:        doc.MajorHolders,
		Executives:          doc.Executives,
		Buybacks:            doc.Buybacks,
		QuarterlyShares:     doc.QuarterlyShares,
		SBC:                 doc.SBC,
	}, nil
}
