package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kestrelhq/kestrel/internal/interfaces"
	"github.com/kestrelhq/kestrel/internal/models"
)

// refreshResult pairs one symbol's narrowed fetch with its outcome
type refreshResult struct {
	symbol string
	doc    *models.ProviderFundamentals
	bars   []models.PriceBar
	err    error
}

// RefreshAll updates the fast-moving slices for the given symbols: the last
// 30 days of prices (replacing stored bars), recent insider transactions, the
// current ownership snapshot, market cap, the last two quarters, and a full
// replace of holders and executives. An empty symbol list refreshes every
// symbol already in the store.
func (s *Service) RefreshAll(ctx context.Context, symbols []string) (*models.DownloadReport, error) {
	if len(symbols) == 0 {
		stored, err := s.storage.ListSymbols(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list stored symbols: %w", err)
		}
		symbols = stored
	}

	return s.runBatches(ctx, symbols, "refresh", func(ctx context.Context, batch []string, report *models.DownloadReport) error {
		results := make([]refreshResult, len(batch))

		var wg sync.WaitGroup
		for i, symbol := range batch {
			wg.Add(1)
			go func(i int, symbol string) {
				defer wg.Done()
				doc, err := s.client.GetFundamentals(ctx, symbol)
				if err != nil {
					results[i] = refreshResult{symbol: symbol, err: err}
					return
				}
				bars, err := s.client.GetEOD(ctx, symbol,
					interfaces.WithLookback(refreshPriceDays*24*time.Hour))
				if err != nil {
					s.logger.Warn().Str("symbol", symbol).Err(err).Msg("price refresh fetch failed")
					bars = nil
				}
				results[i] = refreshResult{symbol: symbol, doc: doc, bars: bars}
			}(i, symbol)
		}
		wg.Wait()

		for _, r := range results {
			if r.err != nil {
				s.recordFailure(report, r.symbol, r.err)
				continue
			}
			if err := s.persistRefresh(ctx, r); err != nil {
				s.recordFailure(report, r.symbol, err)
				continue
			}
			report.Succeeded++
			s.logger.Debug().Str("symbol", r.symbol).Msg("symbol refreshed")
		}
		return nil
	})
}

// persistRefresh writes one symbol's refreshed slices. The first write error
// stops the symbol so the failure is visible in the report; earlier writes
// stand, which is safe under idempotent upserts.
func (s *Service) persistRefresh(ctx context.Context, r refreshResult) error {
	if len(r.bars) > 0 {
		if err := s.storage.ReplacePriceHistory(ctx, r.symbol, r.bars); err != nil {
			return fmt.Errorf("price replace failed: %w", err)
		}
	}

	if txns := recentTransactions(r.doc.InsiderTransactions, time.Now().AddDate(0, -refreshTxnMonths, 0)); len(txns) > 0 {
		if err := s.storage.SaveInsiderTransactions(ctx, r.symbol, txns); err != nil {
			return fmt.Errorf("insider transactions save failed: %w", err)
		}
	}

	if r.doc.Ownership != nil {
		if err := s.storage.SaveOwnership(ctx, r.doc.Ownership); err != nil {
			return fmt.Errorf("ownership save failed: %w", err)
		}
	}

	if r.doc.Company != nil && r.doc.Company.MarketCap != nil {
		if err := s.storage.UpdateMarketCap(ctx, r.symbol, *r.doc.Company.MarketCap); err != nil {
			return fmt.Errorf("market cap update failed: %w", err)
		}
	}

	quarters := r.doc.Quarterly
	if len(quarters) > refreshQuarters {
		quarters = quarters[:refreshQuarters]
	}
	if len(quarters) > 0 {
		if err := s.storage.SaveQuarterlyFundamentals(ctx, r.symbol, quarters); err != nil {
			return fmt.Errorf("quarterly save failed: %w", err)
		}
	}

	if len(r.doc.Holders) > 0 {
		if err := s.storage.SaveInstitutionalHolders(ctx, r.symbol, r.doc.Holders); err != nil {
			return fmt.Errorf("holders replace failed: %w", err)
		}
	}
	if len(r.doc.Executives) > 0 {
		if err := s.storage.SaveExecutives(ctx, r.symbol, r.doc.Executives); err != nil {
			return fmt.Errorf("executives replace failed: %w", err)
		}
	}

	return nil
}

// recentTransactions keeps trades dated on or after cutoff
func recentTransactions(txns []models.InsiderTransaction, cutoff time.Time) []models.InsiderTransaction {
	var recent []models.InsiderTransaction
	for _, txn := range txns {
		if !txn.TransactionDate.Before(cutoff) {
			recent = append(recent, txn)
		}
	}
	return recent
}
