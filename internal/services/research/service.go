// Package research assembles read-through research views for a symbol
package research

import (
	"context"
	"fmt"
	"time"

	"github.com/kestrelhq/kestrel/internal/common"
	"github.com/kestrelhq/kestrel/internal/interfaces"
	"github.com/kestrelhq/kestrel/internal/models"
)

// Service implements the ResearchService interface. Reads go to the store
// first; on miss the provider is consulted and the result written back
// opportunistically, so a write failure never fails the read.
type Service struct {
	storage interfaces.Storage
	client  interfaces.MarketDataClient
	logger  *common.Logger
}

// NewService creates a research service
func NewService(storage interfaces.Storage, client interfaces.MarketDataClient, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		storage: storage,
		client:  client,
		logger:  logger,
	}
}

// fetchAndPersist pulls the full fundamentals document for a symbol, derives
// the ratio columns, and writes everything back. The write-back is
// opportunistic: failures are logged and the in-memory document is still
// returned.
func (s *Service) fetchAndPersist(ctx context.Context, symbol string) (*models.ProviderFundamentals, error) {
	doc, err := s.client.GetFundamentals(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fundamentals for %s: %w", symbol, err)
	}

	for i := range doc.Annual {
		DeriveRatios(&doc.Annual[i])
	}

	if err := s.storage.SaveSymbolData(ctx, docToSymbolData(doc)); err != nil {
		s.logger.Warn().Str("symbol", symbol).Err(err).Msg("failed to persist fetched fundamentals")
	}

	return doc, nil
}

// docToSymbolData shapes a provider document for a single-transaction save
func docToSymbolData(doc *models.ProviderFundamentals) *models.SymbolData {
	return &models.SymbolData{
		Symbol:              doc.Symbol,
		Company:             doc.Company,
		Annual:              doc.Annual,
		Quarterly:           doc.Quarterly,
		Ownership:           doc.Ownership,
		InsiderTransactions: doc.InsiderTransactions,
		Holders:             doc.Holders,
		MajorHolders:        doc.MajorHolders,
		Executives:          doc.Executives,
		Buybacks:            doc.Buybacks,
		QuarterlyShares:     doc.QuarterlyShares,
		SBC:                 doc.SBC,
	}
}

// livePrice fetches the current price overlay; absence is not an error
func (s *Service) livePrice(ctx context.Context, symbol string) *float64 {
	quote, err := s.client.GetRealTimeQuote(ctx, symbol)
	if err != nil {
		s.logger.Warn().Str("symbol", symbol).Err(err).Msg("failed to fetch real-time quote")
		return nil
	}
	if quote.Close == 0 {
		return nil
	}
	price := quote.Close
	return &price
}

// yearExtremes computes 52-week high/low from stored price history
func (s *Service) yearExtremes(ctx context.Context, symbol string) (high, low *float64) {
	now := time.Now()
	bars, err := s.storage.GetPriceHistory(ctx, symbol, now.AddDate(-1, 0, 0), now)
	if err != nil {
		s.logger.Warn().Str("symbol", symbol).Err(err).Msg("failed to read price history for extremes")
		return nil, nil
	}
	if len(bars) == 0 {
		return nil, nil
	}
	h, l := bars[0].Close, bars[0].Close
	for _, bar := range bars[1:] {
		if bar.Close > h {
			h = bar.Close
		}
		if bar.Close < l {
			l = bar.Close
		}
	}
	return &h, &l
}

// Ensure Service implements ResearchService
var _ interfaces.ResearchService = (*Service)(nil)
