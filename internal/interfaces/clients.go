// Package interfaces defines service contracts for Kestrel
package interfaces

import (
	"context"
	"time"

	"github.com/kestrelhq/kestrel/internal/models"
)

// MarketDataClient provides access to the market data provider API
type MarketDataClient interface {
	// GetFundamentals retrieves the full fundamentals document for a symbol
	GetFundamentals(ctx context.Context, symbol string) (*models.ProviderFundamentals, error)

	// GetEOD retrieves end-of-day price bars
	GetEOD(ctx context.Context, symbol string, opts ...EODOption) ([]models.PriceBar, error)

	// GetRealTimeQuote retrieves a live price snapshot
	GetRealTimeQuote(ctx context.Context, symbol string) (*models.RealTimeQuote, error)

	// ListSector returns symbols belonging to a sector
	ListSector(ctx context.Context, sector string, limit int) ([]string, error)

	// ListIndustry returns symbols belonging to an industry
	ListIndustry(ctx context.Context, industry string, limit int) ([]string, error)
}

// EODOption configures EOD data requests
type EODOption func(*EODParams)

// EODParams holds EOD query parameters
type EODParams struct {
	From time.Time
	To   time.Time
}

// WithDateRange sets the date range for EOD query
func WithDateRange(from, to time.Time) EODOption {
	return func(p *EODParams) {
		p.From = from
		p.To = to
	}
}

// WithLookback sets the start date to a duration before now
func WithLookback(d time.Duration) EODOption {
	return func(p *EODParams) {
		p.From = time.Now().Add(-d)
		p.To = time.Now()
	}
}
