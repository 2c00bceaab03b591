// Package interfaces defines service contracts for Kestrel
package interfaces

import (
	"context"

	"github.com/kestrelhq/kestrel/internal/models"
)

// ResearchService assembles research views for a symbol, reading the store
// first and enriching from the provider on miss
type ResearchService interface {
	// GetFundamentals returns the fundamentals bundle with a live price overlay
	GetFundamentals(ctx context.Context, symbol string) (*models.FundamentalsBundle, error)

	// GetValuationMetrics returns market multiples and dividend terms
	GetValuationMetrics(ctx context.Context, symbol string) (*models.ValuationMetrics, error)

	// GetTechnicalIndicators computes technicals over a lookback period (1mo..5y)
	GetTechnicalIndicators(ctx context.Context, symbol, period string) (*models.TechnicalIndicators, error)

	// GetInsiderOwnership returns the ownership snapshot plus recent insider trades
	GetInsiderOwnership(ctx context.Context, symbol string) (*models.InsiderOwnershipBundle, error)

	// GetInstitutionalHolders returns top holders plus the major-holders summary
	GetInstitutionalHolders(ctx context.Context, symbol string) (*models.InstitutionalHoldersBundle, error)

	// GetShareData returns quarterly share counts and buyback history
	GetShareData(ctx context.Context, symbol string) (*models.ShareDataBundle, error)

	// GetManagementCompensation returns executives and SBC history
	GetManagementCompensation(ctx context.Context, symbol string) (*models.ManagementCompensationBundle, error)

	// GetFinancialHistory returns multi-year annual fundamentals, newest first
	GetFinancialHistory(ctx context.Context, symbol string, years int) (*models.FinancialHistory, error)

	// CompareStocks computes a pairwise similarity decomposition
	CompareStocks(ctx context.Context, symbol1, symbol2 string) (*models.StockComparison, error)

	// FindSimilarCompanies discovers and scores peers of the reference symbol
	FindSimilarCompanies(ctx context.Context, symbol string, limit int) (*models.SimilarityResult, error)
}

// ScreenerService runs the two-stage fundamental screen
type ScreenerService interface {
	// Screen runs the aggregate first stage with the given filters
	Screen(ctx context.Context, filters models.ScreenFilters) ([]models.ScreenResult, error)

	// ScreenDetails returns latest-period detail for screen finalists
	ScreenDetails(ctx context.Context, symbols []string) ([]models.ScreenDetail, error)
}

// CollectorService bulk-populates and refreshes the store
type CollectorService interface {
	// DownloadAll fetches and persists full histories for the given symbols
	DownloadAll(ctx context.Context, symbols []string) (*models.DownloadReport, error)

	// RefreshAll updates the fast-moving slices for the given symbols.
	// An empty symbol list refreshes every symbol already in the store.
	RefreshAll(ctx context.Context, symbols []string) (*models.DownloadReport, error)
}
