// Package interfaces defines service contracts for Kestrel
package interfaces

import (
	"context"
	"time"

	"github.com/kestrelhq/kestrel/internal/models"
)

// Storage is the persistent market data store. Reads return (nil, nil) or an
// empty slice when nothing is stored for the key; callers treat storage
// errors as a cache miss and fall through to the provider.
type Storage interface {
	// GetCompany retrieves the company master record
	GetCompany(ctx context.Context, symbol string) (*models.Company, error)

	// SaveCompany upserts the company master record
	SaveCompany(ctx context.Context, company *models.Company) error

	// UpdateMarketCap touches only the market cap and freshness timestamp
	UpdateMarketCap(ctx context.Context, symbol string, marketCap float64) error

	// GetAnnualFundamentals returns up to years most recent fiscal years, newest first
	GetAnnualFundamentals(ctx context.Context, symbol string, years int) ([]models.AnnualFundamentals, error)

	// SaveAnnualFundamentals upserts annual periods
	SaveAnnualFundamentals(ctx context.Context, symbol string, periods []models.AnnualFundamentals) error

	// GetQuarterlyFundamentals returns up to quarters most recent quarters, newest first
	GetQuarterlyFundamentals(ctx context.Context, symbol string, quarters int) ([]models.QuarterlyFundamentals, error)

	// SaveQuarterlyFundamentals upserts quarterly periods
	SaveQuarterlyFundamentals(ctx context.Context, symbol string, periods []models.QuarterlyFundamentals) error

	// GetPriceHistory returns bars in [from, to], ascending by date
	GetPriceHistory(ctx context.Context, symbol string, from, to time.Time) ([]models.PriceBar, error)

	// SavePriceHistory inserts bars, never disturbing stored ones
	SavePriceHistory(ctx context.Context, symbol string, bars []models.PriceBar) error

	// ReplacePriceHistory upserts bars, overwriting stored ones in the same range
	ReplacePriceHistory(ctx context.Context, symbol string, bars []models.PriceBar) error

	// GetOwnership returns the latest ownership snapshot
	GetOwnership(ctx context.Context, symbol string) (*models.OwnershipSnapshot, error)

	// SaveOwnership upserts an ownership snapshot
	SaveOwnership(ctx context.Context, snapshot *models.OwnershipSnapshot) error

	// GetInsiderTransactions returns the most recent transactions, newest first
	GetInsiderTransactions(ctx context.Context, symbol string, limit int) ([]models.InsiderTransaction, error)

	// SaveInsiderTransactions appends transactions, deduplicating on natural key
	SaveInsiderTransactions(ctx context.Context, symbol string, txns []models.InsiderTransaction) error

	// GetInstitutionalHolders returns the current holder snapshot, largest first
	GetInstitutionalHolders(ctx context.Context, symbol string, limit int) ([]models.InstitutionalHolder, error)

	// SaveInstitutionalHolders replaces the holder snapshot for the symbol
	SaveInstitutionalHolders(ctx context.Context, symbol string, holders []models.InstitutionalHolder) error

	// GetMajorHolders returns the latest major-holders summary
	GetMajorHolders(ctx context.Context, symbol string) (*models.MajorHolders, error)

	// SaveMajorHolders upserts a major-holders summary
	SaveMajorHolders(ctx context.Context, mh *models.MajorHolders) error

	// GetExecutives returns the current executive snapshot
	GetExecutives(ctx context.Context, symbol string) ([]models.Executive, error)

	// SaveExecutives replaces the executive snapshot for the symbol
	SaveExecutives(ctx context.Context, symbol string, execs []models.Executive) error

	// GetBuybacks returns buyback history, newest first
	GetBuybacks(ctx context.Context, symbol string) ([]models.Buyback, error)

	// SaveBuybacks upserts buyback periods
	SaveBuybacks(ctx context.Context, symbol string, buybacks []models.Buyback) error

	// GetQuarterlyShares returns share count history, newest first
	GetQuarterlyShares(ctx context.Context, symbol string) ([]models.QuarterlyShares, error)

	// SaveQuarterlyShares upserts share counts
	SaveQuarterlyShares(ctx context.Context, symbol string, shares []models.QuarterlyShares) error

	// GetSBC returns stock-based compensation history, newest first
	GetSBC(ctx context.Context, symbol string) ([]models.StockBasedCompensation, error)

	// SaveSBC upserts SBC periods
	SaveSBC(ctx context.Context, symbol string, sbc []models.StockBasedCompensation) error

	// SaveSymbolData persists everything fetched for one symbol in one transaction
	SaveSymbolData(ctx context.Context, data *models.SymbolData) error

	// ListSymbols returns every symbol present in the companies table
	ListSymbols(ctx context.Context) ([]string, error)

	// ScreenInitial runs the aggregate first-stage screen
	ScreenInitial(ctx context.Context, filters models.ScreenFilters) ([]models.ScreenResult, error)

	// ScreenDetails returns latest-period detail for the given symbols
	ScreenDetails(ctx context.Context, symbols []string) ([]models.ScreenDetail, error)

	// Close releases the underlying database handle
	Close() error
}
