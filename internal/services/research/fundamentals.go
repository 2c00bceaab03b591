package research

import (
	"context"
	"time"

	"github.com/kestrelhq/kestrel/internal/common"
	"github.com/kestrelhq/kestrel/internal/models"
)

// GetFundamentals returns the fundamentals bundle for a symbol: store-first
// with provider fill on miss, plus a live price overlay on every call
func (s *Service) GetFundamentals(ctx context.Context, symbol string) (*models.FundamentalsBundle, error) {
	company, err := s.storage.GetCompany(ctx, symbol)
	if err != nil {
		s.logger.Warn().Str("symbol", symbol).Err(err).Msg("company read failed, treating as miss")
		company = nil
	}

	annual, err := s.storage.GetAnnualFundamentals(ctx, symbol, 2)
	if err != nil {
		s.logger.Warn().Str("symbol", symbol).Err(err).Msg("annual fundamentals read failed, treating as miss")
		annual = nil
	}

	if company == nil || len(annual) == 0 || !common.IsFresh(company.LastUpdated, common.FreshnessFundamentals) {
		doc, fetchErr := s.fetchAndPersist(ctx, symbol)
		if fetchErr != nil {
			// Stale stored data still beats an error
			if company == nil || len(annual) == 0 {
				return nil, fetchErr
			}
			s.logger.Warn().Str("symbol", symbol).Err(fetchErr).Msg("refresh failed, serving stored fundamentals")
		} else {
			company = doc.Company
			annual = doc.Annual
			if len(annual) > 2 {
				annual = annual[:2]
			}
		}
	}

	bundle := &models.FundamentalsBundle{
		Symbol:      symbol,
		LastUpdated: time.Now().UTC(),
	}
	if company != nil {
		bundle.Name = company.Name
		bundle.Sector = company.Sector
		bundle.Industry = company.Industry
		bundle.MarketCap = company.MarketCap
	}
	if len(annual) > 0 {
		latest := annual[0]
		bundle.FiscalYear = latest.FiscalYear
		bundle.Revenue = latest.Revenue
		bundle.OperatingIncome = latest.OperatingIncome
		bundle.NetIncome = latest.NetIncome
		bundle.TotalAssets = latest.TotalAssets
		bundle.TotalLiabilities = latest.TotalLiabilities
		bundle.ShareholdersEquity = latest.ShareholdersEquity
		bundle.OperatingCashFlow = latest.OperatingCashFlow
		bundle.FreeCashFlow = latest.FreeCashFlow
		bundle.ROIC = latest.ROIC
		bundle.ROE = latest.ROE
		bundle.ROA = latest.ROA
		bundle.ProfitMargin = latest.ProfitMargin
		bundle.OperatingMargin = latest.OperatingMargin
		bundle.GrossMargin = latest.GrossMargin
		bundle.DebtToEquity = latest.DebtToEquity
		bundle.CurrentRatio = latest.CurrentRatio
	}
	if len(annual) > 1 {
		bundle.RevenueGrowth = yoyGrowth(annual[0].Revenue, annual[1].Revenue)
	}

	// Live overlay, never persisted
	bundle.CurrentPrice = s.livePrice(ctx, symbol)
	bundle.High52Week, bundle.Low52Week = s.yearExtremes(ctx, symbol)

	return bundle, nil
}

// GetValuationMetrics returns market multiples and dividend terms. Multiples
// move with price, so the provider is consulted first; stored company data is
// the degraded fallback.
func (s *Service) GetValuationMetrics(ctx context.Context, symbol string) (*models.ValuationMetrics, error) {
	metrics := &models.ValuationMetrics{Symbol: symbol}

	doc, err := s.fetchAndPersist(ctx, symbol)
	if err != nil {
		company, storeErr := s.storage.GetCompany(ctx, symbol)
		if storeErr != nil || company == nil {
			return nil, err
		}
		s.logger.Warn().Str("symbol", symbol).Err(err).Msg("provider unavailable, serving stored valuation fields")
		metrics.MarketCap = company.MarketCap
		metrics.EnterpriseValue = company.EnterpriseValue
		metrics.ForwardPE = company.ForwardPE
		metrics.ForwardEPS = company.ForwardEPS
		metrics.PEGRatio = company.PEGRatio
		metrics.DividendYield = company.DividendYield
		metrics.DividendRate = company.DividendRate
		metrics.PayoutRatio = company.PayoutRatio
	} else {
		metrics.MarketCap = doc.Highlights.MarketCap
		metrics.TrailingPE = doc.Highlights.PERatio
		metrics.PEGRatio = doc.Highlights.PEGRatio
		metrics.EPS = doc.Highlights.EPS
		metrics.BookValuePerShare = doc.Highlights.BookValue
		metrics.PriceToSales = doc.Highlights.PriceToSales
		metrics.PriceToBook = doc.Highlights.PriceToBook
		metrics.EVToRevenue = doc.Highlights.EVToRevenue
		metrics.EVToEBITDA = doc.Highlights.EVToEBITDA
		metrics.DividendYield = doc.Highlights.DividendYield
		if doc.Company != nil {
			metrics.EnterpriseValue = doc.Company.EnterpriseValue
			metrics.ForwardPE = doc.Company.ForwardPE
			metrics.ForwardEPS = doc.Company.ForwardEPS
			metrics.DividendRate = doc.Company.DividendRate
			metrics.PayoutRatio = doc.Company.PayoutRatio
		}
	}

	metrics.CurrentPrice = s.livePrice(ctx, symbol)

	return metrics, nil
}

const (
	defaultHistoryYears = 5
	maxHistoryYears     = 10
)

// GetFinancialHistory returns multi-year annual fundamentals, newest first
func (s *Service) GetFinancialHistory(ctx context.Context, symbol string, years int) (*models.FinancialHistory, error) {
	if years <= 0 {
		years = defaultHistoryYears
	}
	if years > maxHistoryYears {
		years = maxHistoryYears
	}

	periods, err := s.storage.GetAnnualFundamentals(ctx, symbol, years)
	if err != nil {
		s.logger.Warn().Str("symbol", symbol).Err(err).Msg("annual fundamentals read failed, treating as miss")
		periods = nil
	}

	if len(periods) == 0 {
		doc, fetchErr := s.fetchAndPersist(ctx, symbol)
		if fetchErr != nil {
			return nil, fetchErr
		}
		periods = doc.Annual
		if len(periods) > years {
			periods = periods[:years]
		}
	}

	return &models.FinancialHistory{
		Symbol:  symbol,
		Years:   years,
		Periods: periods,
	}, nil
}
