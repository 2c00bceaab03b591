package main

import (
	"context"
	"fmt"

	"github.com/kestrelhq/kestrel/internal/common"
	"github.com/kestrelhq/kestrel/internal/interfaces"
	"github.com/kestrelhq/kestrel/internal/models"
)

func testLogger() *common.Logger {
	return common.NewSilentLogger()
}

// --- mockResearchService ---

type mockResearchService struct {
	fundamentalsFn func(ctx context.Context, symbol string) (*models.FundamentalsBundle, error)
	technicalsFn   func(ctx context.Context, symbol, period string) (*models.TechnicalIndicators, error)
	historyFn      func(ctx context.Context, symbol string, years int) (*models.FinancialHistory, error)
	compareFn      func(ctx context.Context, symbol1, symbol2 string) (*models.StockComparison, error)
	similarFn      func(ctx context.Context, symbol string, limit int) (*models.SimilarityResult, error)
}

func (m *mockResearchService) GetFundamentals(ctx context.Context, symbol string) (*models.FundamentalsBundle, error) {
	if m.fundamentalsFn != nil {
		return m.fundamentalsFn(ctx, symbol)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockResearchService) GetValuationMetrics(ctx context.Context, symbol string) (*models.ValuationMetrics, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockResearchService) GetTechnicalIndicators(ctx context.Context, symbol, period string) (*models.TechnicalIndicators, error) {
	if m.technicalsFn != nil {
		return m.technicalsFn(ctx, symbol, period)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockResearchService) GetInsiderOwnership(ctx context.Context, symbol string) (*models.InsiderOwnershipBundle, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockResearchService) GetInstitutionalHolders(ctx context.Context, symbol string) (*models.InstitutionalHoldersBundle, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockResearchService) GetShareData(ctx context.Context, symbol string) (*models.ShareDataBundle, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockResearchService) GetManagementCompensation(ctx context.Context, symbol string) (*models.ManagementCompensationBundle, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockResearchService) GetFinancialHistory(ctx context.Context, symbol string, years int) (*models.FinancialHistory, error) {
	if m.historyFn != nil {
		return m.historyFn(ctx, symbol, years)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockResearchService) CompareStocks(ctx context.Context, symbol1, symbol2 string) (*models.StockComparison, error) {
	if m.compareFn != nil {
		return m.compareFn(ctx, symbol1, symbol2)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockResearchService) FindSimilarCompanies(ctx context.Context, symbol string, limit int) (*models.SimilarityResult, error) {
	if m.similarFn != nil {
		return m.similarFn(ctx, symbol, limit)
	}
	return nil, fmt.Errorf("not implemented")
}

var _ interfaces.ResearchService = (*mockResearchService)(nil)

// --- mockScreenerService ---

type mockScreenerService struct {
	screenFn  func(ctx context.Context, filters models.ScreenFilters) ([]models.ScreenResult, error)
	detailsFn func(ctx context.Context, symbols []string) ([]models.ScreenDetail, error)
}

func (m *mockScreenerService) Screen(ctx context.Context, filters models.ScreenFilters) ([]models.ScreenResult, error) {
	if m.screenFn != nil {
		return m.screenFn(ctx, filters)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockScreenerService) ScreenDetails(ctx context.Context, symbols []string) ([]models.ScreenDetail, error) {
	if m.detailsFn != nil {
		return m.detailsFn(ctx, symbols)
	}
	return nil, fmt.Errorf("not implemented")
}

var _ interfaces.ScreenerService = (*mockScreenerService)(nil)
