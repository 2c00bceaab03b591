package main

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kestrelhq/kestrel/internal/models"
)

func fp(v float64) *float64 { return &v }

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	return request
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	return text.Text
}

func TestHandleGetVersion(t *testing.T) {
	handler := handleGetVersion()

	result, err := handler(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if result.IsError {
		t.Fatal("version handler returned error result")
	}
	if !strings.Contains(resultText(t, result), "Kestrel MCP Server") {
		t.Error("result should contain the server name")
	}
}

func TestHandleGetStockFundamentals_Success(t *testing.T) {
	svc := &mockResearchService{
		fundamentalsFn: func(ctx context.Context, symbol string) (*models.FundamentalsBundle, error) {
			return &models.FundamentalsBundle{
				Symbol:       symbol,
				Name:         "Acme Corp",
				Sector:       "Technology",
				MarketCap:    fp(5e9),
				FiscalYear:   2025,
				Revenue:      fp(1e9),
				ROIC:         fp(0.21),
				ProfitMargin: fp(0.18),
			}, nil
		},
	}
	handler := handleGetStockFundamentals(svc, testLogger())

	result, err := handler(context.Background(), callRequest(map[string]interface{}{"symbol": "ACME"}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error: %v", result.Content)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Acme Corp") {
		t.Error("result should contain the company name")
	}
	if !strings.Contains(text, "$5.00B") {
		t.Error("result should contain the formatted market cap")
	}
	if !strings.Contains(text, "21.0%") {
		t.Error("result should contain ROIC as a percentage")
	}
}

func TestHandleGetStockFundamentals_MissingSymbol(t *testing.T) {
	handler := handleGetStockFundamentals(&mockResearchService{}, testLogger())

	result, err := handler(context.Background(), callRequest(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for missing symbol")
	}
}

func TestHandleGetStockFundamentals_ServiceError(t *testing.T) {
	svc := &mockResearchService{
		fundamentalsFn: func(ctx context.Context, symbol string) (*models.FundamentalsBundle, error) {
			return nil, fmt.Errorf("provider unavailable")
		},
	}
	handler := handleGetStockFundamentals(svc, testLogger())

	result, err := handler(context.Background(), callRequest(map[string]interface{}{"symbol": "ACME"}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result when the service fails")
	}
	if !strings.Contains(resultText(t, result), "provider unavailable") {
		t.Error("error result should carry the underlying message")
	}
}

func TestHandleGetTechnicalIndicators_PeriodDefault(t *testing.T) {
	var gotPeriod string
	svc := &mockResearchService{
		technicalsFn: func(ctx context.Context, symbol, period string) (*models.TechnicalIndicators, error) {
			gotPeriod = period
			return &models.TechnicalIndicators{
				Symbol: symbol, Period: period,
				CurrentPrice: 101.5, Trend: models.TrendUptrend,
				High52Week: 120, Low52Week: 80,
			}, nil
		},
	}
	handler := handleGetTechnicalIndicators(svc, testLogger())

	result, err := handler(context.Background(), callRequest(map[string]interface{}{"symbol": "ACME"}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error: %v", result.Content)
	}
	if gotPeriod != "1y" {
		t.Errorf("period = %q, want default 1y", gotPeriod)
	}
	if !strings.Contains(resultText(t, result), "uptrend") {
		t.Error("result should contain the trend classification")
	}
}

func TestHandleGetFinancialHistory_PassesYears(t *testing.T) {
	var gotYears int
	svc := &mockResearchService{
		historyFn: func(ctx context.Context, symbol string, years int) (*models.FinancialHistory, error) {
			gotYears = years
			return &models.FinancialHistory{
				Symbol: symbol, Years: years,
				Periods: []models.AnnualFundamentals{
					{Symbol: symbol, FiscalYear: 2025, Revenue: fp(1e9)},
				},
			}, nil
		},
	}
	handler := handleGetFinancialHistory(svc, testLogger())

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"symbol": "ACME",
		"years":  float64(7),
	}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error: %v", result.Content)
	}
	if gotYears != 7 {
		t.Errorf("years = %d, want 7", gotYears)
	}
}

func TestHandleCalculateSimilarity_RequiresBothSymbols(t *testing.T) {
	handler := handleCalculateSimilarity(&mockResearchService{}, testLogger())

	result, err := handler(context.Background(), callRequest(map[string]interface{}{"symbol1": "ACME"}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !result.IsError {
		t.Error("expected error result when symbol2 is missing")
	}
}

func TestHandleFindSimilarCompanies_Success(t *testing.T) {
	svc := &mockResearchService{
		similarFn: func(ctx context.Context, symbol string, limit int) (*models.SimilarityResult, error) {
			return &models.SimilarityResult{
				ReferenceSymbol: symbol, ReferenceSector: "Technology",
				ReferenceMarketCap: 5e9,
				CandidatesAnalyzed: 12, MatchesFound: 1,
				Matches: []models.SimilarityMatch{
					{Symbol: "TWIN", Name: "Twin Inc", Industry: "Software", MarketCap: fp(4.8e9), Score: 93.5},
				},
			}, nil
		},
	}
	handler := handleFindSimilarCompanies(svc, testLogger())

	result, err := handler(context.Background(), callRequest(map[string]interface{}{"symbol": "ACME"}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "TWIN") || !strings.Contains(text, "93.5") {
		t.Error("result should contain the match row with its score")
	}
}

func TestHandleScreenStocks_FilterPlumbing(t *testing.T) {
	var gotFilters models.ScreenFilters
	svc := &mockScreenerService{
		screenFn: func(ctx context.Context, filters models.ScreenFilters) ([]models.ScreenResult, error) {
			gotFilters = filters
			return []models.ScreenResult{
				{Symbol: "ACME", Name: "Acme Corp", Sector: "Technology",
					AvgROIC: fp(0.2), AvgROE: fp(0.22), YearsOfData: 5},
			}, nil
		},
	}
	handler := handleScreenStocks(svc, testLogger())

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"min_roic": 0.15,
		"sectors":  []interface{}{"Technology"},
		"limit":    float64(5),
	}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error: %v", result.Content)
	}

	if gotFilters.MinROIC == nil || *gotFilters.MinROIC != 0.15 {
		t.Errorf("MinROIC = %v, want 0.15", gotFilters.MinROIC)
	}
	if gotFilters.MinROE != nil {
		t.Errorf("MinROE = %v, want nil when not supplied", gotFilters.MinROE)
	}
	if len(gotFilters.Sectors) != 1 || gotFilters.Sectors[0] != "Technology" {
		t.Errorf("Sectors = %v, want [Technology]", gotFilters.Sectors)
	}
	if gotFilters.Limit != 5 {
		t.Errorf("Limit = %d, want 5", gotFilters.Limit)
	}
	if !strings.Contains(resultText(t, result), "ACME") {
		t.Error("result should contain the matched symbol")
	}
}

func TestHandleScreenStocks_IncludeDetails(t *testing.T) {
	var detailSymbols []string
	svc := &mockScreenerService{
		screenFn: func(ctx context.Context, filters models.ScreenFilters) ([]models.ScreenResult, error) {
			return []models.ScreenResult{
				{Symbol: "AAA", Name: "AAA Inc"},
				{Symbol: "BBB", Name: "BBB Inc"},
			}, nil
		},
		detailsFn: func(ctx context.Context, symbols []string) ([]models.ScreenDetail, error) {
			detailSymbols = symbols
			return []models.ScreenDetail{
				{Symbol: "AAA", FiscalYear: 2025, CurrentRatio: fp(1.8)},
			}, nil
		},
	}
	handler := handleScreenStocks(svc, testLogger())

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"include_details": true,
	}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if len(detailSymbols) != 2 {
		t.Errorf("detail symbols = %v, want both finalists", detailSymbols)
	}
	if !strings.Contains(resultText(t, result), "Latest-Period Detail") {
		t.Error("result should contain the detail section")
	}
}

func TestHandleScreenStocks_ServiceError(t *testing.T) {
	svc := &mockScreenerService{
		screenFn: func(ctx context.Context, filters models.ScreenFilters) ([]models.ScreenResult, error) {
			return nil, fmt.Errorf("query failed")
		},
	}
	handler := handleScreenStocks(svc, testLogger())

	result, err := handler(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !result.IsError {
		t.Error("expected error result when the screen fails")
	}
}
