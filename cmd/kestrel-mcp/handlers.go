package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kestrelhq/kestrel/internal/common"
	"github.com/kestrelhq/kestrel/internal/interfaces"
	"github.com/kestrelhq/kestrel/internal/models"
)

// handleGetVersion implements the get_version tool
func handleGetVersion() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := fmt.Sprintf("Kestrel MCP Server\nVersion: %s\nBuild: %s\nCommit: %s\nStatus: OK",
			common.GetVersion(), common.GetBuild(), common.GetGitCommit())
		return textResult(result), nil
	}
}

// handleGetStockFundamentals implements the get_stock_fundamentals tool
func handleGetStockFundamentals(researchService interfaces.ResearchService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := request.RequireString("symbol")
		if err != nil || symbol == "" {
			return errorResult("Error: symbol parameter is required"), nil
		}

		bundle, err := researchService.GetFundamentals(ctx, symbol)
		if err != nil {
			logger.Error().Err(err).Str("symbol", symbol).Msg("fundamentals lookup failed")
			return errorResult(fmt.Sprintf("Fundamentals error: %v", err)), nil
		}

		return textResult(formatFundamentals(bundle)), nil
	}
}

// handleGetValuationMetrics implements the get_valuation_metrics tool
func handleGetValuationMetrics(researchService interfaces.ResearchService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := request.RequireString("symbol")
		if err != nil || symbol == "" {
			return errorResult("Error: symbol parameter is required"), nil
		}

		metrics, err := researchService.GetValuationMetrics(ctx, symbol)
		if err != nil {
			logger.Error().Err(err).Str("symbol", symbol).Msg("valuation lookup failed")
			return errorResult(fmt.Sprintf("Valuation error: %v", err)), nil
		}

		return textResult(formatValuationMetrics(metrics)), nil
	}
}

// handleGetTechnicalIndicators implements the get_technical_indicators tool
func handleGetTechnicalIndicators(researchService interfaces.ResearchService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := request.RequireString("symbol")
		if err != nil || symbol == "" {
			return errorResult("Error: symbol parameter is required"), nil
		}
		period := request.GetString("period", "1y")

		indicators, err := researchService.GetTechnicalIndicators(ctx, symbol, period)
		if err != nil {
			logger.Error().Err(err).Str("symbol", symbol).Msg("technicals computation failed")
			return errorResult(fmt.Sprintf("Technicals error: %v", err)), nil
		}

		return textResult(formatTechnicalIndicators(indicators)), nil
	}
}

// handleGetInsiderOwnership implements the get_insider_ownership tool
func handleGetInsiderOwnership(researchService interfaces.ResearchService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := request.RequireString("symbol")
		if err != nil || symbol == "" {
			return errorResult("Error: symbol parameter is required"), nil
		}

		bundle, err := researchService.GetInsiderOwnership(ctx, symbol)
		if err != nil {
			logger.Error().Err(err).Str("symbol", symbol).Msg("insider ownership lookup failed")
			return errorResult(fmt.Sprintf("Insider ownership error: %v", err)), nil
		}

		return textResult(formatInsiderOwnership(bundle)), nil
	}
}

// handleGetInstitutionalHolders implements the get_institutional_holders tool
func handleGetInstitutionalHolders(researchService interfaces.ResearchService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := request.RequireString("symbol")
		if err != nil || symbol == "" {
			return errorResult("Error: symbol parameter is required"), nil
		}

		bundle, err := researchService.GetInstitutionalHolders(ctx, symbol)
		if err != nil {
			logger.Error().Err(err).Str("symbol", symbol).Msg("holders lookup failed")
			return errorResult(fmt.Sprintf("Holders error: %v", err)), nil
		}

		return textResult(formatInstitutionalHolders(bundle)), nil
	}
}

// handleGetShareData implements the get_share_data tool
func handleGetShareData(researchService interfaces.ResearchService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := request.RequireString("symbol")
		if err != nil || symbol == "" {
			return errorResult("Error: symbol parameter is required"), nil
		}

		bundle, err := researchService.GetShareData(ctx, symbol)
		if err != nil {
			logger.Error().Err(err).Str("symbol", symbol).Msg("share data lookup failed")
			return errorResult(fmt.Sprintf("Share data error: %v", err)), nil
		}

		return textResult(formatShareData(bundle)), nil
	}
}

// handleGetManagementCompensation implements the get_management_compensation tool
func handleGetManagementCompensation(researchService interfaces.ResearchService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := request.RequireString("symbol")
		if err != nil || symbol == "" {
			return errorResult("Error: symbol parameter is required"), nil
		}

		bundle, err := researchService.GetManagementCompensation(ctx, symbol)
		if err != nil {
			logger.Error().Err(err).Str("symbol", symbol).Msg("compensation lookup failed")
			return errorResult(fmt.Sprintf("Compensation error: %v", err)), nil
		}

		return textResult(formatManagementCompensation(bundle)), nil
	}
}

// handleGetFinancialHistory implements the get_financial_history tool
func handleGetFinancialHistory(researchService interfaces.ResearchService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := request.RequireString("symbol")
		if err != nil || symbol == "" {
			return errorResult("Error: symbol parameter is required"), nil
		}
		years := request.GetInt("years", 0)

		history, err := researchService.GetFinancialHistory(ctx, symbol, years)
		if err != nil {
			logger.Error().Err(err).Str("symbol", symbol).Msg("history lookup failed")
			return errorResult(fmt.Sprintf("History error: %v", err)), nil
		}

		return textResult(formatFinancialHistory(history)), nil
	}
}

// handleCalculateSimilarity implements the calculate_similarity tool
func handleCalculateSimilarity(researchService interfaces.ResearchService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol1, err := request.RequireString("symbol1")
		if err != nil || symbol1 == "" {
			return errorResult("Error: symbol1 parameter is required"), nil
		}
		symbol2, err := request.RequireString("symbol2")
		if err != nil || symbol2 == "" {
			return errorResult("Error: symbol2 parameter is required"), nil
		}

		comparison, err := researchService.CompareStocks(ctx, symbol1, symbol2)
		if err != nil {
			logger.Error().Err(err).Str("symbol1", symbol1).Str("symbol2", symbol2).Msg("comparison failed")
			return errorResult(fmt.Sprintf("Comparison error: %v", err)), nil
		}

		return textResult(formatComparison(comparison)), nil
	}
}

// handleFindSimilarCompanies implements the find_similar_companies tool
func handleFindSimilarCompanies(researchService interfaces.ResearchService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := request.RequireString("symbol")
		if err != nil || symbol == "" {
			return errorResult("Error: symbol parameter is required"), nil
		}
		limit := request.GetInt("limit", 0)

		result, err := researchService.FindSimilarCompanies(ctx, symbol, limit)
		if err != nil {
			logger.Error().Err(err).Str("symbol", symbol).Msg("similarity search failed")
			return errorResult(fmt.Sprintf("Similarity error: %v", err)), nil
		}

		return textResult(formatSimilarityResult(result)), nil
	}
}

// handleScreenStocks implements the screen_stocks tool
func handleScreenStocks(screenerService interfaces.ScreenerService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filters := models.ScreenFilters{
			MinROIC:          optionalFloat(request, "min_roic"),
			MinROE:           optionalFloat(request, "min_roe"),
			MinProfitMargin:  optionalFloat(request, "min_profit_margin"),
			MinRevenueGrowth: optionalFloat(request, "min_revenue_growth"),
			MaxDebtToEquity:  optionalFloat(request, "max_debt_to_equity"),
			MinMarketCap:     optionalFloat(request, "min_market_cap"),
			MaxMarketCap:     optionalFloat(request, "max_market_cap"),
			Sectors:          request.GetStringSlice("sectors", nil),
			Limit:            request.GetInt("limit", 0),
		}

		results, err := screenerService.Screen(ctx, filters)
		if err != nil {
			logger.Error().Err(err).Msg("screen failed")
			return errorResult(fmt.Sprintf("Screen error: %v", err)), nil
		}

		var details []models.ScreenDetail
		if request.GetBool("include_details", false) && len(results) > 0 {
			symbols := make([]string, len(results))
			for i, r := range results {
				symbols[i] = r.Symbol
			}
			details, err = screenerService.ScreenDetails(ctx, symbols)
			if err != nil {
				logger.Warn().Err(err).Msg("screen details failed, returning first stage only")
				details = nil
			}
		}

		return textResult(formatScreenResults(results, details, filters)), nil
	}
}

// Helper functions

// optionalFloat reads a numeric argument only when the caller supplied it
func optionalFloat(request mcp.CallToolRequest, key string) *float64 {
	args := request.GetArguments()
	if _, ok := args[key]; !ok {
		return nil
	}
	v := request.GetFloat(key, 0)
	return &v
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}
