package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createGetVersionTool returns the get_version tool definition
func createGetVersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the Kestrel MCP server version and status. Use this to verify connectivity."),
	)
}

// createGetStockFundamentalsTool returns the get_stock_fundamentals tool definition
func createGetStockFundamentalsTool() mcp.Tool {
	return mcp.NewTool("get_stock_fundamentals",
		mcp.WithDescription("Get the fundamentals bundle for a stock: company profile, latest annual statement lines, derived quality ratios (ROIC, ROE, margins), revenue growth, and a live price overlay."),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Stock ticker (e.g., 'AAPL', 'MSFT')"),
		),
	)
}

// createGetValuationMetricsTool returns the get_valuation_metrics tool definition
func createGetValuationMetricsTool() mcp.Tool {
	return mcp.NewTool("get_valuation_metrics",
		mcp.WithDescription("Get valuation multiples and dividend terms for a stock: market cap, PE/PEG, price-to-book, price-to-sales, EV multiples, dividend yield and payout."),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Stock ticker (e.g., 'AAPL')"),
		),
	)
}

// createGetTechnicalIndicatorsTool returns the get_technical_indicators tool definition
func createGetTechnicalIndicatorsTool() mcp.Tool {
	return mcp.NewTool("get_technical_indicators",
		mcp.WithDescription("Compute technical indicators for a stock over a lookback period: moving averages, RSI, momentum, trend classification, and 52-week range."),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Stock ticker (e.g., 'AAPL')"),
		),
		mcp.WithString("period",
			mcp.Description("Lookback period: 1mo, 3mo, 6mo, 1y, 2y, 5y (default: 1y)"),
		),
	)
}

// createGetInsiderOwnershipTool returns the get_insider_ownership tool definition
func createGetInsiderOwnershipTool() mcp.Tool {
	return mcp.NewTool("get_insider_ownership",
		mcp.WithDescription("Get insider ownership percentages and recent insider buy/sell transactions for a stock."),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Stock ticker (e.g., 'AAPL')"),
		),
	)
}

// createGetInstitutionalHoldersTool returns the get_institutional_holders tool definition
func createGetInstitutionalHoldersTool() mcp.Tool {
	return mcp.NewTool("get_institutional_holders",
		mcp.WithDescription("Get the largest institutional holders of a stock plus the insider/institutional ownership split."),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Stock ticker (e.g., 'AAPL')"),
		),
	)
}

// createGetShareDataTool returns the get_share_data tool definition
func createGetShareDataTool() mcp.Tool {
	return mcp.NewTool("get_share_data",
		mcp.WithDescription("Get share count history and buyback activity for a stock, for dilution analysis."),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Stock ticker (e.g., 'AAPL')"),
		),
	)
}

// createGetManagementCompensationTool returns the get_management_compensation tool definition
func createGetManagementCompensationTool() mcp.Tool {
	return mcp.NewTool("get_management_compensation",
		mcp.WithDescription("Get executive compensation and stock-based compensation history for a stock."),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Stock ticker (e.g., 'AAPL')"),
		),
	)
}

// createGetFinancialHistoryTool returns the get_financial_history tool definition
func createGetFinancialHistoryTool() mcp.Tool {
	return mcp.NewTool("get_financial_history",
		mcp.WithDescription("Get multi-year annual financial statements with derived ratios, newest first."),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Stock ticker (e.g., 'AAPL')"),
		),
		mcp.WithNumber("years",
			mcp.Description("Number of fiscal years to return (default: 5, max: 10)"),
		),
	)
}

// createCalculateSimilarityTool returns the calculate_similarity tool definition
func createCalculateSimilarityTool() mcp.Tool {
	return mcp.NewTool("calculate_similarity",
		mcp.WithDescription("Compare two stocks: sector/industry match plus relative similarity of ROE, margins, and revenue growth."),
		mcp.WithString("symbol1",
			mcp.Required(),
			mcp.Description("First stock ticker"),
		),
		mcp.WithString("symbol2",
			mcp.Required(),
			mcp.Description("Second stock ticker"),
		),
	)
}

// createFindSimilarCompaniesTool returns the find_similar_companies tool definition
func createFindSimilarCompaniesTool() mcp.Tool {
	return mcp.NewTool("find_similar_companies",
		mcp.WithDescription("Find publicly traded peers of a reference stock, scored by sector, industry, market-cap closeness, and fundamental similarity."),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Reference stock ticker"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum matches to return (default: 10)"),
		),
	)
}

// createScreenStocksTool returns the screen_stocks tool definition
func createScreenStocksTool() mcp.Tool {
	return mcp.NewTool("screen_stocks",
		mcp.WithDescription("Screen stored stocks by multi-year quality averages: ROIC, ROE, margins, revenue CAGR, leverage, market cap, and sector. Only symbols with at least 3 years of data qualify."),
		mcp.WithNumber("min_roic",
			mcp.Description("Minimum average ROIC over the recent window (e.g., 0.15)"),
		),
		mcp.WithNumber("min_roe",
			mcp.Description("Minimum average ROE (e.g., 0.20)"),
		),
		mcp.WithNumber("min_profit_margin",
			mcp.Description("Minimum average net profit margin (e.g., 0.10)"),
		),
		mcp.WithNumber("min_revenue_growth",
			mcp.Description("Minimum revenue CAGR over the window (e.g., 0.05)"),
		),
		mcp.WithNumber("max_debt_to_equity",
			mcp.Description("Maximum latest-year debt-to-equity (e.g., 1.0)"),
		),
		mcp.WithNumber("min_market_cap",
			mcp.Description("Minimum market cap in dollars (e.g., 1e9)"),
		),
		mcp.WithNumber("max_market_cap",
			mcp.Description("Maximum market cap in dollars"),
		),
		mcp.WithArray("sectors",
			mcp.WithStringItems(),
			mcp.Description("GICS sector names to include (e.g., ['Technology', 'Healthcare'])"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results to return (default: 50)"),
		),
		mcp.WithBoolean("include_details",
			mcp.Description("Append latest-period detail for each finalist (default: false)"),
		),
	)
}
