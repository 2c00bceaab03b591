package models

import "time"

// AnnualFundamentals is one fiscal year of statement data plus derived ratios
type AnnualFundamentals struct {
	Symbol             string   `json:"symbol"`
	FiscalYear         int      `json:"fiscal_year"`
	Revenue            *float64 `json:"revenue,omitempty"`
	OperatingIncome    *float64 `json:"operating_income,omitempty"`
	NetIncome          *float64 `json:"net_income,omitempty"`
	TotalAssets        *float64 `json:"total_assets,omitempty"`
	TotalLiabilities   *float64 `json:"total_liabilities,omitempty"`
	CurrentLiabilities *float64 `json:"current_liabilities,omitempty"`
	CurrentAssets      *float64 `json:"current_assets,omitempty"`
	GrossProfit        *float64 `json:"gross_profit,omitempty"`
	ShareholdersEquity *float64 `json:"shareholders_equity,omitempty"`
	OperatingCashFlow  *float64 `json:"operating_cash_flow,omitempty"`
	FreeCashFlow       *float64 `json:"free_cash_flow,omitempty"`
	SharesOutstanding  *int64   `json:"shares_outstanding,omitempty"`
	ROIC               *float64 `json:"roic,omitempty"`
	ROE                *float64 `json:"roe,omitempty"`
	ROA                *float64 `json:"roa,omitempty"`
	EBITDA             *float64 `json:"ebitda,omitempty"`
	ProfitMargin       *float64 `json:"profit_margin,omitempty"`
	OperatingMargin    *float64 `json:"operating_margin,omitempty"`
	GrossMargin        *float64 `json:"gross_margin,omitempty"`
	DebtToEquity       *float64 `json:"debt_to_equity,omitempty"`
	CurrentRatio       *float64 `json:"current_ratio,omitempty"`
}

// QuarterlyFundamentals is one fiscal quarter of statement data
type QuarterlyFundamentals struct {
	Symbol             string   `json:"symbol"`
	FiscalYear         int      `json:"fiscal_year"`
	FiscalQuarter      int      `json:"fiscal_quarter"`
	Revenue            *float64 `json:"revenue,omitempty"`
	GrossProfit        *float64 `json:"gross_profit,omitempty"`
	OperatingIncome    *float64 `json:"operating_income,omitempty"`
	NetIncome          *float64 `json:"net_income,omitempty"`
	TotalAssets        *float64 `json:"total_assets,omitempty"`
	TotalLiabilities   *float64 `json:"total_liabilities,omitempty"`
	ShareholdersEquity *float64 `json:"shareholders_equity,omitempty"`
	OperatingCashFlow  *float64 `json:"operating_cash_flow,omitempty"`
	FreeCashFlow       *float64 `json:"free_cash_flow,omitempty"`
	SharesOutstanding  *int64   `json:"shares_outstanding,omitempty"`
}

// FundamentalsBundle is the aggregated fundamentals view for a symbol:
// company context, the latest annual period, and a live price overlay
type FundamentalsBundle struct {
	Symbol             string   `json:"symbol"`
	Name               string   `json:"name"`
	Sector             string   `json:"sector,omitempty"`
	Industry           string   `json:"industry,omitempty"`
	MarketCap          *float64 `json:"market_cap,omitempty"`
	FiscalYear         int      `json:"fiscal_year,omitempty"`
	Revenue            *float64 `json:"revenue,omitempty"`
	OperatingIncome    *float64 `json:"operating_income,omitempty"`
	NetIncome          *float64 `json:"net_income,omitempty"`
	TotalAssets        *float64 `json:"total_assets,omitempty"`
	TotalLiabilities   *float64 `json:"total_liabilities,omitempty"`
	ShareholdersEquity *float64 `json:"shareholders_equity,omitempty"`
	OperatingCashFlow  *float64 `json:"operating_cash_flow,omitempty"`
	FreeCashFlow       *float64 `json:"free_cash_flow,omitempty"`
	ROIC               *float64 `json:"roic,omitempty"`
	ROE                *float64 `json:"roe,omitempty"`
	ROA                *float64 `json:"roa,omitempty"`
	ProfitMargin       *float64 `json:"profit_margin,omitempty"`
	OperatingMargin    *float64 `json:"operating_margin,omitempty"`
	GrossMargin        *float64 `json:"gross_margin,omitempty"`
	DebtToEquity       *float64 `json:"debt_to_equity,omitempty"`
	CurrentRatio       *float64 `json:"current_ratio,omitempty"`
	RevenueGrowth      *float64 `json:"revenue_growth,omitempty"`
	CurrentPrice       *float64 `json:"current_price,omitempty"`
	High52Week         *float64 `json:"high_52_week,omitempty"`
	Low52Week          *float64 `json:"low_52_week,omitempty"`
	LastUpdated        time.Time `json:"last_updated"`
}

// ValuationMetrics holds market multiples and dividend terms for a symbol
type ValuationMetrics struct {
	Symbol            string   `json:"symbol"`
	CurrentPrice      *float64 `json:"current_price,omitempty"`
	MarketCap         *float64 `json:"market_cap,omitempty"`
	EnterpriseValue   *float64 `json:"enterprise_value,omitempty"`
	TrailingPE        *float64 `json:"trailing_pe,omitempty"`
	ForwardPE         *float64 `json:"forward_pe,omitempty"`
	PEGRatio          *float64 `json:"peg_ratio,omitempty"`
	PriceToBook       *float64 `json:"price_to_book,omitempty"`
	PriceToSales      *float64 `json:"price_to_sales,omitempty"`
	EVToRevenue       *float64 `json:"ev_to_revenue,omitempty"`
	EVToEBITDA        *float64 `json:"ev_to_ebitda,omitempty"`
	EPS               *float64 `json:"eps,omitempty"`
	ForwardEPS        *float64 `json:"forward_eps,omitempty"`
	BookValuePerShare *float64 `json:"book_value_per_share,omitempty"`
	DividendYield     *float64 `json:"dividend_yield,omitempty"`
	DividendRate      *float64 `json:"dividend_rate,omitempty"`
	PayoutRatio       *float64 `json:"payout_ratio,omitempty"`
}
