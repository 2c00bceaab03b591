package models

// ScreenFilters are the optional thresholds for the first screening stage.
// Nil thresholds are not applied; set thresholds combine conjunctively.
type ScreenFilters struct {
	MinROIC          *float64 `json:"min_roic,omitempty"`
	MinROE           *float64 `json:"min_roe,omitempty"`
	MinProfitMargin  *float64 `json:"min_profit_margin,omitempty"`
	MinRevenueGrowth *float64 `json:"min_revenue_growth,omitempty"`
	MaxDebtToEquity  *float64 `json:"max_debt_to_equity,omitempty"`
	MinMarketCap     *float64 `json:"min_market_cap,omitempty"`
	MaxMarketCap     *float64 `json:"max_market_cap,omitempty"`
	Sectors          []string `json:"sectors,omitempty"`
	Limit            int      `json:"limit,omitempty"`
}

// ScreenResult is the minimal per-symbol row from the aggregate screen
type ScreenResult struct {
	Symbol       string   `json:"symbol"`
	Name         string   `json:"name"`
	Sector       string   `json:"sector,omitempty"`
	MarketCap    *float64 `json:"market_cap,omitempty"`
	AvgROIC      *float64 `json:"avg_roic,omitempty"`
	AvgROE       *float64 `json:"avg_roe,omitempty"`
	AvgMargin    *float64 `json:"avg_margin,omitempty"`
	RevenueCAGR  *float64 `json:"revenue_cagr,omitempty"`
	DebtToEquity *float64 `json:"debt_to_equity,omitempty"`
	YearsOfData  int      `json:"years_of_data"`
}

// ScreenDetail is the latest-period deep detail for a screen finalist
type ScreenDetail struct {
	Symbol                    string   `json:"symbol"`
	FiscalYear                int      `json:"fiscal_year"`
	CurrentRatio              *float64 `json:"current_ratio,omitempty"`
	OperatingCashFlow         *float64 `json:"operating_cash_flow,omitempty"`
	FreeCashFlow              *float64 `json:"free_cash_flow,omitempty"`
	ForwardPE                 *float64 `json:"forward_pe,omitempty"`
	PEGRatio                  *float64 `json:"peg_ratio,omitempty"`
	DividendYield             *float64 `json:"dividend_yield,omitempty"`
	InsiderOwnershipPct       *float64 `json:"insider_ownership_pct,omitempty"`
	InstitutionalOwnershipPct *float64 `json:"institutional_ownership_pct,omitempty"`
}
