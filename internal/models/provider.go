package models

// ProviderFundamentals is the full fundamentals document returned by the
// market data provider, mapped into entity types. Derived ratios are not
// populated here; callers compute them from the raw statement lines.
type ProviderFundamentals struct {
	Symbol              string                   `json:"symbol"`
	Company             *Company                 `json:"company,omitempty"`
	Highlights          Highlights               `json:"highlights"`
	Annual              []AnnualFundamentals     `json:"annual,omitempty"`
	Quarterly           []QuarterlyFundamentals  `json:"quarterly,omitempty"`
	Ownership           *OwnershipSnapshot       `json:"ownership,omitempty"`
	InsiderTransactions []InsiderTransaction     `json:"insider_transactions,omitempty"`
	Holders             []InstitutionalHolder    `json:"holders,omitempty"`
	MajorHolders        *MajorHolders            `json:"major_holders,omitempty"`
	Executives          []Executive              `json:"executives,omitempty"`
	Buybacks            []Buyback                `json:"buybacks,omitempty"`
	QuarterlyShares     []QuarterlyShares        `json:"quarterly_shares,omitempty"`
	SBC                 []StockBasedCompensation `json:"sbc,omitempty"`
}

// Highlights holds the provider's precomputed summary metrics. Any field the
// provider omits stays nil.
type Highlights struct {
	MarketCap        *float64 `json:"market_cap,omitempty"`
	EBITDA           *float64 `json:"ebitda,omitempty"`
	PERatio          *float64 `json:"pe_ratio,omitempty"`
	PEGRatio         *float64 `json:"peg_ratio,omitempty"`
	EPS              *float64 `json:"eps,omitempty"`
	BookValue        *float64 `json:"book_value,omitempty"`
	DividendYield    *float64 `json:"dividend_yield,omitempty"`
	ProfitMargin     *float64 `json:"profit_margin,omitempty"`
	OperatingMargin  *float64 `json:"operating_margin,omitempty"`
	ROA              *float64 `json:"roa,omitempty"`
	ROE              *float64 `json:"roe,omitempty"`
	RevenueGrowthYoY *float64 `json:"revenue_growth_yoy,omitempty"`
	PriceToSales     *float64 `json:"price_to_sales,omitempty"`
	PriceToBook      *float64 `json:"price_to_book,omitempty"`
	EVToRevenue      *float64 `json:"ev_to_revenue,omitempty"`
	EVToEBITDA       *float64 `json:"ev_to_ebitda,omitempty"`
	High52Week       *float64 `json:"high_52_week,omitempty"`
	Low52Week        *float64 `json:"low_52_week,omitempty"`
}
