package models

// Buyback is one period's share-repurchase activity
type Buyback struct {
	Symbol            string   `json:"symbol"`
	FiscalYear        int      `json:"fiscal_year"`
	FiscalQuarter     int      `json:"fiscal_quarter"`
	SharesRepurchased *int64   `json:"shares_repurchased,omitempty"`
	BuybackAmount     *float64 `json:"buyback_amount,omitempty"`
}

// QuarterlyShares is the outstanding share count at one quarter end
type QuarterlyShares struct {
	Symbol            string `json:"symbol"`
	FiscalYear        int    `json:"fiscal_year"`
	FiscalQuarter     int    `json:"fiscal_quarter"`
	SharesOutstanding int64  `json:"shares_outstanding"`
}

// StockBasedCompensation is one fiscal year's SBC expense
type StockBasedCompensation struct {
	Symbol     string  `json:"symbol"`
	FiscalYear int     `json:"fiscal_year"`
	SBCAmount  float64 `json:"sbc_amount"`
}

// ShareDataBundle is the dilution/buyback view for a symbol
type ShareDataBundle struct {
	Symbol          string            `json:"symbol"`
	QuarterlyShares []QuarterlyShares `json:"quarterly_shares,omitempty"`
	Buybacks        []Buyback         `json:"buybacks,omitempty"`
}

// Executive is one member of the management team with compensation detail
type Executive struct {
	Symbol           string   `json:"symbol"`
	Name             string   `json:"name"`
	Title            string   `json:"title,omitempty"`
	TotalPay         *float64 `json:"total_pay,omitempty"`
	ExercisedValue   *float64 `json:"exercised_value,omitempty"`
	UnexercisedValue *float64 `json:"unexercised_value,omitempty"`
	YearBorn         *int64   `json:"year_born,omitempty"`
	FiscalYear       int      `json:"fiscal_year,omitempty"`
}

// ManagementCompensationBundle combines executives with SBC history
type ManagementCompensationBundle struct {
	Symbol     string                   `json:"symbol"`
	Executives []Executive              `json:"executives,omitempty"`
	SBCHistory []StockBasedCompensation `json:"sbc_history,omitempty"`
}
