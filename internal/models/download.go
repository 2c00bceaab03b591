package models

import "time"

// SymbolData gathers every entity kind fetched for one symbol so it can be
// persisted in a single transaction
type SymbolData struct {
	Symbol              string                   `json:"symbol"`
	Company             *Company                 `json:"company,omitempty"`
	Annual              []AnnualFundamentals     `json:"annual,omitempty"`
	Quarterly           []QuarterlyFundamentals  `json:"quarterly,omitempty"`
	Prices              []PriceBar               `json:"prices,omitempty"`
	Ownership           *OwnershipSnapshot       `json:"ownership,omitempty"`
	InsiderTransactions []InsiderTransaction     `json:"insider_transactions,omitempty"`
	Holders             []InstitutionalHolder    `json:"holders,omitempty"`
	MajorHolders        *MajorHolders            `json:"major_holders,omitempty"`
	Executives          []Executive              `json:"executives,omitempty"`
	Buybacks            []Buyback                `json:"buybacks,omitempty"`
	QuarterlyShares     []QuarterlyShares        `json:"quarterly_shares,omitempty"`
	SBC                 []StockBasedCompensation `json:"sbc,omitempty"`
}

// DownloadReport summarizes one batch download or refresh run
type DownloadReport struct {
	RunID         string        `json:"run_id"`
	StartedAt     time.Time     `json:"started_at"`
	Elapsed       time.Duration `json:"elapsed"`
	Total         int           `json:"total"`
	Succeeded     int           `json:"succeeded"`
	Failed        int           `json:"failed"`
	FailedSymbols []string      `json:"failed_symbols,omitempty"`
}

// FinancialHistory is a multi-year annual fundamentals view, newest first
type FinancialHistory struct {
	Symbol  string               `json:"symbol"`
	Years   int                  `json:"years"`
	Periods []AnnualFundamentals `json:"periods"`
}
