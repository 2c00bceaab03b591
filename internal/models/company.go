// Package models defines data structures for Kestrel
package models

import "time"

// Company holds the slow-moving master record for a listed company.
// Optional metrics are pointers so an absent value never collapses to zero.
type Company struct {
	Symbol                   string    `json:"symbol"`
	Name                     string    `json:"name"`
	Sector                   string    `json:"sector,omitempty"`
	Industry                 string    `json:"industry,omitempty"`
	MarketCap                *float64  `json:"market_cap,omitempty"`
	Description              string    `json:"description,omitempty"`
	Beta                     *float64  `json:"beta,omitempty"`
	EnterpriseValue          *float64  `json:"enterprise_value,omitempty"`
	QuickRatio               *float64  `json:"quick_ratio,omitempty"`
	TotalCash                *float64  `json:"total_cash,omitempty"`
	TotalDebt                *float64  `json:"total_debt,omitempty"`
	SharesShort              *int64    `json:"shares_short,omitempty"`
	ImpliedSharesOutstanding *int64    `json:"implied_shares_outstanding,omitempty"`
	DividendYield            *float64  `json:"dividend_yield,omitempty"`
	DividendRate             *float64  `json:"dividend_rate,omitempty"`
	PayoutRatio              *float64  `json:"payout_ratio,omitempty"`
	ForwardPE                *float64  `json:"forward_pe,omitempty"`
	ForwardEPS               *float64  `json:"forward_eps,omitempty"`
	PEGRatio                 *float64  `json:"peg_ratio,omitempty"`
	LastUpdated              time.Time `json:"last_updated"`
}
