package models

import "time"

// OwnershipSnapshot is a point-in-time view of who holds the stock
type OwnershipSnapshot struct {
	Symbol                    string    `json:"symbol"`
	AsOfDate                  time.Time `json:"as_of_date"`
	InsiderOwnershipPct       *float64  `json:"insider_ownership_pct,omitempty"`
	InstitutionalOwnershipPct *float64  `json:"institutional_ownership_pct,omitempty"`
	SharesOutstanding         *int64    `json:"shares_outstanding,omitempty"`
	FloatShares               *int64    `json:"float_shares,omitempty"`
}

// InsiderTransaction is one reported insider trade (append-only event)
type InsiderTransaction struct {
	Symbol          string    `json:"symbol"`
	TransactionDate time.Time `json:"transaction_date"`
	InsiderName     string    `json:"insider_name"`
	InsiderTitle    string    `json:"insider_title,omitempty"`
	TransactionType string    `json:"transaction_type"`
	Shares          *int64    `json:"shares,omitempty"`
	Value           *float64  `json:"value,omitempty"`
	PricePerShare   *float64  `json:"price_per_share,omitempty"`
}

// InstitutionalHolder is one row of the current top-holders snapshot
type InstitutionalHolder struct {
	Symbol       string    `json:"symbol"`
	HolderName   string    `json:"holder_name"`
	Shares       int64     `json:"shares"`
	DateReported time.Time `json:"date_reported"`
	PctOut       *float64  `json:"pct_out,omitempty"`
	Value        *float64  `json:"value,omitempty"`
}

// MajorHolders summarizes the ownership split between insiders and institutions
type MajorHolders struct {
	Symbol                   string    `json:"symbol"`
	AsOfDate                 time.Time `json:"as_of_date"`
	InsidersPercent          *float64  `json:"insiders_percent,omitempty"`
	InstitutionsPercent      *float64  `json:"institutions_percent,omitempty"`
	InstitutionsFloatPercent *float64  `json:"institutions_float_percent,omitempty"`
	InstitutionsCount        *int64    `json:"institutions_count,omitempty"`
}

// InsiderOwnershipBundle combines the ownership snapshot with recent trades
type InsiderOwnershipBundle struct {
	Symbol       string               `json:"symbol"`
	Ownership    *OwnershipSnapshot   `json:"ownership,omitempty"`
	Transactions []InsiderTransaction `json:"transactions,omitempty"`
}

// InstitutionalHoldersBundle combines top holders with the major-holders summary
type InstitutionalHoldersBundle struct {
	Symbol  string                `json:"symbol"`
	Holders []InstitutionalHolder `json:"holders,omitempty"`
	Major   *MajorHolders         `json:"major_holders,omitempty"`
}
