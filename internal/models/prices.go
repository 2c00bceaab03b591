package models

import "time"

// PriceBar represents a single day's price data
type PriceBar struct {
	Symbol   string    `json:"symbol"`
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	AdjClose float64   `json:"adjusted_close"`
	Volume   int64     `json:"volume"`
}

// Trend classifications derived from price position relative to moving averages
const (
	TrendStrongUptrend   = "strong_uptrend"
	TrendUptrend         = "uptrend"
	TrendNeutral         = "neutral"
	TrendDowntrend       = "downtrend"
	TrendStrongDowntrend = "strong_downtrend"
)

// TechnicalIndicators holds computed technical metrics over a lookback window
type TechnicalIndicators struct {
	Symbol       string   `json:"symbol"`
	Period       string   `json:"period"`
	CurrentPrice float64  `json:"current_price"`
	SMA50        *float64 `json:"sma_50,omitempty"`
	SMA200       *float64 `json:"sma_200,omitempty"`
	RSI14        *float64 `json:"rsi_14,omitempty"`
	Trend        string   `json:"trend"`
	Momentum1M   *float64 `json:"momentum_1m,omitempty"`
	Momentum3M   *float64 `json:"momentum_3m,omitempty"`
	Momentum1Y   *float64 `json:"momentum_1y,omitempty"`
	High52Week   float64  `json:"high_52_week"`
	Low52Week    float64  `json:"low_52_week"`
	AvgVolume    int64    `json:"avg_volume"`
	BarCount     int      `json:"bar_count"`
}

// RealTimeQuote holds a live price snapshot from the provider
type RealTimeQuote struct {
	Symbol        string    `json:"symbol"`
	Close         float64   `json:"close"`
	PreviousClose float64   `json:"previous_close"`
	Change        float64   `json:"change"`
	ChangePct     float64   `json:"change_p"`
	Volume        int64     `json:"volume"`
	Timestamp     time.Time `json:"timestamp"`
}
