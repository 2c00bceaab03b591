package research

import (
	"context"
	"testing"
	"time"

	"github.com/kestrelhq/kestrel/internal/models"
)

func risingBars(symbol string, days int, start float64) []models.PriceBar {
	bars := make([]models.PriceBar, 0, days)
	now := time.Now()
	for n := days; n > 0; n-- {
		bars = append(bars, models.PriceBar{
			Symbol: symbol,
			Date:   now.AddDate(0, 0, -n),
			Close:  start + float64(days-n),
			Volume: 1000,
		})
	}
	return bars
}

func TestSMA(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}
	got := sma(closes, 3)
	if got == nil || *got != 4 {
		t.Errorf("sma(last 3 of 1..5) = %v, want 4", got)
	}
	if sma(closes, 10) != nil {
		t.Error("sma with too few bars must be nil")
	}
}

func TestRSI_Bounds(t *testing.T) {
	// Strictly rising: no losses, RSI pegs at 100
	rising := make([]float64, 20)
	for n := range rising {
		rising[n] = float64(n + 1)
	}
	got := rsi(rising, 14)
	if got == nil || *got != 100 {
		t.Errorf("rsi(rising) = %v, want 100", got)
	}

	// Alternating moves stay inside (0, 100)
	mixed := []float64{10, 11, 10, 12, 11, 13, 12, 14, 13, 15, 14, 16, 15, 17, 16, 18}
	got = rsi(mixed, 14)
	if got == nil {
		t.Fatal("rsi(mixed) = nil, want value")
	}
	if *got < 0 || *got > 100 {
		t.Errorf("rsi(mixed) = %v, want within [0, 100]", *got)
	}

	if rsi([]float64{1, 2, 3}, 14) != nil {
		t.Error("rsi with too few bars must be nil")
	}
}

func TestMomentum(t *testing.T) {
	closes := []float64{100, 105, 110}
	got := momentum(closes, 2)
	if got == nil || *got != 0.1 {
		t.Errorf("momentum over 2 bars = %v, want 0.1", got)
	}
	if momentum(closes, 5) != nil {
		t.Error("momentum with too few bars must be nil")
	}
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name   string
		price  float64
		sma50  *float64
		sma200 *float64
		want   string
	}{
		{"strong uptrend", 110, fp(105), fp(100), models.TrendStrongUptrend},
		{"uptrend without long average", 110, fp(105), nil, models.TrendUptrend},
		{"strong downtrend", 90, fp(95), fp(100), models.TrendStrongDowntrend},
		{"downtrend without long average", 90, fp(95), nil, models.TrendDowntrend},
		{"no averages", 100, nil, nil, models.TrendNeutral},
		{"price between averages", 100, fp(95), fp(105), models.TrendUptrend},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyTrend(tt.price, tt.sma50, tt.sma200); got != tt.want {
				t.Errorf("classifyTrend(%v) = %q, want %q", tt.price, got, tt.want)
			}
		})
	}
}

func TestGetTechnicalIndicators_RisingSeries(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	if err := store.SavePriceHistory(ctx, "ACME", risingBars("ACME", 260, 50)); err != nil {
		t.Fatalf("seed prices: %v", err)
	}

	ind, err := svc.GetTechnicalIndicators(ctx, "ACME", "1y")
	if err != nil {
		t.Fatalf("GetTechnicalIndicators() error = %v", err)
	}

	if ind.Trend != models.TrendStrongUptrend {
		t.Errorf("Trend = %q, want %q for a monotonically rising series", ind.Trend, models.TrendStrongUptrend)
	}
	if ind.RSI14 == nil || *ind.RSI14 != 100 {
		t.Errorf("RSI14 = %v, want 100 for a rising series", ind.RSI14)
	}
	if ind.SMA50 == nil || ind.SMA200 == nil {
		t.Error("SMA50/SMA200 = nil, want values with 260 bars")
	}
	if ind.Momentum1Y == nil {
		t.Error("Momentum1Y = nil, want value with 260 bars")
	}
	if ind.High52Week <= ind.Low52Week {
		t.Errorf("High52Week %v must exceed Low52Week %v", ind.High52Week, ind.Low52Week)
	}
	if ind.CurrentPrice != ind.High52Week {
		t.Errorf("CurrentPrice = %v, want the high %v on a rising series", ind.CurrentPrice, ind.High52Week)
	}
}

func TestGetTechnicalIndicators_FetchOnMiss(t *testing.T) {
	svc, store, client := newTestService(t)
	ctx := context.Background()

	client.eod["ACME"] = risingBars("ACME", 30, 100)

	ind, err := svc.GetTechnicalIndicators(ctx, "ACME", "1mo")
	if err != nil {
		t.Fatalf("GetTechnicalIndicators() error = %v", err)
	}
	if ind.BarCount != 30 {
		t.Errorf("BarCount = %d, want 30 fetched bars", ind.BarCount)
	}

	// Fetched bars were persisted
	now := time.Now()
	bars, err := store.GetPriceHistory(ctx, "ACME", now.AddDate(0, -2, 0), now)
	if err != nil {
		t.Fatalf("GetPriceHistory() error = %v", err)
	}
	if len(bars) != 30 {
		t.Errorf("persisted bars = %d, want 30", len(bars))
	}
}

func TestGetTechnicalIndicators_UnknownPeriodDefaults(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	if err := store.SavePriceHistory(ctx, "ACME", risingBars("ACME", 10, 100)); err != nil {
		t.Fatalf("seed prices: %v", err)
	}

	ind, err := svc.GetTechnicalIndicators(ctx, "ACME", "fortnight")
	if err != nil {
		t.Fatalf("GetTechnicalIndicators() error = %v", err)
	}
	if ind.Period != "1y" {
		t.Errorf("Period = %q, want default 1y for unknown token", ind.Period)
	}
}

func TestGetTechnicalIndicators_NoData(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetTechnicalIndicators(context.Background(), "NOPE", "1y")
	if err == nil {
		t.Fatal("GetTechnicalIndicators() error = nil, want failure with no data anywhere")
	}
}
