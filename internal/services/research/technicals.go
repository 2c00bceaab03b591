package research

import (
	"context"
	"fmt"
	"time"

	"github.com/kestrelhq/kestrel/internal/interfaces"
	"github.com/kestrelhq/kestrel/internal/models"
)

// lookbackPeriods maps the accepted period tokens to calendar durations
var lookbackPeriods = map[string]func(time.Time) time.Time{
	"1mo": func(t time.Time) time.Time { return t.AddDate(0, -1, 0) },
	"3mo": func(t time.Time) time.Time { return t.AddDate(0, -3, 0) },
	"6mo": func(t time.Time) time.Time { return t.AddDate(0, -6, 0) },
	"1y":  func(t time.Time) time.Time { return t.AddDate(-1, 0, 0) },
	"2y":  func(t time.Time) time.Time { return t.AddDate(-2, 0, 0) },
	"5y":  func(t time.Time) time.Time { return t.AddDate(-5, 0, 0) },
}

const defaultPeriod = "1y"

// Approximate trading-day windows
const (
	tradingDays1M = 21
	tradingDays3M = 63
	tradingDays1Y = 252
)

// GetTechnicalIndicators computes technicals over a lookback period.
// Price history comes from the store, fetched and persisted on miss.
func (s *Service) GetTechnicalIndicators(ctx context.Context, symbol, period string) (*models.TechnicalIndicators, error) {
	lookback, ok := lookbackPeriods[period]
	if !ok {
		period = defaultPeriod
		lookback = lookbackPeriods[defaultPeriod]
	}

	now := time.Now()
	from := lookback(now)

	bars, err := s.storage.GetPriceHistory(ctx, symbol, from, now)
	if err != nil {
		s.logger.Warn().Str("symbol", symbol).Err(err).Msg("price history read failed, treating as miss")
		bars = nil
	}

	if len(bars) == 0 {
		fetched, fetchErr := s.client.GetEOD(ctx, symbol, interfaces.WithDateRange(from, now))
		if fetchErr != nil {
			return nil, fmt.Errorf("failed to fetch price history for %s: %w", symbol, fetchErr)
		}
		if err := s.storage.SavePriceHistory(ctx, symbol, fetched); err != nil {
			s.logger.Warn().Str("symbol", symbol).Err(err).Msg("failed to persist price history")
		}
		bars = fetched
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("no price history for %s: %w", symbol, models.ErrNotFound)
	}

	closes := make([]float64, len(bars))
	var volumeSum int64
	high, low := bars[0].Close, bars[0].Close
	for idx, bar := range bars {
		closes[idx] = bar.Close
		volumeSum += bar.Volume
		if bar.Close > high {
			high = bar.Close
		}
		if bar.Close < low {
			low = bar.Close
		}
	}

	current := closes[len(closes)-1]
	sma50 := sma(closes, 50)
	sma200 := sma(closes, 200)

	ind := &models.TechnicalIndicators{
		Symbol:       symbol,
		Period:       period,
		CurrentPrice: current,
		SMA50:        sma50,
		SMA200:       sma200,
		RSI14:        rsi(closes, 14),
		Trend:        classifyTrend(current, sma50, sma200),
		Momentum1M:   momentum(closes, tradingDays1M),
		Momentum3M:   momentum(closes, tradingDays3M),
		Momentum1Y:   momentum(closes, tradingDays1Y),
		High52Week:   high,
		Low52Week:    low,
		AvgVolume:    volumeSum / int64(len(bars)),
		BarCount:     len(bars),
	}

	return ind, nil
}

// sma averages the last n closes, absent with fewer than n bars
func sma(closes []float64, n int) *float64 {
	if len(closes) < n {
		return nil
	}
	var sum float64
	for _, c := range closes[len(closes)-n:] {
		sum += c
	}
	avg := sum / float64(n)
	return &avg
}

// rsi computes the n-period relative strength index over the full window
func rsi(closes []float64, n int) *float64 {
	if len(closes) < n+1 {
		return nil
	}
	var gains, losses float64
	window := closes[len(closes)-n-1:]
	for idx := 1; idx < len(window); idx++ {
		change := window[idx] - window[idx-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}
	if losses == 0 {
		v := 100.0
		return &v
	}
	rs := gains / losses
	v := 100 - 100/(1+rs)
	return &v
}

// momentum is the fractional return over the last n bars
func momentum(closes []float64, n int) *float64 {
	if len(closes) < n+1 {
		return nil
	}
	base := closes[len(closes)-n-1]
	if base == 0 {
		return nil
	}
	v := (closes[len(closes)-1] - base) / base
	return &v
}

// classifyTrend places the current price relative to the moving averages
func classifyTrend(price float64, sma50, sma200 *float64) string {
	switch {
	case sma50 == nil:
		return models.TrendNeutral
	case sma200 != nil && price > *sma50 && *sma50 > *sma200:
		return models.TrendStrongUptrend
	case price > *sma50:
		return models.TrendUptrend
	case sma200 != nil && price < *sma50 && *sma50 < *sma200:
		return models.TrendStrongDowntrend
	case price < *sma50:
		return models.TrendDowntrend
	default:
		return models.TrendNeutral
	}
}
