package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/kestrelhq/kestrel/internal/models"
)

// GetPriceHistory returns bars in [from, to], ascending by date
func (s *Store) GetPriceHistory(ctx context.Context, symbol string, from, to time.Time) ([]models.PriceBar, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, date, open, high, low, close, adj_close, volume
		FROM price_history
		WHERE symbol = ? AND date >= ? AND date <= ?
		ORDER BY date ASC`,
		symbol, from.Format(dateFormat), to.Format(dateFormat))
	if err != nil {
		return nil, fmt.Errorf("failed to query price history for %s: %w", symbol, err)
	}
	defer rows.Close()

	var bars []models.PriceBar
	for rows.Next() {
		var bar models.PriceBar
		var date string
		if err := rows.Scan(&bar.Symbol, &date, &bar.Open, &bar.High, &bar.Low,
			&bar.Close, &bar.AdjClose, &bar.Volume); err != nil {
			return nil, err
		}
		if t, err := time.Parse(dateFormat, date); err == nil {
			bar.Date = t
		}
		bars = append(bars, bar)
	}
	return bars, rows.Err()
}

// SavePriceHistory inserts bars without disturbing stored ones
func (s *Store) SavePriceHistory(ctx context.Context, symbol string, bars []models.PriceBar) error {
	return savePriceHistory(ctx, s.db, symbol, bars, false)
}

// ReplacePriceHistory upserts bars, overwriting stored ones in the same range.
// The refresher uses this so a partially-traded day's bar gets corrected.
func (s *Store) ReplacePriceHistory(ctx context.Context, symbol string, bars []models.PriceBar) error {
	return savePriceHistory(ctx, s.db, symbol, bars, true)
}

func savePriceHistory(ctx context.Context, ex execer, symbol string, bars []models.PriceBar, replace bool) error {
	verb := "INSERT OR IGNORE"
	if replace {
		verb = "INSERT OR REPLACE"
	}
	stmt := verb + ` INTO price_history (symbol, date, open, high, low, close, adj_close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	for _, bar := range bars {
		_, err := ex.ExecContext(ctx, stmt,
			symbol, bar.Date.Format(dateFormat),
			bar.Open, bar.High, bar.Low, bar.Close, bar.AdjClose, bar.Volume)
		if err != nil {
			return fmt.Errorf("failed to save price bar %s/%s: %w", symbol, bar.Date.Format(dateFormat), err)
		}
	}
	return nil
}
