package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kestrelhq/kestrel/internal/models"
)

// GetExecutives returns the current executive snapshot
func (s *Store) GetExecutives(ctx context.Context, symbol string) ([]models.Executive, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, name, title, total_pay, exercised_value, unexercised_value,
			year_born, fiscal_year
		FROM executives
		WHERE symbol = ?
		ORDER BY total_pay DESC, name ASC`, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to query executives for %s: %w", symbol, err)
	}
	defer rows.Close()

	var execs []models.Executive
	for rows.Next() {
		var e models.Executive
		var title sql.NullString
		var totalPay, exercised, unexercised sql.NullFloat64
		var yearBorn, fiscalYear sql.NullInt64

		if err := rows.Scan(&e.Symbol, &e.Name, &title, &totalPay, &exercised, &unexercised,
			&yearBorn, &fiscalYear); err != nil {
			return nil, err
		}

		e.Title = title.String
		e.TotalPay = ptrF(totalPay)
		e.ExercisedValue = ptrF(exercised)
		e.UnexercisedValue = ptrF(unexercised)
		e.YearBorn = ptrI(yearBorn)
		if fiscalYear.Valid {
			e.FiscalYear = int(fiscalYear.Int64)
		}

		execs = append(execs, e)
	}
	return execs, rows.Err()
}

// SaveExecutives replaces the executive snapshot for the symbol
func (s *Store) SaveExecutives(ctx context.Context, symbol string, execs []models.Executive) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := saveExecutives(ctx, tx, symbol, execs); err != nil {
		return err
	}
	return tx.Commit()
}

func saveExecutives(ctx context.Context, ex execer, symbol string, execs []models.Executive) error {
	if _, err := ex.ExecContext(ctx, `DELETE FROM executives WHERE symbol = ?`, symbol); err != nil {
		return fmt.Errorf("failed to clear executives for %s: %w", symbol, err)
	}
	for _, e := range execs {
		var fiscalYear interface{}
		if e.FiscalYear != 0 {
			fiscalYear = e.FiscalYear
		}
		_, err := ex.ExecContext(ctx, `
			INSERT INTO executives (symbol, name, title, total_pay, exercised_value,
				unexercised_value, year_born, fiscal_year)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			symbol, e.Name, e.Title, nullF(e.TotalPay), nullF(e.ExercisedValue),
			nullF(e.UnexercisedValue), nullI(e.YearBorn), fiscalYear)
		if err != nil {
			return fmt.Errorf("failed to save executive %s/%s: %w", symbol, e.Name, err)
		}
	}
	return nil
}

// GetBuybacks returns buyback history, newest first
func (s *Store) GetBuybacks(ctx context.Context, symbol string) ([]models.Buyback, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, fiscal_year, fiscal_quarter, shares_repurchased, buyback_amount
		FROM buybacks
		WHERE symbol = ?
		ORDER BY fiscal_year DESC, fiscal_quarter DESC`, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to query buybacks for %s: %w", symbol, err)
	}
	defer rows.Close()

	var buybacks []models.Buyback
	for rows.Next() {
		var b models.Buyback
		var shares sql.NullInt64
		var amount sql.NullFloat64

		if err := rows.Scan(&b.Symbol, &b.FiscalYear, &b.FiscalQuarter, &shares, &amount); err != nil {
			return nil, err
		}

		b.SharesRepurchased = ptrI(shares)
		b.BuybackAmount = ptrF(amount)

		buybacks = append(buybacks, b)
	}
	return buybacks, rows.Err()
}

// SaveBuybacks upserts buyback periods
func (s *Store) SaveBuybacks(ctx context.Context, symbol string, buybacks []models.Buyback) error {
	return saveBuybacks(ctx, s.db, symbol, buybacks)
}

func saveBuybacks(ctx context.Context, ex execer, symbol string, buybacks []models.Buyback) error {
	for _, b := range buybacks {
		_, err := ex.ExecContext(ctx, `
			INSERT OR REPLACE INTO buybacks (symbol, fiscal_year, fiscal_quarter, shares_repurchased, buyback_amount)
			VALUES (?, ?, ?, ?, ?)`,
			symbol, b.FiscalYear, b.FiscalQuarter, nullI(b.SharesRepurchased), nullF(b.BuybackAmount))
		if err != nil {
			return fmt.Errorf("failed to save buyback %s/%d-Q%d: %w", symbol, b.FiscalYear, b.FiscalQuarter, err)
		}
	}
	return nil
}

// GetQuarterlyShares returns share count history, newest first
func (s *Store) GetQuarterlyShares(ctx context.Context, symbol string) ([]models.QuarterlyShares, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, fiscal_year, fiscal_quarter, shares_outstanding
		FROM quarterly_shares
		WHERE symbol = ?
		ORDER BY fiscal_year DESC, fiscal_quarter DESC`, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to query quarterly shares for %s: %w", symbol, err)
	}
	defer rows.Close()

	var shares []models.QuarterlyShares
	for rows.Next() {
		var q models.QuarterlyShares
		if err := rows.Scan(&q.Symbol, &q.FiscalYear, &q.FiscalQuarter, &q.SharesOutstanding); err != nil {
			return nil, err
		}
		shares = append(shares, q)
	}
	return shares, rows.Err()
}

// SaveQuarterlyShares upserts share counts
func (s *Store) SaveQuarterlyShares(ctx context.Context, symbol string, shares []models.QuarterlyShares) error {
	return saveQuarterlyShares(ctx, s.db, symbol, shares)
}

func saveQuarterlyShares(ctx context.Context, ex execer, symbol string, shares []models.QuarterlyShares) error {
	for _, q := range shares {
		_, err := ex.ExecContext(ctx, `
			INSERT OR REPLACE INTO quarterly_shares (symbol, fiscal_year, fiscal_quarter, shares_outstanding)
			VALUES (?, ?, ?, ?)`,
			symbol, q.FiscalYear, q.FiscalQuarter, q.SharesOutstanding)
		if err != nil {
			return fmt.Errorf("failed to save quarterly shares %s/%d-Q%d: %w", symbol, q.FiscalYear, q.FiscalQuarter, err)
		}
	}
	return nil
}

// GetSBC returns stock-based compensation history, newest first
func (s *Store) GetSBC(ctx context.Context, symbol string) ([]models.StockBasedCompensation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, fiscal_year, sbc_amount
		FROM stock_based_compensation
		WHERE symbol = ?
		ORDER BY fiscal_year DESC`, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to query SBC for %s: %w", symbol, err)
	}
	defer rows.Close()

	var sbc []models.StockBasedCompensation
	for rows.Next() {
		var r models.StockBasedCompensation
		if err := rows.Scan(&r.Symbol, &r.FiscalYear, &r.SBCAmount); err != nil {
			return nil, err
		}
		sbc = append(sbc, r)
	}
	return sbc, rows.Err()
}

// SaveSBC upserts SBC periods
func (s *Store) SaveSBC(ctx context.Context, symbol string, sbc []models.StockBasedCompensation) error {
	return saveSBC(ctx, s.db, symbol, sbc)
}

func saveSBC(ctx context.Context, ex execer, symbol string, sbc []models.StockBasedCompensation) error {
	for _, r := range sbc {
		_, err := ex.ExecContext(ctx, `
			INSERT OR REPLACE INTO stock_based_compensation (symbol, fiscal_year, sbc_amount)
			VALUES (?, ?, ?)`,
			symbol, r.FiscalYear, r.SBCAmount)
		if err != nil {
			return fmt.Errorf("failed to save SBC %s/%d: %w", symbol, r.FiscalYear, err)
		}
	}
	return nil
}
