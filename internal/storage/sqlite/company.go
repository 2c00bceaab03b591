package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kestrelhq/kestrel/internal/models"
)

// GetCompany retrieves the company master record, or nil if absent
func (s *Store) GetCompany(ctx context.Context, symbol string) (*models.Company, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT symbol, name, sector, industry, market_cap, description,
			beta, enterprise_value, quick_ratio, total_cash, total_debt,
			shares_short, implied_shares_outstanding,
			dividend_yield, dividend_rate, payout_ratio,
			forward_pe, forward_eps, peg_ratio, last_updated
		FROM companies WHERE symbol = ?`, symbol)

	var c models.Company
	var sector, industry, description sql.NullString
	var marketCap, beta, ev, quickRatio, totalCash, totalDebt sql.NullFloat64
	var sharesShort, impliedShares sql.NullInt64
	var divYield, divRate, payout, forwardPE, forwardEPS, peg sql.NullFloat64
	var lastUpdated string

	err := row.Scan(&c.Symbol, &c.Name, &sector, &industry, &marketCap, &description,
		&beta, &ev, &quickRatio, &totalCash, &totalDebt,
		&sharesShort, &impliedShares,
		&divYield, &divRate, &payout,
		&forwardPE, &forwardEPS, &peg, &lastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query company %s: %w", symbol, err)
	}

	c.Sector = sector.String
	c.Industry = industry.String
	c.Description = description.String
	c.MarketCap = ptrF(marketCap)
	c.Beta = ptrF(beta)
	c.EnterpriseValue = ptrF(ev)
	c.QuickRatio = ptrF(quickRatio)
	c.TotalCash = ptrF(totalCash)
	c.TotalDebt = ptrF(totalDebt)
	c.SharesShort = ptrI(sharesShort)
	c.ImpliedSharesOutstanding = ptrI(impliedShares)
	c.DividendYield = ptrF(divYield)
	c.DividendRate = ptrF(divRate)
	c.PayoutRatio = ptrF(payout)
	c.ForwardPE = ptrF(forwardPE)
	c.ForwardEPS = ptrF(forwardEPS)
	c.PEGRatio = ptrF(peg)
	if t, err := time.Parse(time.RFC3339, lastUpdated); err == nil {
		c.LastUpdated = t
	}

	return &c, nil
}

// SaveCompany upserts the company master record
func (s *Store) SaveCompany(ctx context.Context, company *models.Company) error {
	return saveCompany(ctx, s.db, company)
}

func saveCompany(ctx context.Context, ex execer, company *models.Company) error {
	updated := company.LastUpdated
	if updated.IsZero() {
		updated = time.Now().UTC()
	}

	_, err := ex.ExecContext(ctx, `
		INSERT OR REPLACE INTO companies (
			symbol, name, sector, industry, market_cap, description,
			beta, enterprise_value, quick_ratio, total_cash, total_debt,
			shares_short, implied_shares_outstanding,
			dividend_yield, dividend_rate, payout_ratio,
			forward_pe, forward_eps, peg_ratio, last_updated
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		company.Symbol, company.Name, company.Sector, company.Industry,
		nullF(company.MarketCap), company.Description,
		nullF(company.Beta), nullF(company.EnterpriseValue), nullF(company.QuickRatio),
		nullF(company.TotalCash), nullF(company.TotalDebt),
		nullI(company.SharesShort), nullI(company.ImpliedSharesOutstanding),
		nullF(company.DividendYield), nullF(company.DividendRate), nullF(company.PayoutRatio),
		nullF(company.ForwardPE), nullF(company.ForwardEPS), nullF(company.PEGRatio),
		updated.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save company %s: %w", company.Symbol, err)
	}
	return nil
}

// UpdateMarketCap touches only the market cap and freshness timestamp
func (s *Store) UpdateMarketCap(ctx context.Context, symbol string, marketCap float64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE companies SET market_cap = ?, last_updated = ? WHERE symbol = ?`,
		marketCap, time.Now().UTC().Format(time.RFC3339), symbol)
	if err != nil {
		return fmt.Errorf("failed to update market cap for %s: %w", symbol, err)
	}
	return nil
}

// ListSymbols returns every symbol present in the companies table
func (s *Store) ListSymbols(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT symbol FROM companies ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("failed to list symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, err
		}
		symbols = append(symbols, symbol)
	}
	return symbols, rows.Err()
}
