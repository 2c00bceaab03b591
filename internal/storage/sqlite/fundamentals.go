package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kestrelhq/kestrel/internal/models"
)

// GetAnnualFundamentals returns up to years most recent fiscal years, newest first
func (s *Store) GetAnnualFundamentals(ctx context.Context, symbol string, years int) ([]models.AnnualFundamentals, error) {
	if years <= 0 {
		years = 5
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, fiscal_year, revenue, operating_income, net_income,
			total_assets, total_liabilities, shareholders_equity,
			operating_cash_flow, free_cash_flow, shares_outstanding,
			roic, roe, roa, ebitda,
			profit_margin, operating_margin, gross_margin,
			debt_to_equity, current_ratio
		FROM fundamentals_annual
		WHERE symbol = ?
		ORDER BY fiscal_year DESC
		LIMIT ?`, symbol, years)
	if err != nil {
		return nil, fmt.Errorf("failed to query annual fundamentals for %s: %w", symbol, err)
	}
	defer rows.Close()

	var periods []models.AnnualFundamentals
	for rows.Next() {
		var p models.AnnualFundamentals
		var revenue, opIncome, netIncome, totalAssets, totalLiab, equity sql.NullFloat64
		var ocf, fcf sql.NullFloat64
		var shares sql.NullInt64
		var roic, roe, roa, ebitda sql.NullFloat64
		var pMargin, oMargin, gMargin, de, cr sql.NullFloat64

		if err := rows.Scan(&p.Symbol, &p.FiscalYear, &revenue, &opIncome, &netIncome,
			&totalAssets, &totalLiab, &equity,
			&ocf, &fcf, &shares,
			&roic, &roe, &roa, &ebitda,
			&pMargin, &oMargin, &gMargin,
			&de, &cr); err != nil {
			return nil, err
		}

		p.Revenue = ptrF(revenue)
		p.OperatingIncome = ptrF(opIncome)
		p.NetIncome = ptrF(netIncome)
		p.TotalAssets = ptrF(totalAssets)
		p.TotalLiabilities = ptrF(totalLiab)
		p.ShareholdersEquity = ptrF(equity)
		p.OperatingCashFlow = ptrF(ocf)
		p.FreeCashFlow = ptrF(fcf)
		p.SharesOutstanding = ptrI(shares)
		p.ROIC = ptrF(roic)
		p.ROE = ptrF(roe)
		p.ROA = ptrF(roa)
		p.EBITDA = ptrF(ebitda)
		p.ProfitMargin = ptrF(pMargin)
		p.OperatingMargin = ptrF(oMargin)
		p.GrossMargin = ptrF(gMargin)
		p.DebtToEquity = ptrF(de)
		p.CurrentRatio = ptrF(cr)

		periods = append(periods, p)
	}
	return periods, rows.Err()
}

// SaveAnnualFundamentals upserts annual periods
func (s *Store) SaveAnnualFundamentals(ctx context.Context, symbol string, periods []models.AnnualFundamentals) error {
	return saveAnnualFundamentals(ctx, s.db, symbol, periods)
}

func saveAnnualFundamentals(ctx context.Context, ex execer, symbol string, periods []models.AnnualFundamentals) error {
	for _, p := range periods {
		_, err := ex.ExecContext(ctx, `
			INSERT OR REPLACE INTO fundamentals_annual (
				symbol, fiscal_year, revenue, operating_income, net_income,
				total_assets, total_liabilities, shareholders_equity,
				operating_cash_flow, free_cash_flow, shares_outstanding,
				roic, roe, roa, ebitda,
				profit_margin, operating_margin, gross_margin,
				debt_to_equity, current_ratio
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			symbol, p.FiscalYear, nullF(p.Revenue), nullF(p.OperatingIncome), nullF(p.NetIncome),
			nullF(p.TotalAssets), nullF(p.TotalLiabilities), nullF(p.ShareholdersEquity),
			nullF(p.OperatingCashFlow), nullF(p.FreeCashFlow), nullI(p.SharesOutstanding),
			nullF(p.ROIC), nullF(p.ROE), nullF(p.ROA), nullF(p.EBITDA),
			nullF(p.ProfitMargin), nullF(p.OperatingMargin), nullF(p.GrossMargin),
			nullF(p.DebtToEquity), nullF(p.CurrentRatio))
		if err != nil {
			return fmt.Errorf("failed to save annual fundamentals %s/%d: %w", symbol, p.FiscalYear, err)
		}
	}
	return nil
}

// GetQuarterlyFundamentals returns up to quarters most recent quarters, newest first
func (s *Store) GetQuarterlyFundamentals(ctx context.Context, symbol string, quarters int) ([]models.QuarterlyFundamentals, error) {
	if quarters <= 0 {
		quarters = 8
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, fiscal_year, fiscal_quarter, revenue, gross_profit,
			operating_income, net_income, total_assets, total_liabilities,
			shareholders_equity, operating_cash_flow, free_cash_flow, shares_outstanding
		FROM fundamentals_quarterly
		WHERE symbol = ?
		ORDER BY fiscal_year DESC, fiscal_quarter DESC
		LIMIT ?`, symbol, quarters)
	if err != nil {
		return nil, fmt.Errorf("failed to query quarterly fundamentals for %s: %w", symbol, err)
	}
	defer rows.Close()

	var periods []models.QuarterlyFundamentals
	for rows.Next() {
		var p models.QuarterlyFundamentals
		var revenue, grossProfit, opIncome, netIncome sql.NullFloat64
		var totalAssets, totalLiab, equity, ocf, fcf sql.NullFloat64
		var shares sql.NullInt64

		if err := rows.Scan(&p.Symbol, &p.FiscalYear, &p.FiscalQuarter, &revenue, &grossProfit,
			&opIncome, &netIncome, &totalAssets, &totalLiab,
			&equity, &ocf, &fcf, &shares); err != nil {
			return nil, err
		}

		p.Revenue = ptrF(revenue)
		p.GrossProfit = ptrF(grossProfit)
		p.OperatingIncome = ptrF(opIncome)
		p.NetIncome = ptrF(netIncome)
		p.TotalAssets = ptrF(totalAssets)
		p.TotalLiabilities = ptrF(totalLiab)
		p.ShareholdersEquity = ptrF(equity)
		p.OperatingCashFlow = ptrF(ocf)
		p.FreeCashFlow = ptrF(fcf)
		p.SharesOutstanding = ptrI(shares)

		periods = append(periods, p)
	}
	return periods, rows.Err()
}

// SaveQuarterlyFundamentals upserts quarterly periods
func (s *Store) SaveQuarterlyFundamentals(ctx context.Context, symbol string, periods []models.QuarterlyFundamentals) error {
	return saveQuarterlyFundamentals(ctx, s.db, symbol, periods)
}

func saveQuarterlyFundamentals(ctx context.Context, ex execer, symbol string, periods []models.QuarterlyFundamentals) error {
	for _, p := range periods {
		_, err := ex.ExecContext(ctx, `
			INSERT OR REPLACE INTO fundamentals_quarterly (
				symbol, fiscal_year, fiscal_quarter, revenue, gross_profit,
				operating_income, net_income, total_assets, total_liabilities,
				shareholders_equity, operating_cash_flow, free_cash_flow, shares_outstanding
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			symbol, p.FiscalYear, p.FiscalQuarter, nullF(p.Revenue), nullF(p.GrossProfit),
			nullF(p.OperatingIncome), nullF(p.NetIncome), nullF(p.TotalAssets), nullF(p.TotalLiabilities),
			nullF(p.ShareholdersEquity), nullF(p.OperatingCashFlow), nullF(p.FreeCashFlow), nullI(p.SharesOutstanding))
		if err != nil {
			return fmt.Errorf("failed to save quarterly fundamentals %s/%d-Q%d: %w", symbol, p.FiscalYear, p.FiscalQuarter, err)
		}
	}
	return nil
}
