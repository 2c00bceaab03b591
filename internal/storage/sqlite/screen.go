package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"

	"github.com/kestrelhq/kestrel/internal/models"
)

const defaultScreenLimit = 50

// screenWindowYears bounds the aggregation to each symbol's most recent years
const screenWindowYears = 5

// ScreenInitial runs the aggregate first-stage screen: per-symbol multi-year
// quality averages over the recent window, thinned by the conjunctive filters.
// Revenue CAGR needs an exponent, which SQLite lacks, so the growth leg is
// finished in Go from the window's first and last revenue.
func (s *Store) ScreenInitial(ctx context.Context, filters models.ScreenFilters) ([]models.ScreenResult, error) {
	query := `
		WITH recent AS (
			SELECT f.*
			FROM fundamentals_annual f
			WHERE (
				SELECT COUNT(*) FROM fundamentals_annual f2
				WHERE f2.symbol = f.symbol AND f2.fiscal_year >= f.fiscal_year
			) <= ?
		),
		agg AS (
			SELECT symbol,
				AVG(roic) AS avg_roic,
				AVG(roe) AS avg_roe,
				AVG(profit_margin) AS avg_margin,
				COUNT(DISTINCT fiscal_year) AS years,
				MIN(fiscal_year) AS first_year,
				MAX(fiscal_year) AS last_year
			FROM recent
			GROUP BY symbol
			HAVING COUNT(DISTINCT fiscal_year) >= 3
		)
		SELECT a.symbol, c.name, c.sector, c.market_cap,
			a.avg_roic, a.avg_roe, a.avg_margin, a.years,
			a.first_year, a.last_year,
			fr.revenue AS first_revenue,
			lr.revenue AS last_revenue,
			lr.debt_to_equity
		FROM agg a
		JOIN companies c ON c.symbol = a.symbol
		LEFT JOIN fundamentals_annual fr ON fr.symbol = a.symbol AND fr.fiscal_year = a.first_year
		LEFT JOIN fundamentals_annual lr ON lr.symbol = a.symbol AND lr.fiscal_year = a.last_year`

	args := []interface{}{screenWindowYears}
	var where []string

	if filters.MinROIC != nil {
		where = append(where, "a.avg_roic >= ?")
		args = append(args, *filters.MinROIC)
	}
	if filters.MinROE != nil {
		where = append(where, "a.avg_roe >= ?")
		args = append(args, *filters.MinROE)
	}
	if filters.MinProfitMargin != nil {
		where = append(where, "a.avg_margin >= ?")
		args = append(args, *filters.MinProfitMargin)
	}
	if filters.MaxDebtToEquity != nil {
		where = append(where, "lr.debt_to_equity IS NOT NULL AND lr.debt_to_equity <= ?")
		args = append(args, *filters.MaxDebtToEquity)
	}
	if filters.MinMarketCap != nil {
		where = append(where, "c.market_cap >= ?")
		args = append(args, *filters.MinMarketCap)
	}
	if filters.MaxMarketCap != nil {
		where = append(where, "c.market_cap <= ?")
		args = append(args, *filters.MaxMarketCap)
	}
	if len(filters.Sectors) > 0 {
		placeholders := strings.Repeat("?,", len(filters.Sectors))
		where = append(where, fmt.Sprintf("c.sector IN (%s)", placeholders[:len(placeholders)-1]))
		for _, sector := range filters.Sectors {
			args = append(args, sector)
		}
	}

	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	query += "\n\t\tORDER BY a.avg_roic DESC, a.avg_roe DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("screen query failed: %w", err)
	}
	defer rows.Close()

	var results []models.ScreenResult
	for rows.Next() {
		var r models.ScreenResult
		var sector sql.NullString
		var marketCap, avgROIC, avgROE, avgMargin sql.NullFloat64
		var firstYear, lastYear int
		var firstRevenue, lastRevenue, debtToEquity sql.NullFloat64

		if err := rows.Scan(&r.Symbol, &r.Name, &sector, &marketCap,
			&avgROIC, &avgROE, &avgMargin, &r.YearsOfData,
			&firstYear, &lastYear,
			&firstRevenue, &lastRevenue, &debtToEquity); err != nil {
			return nil, err
		}

		r.Sector = sector.String
		r.MarketCap = ptrF(marketCap)
		r.AvgROIC = ptrF(avgROIC)
		r.AvgROE = ptrF(avgROE)
		r.AvgMargin = ptrF(avgMargin)
		r.DebtToEquity = ptrF(debtToEquity)
		r.RevenueCAGR = revenueCAGR(ptrF(firstRevenue), ptrF(lastRevenue), lastYear-firstYear)

		if filters.MinRevenueGrowth != nil {
			if r.RevenueCAGR == nil || *r.RevenueCAGR < *filters.MinRevenueGrowth {
				continue
			}
		}

		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = defaultScreenLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// revenueCAGR computes (last/first)^(1/span) - 1, nil unless both endpoints
// are positive and the window spans at least two periods
func revenueCAGR(first, last *float64, span int) *float64 {
	if first == nil || last == nil || *first <= 0 || *last <= 0 || span < 1 {
		return nil
	}
	cagr := math.Pow(*last / *first, 1/float64(span)) - 1
	return &cagr
}

// ScreenDetails returns latest-period detail for the given symbols in one
// batched query
func (s *Store) ScreenDetails(ctx context.Context, symbols []string) ([]models.ScreenDetail, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(symbols))
	query := fmt.Sprintf(`
		SELECT f.symbol, f.fiscal_year, f.current_ratio, f.operating_cash_flow, f.free_cash_flow,
			c.forward_pe, c.peg_ratio, c.dividend_yield,
			o.insider_ownership_pct, o.institutional_ownership_pct
		FROM fundamentals_annual f
		JOIN companies c ON c.symbol = f.symbol
		LEFT JOIN ownership o ON o.symbol = f.symbol
			AND o.as_of_date = (SELECT MAX(as_of_date) FROM ownership WHERE symbol = f.symbol)
		WHERE f.symbol IN (%s)
			AND f.fiscal_year = (SELECT MAX(fiscal_year) FROM fundamentals_annual WHERE symbol = f.symbol)`,
		placeholders[:len(placeholders)-1])

	args := make([]interface{}, len(symbols))
	for i, symbol := range symbols {
		args[i] = symbol
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("screen details query failed: %w", err)
	}
	defer rows.Close()

	bySymbol := make(map[string]models.ScreenDetail, len(symbols))
	for rows.Next() {
		var d models.ScreenDetail
		var currentRatio, ocf, fcf sql.NullFloat64
		var forwardPE, peg, divYield sql.NullFloat64
		var insiderPct, instPct sql.NullFloat64

		if err := rows.Scan(&d.Symbol, &d.FiscalYear, &currentRatio, &ocf, &fcf,
			&forwardPE, &peg, &divYield,
			&insiderPct, &instPct); err != nil {
			return nil, err
		}

		d.CurrentRatio = ptrF(currentRatio)
		d.OperatingCashFlow = ptrF(ocf)
		d.FreeCashFlow = ptrF(fcf)
		d.ForwardPE = ptrF(forwardPE)
		d.PEGRatio = ptrF(peg)
		d.DividendYield = ptrF(divYield)
		d.InsiderOwnershipPct = ptrF(insiderPct)
		d.InstitutionalOwnershipPct = ptrF(instPct)

		bySymbol[d.Symbol] = d
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Preserve caller ordering (the screen's ranking)
	details := make([]models.ScreenDetail, 0, len(bySymbol))
	seen := make(map[string]bool, len(symbols))
	for _, symbol := range symbols {
		if seen[symbol] {
			continue
		}
		seen[symbol] = true
		if d, ok := bySymbol[symbol]; ok {
			details = append(details, d)
		}
	}

	return details, nil
}
