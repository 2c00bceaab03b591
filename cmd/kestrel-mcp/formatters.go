package main

import (
	"fmt"
	"strings"

	"github.com/kestrelhq/kestrel/internal/models"
)

// formatMoney renders a dollar amount with a B/M/K suffix
func formatMoney(v float64) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1e12:
		return fmt.Sprintf("$%.2fT", v/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("$%.2fM", v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("$%.1fK", v/1e3)
	default:
		return fmt.Sprintf("$%.2f", v)
	}
}

func fmtMoneyPtr(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return formatMoney(*v)
}

// fmtPctPtr renders a 0..1 ratio as a percentage
func fmtPctPtr(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", *v*100)
}

// fmtRawPctPtr renders an already-scaled percentage value
func fmtRawPctPtr(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", *v)
}

func fmtRatioPtr(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}

func fmtIntPtr(v *int64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%d", *v)
}

// formatFundamentals formats a fundamentals bundle as markdown
func formatFundamentals(b *models.FundamentalsBundle) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Fundamentals: %s\n\n", b.Symbol))
	if b.Name != "" {
		sb.WriteString(fmt.Sprintf("**%s**", b.Name))
		if b.Sector != "" {
			sb.WriteString(fmt.Sprintf(" - %s", b.Sector))
			if b.Industry != "" {
				sb.WriteString(fmt.Sprintf(" / %s", b.Industry))
			}
		}
		sb.WriteString("\n\n")
	}

	sb.WriteString(fmt.Sprintf("**Market Cap:** %s\n", fmtMoneyPtr(b.MarketCap)))
	if b.CurrentPrice != nil {
		sb.WriteString(fmt.Sprintf("**Price:** $%.2f", *b.CurrentPrice))
		if b.High52Week != nil && b.Low52Week != nil {
			sb.WriteString(fmt.Sprintf(" (52wk range $%.2f - $%.2f)", *b.Low52Week, *b.High52Week))
		}
		sb.WriteString("\n")
	}

	if b.FiscalYear > 0 {
		sb.WriteString(fmt.Sprintf("\n## FY%d Statement\n\n", b.FiscalYear))
		sb.WriteString(fmt.Sprintf("- Revenue: %s\n", fmtMoneyPtr(b.Revenue)))
		sb.WriteString(fmt.Sprintf("- Operating Income: %s\n", fmtMoneyPtr(b.OperatingIncome)))
		sb.WriteString(fmt.Sprintf("- Net Income: %s\n", fmtMoneyPtr(b.NetIncome)))
		sb.WriteString(fmt.Sprintf("- Operating Cash Flow: %s\n", fmtMoneyPtr(b.OperatingCashFlow)))
		sb.WriteString(fmt.Sprintf("- Free Cash Flow: %s\n", fmtMoneyPtr(b.FreeCashFlow)))
		sb.WriteString(fmt.Sprintf("- Total Assets: %s\n", fmtMoneyPtr(b.TotalAssets)))
		sb.WriteString(fmt.Sprintf("- Shareholders Equity: %s\n", fmtMoneyPtr(b.ShareholdersEquity)))
	}

	sb.WriteString("\n## Quality Ratios\n\n")
	sb.WriteString(fmt.Sprintf("- ROIC: %s\n", fmtPctPtr(b.ROIC)))
	sb.WriteString(fmt.Sprintf("- ROE: %s\n", fmtPctPtr(b.ROE)))
	sb.WriteString(fmt.Sprintf("- ROA: %s\n", fmtPctPtr(b.ROA)))
	sb.WriteString(fmt.Sprintf("- Profit Margin: %s\n", fmtPctPtr(b.ProfitMargin)))
	sb.WriteString(fmt.Sprintf("- Operating Margin: %s\n", fmtPctPtr(b.OperatingMargin)))
	sb.WriteString(fmt.Sprintf("- Gross Margin: %s\n", fmtPctPtr(b.GrossMargin)))
	sb.WriteString(fmt.Sprintf("- Debt/Equity: %s\n", fmtRatioPtr(b.DebtToEquity)))
	sb.WriteString(fmt.Sprintf("- Current Ratio: %s\n", fmtRatioPtr(b.CurrentRatio)))
	sb.WriteString(fmt.Sprintf("- Revenue Growth (YoY): %s\n", fmtPctPtr(b.RevenueGrowth)))

	return sb.String()
}

// formatValuationMetrics formats valuation multiples as markdown
func formatValuationMetrics(m *models.ValuationMetrics) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Valuation: %s\n\n", m.Symbol))
	if m.CurrentPrice != nil {
		sb.WriteString(fmt.Sprintf("**Price:** $%.2f\n", *m.CurrentPrice))
	}
	sb.WriteString(fmt.Sprintf("**Market Cap:** %s\n", fmtMoneyPtr(m.MarketCap)))
	sb.WriteString(fmt.Sprintf("**Enterprise Value:** %s\n\n", fmtMoneyPtr(m.EnterpriseValue)))

	sb.WriteString("## Multiples\n\n")
	sb.WriteString(fmt.Sprintf("- Trailing P/E: %s\n", fmtRatioPtr(m.TrailingPE)))
	sb.WriteString(fmt.Sprintf("- Forward P/E: %s\n", fmtRatioPtr(m.ForwardPE)))
	sb.WriteString(fmt.Sprintf("- PEG: %s\n", fmtRatioPtr(m.PEGRatio)))
	sb.WriteString(fmt.Sprintf("- Price/Book: %s\n", fmtRatioPtr(m.PriceToBook)))
	sb.WriteString(fmt.Sprintf("- Price/Sales: %s\n", fmtRatioPtr(m.PriceToSales)))
	sb.WriteString(fmt.Sprintf("- EV/Revenue: %s\n", fmtRatioPtr(m.EVToRevenue)))
	sb.WriteString(fmt.Sprintf("- EV/EBITDA: %s\n", fmtRatioPtr(m.EVToEBITDA)))
	sb.WriteString(fmt.Sprintf("- EPS: %s\n", fmtRatioPtr(m.EPS)))
	sb.WriteString(fmt.Sprintf("- Book Value/Share: %s\n", fmtRatioPtr(m.BookValuePerShare)))

	sb.WriteString("\n## Dividend\n\n")
	sb.WriteString(fmt.Sprintf("- Yield: %s\n", fmtPctPtr(m.DividendYield)))
	sb.WriteString(fmt.Sprintf("- Rate: %s\n", fmtRatioPtr(m.DividendRate)))
	sb.WriteString(fmt.Sprintf("- Payout Ratio: %s\n", fmtPctPtr(m.PayoutRatio)))

	return sb.String()
}

// formatTechnicalIndicators formats technicals as markdown
func formatTechnicalIndicators(t *models.TechnicalIndicators) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Technicals: %s (%s)\n\n", t.Symbol, t.Period))
	sb.WriteString(fmt.Sprintf("**Price:** $%.2f\n", t.CurrentPrice))
	sb.WriteString(fmt.Sprintf("**Trend:** %s\n", t.Trend))
	sb.WriteString(fmt.Sprintf("**52wk Range:** $%.2f - $%.2f\n\n", t.Low52Week, t.High52Week))

	sb.WriteString(fmt.Sprintf("- SMA50: %s\n", fmtRatioPtr(t.SMA50)))
	sb.WriteString(fmt.Sprintf("- SMA200: %s\n", fmtRatioPtr(t.SMA200)))
	sb.WriteString(fmt.Sprintf("- RSI(14): %s\n", fmtRatioPtr(t.RSI14)))
	sb.WriteString(fmt.Sprintf("- Momentum 1M: %s\n", fmtPctPtr(t.Momentum1M)))
	sb.WriteString(fmt.Sprintf("- Momentum 3M: %s\n", fmtPctPtr(t.Momentum3M)))
	sb.WriteString(fmt.Sprintf("- Momentum 1Y: %s\n", fmtPctPtr(t.Momentum1Y)))
	sb.WriteString(fmt.Sprintf("- Avg Volume: %d\n", t.AvgVolume))
	sb.WriteString(fmt.Sprintf("- Bars: %d\n", t.BarCount))

	return sb.String()
}

// formatInsiderOwnership formats the insider view as markdown
func formatInsiderOwnership(b *models.InsiderOwnershipBundle) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Insider Ownership: %s\n\n", b.Symbol))
	if b.Ownership != nil {
		sb.WriteString(fmt.Sprintf("**As of:** %s\n", b.Ownership.AsOfDate.Format("2006-01-02")))
		sb.WriteString(fmt.Sprintf("**Insider Ownership:** %s\n", fmtRawPctPtr(b.Ownership.InsiderOwnershipPct)))
		sb.WriteString(fmt.Sprintf("**Institutional Ownership:** %s\n", fmtRawPctPtr(b.Ownership.InstitutionalOwnershipPct)))
		sb.WriteString(fmt.Sprintf("**Shares Outstanding:** %s\n", fmtIntPtr(b.Ownership.SharesOutstanding)))
		sb.WriteString(fmt.Sprintf("**Float:** %s\n\n", fmtIntPtr(b.Ownership.FloatShares)))
	}

	if len(b.Transactions) == 0 {
		sb.WriteString("No recent insider transactions.\n")
		return sb.String()
	}

	sb.WriteString("## Recent Transactions\n\n")
	sb.WriteString("| Date | Insider | Type | Shares | Price | Value |\n")
	sb.WriteString("|------|---------|------|--------|-------|-------|\n")
	for _, txn := range b.Transactions {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
			txn.TransactionDate.Format("2006-01-02"),
			txn.InsiderName,
			txn.TransactionType,
			fmtIntPtr(txn.Shares),
			fmtRatioPtr(txn.PricePerShare),
			fmtMoneyPtr(txn.Value),
		))
	}

	return sb.String()
}

// formatInstitutionalHolders formats the holders view as markdown
func formatInstitutionalHolders(b *models.InstitutionalHoldersBundle) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Institutional Holders: %s\n\n", b.Symbol))
	if b.Major != nil {
		sb.WriteString(fmt.Sprintf("**Insiders:** %s\n", fmtRawPctPtr(b.Major.InsidersPercent)))
		sb.WriteString(fmt.Sprintf("**Institutions:** %s\n", fmtRawPctPtr(b.Major.InstitutionsPercent)))
		sb.WriteString(fmt.Sprintf("**Institutions (of float):** %s\n", fmtRawPctPtr(b.Major.InstitutionsFloatPercent)))
		sb.WriteString(fmt.Sprintf("**Institution Count:** %s\n\n", fmtIntPtr(b.Major.InstitutionsCount)))
	}

	if len(b.Holders) == 0 {
		sb.WriteString("No holder data available.\n")
		return sb.String()
	}

	sb.WriteString("| Holder | Shares | % Out | Value | Reported |\n")
	sb.WriteString("|--------|--------|-------|-------|----------|\n")
	for _, h := range b.Holders {
		sb.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %s |\n",
			h.HolderName,
			h.Shares,
			fmtRawPctPtr(h.PctOut),
			fmtMoneyPtr(h.Value),
			h.DateReported.Format("2006-01-02"),
		))
	}

	return sb.String()
}

// formatShareData formats the dilution/buyback view as markdown
func formatShareData(b *models.ShareDataBundle) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Share Data: %s\n\n", b.Symbol))

	if len(b.QuarterlyShares) > 0 {
		sb.WriteString("## Shares Outstanding\n\n")
		sb.WriteString("| Quarter | Shares |\n")
		sb.WriteString("|---------|--------|\n")
		for _, q := range b.QuarterlyShares {
			sb.WriteString(fmt.Sprintf("| %dQ%d | %d |\n", q.FiscalYear, q.FiscalQuarter, q.SharesOutstanding))
		}
		sb.WriteString("\n")
	}

	if len(b.Buybacks) > 0 {
		sb.WriteString("## Buybacks\n\n")
		sb.WriteString("| Quarter | Amount |\n")
		sb.WriteString("|---------|--------|\n")
		for _, bb := range b.Buybacks {
			sb.WriteString(fmt.Sprintf("| %dQ%d | %s |\n", bb.FiscalYear, bb.FiscalQuarter, fmtMoneyPtr(bb.BuybackAmount)))
		}
	}

	if len(b.QuarterlyShares) == 0 && len(b.Buybacks) == 0 {
		sb.WriteString("No share data available.\n")
	}

	return sb.String()
}

// formatManagementCompensation formats the compensation view as markdown
func formatManagementCompensation(b *models.ManagementCompensationBundle) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Management Compensation: %s\n\n", b.Symbol))

	if len(b.Executives) > 0 {
		sb.WriteString("| Name | Title | Total Pay |\n")
		sb.WriteString("|------|-------|----------|\n")
		for _, e := range b.Executives {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", e.Name, e.Title, fmtMoneyPtr(e.TotalPay)))
		}
		sb.WriteString("\n")
	}

	if len(b.SBCHistory) > 0 {
		sb.WriteString("## Stock-Based Compensation\n\n")
		sb.WriteString("| Year | SBC |\n")
		sb.WriteString("|------|-----|\n")
		for _, s := range b.SBCHistory {
			sb.WriteString(fmt.Sprintf("| %d | %s |\n", s.FiscalYear, formatMoney(s.SBCAmount)))
		}
	}

	if len(b.Executives) == 0 && len(b.SBCHistory) == 0 {
		sb.WriteString("No compensation data available.\n")
	}

	return sb.String()
}

// formatFinancialHistory formats multi-year statements as markdown
func formatFinancialHistory(h *models.FinancialHistory) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Financial History: %s (%d years)\n\n", h.Symbol, h.Years))

	if len(h.Periods) == 0 {
		sb.WriteString("No annual data available.\n")
		return sb.String()
	}

	sb.WriteString("| Year | Revenue | Op Income | Net Income | FCF | ROIC | ROE | Margin |\n")
	sb.WriteString("|------|---------|-----------|------------|-----|------|-----|--------|\n")
	for _, p := range h.Periods {
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s | %s | %s | %s |\n",
			p.FiscalYear,
			fmtMoneyPtr(p.Revenue),
			fmtMoneyPtr(p.OperatingIncome),
			fmtMoneyPtr(p.NetIncome),
			fmtMoneyPtr(p.FreeCashFlow),
			fmtPctPtr(p.ROIC),
			fmtPctPtr(p.ROE),
			fmtPctPtr(p.ProfitMargin),
		))
	}

	return sb.String()
}

// formatComparison formats a pairwise comparison as markdown
func formatComparison(c *models.StockComparison) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Comparison: %s vs %s\n\n", c.Symbol1, c.Symbol2))
	sb.WriteString(fmt.Sprintf("- Same Sector: %v\n", c.SameSector))
	sb.WriteString(fmt.Sprintf("- Same Industry: %v\n", c.SameIndustry))
	sb.WriteString(fmt.Sprintf("- ROE Similarity: %s\n", fmtPctPtr(c.ROESimilarity)))
	sb.WriteString(fmt.Sprintf("- Margin Similarity: %s\n", fmtPctPtr(c.MarginSimilarity)))
	sb.WriteString(fmt.Sprintf("- Growth Similarity: %s\n", fmtPctPtr(c.GrowthSimilarity)))
	sb.WriteString(fmt.Sprintf("\n**Overall Similarity:** %s\n", fmtPctPtr(c.OverallSimilarity)))

	return sb.String()
}

// formatSimilarityResult formats a peer search as markdown
func formatSimilarityResult(r *models.SimilarityResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Similar Companies: %s\n\n", r.ReferenceSymbol))
	sb.WriteString(fmt.Sprintf("**Sector:** %s", r.ReferenceSector))
	if r.ReferenceIndustry != "" {
		sb.WriteString(fmt.Sprintf(" / %s", r.ReferenceIndustry))
	}
	sb.WriteString(fmt.Sprintf("\n**Market Cap:** %s\n", formatMoney(r.ReferenceMarketCap)))
	sb.WriteString(fmt.Sprintf("**Candidates Analyzed:** %d, **Matches:** %d\n\n", r.CandidatesAnalyzed, r.MatchesFound))

	if len(r.Matches) == 0 {
		sb.WriteString("No comparable companies found.\n")
		return sb.String()
	}

	sb.WriteString("| Symbol | Name | Industry | Market Cap | Score |\n")
	sb.WriteString("|--------|------|----------|------------|-------|\n")
	for _, m := range r.Matches {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %.1f |\n",
			m.Symbol, m.Name, m.Industry, fmtMoneyPtr(m.MarketCap), m.Score))
	}

	return sb.String()
}

// formatScreenResults formats screen output, optionally with detail rows
func formatScreenResults(results []models.ScreenResult, details []models.ScreenDetail, filters models.ScreenFilters) string {
	var sb strings.Builder

	sb.WriteString("# Stock Screen\n\n")

	var applied []string
	if filters.MinROIC != nil {
		applied = append(applied, fmt.Sprintf("ROIC >= %s", fmtPctPtr(filters.MinROIC)))
	}
	if filters.MinROE != nil {
		applied = append(applied, fmt.Sprintf("ROE >= %s", fmtPctPtr(filters.MinROE)))
	}
	if filters.MinProfitMargin != nil {
		applied = append(applied, fmt.Sprintf("Margin >= %s", fmtPctPtr(filters.MinProfitMargin)))
	}
	if filters.MinRevenueGrowth != nil {
		applied = append(applied, fmt.Sprintf("Revenue CAGR >= %s", fmtPctPtr(filters.MinRevenueGrowth)))
	}
	if filters.MaxDebtToEquity != nil {
		applied = append(applied, fmt.Sprintf("D/E <= %s", fmtRatioPtr(filters.MaxDebtToEquity)))
	}
	if len(applied) > 0 {
		sb.WriteString(fmt.Sprintf("**Filters:** %s\n\n", strings.Join(applied, ", ")))
	}

	if len(results) == 0 {
		sb.WriteString("No stocks matched the screen.\n")
		return sb.String()
	}

	sb.WriteString("| Symbol | Name | Sector | Market Cap | Avg ROIC | Avg ROE | Avg Margin | Rev CAGR | D/E | Years |\n")
	sb.WriteString("|--------|------|--------|------------|----------|---------|------------|----------|-----|-------|\n")
	for _, r := range results {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s | %s | %s | %d |\n",
			r.Symbol, r.Name, r.Sector,
			fmtMoneyPtr(r.MarketCap),
			fmtPctPtr(r.AvgROIC),
			fmtPctPtr(r.AvgROE),
			fmtPctPtr(r.AvgMargin),
			fmtPctPtr(r.RevenueCAGR),
			fmtRatioPtr(r.DebtToEquity),
			r.YearsOfData,
		))
	}

	if len(details) > 0 {
		sb.WriteString("\n## Latest-Period Detail\n\n")
		sb.WriteString("| Symbol | FY | Current Ratio | OCF | FCF | Fwd P/E | PEG | Div Yield | Insider % | Inst % |\n")
		sb.WriteString("|--------|----|---------------|-----|-----|---------|-----|-----------|-----------|--------|\n")
		for _, d := range details {
			sb.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %s | %s | %s | %s | %s | %s |\n",
				d.Symbol, d.FiscalYear,
				fmtRatioPtr(d.CurrentRatio),
				fmtMoneyPtr(d.OperatingCashFlow),
				fmtMoneyPtr(d.FreeCashFlow),
				fmtRatioPtr(d.ForwardPE),
				fmtRatioPtr(d.PEGRatio),
				fmtPctPtr(d.DividendYield),
				fmtRawPctPtr(d.InsiderOwnershipPct),
				fmtRawPctPtr(d.InstitutionalOwnershipPct),
			))
		}
	}

	return sb.String()
}
