package research

import "github.com/kestrelhq/kestrel/internal/models"

// defaultTaxRate approximates the US statutory corporate rate used for NOPAT
const defaultTaxRate = 0.21

// DeriveRatios computes the ratio columns from raw statement lines. Every
// ratio is guarded: a non-positive or missing denominator leaves the ratio
// absent rather than zero or infinite.
func DeriveRatios(p *models.AnnualFundamentals) {
	// ROIC = NOPAT / invested capital
	if p.OperatingIncome != nil && p.TotalAssets != nil && p.CurrentLiabilities != nil {
		invested := *p.TotalAssets - *p.CurrentLiabilities
		if invested > 0 {
			v := *p.OperatingIncome * (1 - defaultTaxRate) / invested
			p.ROIC = &v
		}
	}

	p.ROE = safeRatio(p.NetIncome, p.ShareholdersEquity)
	p.ROA = safeRatio(p.NetIncome, p.TotalAssets)
	p.ProfitMargin = safeRatio(p.NetIncome, p.Revenue)
	p.OperatingMargin = safeRatio(p.OperatingIncome, p.Revenue)
	p.GrossMargin = safeRatio(p.GrossProfit, p.Revenue)
	p.DebtToEquity = safeRatio(p.TotalLiabilities, p.ShareholdersEquity)
	p.CurrentRatio = safeRatio(p.CurrentAssets, p.CurrentLiabilities)
}

// safeRatio divides num by den, absent unless both exist and den is positive
func safeRatio(num, den *float64) *float64 {
	if num == nil || den == nil || *den <= 0 {
		return nil
	}
	v := *num / *den
	return &v
}

// yoyGrowth computes (current-prior)/|prior|, absent when either side is
// missing or the prior period is zero
func yoyGrowth(current, prior *float64) *float64 {
	if current == nil || prior == nil || *prior == 0 {
		return nil
	}
	v := (*current - *prior) / abs(*prior)
	return &v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
