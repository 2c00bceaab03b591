package research

import (
	"testing"

	"github.com/kestrelhq/kestrel/internal/models"
)

func fp(v float64) *float64 { return &v }

func TestDeriveRatios_ROIC(t *testing.T) {
	p := models.AnnualFundamentals{
		OperatingIncome:    fp(250),
		TotalAssets:        fp(2000),
		CurrentLiabilities: fp(300),
	}
	DeriveRatios(&p)

	if p.ROIC == nil {
		t.Fatal("ROIC = nil, want value")
	}
	want := 250 * (1 - 0.21) / 1700
	if *p.ROIC != want {
		t.Errorf("ROIC = %v, want %v", *p.ROIC, want)
	}
}

func TestDeriveRatios_ROICNonPositiveInvestedCapital(t *testing.T) {
	p := models.AnnualFundamentals{
		OperatingIncome:    fp(250),
		TotalAssets:        fp(300),
		CurrentLiabilities: fp(400),
	}
	DeriveRatios(&p)

	if p.ROIC != nil {
		t.Errorf("ROIC = %v, want nil when invested capital <= 0", *p.ROIC)
	}
}

func TestDeriveRatios_MissingComponents(t *testing.T) {
	p := models.AnnualFundamentals{OperatingIncome: fp(250)}
	DeriveRatios(&p)

	if p.ROIC != nil {
		t.Error("ROIC must stay nil without balance sheet components")
	}
	if p.ROE != nil || p.ProfitMargin != nil {
		t.Error("ratios must stay nil without their denominators")
	}
}

func TestDeriveRatios_FullSet(t *testing.T) {
	p := models.AnnualFundamentals{
		Revenue:            fp(1000),
		GrossProfit:        fp(600),
		OperatingIncome:    fp(250),
		NetIncome:          fp(210),
		TotalAssets:        fp(2000),
		TotalLiabilities:   fp(800),
		CurrentAssets:      fp(500),
		CurrentLiabilities: fp(300),
		ShareholdersEquity: fp(1200),
	}
	DeriveRatios(&p)

	checks := []struct {
		name string
		got  *float64
		want float64
	}{
		{"ROE", p.ROE, 210.0 / 1200},
		{"ROA", p.ROA, 210.0 / 2000},
		{"ProfitMargin", p.ProfitMargin, 210.0 / 1000},
		{"OperatingMargin", p.OperatingMargin, 250.0 / 1000},
		{"GrossMargin", p.GrossMargin, 600.0 / 1000},
		{"DebtToEquity", p.DebtToEquity, 800.0 / 1200},
		{"CurrentRatio", p.CurrentRatio, 500.0 / 300},
	}
	for _, c := range checks {
		if c.got == nil {
			t.Errorf("%s = nil, want %v", c.name, c.want)
			continue
		}
		if *c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, *c.got, c.want)
		}
	}
}

func TestSafeRatio_NegativeDenominator(t *testing.T) {
	if got := safeRatio(fp(100), fp(-50)); got != nil {
		t.Errorf("safeRatio(100, -50) = %v, want nil", *got)
	}
	if got := safeRatio(fp(100), fp(0)); got != nil {
		t.Errorf("safeRatio(100, 0) = %v, want nil", *got)
	}
}

func TestYoyGrowth(t *testing.T) {
	got := yoyGrowth(fp(110), fp(100))
	if got == nil || *got != 0.1 {
		t.Errorf("yoyGrowth(110, 100) = %v, want 0.1", got)
	}
	if got := yoyGrowth(fp(110), fp(0)); got != nil {
		t.Errorf("yoyGrowth with zero prior = %v, want nil", *got)
	}
	if got := yoyGrowth(nil, fp(100)); got != nil {
		t.Errorf("yoyGrowth with absent current = %v, want nil", *got)
	}
}
