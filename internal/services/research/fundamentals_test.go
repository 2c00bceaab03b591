package research

import (
	"context"
	"testing"
	"time"

	"github.com/kestrelhq/kestrel/internal/models"
)

func seedCompany(t *testing.T, svc *Service, symbol, sector, industry string, marketCap float64, annual []models.AnnualFundamentals) {
	t.Helper()
	ctx := context.Background()
	err := svc.storage.SaveCompany(ctx, &models.Company{
		Symbol:      symbol,
		Name:        symbol + " Inc",
		Sector:      sector,
		Industry:    industry,
		MarketCap:   &marketCap,
		LastUpdated: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed company: %v", err)
	}
	if err := svc.storage.SaveAnnualFundamentals(ctx, symbol, annual); err != nil {
		t.Fatalf("seed annual: %v", err)
	}
}

func TestGetFundamentals_StoreHit(t *testing.T) {
	svc, _, client := newTestService(t)

	seedCompany(t, svc, "ACME", "Technology", "Software", 5e9, []models.AnnualFundamentals{
		{Symbol: "ACME", FiscalYear: 2025, Revenue: fp(1e9), ROIC: fp(0.2), ProfitMargin: fp(0.21)},
		{Symbol: "ACME", FiscalYear: 2024, Revenue: fp(9e8)},
	})

	bundle, err := svc.GetFundamentals(context.Background(), "ACME")
	if err != nil {
		t.Fatalf("GetFundamentals() error = %v", err)
	}

	if client.fundamentalsCalls != 0 {
		t.Errorf("provider called %d times on a fresh store hit, want 0", client.fundamentalsCalls)
	}
	if bundle.Sector != "Technology" {
		t.Errorf("Sector = %q, want Technology", bundle.Sector)
	}
	if bundle.FiscalYear != 2025 {
		t.Errorf("FiscalYear = %d, want 2025", bundle.FiscalYear)
	}
	if bundle.ROIC == nil || *bundle.ROIC != 0.2 {
		t.Errorf("ROIC = %v, want 0.2", bundle.ROIC)
	}
	if bundle.RevenueGrowth == nil {
		t.Fatal("RevenueGrowth = nil, want YoY value")
	}
	want := (1e9 - 9e8) / 9e8
	if *bundle.RevenueGrowth != want {
		t.Errorf("RevenueGrowth = %v, want %v", *bundle.RevenueGrowth, want)
	}
}

func TestGetFundamentals_MissFetchesAndPersists(t *testing.T) {
	svc, store, client := newTestService(t)

	client.fundamentals["ACME"] = &models.ProviderFundamentals{
		Symbol:  "ACME",
		Company: &models.Company{Symbol: "ACME", Name: "Acme Corp", Sector: "Technology", MarketCap: fp(5e9)},
		Annual: []models.AnnualFundamentals{
			{
				Symbol: "ACME", FiscalYear: 2025,
				Revenue: fp(1e9), NetIncome: fp(210e6),
				OperatingIncome: fp(250e6), TotalAssets: fp(2e9), CurrentLiabilities: fp(3e8),
				ShareholdersEquity: fp(1.2e9),
			},
		},
	}

	bundle, err := svc.GetFundamentals(context.Background(), "ACME")
	if err != nil {
		t.Fatalf("GetFundamentals() error = %v", err)
	}
	if bundle.Name != "Acme Corp" {
		t.Errorf("Name = %q, want Acme Corp", bundle.Name)
	}
	if bundle.ROIC == nil {
		t.Fatal("ROIC = nil, want derived value on the fetch path")
	}
	wantROIC := 250e6 * (1 - 0.21) / (2e9 - 3e8)
	if *bundle.ROIC != wantROIC {
		t.Errorf("ROIC = %v, want %v", *bundle.ROIC, wantROIC)
	}

	// Write-back happened
	company, err := store.GetCompany(context.Background(), "ACME")
	if err != nil || company == nil {
		t.Fatalf("GetCompany after miss = (%v, %v), want persisted row", company, err)
	}
	annual, err := store.GetAnnualFundamentals(context.Background(), "ACME", 5)
	if err != nil || len(annual) != 1 {
		t.Fatalf("GetAnnualFundamentals after miss = (%d rows, %v), want 1", len(annual), err)
	}
	if annual[0].ROIC == nil {
		t.Error("persisted annual row missing derived ROIC")
	}
}

func TestGetFundamentals_MissAndProviderDown(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetFundamentals(context.Background(), "NOPE")
	if err == nil {
		t.Fatal("GetFundamentals() error = nil, want provider failure")
	}
}

func TestGetFundamentals_LiveOverlay(t *testing.T) {
	svc, store, client := newTestService(t)

	seedCompany(t, svc, "ACME", "Technology", "Software", 5e9, []models.AnnualFundamentals{
		{Symbol: "ACME", FiscalYear: 2025, Revenue: fp(1e9)},
	})
	client.quotes["ACME"] = &models.RealTimeQuote{Symbol: "ACME", Close: 104.5}

	now := time.Now()
	if err := store.SavePriceHistory(context.Background(), "ACME", []models.PriceBar{
		{Symbol: "ACME", Date: now.AddDate(0, -6, 0), Close: 80},
		{Symbol: "ACME", Date: now.AddDate(0, -1, 0), Close: 120},
		{Symbol: "ACME", Date: now.AddDate(0, 0, -1), Close: 104},
	}); err != nil {
		t.Fatalf("seed prices: %v", err)
	}

	bundle, err := svc.GetFundamentals(context.Background(), "ACME")
	if err != nil {
		t.Fatalf("GetFundamentals() error = %v", err)
	}
	if bundle.CurrentPrice == nil || *bundle.CurrentPrice != 104.5 {
		t.Errorf("CurrentPrice = %v, want 104.5", bundle.CurrentPrice)
	}
	if bundle.High52Week == nil || *bundle.High52Week != 120 {
		t.Errorf("High52Week = %v, want 120", bundle.High52Week)
	}
	if bundle.Low52Week == nil || *bundle.Low52Week != 80 {
		t.Errorf("Low52Week = %v, want 80", bundle.Low52Week)
	}
}

func TestGetFinancialHistory_Defaults(t *testing.T) {
	svc, _, _ := newTestService(t)

	annual := make([]models.AnnualFundamentals, 0, 8)
	for year := 2018; year <= 2025; year++ {
		annual = append(annual, models.AnnualFundamentals{Symbol: "ACME", FiscalYear: year, Revenue: fp(float64(year))})
	}
	seedCompany(t, svc, "ACME", "Technology", "Software", 5e9, annual)

	history, err := svc.GetFinancialHistory(context.Background(), "ACME", 0)
	if err != nil {
		t.Fatalf("GetFinancialHistory() error = %v", err)
	}
	if history.Years != 5 {
		t.Errorf("Years = %d, want default 5", history.Years)
	}
	if len(history.Periods) != 5 {
		t.Fatalf("Periods = %d, want 5", len(history.Periods))
	}
	if history.Periods[0].FiscalYear != 2025 {
		t.Errorf("Periods[0].FiscalYear = %d, want 2025 (newest first)", history.Periods[0].FiscalYear)
	}

	history, err = svc.GetFinancialHistory(context.Background(), "ACME", 50)
	if err != nil {
		t.Fatalf("GetFinancialHistory() error = %v", err)
	}
	if history.Years != 10 {
		t.Errorf("Years = %d, want capped at 10", history.Years)
	}
}

func TestGetInsiderOwnership_StoreHit(t *testing.T) {
	svc, store, client := newTestService(t)
	ctx := context.Background()

	if err := store.SaveOwnership(ctx, &models.OwnershipSnapshot{
		Symbol: "ACME", AsOfDate: time.Now(), InsiderOwnershipPct: fp(5.5),
	}); err != nil {
		t.Fatalf("seed ownership: %v", err)
	}

	bundle, err := svc.GetInsiderOwnership(ctx, "ACME")
	if err != nil {
		t.Fatalf("GetInsiderOwnership() error = %v", err)
	}
	if client.fundamentalsCalls != 0 {
		t.Errorf("provider called on store hit, want 0 calls")
	}
	if bundle.Ownership == nil || *bundle.Ownership.InsiderOwnershipPct != 5.5 {
		t.Errorf("Ownership = %+v, want insider pct 5.5", bundle.Ownership)
	}
}

func TestGetManagementCompensation_TopFiveByPay(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	execs := make([]models.Executive, 0, 7)
	for n := 0; n < 7; n++ {
		pay := float64(n+1) * 1e6
		execs = append(execs, models.Executive{
			Symbol: "ACME", Name: string(rune('A'+n)) + " Exec", TotalPay: &pay,
		})
	}
	if err := store.SaveExecutives(ctx, "ACME", execs); err != nil {
		t.Fatalf("seed executives: %v", err)
	}

	bundle, err := svc.GetManagementCompensation(ctx, "ACME")
	if err != nil {
		t.Fatalf("GetManagementCompensation() error = %v", err)
	}
	if len(bundle.Executives) != 5 {
		t.Fatalf("Executives = %d, want top 5", len(bundle.Executives))
	}
	if *bundle.Executives[0].TotalPay != 7e6 {
		t.Errorf("top executive pay = %v, want 7e6 (highest paid first)", *bundle.Executives[0].TotalPay)
	}
}
