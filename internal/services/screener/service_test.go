package screener

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/kestrelhq/kestrel/internal/common"
	"github.com/kestrelhq/kestrel/internal/models"
	"github.com/kestrelhq/kestrel/internal/storage/sqlite"
)

func fp(v float64) *float64 { return &v }

func newTestScreener(t *testing.T) (*Service, *sqlite.Store) {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), common.NewSilentLogger())
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewService(store, common.NewSilentLogger()), store
}

func seedQualitySymbol(t *testing.T, store *sqlite.Store, symbol, sector string, roic float64) {
	t.Helper()
	ctx := context.Background()
	cap := 1e10
	if err := store.SaveCompany(ctx, &models.Company{
		Symbol: symbol, Name: symbol + " Inc", Sector: sector,
		MarketCap: &cap, LastUpdated: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed company: %v", err)
	}

	periods := make([]models.AnnualFundamentals, 0, 5)
	revenue := 1e9
	for year := 2021; year <= 2025; year++ {
		periods = append(periods, models.AnnualFundamentals{
			Symbol:     symbol,
			FiscalYear: year,
			Revenue:    fp(revenue),
			ROIC:       fp(roic),
			ROE:        fp(roic + 0.02),
		})
		revenue *= 1.1
	}
	if err := store.SaveAnnualFundamentals(ctx, symbol, periods); err != nil {
		t.Fatalf("seed annual: %v", err)
	}
}

func TestScreen_FiltersAndOrdering(t *testing.T) {
	svc, store := newTestScreener(t)

	seedQualitySymbol(t, store, "HIGH", "Technology", 0.25)
	seedQualitySymbol(t, store, "MID", "Technology", 0.18)
	seedQualitySymbol(t, store, "LOW", "Utilities", 0.05)

	results, err := svc.Screen(context.Background(), models.ScreenFilters{MinROIC: fp(0.15)})
	if err != nil {
		t.Fatalf("Screen() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2 above the ROIC floor", len(results))
	}
	if results[0].Symbol != "HIGH" || results[1].Symbol != "MID" {
		t.Errorf("order = %s, %s; want HIGH, MID by avg ROIC", results[0].Symbol, results[1].Symbol)
	}
	if results[0].RevenueCAGR == nil {
		t.Fatal("RevenueCAGR = nil, want computed value")
	}
	if got := *results[0].RevenueCAGR; got < 0.099 || got > 0.101 {
		t.Errorf("RevenueCAGR = %v, want ~0.10", got)
	}
}

func TestScreenDetails_PreservesOrder(t *testing.T) {
	svc, store := newTestScreener(t)

	seedQualitySymbol(t, store, "AAA", "Technology", 0.2)
	seedQualitySymbol(t, store, "BBB", "Technology", 0.2)

	details, err := svc.ScreenDetails(context.Background(), []string{"BBB", "AAA", "GONE"})
	if err != nil {
		t.Fatalf("ScreenDetails() error = %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("details = %d, want 2 (unknown symbol dropped)", len(details))
	}
	if details[0].Symbol != "BBB" || details[1].Symbol != "AAA" {
		t.Errorf("order = %s, %s; want caller order BBB, AAA", details[0].Symbol, details[1].Symbol)
	}
	if details[0].FiscalYear != 2025 {
		t.Errorf("FiscalYear = %d, want latest 2025", details[0].FiscalYear)
	}
}

func TestScreenDetails_EmptyInput(t *testing.T) {
	svc, _ := newTestScreener(t)

	details, err := svc.ScreenDetails(context.Background(), nil)
	if err != nil {
		t.Fatalf("ScreenDetails() error = %v", err)
	}
	if details != nil {
		t.Errorf("details = %v, want nil for empty input", details)
	}
}
