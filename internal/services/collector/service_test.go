package collector

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/kestrelhq/kestrel/internal/common"
	"github.com/kestrelhq/kestrel/internal/interfaces"
	"github.com/kestrelhq/kestrel/internal/models"
	"github.com/kestrelhq/kestrel/internal/storage/sqlite"
)

func fp(v float64) *float64 { return &v }

// fakeClient is an in-memory MarketDataClient for collector tests
type fakeClient struct {
	fundamentals map[string]*models.ProviderFundamentals
	eod          map[string][]models.PriceBar
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		fundamentals: make(map[string]*models.ProviderFundamentals),
		eod:          make(map[string][]models.PriceBar),
	}
}

func (c *fakeClient) GetFundamentals(ctx context.Context, symbol string) (*models.ProviderFundamentals, error) {
	doc, ok := c.fundamentals[symbol]
	if !ok {
		return nil, errors.New("symbol not found")
	}
	return doc, nil
}

func (c *fakeClient) GetEOD(ctx context.Context, symbol string, opts ...interfaces.EODOption) ([]models.PriceBar, error) {
	bars, ok := c.eod[symbol]
	if !ok {
		return nil, errors.New("no price data")
	}
	return bars, nil
}

func (c *fakeClient) GetRealTimeQuote(ctx context.Context, symbol string) (*models.RealTimeQuote, error) {
	return nil, errors.New("not implemented")
}

func (c *fakeClient) ListSector(ctx context.Context, sector string, limit int) ([]string, error) {
	return nil, nil
}

func (c *fakeClient) ListIndustry(ctx context.Context, industry string, limit int) ([]string, error) {
	return nil, nil
}

var _ interfaces.MarketDataClient = (*fakeClient)(nil)

func newTestCollector(t *testing.T, opts ...Option) (*Service, *sqlite.Store, *fakeClient) {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), common.NewSilentLogger())
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	client := newFakeClient()
	opts = append([]Option{WithBatchPause(0)}, opts...)
	svc := NewService(store, client, common.NewSilentLogger(), opts...)
	return svc, store, client
}

func seedProviderSymbol(client *fakeClient, symbol string) {
	client.fundamentals[symbol] = &models.ProviderFundamentals{
		Symbol:  symbol,
		Company: &models.Company{Symbol: symbol, Name: symbol + " Inc", Sector: "Technology", MarketCap: fp(5e9)},
		Annual: []models.AnnualFundamentals{
			{
				Symbol: symbol, FiscalYear: 2025,
				Revenue: fp(1e9), NetIncome: fp(2e8),
				OperatingIncome: fp(2.5e8), TotalAssets: fp(2e9), CurrentLiabilities: fp(3e8),
				ShareholdersEquity: fp(1.2e9),
			},
		},
	}
	client.eod[symbol] = []models.PriceBar{
		{Symbol: symbol, Date: time.Now().AddDate(0, 0, -1), Close: 100, Volume: 1000},
	}
}

func TestDownloadAll_PersistsAndReports(t *testing.T) {
	svc, store, client := newTestCollector(t)
	ctx := context.Background()

	seedProviderSymbol(client, "AAA")
	seedProviderSymbol(client, "BBB")

	report, err := svc.DownloadAll(ctx, []string{"AAA", "BBB", "GONE"})
	if err != nil {
		t.Fatalf("DownloadAll() error = %v", err)
	}

	if report.RunID == "" {
		t.Error("RunID is empty")
	}
	if report.Total != 3 || report.Succeeded != 2 || report.Failed != 1 {
		t.Errorf("report = %d/%d/%d, want total 3, succeeded 2, failed 1",
			report.Total, report.Succeeded, report.Failed)
	}
	if len(report.FailedSymbols) != 1 || report.FailedSymbols[0] != "GONE" {
		t.Errorf("FailedSymbols = %v, want [GONE]", report.FailedSymbols)
	}

	company, err := store.GetCompany(ctx, "AAA")
	if err != nil || company == nil {
		t.Fatalf("GetCompany(AAA) = (%v, %v), want persisted row", company, err)
	}
	annual, err := store.GetAnnualFundamentals(ctx, "AAA", 5)
	if err != nil || len(annual) != 1 {
		t.Fatalf("GetAnnualFundamentals(AAA) = (%d rows, %v), want 1", len(annual), err)
	}
	if annual[0].ROIC == nil {
		t.Error("persisted annual row missing derived ROIC")
	}
	now := time.Now()
	bars, err := store.GetPriceHistory(ctx, "AAA", now.AddDate(0, -1, 0), now)
	if err != nil || len(bars) != 1 {
		t.Fatalf("GetPriceHistory(AAA) = (%d bars, %v), want 1", len(bars), err)
	}
}

func TestDownloadAll_SmallBatches(t *testing.T) {
	svc, store, client := newTestCollector(t, WithBatchSize(2))
	ctx := context.Background()

	symbols := []string{"AAA", "BBB", "CCC", "DDD", "EEE"}
	for _, symbol := range symbols {
		seedProviderSymbol(client, symbol)
	}

	report, err := svc.DownloadAll(ctx, symbols)
	if err != nil {
		t.Fatalf("DownloadAll() error = %v", err)
	}
	if report.Succeeded != 5 {
		t.Errorf("Succeeded = %d, want 5 across three batches", report.Succeeded)
	}

	stored, err := store.ListSymbols(ctx)
	if err != nil {
		t.Fatalf("ListSymbols() error = %v", err)
	}
	if len(stored) != 5 {
		t.Errorf("stored symbols = %d, want 5", len(stored))
	}
}

func TestDownloadAll_PriceFailureKeepsFundamentals(t *testing.T) {
	svc, store, client := newTestCollector(t)
	ctx := context.Background()

	seedProviderSymbol(client, "AAA")
	delete(client.eod, "AAA")

	report, err := svc.DownloadAll(ctx, []string{"AAA"})
	if err != nil {
		t.Fatalf("DownloadAll() error = %v", err)
	}
	if report.Succeeded != 1 {
		t.Fatalf("Succeeded = %d, want 1 despite the price failure", report.Succeeded)
	}
	company, err := store.GetCompany(ctx, "AAA")
	if err != nil || company == nil {
		t.Fatalf("GetCompany(AAA) = (%v, %v), want persisted row", company, err)
	}
}

func TestDownloadAll_CancelledContext(t *testing.T) {
	svc, _, client := newTestCollector(t)

	seedProviderSymbol(client, "AAA")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := svc.DownloadAll(ctx, []string{"AAA"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("DownloadAll() error = %v, want context.Canceled", err)
	}
	if report == nil || report.Succeeded != 0 {
		t.Errorf("report = %+v, want zero successes on immediate cancel", report)
	}
}

func seedRefreshDoc(client *fakeClient, symbol string) {
	now := time.Now()
	client.fundamentals[symbol] = &models.ProviderFundamentals{
		Symbol:  symbol,
		Company: &models.Company{Symbol: symbol, Name: symbol + " Inc", MarketCap: fp(6e9)},
		Ownership: &models.OwnershipSnapshot{
			Symbol: symbol, AsOfDate: now, InsiderOwnershipPct: fp(4.2),
		},
		InsiderTransactions: []models.InsiderTransaction{
			{Symbol: symbol, TransactionDate: now.AddDate(0, -1, 0), InsiderName: "Recent Buyer", TransactionType: "buy"},
			{Symbol: symbol, TransactionDate: now.AddDate(-1, 0, 0), InsiderName: "Ancient Seller", TransactionType: "sell"},
		},
		Quarterly: []models.QuarterlyFundamentals{
			{Symbol: symbol, FiscalYear: 2025, FiscalQuarter: 2, Revenue: fp(3e8)},
			{Symbol: symbol, FiscalYear: 2025, FiscalQuarter: 1, Revenue: fp(2.8e8)},
			{Symbol: symbol, FiscalYear: 2024, FiscalQuarter: 4, Revenue: fp(2.7e8)},
		},
		Holders: []models.InstitutionalHolder{
			{Symbol: symbol, HolderName: "New Fund", Shares: 1000, DateReported: now},
		},
		Executives: []models.Executive{
			{Symbol: symbol, Name: "New CEO", Title: "CEO"},
		},
	}
	client.eod[symbol] = []models.PriceBar{
		{Symbol: symbol, Date: now.AddDate(0, 0, -1), Close: 105, Volume: 2000},
	}
}

func TestRefreshAll_UpdatesFastMovingSlices(t *testing.T) {
	svc, store, client := newTestCollector(t)
	ctx := context.Background()

	// Pre-existing state: stale market cap, a stale bar for the same day
	yesterday := time.Now().AddDate(0, 0, -1)
	if err := store.SaveCompany(ctx, &models.Company{
		Symbol: "AAA", Name: "AAA Inc", MarketCap: fp(5e9), LastUpdated: time.Now().AddDate(0, 0, -10),
	}); err != nil {
		t.Fatalf("seed company: %v", err)
	}
	if err := store.SavePriceHistory(ctx, "AAA", []models.PriceBar{
		{Symbol: "AAA", Date: yesterday, Close: 99, Volume: 500},
	}); err != nil {
		t.Fatalf("seed prices: %v", err)
	}

	seedRefreshDoc(client, "AAA")

	report, err := svc.RefreshAll(ctx, []string{"AAA"})
	if err != nil {
		t.Fatalf("RefreshAll() error = %v", err)
	}
	if report.Succeeded != 1 {
		t.Fatalf("Succeeded = %d, want 1", report.Succeeded)
	}

	// Market cap touched
	company, err := store.GetCompany(ctx, "AAA")
	if err != nil || company == nil {
		t.Fatalf("GetCompany() = (%v, %v)", company, err)
	}
	if company.MarketCap == nil || *company.MarketCap != 6e9 {
		t.Errorf("MarketCap = %v, want refreshed 6e9", company.MarketCap)
	}

	// Stale bar replaced, not ignored
	now := time.Now()
	bars, err := store.GetPriceHistory(ctx, "AAA", now.AddDate(0, -1, 0), now)
	if err != nil || len(bars) != 1 {
		t.Fatalf("GetPriceHistory() = (%d bars, %v), want 1", len(bars), err)
	}
	if bars[0].Close != 105 {
		t.Errorf("refreshed close = %v, want 105 (replaced)", bars[0].Close)
	}

	// Only the recent insider trade kept
	txns, err := store.GetInsiderTransactions(ctx, "AAA", 10)
	if err != nil {
		t.Fatalf("GetInsiderTransactions() error = %v", err)
	}
	if len(txns) != 1 || txns[0].InsiderName != "Recent Buyer" {
		t.Errorf("transactions = %+v, want only the recent buy", txns)
	}

	// Quarters capped at two
	quarters, err := store.GetQuarterlyFundamentals(ctx, "AAA", 10)
	if err != nil {
		t.Fatalf("GetQuarterlyFundamentals() error = %v", err)
	}
	if len(quarters) != 2 {
		t.Errorf("quarters = %d, want 2 most recent", len(quarters))
	}

	// Ownership snapshot landed
	ownership, err := store.GetOwnership(ctx, "AAA")
	if err != nil || ownership == nil {
		t.Fatalf("GetOwnership() = (%v, %v)", ownership, err)
	}
	if ownership.InsiderOwnershipPct == nil || *ownership.InsiderOwnershipPct != 4.2 {
		t.Errorf("InsiderOwnershipPct = %v, want 4.2", ownership.InsiderOwnershipPct)
	}

	// Holders and executives replaced
	holders, err := store.GetInstitutionalHolders(ctx, "AAA", 10)
	if err != nil || len(holders) != 1 || holders[0].HolderName != "New Fund" {
		t.Errorf("holders = (%+v, %v), want the refreshed single holder", holders, err)
	}
	execs, err := store.GetExecutives(ctx, "AAA")
	if err != nil || len(execs) != 1 || execs[0].Name != "New CEO" {
		t.Errorf("executives = (%+v, %v), want the refreshed single executive", execs, err)
	}
}

func TestRefreshAll_EmptyListUsesStoredUniverse(t *testing.T) {
	svc, store, client := newTestCollector(t)
	ctx := context.Background()

	for _, symbol := range []string{"AAA", "BBB"} {
		if err := store.SaveCompany(ctx, &models.Company{
			Symbol: symbol, Name: symbol + " Inc", LastUpdated: time.Now(),
		}); err != nil {
			t.Fatalf("seed company: %v", err)
		}
		seedRefreshDoc(client, symbol)
	}

	report, err := svc.RefreshAll(ctx, nil)
	if err != nil {
		t.Fatalf("RefreshAll() error = %v", err)
	}
	if report.Total != 2 || report.Succeeded != 2 {
		t.Errorf("report = %d/%d, want 2 stored symbols refreshed", report.Total, report.Succeeded)
	}
}

func TestRecentTransactions(t *testing.T) {
	now := time.Now()
	cutoff := now.AddDate(0, -6, 0)
	txns := []models.InsiderTransaction{
		{InsiderName: "old", TransactionDate: now.AddDate(0, -7, 0)},
		{InsiderName: "edge", TransactionDate: cutoff},
		{InsiderName: "new", TransactionDate: now},
	}
	recent := recentTransactions(txns, cutoff)
	if len(recent) != 2 {
		t.Fatalf("recent = %d, want 2 (cutoff inclusive)", len(recent))
	}
	if recent[0].InsiderName != "edge" || recent[1].InsiderName != "new" {
		t.Errorf("recent = %+v, want edge then new", recent)
	}
}
