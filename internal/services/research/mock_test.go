package research

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/kestrelhq/kestrel/internal/common"
	"github.com/kestrelhq/kestrel/internal/interfaces"
	"github.com/kestrelhq/kestrel/internal/models"
	"github.com/kestrelhq/kestrel/internal/storage/sqlite"
)

// fakeClient is an in-memory MarketDataClient for service tests
type fakeClient struct {
	fundamentals map[string]*models.ProviderFundamentals
	eod          map[string][]models.PriceBar
	quotes       map[string]*models.RealTimeQuote
	sectors      map[string][]string
	industries   map[string][]string

	fundamentalsCalls int
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		fundamentals: make(map[string]*models.ProviderFundamentals),
		eod:          make(map[string][]models.PriceBar),
		quotes:       make(map[string]*models.RealTimeQuote),
		sectors:      make(map[string][]string),
		industries:   make(map[string][]string),
	}
}

func (c *fakeClient) GetFundamentals(ctx context.Context, symbol string) (*models.ProviderFundamentals, error) {
	c.fundamentalsCalls++
	doc, ok := c.fundamentals[symbol]
	if !ok {
		return nil, errors.New("symbol not found")
	}
	return doc, nil
}

func (c *fakeClient) GetEOD(ctx context.Context, symbol string, opts ...interfaces.EODOption) ([]models.PriceBar, error) {
	bars, ok := c.eod[symbol]
	if !ok {
		return nil, errors.New("symbol not found")
	}
	return bars, nil
}

func (c *fakeClient) GetRealTimeQuote(ctx context.Context, symbol string) (*models.RealTimeQuote, error) {
	quote, ok := c.quotes[symbol]
	if !ok {
		return nil, errors.New("no quote")
	}
	return quote, nil
}

func (c *fakeClient) ListSector(ctx context.Context, sector string, limit int) ([]string, error) {
	return c.sectors[sector], nil
}

func (c *fakeClient) ListIndustry(ctx context.Context, industry string, limit int) ([]string, error) {
	return c.industries[industry], nil
}

var _ interfaces.MarketDataClient = (*fakeClient)(nil)

func newTestService(t *testing.T) (*Service, *sqlite.Store, *fakeClient) {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), common.NewSilentLogger())
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	client := newFakeClient()
	svc := NewService(store, client, common.NewSilentLogger())
	return svc, store, client
}
