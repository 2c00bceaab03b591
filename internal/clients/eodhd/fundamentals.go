package eodhd

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/kestrelhq/kestrel/internal/models"
)

// GetFundamentals retrieves and maps the full fundamentals document
func (c *Client) GetFundamentals(ctx context.Context, symbol string) (*models.ProviderFundamentals, error) {
	path := fmt.Sprintf("/fundamentals/%s", symbol)

	var resp fundamentalsResponse
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}

	doc := &models.ProviderFundamentals{
		Symbol:     symbol,
		Company:    mapCompany(symbol, &resp),
		Highlights: mapHighlights(&resp),
	}

	doc.Annual = mapAnnual(symbol, &resp)
	doc.Quarterly = mapQuarterly(symbol, &resp)
	doc.Ownership = mapOwnership(symbol, &resp)
	doc.InsiderTransactions = mapInsiderTransactions(symbol, &resp)
	doc.Holders = mapHolders(symbol, &resp)
	doc.MajorHolders = mapMajorHolders(symbol, &resp, len(doc.Holders))
	doc.Executives = mapOfficers(symbol, &resp)
	doc.Buybacks = mapBuybacks(symbol, &resp)
	doc.QuarterlyShares = mapOutstandingShares(symbol, &resp)
	doc.SBC = mapSBC(symbol, &resp)

	return doc, nil
}

// fundamentalsResponse represents the API response structure
type fundamentalsResponse struct {
	General struct {
		Code        string `json:"Code"`
		Name        string `json:"Name"`
		Sector      string `json:"Sector"`
		Industry    string `json:"Industry"`
		Description string `json:"Description"`
		Officers    map[string]struct {
			Name     string `json:"Name"`
			Title    string `json:"Title"`
			YearBorn string `json:"YearBorn"`
		} `json:"Officers"`
	} `json:"General"`
	Highlights struct {
		MarketCapitalization       *flexFloat64 `json:"MarketCapitalization"`
		EBITDA                     *flexFloat64 `json:"EBITDA"`
		PERatio                    *flexFloat64 `json:"PERatio"`
		PEGRatio                   *flexFloat64 `json:"PEGRatio"`
		BookValue                  *flexFloat64 `json:"BookValue"`
		DividendYield              *flexFloat64 `json:"DividendYield"`
		EarningsShare              *flexFloat64 `json:"EarningsShare"`
		EPSEstimateNextYear        *flexFloat64 `json:"EPSEstimateNextYear"`
		ProfitMargin               *flexFloat64 `json:"ProfitMargin"`
		OperatingMarginTTM         *flexFloat64 `json:"OperatingMarginTTM"`
		ReturnOnAssetsTTM          *flexFloat64 `json:"ReturnOnAssetsTTM"`
		ReturnOnEquityTTM          *flexFloat64 `json:"ReturnOnEquityTTM"`
		QuarterlyRevenueGrowthYOY  *flexFloat64 `json:"QuarterlyRevenueGrowthYOY"`
	} `json:"Highlights"`
	Valuation struct {
		TrailingPE             *flexFloat64 `json:"TrailingPE"`
		ForwardPE              *flexFloat64 `json:"ForwardPE"`
		PriceSalesTTM          *flexFloat64 `json:"PriceSalesTTM"`
		PriceBookMRQ           *flexFloat64 `json:"PriceBookMRQ"`
		EnterpriseValue        *flexFloat64 `json:"EnterpriseValue"`
		EnterpriseValueRevenue *flexFloat64 `json:"EnterpriseValueRevenue"`
		EnterpriseValueEbitda  *flexFloat64 `json:"EnterpriseValueEbitda"`
	} `json:"Valuation"`
	SharesStats struct {
		SharesOutstanding   *flexFloat64 `json:"SharesOutstanding"`
		SharesFloat         *flexFloat64 `json:"SharesFloat"`
		PercentInsiders     *flexFloat64 `json:"PercentInsiders"`
		PercentInstitutions *flexFloat64 `json:"PercentInstitutions"`
		SharesShort         *flexFloat64 `json:"SharesShort"`
	} `json:"SharesStats"`
	Technicals struct {
		Beta       *flexFloat64 `json:"Beta"`
		WeekHigh52 *flexFloat64 `json:"52WeekHigh"`
		WeekLow52  *flexFloat64 `json:"52WeekLow"`
	} `json:"Technicals"`
	SplitsDividends struct {
		ForwardAnnualDividendRate  *flexFloat64 `json:"ForwardAnnualDividendRate"`
		ForwardAnnualDividendYield *flexFloat64 `json:"ForwardAnnualDividendYield"`
		PayoutRatio                *flexFloat64 `json:"PayoutRatio"`
	} `json:"SplitsDividends"`
	InsiderTransactions map[string]struct {
		Date              string       `json:"date"`
		OwnerName         string       `json:"ownerName"`
		OwnerTitle        string       `json:"ownerTitle"`
		TransactionCode   string       `json:"transactionCode"`
		TransactionAmount *flexFloat64 `json:"transactionAmount"`
		TransactionPrice  *flexFloat64 `json:"transactionPrice"`
		AcquiredDisposed  string       `json:"transactionAcquiredDisposed"`
	} `json:"InsiderTransactions"`
	Holders struct {
		Institutions map[string]struct {
			Name          string       `json:"name"`
			Date          string       `json:"date"`
			TotalShares   *flexFloat64 `json:"totalShares"`
			CurrentShares *flexFloat64 `json:"currentShares"`
			TotalAssets   *flexFloat64 `json:"totalAssets"`
		} `json:"Institutions"`
	} `json:"Holders"`
	OutstandingShares struct {
		Annual    map[string]outstandingShareEntry `json:"annual"`
		Quarterly map[string]outstandingShareEntry `json:"quarterly"`
	} `json:"outstandingShares"`
	Financials struct {
		IncomeStatement struct {
			Yearly    map[string]incomeStatementEntry `json:"yearly"`
			Quarterly map[string]incomeStatementEntry `json:"quarterly"`
		} `json:"Income_Statement"`
		BalanceSheet struct {
			Yearly    map[string]balanceSheetEntry `json:"yearly"`
			Quarterly map[string]balanceSheetEntry `json:"quarterly"`
		} `json:"Balance_Sheet"`
		CashFlow struct {
			Yearly    map[string]cashFlowEntry `json:"yearly"`
			Quarterly map[string]cashFlowEntry `json:"quarterly"`
		} `json:"Cash_Flow"`
	} `json:"Financials"`
}

type outstandingShareEntry struct {
	DateFormatted string       `json:"dateFormatted"`
	Shares        *flexFloat64 `json:"shares"`
}

type incomeStatementEntry struct {
	Date            string       `json:"date"`
	TotalRevenue    *flexFloat64 `json:"totalRevenue"`
	GrossProfit     *flexFloat64 `json:"grossProfit"`
	OperatingIncome *flexFloat64 `json:"operatingIncome"`
	NetIncome       *flexFloat64 `json:"netIncome"`
	EBITDA          *flexFloat64 `json:"ebitda"`
}

type balanceSheetEntry struct {
	Date                    string       `json:"date"`
	TotalAssets             *flexFloat64 `json:"totalAssets"`
	TotalLiabilities        *flexFloat64 `json:"totalLiab"`
	TotalCurrentAssets      *flexFloat64 `json:"totalCurrentAssets"`
	TotalCurrentLiabilities *flexFloat64 `json:"totalCurrentLiabilities"`
	TotalStockholderEquity  *flexFloat64 `json:"totalStockholderEquity"`
	CommonStockSharesOut    *flexFloat64 `json:"commonStockSharesOutstanding"`
}

type cashFlowEntry struct {
	Date                   string       `json:"date"`
	OperatingCashFlow      *flexFloat64 `json:"totalCashFromOperatingActivities"`
	CapitalExpenditures    *flexFloat64 `json:"capitalExpenditures"`
	FreeCashFlow           *flexFloat64 `json:"freeCashFlow"`
	SalePurchaseOfStock    *flexFloat64 `json:"salePurchaseOfStock"`
	StockBasedCompensation *flexFloat64 `json:"stockBasedCompensation"`
}

// optF converts an optional wire value, preserving absence
func optF(f *flexFloat64) *float64 {
	if f == nil {
		return nil
	}
	v := float64(*f)
	return &v
}

// optNonZero converts an optional wire value, treating zero as absent.
// The API reports missing ratios and percentages as 0 or "N/A".
func optNonZero(f *flexFloat64) *float64 {
	if f == nil || *f == 0 {
		return nil
	}
	v := float64(*f)
	return &v
}

// optI converts an optional wire value to an integer count
func optI(f *flexFloat64) *int64 {
	if f == nil || *f == 0 {
		return nil
	}
	v := int64(*f)
	return &v
}

func mapCompany(symbol string, resp *fundamentalsResponse) *models.Company {
	name := resp.General.Name
	if name == "" {
		name = symbol
	}
	return &models.Company{
		Symbol:                   symbol,
		Name:                     name,
		Sector:                   resp.General.Sector,
		Industry:                 resp.General.Industry,
		Description:              resp.General.Description,
		MarketCap:                optNonZero(resp.Highlights.MarketCapitalization),
		Beta:                     optNonZero(resp.Technicals.Beta),
		EnterpriseValue:          optNonZero(resp.Valuation.EnterpriseValue),
		SharesShort:              optI(resp.SharesStats.SharesShort),
		ImpliedSharesOutstanding: optI(resp.SharesStats.SharesOutstanding),
		DividendYield:            optNonZero(resp.SplitsDividends.ForwardAnnualDividendYield),
		DividendRate:             optNonZero(resp.SplitsDividends.ForwardAnnualDividendRate),
		PayoutRatio:              optNonZero(resp.SplitsDividends.PayoutRatio),
		ForwardPE:                optNonZero(resp.Valuation.ForwardPE),
		ForwardEPS:               optNonZero(resp.Highlights.EPSEstimateNextYear),
		PEGRatio:                 optNonZero(resp.Highlights.PEGRatio),
		LastUpdated:              time.Now().UTC(),
	}
}

func mapHighlights(resp *fundamentalsResponse) models.Highlights {
	return models.Highlights{
		MarketCap:        optNonZero(resp.Highlights.MarketCapitalization),
		EBITDA:           optNonZero(resp.Highlights.EBITDA),
		PERatio:          optNonZero(resp.Highlights.PERatio),
		PEGRatio:         optNonZero(resp.Highlights.PEGRatio),
		EPS:              optNonZero(resp.Highlights.EarningsShare),
		BookValue:        optNonZero(resp.Highlights.BookValue),
		DividendYield:    optNonZero(resp.Highlights.DividendYield),
		ProfitMargin:     optNonZero(resp.Highlights.ProfitMargin),
		OperatingMargin:  optNonZero(resp.Highlights.OperatingMarginTTM),
		ROA:              optNonZero(resp.Highlights.ReturnOnAssetsTTM),
		ROE:              optNonZero(resp.Highlights.ReturnOnEquityTTM),
		RevenueGrowthYoY: optNonZero(resp.Highlights.QuarterlyRevenueGrowthYOY),
		PriceToSales:     optNonZero(resp.Valuation.PriceSalesTTM),
		PriceToBook:      optNonZero(resp.Valuation.PriceBookMRQ),
		EVToRevenue:      optNonZero(resp.Valuation.EnterpriseValueRevenue),
		EVToEBITDA:       optNonZero(resp.Valuation.EnterpriseValueEbitda),
		High52Week:       optNonZero(resp.Technicals.WeekHigh52),
		Low52Week:        optNonZero(resp.Technicals.WeekLow52),
	}
}

// sortedDatesDesc returns map keys parseable as dates, newest first
func sortedDatesDesc[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		if _, err := time.Parse("2006-01-02", k); err == nil {
			keys = append(keys, k)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys
}

func fiscalYearOf(date string) int {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0
	}
	return t.Year()
}

func fiscalQuarterOf(date string) int {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0
	}
	return (int(t.Month())-1)/3 + 1
}

func mapAnnual(symbol string, resp *fundamentalsResponse) []models.AnnualFundamentals {
	income := resp.Financials.IncomeStatement.Yearly
	balance := resp.Financials.BalanceSheet.Yearly
	cash := resp.Financials.CashFlow.Yearly

	periods := make([]models.AnnualFundamentals, 0, len(income))
	for _, date := range sortedDatesDesc(income) {
		year := fiscalYearOf(date)
		if year == 0 {
			continue
		}
		is := income[date]
		p := models.AnnualFundamentals{
			Symbol:          symbol,
			FiscalYear:      year,
			Revenue:         optF(is.TotalRevenue),
			GrossProfit:     optF(is.GrossProfit),
			OperatingIncome: optF(is.OperatingIncome),
			NetIncome:       optF(is.NetIncome),
			EBITDA:          optF(is.EBITDA),
		}
		if bs, ok := balance[date]; ok {
			p.TotalAssets = optF(bs.TotalAssets)
			p.TotalLiabilities = optF(bs.TotalLiabilities)
			p.CurrentAssets = optF(bs.TotalCurrentAssets)
			p.CurrentLiabilities = optF(bs.TotalCurrentLiabilities)
			p.ShareholdersEquity = optF(bs.TotalStockholderEquity)
			p.SharesOutstanding = optI(bs.CommonStockSharesOut)
		}
		if cf, ok := cash[date]; ok {
			p.OperatingCashFlow = optF(cf.OperatingCashFlow)
			p.FreeCashFlow = optF(cf.FreeCashFlow)
		}
		periods = append(periods, p)
	}
	return periods
}

func mapQuarterly(symbol string, resp *fundamentalsResponse) []models.QuarterlyFundamentals {
	income := resp.Financials.IncomeStatement.Quarterly
	balance := resp.Financials.BalanceSheet.Quarterly
	cash := resp.Financials.CashFlow.Quarterly

	periods := make([]models.QuarterlyFundamentals, 0, len(income))
	for _, date := range sortedDatesDesc(income) {
		year := fiscalYearOf(date)
		quarter := fiscalQuarterOf(date)
		if year == 0 || quarter == 0 {
			continue
		}
		is := income[date]
		p := models.QuarterlyFundamentals{
			Symbol:          symbol,
			FiscalYear:      year,
			FiscalQuarter:   quarter,
			Revenue:         optF(is.TotalRevenue),
			GrossProfit:     optF(is.GrossProfit),
			OperatingIncome: optF(is.OperatingIncome),
			NetIncome:       optF(is.NetIncome),
		}
		if bs, ok := balance[date]; ok {
			p.TotalAssets = optF(bs.TotalAssets)
			p.TotalLiabilities = optF(bs.TotalLiabilities)
			p.ShareholdersEquity = optF(bs.TotalStockholderEquity)
			p.SharesOutstanding = optI(bs.CommonStockSharesOut)
		}
		if cf, ok := cash[date]; ok {
			p.OperatingCashFlow = optF(cf.OperatingCashFlow)
			p.FreeCashFlow = optF(cf.FreeCashFlow)
		}
		periods = append(periods, p)
	}
	return periods
}

func mapOwnership(symbol string, resp *fundamentalsResponse) *models.OwnershipSnapshot {
	ss := &resp.SharesStats
	if ss.SharesOutstanding == nil && ss.PercentInsiders == nil && ss.PercentInstitutions == nil {
		return nil
	}
	return &models.OwnershipSnapshot{
		Symbol:                    symbol,
		AsOfDate:                  time.Now().UTC().Truncate(24 * time.Hour),
		InsiderOwnershipPct:       optNonZero(ss.PercentInsiders),
		InstitutionalOwnershipPct: optNonZero(ss.PercentInstitutions),
		SharesOutstanding:         optI(ss.SharesOutstanding),
		FloatShares:               optI(ss.SharesFloat),
	}
}

func mapInsiderTransactions(symbol string, resp *fundamentalsResponse) []models.InsiderTransaction {
	txns := make([]models.InsiderTransaction, 0, len(resp.InsiderTransactions))
	for _, t := range resp.InsiderTransactions {
		date, err := time.Parse("2006-01-02", t.Date)
		if err != nil || t.OwnerName == "" {
			continue
		}
		txnType := t.TransactionCode
		switch t.AcquiredDisposed {
		case "A":
			txnType = "buy"
		case "D":
			txnType = "sell"
		}
		txn := models.InsiderTransaction{
			Symbol:          symbol,
			TransactionDate: date,
			InsiderName:     t.OwnerName,
			InsiderTitle:    t.OwnerTitle,
			TransactionType: txnType,
			Shares:          optI(t.TransactionAmount),
			PricePerShare:   optNonZero(t.TransactionPrice),
		}
		if txn.Shares != nil && txn.PricePerShare != nil {
			v := float64(*txn.Shares) * *txn.PricePerShare
			txn.Value = &v
		}
		txns = append(txns, txn)
	}
	sort.Slice(txns, func(i, j int) bool {
		return txns[i].TransactionDate.After(txns[j].TransactionDate)
	})
	return txns
}

func mapHolders(symbol string, resp *fundamentalsResponse) []models.InstitutionalHolder {
	holders := make([]models.InstitutionalHolder, 0, len(resp.Holders.Institutions))
	for _, h := range resp.Holders.Institutions {
		if h.Name == "" {
			continue
		}
		date, _ := time.Parse("2006-01-02", h.Date)
		holder := models.InstitutionalHolder{
			Symbol:       symbol,
			HolderName:   h.Name,
			DateReported: date,
			PctOut:       optNonZero(h.TotalShares),
			Value:        optNonZero(h.TotalAssets),
		}
		if h.CurrentShares != nil {
			holder.Shares = int64(*h.CurrentShares)
		}
		holders = append(holders, holder)
	}
	sort.Slice(holders, func(i, j int) bool {
		return holders[i].Shares > holders[j].Shares
	})
	return holders
}

func mapMajorHolders(symbol string, resp *fundamentalsResponse, institutionsCount int) *models.MajorHolders {
	ss := &resp.SharesStats
	if ss.PercentInsiders == nil && ss.PercentInstitutions == nil {
		return nil
	}
	mh := &models.MajorHolders{
		Symbol:              symbol,
		AsOfDate:            time.Now().UTC().Truncate(24 * time.Hour),
		InsidersPercent:     optNonZero(ss.PercentInsiders),
		InstitutionsPercent: optNonZero(ss.PercentInstitutions),
	}
	if institutionsCount > 0 {
		n := int64(institutionsCount)
		mh.InstitutionsCount = &n
	}
	return mh
}

func mapOfficers(symbol string, resp *fundamentalsResponse) []models.Executive {
	execs := make([]models.Executive, 0, len(resp.General.Officers))
	for _, o := range resp.General.Officers {
		if o.Name == "" {
			continue
		}
		exec := models.Executive{
			Symbol: symbol,
			Name:   o.Name,
			Title:  o.Title,
		}
		if y, err := strconv.ParseInt(o.YearBorn, 10, 64); err == nil && y > 0 {
			exec.YearBorn = &y
		}
		execs = append(execs, exec)
	}
	sort.Slice(execs, func(i, j int) bool {
		return execs[i].Name < execs[j].Name
	})
	return execs
}

// mapBuybacks derives repurchase activity from quarterly cash flow.
// A negative salePurchaseOfStock means net repurchases.
func mapBuybacks(symbol string, resp *fundamentalsResponse) []models.Buyback {
	cash := resp.Financials.CashFlow.Quarterly
	buybacks := make([]models.Buyback, 0)
	for _, date := range sortedDatesDesc(cash) {
		cf := cash[date]
		if cf.SalePurchaseOfStock == nil || *cf.SalePurchaseOfStock >= 0 {
			continue
		}
		amount := -float64(*cf.SalePurchaseOfStock)
		buybacks = append(buybacks, models.Buyback{
			Symbol:        symbol,
			FiscalYear:    fiscalYearOf(date),
			FiscalQuarter: fiscalQuarterOf(date),
			BuybackAmount: &amount,
		})
	}
	return buybacks
}

func mapOutstandingShares(symbol string, resp *fundamentalsResponse) []models.QuarterlyShares {
	shares := make([]models.QuarterlyShares, 0, len(resp.OutstandingShares.Quarterly))
	for _, entry := range resp.OutstandingShares.Quarterly {
		if entry.Shares == nil || *entry.Shares <= 0 {
			continue
		}
		year := fiscalYearOf(entry.DateFormatted)
		quarter := fiscalQuarterOf(entry.DateFormatted)
		if year == 0 || quarter == 0 {
			continue
		}
		shares = append(shares, models.QuarterlyShares{
			Symbol:            symbol,
			FiscalYear:        year,
			FiscalQuarter:     quarter,
			SharesOutstanding: int64(*entry.Shares),
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].FiscalYear != shares[j].FiscalYear {
			return shares[i].FiscalYear > shares[j].FiscalYear
		}
		return shares[i].FiscalQuarter > shares[j].FiscalQuarter
	})
	return shares
}

func mapSBC(symbol string, resp *fundamentalsResponse) []models.StockBasedCompensation {
	cash := resp.Financials.CashFlow.Yearly
	sbc := make([]models.StockBasedCompensation, 0)
	for _, date := range sortedDatesDesc(cash) {
		cf := cash[date]
		if cf.StockBasedCompensation == nil || *cf.StockBasedCompensation == 0 {
			continue
		}
		year := fiscalYearOf(date)
		if year == 0 {
			continue
		}
		sbc = append(sbc, models.StockBasedCompensation{
			Symbol:     symbol,
			FiscalYear: year,
			SBCAmount:  float64(*cf.StockBasedCompensation),
		})
	}
	return sbc
}
