package research

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/kestrelhq/kestrel/internal/models"
)

const (
	defaultSimilarLimit = 10
	candidatePoolCap    = 50

	// Market-cap ratio gate: candidates outside one order-of-magnitude
	// smaller or 2x larger are not comparable businesses
	minMarketCapRatio = 0.1
	maxMarketCapRatio = 2.0

	// Score weights; the sum is clamped to 100
	sectorPoints    = 50.0
	industryPoints  = 20.0
	marketCapPoints = 20.0
	marginPoints    = 15.0
	growthPoints    = 10.0
	roePoints       = 5.0
)

// FindSimilarCompanies discovers and scores peers of the reference symbol
func (s *Service) FindSimilarCompanies(ctx context.Context, symbol string, limit int) (*models.SimilarityResult, error) {
	if limit <= 0 {
		limit = defaultSimilarLimit
	}

	ref, err := s.GetFundamentals(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if ref.Sector == "" || ref.MarketCap == nil || *ref.MarketCap <= 0 {
		return nil, fmt.Errorf("%s: %w", symbol, models.ErrInsufficientReferenceData)
	}

	pool := s.candidatePool(ctx, ref)
	if len(pool) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, models.ErrNoCandidates)
	}

	result := &models.SimilarityResult{
		ReferenceSymbol:    symbol,
		ReferenceSector:    ref.Sector,
		ReferenceIndustry:  ref.Industry,
		ReferenceMarketCap: *ref.MarketCap,
	}

	for _, candidate := range pool {
		cand, err := s.GetFundamentals(ctx, candidate)
		if err != nil {
			s.logger.Warn().Str("symbol", candidate).Err(err).Msg("skipping candidate, fetch failed")
			continue
		}
		result.CandidatesAnalyzed++

		// Hard gates before any scoring
		if cand.Sector != ref.Sector {
			continue
		}
		if cand.MarketCap == nil || *cand.MarketCap <= 0 {
			continue
		}
		ratio := *cand.MarketCap / *ref.MarketCap
		if ratio < minMarketCapRatio || ratio > maxMarketCapRatio {
			continue
		}

		result.Matches = append(result.Matches, models.SimilarityMatch{
			Symbol:    candidate,
			Name:      cand.Name,
			Sector:    cand.Sector,
			Industry:  cand.Industry,
			MarketCap: cand.MarketCap,
			Score:     similarityScore(ref, cand),
		})
	}

	sort.SliceStable(result.Matches, func(i, j int) bool {
		return result.Matches[i].Score > result.Matches[j].Score
	})
	if len(result.Matches) > limit {
		result.Matches = result.Matches[:limit]
	}
	result.MatchesFound = len(result.Matches)

	return result, nil
}

// candidatePool discovers peers from the provider taxonomy: industry first
// for precision, then sector for breadth, deduplicated and capped
func (s *Service) candidatePool(ctx context.Context, ref *models.FundamentalsBundle) []string {
	var pool []string
	seen := map[string]bool{ref.Symbol: true}

	appendAll := func(symbols []string) {
		for _, symbol := range symbols {
			if len(pool) >= candidatePoolCap {
				return
			}
			if seen[symbol] {
				continue
			}
			seen[symbol] = true
			pool = append(pool, symbol)
		}
	}

	if ref.Industry != "" {
		symbols, err := s.client.ListIndustry(ctx, ref.Industry, candidatePoolCap)
		if err != nil {
			s.logger.Warn().Str("industry", ref.Industry).Err(err).Msg("industry lookup failed")
		} else {
			appendAll(symbols)
		}
	}
	if len(pool) < candidatePoolCap {
		symbols, err := s.client.ListSector(ctx, ref.Sector, candidatePoolCap)
		if err != nil {
			s.logger.Warn().Str("sector", ref.Sector).Err(err).Msg("sector lookup failed")
		} else {
			appendAll(symbols)
		}
	}

	return pool
}

// similarityScore rates a sector-matched candidate out of 100
func similarityScore(ref, cand *models.FundamentalsBundle) float64 {
	score := sectorPoints

	if cand.Industry != "" && cand.Industry == ref.Industry {
		score += industryPoints
	}

	ratio := *cand.MarketCap / *ref.MarketCap
	closeness := marketCapPoints * (1 - math.Abs(math.Log10(ratio))/math.Log10(2))
	if closeness > 0 {
		score += closeness
	}

	score += metricTerm(marginPoints, ref.ProfitMargin, cand.ProfitMargin)
	score += metricTerm(growthPoints, ref.RevenueGrowth, cand.RevenueGrowth)
	score += metricTerm(roePoints, ref.ROE, cand.ROE)

	return math.Min(score, 100)
}

// metricTerm scores relative closeness of one metric: full points for equal
// values, fading to zero as the gap reaches the pair's mean magnitude.
// Absent or zero values contribute nothing.
func metricTerm(points float64, a, b *float64) float64 {
	if a == nil || b == nil || *a == 0 || *b == 0 {
		return 0
	}
	mean := (math.Abs(*a) + math.Abs(*b)) / 2
	if mean == 0 {
		return 0
	}
	term := points * (1 - math.Abs(*a-*b)/mean)
	if term < 0 {
		return 0
	}
	return term
}

// CompareStocks computes a pairwise similarity decomposition
func (s *Service) CompareStocks(ctx context.Context, symbol1, symbol2 string) (*models.StockComparison, error) {
	a, err := s.GetFundamentals(ctx, symbol1)
	if err != nil {
		return nil, err
	}
	b, err := s.GetFundamentals(ctx, symbol2)
	if err != nil {
		return nil, err
	}

	cmp := &models.StockComparison{
		Symbol1:      symbol1,
		Symbol2:      symbol2,
		SameSector:   a.Sector != "" && a.Sector == b.Sector,
		SameIndustry: a.Industry != "" && a.Industry == b.Industry,
	}

	cmp.ROESimilarity = relativeSimilarity(a.ROE, b.ROE)
	cmp.MarginSimilarity = relativeSimilarity(a.ProfitMargin, b.ProfitMargin)
	cmp.GrowthSimilarity = relativeSimilarity(a.RevenueGrowth, b.RevenueGrowth)

	dims := []float64{boolDim(cmp.SameSector), boolDim(cmp.SameIndustry)}
	for _, d := range []*float64{cmp.ROESimilarity, cmp.MarginSimilarity, cmp.GrowthSimilarity} {
		if d != nil {
			dims = append(dims, *d)
		}
	}
	var sum float64
	for _, d := range dims {
		sum += d
	}
	overall := sum / float64(len(dims))
	cmp.OverallSimilarity = &overall

	return cmp, nil
}

// relativeSimilarity maps a metric pair onto [0,1], absent when either side
// is missing or zero
func relativeSimilarity(a, b *float64) *float64 {
	if a == nil || b == nil || *a == 0 || *b == 0 {
		return nil
	}
	mean := (math.Abs(*a) + math.Abs(*b)) / 2
	if mean == 0 {
		return nil
	}
	v := 1 - math.Abs(*a-*b)/mean
	if v < 0 {
		v = 0
	}
	return &v
}

func boolDim(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
