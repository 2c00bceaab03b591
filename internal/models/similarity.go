package models

// SimilarityMatch is one scored candidate from a similarity search
type SimilarityMatch struct {
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name"`
	Sector    string   `json:"sector,omitempty"`
	Industry  string   `json:"industry,omitempty"`
	MarketCap *float64 `json:"market_cap,omitempty"`
	Score     float64  `json:"score"`
}

// SimilarityResult carries the ranked matches plus reference context
type SimilarityResult struct {
	ReferenceSymbol    string            `json:"reference_symbol"`
	ReferenceSector    string            `json:"reference_sector"`
	ReferenceIndustry  string            `json:"reference_industry,omitempty"`
	ReferenceMarketCap float64           `json:"reference_market_cap"`
	CandidatesAnalyzed int               `json:"candidates_analyzed"`
	MatchesFound       int               `json:"matches_found"`
	Matches            []SimilarityMatch `json:"matches"`
}

// StockComparison is a pairwise similarity decomposition between two symbols
type StockComparison struct {
	Symbol1           string   `json:"symbol1"`
	Symbol2           string   `json:"symbol2"`
	SameSector        bool     `json:"same_sector"`
	SameIndustry      bool     `json:"same_industry"`
	ROESimilarity     *float64 `json:"roe_similarity,omitempty"`
	MarginSimilarity  *float64 `json:"margin_similarity,omitempty"`
	GrowthSimilarity  *float64 `json:"growth_similarity,omitempty"`
	OverallSimilarity *float64 `json:"overall_similarity,omitempty"`
}
