package models

import "errors"

// Sentinel errors for domain conditions callers are expected to branch on
var (
	// ErrNotFound indicates the requested record does not exist in the store
	ErrNotFound = errors.New("not found")

	// ErrInsufficientReferenceData indicates the reference company lacks the
	// sector or market cap needed to anchor a similarity search
	ErrInsufficientReferenceData = errors.New("insufficient reference data")

	// ErrNoCandidates indicates candidate discovery produced an empty pool
	ErrNoCandidates = errors.New("no candidates found")
)
