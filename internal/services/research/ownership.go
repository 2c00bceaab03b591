package research

import (
	"context"

	"github.com/kestrelhq/kestrel/internal/models"
)

const (
	insiderTxnLimit = 20
	topHoldersLimit = 10
	topExecsLimit   = 5
)

// GetInsiderOwnership returns the ownership snapshot plus recent insider trades
func (s *Service) GetInsiderOwnership(ctx context.Context, symbol string) (*models.InsiderOwnershipBundle, error) {
	ownership, err := s.storage.GetOwnership(ctx, symbol)
	if err != nil {
		s.logger.Warn().Str("symbol", symbol).Err(err).Msg("ownership read failed, treating as miss")
		ownership = nil
	}
	txns, err := s.storage.GetInsiderTransactions(ctx, symbol, insiderTxnLimit)
	if err != nil {
		s.logger.Warn().Str("symbol", symbol).Err(err).Msg("insider transactions read failed, treating as miss")
		txns = nil
	}

	if ownership == nil && len(txns) == 0 {
		doc, fetchErr := s.fetchAndPersist(ctx, symbol)
		if fetchErr != nil {
			return nil, fetchErr
		}
		ownership = doc.Ownership
		txns = doc.InsiderTransactions
		if len(txns) > insiderTxnLimit {
			txns = txns[:insiderTxnLimit]
		}
	}

	return &models.InsiderOwnershipBundle{
		Symbol:       symbol,
		Ownership:    ownership,
		Transactions: txns,
	}, nil
}

// GetInstitutionalHolders returns top holders plus the major-holders summary
func (s *Service) GetInstitutionalHolders(ctx context.Context, symbol string) (*models.InstitutionalHoldersBundle, error) {
	holders, err := s.storage.GetInstitutionalHolders(ctx, symbol, topHoldersLimit)
	if err != nil {
		s.logger.Warn().Str("symbol", symbol).Err(err).Msg("holders read failed, treating as miss")
		holders = nil
	}
	major, err := s.storage.GetMajorHolders(ctx, symbol)
	if err != nil {
		s.logger.Warn().Str("symbol", symbol).Err(err).Msg("major holders read failed, treating as miss")
		major = nil
	}

	if len(holders) == 0 && major == nil {
		doc, fetchErr := s.fetchAndPersist(ctx, symbol)
		if fetchErr != nil {
			return nil, fetchErr
		}
		holders = doc.Holders
		if len(holders) > topHoldersLimit {
			holders = holders[:topHoldersLimit]
		}
		major = doc.MajorHolders
	}

	return &models.InstitutionalHoldersBundle{
		Symbol:  symbol,
		Holders: holders,
		Major:   major,
	}, nil
}

// GetShareData returns quarterly share counts and buyback history
func (s *Service) GetShareData(ctx context.Context, symbol string) (*models.ShareDataBundle, error) {
	shares, err := s.storage.GetQuarterlyShares(ctx, symbol)
	if err != nil {
		s.logger.Warn().Str("symbol", symbol).Err(err).Msg("quarterly shares read failed, treating as miss")
		shares = nil
	}
	buybacks, err := s.storage.GetBuybacks(ctx, symbol)
	if err != nil {
		s.logger.Warn().Str("symbol", symbol).Err(err).Msg("buybacks read failed, treating as miss")
		buybacks = nil
	}

	if len(shares) == 0 && len(buybacks) == 0 {
		doc, fetchErr := s.fetchAndPersist(ctx, symbol)
		if fetchErr != nil {
			return nil, fetchErr
		}
		shares = doc.QuarterlyShares
		buybacks = doc.Buybacks
	}

	return &models.ShareDataBundle{
		Symbol:          symbol,
		QuarterlyShares: shares,
		Buybacks:        buybacks,
	}, nil
}

// GetManagementCompensation returns the top executives by pay plus SBC history
func (s *Service) GetManagementCompensation(ctx context.Context, symbol string) (*models.ManagementCompensationBundle, error) {
	execs, err := s.storage.GetExecutives(ctx, symbol)
	if err != nil {
		s.logger.Warn().Str("symbol", symbol).Err(err).Msg("executives read failed, treating as miss")
		execs = nil
	}
	sbc, err := s.storage.GetSBC(ctx, symbol)
	if err != nil {
		s.logger.Warn().Str("symbol", symbol).Err(err).Msg("SBC read failed, treating as miss")
		sbc = nil
	}

	if len(execs) == 0 && len(sbc) == 0 {
		doc, fetchErr := s.fetchAndPersist(ctx, symbol)
		if fetchErr != nil {
			return nil, fetchErr
		}
		execs = doc.Executives
		sbc = doc.SBC
	}

	if len(execs) > topExecsLimit {
		execs = execs[:topExecsLimit]
	}

	return &models.ManagementCompensationBundle{
		Symbol:     symbol,
		Executives: execs,
		SBCHistory: sbc,
	}, nil
}
