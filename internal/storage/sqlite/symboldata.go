package sqlite

import (
	"context"
	"fmt"

	"github.com/kestrelhq/kestrel/internal/models"
)

// SaveSymbolData persists everything fetched for one symbol in a single
// transaction. An interrupted run leaves whole symbols, never torn ones.
func (s *Store) SaveSymbolData(ctx context.Context, data *models.SymbolData) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if data.Company != nil {
		if err := saveCompany(ctx, tx, data.Company); err != nil {
			return err
		}
	}
	if len(data.Annual) > 0 {
		if err := saveAnnualFundamentals(ctx, tx, data.Symbol, data.Annual); err != nil {
			return err
		}
	}
	if len(data.Quarterly) > 0 {
		if err := saveQuarterlyFundamentals(ctx, tx, data.Symbol, data.Quarterly); err != nil {
			return err
		}
	}
	if len(data.Prices) > 0 {
		if err := savePriceHistory(ctx, tx, data.Symbol, data.Prices, false); err != nil {
			return err
		}
	}
	if data.Ownership != nil {
		if err := saveOwnership(ctx, tx, data.Ownership); err != nil {
			return err
		}
	}
	if len(data.InsiderTransactions) > 0 {
		if err := saveInsiderTransactions(ctx, tx, data.Symbol, data.InsiderTransactions); err != nil {
			return err
		}
	}
	if len(data.Holders) > 0 {
		if err := saveInstitutionalHolders(ctx, tx, data.Symbol, data.Holders); err != nil {
			return err
		}
	}
	if data.MajorHolders != nil {
		if err := saveMajorHolders(ctx, tx, data.MajorHolders); err != nil {
			return err
		}
	}
	if len(data.Executives) > 0 {
		if err := saveExecutives(ctx, tx, data.Symbol, data.Executives); err != nil {
			return err
		}
	}
	if len(data.Buybacks) > 0 {
		if err := saveBuybacks(ctx, tx, data.Symbol, data.Buybacks); err != nil {
			return err
		}
	}
	if len(data.QuarterlyShares) > 0 {
		if err := saveQuarterlyShares(ctx, tx, data.Symbol, data.QuarterlyShares); err != nil {
			return err
		}
	}
	if len(data.SBC) > 0 {
		if err := saveSBC(ctx, tx, data.Symbol, data.SBC); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit symbol data for %s: %w", data.Symbol, err)
	}

	s.logger.Debug().Str("symbol", data.Symbol).Msg("persisted symbol data")

	return nil
}
