package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kestrelhq/kestrel/internal/models"
)

// GetOwnership returns the latest ownership snapshot, or nil if absent
func (s *Store) GetOwnership(ctx context.Context, symbol string) (*models.OwnershipSnapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT symbol, as_of_date, insider_ownership_pct, institutional_ownership_pct,
			shares_outstanding, float_shares
		FROM ownership
		WHERE symbol = ?
		ORDER BY as_of_date DESC
		LIMIT 1`, symbol)

	var o models.OwnershipSnapshot
	var asOf string
	var insiderPct, instPct sql.NullFloat64
	var shares, floatShares sql.NullInt64

	err := row.Scan(&o.Symbol, &asOf, &insiderPct, &instPct, &shares, &floatShares)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query ownership for %s: %w", symbol, err)
	}

	if t, err := time.Parse(dateFormat, asOf); err == nil {
		o.AsOfDate = t
	}
	o.InsiderOwnershipPct = ptrF(insiderPct)
	o.InstitutionalOwnershipPct = ptrF(instPct)
	o.SharesOutstanding = ptrI(shares)
	o.FloatShares = ptrI(floatShares)

	return &o, nil
}

// SaveOwnership upserts an ownership snapshot
func (s *Store) SaveOwnership(ctx context.Context, snapshot *models.OwnershipSnapshot) error {
	return saveOwnership(ctx, s.db, snapshot)
}

func saveOwnership(ctx context.Context, ex execer, snapshot *models.OwnershipSnapshot) error {
	asOf := snapshot.AsOfDate
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	_, err := ex.ExecContext(ctx, `
		INSERT OR REPLACE INTO ownership (
			symbol, as_of_date, insider_ownership_pct, institutional_ownership_pct,
			shares_outstanding, float_shares
		) VALUES (?, ?, ?, ?, ?, ?)`,
		snapshot.Symbol, asOf.Format(dateFormat),
		nullF(snapshot.InsiderOwnershipPct), nullF(snapshot.InstitutionalOwnershipPct),
		nullI(snapshot.SharesOutstanding), nullI(snapshot.FloatShares))
	if err != nil {
		return fmt.Errorf("failed to save ownership for %s: %w", snapshot.Symbol, err)
	}
	return nil
}

// GetInsiderTransactions returns the most recent transactions, newest first
func (s *Store) GetInsiderTransactions(ctx context.Context, symbol string, limit int) ([]models.InsiderTransaction, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, transaction_date, insider_name, insider_title,
			transaction_type, shares, value, price_per_share
		FROM insider_transactions
		WHERE symbol = ?
		ORDER BY transaction_date DESC
		LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query insider transactions for %s: %w", symbol, err)
	}
	defer rows.Close()

	var txns []models.InsiderTransaction
	for rows.Next() {
		var t models.InsiderTransaction
		var date string
		var title sql.NullString
		var shares sql.NullInt64
		var value, price sql.NullFloat64

		if err := rows.Scan(&t.Symbol, &date, &t.InsiderName, &title,
			&t.TransactionType, &shares, &value, &price); err != nil {
			return nil, err
		}

		if d, err := time.Parse(dateFormat, date); err == nil {
			t.TransactionDate = d
		}
		t.InsiderTitle = title.String
		t.Shares = ptrI(shares)
		t.Value = ptrF(value)
		t.PricePerShare = ptrF(price)

		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// SaveInsiderTransactions appends transactions, deduplicating on natural key
func (s *Store) SaveInsiderTransactions(ctx context.Context, symbol string, txns []models.InsiderTransaction) error {
	return saveInsiderTransactions(ctx, s.db, symbol, txns)
}

func saveInsiderTransactions(ctx context.Context, ex execer, symbol string, txns []models.InsiderTransaction) error {
	for _, t := range txns {
		_, err := ex.ExecContext(ctx, `
			INSERT OR IGNORE INTO insider_transactions (
				symbol, transaction_date, insider_name, insider_title,
				transaction_type, shares, value, price_per_share
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			symbol, t.TransactionDate.Format(dateFormat), t.InsiderName, t.InsiderTitle,
			t.TransactionType, nullI(t.Shares), nullF(t.Value), nullF(t.PricePerShare))
		if err != nil {
			return fmt.Errorf("failed to save insider transaction %s/%s: %w", symbol, t.InsiderName, err)
		}
	}
	return nil
}

// GetInstitutionalHolders returns the current holder snapshot, largest first
func (s *Store) GetInstitutionalHolders(ctx context.Context, symbol string, limit int) ([]models.InstitutionalHolder, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, holder_name, shares, date_reported, pct_out, value
		FROM institutional_holders
		WHERE symbol = ?
		ORDER BY shares DESC
		LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query institutional holders for %s: %w", symbol, err)
	}
	defer rows.Close()

	var holders []models.InstitutionalHolder
	for rows.Next() {
		var h models.InstitutionalHolder
		var date sql.NullString
		var pctOut, value sql.NullFloat64

		if err := rows.Scan(&h.Symbol, &h.HolderName, &h.Shares, &date, &pctOut, &value); err != nil {
			return nil, err
		}

		if date.Valid {
			if d, err := time.Parse(dateFormat, date.String); err == nil {
				h.DateReported = d
			}
		}
		h.PctOut = ptrF(pctOut)
		h.Value = ptrF(value)

		holders = append(holders, h)
	}
	return holders, rows.Err()
}

// SaveInstitutionalHolders replaces the holder snapshot for the symbol.
// The delete and inserts run in one transaction so readers never see a
// half-replaced snapshot.
func (s *Store) SaveInstitutionalHolders(ctx context.Context, symbol string, holders []models.InstitutionalHolder) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := saveInstitutionalHolders(ctx, tx, symbol, holders); err != nil {
		return err
	}
	return tx.Commit()
}

func saveInstitutionalHolders(ctx context.Context, ex execer, symbol string, holders []models.InstitutionalHolder) error {
	if _, err := ex.ExecContext(ctx, `DELETE FROM institutional_holders WHERE symbol = ?`, symbol); err != nil {
		return fmt.Errorf("failed to clear institutional holders for %s: %w", symbol, err)
	}
	for _, h := range holders {
		var date interface{}
		if !h.DateReported.IsZero() {
			date = h.DateReported.Format(dateFormat)
		}
		_, err := ex.ExecContext(ctx, `
			INSERT INTO institutional_holders (symbol, holder_name, shares, date_reported, pct_out, value)
			VALUES (?, ?, ?, ?, ?, ?)`,
			symbol, h.HolderName, h.Shares, date, nullF(h.PctOut), nullF(h.Value))
		if err != nil {
			return fmt.Errorf("failed to save institutional holder %s/%s: %w", symbol, h.HolderName, err)
		}
	}
	return nil
}

// GetMajorHolders returns the latest major-holders summary, or nil if absent
func (s *Store) GetMajorHolders(ctx context.Context, symbol string) (*models.MajorHolders, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT symbol, as_of_date, insiders_percent, institutions_percent,
			institutions_float_percent, institutions_count
		FROM major_holders
		WHERE symbol = ?
		ORDER BY as_of_date DESC
		LIMIT 1`, symbol)

	var mh models.MajorHolders
	var asOf string
	var insiders, institutions, instFloat sql.NullFloat64
	var count sql.NullInt64

	err := row.Scan(&mh.Symbol, &asOf, &insiders, &institutions, &instFloat, &count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query major holders for %s: %w", symbol, err)
	}

	if t, err := time.Parse(dateFormat, asOf); err == nil {
		mh.AsOfDate = t
	}
	mh.InsidersPercent = ptrF(insiders)
	mh.InstitutionsPercent = ptrF(institutions)
	mh.InstitutionsFloatPercent = ptrF(instFloat)
	mh.InstitutionsCount = ptrI(count)

	return &mh, nil
}

// SaveMajorHolders upserts a major-holders summary
func (s *Store) SaveMajorHolders(ctx context.Context, mh *models.MajorHolders) error {
	return saveMajorHolders(ctx, s.db, mh)
}

func saveMajorHolders(ctx context.Context, ex execer, mh *models.MajorHolders) error {
	asOf := mh.AsOfDate
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	_, err := ex.ExecContext(ctx, `
		INSERT OR REPLACE INTO major_holders (
			symbol, as_of_date, insiders_percent, institutions_percent,
			institutions_float_percent, institutions_count
		) VALUES (?, ?, ?, ?, ?, ?)`,
		mh.Symbol, asOf.Format(dateFormat),
		nullF(mh.InsidersPercent), nullF(mh.InstitutionsPercent),
		nullF(mh.InstitutionsFloatPercent), nullI(mh.InstitutionsCount))
	if err != nil {
		return fmt.Errorf("failed to save major holders for %s: %w", mh.Symbol, err)
	}
	return nil
}
