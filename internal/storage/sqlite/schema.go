package sqlite

// schemaStatements are applied in order at open. Every statement is
// idempotent so re-opening an existing database is a no-op.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		symbol TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		sector TEXT,
		industry TEXT,
		market_cap REAL,
		description TEXT,
		beta REAL,
		enterprise_value REAL,
		quick_ratio REAL,
		total_cash REAL,
		total_debt REAL,
		shares_short INTEGER,
		implied_shares_outstanding INTEGER,
		dividend_yield REAL,
		dividend_rate REAL,
		payout_ratio REAL,
		forward_pe REAL,
		forward_eps REAL,
		peg_ratio REAL,
		last_updated TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS fundamentals_annual (
		symbol TEXT NOT NULL,
		fiscal_year INTEGER NOT NULL,
		revenue REAL,
		operating_income REAL,
		net_income REAL,
		total_assets REAL,
		total_liabilities REAL,
		shareholders_equity REAL,
		operating_cash_flow REAL,
		free_cash_flow REAL,
		shares_outstanding INTEGER,
		roic REAL,
		roe REAL,
		roa REAL,
		ebitda REAL,
		profit_margin REAL,
		operating_margin REAL,
		gross_margin REAL,
		debt_to_equity REAL,
		current_ratio REAL,
		UNIQUE(symbol, fiscal_year)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_fundamentals_annual_symbol ON fundamentals_annual(symbol)`,

	`CREATE TABLE IF NOT EXISTS fundamentals_quarterly (
		symbol TEXT NOT NULL,
		fiscal_year INTEGER NOT NULL,
		fiscal_quarter INTEGER NOT NULL,
		revenue REAL,
		gross_profit REAL,
		operating_income REAL,
		net_income REAL,
		total_assets REAL,
		total_liabilities REAL,
		shareholders_equity REAL,
		operating_cash_flow REAL,
		free_cash_flow REAL,
		shares_outstanding INTEGER,
		UNIQUE(symbol, fiscal_year, fiscal_quarter)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_fundamentals_quarterly_symbol ON fundamentals_quarterly(symbol)`,

	`CREATE TABLE IF NOT EXISTS price_history (
		symbol TEXT NOT NULL,
		date TEXT NOT NULL,
		open REAL,
		high REAL,
		low REAL,
		close REAL,
		adj_close REAL,
		volume INTEGER,
		UNIQUE(symbol, date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_price_history_symbol_date ON price_history(symbol, date)`,

	`CREATE TABLE IF NOT EXISTS ownership (
		symbol TEXT NOT NULL,
		as_of_date TEXT NOT NULL,
		insider_ownership_pct REAL,
		institutional_ownership_pct REAL,
		shares_outstanding INTEGER,
		float_shares INTEGER,
		UNIQUE(symbol, as_of_date)
	)`,

	`CREATE TABLE IF NOT EXISTS insider_transactions (
		symbol TEXT NOT NULL,
		transaction_date TEXT NOT NULL,
		insider_name TEXT NOT NULL,
		insider_title TEXT,
		transaction_type TEXT NOT NULL,
		shares INTEGER,
		value REAL,
		price_per_share REAL,
		UNIQUE(symbol, transaction_date, insider_name, transaction_type, shares)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_insider_transactions_symbol ON insider_transactions(symbol, transaction_date)`,

	`CREATE TABLE IF NOT EXISTS institutional_holders (
		symbol TEXT NOT NULL,
		holder_name TEXT NOT NULL,
		shares INTEGER,
		date_reported TEXT,
		pct_out REAL,
		value REAL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_institutional_holders_symbol ON institutional_holders(symbol)`,

	`CREATE TABLE IF NOT EXISTS major_holders (
		symbol TEXT NOT NULL,
		as_of_date TEXT NOT NULL,
		insiders_percent REAL,
		institutions_percent REAL,
		institutions_float_percent REAL,
		institutions_count INTEGER,
		UNIQUE(symbol, as_of_date)
	)`,

	`CREATE TABLE IF NOT EXISTS executives (
		symbol TEXT NOT NULL,
		name TEXT NOT NULL,
		title TEXT,
		total_pay REAL,
		exercised_value REAL,
		unexercised_value REAL,
		year_born INTEGER,
		fiscal_year INTEGER
	)`,
	`CREATE INDEX IF NOT EXISTS idx_executives_symbol ON executives(symbol)`,

	`CREATE TABLE IF NOT EXISTS buybacks (
		symbol TEXT NOT NULL,
		fiscal_year INTEGER NOT NULL,
		fiscal_quarter INTEGER NOT NULL,
		shares_repurchased INTEGER,
		buyback_amount REAL,
		UNIQUE(symbol, fiscal_year, fiscal_quarter)
	)`,

	`CREATE TABLE IF NOT EXISTS quarterly_shares (
		symbol TEXT NOT NULL,
		fiscal_year INTEGER NOT NULL,
		fiscal_quarter INTEGER NOT NULL,
		shares_outstanding INTEGER NOT NULL,
		UNIQUE(symbol, fiscal_year, fiscal_quarter)
	)`,

	`CREATE TABLE IF NOT EXISTS stock_based_compensation (
		symbol TEXT NOT NULL,
		fiscal_year INTEGER NOT NULL,
		sbc_amount REAL NOT NULL,
		UNIQUE(symbol, fiscal_year)
	)`,
}
