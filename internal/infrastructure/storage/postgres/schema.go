package postgres

import (
	"context"
	"fmt"

	"kassa/pkg/logger"
)

// schemaStatements bootstrap the database on startup. Every statement is
// idempotent so the service can run them on every boot.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		account_type TEXT NOT NULL CHECK (account_type IN ('cash', 'bank')),
		currency TEXT NOT NULL DEFAULT 'UZS',
		description TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS payment_methods (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		method_type TEXT NOT NULL CHECK (method_type IN ('terminal', 'online', 'delivery')),
		commission_percent NUMERIC(5,2) NOT NULL DEFAULT 0
			CHECK (commission_percent >= 0 AND commission_percent <= 100),
		default_account_id UUID NOT NULL REFERENCES accounts(id),
		description TEXT,
		is_visible BOOLEAN NOT NULL DEFAULT TRUE,
		display_order INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS locations (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		address TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		parent_id UUID REFERENCES categories(id),
		category_type TEXT NOT NULL CHECK (category_type IN ('income', 'expense')),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS expense_categories (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		telegram_id BIGINT NOT NULL UNIQUE,
		username TEXT,
		role TEXT NOT NULL CHECK (role IN ('owner', 'manager', 'accountant', 'cashier')),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS daily_reports (
		id UUID PRIMARY KEY,
		report_date DATE NOT NULL,
		location_id UUID NOT NULL REFERENCES locations(id),
		total_sales NUMERIC(15,2) NOT NULL DEFAULT 0,
		cash_expected NUMERIC(15,2),
		cash_actual NUMERIC(15,2),
		cash_difference NUMERIC(15,2),
		cash_breakdown JSONB,
		status TEXT NOT NULL DEFAULT 'open'
			CHECK (status IN ('open', 'closed', 'verified')),
		created_by UUID REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		closed_at TIMESTAMPTZ,
		verified_by UUID REFERENCES users(id),
		verified_at TIMESTAMPTZ,
		notes TEXT,
		UNIQUE (report_date, location_id)
	)`,

	`CREATE TABLE IF NOT EXISTS report_payments (
		id UUID PRIMARY KEY,
		report_id UUID NOT NULL REFERENCES daily_reports(id) ON DELETE CASCADE,
		payment_method_id UUID NOT NULL REFERENCES payment_methods(id),
		account_id UUID NOT NULL REFERENCES accounts(id),
		amount NUMERIC(15,2) NOT NULL,
		commission_amount NUMERIC(15,2) NOT NULL DEFAULT 0,
		net_amount NUMERIC(15,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS non_sales_income (
		id UUID PRIMARY KEY,
		report_id UUID NOT NULL REFERENCES daily_reports(id) ON DELETE CASCADE,
		category_id UUID REFERENCES categories(id),
		account_id UUID NOT NULL REFERENCES accounts(id),
		amount NUMERIC(15,2) NOT NULL,
		description TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS report_expenses (
		id UUID PRIMARY KEY,
		report_id UUID NOT NULL REFERENCES daily_reports(id) ON DELETE CASCADE,
		category_id UUID REFERENCES expense_categories(id),
		account_id UUID NOT NULL REFERENCES accounts(id),
		amount NUMERIC(15,2) NOT NULL,
		description TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS report_archive (
		id UUID PRIMARY KEY,
		report_id UUID NOT NULL REFERENCES daily_reports(id) ON DELETE CASCADE,
		snapshot JSONB,
		snapshot_compressed BYTEA,
		compression_algo TEXT NOT NULL DEFAULT 'none',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_daily_reports_date ON daily_reports(report_date)`,
	`CREATE INDEX IF NOT EXISTS idx_daily_reports_location ON daily_reports(location_id)`,
	`CREATE INDEX IF NOT EXISTS idx_daily_reports_status ON daily_reports(status)`,
	`CREATE INDEX IF NOT EXISTS idx_report_payments_report ON report_payments(report_id)`,
	`CREATE INDEX IF NOT EXISTS idx_report_payments_account ON report_payments(account_id)`,
	`CREATE INDEX IF NOT EXISTS idx_non_sales_income_report ON non_sales_income(report_id)`,
	`CREATE INDEX IF NOT EXISTS idx_non_sales_income_account ON non_sales_income(account_id)`,
	`CREATE INDEX IF NOT EXISTS idx_report_expenses_report ON report_expenses(report_id)`,
	`CREATE INDEX IF NOT EXISTS idx_report_expenses_account ON report_expenses(account_id)`,
	`CREATE INDEX IF NOT EXISTS idx_report_archive_report ON report_archive(report_id)`,
}

// Bootstrap creates the schema if it does not exist yet.
func Bootstrap(ctx context.Context, pool *Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	logger.Info(ctx, "database schema ready")
	return nil
}
