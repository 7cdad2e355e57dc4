package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func runMigrations(ctx context.Context, db *sql.DB) error {
	const bootstrapSchema = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  version INTEGER NOT NULL
);

INSERT OR IGNORE INTO schema_migrations (id, version) VALUES (1, 1);
`
	if _, err := db.ExecContext(ctx, bootstrapSchema); err != nil {
		return fmt.Errorf("run sqlite migrations: %w", err)
	}

	var currentVersion int
	if err := db.QueryRowContext(ctx, "SELECT version FROM schema_migrations WHERE id = 1").Scan(&currentVersion); err != nil {
		return fmt.Errorf("read sqlite schema version: %w", err)
	}

	if currentVersion < 2 {
		if err := applyV2Migrations(ctx, db); err != nil {
			return err
		}
		currentVersion = 2
	}
	if currentVersion < 3 {
		if err := applyV3Migrations(ctx, db); err != nil {
			return err
		}
		currentVersion = 3
	}

	if currentVersion > schemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", currentVersion, schemaVersion)
	}
	return nil
}

func applyV2Migrations(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS users (
  username TEXT PRIMARY KEY,
  payday INTEGER CHECK (payday IS NULL OR payday BETWEEN 1 AND 31),
  updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS cycles (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL,
  start_date TEXT NOT NULL,
  end_date TEXT NOT NULL,
  weeks_count INTEGER NOT NULL,
  created_at TEXT NOT NULL,
  CHECK (start_date <= end_date),
  UNIQUE (username, start_date)
);

CREATE TABLE IF NOT EXISTS incomes (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL,
  cycle_id INTEGER REFERENCES cycles(id),
  name TEXT NOT NULL,
  value REAL NOT NULL,
  type TEXT NOT NULL CHECK (type IN ('salary','income','leftover')),
  status TEXT NOT NULL CHECK (status IN ('pending','active','confirmed','inactive')),
  date_created TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS bills (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL,
  name TEXT NOT NULL,
  value REAL NOT NULL,
  day INTEGER NOT NULL CHECK (day BETWEEN 1 AND 31),
  type TEXT NOT NULL CHECK (type IN ('manual','automatic')),
  paid INTEGER NOT NULL DEFAULT 0 CHECK (paid IN (0,1)),
  savings INTEGER NOT NULL DEFAULT 0 CHECK (savings IN (0,1))
);

CREATE TABLE IF NOT EXISTS savings (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL,
  cycle_id INTEGER NOT NULL REFERENCES cycles(id),
  amount REAL NOT NULL,
  source TEXT NOT NULL CHECK (source IN ('leftover','weekly-diff','manual')),
  created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS weekly_expenses (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL,
  cycle_id INTEGER REFERENCES cycles(id),
  name TEXT NOT NULL,
  value REAL NOT NULL,
  date_expense TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS weekly_summaries (
  username TEXT NOT NULL,
  period_start TEXT NOT NULL,
  period_end TEXT NOT NULL,
  weekly_limit REAL NOT NULL,
  total_spent REAL NOT NULL,
  is_final INTEGER NOT NULL DEFAULT 0 CHECK (is_final IN (0,1)),
  updated_at TEXT NOT NULL,
  PRIMARY KEY (username, period_start, period_end)
);
`
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin sqlite migration v2 transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("run sqlite v2 migrations: %w", err)
	}
	if _, err = tx.ExecContext(ctx, "UPDATE schema_migrations SET version = 2 WHERE id = 1"); err != nil {
		return fmt.Errorf("update sqlite schema version to 2: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit sqlite v2 migrations: %w", err)
	}
	return nil
}

func applyV3Migrations(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin sqlite migration v3 transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	hasSettled, err := tableHasColumn(ctx, tx, "cycles", "leftover_settled")
	if err != nil {
		return err
	}
	if !hasSettled {
		if _, err = tx.ExecContext(
			ctx,
			"ALTER TABLE cycles ADD COLUMN leftover_settled INTEGER NOT NULL DEFAULT 0 CHECK (leftover_settled IN (0,1))",
		); err != nil {
			return fmt.Errorf("add cycles.leftover_settled column: %w", err)
		}
	}

	const indexes = `
CREATE INDEX IF NOT EXISTS idx_cycles_username_end ON cycles(username, end_date);
CREATE INDEX IF NOT EXISTS idx_incomes_username_cycle ON incomes(username, cycle_id);
CREATE INDEX IF NOT EXISTS idx_bills_username ON bills(username);
CREATE INDEX IF NOT EXISTS idx_savings_username_cycle ON savings(username, cycle_id);
CREATE INDEX IF NOT EXISTS idx_weekly_expenses_username_date ON weekly_expenses(username, date_expense);
`
	if _, err = tx.ExecContext(ctx, indexes); err != nil {
		return fmt.Errorf("create v3 indexes: %w", err)
	}
	if _, err = tx.ExecContext(ctx, "UPDATE schema_migrations SET version = 3 WHERE id = 1"); err != nil {
		return fmt.Errorf("update sqlite schema version to 3: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit sqlite v3 migrations: %w", err)
	}
	return nil
}

func tableHasColumn(ctx context.Context, tx *sql.Tx, tableName, columnName string) (bool, error) {
	rows, err := tx.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", tableName))
	if err != nil {
		return false, fmt.Errorf("query table info for %s: %w", tableName, err)
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name string
		var ctype sql.NullString
		var notNull int
		var defaultValue sql.NullString
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &defaultValue, &pk); err != nil {
			return false, fmt.Errorf("scan table info for %s: %w", tableName, err)
		}
		if name == columnName {
			return true, nil
		}
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("read table info rows for %s: %w", tableName, err)
	}
	return false, nil
}
