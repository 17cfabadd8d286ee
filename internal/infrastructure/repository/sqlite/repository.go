package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"wallet_aggregator/internal/app/port"
	"wallet_aggregator/internal/domain/apperr"
	"wallet_aggregator/internal/domain/entity"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// AccountRepository stores account metadata and holding snapshots in SQLite.
// The schema has no column for API keys or secrets.
type AccountRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

var _ port.AccountRepository = (*AccountRepository)(nil)

// Open opens (creating if needed) the database at path and applies the schema.
func Open(path string, logger *zap.Logger) (*AccountRepository, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	r := &AccountRepository{db: db, logger: logger.Named("sqlite")}
	if err := r.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	r.logger.Info("Account store ready", zap.String("path", path))
	return r, nil
}

// Close closes the database handle.
func (r *AccountRepository) Close() error {
	return r.db.Close()
}

func (r *AccountRepository) migrate() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA foreign_keys=ON;`,
		`
CREATE TABLE IF NOT EXISTS accounts (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  account_id TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  kind TEXT NOT NULL,
  chain TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  exchange_id TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  last_updated TEXT NOT NULL DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1
);`,
		`
CREATE TABLE IF NOT EXISTS holdings (
  account_id TEXT NOT NULL REFERENCES accounts(account_id) ON DELETE CASCADE,
  symbol TEXT NOT NULL,
  token_address TEXT NOT NULL DEFAULT '',
  balance TEXT NOT NULL,
  updated_at TEXT NOT NULL,
  PRIMARY KEY (account_id, symbol, token_address)
);`,
		`CREATE INDEX IF NOT EXISTS idx_accounts_active ON accounts(is_active);`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// SaveAccountMetadata inserts or updates the account and returns its row id.
func (r *AccountRepository) SaveAccountMetadata(ctx context.Context, meta entity.AccountMetadata) (int64, error) {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO accounts (account_id,name,kind,chain,address,exchange_id,created_at,last_updated,is_active)
VALUES (?,?,?,?,?,?,?,?,?)
ON CONFLICT(account_id) DO UPDATE SET
  name=excluded.name,
  kind=excluded.kind,
  chain=excluded.chain,
  address=excluded.address,
  exchange_id=excluded.exchange_id,
  last_updated=excluded.last_updated,
  is_active=excluded.is_active
`, meta.ID, meta.Name, string(meta.Kind), string(meta.Chain), meta.Address, string(meta.ExchangeID),
		formatTime(meta.CreatedAt), formatTime(meta.LastUpdated), boolToInt(meta.Active))
	if err != nil {
		return 0, fmt.Errorf("save account %s: %w", meta.ID, err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, `SELECT id FROM accounts WHERE account_id=?`, meta.ID).Scan(&id); err != nil {
		return 0, fmt.Errorf("read account id %s: %w", meta.ID, err)
	}
	return id, nil
}

// LoadAllAccountMetadata returns every stored account, inactive ones included, by row id.
func (r *AccountRepository) LoadAllAccountMetadata(ctx context.Context) ([]entity.AccountMetadata, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id,account_id,name,kind,chain,address,exchange_id,created_at,last_updated,is_active
FROM accounts ORDER BY id
`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var out []entity.AccountMetadata
	for rows.Next() {
		var (
			m                    entity.AccountMetadata
			kind, chain, exID    string
			created, lastUpdated string
			active               int
		)
		if err := rows.Scan(&m.StoreID, &m.ID, &m.Name, &kind, &chain, &m.Address, &exID, &created, &lastUpdated, &active); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		m.Kind = entity.AccountKind(kind)
		m.Chain = entity.Chain(chain)
		m.ExchangeID = entity.ExchangeID(exID)
		m.CreatedAt = parseTime(created)
		m.LastUpdated = parseTime(lastUpdated)
		m.Active = active != 0
		out = append(out, m)
	}
	return out, rows.Err()
}

// SaveHoldingsSnapshot replaces the account's holdings in one transaction.
func (r *AccountRepository) SaveHoldingsSnapshot(ctx context.Context, accountID string, holdings []entity.Holding) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM holdings WHERE account_id=?`, accountID); err != nil {
		return fmt.Errorf("clear holdings %s: %w", accountID, err)
	}

	now := formatTime(time.Now().UTC())
	for _, h := range holdings {
		_, err := tx.ExecContext(ctx, `
INSERT INTO holdings (account_id,symbol,token_address,balance,updated_at)
VALUES (?,?,?,?,?)
ON CONFLICT(account_id,symbol,token_address) DO UPDATE SET balance=excluded.balance, updated_at=excluded.updated_at
`, accountID, h.Symbol, h.TokenAddress, h.Balance.String(), now)
		if err != nil {
			return fmt.Errorf("insert holding %s/%s: %w", accountID, h.Symbol, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE accounts SET last_updated=? WHERE account_id=?`, now, accountID); err != nil {
		return fmt.Errorf("touch account %s: %w", accountID, err)
	}
	return tx.Commit()
}

// LoadHoldings returns the last snapshot for the account, ordered by symbol.
func (r *AccountRepository) LoadHoldings(ctx context.Context, accountID string) ([]entity.Holding, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT symbol,token_address,balance FROM holdings WHERE account_id=? ORDER BY symbol, token_address
`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list holdings %s: %w", accountID, err)
	}
	defer rows.Close()

	out := make([]entity.Holding, 0)
	for rows.Next() {
		var h entity.Holding
		var balance string
		if err := rows.Scan(&h.Symbol, &h.TokenAddress, &balance); err != nil {
			return nil, fmt.Errorf("scan holding: %w", err)
		}
		h.Balance, err = decimal.NewFromString(balance)
		if err != nil {
			r.logger.Warn("Skipping unparsable stored balance", zap.String("account", accountID), zap.String("symbol", h.Symbol), zap.Error(err))
			continue
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// DeleteAccount flags the account inactive and drops its holdings.
func (r *AccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `UPDATE accounts SET is_active=0 WHERE account_id=?`, accountID)
	if err != nil {
		return fmt.Errorf("deactivate account %s: %w", accountID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.NotFound("sqlite.delete_account", fmt.Errorf("account %s: %w", accountID, sql.ErrNoRows))
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM holdings WHERE account_id=?`, accountID); err != nil {
		return fmt.Errorf("drop holdings %s: %w", accountID, err)
	}
	return tx.Commit()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// IsNotFound reports whether err came from a missing account row.
func IsNotFound(err error) bool {
	return apperr.Is(err, apperr.KindNotFound) || errors.Is(err, sql.ErrNoRows)
}
