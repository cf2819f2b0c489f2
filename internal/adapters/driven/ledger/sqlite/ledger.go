// Package sqlite provides a SQLite-backed transfer ledger.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/fincomply/payguard/internal/core/domain"
	"github.com/fincomply/payguard/internal/core/ports/driven"
)

// Ensure Ledger implements the interface.
var _ driven.TransferLedger = (*Ledger)(nil)

// Ledger records completed transfers in SQLite and answers
// daily-spend queries.
type Ledger struct {
	db   *sql.DB
	path string
}

// NewLedger creates a ledger at dataDir/ledger.db. Pass ":memory:" as
// dataDir for an in-memory database.
func NewLedger(dataDir string) (*Ledger, error) {
	dbPath := ":memory:"
	if dataDir != ":memory:" {
		if err := os.MkdirAll(dataDir, 0700); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
		dbPath = filepath.Join(dataDir, "ledger.db")
	}

	// WAL mode for concurrent readers during validation
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}

	l := &Ledger{db: db, path: dbPath}
	if err := l.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating ledger: %w", err)
	}

	return l, nil
}

func (l *Ledger) migrate() error {
	_, err := l.db.Exec(`
		CREATE TABLE IF NOT EXISTS transfers (
			reference           TEXT PRIMARY KEY,
			sender_id           TEXT NOT NULL,
			amount              REAL NOT NULL,
			currency            TEXT NOT NULL,
			beneficiary_name    TEXT NOT NULL,
			beneficiary_country TEXT NOT NULL,
			completed_at        INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_transfers_sender_day
			ON transfers (sender_id, completed_at);
	`)
	return err
}

// Record stores a completed transfer.
func (l *Ledger) Record(ctx context.Context, t domain.Transfer) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO transfers
			(reference, sender_id, amount, currency, beneficiary_name, beneficiary_country, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, t.Reference, t.SenderID, t.Amount, t.Currency, t.BeneficiaryName, t.BeneficiaryCountry, t.CompletedAt.Unix())
	if err != nil {
		return fmt.Errorf("recording transfer %s: %w", t.Reference, err)
	}
	return nil
}

// DailySpent sums completed transfers sent by the user on the
// server-local calendar day containing at.
func (l *Ledger) DailySpent(ctx context.Context, userID string, at time.Time) (float64, error) {
	dayStart := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var spent sql.NullFloat64
	err := l.db.QueryRowContext(ctx, `
		SELECT SUM(amount) FROM transfers
		WHERE sender_id = ? AND completed_at >= ? AND completed_at < ?
	`, userID, dayStart.Unix(), dayEnd.Unix()).Scan(&spent)
	if err != nil {
		return 0, fmt.Errorf("summing daily transfers for %s: %w", userID, err)
	}

	return spent.Float64, nil
}

// Path returns the database file path.
func (l *Ledger) Path() string {
	return l.path
}

// Close closes the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}
