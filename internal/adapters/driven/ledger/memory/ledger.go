// Package memory provides an in-memory transfer ledger for tests and
// ephemeral setups.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fincomply/payguard/internal/core/domain"
	"github.com/fincomply/payguard/internal/core/ports/driven"
)

// Ensure Ledger implements the interface.
var _ driven.TransferLedger = (*Ledger)(nil)

// Ledger is an in-memory implementation of driven.TransferLedger.
type Ledger struct {
	mu        sync.RWMutex
	transfers []domain.Transfer
}

// NewLedger creates a new in-memory ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Record stores a completed transfer.
func (l *Ledger) Record(_ context.Context, t domain.Transfer) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.transfers = append(l.transfers, t)
	return nil
}

// DailySpent sums completed transfers sent by the user on the
// server-local calendar day containing at.
func (l *Ledger) DailySpent(_ context.Context, userID string, at time.Time) (float64, error) {
	dayStart := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	l.mu.RLock()
	defer l.mu.RUnlock()

	var spent float64
	for _, t := range l.transfers {
		if t.SenderID != userID {
			continue
		}
		if t.CompletedAt.Before(dayStart) || !t.CompletedAt.Before(dayEnd) {
			continue
		}
		spent += t.Amount
	}
	return spent, nil
}

// Close releases resources.
func (l *Ledger) Close() error {
	return nil
}
