package driven

import (
	"context"
	"time"

	"github.com/fincomply/payguard/internal/core/domain"
)

// TransferLedger records completed transfers and answers daily-spend
// queries. User and transaction persistence otherwise live outside
// this core.
type TransferLedger interface {
	// Record stores a completed transfer.
	Record(ctx context.Context, transfer domain.Transfer) error

	// DailySpent sums the amounts of all completed transfers sent by
	// the user on the calendar day containing at, in server-local
	// time.
	DailySpent(ctx context.Context, userID string, at time.Time) (float64, error)

	// Close releases resources.
	Close() error
}
