package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincomply/payguard/internal/core/domain"
)

func TestDailySpent_SumsOnlySameLocalDay(t *testing.T) {
	l := NewLedger()
	defer l.Close()

	now := time.Date(2026, 8, 29, 14, 0, 0, 0, time.Local)

	transfers := []domain.Transfer{
		{Reference: "t1", SenderID: "u1", Amount: 100, CompletedAt: now.Add(-2 * time.Hour)},
		{Reference: "t2", SenderID: "u1", Amount: 250, CompletedAt: now.Add(time.Hour)},
		{Reference: "t3", SenderID: "u2", Amount: 999, CompletedAt: now},
		{Reference: "t4", SenderID: "u1", Amount: 500, CompletedAt: now.AddDate(0, 0, -1)},
	}
	for _, tr := range transfers {
		require.NoError(t, l.Record(context.Background(), tr))
	}

	spent, err := l.DailySpent(context.Background(), "u1", now)
	require.NoError(t, err)
	assert.Equal(t, 350.0, spent)

	spent, err = l.DailySpent(context.Background(), "u3", now)
	require.NoError(t, err)
	assert.Zero(t, spent)
}
