package dashboard

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"fintrack/internal/guest"
	"fintrack/internal/seed"
	"fintrack/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFromSeededGuestStore(t *testing.T) {
	now := func() time.Time { return time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC) }
	gen := &seed.Generator{Now: now, Rand: rand.New(rand.NewPCG(3, 4))}
	store := storage.NewSnapshotStore(storage.NewMemoryKV(0), "", gen.Snapshot, nil)
	repo := guest.New(context.Background(), store, guest.WithClock(now), guest.WithSeed(gen))

	d, err := NewBuilder(repo, nil, nil).Build(context.Background(), 2025, 6)
	require.NoError(t, err)

	// May holds the salary and the freelance payment.
	assert.Equal(t, "5850", d.Income.String())
	assert.True(t, d.Expenses.IsPositive())
	assert.NotEmpty(t, d.Categories)
	assert.InDelta(t, 25.0, d.Completion, 1e-9)
	assert.True(t, d.AdjustmentsTotal.IsPositive())
}
