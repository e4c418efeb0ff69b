package services

import (
	"testing"
	"time"

	"Encore/models"
	"Encore/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEarningsSummary(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewEarningsService(st)

	base := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	require.NoError(t, svc.Credit("perf-1", 10, models.EarningTypeSongRequest, "Song request from Sam", "Levels", base))
	require.NoError(t, svc.Credit("perf-1", 25, models.EarningTypeSongRequest, "Song request from Alex", "One More Time", base.Add(time.Minute)))
	require.NoError(t, svc.Credit("perf-1", 5, "tip", "Tip from Sam", "", base.Add(2*time.Minute)))
	require.NoError(t, svc.Credit("perf-2", 99, "tip", "", "", base))

	summary, err := svc.Summary("perf-1")
	require.NoError(t, err)
	assert.Equal(t, 40.0, summary.Total)
	assert.Equal(t, 35.0, summary.ByType[models.EarningTypeSongRequest])
	assert.Equal(t, 5.0, summary.ByType["tip"])
	require.Len(t, summary.Recent, 3)
	// Newest first
	assert.Equal(t, 5.0, summary.Recent[0].Amount)
}

func TestSummaryEmptyLedger(t *testing.T) {
	svc := NewEarningsService(store.NewMemoryStore())

	summary, err := svc.Summary("perf-1")
	require.NoError(t, err)
	assert.Zero(t, summary.Total)
	assert.Empty(t, summary.Recent)
}
