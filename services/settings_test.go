package services

import (
	"testing"

	"Encore/models"
	"Encore/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSettingsLazilyCreatesDefaults(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewSettingsService(st)

	settings, err := svc.GetSettings("perf-1")
	require.NoError(t, err)
	assert.True(t, settings.IsAcceptingRequests)
	assert.Equal(t, 5.0, settings.MinimumTip)
	assert.Equal(t, 20.0, settings.PriorityTipThreshold)
	assert.Equal(t, 25, settings.MaxQueueSize)
	assert.Empty(t, settings.BlockedSongs)
	assert.Empty(t, settings.PreferredGenres)

	// The first read persisted the defaults
	stored, err := st.GetSettings("perf-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestUpdateSettingsMergesPartialFields(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewSettingsService(st)

	minTip := 12.0
	blocked := []string{"Baby Shark"}
	settings, err := svc.UpdateSettings("perf-1", models.SettingsUpdate{
		MinimumTip:   &minTip,
		BlockedSongs: &blocked,
	})
	require.NoError(t, err)
	assert.Equal(t, 12.0, settings.MinimumTip)
	assert.Equal(t, []string{"Baby Shark"}, settings.BlockedSongs)
	// Untouched fields keep their defaults
	assert.True(t, settings.IsAcceptingRequests)
	assert.Equal(t, 25, settings.MaxQueueSize)

	accepting := false
	settings, err = svc.UpdateSettings("perf-1", models.SettingsUpdate{
		IsAcceptingRequests: &accepting,
	})
	require.NoError(t, err)
	assert.False(t, settings.IsAcceptingRequests)
	// Prior update survives
	assert.Equal(t, 12.0, settings.MinimumTip)
	assert.Equal(t, []string{"Baby Shark"}, settings.BlockedSongs)
}
