package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"segmentdash/internal/dataset"
)

func TestParsePage(t *testing.T) {
	for _, p := range Pages() {
		got, ok := ParsePage(p.Slug())
		require.True(t, ok, p.Title())
		assert.Equal(t, p, got)
	}
	_, ok := ParsePage("settings")
	assert.False(t, ok)
}

func TestDefaultState(t *testing.T) {
	s := DefaultState()
	assert.Equal(t, Home, s.Page)
	assert.Equal(t, dataset.TotalBookings, s.Feature)
	assert.Empty(t, s.Cluster)
}

func TestState_SelectorsAreIndependent(t *testing.T) {
	s := DefaultState().WithPage(ClusterExplorer).WithFeature(dataset.MeanADR)
	s = s.WithCluster("Regular Users")
	assert.Equal(t, dataset.MeanADR, s.Feature)

	s = s.WithCluster("Loyal High-Spenders")
	assert.Equal(t, dataset.MeanADR, s.Feature)
	assert.Equal(t, ClusterExplorer, s.Page)

	s = s.WithFeature(dataset.RecencyDays)
	assert.Equal(t, "Loyal High-Spenders", s.Cluster)
}

func TestState_IgnoresInvalidValues(t *testing.T) {
	s := DefaultState().WithPage(ClusterOverview)
	assert.Equal(t, ClusterOverview, s.WithPage(Page(17)).Page)
	assert.Equal(t, dataset.TotalBookings, s.WithFeature(dataset.Feature(-1)).Feature)
}

func TestSessions(t *testing.T) {
	store := NewSessions(time.Minute)
	id, st := store.Start()
	assert.Equal(t, DefaultState(), st)

	store.Put(id, st.WithPage(BehavioralHeatmap))
	got, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, BehavioralHeatmap, got.Page)

	other, _ := store.Start()
	otherState, ok := store.Get(other)
	require.True(t, ok)
	assert.Equal(t, Home, otherState.Page)
	assert.Equal(t, 2, store.Len())

	_, ok = store.Get("not-a-session")
	assert.False(t, ok)
}
