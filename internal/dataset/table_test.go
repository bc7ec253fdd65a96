package dataset

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatures_RoundTripColumns(t *testing.T) {
	fs := Features()
	require.Len(t, fs, 10)
	assert.Equal(t, TotalBookings, fs[0])
	assert.Equal(t, EngagementScore, fs[len(fs)-1])
	for _, f := range fs {
		got, err := ParseFeature(f.Column())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
}

func TestParseFeature_Unknown(t *testing.T) {
	_, err := ParseFeature("total_booking")
	assert.ErrorIs(t, err, ErrUnknownFeature)
	assert.Equal(t, "", Feature(42).Column())
}

func TestTable_DerivationsLeaveReceiverAlone(t *testing.T) {
	tbl := NewTable([]Record{
		NewRecord(0, map[Feature]float64{TotalBookings: 1}),
		NewRecord(1, map[Feature]float64{TotalBookings: 2}),
		NewRecord(0, map[Feature]float64{TotalBookings: 3}),
	})
	named := tbl.Relabel(func(c int) string { return fmt.Sprintf("c%d", c) })

	assert.Equal(t, []string{""}, tbl.Labels())
	assert.Equal(t, []string{"c0", "c1"}, named.Labels())

	sub := named.WithLabel("c0")
	assert.Equal(t, 2, sub.Len())
	assert.Equal(t, []float64{1, 3}, sub.Values(TotalBookings))
	assert.Equal(t, 3, named.Len())

	assert.Equal(t, 0, named.WithLabel("missing").Len())
}
