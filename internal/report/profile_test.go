package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"segmentdash/internal/aggregate"
	"segmentdash/internal/dataset"
	"segmentdash/internal/segment"
)

func TestWriteProfile(t *testing.T) {
	tbl := segment.Default().Apply(dataset.NewTable([]dataset.Record{
		dataset.NewRecord(0, map[dataset.Feature]float64{dataset.TotalBookings: 1, dataset.MeanADR: math.NaN()}),
		dataset.NewRecord(3, map[dataset.Feature]float64{dataset.TotalBookings: 9, dataset.MeanADR: 250}),
		dataset.NewRecord(3, map[dataset.Feature]float64{dataset.TotalBookings: 7, dataset.MeanADR: 150}),
	}))
	m := aggregate.GroupedMeans(tbl, []dataset.Feature{dataset.TotalBookings, dataset.MeanADR})

	var buf bytes.Buffer
	WriteProfile(&buf, m)
	out := buf.String()

	assert.Contains(t, out, "total_bookings")
	assert.Contains(t, out, "mean_adr")
	var loyal, prone string
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.Contains(line, "Loyal High-Spenders"):
			loyal = line
		case strings.Contains(line, "Cancellation-Prone"):
			prone = line
		}
	}
	assert.Contains(t, loyal, "8.00")
	assert.Contains(t, loyal, "200.00")
	assert.Contains(t, prone, "1.00")
	assert.Contains(t, prone, " - ")
}
