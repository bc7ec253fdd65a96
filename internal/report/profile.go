// Package report prints the cluster profile as a terminal table.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"segmentdash/internal/aggregate"
)

// WriteProfile writes one row per cluster with its size and the mean of
// every feature of m.
func WriteProfile(w io.Writer, m aggregate.Matrix) {
	table := tablewriter.NewWriter(w)
	header := []string{"cluster", "users"}
	for _, f := range m.Features {
		header = append(header, f.Column())
	}
	table.SetAutoFormatHeaders(false)
	table.SetHeader(header)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for i, label := range m.Labels {
		row := []string{label, strconv.Itoa(m.Sizes[i])}
		for j := range m.Features {
			row = append(row, formatCell(m.At(i, j)))
		}
		table.Append(row)
	}
	table.Render()
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}
