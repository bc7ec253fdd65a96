package dashboard

import (
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"segmentdash/internal/aggregate"
	"segmentdash/internal/dataset"
)

var (
	bluesScale = []string{"#c6dbef", "#6baed6", "#2171b5", "#08306b"}
	tealScale  = []string{"#d1eeea", "#85c4c9", "#4f90a6", "#2a5674"}
	set3       = []string{"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3", "#fdb462", "#b3de69", "#fccde5"}
)

func chartSize() charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "440px"})
}

// sizeChart is the bar chart of customers per cluster.
func sizeChart(counts []aggregate.LabelCount) *charts.Bar {
	labels := make([]string, len(counts))
	items := make([]opts.BarData, len(counts))
	maxCount := 0
	for i, lc := range counts {
		labels[i] = lc.Label
		items[i] = opts.BarData{Name: lc.Label, Value: lc.Count}
		if lc.Count > maxCount {
			maxCount = lc.Count
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		chartSize(),
		charts.WithTitleOpts(opts.Title{Title: "Number of Customers per Cluster"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: pointer(true)}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Min:     0,
			Max:     float32(maxCount),
			InRange: &opts.VisualMapInRange{Color: bluesScale},
		}),
	)
	bar.SetXAxis(labels).
		AddSeries("customers", items).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{Show: pointer(true), Position: "top"}),
		)
	return bar
}

// shareChart is the donut of each cluster's share of customers.
func shareChart(counts []aggregate.LabelCount) *charts.Pie {
	items := make([]opts.PieData, len(counts))
	for i, lc := range counts {
		items[i] = opts.PieData{Name: lc.Label, Value: lc.Count}
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		chartSize(),
		charts.WithTitleOpts(opts.Title{Title: "Cluster Distribution (%)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: pointer(true)}),
		charts.WithColorsOpts(opts.Colors(set3)),
	)
	pie.AddSeries("cluster_name", items).
		SetSeriesOptions(
			charts.WithPieChartOpts(opts.PieChart{Radius: []string{"45%", "75%"}}),
			charts.WithLabelOpts(opts.Label{Show: pointer(true), Formatter: "{b}: {d}%"}),
		)
	return pie
}

// profileChart is the cluster × feature heatmap of grouped means.
func profileChart(m aggregate.Matrix) *charts.HeatMap {
	columns := make([]string, len(m.Features))
	for j, f := range m.Features {
		columns[j] = f.Column()
	}

	var items []opts.HeatMapData
	if !m.Empty() {
		for i := range m.Labels {
			for j := range m.Features {
				v := m.At(i, j)
				if math.IsNaN(v) {
					// echarts reads "-" as an empty cell
					items = append(items, opts.HeatMapData{Value: [3]interface{}{j, i, "-"}})
					continue
				}
				items = append(items, opts.HeatMapData{Value: [3]interface{}{j, i, round2(v)}})
			}
		}
	}
	lo, hi, ok := m.Range()
	if !ok {
		lo, hi = 0, 1
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		chartSize(),
		charts.WithTitleOpts(opts.Title{Title: "Average Feature Values by Cluster"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: pointer(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: columns}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: m.Labels}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Min:     float32(lo),
			Max:     float32(hi),
			InRange: &opts.VisualMapInRange{Color: tealScale},
		}),
	)
	hm.SetXAxis(columns).
		AddSeries("mean", items).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: pointer(true)}))
	return hm
}

// distributionChart is the histogram of one feature inside one cluster.
// A nil bins slice renders an empty chart marked as having no data.
func distributionChart(cluster string, f dataset.Feature, bins []aggregate.Bin) *charts.Bar {
	title := opts.Title{Title: fmt.Sprintf("%s Distribution for %s", f.Column(), cluster)}
	if len(bins) == 0 {
		title.Subtitle = noData
	}
	labels := make([]string, len(bins))
	items := make([]opts.BarData, len(bins))
	for i, b := range bins {
		labels[i] = formatRange(b.Min, b.Max)
		items[i] = opts.BarData{Value: b.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		chartSize(),
		charts.WithTitleOpts(title),
		charts.WithTooltipOpts(opts.Tooltip{Show: pointer(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: f.Column()}),
		charts.WithYAxisOpts(opts.YAxis{Name: "count"}),
	)
	bar.SetXAxis(labels).AddSeries(cluster, items)
	return bar
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
