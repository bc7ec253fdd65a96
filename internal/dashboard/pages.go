package dashboard

import (
	"fmt"
	"net/url"

	"segmentdash/internal/aggregate"
	"segmentdash/internal/dataset"
	"segmentdash/internal/segment"
	"segmentdash/internal/view"
)

// Data is the loaded, labeled dataset every page renders from. It is never
// modified after the server starts.
type Data struct {
	Table    *dataset.Table
	Features []dataset.Feature
	Bins     int
}

type metric struct {
	Label string
	Value string
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

type pageView struct {
	Title     string
	Lead      string
	Heading   string
	Metrics   []metric
	Charts    []string
	Summaries []metric
	Clusters  []option
	Features  []option
}

type renderFunc func(d *Data, st view.State) pageView

// renderers maps each page to the function that builds it.
var renderers = [view.NumPages]renderFunc{
	view.Home:              renderHome,
	view.ClusterOverview:   renderOverview,
	view.BehavioralHeatmap: renderHeatmap,
	view.ClusterExplorer:   renderExplorer,
}

func render(d *Data, st view.State) pageView {
	if !st.Page.Valid() {
		st.Page = view.Home
	}
	return renderers[st.Page](d, st)
}

func renderHome(d *Data, _ view.State) pageView {
	return pageView{
		Title: "Customer Segmentation Dashboard",
		Lead:  "Explore behavioral patterns and key characteristics across customer segments.",
		Metrics: append(
			[]metric{{"Total Users", formatCount(d.Table.Len())}},
			headlineMetrics(d.Table)...,
		),
		Heading: "Cluster Size Distribution",
		Charts:  []string{chartURL("sizes", nil)},
	}
}

func renderOverview(_ *Data, _ view.State) pageView {
	pv := pageView{
		Title:   "Cluster Overview",
		Charts:  []string{chartURL("share", nil)},
		Heading: "Segment Summaries",
	}
	for _, s := range segment.Summaries {
		pv.Summaries = append(pv.Summaries, metric{s.Name, s.Description})
	}
	return pv
}

func renderHeatmap(_ *Data, _ view.State) pageView {
	return pageView{
		Title:  "Behavioral Feature Heatmap",
		Charts: []string{chartURL("profile", nil)},
	}
}

func renderExplorer(d *Data, st view.State) pageView {
	selected := explorerCluster(d, st)
	filtered := d.Table.WithLabel(selected)

	pv := pageView{
		Title:   "Cluster Explorer",
		Heading: fmt.Sprintf("Segment: %s", selected),
		Metrics: headlineMetrics(filtered),
		Charts: []string{chartURL("distribution", url.Values{
			"cluster": {selected},
			"feature": {st.Feature.Column()},
		})},
	}

	labels := d.Table.Labels()
	found := false
	for _, l := range labels {
		found = found || l == selected
		pv.Clusters = append(pv.Clusters, option{Value: l, Label: l, Selected: l == selected})
	}
	if !found && selected != "" {
		pv.Clusters = append(pv.Clusters, option{Value: selected, Label: selected, Selected: true})
	}
	for _, f := range d.Features {
		pv.Features = append(pv.Features, option{Value: f.Column(), Label: f.Column(), Selected: f == st.Feature})
	}
	return pv
}

// explorerCluster is the session's cluster, or the first one in the data
// when nothing has been chosen yet.
func explorerCluster(d *Data, st view.State) string {
	if st.Cluster != "" {
		return st.Cluster
	}
	if labels := d.Table.Labels(); len(labels) > 0 {
		return labels[0]
	}
	return ""
}

func headlineMetrics(t *dataset.Table) []metric {
	bookings, errB := aggregate.Mean(t, dataset.TotalBookings)
	adr, errA := aggregate.Mean(t, dataset.MeanADR)
	engagement, errE := aggregate.Mean(t, dataset.EngagementScore)
	return []metric{
		{"Avg Bookings", formatMean(bookings, errB)},
		{"Avg ADR", formatMean(adr, errA)},
		{"Avg Engagement", formatMean(engagement, errE)},
	}
}

func chartURL(name string, q url.Values) string {
	u := url.URL{Path: "/chart/" + name}
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}
