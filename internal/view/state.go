// Package view holds per-session navigation state.
package view

import "segmentdash/internal/dataset"

// Page is one of the mutually exclusive dashboard pages.
type Page int

const (
	Home Page = iota
	ClusterOverview
	BehavioralHeatmap
	ClusterExplorer

	NumPages
)

var pageInfo = [NumPages]struct{ slug, title string }{
	Home:              {"home", "Home"},
	ClusterOverview:   {"overview", "Cluster Overview"},
	BehavioralHeatmap: {"heatmap", "Behavioral Heatmap"},
	ClusterExplorer:   {"explorer", "Cluster Explorer"},
}

// Pages returns every page in menu order.
func Pages() []Page {
	return []Page{Home, ClusterOverview, BehavioralHeatmap, ClusterExplorer}
}

func (p Page) Valid() bool { return p >= 0 && p < NumPages }

// Slug is the query-string form of p.
func (p Page) Slug() string {
	if !p.Valid() {
		return ""
	}
	return pageInfo[p].slug
}

// Title is the menu label of p.
func (p Page) Title() string {
	if !p.Valid() {
		return ""
	}
	return pageInfo[p].title
}

func (p Page) String() string { return p.Slug() }

func ParsePage(slug string) (Page, bool) {
	for i, info := range pageInfo {
		if info.slug == slug {
			return Page(i), true
		}
	}
	return Home, false
}

// State is the selection of one session. The explorer's cluster and feature
// selectors are independent: each With method touches only its own field.
type State struct {
	Page    Page
	Cluster string
	Feature dataset.Feature
}

func DefaultState() State {
	return State{Page: Home, Feature: dataset.TotalBookings}
}

func (s State) WithPage(p Page) State {
	if p.Valid() {
		s.Page = p
	}
	return s
}

func (s State) WithCluster(name string) State {
	s.Cluster = name
	return s
}

func (s State) WithFeature(f dataset.Feature) State {
	if f.Valid() {
		s.Feature = f
	}
	return s
}
