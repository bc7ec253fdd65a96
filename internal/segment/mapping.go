// Package segment names the pre-assigned customer clusters.
package segment

import (
	"sort"

	"github.com/pkg/errors"

	"segmentdash/internal/dataset"
)

// Unknown is the label given to cluster IDs without a mapping entry.
const Unknown = "Unknown"

var ErrUnmappedCluster = errors.New("unmapped cluster")

// Mapping assigns display names to cluster IDs.
type Mapping map[int]string

// Default is the naming of the four shipped segments.
func Default() Mapping {
	return Mapping{
		0: "Cancellation-Prone",
		1: "Regular Users",
		2: "Active Planners",
		3: "Loyal High-Spenders",
	}
}

func (m Mapping) Resolve(cluster int) (string, error) {
	name, ok := m[cluster]
	if !ok || name == "" {
		return "", errors.Wrapf(ErrUnmappedCluster, "cluster %d", cluster)
	}
	return name, nil
}

// Name is Resolve with the Unknown placeholder in place of the error.
func (m Mapping) Name(cluster int) string {
	name, err := m.Resolve(cluster)
	if err != nil {
		return Unknown
	}
	return name
}

// Apply labels every record of t from its cluster ID.
func (m Mapping) Apply(t *dataset.Table) *dataset.Table {
	return t.Relabel(m.Name)
}

// Unmapped lists, in ascending order, the cluster IDs in t that have no name.
func (m Mapping) Unmapped(t *dataset.Table) []int {
	var out []int
	for _, c := range t.Clusters() {
		if _, err := m.Resolve(c); err != nil {
			out = append(out, c)
		}
	}
	sort.Ints(out)
	return out
}

// Names returns the mapped names ordered by cluster ID.
func (m Mapping) Names() []string {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = m[id]
	}
	return out
}

// Summaries is the editorial description of each shipped segment.
var Summaries = []struct {
	Name        string
	Description string
}{
	{"Cancellation-Prone", "High cancellations, low engagement"},
	{"Regular Users", "Stable behavior, moderate spenders"},
	{"Active Planners", "High engagement, many booking changes"},
	{"Loyal High-Spenders", "High revenue, frequent bookings"},
}
