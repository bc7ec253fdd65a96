package dataset

// Record is one customer row.
type Record struct {
	values  [numFeatures]float64
	Cluster int
	Label   string
}

// NewRecord builds a record from per-feature values. Features missing from
// values are left at zero.
func NewRecord(cluster int, values map[Feature]float64) Record {
	r := Record{Cluster: cluster}
	for f, v := range values {
		if f.Valid() {
			r.values[f] = v
		}
	}
	return r
}

// Value returns the value of f, NaN when the source cell was empty.
func (r Record) Value(f Feature) float64 { return r.values[f] }

// Table is an immutable, ordered set of customer records. Methods that
// derive a new view return a fresh Table and never touch the receiver.
type Table struct {
	records []Record
}

func NewTable(records []Record) *Table {
	cp := make([]Record, len(records))
	copy(cp, records)
	return &Table{records: cp}
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

func (t *Table) At(i int) Record { return t.records[i] }

// Values returns the column of f in row order.
func (t *Table) Values(f Feature) []float64 {
	out := make([]float64, t.Len())
	for i := range out {
		out[i] = t.records[i].values[f]
	}
	return out
}

// Labels returns the distinct record labels in order of first appearance.
func (t *Table) Labels() []string {
	seen := make(map[string]bool)
	var out []string
	for i := 0; i < t.Len(); i++ {
		l := t.records[i].Label
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out
}

// Clusters returns the distinct cluster IDs in order of first appearance.
func (t *Table) Clusters() []int {
	seen := make(map[int]bool)
	var out []int
	for i := 0; i < t.Len(); i++ {
		c := t.records[i].Cluster
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

func (t *Table) Filter(keep func(Record) bool) *Table {
	out := &Table{}
	for i := 0; i < t.Len(); i++ {
		if keep(t.records[i]) {
			out.records = append(out.records, t.records[i])
		}
	}
	return out
}

// WithLabel keeps only the records assigned to label.
func (t *Table) WithLabel(label string) *Table {
	return t.Filter(func(r Record) bool { return r.Label == label })
}

// Relabel returns a copy of t with every Label recomputed from its cluster ID.
func (t *Table) Relabel(name func(cluster int) string) *Table {
	out := &Table{records: make([]Record, t.Len())}
	for i := range out.records {
		r := t.records[i]
		r.Label = name(r.Cluster)
		out.records[i] = r
	}
	return out
}
