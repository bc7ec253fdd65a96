package dataset

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// ErrDataUnavailable marks any failure to produce the customer table: the
// file is missing, unreadable, or malformed.
var ErrDataUnavailable = errors.New("data unavailable")

// Load reads the customer table from a CSV file with a header row.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrDataUnavailable, "unable to open file: %v", err)
	}
	defer file.Close()

	t, err := Parse(file)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return t, nil
}

// Parse reads the customer table from CSV. Columns are matched by header
// name; extra columns are ignored.
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	rawData, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(ErrDataUnavailable, "unable to read file: %v", err)
	}
	if len(rawData) == 0 {
		return nil, errors.Wrap(ErrDataUnavailable, "missing header row")
	}

	header := make(map[string]int, len(rawData[0]))
	for i, name := range rawData[0] {
		header[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	clusterIdx, ok := header[ClusterColumn]
	if !ok {
		return nil, errors.Wrapf(ErrDataUnavailable, "missing column %q", ClusterColumn)
	}
	var featureIdx [numFeatures]int
	for _, f := range Features() {
		idx, ok := header[f.Column()]
		if !ok {
			return nil, errors.Wrapf(ErrDataUnavailable, "missing column %q", f.Column())
		}
		featureIdx[f] = idx
	}

	records := make([]Record, 0, len(rawData)-1)
	for i, line := range rawData[1:] {
		row := i + 2
		var rec Record
		cluster, err := parseCluster(cell(line, clusterIdx))
		if err != nil {
			return nil, errors.Wrapf(ErrDataUnavailable, "row %d: column %q: %v", row, ClusterColumn, err)
		}
		rec.Cluster = cluster
		for _, f := range Features() {
			v, err := parseValue(cell(line, featureIdx[f]))
			if err != nil {
				return nil, errors.Wrapf(ErrDataUnavailable, "row %d: column %q: %v", row, f.Column(), err)
			}
			rec.values[f] = v
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, errors.Wrap(ErrDataUnavailable, "no data rows")
	}
	return &Table{records: records}, nil
}

func cell(line []string, idx int) string {
	if idx >= len(line) {
		return ""
	}
	return strings.TrimSpace(line[idx])
}

// parseValue treats empty and NaN-like cells as missing.
func parseValue(s string) (float64, error) {
	switch strings.ToLower(s) {
	case "", "nan", "na", "null":
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Errorf("unable to parse value %q as float", s)
	}
	return v, nil
}

// parseCluster accepts integral values, including the "2.0" form written
// by float-typed exports.
func parseCluster(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, errors.Errorf("unable to parse cluster id %q", s)
	}
	return int(v), nil
}

// Cache loads a table at most once per process and hands out the same
// handle (or the same error) on every call.
type Cache struct {
	path  string
	load  func(string) (*Table, error)
	once  sync.Once
	table *Table
	err   error
}

func NewCache(path string) *Cache {
	return &Cache{path: path, load: Load}
}

func (c *Cache) Get() (*Table, error) {
	c.once.Do(func() {
		c.table, c.err = c.load(c.path)
	})
	return c.table, c.err
}

func (c *Cache) Path() string { return c.path }
