package dashboard

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"segmentdash/internal/dataset"
	"segmentdash/internal/segment"
	"segmentdash/internal/view"
)

// sizedTable builds a labeled table with one cluster per entry of sizes.
func sizedTable(sizes ...int) *dataset.Table {
	var recs []dataset.Record
	for c, size := range sizes {
		for i := 0; i < size; i++ {
			recs = append(recs, dataset.NewRecord(c, map[dataset.Feature]float64{
				dataset.TotalBookings:   float64(c + 1),
				dataset.MeanADR:         80 + float64(i),
				dataset.EngagementScore: 0.5,
			}))
		}
	}
	return segment.Default().Apply(dataset.NewTable(recs))
}

func newTestServer(t *testing.T, tbl *dataset.Table) (*httptest.Server, *http.Client) {
	t.Helper()
	srv := New(Data{Table: tbl}, view.NewSessions(0), zerolog.Nop())
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return ts, &http.Client{Jar: jar}
}

func get(t *testing.T, c *http.Client, rawURL string) (int, string) {
	t.Helper()
	resp, err := c.Get(rawURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestHome_TotalUsers(t *testing.T) {
	ts, c := newTestServer(t, sizedTable(10, 20, 30, 40))

	code, body := get(t, c, ts.URL+"/")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `<div class="label">Total Users</div><div class="value">100</div>`)
	assert.Contains(t, body, `<div class="label">Avg Bookings</div><div class="value">3.00</div>`)
	assert.Contains(t, body, "/chart/sizes")
	assert.Contains(t, body, `class="active">Home</a>`)
}

func TestNavigation_SwitchesPages(t *testing.T) {
	ts, c := newTestServer(t, sizedTable(10, 20, 30, 40))

	_, body := get(t, c, ts.URL+"/?page=overview")
	assert.Contains(t, body, "<h1>Cluster Overview</h1>")
	assert.Contains(t, body, "High cancellations, low engagement")
	assert.Contains(t, body, "/chart/share")

	_, body = get(t, c, ts.URL+"/?page=heatmap")
	assert.Contains(t, body, "<h1>Behavioral Feature Heatmap</h1>")

	// an unknown page keeps the current one
	_, body = get(t, c, ts.URL+"/?page=settings")
	assert.Contains(t, body, "<h1>Behavioral Feature Heatmap</h1>")

	// the session remembers the page without a query
	_, body = get(t, c, ts.URL+"/")
	assert.Contains(t, body, "<h1>Behavioral Feature Heatmap</h1>")
}

func TestExplorer_DefaultsToFirstCluster(t *testing.T) {
	ts, c := newTestServer(t, sizedTable(10, 20, 30, 40))

	_, body := get(t, c, ts.URL+"/?page=explorer")
	assert.Contains(t, body, "Segment: Cancellation-Prone")
	assert.Contains(t, body, `<option value="Cancellation-Prone" selected>`)
	assert.Contains(t, body, `<option value="total_bookings" selected>`)
}

func TestExplorer_EmptyClusterRendersPlaceholders(t *testing.T) {
	ts, c := newTestServer(t, sizedTable(10, 20, 30))

	code, body := get(t, c, ts.URL+"/?page=explorer&cluster="+url.QueryEscape("Loyal High-Spenders"))
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Segment: Loyal High-Spenders")
	assert.Equal(t, 3, strings.Count(body, `<div class="value">no data</div>`))

	code, body = get(t, c, ts.URL+"/chart/distribution?cluster="+url.QueryEscape("Loyal High-Spenders")+"&feature=mean_adr")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "mean_adr Distribution for Loyal High-Spenders")
}

func TestExplorer_ClusterChangeKeepsFeature(t *testing.T) {
	ts, c := newTestServer(t, sizedTable(10, 20, 30, 40))

	_, body := get(t, c, ts.URL+"/?page=explorer&feature=mean_adr")
	assert.Contains(t, body, `<option value="mean_adr" selected>`)

	_, body = get(t, c, ts.URL+"/?page=explorer&cluster="+url.QueryEscape("Regular Users"))
	assert.Contains(t, body, "Segment: Regular Users")
	assert.Contains(t, body, `<option value="mean_adr" selected>`)
	assert.Contains(t, body, "feature=mean_adr")

	_, body = get(t, c, ts.URL+"/?page=explorer&feature=recency_days")
	assert.Contains(t, body, "Segment: Regular Users")
}

func TestSessions_AreIsolated(t *testing.T) {
	ts, first := newTestServer(t, sizedTable(10, 20))
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	second := &http.Client{Jar: jar}

	_, _ = get(t, first, ts.URL+"/?page=heatmap")
	_, body := get(t, second, ts.URL+"/")
	assert.Contains(t, body, "<h1>Customer Segmentation Dashboard</h1>")
}

func TestCharts(t *testing.T) {
	ts, c := newTestServer(t, sizedTable(10, 20, 30, 40))

	for path, want := range map[string][]string{
		"/chart/sizes":   {"Number of Customers per Cluster", "Loyal High-Spenders"},
		"/chart/share":   {"Cluster Distribution (%)", "Loyal High-Spenders"},
		"/chart/profile": {"Average Feature Values by Cluster", "Loyal High-Spenders", "engagement_score"},
		"/chart/distribution?cluster=Active+Planners&feature=mean_adr": {"mean_adr Distribution for Active Planners"},
	} {
		code, body := get(t, c, ts.URL+path)
		require.Equal(t, http.StatusOK, code, path)
		for _, w := range want {
			assert.Contains(t, body, w, path)
		}
	}

	code, _ := get(t, c, ts.URL+"/chart/radar")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestUnavailable(t *testing.T) {
	err := errors.Wrap(dataset.ErrDataUnavailable, "features.csv: unable to open file")
	ts := httptest.NewServer(Unavailable(err, zerolog.Nop()))
	t.Cleanup(ts.Close)

	for _, path := range []string{"/", "/?page=explorer", "/chart/sizes"} {
		code, body := get(t, ts.Client(), ts.URL+path)
		assert.Equal(t, http.StatusServiceUnavailable, code, path)
		assert.Contains(t, body, "Dataset unavailable", path)
		assert.Contains(t, body, "unable to open file", path)
	}
	code, _ := get(t, ts.Client(), ts.URL+"/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestUnknownPath(t *testing.T) {
	ts, c := newTestServer(t, sizedTable(1))
	code, _ := get(t, c, ts.URL+"/favicon.ico")
	assert.Equal(t, http.StatusNotFound, code)

	code, body := get(t, c, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body)
}
