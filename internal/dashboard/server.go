// Package dashboard serves the segmentation pages and their charts over HTTP.
package dashboard

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"segmentdash/internal/aggregate"
	"segmentdash/internal/dataset"
	"segmentdash/internal/view"
)

const sessionCookie = "segdash_session"

// renderer is any go-echarts chart.
type renderer interface {
	Render(w io.Writer) error
}

type Server struct {
	data     *Data
	loadErr  error
	sessions *view.Sessions
	log      zerolog.Logger
	mux      *http.ServeMux
}

// New serves d. The table in d must already carry its segment labels.
func New(d Data, sessions *view.Sessions, log zerolog.Logger) *Server {
	if len(d.Features) == 0 {
		d.Features = dataset.Features()
	}
	if d.Bins <= 0 {
		d.Bins = aggregate.DefaultBins
	}
	s := &Server{data: &d, sessions: sessions, log: log}
	s.routes()
	return s
}

// Unavailable serves the data-unavailable page for every request.
func Unavailable(err error, log zerolog.Logger) *Server {
	s := &Server{loadErr: err, log: log}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/", s.handlePage)
	s.mux.HandleFunc("/chart/", s.handleChart)
	s.mux.HandleFunc("/healthz", s.handleHealth)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.loadErr != nil {
		s.writeUnavailable(w)
		return
	}

	id, st := s.session(w, r)
	st = applyQuery(st, r)
	s.sessions.Put(id, st)

	pv := render(s.data, st)
	data := layoutData{Page: pv}
	for _, p := range view.Pages() {
		data.Nav = append(data.Nav, navItem{Href: "/?page=" + p.Slug(), Title: p.Title(), Active: p == st.Page})
	}

	var buf bytes.Buffer
	if err := layoutTpl.Execute(&buf, data); err != nil {
		s.log.Error().Err(err).Str("page", st.Page.Slug()).Msg("render page failed")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	s.log.Debug().Str("session", id).Str("page", st.Page.Slug()).
		Str("cluster", st.Cluster).Str("feature", st.Feature.Column()).Msg("page rendered")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// session returns the caller's session, starting a new one when the cookie
// is missing or has expired.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (string, view.State) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if st, ok := s.sessions.Get(c.Value); ok {
			return c.Value, st
		}
	}
	id, st := s.sessions.Start()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id, st
}

// applyQuery folds the page, cluster and feature parameters into st. Each
// parameter only changes its own field; unknown values are ignored.
func applyQuery(st view.State, r *http.Request) view.State {
	q := r.URL.Query()
	if v := q.Get("page"); v != "" {
		if p, ok := view.ParsePage(v); ok {
			st = st.WithPage(p)
		}
	}
	if q.Has("cluster") {
		st = st.WithCluster(strings.TrimSpace(q.Get("cluster")))
	}
	if v := q.Get("feature"); v != "" {
		if f, err := dataset.ParseFeature(v); err == nil {
			st = st.WithFeature(f)
		}
	}
	return st
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if s.loadErr != nil {
		s.writeUnavailable(w)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/chart/")
	chart, err := s.chart(name, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf); err != nil {
		s.log.Error().Err(err).Str("chart", name).Msg("render chart failed")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

var errUnknownChart = errors.New("unknown chart")

func (s *Server) chart(name string, r *http.Request) (renderer, error) {
	t := s.data.Table
	switch name {
	case "sizes":
		return sizeChart(aggregate.CountsByLabel(t)), nil
	case "share":
		return shareChart(aggregate.CountsByLabel(t)), nil
	case "profile":
		return profileChart(aggregate.GroupedMeans(t, s.data.Features)), nil
	case "distribution":
		q := r.URL.Query()
		f, err := dataset.ParseFeature(q.Get("feature"))
		if err != nil {
			f = dataset.TotalBookings
		}
		cluster := q.Get("cluster")
		bins, err := aggregate.Histogram(t.WithLabel(cluster), f, s.data.Bins)
		if err != nil && !errors.Is(err, aggregate.ErrEmptySelection) {
			return nil, err
		}
		return distributionChart(cluster, f, bins), nil
	}
	return nil, errors.Wrapf(errUnknownChart, "%q", name)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if s.loadErr != nil {
		http.Error(w, "dataset unavailable", http.StatusServiceUnavailable)
		return
	}
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) writeUnavailable(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusServiceUnavailable)
	if err := unavailableTpl.Execute(w, s.loadErr.Error()); err != nil {
		s.log.Error().Err(err).Msg("render unavailable page failed")
	}
}
