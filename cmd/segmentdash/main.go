package main

import (
	"context"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"segmentdash/internal/aggregate"
	"segmentdash/internal/config"
	"segmentdash/internal/dashboard"
	"segmentdash/internal/dataset"
	"segmentdash/internal/logging"
	"segmentdash/internal/report"
	"segmentdash/internal/view"
)

func main() {
	app, err := run(os.Args[1:], os.Stdout)
	if err != nil {
		l := logging.New(os.Stderr, "info")
		l.Fatal().Err(err).Msg("segmentdash")
	}
	if app == nil {
		return
	}
	if err := serve(app.addr, app.handler, app.log); err != nil {
		app.log.Fatal().Err(err).Msg("server stopped")
	}
}

// app is everything serve needs once setup is done.
type app struct {
	addr    string
	handler http.Handler
	log     zerolog.Logger
}

// run parses args, loads the dataset once and builds the handler. With
// -profile it writes the profile table to stdout and returns a nil app.
func run(args []string, stdout io.Writer) (*app, error) {
	fs := flag.NewFlagSet("segmentdash", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to a TOML config file")
	dataPath := fs.String("data", "", "CSV of per-customer features with a cluster column (overrides config and "+config.EnvDataPath+")")
	addr := fs.String("addr", "", "HTTP listen address (overrides config and "+config.EnvAddr+")")
	profile := fs.Bool("profile", false, "Print the cluster profile table and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, errors.WithMessage(err, "load config")
	}
	if *dataPath != "" {
		cfg.DataPath = *dataPath
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	log := logging.New(stdout, cfg.LogLevel)

	mapping, err := cfg.Mapping()
	if err != nil {
		return nil, errors.WithMessage(err, "load config")
	}
	log.Debug().Strs("segments", mapping.Names()).Msg("segment mapping")

	start := time.Now()
	cache := dataset.NewCache(cfg.DataPath)
	table, loadErr := cache.Get()
	if loadErr == nil {
		if unmapped := mapping.Unmapped(table); len(unmapped) > 0 {
			log.Warn().Ints("clusters", unmapped).Msg("clusters without a name are shown as Unknown")
		}
		table = mapping.Apply(table)
		log.Info().Str("path", cache.Path()).Int("rows", table.Len()).
			Dur("took", time.Since(start)).Msg("dataset loaded")
	}

	if *profile {
		if loadErr != nil {
			return nil, errors.WithMessage(loadErr, "load dataset")
		}
		report.WriteProfile(stdout, aggregate.GroupedMeans(table, dataset.Features()))
		return nil, nil
	}

	a := &app{addr: cfg.Addr, log: log}
	if loadErr != nil {
		log.Error().Err(loadErr).Str("path", cache.Path()).Msg("dataset unavailable, serving error page")
		a.handler = dashboard.Unavailable(loadErr, log)
		return a, nil
	}
	a.handler = dashboard.New(dashboard.Data{
		Table:    table,
		Features: dataset.Features(),
		Bins:     cfg.HistogramBins,
	}, view.NewSessions(cfg.SessionTTL.Duration), log)
	return a, nil
}

func serve(addr string, handler http.Handler, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("dashboard listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
