package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"segmentdash/internal/aggregate"
	"segmentdash/internal/segment"
	"segmentdash/internal/view"
)

const (
	defaultDataPath = "data/user_features_with_clusters.csv"
	defaultAddr     = ":8080"

	EnvDataPath = "SEGDASH_DATA"
	EnvAddr     = "SEGDASH_ADDR"
)

// Duration decodes TOML strings such as "30m".
type Duration struct{ time.Duration }

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

type Config struct {
	DataPath      string            `toml:"data_path"`
	Addr          string            `toml:"addr"`
	SessionTTL    Duration          `toml:"session_ttl"`
	HistogramBins int               `toml:"histogram_bins"`
	LogLevel      string            `toml:"log_level"`
	Segments      map[string]string `toml:"segments"`
}

func Default() Config {
	return Config{
		DataPath:      defaultDataPath,
		Addr:          defaultAddr,
		SessionTTL:    Duration{view.DefaultSessionTTL},
		HistogramBins: aggregate.DefaultBins,
		LogLevel:      "info",
	}
}

// Load reads the TOML file at path on top of the defaults, then applies the
// environment. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "decode config %s", path)
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvDataPath)); v != "" {
		cfg.DataPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAddr)); v != "" {
		cfg.Addr = v
	}
	return cfg.sanitize(), nil
}

func (c Config) sanitize() Config {
	c.DataPath = strings.TrimSpace(c.DataPath)
	if c.DataPath == "" {
		c.DataPath = defaultDataPath
	}
	if strings.TrimSpace(c.Addr) == "" {
		c.Addr = defaultAddr
	}
	if c.SessionTTL.Duration <= 0 {
		c.SessionTTL.Duration = view.DefaultSessionTTL
	}
	if c.HistogramBins <= 0 {
		c.HistogramBins = aggregate.DefaultBins
	}
	return c
}

// Mapping returns the configured segment names, or the default naming when
// the [segments] table is absent.
func (c Config) Mapping() (segment.Mapping, error) {
	if len(c.Segments) == 0 {
		return segment.Default(), nil
	}
	m := make(segment.Mapping, len(c.Segments))
	for k, name := range c.Segments {
		id, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return nil, errors.Errorf("segments: cluster id %q is not an integer", k)
		}
		m[id] = strings.TrimSpace(name)
	}
	return m, nil
}
