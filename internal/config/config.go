// Package config loads the tzdump configuration file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ngrash/go-zdump/internal/logging"
	"github.com/ngrash/go-zdump/zdump"
)

// Config is the root of the configuration file.
type Config struct {
	Zoneinfo Zoneinfo `yaml:"zoneinfo"`
	Log      Log      `yaml:"log"`
	Server   Server   `yaml:"server"`
	Cache    Cache    `yaml:"cache"`
	Query    Query    `yaml:"query"`
}

// Zoneinfo selects the zone directories. Empty means $TZDIR and the
// system defaults.
type Zoneinfo struct {
	Dirs []string `yaml:"dirs"`
}

// Log configures logging.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Server configures the HTTP service.
type Server struct {
	Addr string `yaml:"addr"`
}

// Cache configures the decoded zone cache.
type Cache struct {
	MaxEntries int `yaml:"max_entries"`
}

// Query configures the result buffer of queries.
type Query struct {
	BatchSize  int `yaml:"batch_size"`
	MaxEntries int `yaml:"max_entries"` // 0 means unlimited
}

// Defaults returns the configuration used when no file is given.
func Defaults() *Config {
	return &Config{
		Log:    Log{Level: "info", Format: "text"},
		Server: Server{Addr: ":8080"},
		Cache:  Cache{MaxEntries: 64},
		Query:  Query{BatchSize: zdump.DefaultBatchSize},
	}
}

// Load reads the file at path on top of Defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	c := Defaults()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		errs = append(errs, err)
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is empty"))
	}
	if c.Cache.MaxEntries < 0 {
		errs = append(errs, fmt.Errorf("cache.max_entries is negative: %d", c.Cache.MaxEntries))
	}
	if c.Query.BatchSize < 1 {
		errs = append(errs, fmt.Errorf("query.batch_size must be positive: %d", c.Query.BatchSize))
	}
	if c.Query.MaxEntries < 0 {
		errs = append(errs, fmt.Errorf("query.max_entries is negative: %d", c.Query.MaxEntries))
	}
	return errors.Join(errs...)
}

// QueryOptions returns the query options the configuration selects.
func (c *Config) QueryOptions() []zdump.Option {
	opts := []zdump.Option{zdump.WithBatchSize(c.Query.BatchSize)}
	if c.Query.MaxEntries > 0 {
		opts = append(opts, zdump.WithMaxEntries(c.Query.MaxEntries))
	}
	return opts
}
