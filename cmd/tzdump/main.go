// Command tzdump lists the civil time changes of a zone and inspects TZif
// files and TZ rule strings.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/alecthomas/kong"

	"github.com/ngrash/go-zdump/internal/config"
	"github.com/ngrash/go-zdump/internal/logging"
	"github.com/ngrash/go-zdump/internal/zonecache"
	"github.com/ngrash/go-zdump/zdump"
	"github.com/ngrash/go-zdump/zoneinfo"
)

// Globals are the flags shared by all commands.
type Globals struct {
	Config    string   `name:"config" short:"c" help:"YAML configuration file" type:"existingfile"`
	Zoneinfo  []string `name:"zoneinfo" help:"Zone directories, searched in order (default: $TZDIR, /usr/share/zoneinfo, /usr/lib/zoneinfo)" sep:","`
	LogLevel  string   `name:"log-level" help:"Log level (debug, info, warn, error)"`
	LogFormat string   `name:"log-format" help:"Log format (text, json)"`
}

// CLI defines the command line interface.
type CLI struct {
	Globals

	Query   QueryCmd   `cmd:"" help:"List the civil time changes of a zone in an interval"`
	Inspect InspectCmd `cmd:"" help:"Print the fields of a TZif file"`
	Diff    DiffCmd    `cmd:"" help:"Compare two TZif files"`
	Rule    RuleCmd    `cmd:"" help:"Explain a TZ rule string and list its changes"`
	List    ListCmd    `cmd:"" help:"List the zones of the zone directory"`
	Serve   ServeCmd   `cmd:"" help:"Serve zone queries over HTTP"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("tzdump"),
		kong.Description("Dump time zone transitions from TZif files."),
		kong.UsageOnError(),
	)
	cfg, err := cli.load()
	ctx.FatalIfErrorf(err)

	err = ctx.Run(&cli.Globals, cfg)
	if err != nil {
		err = fmt.Errorf("%w (code %d)", err, zdump.Code(err))
	}
	ctx.FatalIfErrorf(err)
}

// load returns the configuration file, if any, with the flags applied on
// top, and sets up logging accordingly.
func (g *Globals) load() (*config.Config, error) {
	cfg := config.Defaults()
	if g.Config != "" {
		var err error
		if cfg, err = config.Load(g.Config); err != nil {
			return nil, err
		}
	}
	g.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := initLogging(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply overrides cfg with the flags that were set.
func (g *Globals) apply(cfg *config.Config) {
	if len(g.Zoneinfo) > 0 {
		cfg.Zoneinfo.Dirs = g.Zoneinfo
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.Log.Format = g.LogFormat
	}
}

func initLogging(cfg *config.Config) error {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(cfg.Log.Format)
	if err != nil {
		return err
	}
	logging.Init(level, format, os.Stderr)
	return nil
}

func newSource(cfg *config.Config) *zoneinfo.Source {
	src := zoneinfo.NewSource(cfg.Zoneinfo.Dirs...)
	src.Cache = zonecache.New(cfg.Cache.MaxEntries)
	src.Options = cfg.QueryOptions()
	return src
}

// Instant is a command line instant: seconds since the epoch, an RFC 3339
// timestamp or a date (midnight UTC).
type Instant int64

// UnmarshalText implements encoding.TextUnmarshaler, which kong uses to
// decode the argument.
func (i *Instant) UnmarshalText(b []byte) error {
	s := string(b)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*i = Instant(n)
		return nil
	}
	for _, layout := range []string{time.RFC3339, time.DateTime, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			*i = Instant(t.Unix())
			return nil
		}
	}
	return fmt.Errorf("invalid instant %q: want seconds since the epoch, RFC 3339 or YYYY-MM-DD", s)
}

// interval parses the optional --start and --end flags. A missing end
// selects the instant start.
func interval(start, end string) (int64, int64, error) {
	var s, e Instant
	if err := s.UnmarshalText([]byte(start)); err != nil {
		return 0, 0, err
	}
	e = s
	if end != "" {
		if err := e.UnmarshalText([]byte(end)); err != nil {
			return 0, 0, err
		}
	}
	return int64(s), int64(e), nil
}
