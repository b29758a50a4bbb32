package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ngrash/go-zdump/internal/config"
	"github.com/ngrash/go-zdump/internal/logging"
	"github.com/ngrash/go-zdump/posixtz"
	"github.com/ngrash/go-zdump/zdump"
)

// QueryCmd lists the civil time changes of a zone.
type QueryCmd struct {
	Zone  string  `arg:"" help:"Zone name, e.g. Europe/Berlin (empty for localtime)"`
	Start Instant `arg:"" help:"Start of the interval"`
	End   Instant `arg:"" help:"End of the interval"`
	JSON  bool    `name:"json" help:"Print entries as JSON"`
}

func (c *QueryCmd) Run(cfg *config.Config) error {
	ctx := logging.WithQueryID(context.Background(), logging.NewQueryID())
	entries, err := newSource(cfg).Query(ctx, c.Zone, int64(c.Start), int64(c.End))

	// A malformed rule string still yields the recorded changes.
	var re *posixtz.RuleError
	if err != nil && !errors.As(err, &re) {
		return err
	}
	if c.JSON {
		if werr := writeJSON(os.Stdout, entries); werr != nil {
			return werr
		}
		return err
	}
	name := c.Zone
	if name == "" {
		name = "localtime"
	}
	fmt.Printf("number of entries found = %d\n", len(entries))
	fmt.Printf("for zone: %s, for time_t %d to %d\n", name, c.Start, c.End)
	writeEntries(os.Stdout, entries)
	return err
}

// writeEntries prints one line per entry with the local time derived from
// its offset.
func writeEntries(w io.Writer, entries []zdump.Entry) {
	fmt.Fprintln(w, "num:      time_t utc_offset  save_secs abbr      - local time (derived) -")
	for i, e := range entries {
		local := time.Unix(e.At+int64(e.Offset), 0).UTC()
		fmt.Fprintf(w, "%3d: %11d %10d %10d %-9s %s\n", i, e.At, e.Offset, e.Save, e.Abbr, local.Format(time.ANSIC))
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
