package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/go-cmp/cmp"

	"github.com/ngrash/go-zdump/internal/config"
	"github.com/ngrash/go-zdump/tzif"
	"github.com/ngrash/go-zdump/zdump"
)

// DiffCmd compares two TZif files field by field, or by the changes they
// yield in an interval.
type DiffCmd struct {
	A     string `arg:"" help:"First file or zone name"`
	B     string `arg:"" help:"Second file or zone name"`
	Start string `name:"start" help:"Compare the changes from this instant on instead of the fields"`
	End   string `name:"end" help:"End of the compared interval (requires --start)"`
}

func (c *DiffCmd) Run(cfg *config.Config) error {
	a, err := c.decode(cfg, c.A)
	if err != nil {
		return err
	}
	b, err := c.decode(cfg, c.B)
	if err != nil {
		return err
	}
	if c.Start == "" {
		writeDiff(os.Stdout, a, b)
		return nil
	}
	start, end, err := interval(c.Start, c.End)
	if err != nil {
		return err
	}
	ea, err := zdump.QueryData(a, start, end, cfg.QueryOptions()...)
	if err != nil {
		return fmt.Errorf("%s: %w", c.A, err)
	}
	eb, err := zdump.QueryData(b, start, end, cfg.QueryOptions()...)
	if err != nil {
		return fmt.Errorf("%s: %w", c.B, err)
	}
	writeDiff(os.Stdout, ea, eb)
	return nil
}

func (c *DiffCmd) decode(cfg *config.Config, name string) (tzif.Data, error) {
	b, err := readZone(cfg, name)
	if err != nil {
		return tzif.Data{}, err
	}
	d, err := tzif.Decode(b)
	if err != nil {
		return tzif.Data{}, fmt.Errorf("%s: %w", name, err)
	}
	return d, nil
}

func writeDiff(w io.Writer, a, b any) {
	if diff := cmp.Diff(a, b); diff != "" {
		fmt.Fprintln(w, "files are different: -A +B")
		fmt.Fprintln(w, diff)
	} else {
		fmt.Fprintln(w, "files are identical")
	}
}
