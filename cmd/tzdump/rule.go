package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ngrash/go-zdump/internal/config"
	"github.com/ngrash/go-zdump/posixtz"
	"github.com/ngrash/go-zdump/zdump"
)

// RuleCmd decodes a TZ rule string, e.g. "CET-1CEST,M3.5.0,M10.5.0/3".
type RuleCmd struct {
	TZ    string `arg:"" name:"tz" help:"POSIX TZ rule string"`
	Start string `name:"start" help:"List the changes from this instant on"`
	End   string `name:"end" help:"End of the listed interval (requires --start)"`
}

func (c *RuleCmd) Run(cfg *config.Config) error {
	r, err := posixtz.Parse(c.TZ)
	if err != nil {
		return err
	}
	writeRule(os.Stdout, r)
	if c.Start == "" {
		return nil
	}
	start, end, err := interval(c.Start, c.End)
	if err != nil {
		return err
	}
	entries, err := zdump.QueryRule(r, start, end, cfg.QueryOptions()...)
	if err != nil {
		return err
	}
	fmt.Println()
	writeEntries(os.Stdout, entries)
	return nil
}

func writeRule(w io.Writer, r posixtz.Rule) {
	fmt.Fprintln(w, "Rule:", r)
	fmt.Fprint(w, r.Describe())
}
