package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/ngrash/go-zdump/internal/config"
	"github.com/ngrash/go-zdump/posixtz"
	"github.com/ngrash/go-zdump/tzif"
)

// InspectCmd prints the decoded fields of a TZif file.
type InspectCmd struct {
	Zone string `arg:"" help:"Path of a TZif file, or a zone name resolved against the zone directory"`
	V1   bool   `name:"v1" help:"Always print the version 1 header and data block"`
}

func (c *InspectCmd) Run(cfg *config.Config) error {
	b, err := readZone(cfg, c.Zone)
	if err != nil {
		return err
	}
	d, err := tzif.Decode(b)
	if err != nil {
		return fmt.Errorf("decoding: %w", err)
	}
	writeData(os.Stdout, d, c.V1)
	return nil
}

// readZone reads the file at path, or the zone of that name when no such
// file exists.
func readZone(cfg *config.Config, path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return newSource(cfg).ReadZone(path)
}

func writeData(w io.Writer, d tzif.Data, v1 bool) {
	if !d.Version.Wide() || v1 {
		writeHeader(w, d.V1Header)
		writeBlock(w, tzif.V1, d.V1Data)
	}
	if d.Version.Wide() {
		writeHeader(w, d.V2Header)
		writeBlock(w, d.V2Header.Version, d.V2Data)
		writeFooter(w, d.V2Footer)
	}
}

func writeHeader(w io.Writer, h tzif.Header) {
	fmt.Fprintln(w, "Header")
	fmt.Fprintln(w, "  version  =", h.Version)
	fmt.Fprintln(w, "  isutcnt  =", h.Isutcnt)
	fmt.Fprintln(w, "  isstdcnt =", h.Isstdcnt)
	fmt.Fprintln(w, "  leapcnt  =", h.Leapcnt)
	fmt.Fprintln(w, "  timecnt  =", h.Timecnt)
	fmt.Fprintln(w, "  typecnt  =", h.Typecnt)
	fmt.Fprintln(w, "  charcnt  =", h.Charcnt)
	fmt.Fprintln(w)
}

func writeBlock(w io.Writer, v tzif.Version, b tzif.DataBlock) {
	fmt.Fprintln(w, "Data block", v)
	fmt.Fprintf(w, "  TransitionTimes (%d) = %v\n", len(b.TransitionTimes), b.TransitionTimes)
	fmt.Fprintf(w, "  TransitionTypes (%d) = %v\n", len(b.TransitionTypes), b.TransitionTypes)
	fmt.Fprintf(w, "  LocalTimeTypeRecords (%d) = %+v\n", len(b.LocalTimeTypeRecords), b.LocalTimeTypeRecords)
	fmt.Fprintf(w, "  TimeZoneDesignation (%d) = %q\n", len(b.TimeZoneDesignation), designations(b.TimeZoneDesignation))
	fmt.Fprintf(w, "  LeapSecondRecords (%d) = %+v\n", len(b.LeapSecondRecords), b.LeapSecondRecords)
	fmt.Fprintf(w, "  StandardWallIndicators (%d) = %v\n", len(b.StandardWallIndicators), b.StandardWallIndicators)
	fmt.Fprintf(w, "  UTLocalIndicators (%d) = %v\n", len(b.UTLocalIndicators), b.UTLocalIndicators)
	fmt.Fprintln(w)
}

func designations(b []byte) []string {
	return strings.Split(strings.TrimSuffix(string(b), "\x00"), "\x00")
}

func writeFooter(w io.Writer, f tzif.Footer) {
	fmt.Fprintln(w, "Footer")
	fmt.Fprintln(w, "  TZString =", string(f.TZString))
	if r, err := posixtz.Parse(string(f.TZString)); err != nil {
		fmt.Fprintln(w, "  error    =", err)
	} else {
		for _, line := range strings.Split(strings.TrimSuffix(r.Describe(), "\n"), "\n") {
			fmt.Fprintln(w, "  "+line)
		}
	}
	fmt.Fprintln(w)
}
