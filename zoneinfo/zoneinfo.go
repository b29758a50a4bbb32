// Package zoneinfo reads zone files from the system time zone database.
package zoneinfo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/ulikunitz/xz"

	"github.com/ngrash/go-zdump/internal/logging"
	"github.com/ngrash/go-zdump/internal/zonecache"
	"github.com/ngrash/go-zdump/tzif"
	"github.com/ngrash/go-zdump/zdump"
)

const (
	// MaxFileSize is the size limit of a zone file after decompression.
	MaxFileSize = 10 << 20
	// LocalZone is the zone read when no name is given.
	LocalZone = "localtime"
	// EnvDir names the environment variable overriding the default
	// directories.
	EnvDir = "TZDIR"
)

// DefaultDirs are searched, in order, when TZDIR is unset or names no
// directory.
var DefaultDirs = []string{
	"/usr/share/zoneinfo/",
	"/usr/lib/zoneinfo/",
}

// LoadError records a failure to locate or read a zone file. Err wraps
// one of zdump.ErrDirPath, zdump.ErrOpen or zdump.ErrRead.
type LoadError struct {
	Op   string
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Name == "" {
		return "zoneinfo: " + e.Op + ": " + e.Err.Error()
	}
	return "zoneinfo: " + e.Op + " " + e.Name + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error { return e.Err }

// Source reads zone files from the first existing directory of its search
// list.
type Source struct {
	dirs []string

	// Cache, if set, holds decoded files across queries.
	Cache *zonecache.Cache
	// Options are passed to every query.
	Options []zdump.Option
}

// NewSource returns a source searching dirs. Without dirs it searches
// $TZDIR followed by DefaultDirs, evaluated on every lookup.
func NewSource(dirs ...string) *Source {
	return &Source{dirs: dirs}
}

func (s *Source) candidates() []string {
	if len(s.dirs) > 0 {
		return s.dirs
	}
	var c []string
	if d := os.Getenv(EnvDir); d != "" {
		c = append(c, d)
	}
	return append(c, DefaultDirs...)
}

// Dir returns the directory zone names are resolved against.
func (s *Source) Dir() (string, error) {
	for _, d := range s.candidates() {
		if fi, err := os.Stat(d); err == nil && fi.IsDir() {
			return d, nil
		}
	}
	return "", &LoadError{Op: "lookup", Err: zdump.ErrDirPath}
}

// ReadZone returns the file image of the named zone. An empty name reads
// LocalZone. If the file does not exist, name.xz is read and decompressed
// instead. Names must be relative and stay within the directory.
func (s *Source) ReadZone(name string) ([]byte, error) {
	dir, err := s.Dir()
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = LocalZone
	}
	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return nil, &LoadError{Op: "open", Name: name, Err: fmt.Errorf("%w: name outside %s", zdump.ErrOpen, dir)}
	}
	path := filepath.Join(dir, filepath.FromSlash(name))

	b, err := readFile(path, func(r io.Reader) (io.Reader, error) { return r, nil })
	if errors.Is(err, fs.ErrNotExist) {
		b, err = readFile(path+".xz", func(r io.Reader) (io.Reader, error) { return xz.NewReader(r) })
		if errors.Is(err, fs.ErrNotExist) {
			// Report the plain name.
			err = fmt.Errorf("%w: %w", zdump.ErrOpen, &os.PathError{Op: "open", Path: path, Err: fs.ErrNotExist})
		}
	}
	if err != nil {
		return nil, &LoadError{Op: "read", Name: name, Err: err}
	}
	return b, nil
}

func readFile(path string, wrap func(io.Reader) (io.Reader, error)) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", zdump.ErrOpen, err)
	}
	defer f.Close()

	r, err := wrap(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", zdump.ErrRead, err)
	}
	b, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", zdump.ErrRead, err)
	}
	if len(b) > MaxFileSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", zdump.ErrRead, MaxFileSize)
	}
	return b, nil
}

// Load reads and decodes the named zone.
func (s *Source) Load(name string) (tzif.Data, error) {
	b, err := s.ReadZone(name)
	if err != nil {
		return tzif.Data{}, err
	}
	if s.Cache != nil {
		return s.Cache.Decode(b)
	}
	return tzif.Decode(b)
}

// Query lists the civil time changes of the named zone in [start, end].
// Errors and partial results are those of zdump.QueryData.
func (s *Source) Query(ctx context.Context, name string, start, end int64) ([]zdump.Entry, error) {
	if end < start {
		return nil, zdump.ErrInvalidInterval
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := logging.FromContext(ctx).With("zone", name)

	d, err := s.Load(name)
	if err != nil {
		log.Debug("load failed", "error", err)
		return nil, err
	}
	entries, err := zdump.QueryData(d, start, end, s.Options...)
	if err != nil {
		log.Warn("query failed", "start", start, "end", end, "entries", len(entries), "error", err)
		return entries, err
	}
	log.Debug("query", "start", start, "end", end, "entries", len(entries))
	return entries, nil
}

var magic = []byte("TZif")

// Zones lists the zone names below the directory, sorted. Directories
// not starting with an upper case letter (such as "posix" or "right") are
// skipped, and so are files that are not TZif images.
func (s *Source) Zones(ctx context.Context) ([]string, error) {
	dir, err := s.Dir()
	if err != nil {
		return nil, err
	}
	var zones []string
	err = filepath.WalkDir(dir, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		if de.IsDir() {
			if !capitalized(de.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		name, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		name = strings.TrimSuffix(filepath.ToSlash(name), ".xz")
		if strings.HasSuffix(path, ".xz") || isTZif(path) {
			zones = append(zones, name)
		}
		return nil
	})
	if err != nil {
		return nil, &LoadError{Op: "list", Err: fmt.Errorf("%w: %w", zdump.ErrRead, err)}
	}
	slices.Sort(zones)
	// A zone may be present both plain and compressed.
	return slices.Compact(zones), nil
}

func capitalized(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}
	return false
}

func isTZif(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	var head [4]byte
	if _, err := io.ReadFull(f, head[:]); err != nil {
		return false
	}
	return bytes.Equal(head[:], magic)
}
