package zoneinfo

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ulikunitz/xz"

	"github.com/ngrash/go-zdump/internal/tziftest"
	"github.com/ngrash/go-zdump/internal/zonecache"
	"github.com/ngrash/go-zdump/zdump"
)

func writeFile(t *testing.T, path string, b []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatal(err)
	}
}

func compress(t *testing.T, b []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(b); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// zoneDir returns a directory holding America/New_York plain and
// Europe/New_York compressed.
func zoneDir(t *testing.T) (string, []byte) {
	dir := t.TempDir()
	ny := tziftest.NewYork().Bytes()
	writeFile(t, filepath.Join(dir, "America", "New_York"), ny)
	writeFile(t, filepath.Join(dir, "Europe", "New_York.xz"), compress(t, ny))
	return dir, ny
}

func TestSource_Dir(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing")

	got, err := NewSource(missing, dir).Dir()
	if err != nil {
		t.Fatal(err)
	}
	if got != dir {
		t.Errorf("Dir() = %q, want %q", got, dir)
	}

	t.Setenv(EnvDir, dir)
	got, err = NewSource().Dir()
	if err != nil {
		t.Fatal(err)
	}
	if got != dir {
		t.Errorf("Dir() with %s = %q, want %q", EnvDir, got, dir)
	}

	_, err = NewSource(missing).Dir()
	if !errors.Is(err, zdump.ErrDirPath) {
		t.Errorf("Dir() error = %v, want %v", err, zdump.ErrDirPath)
	}
	if code := zdump.Code(err); code != zdump.CodeDirPath {
		t.Errorf("Code() = %d, want %d", code, zdump.CodeDirPath)
	}
}

func TestSource_ReadZone(t *testing.T) {
	dir, ny := zoneDir(t)
	writeFile(t, filepath.Join(dir, LocalZone), ny)
	s := NewSource(dir)

	for _, name := range []string{"America/New_York", "Europe/New_York", ""} {
		got, err := s.ReadZone(name)
		if err != nil {
			t.Errorf("ReadZone(%q): %v", name, err)
			continue
		}
		if !bytes.Equal(got, ny) {
			t.Errorf("ReadZone(%q) returned %d bytes, want %d", name, len(got), len(ny))
		}
	}
}

func TestSource_ReadZone_Errors(t *testing.T) {
	dir, _ := zoneDir(t)
	writeFile(t, filepath.Join(dir, "Broken.xz"), []byte("not xz"))
	big, err := os.Create(filepath.Join(dir, "Big"))
	if err != nil {
		t.Fatal(err)
	}
	if err := big.Truncate(MaxFileSize + 1); err != nil {
		t.Fatal(err)
	}
	big.Close()

	tests := []struct {
		name string
		want error
		code int
	}{
		{"Asia/Nowhere", zdump.ErrOpen, zdump.CodeOpen},
		{"../etc/passwd", zdump.ErrOpen, zdump.CodeOpen},
		{"/etc/passwd", zdump.ErrOpen, zdump.CodeOpen},
		{"America", zdump.ErrRead, zdump.CodeRead},
		{"Broken", zdump.ErrRead, zdump.CodeRead},
		{"Big", zdump.ErrRead, zdump.CodeRead},
	}
	s := NewSource(dir)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ReadZone(tt.name)
			if !errors.Is(err, tt.want) {
				t.Fatalf("ReadZone() error = %v, want %v", err, tt.want)
			}
			var le *LoadError
			if !errors.As(err, &le) || le.Name != tt.name {
				t.Errorf("ReadZone() error = %#v, want *LoadError for %q", err, tt.name)
			}
			if code := zdump.Code(err); code != tt.code {
				t.Errorf("Code() = %d, want %d", code, tt.code)
			}
		})
	}
}

func TestSource_Query(t *testing.T) {
	dir, _ := zoneDir(t)
	s := NewSource(dir)
	s.Cache = zonecache.New(4)

	want := []zdump.Entry{
		{At: 1672531200, Offset: -18000, Abbr: "EST"},
		{At: 1678604400, Offset: -14400, Save: 3600, Abbr: "EDT"},
		{At: 1699164000, Offset: -18000, Abbr: "EST"},
	}
	for _, name := range []string{"America/New_York", "Europe/New_York", "America/New_York"} {
		got, err := s.Query(context.Background(), name, 1672531200, 1704067199)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Query(%q) mismatch (-want +got):\n%s", name, diff)
		}
	}
	// Both names resolve to the same image.
	if got, want := s.Cache.Stats(), (zonecache.Stats{Hits: 2, Misses: 1}); got != want {
		t.Errorf("cache stats = %+v, want %+v", got, want)
	}
}

func TestSource_Query_Errors(t *testing.T) {
	dir, _ := zoneDir(t)
	writeFile(t, filepath.Join(dir, "Garbage"), []byte("TZif2 but nothing else"))
	s := NewSource(dir)

	if _, err := s.Query(context.Background(), "America/New_York", 10, 0); !errors.Is(err, zdump.ErrInvalidInterval) {
		t.Errorf("reversed interval: error = %v", err)
	}
	if _, err := s.Query(context.Background(), "Garbage", 0, 10); zdump.Code(err) != zdump.CodeHeader {
		t.Errorf("garbage file: error = %v, code %d", err, zdump.Code(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Query(ctx, "America/New_York", 0, 10); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled context: error = %v", err)
	}
}

func TestSource_Zones(t *testing.T) {
	dir, ny := zoneDir(t)
	writeFile(t, filepath.Join(dir, "America", "Detroit"), ny)
	writeFile(t, filepath.Join(dir, "America", "New_York.xz"), compress(t, ny))
	writeFile(t, filepath.Join(dir, "posix", "America", "New_York"), ny)
	writeFile(t, filepath.Join(dir, "zone.tab"), []byte("# tab separated\n"))

	got, err := NewSource(dir).Zones(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"America/Detroit", "America/New_York", "Europe/New_York"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Zones() mismatch (-want +got):\n%s", diff)
	}
}
