// package testing contains shared testing utilities
package testing

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/gridx/internal/models"
)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// SequentialIDs returns a generator yielding p1, p2, ... for deterministic placeholders.
func SequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("p%d", n)
	}
}

// Custom builds a custom album whose title is its id.
func Custom(id, artist string) models.Album {
	return models.NewAlbum(models.KindCustom, id, id, artist)
}

// LastFM builds a lastfm album with a play count and a cover image.
func LastFM(id, title, artist string, plays int) models.Album {
	return models.NewAlbum(models.KindLastFM, id, title, artist).
		WithPlayCount(plays).
		WithImages("https://img.example/" + id + ".jpg")
}

// NewBoard builds a rows × columns board whose leading grid cells hold cells; the rest are placeholders.
func NewBoard(t *testing.T, rows, columns int, cells ...models.Item) models.Board {
	t.Helper()

	b := models.NewBoard(rows, columns, SequentialIDs())
	if len(cells) > rows*columns {
		t.Fatalf("%d cells do not fit a %dx%d grid", len(cells), rows, columns)
	}

	items := append([]models.Item{}, b.Grid().Items...)
	copy(items, cells)
	return b.With(b.Grid().WithItems(items))
}

func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
	return path
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
