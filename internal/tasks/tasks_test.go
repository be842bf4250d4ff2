package tasks

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/gridx/internal/models"
	"github.com/desertthunder/gridx/internal/shared"
	th "github.com/desertthunder/gridx/internal/testing"
)

func newTestImporter(t *testing.T) (*Importer, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	im, err := NewImporter(shared.NewLogger(&buf))
	if err != nil {
		t.Fatalf("NewImporter() error = %v", err)
	}
	return im, &buf
}

const jsonImport = `{
  "albums": [
    {"id": "lf-1", "title": "Kind of Blue", "subtitle": "Miles Davis", "playcount": 42, "images": ["", "https://img.example/kob.jpg"]},
    {"title": "A Love Supreme", "subtitle": "John Coltrane"},
    {"title": "kind of blue ", "subtitle": "MILES DAVIS"},
    {"title": "Mingus Ah Um", "subtitle": "Charles Mingus", "kind": "custom"}
  ]
}`

const yamlImport = `
albums:
  - title: Blue Train
    subtitle: John Coltrane
    text_color: "#ffffff"
    text_background: true
  - id: c-2
    title: Moanin'
    subtitle: Art Blakey
`

func TestImporter_Decode(t *testing.T) {
	t.Run("json into lastfm", func(t *testing.T) {
		im, logs := newTestImporter(t)

		result, err := im.Decode(context.Background(), nil, []byte(jsonImport), "json", models.LastFMContainer)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}

		if result.Total != 4 {
			t.Errorf("Total = %d, want 4", result.Total)
		}
		if result.Skipped != 2 {
			t.Errorf("Skipped = %d, want 2 (one duplicate, one custom)", result.Skipped)
		}
		if len(result.Albums) != 2 {
			t.Fatalf("expected 2 albums, got %d", len(result.Albums))
		}

		first := result.Albums[0]
		if first.ID() != "lf-1" || first.Kind() != models.KindLastFM {
			t.Errorf("first album = %s (%s)", first.ID(), first.Kind())
		}
		if first.PlayCount == nil || *first.PlayCount != 42 {
			t.Errorf("PlayCount = %v, want 42", first.PlayCount)
		}
		if first.Image() != "https://img.example/kob.jpg" {
			t.Errorf("Image() = %q", first.Image())
		}

		second := result.Albums[1]
		if !strings.HasPrefix(second.ID(), "lastfm-") {
			t.Errorf("expected generated id, got %q", second.ID())
		}
		if second.PlayCount != nil {
			t.Error("missing playcount should stay nil")
		}

		if !strings.Contains(logs.String(), "skipping album of another kind") {
			t.Errorf("expected a warning for the custom record, got %q", logs.String())
		}
	})

	t.Run("yaml into custom", func(t *testing.T) {
		im, _ := newTestImporter(t)

		result, err := im.Decode(context.Background(), nil, []byte(yamlImport), "yaml", models.CustomContainer)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}

		if len(result.Albums) != 2 {
			t.Fatalf("expected 2 albums, got %d", len(result.Albums))
		}
		if a := result.Albums[0]; a.Kind() != models.KindCustom || a.TextColor != "#ffffff" || !a.TextBackground {
			t.Errorf("unexpected first album: %+v", a)
		}
		if result.Albums[1].ID() != "c-2" {
			t.Errorf("expected id c-2, got %s", result.Albums[1].ID())
		}
	})

	t.Run("schema violations", func(t *testing.T) {
		im, _ := newTestImporter(t)

		tests := []struct {
			name   string
			format string
			data   string
		}{
			{name: "missing albums", format: "json", data: `{}`},
			{name: "missing title", format: "json", data: `{"albums": [{"subtitle": "x"}]}`},
			{name: "empty title", format: "json", data: `{"albums": [{"title": ""}]}`},
			{name: "negative playcount", format: "json", data: `{"albums": [{"title": "x", "playcount": -1}]}`},
			{name: "unknown field", format: "json", data: `{"albums": [{"title": "x", "rating": 5}]}`},
			{name: "placeholder kind", format: "json", data: `{"albums": [{"title": "x", "kind": "placeholder"}]}`},
			{name: "yaml list", format: "yaml", data: "- title: x\n"},
			{name: "malformed json", format: "json", data: `{"albums": [`},
			{name: "malformed yaml", format: "yaml", data: "albums: [\n"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := im.Decode(context.Background(), nil, []byte(tt.data), tt.format, models.LastFMContainer)
				if !errors.Is(err, shared.ErrInvalidSchema) {
					t.Errorf("expected ErrInvalidSchema, got %v", err)
				}
			})
		}
	})

	t.Run("unknown pallete", func(t *testing.T) {
		im, _ := newTestImporter(t)

		_, err := im.Decode(context.Background(), nil, []byte(jsonImport), "json", models.GridContainer)
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		im, _ := newTestImporter(t)

		_, err := im.Decode(context.Background(), nil, []byte(jsonImport), "toml", models.LastFMContainer)
		if !errors.Is(err, shared.ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		im, _ := newTestImporter(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := im.Decode(ctx, nil, []byte(jsonImport), "json", models.LastFMContainer)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestImporter_Import(t *testing.T) {
	dir := t.TempDir()

	t.Run("detects yaml by extension", func(t *testing.T) {
		im, _ := newTestImporter(t)
		path := th.WriteFile(t, dir, "albums.yml", yamlImport)

		result, err := im.Import(context.Background(), nil, path, models.CustomContainer)
		if err != nil {
			t.Fatalf("Import() error = %v", err)
		}
		if len(result.Albums) != 2 {
			t.Errorf("expected 2 albums, got %d", len(result.Albums))
		}
	})

	t.Run("progress phases", func(t *testing.T) {
		im, _ := newTestImporter(t)
		path := th.WriteFile(t, dir, "albums.json", jsonImport)

		progressCh := make(chan ProgressUpdate, 100)
		result, err := im.Import(context.Background(), progressCh, path, models.LastFMContainer)
		close(progressCh)
		if err != nil {
			t.Fatalf("Import() error = %v", err)
		}

		phases := make(map[Phase]bool)
		var last ProgressUpdate
		for update := range progressCh {
			phases[update.Phase] = true
			last = update
		}

		for _, p := range []Phase{ReadFile, ValidateSchema, ConvertRecords, LoadPallete} {
			if !phases[p] {
				t.Errorf("expected %s phase in progress updates", p)
			}
		}
		if last.Data != result {
			t.Error("final update should carry the result")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		im, _ := newTestImporter(t)

		if _, err := im.Import(context.Background(), nil, dir+"/nope.json", models.LastFMContainer); err == nil {
			t.Error("expected error for a missing file")
		}
	})
}

func TestProgressUpdate_NonBlocking(t *testing.T) {
	im, _ := newTestImporter(t)

	// Unbuffered and never read: every send must be skipped
	progressCh := make(chan ProgressUpdate)

	done := make(chan error, 1)
	go func() {
		_, err := im.Decode(context.Background(), progressCh, []byte(jsonImport), "json", models.LastFMContainer)
		done <- err
	}()

	if err := <-done; err != nil {
		t.Errorf("Decode() error = %v", err)
	}
}

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{ReadFile, "read"},
		{ValidateSchema, "validate"},
		{ConvertRecords, "convert"},
		{LoadPallete, "load"},
		{ExportChart, "export_chart"},
		{Phase(99), ""},
	}

	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}
