package formatter

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/gridx/internal/models"
	"github.com/desertthunder/gridx/internal/shared"
	th "github.com/desertthunder/gridx/internal/testing"
)

func testExport(t *testing.T) *GridExport {
	t.Helper()

	board := th.NewBoard(t, 2, 2,
		th.LastFM("l1", "Kind of Blue", "Miles Davis", 42),
		models.NewPlaceholder("hole"),
		th.Custom("c1", "Art | Blakey"),
	)
	return NewGridExport("Jazz Favourites", 2, 2, board)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "csv", want: FormatCSV},
		{in: "Markdown", want: FormatMarkdown},
		{in: "md", want: FormatMarkdown},
		{in: "text", want: FormatText},
		{in: "", want: FormatJSON},
		{in: "pdf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, shared.ErrUnsupportedFormat) {
					t.Errorf("expected ErrUnsupportedFormat, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestGridExport(t *testing.T) {
	export := testExport(t)

	t.Run("Albums", func(t *testing.T) {
		positions, albums := export.Albums()
		if len(albums) != 2 {
			t.Fatalf("expected 2 albums, got %d", len(albums))
		}
		if positions[0] != 0 || positions[1] != 2 {
			t.Errorf("positions = %v, want [0 2]", positions)
		}
	})

	t.Run("Slug", func(t *testing.T) {
		tests := []struct {
			name string
			want string
		}{
			{name: "Jazz Favourites", want: "jazz-favourites"},
			{name: "  2024/top_9 ", want: "2024top-9"},
			{name: "???", want: "chart"},
		}
		for _, tt := range tests {
			if got := NewGridExport(tt.name, 1, 1, nil).Slug(); got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.name, got, tt.want)
			}
		}
	})
}

func TestExporters(t *testing.T) {
	export := testExport(t)

	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(export)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)
		lines := strings.Split(strings.TrimSpace(output), "\n")

		if lines[0] != "Position,Row,Column,Kind,Title,Subtitle,PlayCount,Image" {
			t.Errorf("CSV missing headers, got: %s", lines[0])
		}
		if len(lines) != 5 {
			t.Fatalf("expected header plus 4 rows, got %d lines", len(lines))
		}
		if lines[1] != "1,1,1,lastfm,Kind of Blue,Miles Davis,42,https://img.example/l1.jpg" {
			t.Errorf("unexpected first row: %s", lines[1])
		}
		if lines[2] != "2,1,2,,,,," {
			t.Errorf("empty slot should only carry its position, got: %s", lines[2])
		}
		if !strings.HasPrefix(lines[3], "3,2,1,custom,c1,Art | Blakey") {
			t.Errorf("unexpected third row: %s", lines[3])
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(export)
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "# Jazz Favourites") {
			t.Error("Markdown missing title")
		}
		if !strings.Contains(output, "**Albums**: 2") {
			t.Error("Markdown missing album count")
		}
		if !strings.Contains(output, "| 1 | 2 |") {
			t.Error("Markdown missing table header")
		}
		if !strings.Contains(output, "![Kind of Blue](https://img.example/l1.jpg)") {
			t.Error("Markdown missing cover link")
		}
		if !strings.Contains(output, `Art \| Blakey - c1`) {
			t.Errorf("Markdown should escape pipes in cells, got:\n%s", output)
		}
		if !strings.Contains(output, "1. Miles Davis - Kind of Blue") {
			t.Error("Markdown missing album list")
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(export)
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Chart: Jazz Favourites") {
			t.Error("Text missing chart name")
		}
		if !strings.Contains(output, "1. Miles Davis - Kind of Blue") {
			t.Error("Text missing first album")
		}
		if !strings.Contains(output, "3. Art | Blakey - c1") {
			t.Error("Text should number albums by slot")
		}
		if strings.Contains(output, "2. ") {
			t.Error("Text should skip empty slots")
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(export)
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		board, err := models.UnmarshalBoard(data)
		if err != nil {
			t.Fatalf("JSON export should decode as a board: %v", err)
		}
		if _, name, ok := board.Find("l1"); !ok || name != models.GridContainer {
			t.Error("expected l1 on the decoded grid")
		}
	})

	t.Run("Render", func(t *testing.T) {
		for _, f := range Formats {
			if _, err := Render(export, f); err != nil {
				t.Errorf("Render(%s) failed: %v", f, err)
			}
		}
		if _, err := Render(export, Format("pdf")); !errors.Is(err, shared.ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	})
}

func TestWriters(t *testing.T) {
	export := testExport(t)

	t.Run("WriteCSVExport", func(t *testing.T) {
		t.Run("WithDefaultPath", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			result, err := WriteCSVExport(export, "")
			if err != nil {
				t.Fatalf("WriteCSVExport failed: %v", err)
			}

			if result.CellsFile != "jazz-favourites_grid.csv" {
				t.Errorf("Expected cells file 'jazz-favourites_grid.csv', got '%s'", result.CellsFile)
			}
			if result.MetadataFile != "jazz-favourites_metadata.json" {
				t.Errorf("Expected metadata file 'jazz-favourites_metadata.json', got '%s'", result.MetadataFile)
			}

			th.AssertFileExists(t, result.CellsFile)
			th.AssertFileExists(t, result.MetadataFile)

			var meta Metadata
			if err := json.Unmarshal([]byte(th.MustReadFile(t, result.MetadataFile)), &meta); err != nil {
				t.Fatalf("metadata is not JSON: %v", err)
			}
			if meta.Name != "Jazz Favourites" || meta.Albums != 2 || meta.Rows != 2 {
				t.Errorf("unexpected metadata: %+v", meta)
			}
		})

		t.Run("InvalidPath", func(t *testing.T) {
			_, err := WriteCSVExport(export, filepath.Join(t.TempDir(), "missing", "dir", "base"))
			if err == nil {
				t.Error("expected error writing into a missing directory")
			}
		})
	})

	t.Run("WriteMarkdownExport", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "jazz")

		path, err := WriteMarkdownExport(export, dir)
		if err != nil {
			t.Fatalf("WriteMarkdownExport failed: %v", err)
		}

		th.AssertDirExists(t, dir)
		if path != filepath.Join(dir, "README.md") {
			t.Errorf("unexpected path %s", path)
		}
		if !strings.Contains(th.MustReadFile(t, path), "# Jazz Favourites") {
			t.Error("README missing title")
		}
	})

	t.Run("WriteTextExport", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "titles.txt")

		got, err := WriteTextExport(export, path)
		if err != nil {
			t.Fatalf("WriteTextExport failed: %v", err)
		}
		if got != path {
			t.Errorf("expected %s, got %s", path, got)
		}
		th.AssertFileExists(t, path)
	})

	t.Run("WriteExport", func(t *testing.T) {
		tests := []struct {
			format Format
			files  []string
		}{
			{format: FormatCSV, files: []string{"jazz-favourites_grid.csv", "jazz-favourites_metadata.json"}},
			{format: FormatMarkdown, files: []string{filepath.Join("jazz-favourites", "README.md")}},
			{format: FormatText, files: []string{"jazz-favourites_titles.txt"}},
			{format: FormatJSON, files: []string{"jazz-favourites.json"}},
		}

		for _, tt := range tests {
			t.Run(string(tt.format), func(t *testing.T) {
				dir := t.TempDir()

				files, err := WriteExport(export, tt.format, dir)
				if err != nil {
					t.Fatalf("WriteExport failed: %v", err)
				}
				if len(files) != len(tt.files) {
					t.Fatalf("expected %d files, got %v", len(tt.files), files)
				}
				for i, f := range tt.files {
					if files[i] != filepath.Join(dir, f) {
						t.Errorf("file %d = %s, want %s", i, files[i], filepath.Join(dir, f))
					}
					th.AssertFileExists(t, files[i])
				}
			})
		}
	})

	t.Run("WriteBulkExportManifest", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "manifest.json")
		manifest := Manifest{
			Format: FormatJSON,
			Total:  2, Succeeded: 1, Failed: 1,
			Charts: []ManifestEntry{
				{Name: "a", Success: true, Files: []string{"a.json"}},
				{Name: "b", Error: "boom"},
			},
		}

		if err := WriteBulkExportManifest(manifest, path); err != nil {
			t.Fatalf("WriteBulkExportManifest failed: %v", err)
		}

		content := th.MustReadFile(t, path)
		if !strings.Contains(content, `"succeeded": 1`) || !strings.Contains(content, `"error": "boom"`) {
			t.Errorf("unexpected manifest: %s", content)
		}
	})
}
