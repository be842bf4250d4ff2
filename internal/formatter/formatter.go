// package formatter provides functions to export a chart grid to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/gridx/internal/models"
	"github.com/desertthunder/gridx/internal/shared"
)

// Format is an export file format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
)

// Formats lists every supported export format.
var Formats = []Format{FormatCSV, FormatMarkdown, FormatText, FormatJSON}

// ParseFormat maps a format name or common alias to a [Format].
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	case "json", "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", shared.ErrUnsupportedFormat, s)
	}
}

// GridExport is a grid snapshot prepared for rendering.
type GridExport struct {
	Name    string
	Rows    int
	Columns int
	Board   models.Board
}

// NewGridExport builds a [GridExport] for board.
func NewGridExport(name string, rows, columns int, board models.Board) *GridExport {
	return &GridExport{Name: name, Rows: rows, Columns: columns, Board: board}
}

// Cells returns the grid items in row-major order.
func (e *GridExport) Cells() []models.Item {
	return e.Board.Grid().Items
}

// Albums returns the grid albums with their zero-based slot positions.
func (e *GridExport) Albums() ([]int, []models.Album) {
	var positions []int
	var albums []models.Album
	for i, it := range e.Cells() {
		if a, ok := it.(models.Album); ok {
			positions = append(positions, i)
			albums = append(albums, a)
		}
	}
	return positions, albums
}

// Slug is a filesystem friendly form of the export name.
func (e *GridExport) Slug() string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(e.Name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "chart"
	}
	return b.String()
}

// ExportToCSV converts the grid to CSV with columns: Position, Row, Column, Kind, Title, Subtitle, PlayCount, Image.
//
// Empty slots are written with only their position.
func ExportToCSV(export *GridExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "Row", "Column", "Kind", "Title", "Subtitle", "PlayCount", "Image"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	columns := max(export.Columns, 1)
	for i, it := range export.Cells() {
		record := []string{strconv.Itoa(i + 1), strconv.Itoa(i/columns + 1), strconv.Itoa(i%columns + 1), "", "", "", "", ""}
		if a, ok := it.(models.Album); ok {
			record[3] = a.Kind().String()
			record[4] = a.Title
			record[5] = a.Subtitle
			if a.PlayCount != nil {
				record[6] = strconv.Itoa(*a.PlayCount)
			}
			record[7] = a.Image()
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts the grid to a Markdown table with one row per grid row and cover image links.
func ExportToMarkdown(export *GridExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", export.Name))

	_, albums := export.Albums()
	buf.WriteString(fmt.Sprintf("**Size**: %d × %d\n", export.Rows, export.Columns))
	buf.WriteString(fmt.Sprintf("**Albums**: %d\n\n", len(albums)))

	columns := max(export.Columns, 1)
	cells := export.Cells()

	buf.WriteString("|")
	for c := range columns {
		buf.WriteString(fmt.Sprintf(" %d |", c+1))
	}
	buf.WriteString("\n|")
	for range columns {
		buf.WriteString(" --- |")
	}
	buf.WriteString("\n")

	for start := 0; start < len(cells); start += columns {
		buf.WriteString("|")
		for _, it := range cells[start:min(start+columns, len(cells))] {
			buf.WriteString(" " + markdownCell(it) + " |")
		}
		buf.WriteString("\n")
	}

	if len(albums) > 0 {
		buf.WriteString("\n## Albums\n\n")
		for i, a := range albums {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, caption(a)))
		}
	}

	return buf.Bytes(), nil
}

func markdownCell(it models.Item) string {
	a, ok := it.(models.Album)
	if !ok {
		return " "
	}

	text := escapeMarkdown(caption(a))
	if img := a.Image(); img != "" {
		return fmt.Sprintf("![%s](%s)<br>%s", escapeMarkdown(a.Title), img, text)
	}
	return text
}

func escapeMarkdown(s string) string {
	return strings.NewReplacer("|", `\|`, "[", `\[`, "]", `\]`).Replace(s)
}

// ExportToText converts the grid to a numbered plain text list of album titles, one per filled slot.
func ExportToText(export *GridExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Chart: %s\n", export.Name))
	buf.WriteString(fmt.Sprintf("Size: %dx%d\n\n", export.Rows, export.Columns))

	positions, albums := export.Albums()
	for i, a := range albums {
		buf.WriteString(fmt.Sprintf("%d. %s\n", positions[i]+1, caption(a)))
	}

	return buf.Bytes(), nil
}

func caption(a models.Album) string {
	if a.Subtitle == "" {
		return a.Title
	}
	return fmt.Sprintf("%s - %s", a.Subtitle, a.Title)
}

// ExportToJSON encodes the whole board, palletes included, as indented JSON.
func ExportToJSON(export *GridExport) ([]byte, error) {
	return shared.MarshalJSON(models.ToBoardRecord(export.Board), true)
}

// Metadata summarizes an export without its items.
type Metadata struct {
	Name       string    `json:"name"`
	Rows       int       `json:"rows"`
	Columns    int       `json:"columns"`
	Albums     int       `json:"albums"`
	ExportedAt time.Time `json:"exported_at"`
}

// ToMetadataJSON generates a JSON representation of the export metadata
func ToMetadataJSON(export *GridExport) ([]byte, error) {
	_, albums := export.Albums()
	return shared.MarshalJSON(Metadata{
		Name:       export.Name,
		Rows:       export.Rows,
		Columns:    export.Columns,
		Albums:     len(albums),
		ExportedAt: time.Now().UTC(),
	}, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	CellsFile    string
	MetadataFile string
}

// WriteCSVExport exports the grid to CSV format with accompanying metadata JSON file.
//
// Defaults to the export slug as the base filename & creates {base}_grid.csv and {base}_metadata.json
func WriteCSVExport(export *GridExport, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = export.Slug()
	}

	csvData, err := ExportToCSV(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	cellsFile := baseFilepath + "_grid.csv"
	if err := os.WriteFile(cellsFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		CellsFile:    cellsFile,
		MetadataFile: metadataFile,
	}, nil
}

// WriteMarkdownExport exports the grid to {outputDir}/README.md, creating the directory.
//
// Directory name defaults to the export slug.
func WriteMarkdownExport(export *GridExport, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = export.Slug()
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	mdData, err := ExportToMarkdown(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return mdFile, nil
}

// WriteTextExport exports the grid titles to plain text.
//
// Defaults to {slug}_titles.txt as the filename.
func WriteTextExport(export *GridExport, path string) (string, error) {
	if path == "" {
		path = export.Slug() + "_titles.txt"
	}

	textData, err := ExportToText(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(path, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return path, nil
}

// WriteJSONExport writes the board dump. Defaults to {slug}.json as the filename.
func WriteJSONExport(export *GridExport, path string) (string, error) {
	if path == "" {
		path = export.Slug() + ".json"
	}

	data, err := ExportToJSON(export)
	if err != nil {
		return "", fmt.Errorf("JSON marshal failed: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("JSON write failed: %w", err)
	}

	return path, nil
}

// WriteExport writes export in format under dir and returns the created files.
func WriteExport(export *GridExport, format Format, dir string) ([]string, error) {
	base := filepath.Join(dir, export.Slug())

	switch format {
	case FormatCSV:
		res, err := WriteCSVExport(export, base)
		if err != nil {
			return nil, err
		}
		return []string{res.CellsFile, res.MetadataFile}, nil
	case FormatMarkdown:
		path, err := WriteMarkdownExport(export, base)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	case FormatText:
		path, err := WriteTextExport(export, base+"_titles.txt")
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	case FormatJSON:
		path, err := WriteJSONExport(export, base+".json")
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	default:
		return nil, fmt.Errorf("%w: %s", shared.ErrUnsupportedFormat, format)
	}
}

// Render returns export in format as bytes, for writing to a stream.
func Render(export *GridExport, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(export)
	case FormatMarkdown:
		return ExportToMarkdown(export)
	case FormatText:
		return ExportToText(export)
	case FormatJSON:
		return ExportToJSON(export)
	default:
		return nil, fmt.Errorf("%w: %s", shared.ErrUnsupportedFormat, format)
	}
}

// ManifestEntry records the outcome for one chart in a bulk export.
type ManifestEntry struct {
	Name    string   `json:"name"`
	Success bool     `json:"success"`
	Files   []string `json:"files,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Manifest summarizes a bulk export.
type Manifest struct {
	Format     Format          `json:"format"`
	ExportedAt time.Time       `json:"exported_at"`
	Total      int             `json:"total"`
	Succeeded  int             `json:"succeeded"`
	Failed     int             `json:"failed"`
	Charts     []ManifestEntry `json:"charts"`
}

// WriteBulkExportManifest writes manifest as indented JSON to path.
func WriteBulkExportManifest(manifest Manifest, path string) error {
	data, err := shared.MarshalJSON(manifest, true)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
