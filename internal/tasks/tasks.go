package tasks

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/gridx/internal/models"
	"github.com/desertthunder/gridx/internal/shared"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema/import.schema.json
var importSchema []byte

// ImportResult contains the albums decoded from an import file.
type ImportResult struct {
	Pallete string         // Target pallete name
	Albums  []models.Album // Albums in file order, duplicates removed
	Total   int            // Records in the file
	Skipped int            // Duplicate or mismatched records
}

// importDocument is the decoded form of an import file.
type importDocument struct {
	Albums []models.ItemRecord `json:"albums"`
}

// Importer reads album lists from JSON or YAML files for loading into a pallete.
type Importer struct {
	logger *log.Logger
	schema *gojsonschema.Schema
}

// NewImporter creates an Importer with the embedded import schema compiled.
func NewImporter(logger *log.Logger) (*Importer, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(importSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile import schema: %w", err)
	}

	return &Importer{logger: shared.WithLogger(logger, "component", "importer"), schema: schema}, nil
}

// Import reads path and decodes it by extension: .yaml and .yml as YAML, anything else as JSON.
func (im *Importer) Import(ctx context.Context, progress chan<- ProgressUpdate, path, pallete string) (*ImportResult, error) {
	sendProgress(progress, readFileUpdate(path))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}

	format := "json"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
	}

	return im.Decode(ctx, progress, data, format, pallete)
}

// Decode validates data against the import schema and converts its records to albums of the pallete's kind.
//
// Records whose kind does not match the pallete, and records repeating an earlier title and subtitle, are
// skipped. Records without an id get a generated one.
func (im *Importer) Decode(ctx context.Context, progress chan<- ProgressUpdate, data []byte, format, pallete string) (*ImportResult, error) {
	kind, err := palleteKind(pallete)
	if err != nil {
		return nil, err
	}

	if format == "yaml" {
		if data, err = yamlToJSON(data); err != nil {
			return nil, err
		}
	} else if format != "json" {
		return nil, fmt.Errorf("%w: %s", shared.ErrUnsupportedFormat, format)
	}

	result, err := im.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidSchema, err)
	}
	if !result.Valid() {
		var problems []string
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return nil, fmt.Errorf("%w: %s", shared.ErrInvalidSchema, strings.Join(problems, "; "))
	}

	var doc importDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode import file: %w", err)
	}
	sendProgress(progress, validateUpdate(len(doc.Albums)))

	out := &ImportResult{Pallete: pallete, Total: len(doc.Albums)}
	seen := map[string]bool{}
	for i, rec := range doc.Albums {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		key := shared.NormalizeAlbumKey(rec.Title, rec.Subtitle)
		if seen[key] {
			out.Skipped++
			im.logger.Debug("skipping duplicate album", "title", rec.Title, "subtitle", rec.Subtitle)
			continue
		}
		if rec.Kind != "" && rec.Kind != kind.String() {
			out.Skipped++
			im.logger.Warn("skipping album of another kind", "title", rec.Title, "kind", rec.Kind, "pallete", pallete)
			continue
		}
		seen[key] = true

		rec.Kind = kind.String()
		if rec.ID == "" {
			rec.ID = kind.String() + "-" + shared.GenerateID()
		}

		it, err := models.FromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		out.Albums = append(out.Albums, it.(models.Album))
		sendProgress(progress, convertUpdate(i+1, len(doc.Albums), rec.Title))
	}

	sendProgress(progress, loadUpdate(out))
	im.logger.Info("import decoded", "pallete", pallete, "albums", len(out.Albums), "skipped", out.Skipped)
	return out, nil
}

func palleteKind(pallete string) (models.Kind, error) {
	switch pallete {
	case models.LastFMContainer:
		return models.KindLastFM, nil
	case models.CustomContainer:
		return models.KindCustom, nil
	default:
		return models.KindPlaceholder, fmt.Errorf("%w: unknown pallete %q", shared.ErrInvalidInput, pallete)
	}
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidSchema, err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidSchema, err)
	}
	return out, nil
}
