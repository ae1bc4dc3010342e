package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/gridbase/formula/internal/config"
	"github.com/gridbase/formula/internal/ctxlog"
	"github.com/gridbase/formula/internal/fsutil"
	"github.com/gridbase/formula/internal/schema"
)

// Loader parses table definition files into the config model.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a Loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load reads every .hcl file at path (a single file or a directory walked
// recursively) and returns the merged model. Fields without an explicit id
// attribute get a generated one.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading table definitions: %w", err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", path, err)
		}
	}
	logger.Debug("Loading table definitions.", "path", path, "files", len(files))

	model := &config.Model{Tables: make(map[string]*config.Table)}
	for _, file := range files {
		parsed, diags := l.parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("parsing %s: %w", file, diags)
		}

		var fileSchema schema.File
		if diags := gohcl.DecodeBody(parsed.Body, nil, &fileSchema); diags.HasErrors() {
			return nil, fmt.Errorf("decoding %s: %w", file, diags)
		}

		for _, t := range fileSchema.Tables {
			if _, exists := model.Tables[t.Name]; exists {
				return nil, fmt.Errorf("%s: table %q defined more than once", file, t.Name)
			}
			table := translateTable(t)
			if err := table.Validate(); err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			logger.Debug("Loaded table.", "table", table.Name, "fields", len(table.Fields))
			model.Tables[table.Name] = table
		}
	}
	return model, nil
}

// translateTable converts the HCL-specific schema into the agnostic model.
func translateTable(t *schema.Table) *config.Table {
	table := &config.Table{Name: t.Name}
	for _, f := range t.Fields {
		id := f.ID
		if id == "" {
			id = "fld_" + uuid.NewString()
		}
		table.Fields = append(table.Fields, &config.Field{
			ID:      id,
			Name:    f.Name,
			Type:    config.FieldType(f.Type),
			Formula: f.Formula,
		})
	}
	return table
}
