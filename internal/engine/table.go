package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/gridbase/formula/internal/config"
	"github.com/gridbase/formula/internal/ctxlog"
	"github.com/gridbase/formula/internal/depgraph"
	"github.com/gridbase/formula/internal/formula"
)

// Table is the runtime for one table's formula engine. It is not safe for
// concurrent use; the caller serializes access the same way it serializes
// schema changes in general.
type Table struct {
	name     string
	fields   map[string]*config.Field    // by field ID
	idByName map[string]string           // display name -> field ID
	formulas map[string]*formula.Formula // parsed, formula fields only, by ID
	graph    *depgraph.Graph

	values   map[string]map[string]cty.Value // recordID -> fieldID -> value
	evalErrs map[string]map[string]error     // recordID -> fieldID -> last eval failure
}

// NewTable builds the runtime for a validated table definition, parsing and
// registering every formula field. A formula that references an unknown
// field or closes a circular reference fails construction.
func NewTable(ctx context.Context, cfg *config.Table) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	t := &Table{
		name:     cfg.Name,
		fields:   make(map[string]*config.Field, len(cfg.Fields)),
		idByName: make(map[string]string, len(cfg.Fields)),
		formulas: make(map[string]*formula.Formula),
		graph:    depgraph.New(),
		values:   make(map[string]map[string]cty.Value),
		evalErrs: make(map[string]map[string]error),
	}

	// Two passes: formulas may reference fields defined later in the file,
	// so every name must be indexed before the first registration.
	for _, f := range cfg.Fields {
		t.fields[f.ID] = f
		t.idByName[f.Name] = f.ID
	}
	for _, f := range cfg.Fields {
		if !f.IsFormula() {
			continue
		}
		if err := t.registerFormula(ctx, f, f.Formula); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Name returns the table's display name.
func (t *Table) Name() string {
	return t.name
}

// AddField adds a field to a live table. Formula fields go through the same
// validation as at construction time.
func (t *Table) AddField(ctx context.Context, f *config.Field) error {
	if _, exists := t.idByName[f.Name]; exists {
		return fmt.Errorf("table %q: duplicate field name %q", t.name, f.Name)
	}
	if _, exists := t.fields[f.ID]; exists {
		return fmt.Errorf("table %q: duplicate field id %q", t.name, f.ID)
	}

	t.fields[f.ID] = f
	t.idByName[f.Name] = f.ID
	if f.IsFormula() {
		if err := t.registerFormula(ctx, f, f.Formula); err != nil {
			delete(t.fields, f.ID)
			delete(t.idByName, f.Name)
			return err
		}
	}
	ctxlog.FromContext(ctx).Debug("Field added.", "table", t.name, "field", f.Name)
	return nil
}

// UpdateFormula replaces the formula of an existing formula field. On any
// failure, including a circular reference, the previous formula and its
// graph edges stay in effect.
func (t *Table) UpdateFormula(ctx context.Context, fieldName, src string) error {
	f, err := t.fieldByName(fieldName)
	if err != nil {
		return err
	}
	if !f.IsFormula() {
		return fmt.Errorf("table %q: field %q is not a formula field", t.name, fieldName)
	}
	if err := t.registerFormula(ctx, f, src); err != nil {
		return err
	}
	f.Formula = src
	ctxlog.FromContext(ctx).Debug("Formula updated.", "table", t.name, "field", fieldName)
	return nil
}

// DeleteField removes a field and withdraws it from the graph. Formulas that
// still reference the deleted field by name keep their last registered edges
// to other fields and fail evaluation until they are edited.
func (t *Table) DeleteField(ctx context.Context, fieldName string) error {
	f, err := t.fieldByName(fieldName)
	if err != nil {
		return err
	}

	t.graph.Unregister(f.ID)
	delete(t.formulas, f.ID)
	delete(t.fields, f.ID)
	delete(t.idByName, f.Name)
	for _, record := range t.values {
		delete(record, f.ID)
	}
	ctxlog.FromContext(ctx).Debug("Field deleted.", "table", t.name, "field", fieldName)
	return nil
}

// Dependencies returns the display names of the fields a formula field reads.
func (t *Table) Dependencies(fieldName string) ([]string, error) {
	f, err := t.fieldByName(fieldName)
	if err != nil {
		return nil, err
	}
	return t.namesOf(t.graph.Dependencies(f.ID)), nil
}

// Dependents returns the display names of the formula fields that read the
// given field directly.
func (t *Table) Dependents(fieldName string) ([]string, error) {
	f, err := t.fieldByName(fieldName)
	if err != nil {
		return nil, err
	}
	return t.namesOf(t.graph.Dependents(f.ID)), nil
}

// Affected returns the display names of every field transitively impacted by
// a change to the given field, in recomputation discovery order.
func (t *Table) Affected(fieldName string) ([]string, error) {
	f, err := t.fieldByName(fieldName)
	if err != nil {
		return nil, err
	}
	return t.namesOf(t.graph.Affected(f.ID)), nil
}

// registerFormula parses src, resolves its references to field IDs, and
// registers the result. The graph's atomicity guarantee carries through: on
// any error the previous registration is untouched.
func (t *Table) registerFormula(ctx context.Context, f *config.Field, src string) error {
	parsed, err := formula.Parse(src, f.Name)
	if err != nil {
		return fmt.Errorf("table %q, field %q: %w", t.name, f.Name, err)
	}

	refs := parsed.References()
	depIDs := make([]string, 0, len(refs))
	for _, ref := range refs {
		id, ok := t.idByName[ref]
		if !ok {
			return fmt.Errorf("table %q, field %q: formula references unknown field %q", t.name, f.Name, ref)
		}
		depIDs = append(depIDs, id)
	}

	if err := t.graph.Register(f.ID, depIDs); err != nil {
		var cycleErr *depgraph.CycleError
		if errors.As(err, &cycleErr) {
			err = t.renameCycle(cycleErr)
		}
		return fmt.Errorf("table %q, field %q: %w", t.name, f.Name, err)
	}
	t.formulas[f.ID] = parsed
	return nil
}

// renameCycle maps a cycle path of field IDs back to display names, which is
// what the person editing the formula can act on.
func (t *Table) renameCycle(err *depgraph.CycleError) *depgraph.CycleError {
	return &depgraph.CycleError{
		Field: t.nameOf(err.Field),
		Path:  t.namesOf(err.Path),
	}
}

func (t *Table) fieldByName(name string) (*config.Field, error) {
	id, ok := t.idByName[name]
	if !ok {
		return nil, fmt.Errorf("table %q: no field named %q", t.name, name)
	}
	return t.fields[id], nil
}

func (t *Table) nameOf(fieldID string) string {
	if f, ok := t.fields[fieldID]; ok {
		return f.Name
	}
	return fieldID
}

func (t *Table) namesOf(fieldIDs []string) []string {
	names := make([]string, len(fieldIDs))
	for i, id := range fieldIDs {
		names[i] = t.nameOf(id)
	}
	return names
}
