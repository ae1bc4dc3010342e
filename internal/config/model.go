package config

import "fmt"

// FieldType names the storage or computation kind of a field.
type FieldType string

const (
	TypeText     FieldType = "text"
	TypeNumber   FieldType = "number"
	TypeCheckbox FieldType = "checkbox"
	TypeFormula  FieldType = "formula"
)

// fieldTypes is the closed set of valid field types.
var fieldTypes = map[FieldType]bool{
	TypeText:     true,
	TypeNumber:   true,
	TypeCheckbox: true,
	TypeFormula:  true,
}

// Model is the unified representation of all loaded table definitions.
type Model struct {
	Tables map[string]*Table
}

// Table is the format-agnostic representation of a `table` block.
type Table struct {
	Name   string
	Fields []*Field
}

// Field is the format-agnostic representation of a `field` block. ID is the
// opaque identifier the dependency graph is keyed by; Name is what formulas
// reference, so renaming a field never invalidates stored edges.
type Field struct {
	ID      string
	Name    string
	Type    FieldType
	Formula string
}

// IsFormula reports whether the field's value is computed rather than stored.
func (f *Field) IsFormula() bool {
	return f.Type == TypeFormula
}

// Validate checks structural rules the loader cannot express in schema tags:
// known types, unique names and IDs, and formula text only on formula fields.
func (t *Table) Validate() error {
	names := make(map[string]bool, len(t.Fields))
	ids := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		if !fieldTypes[f.Type] {
			return fmt.Errorf("table %q: field %q has unknown type %q", t.Name, f.Name, f.Type)
		}
		if names[f.Name] {
			return fmt.Errorf("table %q: duplicate field name %q", t.Name, f.Name)
		}
		names[f.Name] = true
		if ids[f.ID] {
			return fmt.Errorf("table %q: duplicate field id %q", t.Name, f.ID)
		}
		ids[f.ID] = true

		if f.IsFormula() && f.Formula == "" {
			return fmt.Errorf("table %q: formula field %q has no formula", t.Name, f.Name)
		}
		if !f.IsFormula() && f.Formula != "" {
			return fmt.Errorf("table %q: field %q has a formula but type %q", t.Name, f.Name, f.Type)
		}
	}
	return nil
}

// FieldByName returns the field with the given display name, or nil.
func (t *Table) FieldByName(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}
