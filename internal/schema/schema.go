// Package schema holds the HCL-tagged structs that table definition files
// decode into. These are loader-internal; the rest of the system works with
// the format-agnostic model in the config package.
package schema

import "github.com/hashicorp/hcl/v2"

// Field represents a `field` block inside a table definition.
type Field struct {
	Name    string `hcl:"name,label"`
	ID      string `hcl:"id,optional"`
	Type    string `hcl:"type"`
	Formula string `hcl:"formula,optional"`
}

// Table represents a `table` block from a definition file.
type Table struct {
	Name   string   `hcl:"name,label"`
	Fields []*Field `hcl:"field,block"`
}

// File represents the top-level structure of one definition file.
type File struct {
	Tables []*Table `hcl:"table,block"`
	Body   hcl.Body `hcl:",remain"`
}
