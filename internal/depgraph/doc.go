// Package depgraph maintains the directed dependency graph between formula
// fields and the fields their formulas read. It owns circular-reference
// detection, impact analysis ("what must be recomputed when a field changes"),
// and safe evaluation ordering for a batch of formula fields.
//
// One Graph instance belongs to one table and lives as long as the table's
// schema cache. The package is a pure in-memory data structure: no I/O, no
// logging, no locking. Callers serialize writes externally.
package depgraph
