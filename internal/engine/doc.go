// Package engine owns the per-table formula runtime. A Table tracks field
// metadata, the formula dependency graph, and current record values; it is
// the single writer of its graph.
//
// Schema changes (adding a field, editing a formula, deleting a field) go
// through the Table so the graph always reflects the last registered
// dependency set of every formula. Value changes trigger recomputation of
// exactly the transitively affected formula fields, in dependency order.
package engine
