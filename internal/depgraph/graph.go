package depgraph

import "sort"

// Graph tracks, per field ID, which fields a formula reads (dependsOn) and
// which formulas read a field (dependents). The two maps are kept in lockstep
// by every mutating operation, and the dependsOn relation is always acyclic.
//
// The representation is sparse: a field with no edges in either direction has
// no entry at all, and lookups for unknown fields return empty results.
//
// Graph is not safe for concurrent mutation. The owning schema cache must
// serialize Register/Unregister calls; read-only queries may run concurrently
// with each other once a write has completed.
type Graph struct {
	// dependsOn maps a formula field to the set of fields its formula reads.
	dependsOn map[string]map[string]struct{}
	// dependents maps a field to the set of formula fields that read it.
	dependents map[string]map[string]struct{}
}

// New creates an empty dependency graph.
func New() *Graph {
	return &Graph{
		dependsOn:  make(map[string]map[string]struct{}),
		dependents: make(map[string]map[string]struct{}),
	}
}

// Register records that fieldID's formula reads exactly the fields in
// dependsOn, replacing whatever edge set a previous registration installed.
// Duplicate entries in dependsOn are ignored.
//
// If the new edges would introduce a circular reference (including a field
// referencing itself), Register returns a *CycleError and leaves the graph
// exactly as it was: the check runs to completion before any mutation.
func (g *Graph) Register(fieldID string, dependsOn []string) error {
	deps := make(map[string]struct{}, len(dependsOn))
	for _, dep := range dependsOn {
		if dep == fieldID {
			return &CycleError{Field: fieldID, Path: []string{fieldID, fieldID}}
		}
		deps[dep] = struct{}{}
	}

	// Walk what each new dependency itself transitively reads. If fieldID is
	// reachable, the new edge would close a loop.
	for _, dep := range sortedIDs(deps) {
		if path := g.pathTo(dep, fieldID); path != nil {
			return &CycleError{Field: fieldID, Path: append([]string{fieldID}, path...)}
		}
	}

	// Safe to commit: drop the edges owned by the previous registration, then
	// install the new set.
	for old := range g.dependsOn[fieldID] {
		g.removeDependent(old, fieldID)
	}
	if len(deps) == 0 {
		delete(g.dependsOn, fieldID)
	} else {
		g.dependsOn[fieldID] = deps
	}
	for dep := range deps {
		set, ok := g.dependents[dep]
		if !ok {
			set = make(map[string]struct{})
			g.dependents[dep] = set
		}
		set[fieldID] = struct{}{}
	}
	return nil
}

// Unregister removes fieldID from the graph entirely: the edges its own
// formula owned, and any edge another formula held onto it. Unregistering an
// unknown field is a no-op.
func (g *Graph) Unregister(fieldID string) {
	for old := range g.dependsOn[fieldID] {
		g.removeDependent(old, fieldID)
	}
	delete(g.dependsOn, fieldID)

	for reader := range g.dependents[fieldID] {
		delete(g.dependsOn[reader], fieldID)
		if len(g.dependsOn[reader]) == 0 {
			delete(g.dependsOn, reader)
		}
	}
	delete(g.dependents, fieldID)
}

// Dependencies returns the sorted set of fields fieldID's formula reads, or
// an empty slice for an unknown field. The result is a copy.
func (g *Graph) Dependencies(fieldID string) []string {
	return sortedIDs(g.dependsOn[fieldID])
}

// Dependents returns the sorted set of formula fields that read fieldID, or
// an empty slice for an unknown field. The result is a copy.
func (g *Graph) Dependents(fieldID string) []string {
	return sortedIDs(g.dependents[fieldID])
}

// removeDependent deletes reader from dep's dependent set, pruning the entry
// once it empties so absent and empty stay indistinguishable.
func (g *Graph) removeDependent(dep, reader string) {
	delete(g.dependents[dep], reader)
	if len(g.dependents[dep]) == 0 {
		delete(g.dependents, dep)
	}
}

// pathTo returns a chain of dependsOn edges from -> ... -> to, or nil if to
// is unreachable. Depth-first, each field visited at most once.
func (g *Graph) pathTo(from, to string) []string {
	seen := make(map[string]bool)

	var walk func(cur string) []string
	walk = func(cur string) []string {
		if cur == to {
			return []string{cur}
		}
		seen[cur] = true
		for _, next := range sortedIDs(g.dependsOn[cur]) {
			if seen[next] {
				continue
			}
			if tail := walk(next); tail != nil {
				return append([]string{cur}, tail...)
			}
		}
		return nil
	}
	return walk(from)
}

// sortedIDs flattens a set of field IDs into a sorted slice. Sorting keeps
// traversal order, and with it error messages and tie-breaks, reproducible.
func sortedIDs(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
