package depgraph

// Affected returns every field transitively impacted by a change to
// changedFieldID, in breadth-first discovery order. The changed field itself
// is not part of its own affected set.
//
// Fan-in is expected (a diamond of formulas over one source field), so each
// field is visited at most once.
func (g *Graph) Affected(changedFieldID string) []string {
	seen := map[string]bool{changedFieldID: true}
	queue := []string{changedFieldID}
	var affected []string

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, reader := range sortedIDs(g.dependents[current]) {
			if seen[reader] {
				continue
			}
			seen[reader] = true
			affected = append(affected, reader)
			queue = append(queue, reader)
		}
	}
	return affected
}

// EvaluationOrder linearizes the given batch of formula fields so that every
// field appears after everything it depends on within the batch. Edges to
// fields outside the batch are ignored. Fields with no ordering relationship
// come out in sorted-ID order, but only the dependency constraints are
// contractual.
//
// The second return is false when the batch cannot be ordered. Register
// rejects every cycle up front, so a false here means the graph was corrupted
// elsewhere; callers must skip evaluation and report it, never compute a
// partial order.
func (g *Graph) EvaluationOrder(fieldIDs []string) ([]string, bool) {
	batch := make(map[string]struct{}, len(fieldIDs))
	for _, id := range fieldIDs {
		batch[id] = struct{}{}
	}

	// Kahn's algorithm restricted to the batch: in-degrees count only edges
	// whose source is also being evaluated.
	inDegree := make(map[string]int, len(batch))
	for id := range batch {
		n := 0
		for dep := range g.dependsOn[id] {
			if _, ok := batch[dep]; ok {
				n++
			}
		}
		inDegree[id] = n
	}

	var queue []string
	for _, id := range sortedIDs(batch) {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]string, 0, len(batch))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		for _, reader := range sortedIDs(g.dependents[id]) {
			if _, ok := batch[reader]; !ok {
				continue
			}
			inDegree[reader]--
			if inDegree[reader] == 0 {
				queue = append(queue, reader)
			}
		}
	}

	if len(order) != len(batch) {
		return nil, false
	}
	return order, true
}
