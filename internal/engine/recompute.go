package engine

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/gridbase/formula/internal/ctxlog"
	"github.com/gridbase/formula/internal/records"
)

// SetValue stores a value for a non-formula field and recomputes every
// formula field transitively affected by the change, in dependency order.
func (t *Table) SetValue(ctx context.Context, recordID, fieldName string, value cty.Value) error {
	f, err := t.fieldByName(fieldName)
	if err != nil {
		return err
	}
	if f.IsFormula() {
		return fmt.Errorf("table %q: field %q is computed and cannot be set", t.name, fieldName)
	}

	t.storeValue(recordID, f.ID, value)
	return t.recompute(ctx, recordID, t.formulaOnly(t.graph.Affected(f.ID)))
}

// LoadRecord stores every value in the fixture row, then computes the
// record's formula fields from scratch.
func (t *Table) LoadRecord(ctx context.Context, rec records.Record) error {
	for name, raw := range rec.Fields {
		f, err := t.fieldByName(name)
		if err != nil {
			return err
		}
		if f.IsFormula() {
			return fmt.Errorf("table %q: record %q supplies a value for computed field %q", t.name, rec.ID, name)
		}
		val, err := records.ToCty(raw)
		if err != nil {
			return fmt.Errorf("table %q: record %q, field %q: %w", t.name, rec.ID, name, err)
		}
		t.storeValue(rec.ID, f.ID, val)
	}
	return t.Recalculate(ctx, rec.ID)
}

// Recalculate recomputes all formula fields of a record, used after bulk
// loads and at table open.
func (t *Table) Recalculate(ctx context.Context, recordID string) error {
	batch := make([]string, 0, len(t.formulas))
	for id := range t.formulas {
		batch = append(batch, id)
	}
	return t.recompute(ctx, recordID, batch)
}

// Value returns a record's current value for a field. The second return is
// false when the record has no value, including when the field's formula
// failed to evaluate; FieldError reports the failure.
func (t *Table) Value(recordID, fieldName string) (cty.Value, bool) {
	f, err := t.fieldByName(fieldName)
	if err != nil {
		return cty.NilVal, false
	}
	val, ok := t.values[recordID][f.ID]
	return val, ok
}

// FieldError returns the evaluation failure recorded for a record's formula
// field, or nil.
func (t *Table) FieldError(recordID, fieldName string) error {
	f, err := t.fieldByName(fieldName)
	if err != nil {
		return nil
	}
	return t.evalErrs[recordID][f.ID]
}

// EvaluationOrder returns the display names of all formula fields in a safe
// whole-table computation order.
func (t *Table) EvaluationOrder() ([]string, error) {
	batch := make([]string, 0, len(t.formulas))
	for id := range t.formulas {
		batch = append(batch, id)
	}
	order, ok := t.graph.EvaluationOrder(batch)
	if !ok {
		return nil, fmt.Errorf("table %q: dependency graph contains a cycle; refusing to order", t.name)
	}
	return t.namesOf(order), nil
}

// recompute evaluates the given formula fields for one record in dependency
// order. One formula failing does not stop the batch: the failure is
// recorded, the stale value dropped, and anything downstream fails on the
// missing reference in turn.
//
// An unorderable batch means the graph was corrupted despite registration
// checks; that is reported as an error and nothing is evaluated.
func (t *Table) recompute(ctx context.Context, recordID string, batch []string) error {
	if len(batch) == 0 {
		return nil
	}
	logger := ctxlog.FromContext(ctx)

	order, ok := t.graph.EvaluationOrder(batch)
	if !ok {
		logger.Error("Dependency graph cycle slipped past registration; skipping evaluation.",
			"table", t.name, "record", recordID, "batch", t.namesOf(batch))
		return fmt.Errorf("table %q: dependency graph contains a cycle; record %q not recomputed", t.name, recordID)
	}

	for _, fieldID := range order {
		t.evalField(ctx, recordID, fieldID)
	}
	return nil
}

// evalField computes one formula field against the record's current values.
func (t *Table) evalField(ctx context.Context, recordID, fieldID string) {
	parsed := t.formulas[fieldID]

	vars := make(map[string]cty.Value, len(t.values[recordID]))
	for id, val := range t.values[recordID] {
		vars[t.nameOf(id)] = val
	}

	val, err := parsed.Eval(vars)
	if err != nil {
		ctxlog.FromContext(ctx).Warn("Formula evaluation failed.",
			"table", t.name, "record", recordID, "field", t.nameOf(fieldID), "error", err)
		delete(t.values[recordID], fieldID)
		t.storeError(recordID, fieldID, err)
		return
	}
	delete(t.evalErrs[recordID], fieldID)
	t.storeValue(recordID, fieldID, val)
}

func (t *Table) storeValue(recordID, fieldID string, val cty.Value) {
	record, ok := t.values[recordID]
	if !ok {
		record = make(map[string]cty.Value)
		t.values[recordID] = record
	}
	record[fieldID] = val
}

func (t *Table) storeError(recordID, fieldID string, err error) {
	record, ok := t.evalErrs[recordID]
	if !ok {
		record = make(map[string]error)
		t.evalErrs[recordID] = record
	}
	record[fieldID] = err
}

// formulaOnly filters a set of affected field IDs down to formula fields.
func (t *Table) formulaOnly(fieldIDs []string) []string {
	var out []string
	for _, id := range fieldIDs {
		if _, ok := t.formulas[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
