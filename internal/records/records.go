// Package records loads record fixtures: YAML files holding rows of stored
// field values, keyed by field display name. The engine converts these into
// its value scope before recomputing formula fields.
package records

import (
	"fmt"
	"os"

	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// Record is one row: a record ID plus its stored (non-formula) field values.
type Record struct {
	ID     string         `yaml:"id"`
	Fields map[string]any `yaml:"fields"`
}

// Load reads a YAML file containing a list of records.
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}

	var recs []Record
	if err := yaml.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parsing records YAML: %w", err)
	}
	for i, rec := range recs {
		if rec.ID == "" {
			return nil, fmt.Errorf("record %d has no id", i)
		}
	}
	return recs, nil
}

// ToCty converts a decoded YAML scalar into the value system used for
// formula evaluation. Nulls represent blank cells.
func ToCty(v any) (cty.Value, error) {
	switch val := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case bool:
		return cty.BoolVal(val), nil
	case string:
		return cty.StringVal(val), nil
	case int:
		return cty.NumberIntVal(int64(val)), nil
	case int64:
		return cty.NumberIntVal(val), nil
	case uint64:
		return cty.NumberUIntVal(val), nil
	case float64:
		return cty.NumberFloatVal(val), nil
	default:
		return cty.NilVal, fmt.Errorf("unsupported value type %T", v)
	}
}
