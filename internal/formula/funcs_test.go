package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// evalString is a helper that parses and evaluates a formula in one step.
func evalString(t *testing.T, src string, vars map[string]cty.Value) cty.Value {
	t.Helper()
	f, err := Parse(src, "test")
	require.NoError(t, err)
	val, err := f.Eval(vars)
	require.NoError(t, err)
	return val
}

func TestStringFunctions(t *testing.T) {
	t.Run("UPPER and LOWER", func(t *testing.T) {
		assert.Equal(t, cty.StringVal("WIDGET"),
			evalString(t, `UPPER(Name)`, map[string]cty.Value{"Name": cty.StringVal("Widget")}))
		assert.Equal(t, cty.StringVal("widget"),
			evalString(t, `LOWER(Name)`, map[string]cty.Value{"Name": cty.StringVal("Widget")}))
	})

	t.Run("CONCAT joins parts", func(t *testing.T) {
		val := evalString(t, `CONCAT(First, " ", Last)`, map[string]cty.Value{
			"First": cty.StringVal("Ada"),
			"Last":  cty.StringVal("Lovelace"),
		})
		assert.Equal(t, cty.StringVal("Ada Lovelace"), val)
	})

	t.Run("CONCAT treats null as blank", func(t *testing.T) {
		val := evalString(t, `CONCAT(First, Last)`, map[string]cty.Value{
			"First": cty.StringVal("Ada"),
			"Last":  cty.NullVal(cty.String),
		})
		assert.Equal(t, cty.StringVal("Ada"), val)
	})

	t.Run("TRIM and LEN", func(t *testing.T) {
		vars := map[string]cty.Value{"Name": cty.StringVal("  Ada  ")}
		assert.Equal(t, cty.StringVal("Ada"), evalString(t, `TRIM(Name)`, vars))
		assert.True(t, evalString(t, `LEN(TRIM(Name))`, vars).RawEquals(cty.NumberIntVal(3)))
	})
}

func TestNumberFunctions(t *testing.T) {
	vars := map[string]cty.Value{
		"Price": cty.NumberFloatVal(-2.5),
		"Qty":   cty.NumberIntVal(3),
	}

	t.Run("ABS", func(t *testing.T) {
		assert.True(t, evalString(t, `ABS(Price)`, vars).RawEquals(cty.NumberFloatVal(2.5)))
	})

	t.Run("ROUND halves away from zero", func(t *testing.T) {
		assert.True(t, evalString(t, `ROUND(ABS(Price))`, vars).RawEquals(cty.NumberIntVal(3)))
	})

	t.Run("CEILING and FLOOR", func(t *testing.T) {
		assert.True(t, evalString(t, `CEILING(ABS(Price))`, vars).RawEquals(cty.NumberIntVal(3)))
		assert.True(t, evalString(t, `FLOOR(ABS(Price))`, vars).RawEquals(cty.NumberIntVal(2)))
	})

	t.Run("MAX and MIN", func(t *testing.T) {
		assert.True(t, evalString(t, `MAX(Qty, 10)`, vars).RawEquals(cty.NumberIntVal(10)))
		assert.True(t, evalString(t, `MIN(Qty, 10)`, vars).RawEquals(cty.NumberIntVal(3)))
	})
}

func TestLogicFunctions(t *testing.T) {
	vars := map[string]cty.Value{
		"Active": cty.True,
		"Paid":   cty.False,
	}

	t.Run("IF selects a branch", func(t *testing.T) {
		assert.Equal(t, cty.StringVal("yes"),
			evalString(t, `IF(Active, "yes", "no")`, vars))
		assert.Equal(t, cty.StringVal("no"),
			evalString(t, `IF(Paid, "yes", "no")`, vars))
	})

	t.Run("AND OR NOT", func(t *testing.T) {
		assert.Equal(t, cty.False, evalString(t, `AND(Active, Paid)`, vars))
		assert.Equal(t, cty.True, evalString(t, `OR(Active, Paid)`, vars))
		assert.Equal(t, cty.True, evalString(t, `NOT(Paid)`, vars))
	})
}
