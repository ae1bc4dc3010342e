package formula

import (
	"math"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Functions returns the formula function table. The set is closed: adding a
// function means adding an entry here, never evaluating user-supplied code.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"ABS":     stdlib.AbsoluteFunc,
		"AND":     stdlib.AndFunc,
		"CEILING": stdlib.CeilFunc,
		"CONCAT":  concatFunc,
		"FLOOR":   stdlib.FloorFunc,
		"IF":      ifFunc,
		"LEN":     stdlib.StrlenFunc,
		"LOWER":   stdlib.LowerFunc,
		"MAX":     stdlib.MaxFunc,
		"MIN":     stdlib.MinFunc,
		"NOT":     stdlib.NotFunc,
		"OR":      stdlib.OrFunc,
		"ROUND":   roundFunc,
		"TRIM":    stdlib.TrimSpaceFunc,
		"UPPER":   stdlib.UpperFunc,
	}
}

// concatFunc joins any number of strings. Null arguments read as empty, the
// usual spreadsheet convention for blank cells.
var concatFunc = function.New(&function.Spec{
	VarParam: &function.Parameter{
		Name:      "parts",
		Type:      cty.String,
		AllowNull: true,
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		var sb strings.Builder
		for _, arg := range args {
			if arg.IsNull() {
				continue
			}
			sb.WriteString(arg.AsString())
		}
		return cty.StringVal(sb.String()), nil
	},
})

// ifFunc selects between two values on a boolean condition.
var ifFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "condition", Type: cty.Bool},
		{Name: "when_true", Type: cty.DynamicPseudoType, AllowNull: true},
		{Name: "when_false", Type: cty.DynamicPseudoType, AllowNull: true},
	},
	Type: func(args []cty.Value) (cty.Type, error) {
		if args[1].Type().Equals(args[2].Type()) {
			return args[1].Type(), nil
		}
		return cty.DynamicPseudoType, nil
	},
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		if args[0].True() {
			return args[1], nil
		}
		return args[2], nil
	},
})

// roundFunc rounds to the nearest integer, halves away from zero.
var roundFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "number", Type: cty.Number},
	},
	Type: function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		f, _ := args[0].AsBigFloat().Float64()
		return cty.NumberFloatVal(math.Round(f)), nil
	},
})
