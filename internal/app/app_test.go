package app

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const invoicesDef = `
table "Invoices" {
  field "Price" {
    type = "number"
  }
  field "Qty" {
    type = "number"
  }
  field "Subtotal" {
    type    = "formula"
    formula = "Price * Qty"
  }
  field "Total" {
    type    = "formula"
    formula = "Subtotal + Subtotal / 5"
  }
}
`

// newTestApp writes the given definitions to disk and builds an App whose
// output is captured in the returned buffer.
func newTestApp(t *testing.T, def, recordsYAML string) (*App, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	tablesPath := filepath.Join(dir, "tables.hcl")
	require.NoError(t, os.WriteFile(tablesPath, []byte(def), 0o644))

	recordsPath := ""
	if recordsYAML != "" {
		recordsPath = filepath.Join(dir, "records.yaml")
		require.NoError(t, os.WriteFile(recordsPath, []byte(recordsYAML), 0o644))
	}

	cfg, err := NewConfig(Config{
		TablesPath:  tablesPath,
		RecordsPath: recordsPath,
		LogLevel:    "error",
		LogFormat:   "text",
	})
	require.NoError(t, err)

	var out bytes.Buffer
	return NewApp(&out, io.Discard, cfg), &out
}

func TestNewConfig(t *testing.T) {
	_, err := NewConfig(Config{})
	require.Error(t, err)
}

func TestCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("valid definitions", func(t *testing.T) {
		a, out := newTestApp(t, invoicesDef, "")
		require.NoError(t, a.Check(ctx))
		assert.Contains(t, out.String(), "Invoices: ok")
	})

	t.Run("circular reference is reported", func(t *testing.T) {
		a, out := newTestApp(t, `
table "Loop" {
  field "A" {
    type    = "formula"
    formula = "B + 1"
  }
  field "B" {
    type    = "formula"
    formula = "A + 1"
  }
}
`, "")
		err := a.Check(ctx)
		require.Error(t, err)
		assert.Contains(t, out.String(), "circular reference")
	})
}

func TestOrder(t *testing.T) {
	a, out := newTestApp(t, invoicesDef, "")
	require.NoError(t, a.Order(context.Background(), ""))

	output := out.String()
	assert.Contains(t, output, "Subtotal")
	assert.Contains(t, output, "Total")
	assert.Less(t, bytes.Index(out.Bytes(), []byte("Subtotal")), bytes.Index(out.Bytes(), []byte("Total")))
}

func TestDeps(t *testing.T) {
	a, out := newTestApp(t, invoicesDef, "")
	require.NoError(t, a.Deps(context.Background(), "", "Price"))

	output := out.String()
	assert.Contains(t, output, "read by:    Subtotal")
	assert.Contains(t, output, "recomputes: Subtotal, Total")
}

func TestEval(t *testing.T) {
	ctx := context.Background()

	t.Run("computes rows", func(t *testing.T) {
		a, out := newTestApp(t, invoicesDef, `
- id: rec1
  fields:
    Price: 100
    Qty: 2
`)
		require.NoError(t, a.Eval(ctx, ""))

		output := out.String()
		assert.Contains(t, output, "rec1:")
		assert.Contains(t, output, "Subtotal = 200")
		assert.Contains(t, output, "Total = 240")
	})

	t.Run("requires a records file", func(t *testing.T) {
		a, _ := newTestApp(t, invoicesDef, "")
		require.Error(t, a.Eval(ctx, ""))
	})

	t.Run("unknown table name", func(t *testing.T) {
		a, _ := newTestApp(t, invoicesDef, "- id: r\n  fields: {}\n")
		require.Error(t, a.Eval(ctx, "Ghost"))
	})
}
