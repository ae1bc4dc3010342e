package records

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestLoad(t *testing.T) {
	t.Run("valid fixture", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "records.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
- id: rec1
  fields:
    Price: 100
    Name: Widget
    Active: true
- id: rec2
  fields:
    Price: 12.5
`), 0o644))

		recs, err := Load(path)
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, "rec1", recs[0].ID)
		assert.Equal(t, 100, recs[0].Fields["Price"])
		assert.Equal(t, "Widget", recs[0].Fields["Name"])
	})

	t.Run("record without id", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "records.yaml")
		require.NoError(t, os.WriteFile(path, []byte("- fields:\n    Price: 1\n"), 0o644))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no id")
	})

	t.Run("malformed YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "records.yaml")
		require.NoError(t, os.WriteFile(path, []byte("{{nope"), 0o644))

		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}

func TestToCty(t *testing.T) {
	t.Run("scalars", func(t *testing.T) {
		val, err := ToCty(true)
		require.NoError(t, err)
		assert.Equal(t, cty.True, val)

		val, err = ToCty("hi")
		require.NoError(t, err)
		assert.Equal(t, cty.StringVal("hi"), val)

		val, err = ToCty(42)
		require.NoError(t, err)
		assert.True(t, val.RawEquals(cty.NumberIntVal(42)))

		val, err = ToCty(2.5)
		require.NoError(t, err)
		assert.True(t, val.RawEquals(cty.NumberFloatVal(2.5)))
	})

	t.Run("nil becomes null", func(t *testing.T) {
		val, err := ToCty(nil)
		require.NoError(t, err)
		assert.True(t, val.IsNull())
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := ToCty([]any{1, 2})
		require.Error(t, err)
	})
}
