package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTable() *Table {
	return &Table{
		Name: "Invoices",
		Fields: []*Field{
			{ID: "f1", Name: "Price", Type: TypeNumber},
			{ID: "f2", Name: "Total", Type: TypeFormula, Formula: "Price * 2"},
		},
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid table", func(t *testing.T) {
		require.NoError(t, validTable().Validate())
	})

	t.Run("unknown field type", func(t *testing.T) {
		table := validTable()
		table.Fields[0].Type = "hologram"
		err := table.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown type")
	})

	t.Run("duplicate field name", func(t *testing.T) {
		table := validTable()
		table.Fields[1].Name = "Price"
		require.Error(t, table.Validate())
	})

	t.Run("duplicate field id", func(t *testing.T) {
		table := validTable()
		table.Fields[1].ID = "f1"
		require.Error(t, table.Validate())
	})

	t.Run("formula field without formula", func(t *testing.T) {
		table := validTable()
		table.Fields[1].Formula = ""
		err := table.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no formula")
	})

	t.Run("stored field with formula", func(t *testing.T) {
		table := validTable()
		table.Fields[0].Formula = "1 + 1"
		require.Error(t, table.Validate())
	})
}

func TestFieldByName(t *testing.T) {
	table := validTable()
	require.NotNil(t, table.FieldByName("Price"))
	assert.Equal(t, "f1", table.FieldByName("Price").ID)
	assert.Nil(t, table.FieldByName("Ghost"))
}
