package tagging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tagsync/pkg/errors"
	"github.com/agentstation/tagsync/pkg/tagging"
)

func TestNewColumnMapping(t *testing.T) {
	t.Run("valid mapping keeps order and trims", func(t *testing.T) {
		m, err := tagging.NewColumnMapping([]tagging.MappingEntry{
			{Tag: " security_zone ", Column: "Security_Zone_Level"},
			{Tag: "env", Column: "Env"},
			{Tag: "environment", Column: "Env"},
		})
		require.NoError(t, err)
		assert.Equal(t, 3, m.Len())
		assert.Equal(t, "security_zone", m.Entries()[0].Tag)
		assert.Equal(t, []string{"Security_Zone_Level", "Env"}, m.Columns())
	})

	tests := []struct {
		name    string
		entries []tagging.MappingEntry
	}{
		{"empty", nil},
		{"blank tag", []tagging.MappingEntry{{Tag: "", Column: "Env"}}},
		{"blank column", []tagging.MappingEntry{{Tag: "env", Column: " "}}},
		{"duplicate tag", []tagging.MappingEntry{{Tag: "env", Column: "Env"}, {Tag: "env", Column: "Environment"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tagging.NewColumnMapping(tt.entries)
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestColumnMapping_MissingColumns(t *testing.T) {
	m, err := tagging.NewColumnMapping([]tagging.MappingEntry{
		{Tag: "site", Column: "Site"},
		{Tag: "security_zone", Column: "Security"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Security"}, m.MissingColumns([]string{"Name", "Site", "Security_Zone_Level"}))
	assert.Empty(t, m.MissingColumns([]string{"Site", "Security"}))
}

func TestMapper_Map(t *testing.T) {
	m, err := tagging.NewColumnMapping([]tagging.MappingEntry{
		{Tag: "name", Column: "Name"},
		{Tag: "critical", Column: "Critical"},
		{Tag: "env", Column: "Env"},
	})
	require.NoError(t, err)
	v := tagging.NewValidator("Name", nil)

	t.Run("defaults", func(t *testing.T) {
		mapper := tagging.NewMapper(m, v)
		entry, dropped := mapper.Map(tagging.Record{Index: 3, Cells: map[string]string{
			"Name": "WEB01", "Critical": " Yes ", "Env": "None",
		}}, "WEB01")

		assert.Equal(t, 3, entry.Row)
		assert.Equal(t, "WEB01", entry.Identity)
		assert.Equal(t, tagging.Selector("type(host),entityName.startsWith(WEB01)"), entry.Selector)
		assert.Equal(t, []tagging.Tag{
			{Key: "[API]name", Value: "WEB01"},
			{Key: "[API]critical", Value: "Yes"},
		}, entry.Tags)
		assert.Equal(t, []string{"[API]name", "[API]critical", "[API]env"}, entry.Keys)
		assert.Equal(t, entry.Keys, entry.ManagedKeys())

		require.Len(t, dropped, 1)
		assert.Equal(t, tagging.DroppedTag{
			Row: 3, Selector: entry.Selector, Key: "[API]env", Column: "Env", Reason: tagging.ReasonNullValue,
		}, dropped[0])
	})

	t.Run("custom prefix and entity type", func(t *testing.T) {
		mapper := tagging.NewMapper(m, v, tagging.WithTagPrefix("cmdb."), tagging.WithEntityType("PROCESS_GROUP"))
		entry, _ := mapper.Map(tagging.Record{Cells: map[string]string{"Name": "app"}}, "app")

		assert.Equal(t, tagging.Selector("type(PROCESS_GROUP),entityName.startsWith(app)"), entry.Selector)
		assert.Equal(t, []string{"cmdb.name"}, tagging.Keys(entry.Tags))
	})
}
