package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counts struct {
	RowsRead int    `json:"rows_read"`
	Secret   string `json:"-"`
	Plain    bool
	hidden   int
}

func TestStructToTableData(t *testing.T) {
	d, ok := structToTableData(&counts{RowsRead: 4, Secret: "x", Plain: true, hidden: 1})
	require.True(t, ok)
	assert.Equal(t, [][]string{{"Rows Read", "4"}, {"Plain", "true"}}, d.Rows)

	_, ok = structToTableData([]int{1})
	assert.False(t, ok)
	_, ok = structToTableData((*counts)(nil))
	assert.False(t, ok)
}

func TestTableFormatter_FallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, []string{"a", "b"}))
	assert.JSONEq(t, `["a","b"]`, buf.String())
}

func TestTableFormatter_Data(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter(FormatWide).Format(&buf, Data{
		Headers:         []string{"Key", "Value"},
		Rows:            [][]string{{"[API]env", "PROD"}},
		ColumnAlignment: []Align{AlignLeft, AlignDefault},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "[API]env")
	assert.Contains(t, buf.String(), "PROD")
}
