package table

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/agentstation/tagsync/pkg/errors"
)

func TestRead_Basic(t *testing.T) {
	input := "Name,Site,Env\nHOST01,,PROD\nHOST02,LDN\n\nHOST03,NYC,UAT,extra\n"

	tbl, err := Read(strings.NewReader(input), "hosts.csv", ',')
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Site", "Env"}, tbl.Header)
	require.Len(t, tbl.Records, 3)

	first := tbl.Records[0]
	assert.Equal(t, 1, first.Index)
	site, ok := first.Get("Site")
	assert.True(t, ok)
	assert.Equal(t, "", site)

	// Short row: Env is absent rather than empty.
	_, ok = tbl.Records[1].Get("Env")
	assert.False(t, ok)

	assert.Equal(t, 3, tbl.Records[2].Index)
	env, _ := tbl.Records[2].Get("Env")
	assert.Equal(t, "UAT", env)
}

func TestRead_Delimiter(t *testing.T) {
	tbl, err := Read(strings.NewReader("Name;Env\nHOST01;PROD\n"), "hosts.csv", ';')
	require.NoError(t, err)
	env, _ := tbl.Records[0].Get("Env")
	assert.Equal(t, "PROD", env)
}

func TestRead_QuotedCells(t *testing.T) {
	tbl, err := Read(strings.NewReader("Name,Owner\n\"db (primary)\",\"Smith, J\"\n"), "hosts.csv", ',')
	require.NoError(t, err)
	name, _ := tbl.Records[0].Get("Name")
	owner, _ := tbl.Records[0].Get("Owner")
	assert.Equal(t, "db (primary)", name)
	assert.Equal(t, "Smith, J", owner)
}

func TestRead_UTF8BOM(t *testing.T) {
	tbl, err := Read(strings.NewReader("\ufeffName,Env\nHOST01,PROD\n"), "hosts.csv", ',')
	require.NoError(t, err)
	assert.Equal(t, "Name", tbl.Header[0])
}

func TestRead_UTF16WithBOM(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	data, err := enc.String("Name\tEnv\r\nHÔTE01\tPROD\r\n")
	require.NoError(t, err)

	tbl, err := Read(strings.NewReader(data), "export.txt", '\t')
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Env"}, tbl.Header)
	name, _ := tbl.Records[0].Get("Name")
	assert.Equal(t, "HÔTE01", name)
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"duplicate header", "Name,Env,Name\nHOST01,PROD,X\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), "hosts.csv", ',')
			var pe *errors.ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, "hosts.csv", pe.File)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hosts.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name, Env \nHOST01,PROD\n"), 0o644))

	tbl, err := Load(path, ',')
	require.NoError(t, err)
	assert.Equal(t, path, tbl.Source)
	assert.Equal(t, []string{"Name", "Env"}, tbl.Header)

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"), ',')
	var ioErr *errors.IOError
	require.ErrorAs(t, err, &ioErr)
}
