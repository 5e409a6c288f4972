// Package table loads the delimited inventory file that drives tagging.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/agentstation/tagsync/pkg/errors"
	"github.com/agentstation/tagsync/pkg/tagging"
)

// Table is a loaded inventory: its header and one Record per data row.
type Table struct {
	Source  string
	Header  []string
	Records []tagging.Record
}

// Load reads the file at path. See Read.
func Load(path string, delimiter rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close() //nolint:errcheck

	return Read(f, path, delimiter)
}

// Read parses delimited text from r. The first row is the header. Input is
// UTF-8 with or without BOM, or UTF-16 with BOM. Rows may be shorter or
// longer than the header; blank lines are ignored. name only labels errors.
func Read(r io.Reader, name string, delimiter rune) (*Table, error) {
	if delimiter == 0 {
		delimiter = ','
	}

	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	cr := csv.NewReader(decoded)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.NewParseError("csv", name, "no header row", nil)
	}
	if err != nil {
		return nil, parseError(name, err)
	}
	header, err = cleanHeader(name, header)
	if err != nil {
		return nil, err
	}

	t := &Table{Source: name, Header: header}
	for index := 1; ; index++ {
		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, parseError(name, err)
		}
		t.Records = append(t.Records, tagging.NewRecord(index, header, cells))
	}
	return t, nil
}

func cleanHeader(name string, header []string) ([]string, error) {
	seen := make(map[string]bool, len(header))
	out := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h != "" && seen[h] {
			return nil, errors.NewParseError("csv", name, fmt.Sprintf("duplicate column %q in header", h), nil)
		}
		seen[h] = true
		out[i] = h
	}
	return out, nil
}

func parseError(name string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &errors.ParseError{
			Format:  "csv",
			File:    name,
			Line:    pe.Line,
			Message: pe.Err.Error(),
			Err:     err,
		}
	}
	return errors.WrapIO("read", name, err)
}
