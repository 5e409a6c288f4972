package tagging

import (
	"fmt"
	"strings"

	"github.com/agentstation/tagsync/pkg/errors"
)

// MappingEntry binds a tag key (without namespace prefix) to the input
// column its value is read from.
type MappingEntry struct {
	Tag    string `json:"tag" yaml:"tag" mapstructure:"tag"`
	Column string `json:"column" yaml:"column" mapstructure:"column"`
}

// ColumnMapping is the ordered, immutable set of tags a row can produce.
// Order drives the order of the emitted tag list.
type ColumnMapping struct {
	entries []MappingEntry
}

// NewColumnMapping validates entries and returns a ColumnMapping.
// Tag keys must be unique and neither side may be blank.
func NewColumnMapping(entries []MappingEntry) (*ColumnMapping, error) {
	if len(entries) == 0 {
		return nil, &errors.ValidationError{
			Field:   "mapping",
			Message: "at least one tag/column pair is required",
		}
	}

	seen := make(map[string]int, len(entries))
	cleaned := make([]MappingEntry, 0, len(entries))
	for i, e := range entries {
		tag := strings.TrimSpace(e.Tag)
		column := strings.TrimSpace(e.Column)
		if tag == "" || column == "" {
			return nil, &errors.ValidationError{
				Field:   fmt.Sprintf("mapping[%d]", i),
				Value:   e,
				Message: "tag and column must both be set",
			}
		}
		if prev, dup := seen[tag]; dup {
			return nil, &errors.ValidationError{
				Field:   fmt.Sprintf("mapping[%d]", i),
				Value:   e,
				Message: fmt.Sprintf("tag %q already mapped at mapping[%d]", tag, prev),
			}
		}
		seen[tag] = i
		cleaned = append(cleaned, MappingEntry{Tag: tag, Column: column})
	}

	return &ColumnMapping{entries: cleaned}, nil
}

// Entries returns a copy of the mapping in order.
func (m *ColumnMapping) Entries() []MappingEntry {
	out := make([]MappingEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Len returns the number of mapped tags.
func (m *ColumnMapping) Len() int {
	return len(m.entries)
}

// Columns returns the distinct source columns in mapping order.
func (m *ColumnMapping) Columns() []string {
	seen := make(map[string]bool, len(m.entries))
	var cols []string
	for _, e := range m.entries {
		if !seen[e.Column] {
			seen[e.Column] = true
			cols = append(cols, e.Column)
		}
	}
	return cols
}

// MissingColumns reports mapped columns that are absent from header.
func (m *ColumnMapping) MissingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, c := range m.Columns() {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	return missing
}
