package tagging

import (
	"github.com/agentstation/tagsync/pkg/constants"
)

// DroppedTag records a mapped tag that a row could not produce.
type DroppedTag struct {
	Row      int      `json:"row" yaml:"row"`
	Selector Selector `json:"selector" yaml:"selector"`
	Key      string   `json:"key" yaml:"key"`
	Column   string   `json:"column" yaml:"column"`
	Reason   Reason   `json:"reason" yaml:"reason"`
}

// Mapper turns a validated record into a desired-state entry.
type Mapper struct {
	mapping    *ColumnMapping
	validator  *Validator
	prefix     string
	entityType string
}

// MapperOption configures a Mapper.
type MapperOption func(*Mapper)

// WithTagPrefix overrides the namespace prefix put in front of every key.
// An empty prefix keeps the default.
func WithTagPrefix(prefix string) MapperOption {
	return func(m *Mapper) {
		if prefix != "" {
			m.prefix = prefix
		}
	}
}

// WithEntityType overrides the entity type used in selectors.
func WithEntityType(entityType string) MapperOption {
	return func(m *Mapper) {
		if entityType != "" {
			m.entityType = entityType
		}
	}
}

// NewMapper creates a Mapper over mapping using validator for cell checks.
func NewMapper(mapping *ColumnMapping, validator *Validator, opts ...MapperOption) *Mapper {
	m := &Mapper{
		mapping:    mapping,
		validator:  validator,
		prefix:     constants.DefaultTagPrefix,
		entityType: constants.DefaultEntityType,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Key returns the prefixed key written for a mapped tag.
func (m *Mapper) Key(tag string) string {
	return m.prefix + tag
}

// Map builds the entry for r. identity must be the value returned by the
// validator. Keys and Tags come out in mapping order; each unusable cell
// yields a DroppedTag instead of a tag and never stops the remaining ones,
// but its key stays in Keys so a stale value can still be deleted.
func (m *Mapper) Map(r Record, identity string) (Entry, []DroppedTag) {
	entry := Entry{
		Row:      r.Index,
		Identity: identity,
		Selector: EntityNameSelector(m.entityType, identity),
		Keys:     make([]string, 0, m.mapping.Len()),
		Tags:     make([]Tag, 0, m.mapping.Len()),
	}

	var dropped []DroppedTag
	for _, e := range m.mapping.entries {
		key := m.Key(e.Tag)
		entry.Keys = append(entry.Keys, key)
		value, reason := m.validator.Cell(r, e.Column)
		if reason != ReasonOK {
			dropped = append(dropped, DroppedTag{
				Row:      r.Index,
				Selector: entry.Selector,
				Key:      key,
				Column:   e.Column,
				Reason:   reason,
			})
			continue
		}
		entry.Tags = append(entry.Tags, Tag{Key: key, Value: value})
	}

	return entry, dropped
}
