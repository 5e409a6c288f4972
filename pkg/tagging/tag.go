// Package tagging turns rows of a host inventory table into the desired
// tag state of monitored entities.
//
// The pipeline is leaf-first: a Validator decides whether a row names an
// entity and which cells are usable, a Mapper turns a valid row into an
// entity selector and an ordered tag list, and a Builder applies both across
// the whole table. Nothing here talks to the network.
package tagging

import (
	"strings"
)

// Tag is a key/value label written to an entity. Keys produced by a Mapper
// always carry the namespace prefix so that reconciliation only ever touches
// tags it created.
type Tag struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// String renders the tag the way the platform displays it.
func (t Tag) String() string {
	return t.Key + ":" + t.Value
}

// Keys returns the keys of tags in order.
func Keys(tags []Tag) []string {
	keys := make([]string, len(tags))
	for i, t := range tags {
		keys[i] = t.Key
	}
	return keys
}

// FormatTags renders tags as "k:v, k:v" for log lines and tables.
func FormatTags(tags []Tag) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}
