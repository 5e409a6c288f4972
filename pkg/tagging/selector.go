package tagging

import (
	"fmt"
	"strings"
)

// Selector is an entity selector expression understood by the tagging API.
// It may match zero or more entities.
type Selector string

// String implements fmt.Stringer.
func (s Selector) String() string {
	return string(s)
}

// selectorSpecial are the characters that force a selector value to be
// quoted.
const selectorSpecial = `(),~"`

// EntityNameSelector matches entities of entityType whose name starts with
// name. Prefix match on the name is used instead of a tag lookup because
// tag values are case-sensitive and the inventory is typed by hand.
func EntityNameSelector(entityType, name string) Selector {
	return Selector(fmt.Sprintf("type(%s),entityName.startsWith(%s)", entityType, quoteSelectorValue(name)))
}

// quoteSelectorValue leaves plain values untouched and quotes values that
// contain selector syntax, escaping quote and tilde with a tilde.
func quoteSelectorValue(v string) string {
	if !strings.ContainsAny(v, selectorSpecial) {
		return v
	}
	r := strings.NewReplacer(`~`, `~~`, `"`, `~"`)
	return `"` + r.Replace(v) + `"`
}
