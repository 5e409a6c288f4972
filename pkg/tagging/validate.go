package tagging

import (
	"strings"

	"github.com/agentstation/tagsync/pkg/constants"
)

// Reason explains why a row was skipped or a tag dropped.
type Reason string

// Reasons reported for unusable cells.
const (
	ReasonOK            Reason = ""
	ReasonMissingColumn Reason = "column missing"
	ReasonEmptyValue    Reason = "empty value"
	ReasonNullValue     Reason = "null-equivalent value"
)

// Validator decides whether cells are usable. A cell is unusable when its
// column is absent, when it is blank, or when it equals one of the
// null-equivalent sentinels (compared case-insensitively after trimming).
type Validator struct {
	identityColumn string
	empty          map[string]bool
}

// NewValidator returns a Validator reading the identity from
// identityColumn. A nil emptyValues uses constants.DefaultEmptyValues.
func NewValidator(identityColumn string, emptyValues []string) *Validator {
	if identityColumn == "" {
		identityColumn = constants.DefaultIdentityColumn
	}
	if emptyValues == nil {
		emptyValues = constants.DefaultEmptyValues
	}
	empty := make(map[string]bool, len(emptyValues))
	for _, v := range emptyValues {
		empty[strings.ToLower(strings.TrimSpace(v))] = true
	}
	return &Validator{identityColumn: identityColumn, empty: empty}
}

// IdentityColumn returns the column the identity is read from.
func (v *Validator) IdentityColumn() string {
	return v.identityColumn
}

// Identity returns the trimmed identity of r, or the reason it has none.
func (v *Validator) Identity(r Record) (string, Reason) {
	return v.Cell(r, v.identityColumn)
}

// Cell returns the trimmed value of column in r, or the reason it is not
// usable.
func (v *Validator) Cell(r Record, column string) (string, Reason) {
	raw, ok := r.Get(column)
	if !ok {
		return "", ReasonMissingColumn
	}
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", ReasonEmptyValue
	}
	if v.empty[strings.ToLower(value)] {
		return "", ReasonNullValue
	}
	return value, ReasonOK
}
