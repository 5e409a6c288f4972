package tagging

import (
	"github.com/rs/zerolog"
)

// RowStatus is the outcome of one input row.
type RowStatus string

// Row outcomes.
const (
	RowAccepted RowStatus = "accepted"
	RowSkipped  RowStatus = "skipped"
)

// RowOutcome reports what became of one input row.
type RowOutcome struct {
	Row      int       `json:"row" yaml:"row"`
	Identity string    `json:"identity,omitempty" yaml:"identity,omitempty"`
	Status   RowStatus `json:"status" yaml:"status"`
	Reason   Reason    `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// BuildResult is the desired state together with the per-row and per-tag
// diagnostics gathered while building it.
type BuildResult struct {
	State   *DesiredState `json:"state" yaml:"state"`
	Rows    []RowOutcome  `json:"rows" yaml:"rows"`
	Dropped []DroppedTag  `json:"dropped" yaml:"dropped"`
}

// RowsRead returns how many rows were examined.
func (b *BuildResult) RowsRead() int {
	return len(b.Rows)
}

// RowsSkipped returns how many rows produced no entry.
func (b *BuildResult) RowsSkipped() int {
	n := 0
	for _, r := range b.Rows {
		if r.Status == RowSkipped {
			n++
		}
	}
	return n
}

// TagsDropped returns how many mapped tags were not produced.
func (b *BuildResult) TagsDropped() int {
	return len(b.Dropped)
}

// Builder computes the desired state of a whole table.
type Builder struct {
	validator *Validator
	mapper    *Mapper
	logger    *zerolog.Logger
}

// NewBuilder creates a Builder. A nil logger discards diagnostics.
func NewBuilder(validator *Validator, mapper *Mapper, logger *zerolog.Logger) *Builder {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Builder{validator: validator, mapper: mapper, logger: logger}
}

// Build walks records in order. Rows without a usable identity are logged
// and contribute no entry; rows with one always contribute exactly one
// entry, holding only the tags whose cells were usable.
func (b *Builder) Build(records []Record) *BuildResult {
	result := &BuildResult{
		State: &DesiredState{Entries: make([]Entry, 0, len(records))},
		Rows:  make([]RowOutcome, 0, len(records)),
	}

	for _, r := range records {
		identity, reason := b.validator.Identity(r)
		if reason != ReasonOK {
			raw, _ := r.Get(b.validator.IdentityColumn())
			b.logger.Warn().
				Int("row", r.Index).
				Str("identity", raw).
				Str("column", b.validator.IdentityColumn()).
				Str("reason", string(reason)).
				Msg("Skipping row without identity")
			result.Rows = append(result.Rows, RowOutcome{
				Row:      r.Index,
				Identity: raw,
				Status:   RowSkipped,
				Reason:   reason,
			})
			continue
		}

		entry, dropped := b.mapper.Map(r, identity)
		for _, d := range dropped {
			b.logger.Info().
				Int("row", d.Row).
				Str("identity", identity).
				Str("key", d.Key).
				Str("column", d.Column).
				Str("reason", string(d.Reason)).
				Msg("Dropping tag")
		}
		b.logger.Info().
			Int("row", r.Index).
			Str("selector", entry.Selector.String()).
			Str("tags", FormatTags(entry.Tags)).
			Msg("Built entity tags")

		result.State.Add(entry)
		result.Dropped = append(result.Dropped, dropped...)
		result.Rows = append(result.Rows, RowOutcome{
			Row:      r.Index,
			Identity: identity,
			Status:   RowAccepted,
		})
	}

	return result
}
