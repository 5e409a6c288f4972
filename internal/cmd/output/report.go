package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/agentstation/tagsync"
	"github.com/agentstation/tagsync/internal/cmd/emoji"
	"github.com/agentstation/tagsync/pkg/reconciler"
	"github.com/agentstation/tagsync/pkg/tagging"
)

// ReportView is the JSON and YAML shape of a run report.
type ReportView struct {
	Summary  tagsync.Summary      `json:"summary" yaml:"summary"`
	Entries  []tagging.Entry      `json:"entries,omitempty" yaml:"entries,omitempty"`
	Dropped  []tagging.DroppedTag `json:"dropped,omitempty" yaml:"dropped,omitempty"`
	Failures []reconciler.Failure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// NewReportView selects what a report shows. Entries are only included
// for a dry run; dropped tags only when wide is set.
func NewReportView(r *tagsync.Report, wide bool) ReportView {
	v := ReportView{
		Summary:  r.Summary(),
		Failures: r.Failures(),
	}
	if r.Build != nil {
		if r.DryRun && r.Build.State != nil {
			v.Entries = r.Build.State.Entries
		}
		if wide {
			v.Dropped = r.Build.Dropped
		}
	}
	return v
}

// FormatReport writes the report in the given format. Tables are written
// one after another: the plan (dry run only), the failures if any, the
// per-row outcomes and dropped tags (wide only), then the summary.
func FormatReport(w io.Writer, format Format, r *tagsync.Report) error {
	wide := format == FormatWide
	switch format {
	case FormatJSON, FormatYAML:
		return NewFormatter(format).Format(w, NewReportView(r, true))
	}

	tf := &TableFormatter{Wide: wide}
	var sections []Data
	if r.DryRun && r.Build != nil {
		sections = append(sections, PlanData(r.Build.State))
	}
	if failures := r.Failures(); len(failures) > 0 {
		sections = append(sections, FailuresData(failures))
	}
	if wide && r.Build != nil {
		sections = append(sections, RowsData(r.Build.Rows))
		if len(r.Build.Dropped) > 0 {
			sections = append(sections, DroppedData(r.Build.Dropped))
		}
	}
	if summary, ok := structToTableData(r.Summary()); ok {
		sections = append(sections, summary)
	}

	for i, d := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := tf.Format(w, d); err != nil {
			return err
		}
	}
	return nil
}

// PlanData lists every entry of the desired state.
func PlanData(state *tagging.DesiredState) Data {
	d := Data{
		Headers:         []string{"Row", "Selector", "Tags"},
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft},
	}
	if state == nil {
		return d
	}
	for _, e := range state.Entries {
		d.Rows = append(d.Rows, []string{
			strconv.Itoa(e.Row),
			e.Selector.String(),
			tagging.FormatTags(e.Tags),
		})
	}
	return d
}

// FailuresData lists failed remote calls.
func FailuresData(failures []reconciler.Failure) Data {
	d := Data{
		Headers:         []string{"", "Phase", "Row", "Selector", "Key", "Status", "Error"},
		ColumnAlignment: []Align{AlignCenter, AlignLeft, AlignRight, AlignLeft, AlignLeft, AlignRight, AlignLeft},
	}
	for _, f := range failures {
		status := ""
		if f.StatusCode != 0 {
			status = strconv.Itoa(f.StatusCode)
		}
		d.Rows = append(d.Rows, []string{
			emoji.Error,
			string(f.Phase),
			strconv.Itoa(f.Row),
			f.Selector.String(),
			f.Key,
			status,
			f.Error,
		})
	}
	return d
}

// RowsData lists what became of every input row.
func RowsData(rows []tagging.RowOutcome) Data {
	d := Data{
		Headers:         []string{"", "Row", "Identity", "Status", "Reason"},
		ColumnAlignment: []Align{AlignCenter, AlignRight, AlignLeft, AlignLeft, AlignLeft},
	}
	for _, r := range rows {
		mark := emoji.Success
		if r.Status == tagging.RowSkipped {
			mark = emoji.Optional
		}
		d.Rows = append(d.Rows, []string{
			mark,
			strconv.Itoa(r.Row),
			r.Identity,
			string(r.Status),
			string(r.Reason),
		})
	}
	return d
}

// DroppedData lists tags left out of the desired state.
func DroppedData(dropped []tagging.DroppedTag) Data {
	d := Data{
		Headers:         []string{"", "Row", "Selector", "Key", "Column", "Reason"},
		ColumnAlignment: []Align{AlignCenter, AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignLeft},
	}
	for _, t := range dropped {
		d.Rows = append(d.Rows, []string{
			emoji.Warning,
			strconv.Itoa(t.Row),
			t.Selector.String(),
			t.Key,
			t.Column,
			string(t.Reason),
		})
	}
	return d
}
