package tagsync

import (
	"fmt"

	"github.com/agentstation/tagsync/pkg/reconciler"
	"github.com/agentstation/tagsync/pkg/tagging"
)

// Report is everything a run produced.
type Report struct {
	RunID     string               `json:"run_id" yaml:"run_id"`
	Source    string               `json:"source" yaml:"source"`
	DryRun    bool                 `json:"dry_run" yaml:"dry_run"`
	Build     *tagging.BuildResult `json:"build" yaml:"build"`
	Reconcile *reconciler.Result   `json:"reconcile,omitempty" yaml:"reconcile,omitempty"`
}

// Summary holds the final counts of a run.
type Summary struct {
	RunID            string `json:"run_id" yaml:"run_id"`
	DryRun           bool   `json:"dry_run" yaml:"dry_run"`
	RowsRead         int    `json:"rows_read" yaml:"rows_read"`
	RowsSkipped      int    `json:"rows_skipped" yaml:"rows_skipped"`
	TagsDropped      int    `json:"tags_dropped" yaml:"tags_dropped"`
	Entities         int    `json:"entities" yaml:"entities"`
	Tags             int    `json:"tags" yaml:"tags"`
	DeletesSucceeded int    `json:"deletes_succeeded" yaml:"deletes_succeeded"`
	DeletesNotFound  int    `json:"deletes_not_found" yaml:"deletes_not_found"`
	DeletesFailed    int    `json:"deletes_failed" yaml:"deletes_failed"`
	CreatesSucceeded int    `json:"creates_succeeded" yaml:"creates_succeeded"`
	CreatesFailed    int    `json:"creates_failed" yaml:"creates_failed"`
	CreatesSkipped   int    `json:"creates_skipped" yaml:"creates_skipped"`
	CreatesUnmatched int    `json:"creates_unmatched" yaml:"creates_unmatched"`
}

// Summary flattens the report into counts.
func (r *Report) Summary() Summary {
	s := Summary{RunID: r.RunID, DryRun: r.DryRun}
	if r.Build != nil {
		s.RowsRead = r.Build.RowsRead()
		s.RowsSkipped = r.Build.RowsSkipped()
		s.TagsDropped = r.Build.TagsDropped()
		s.Entities = r.Build.State.Len()
		s.Tags = r.Build.State.TagCount()
	}
	if r.Reconcile != nil {
		s.DeletesSucceeded = r.Reconcile.Deletes.Succeeded
		s.DeletesNotFound = r.Reconcile.Deletes.NotFound
		s.DeletesFailed = r.Reconcile.Deletes.Failed
		s.CreatesSucceeded = r.Reconcile.Creates.Succeeded
		s.CreatesFailed = r.Reconcile.Creates.Failed
		s.CreatesSkipped = r.Reconcile.Creates.Skipped
		s.CreatesUnmatched = r.Reconcile.Creates.Unmatched
	}
	return s
}

// Failures returns the failed remote calls, if any.
func (r *Report) Failures() []reconciler.Failure {
	if r.Reconcile == nil {
		return nil
	}
	return r.Reconcile.Failures
}

// String renders a one-line summary.
func (s Summary) String() string {
	line := fmt.Sprintf("%d rows (%d skipped), %d entities, %d tags (%d dropped)",
		s.RowsRead, s.RowsSkipped, s.Entities, s.Tags, s.TagsDropped)
	if s.DryRun {
		return line + ", dry run"
	}
	return line + fmt.Sprintf("; deletes %d ok/%d not found/%d failed; creates %d ok/%d failed/%d skipped/%d unmatched",
		s.DeletesSucceeded, s.DeletesNotFound, s.DeletesFailed,
		s.CreatesSucceeded, s.CreatesFailed, s.CreatesSkipped, s.CreatesUnmatched)
}
