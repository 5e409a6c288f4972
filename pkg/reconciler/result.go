package reconciler

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/tagsync/pkg/errors"
	"github.com/agentstation/tagsync/pkg/tagging"
)

// Phase names one pass of a run.
type Phase string

// Passes in execution order.
const (
	PhaseDelete Phase = "delete"
	PhaseCreate Phase = "create"
)

// DeleteStats counts delete calls.
type DeleteStats struct {
	Succeeded int `json:"succeeded" yaml:"succeeded"`
	NotFound  int `json:"not_found" yaml:"not_found"`
	Failed    int `json:"failed" yaml:"failed"`
}

// CreateStats counts create calls. Skipped entries had no tags and were
// not sent; Unmatched calls succeeded but matched zero entities.
type CreateStats struct {
	Succeeded int `json:"succeeded" yaml:"succeeded"`
	Failed    int `json:"failed" yaml:"failed"`
	Skipped   int `json:"skipped" yaml:"skipped"`
	Unmatched int `json:"unmatched" yaml:"unmatched"`
}

// Failure is one failed remote call.
type Failure struct {
	Phase      Phase            `json:"phase" yaml:"phase"`
	Row        int              `json:"row" yaml:"row"`
	Selector   tagging.Selector `json:"selector" yaml:"selector"`
	Key        string           `json:"key,omitempty" yaml:"key,omitempty"`
	StatusCode int              `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	Error      string           `json:"error" yaml:"error"`
}

// Result represents the outcome of applying a desired state.
type Result struct {
	Entities      int           `json:"entities" yaml:"entities"`
	DeleteEnabled bool          `json:"delete_enabled" yaml:"delete_enabled"`
	CreateEnabled bool          `json:"create_enabled" yaml:"create_enabled"`
	Deletes       DeleteStats   `json:"deletes" yaml:"deletes"`
	Creates       CreateStats   `json:"creates" yaml:"creates"`
	Failures      []Failure     `json:"failures,omitempty" yaml:"failures,omitempty"`
	Interrupted   bool          `json:"interrupted,omitempty" yaml:"interrupted,omitempty"`
	StartTime     time.Time     `json:"start_time" yaml:"start_time"`
	Duration      time.Duration `json:"duration" yaml:"duration"`
}

// NewResult creates a new result with defaults.
func NewResult() *Result {
	return &Result{
		Failures:  []Failure{},
		StartTime: time.Now(),
	}
}

// Finalize records the duration.
func (r *Result) Finalize() {
	r.Duration = time.Since(r.StartTime)
}

// HasFailures reports whether any remote call failed.
func (r *Result) HasFailures() bool {
	return len(r.Failures) > 0
}

func (r *Result) addFailure(phase Phase, e tagging.Entry, key string, err error) {
	f := Failure{
		Phase:    phase,
		Row:      e.Row,
		Selector: e.Selector,
		Key:      key,
		Error:    err.Error(),
	}
	var apiErr *errors.APIError
	if errors.As(err, &apiErr) {
		f.StatusCode = apiErr.StatusCode
	}
	r.Failures = append(r.Failures, f)
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	var parts []string
	if r.DeleteEnabled {
		parts = append(parts, fmt.Sprintf("deletes: %d ok, %d not found, %d failed",
			r.Deletes.Succeeded, r.Deletes.NotFound, r.Deletes.Failed))
	}
	if r.CreateEnabled {
		parts = append(parts, fmt.Sprintf("creates: %d ok, %d failed, %d skipped, %d unmatched",
			r.Creates.Succeeded, r.Creates.Failed, r.Creates.Skipped, r.Creates.Unmatched))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%d entities, no pass enabled", r.Entities)
	}

	summary := fmt.Sprintf("%d entities; %s", r.Entities, strings.Join(parts, "; "))
	if r.Interrupted {
		summary += " (interrupted)"
	}
	return summary
}
