package sync

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tagsync"
	"github.com/agentstation/tagsync/internal/cmd/application"
	"github.com/agentstation/tagsync/internal/config"
	"github.com/agentstation/tagsync/pkg/errors"
	"github.com/agentstation/tagsync/pkg/reconciler"
)

func execute(t *testing.T, mock *application.Mock, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand(mock)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSync_PassesOverrides(t *testing.T) {
	var got config.Overrides
	var synced tagsync.Config
	mock := &application.Mock{
		OutputFormatFunc: func() string { return "json" },
		RunConfigFunc: func(o config.Overrides) (tagsync.Config, error) {
			got = o
			cfg := tagsync.DefaultConfig()
			o.Apply(&cfg)
			return cfg, nil
		},
		SyncFunc: func(_ context.Context, cfg tagsync.Config) (*tagsync.Report, error) {
			synced = cfg
			return &tagsync.Report{RunID: "r1"}, nil
		},
	}

	out, err := execute(t, mock, "--csv", "hosts.csv", "--delete-tags")
	require.NoError(t, err)

	require.NotNil(t, got.CSVFile)
	assert.Nil(t, got.URL)
	assert.Nil(t, got.CreateTags)
	assert.Equal(t, "hosts.csv", synced.CSVFile)
	assert.True(t, synced.DeleteTags)
	assert.True(t, synced.CreateTags)
	assert.Contains(t, out, `"run_id": "r1"`)
}

func TestSync_DryRunUsesPlan(t *testing.T) {
	planned := false
	mock := &application.Mock{
		OutputFormatFunc: func() string { return "yaml" },
		PlanFunc: func(context.Context, tagsync.Config) (*tagsync.Report, error) {
			planned = true
			return &tagsync.Report{DryRun: true}, nil
		},
		SyncFunc: func(context.Context, tagsync.Config) (*tagsync.Report, error) {
			t.Fatal("sync called on dry run")
			return nil, nil
		},
	}

	out, err := execute(t, mock, "--dry-run")
	require.NoError(t, err)
	assert.True(t, planned)
	assert.Contains(t, out, "dry_run: true")
}

func TestSync_ConfigErrorStopsBeforeRun(t *testing.T) {
	mock := &application.Mock{
		RunConfigFunc: func(config.Overrides) (tagsync.Config, error) {
			return tagsync.Config{}, errors.NewConfigError("config", "cannot read", nil)
		},
		SyncFunc: func(context.Context, tagsync.Config) (*tagsync.Report, error) {
			t.Fatal("sync called after config error")
			return nil, nil
		},
	}

	_, err := execute(t, mock)
	assert.True(t, errors.IsConfigError(err))
}

func TestSync_InterruptedPrintsPartialReport(t *testing.T) {
	mock := &application.Mock{
		OutputFormatFunc: func() string { return "json" },
		SyncFunc: func(context.Context, tagsync.Config) (*tagsync.Report, error) {
			res := reconciler.NewResult()
			res.Interrupted = true
			res.Deletes.Succeeded = 2
			return &tagsync.Report{RunID: "r2", Reconcile: res}, errors.ErrCanceled
		},
	}

	out, err := execute(t, mock)
	assert.ErrorIs(t, err, errors.ErrCanceled)
	assert.Contains(t, out, `"deletes_succeeded": 2`)
}
