package tagsync_test

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tagsync"
	"github.com/agentstation/tagsync/internal/tagapi/tagapitest"
	"github.com/agentstation/tagsync/pkg/errors"
	"github.com/agentstation/tagsync/pkg/logging"
	"github.com/agentstation/tagsync/pkg/tagging"
)

const hostsCSV = `Name,Site,Env,Security_Zone_Level
HOST01,,PROD,high
,LDN,PROD,low
HOST02,NYC,nan,
HOST03,LDN,UAT,low
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hosts.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testConfig(t *testing.T, url string) tagsync.Config {
	cfg := tagsync.DefaultConfig()
	cfg.URL = url
	cfg.Token = "dt0c01.PUBLIC.SECRET"
	cfg.CSVFile = writeCSV(t, hostsCSV)
	cfg.RateLimit = 0
	cfg.Mapping = []tagging.MappingEntry{
		{Tag: "site", Column: "Site"},
		{Tag: "env", Column: "Env"},
		{Tag: "security_zone", Column: "Security_Zone_Level"},
	}
	return cfg
}

func TestRun_EndToEnd(t *testing.T) {
	srv := tagapitest.NewServer()
	defer srv.Close()
	tl := logging.NewTestLogger(t)

	cfg := testConfig(t, srv.URL)
	cfg.DeleteTags = true

	report, err := tagsync.Run(context.Background(), cfg, tagsync.WithLogger(tl.Logger), tagsync.WithRunID("run-1"))
	require.NoError(t, err)

	s := report.Summary()
	assert.Equal(t, "run-1", s.RunID)
	assert.Equal(t, 4, s.RowsRead)
	assert.Equal(t, 1, s.RowsSkipped)
	assert.Equal(t, 3, s.Entities)
	assert.Equal(t, 6, s.Tags)
	assert.Equal(t, 3, s.TagsDropped)
	assert.Equal(t, 9, s.DeletesNotFound+s.DeletesSucceeded)
	assert.Equal(t, 3, s.CreatesSucceeded)
	assert.Zero(t, s.CreatesFailed)

	assert.Equal(t, []tagging.Tag{
		{Key: "[API]env", Value: "PROD"},
		{Key: "[API]security_zone", Value: "high"},
	}, srv.Tags("type(host),entityName.startsWith(HOST01)"))

	// Every delete precedes every create and all calls carry the token.
	seenCreate := false
	for _, c := range srv.Calls() {
		assert.Equal(t, "Api-Token dt0c01.PUBLIC.SECRET", c.Auth)
		if c.Method == http.MethodPost {
			seenCreate = true
		} else {
			assert.False(t, seenCreate, "delete after create")
		}
	}

	tl.AssertContains(t, `"run_id":"run-1"`)
	tl.AssertContains(t, `"token":"dt0c01.PUBLIC.****"`)
	tl.AssertNotContains(t, "SECRET")
	assert.Equal(t, 3, tl.CountMessage("Column mapping"))
	assert.Equal(t, 1, tl.CountMessage("Skipping row without identity"))
	assert.Equal(t, 1, tl.CountMessage("Done"))
}

func TestRun_DeleteClearsEmptiedCell(t *testing.T) {
	srv := tagapitest.NewServer()
	defer srv.Close()
	sel := "type(host),entityName.startsWith(HOST01)"
	srv.Seed(sel, tagging.Tag{Key: "[API]site", Value: "LDN"}, tagging.Tag{Key: "[API]env", Value: "UAT"})

	cfg := testConfig(t, srv.URL)
	cfg.CSVFile = writeCSV(t, "Name,Site,Env\nHOST01,,PROD\n")
	cfg.Mapping = cfg.Mapping[:2]
	cfg.DeleteTags = true

	report, err := tagsync.Run(context.Background(), cfg, tagsync.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)

	s := report.Summary()
	assert.Equal(t, 2, s.DeletesSucceeded)
	assert.Equal(t, 1, s.TagsDropped)
	assert.Equal(t, []tagging.Tag{{Key: "[API]env", Value: "PROD"}}, srv.Tags(sel))
}

func TestRun_WithoutLoggerLeavesDefaultAlone(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })
	var buf bytes.Buffer
	logging.SetDefault(logging.New(&buf))

	srv := tagapitest.NewServer()
	defer srv.Close()

	_, err := tagsync.Run(context.Background(), testConfig(t, srv.URL))
	require.NoError(t, err)
	_, err = tagsync.Plan(context.Background(), testConfig(t, srv.URL))
	require.NoError(t, err)

	assert.Empty(t, buf.String())
}

func TestRun_FailedCreateDoesNotFailRun(t *testing.T) {
	srv := tagapitest.NewServer()
	defer srv.Close()
	srv.FailCreate["type(host),entityName.startsWith(HOST02)"] = http.StatusBadRequest

	report, err := tagsync.Run(context.Background(), testConfig(t, srv.URL), tagsync.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)

	s := report.Summary()
	assert.Equal(t, 2, s.CreatesSucceeded)
	assert.Equal(t, 1, s.CreatesFailed)
	require.Len(t, report.Failures(), 1)
	assert.Equal(t, 3, report.Failures()[0].Row)
}

func TestRun_ConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*tagsync.Config)
	}{
		{"missing url", func(c *tagsync.Config) { c.URL = "" }},
		{"bad url", func(c *tagsync.Config) { c.URL = "not a url" }},
		{"missing token", func(c *tagsync.Config) { c.Token = " " }},
		{"missing csv", func(c *tagsync.Config) { c.CSVFile = "" }},
		{"empty mapping", func(c *tagsync.Config) { c.Mapping = nil }},
		{"duplicate mapping", func(c *tagsync.Config) {
			c.Mapping = append(c.Mapping, tagging.MappingEntry{Tag: "env", Column: "Environment"})
		}},
		{"long delimiter", func(c *tagsync.Config) { c.Delimiter = ";;" }},
		{"negative rate", func(c *tagsync.Config) { c.RateLimit = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := tagapitest.NewServer()
			defer srv.Close()

			cfg := testConfig(t, srv.URL)
			tt.modify(&cfg)

			_, err := tagsync.Run(context.Background(), cfg, tagsync.WithLogger(logging.NewNopLogger()))
			require.Error(t, err)
			assert.True(t, errors.IsConfigError(err), "got %v", err)
			assert.Empty(t, srv.Calls(), "no remote call before config is valid")
		})
	}
}

func TestRun_MissingInput(t *testing.T) {
	cfg := testConfig(t, "https://example.invalid")
	cfg.CSVFile = filepath.Join(t.TempDir(), "missing.csv")

	_, err := tagsync.Run(context.Background(), cfg, tagsync.WithLogger(logging.NewNopLogger()))
	var ioErr *errors.IOError
	require.ErrorAs(t, err, &ioErr)
}

func TestRun_Canceled(t *testing.T) {
	srv := tagapitest.NewServer()
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := tagsync.Run(ctx, testConfig(t, srv.URL), tagsync.WithLogger(logging.NewNopLogger()))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrCanceled)
	require.NotNil(t, report)
	assert.True(t, report.Reconcile.Interrupted)
	assert.Empty(t, srv.Calls())
}

func TestPlan(t *testing.T) {
	tl := logging.NewTestLogger(t)
	cfg := tagsync.DefaultConfig()
	cfg.CSVFile = writeCSV(t, hostsCSV)
	cfg.TagPrefix = "cmdb:"
	cfg.Mapping = []tagging.MappingEntry{{Tag: "env", Column: "Env"}, {Tag: "owner", Column: "Owner"}}

	report, err := tagsync.Plan(context.Background(), cfg, tagsync.WithLogger(tl.Logger))
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.Nil(t, report.Reconcile)
	require.Equal(t, 3, report.Build.State.Len())
	assert.Equal(t, []tagging.Tag{{Key: "cmdb:env", Value: "PROD"}}, report.Build.State.Entries[0].Tags)
	assert.Equal(t, 1, tl.CountMessage("Mapped column not found in input header"))
	assert.Contains(t, report.Summary().String(), "dry run")
}

func TestConfig_RedactedToken(t *testing.T) {
	tests := map[string]string{
		"":                     "",
		"plain":                "****",
		"dt0c01.PUBLIC.SECRET": "dt0c01.PUBLIC.****",
	}
	for token, want := range tests {
		cfg := tagsync.Config{Token: token}
		assert.Equal(t, want, cfg.RedactedToken())
	}
}
