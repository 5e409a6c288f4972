package logging_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/tagsync/pkg/logging"
)

func TestContextFunctions(t *testing.T) {
	t.Run("FromContext falls back to default", func(t *testing.T) {
		assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
		//nolint:staticcheck // nil context is handled explicitly
		assert.Same(t, logging.Default(), logging.FromContext(nil))
	})

	t.Run("WithLogger nil uses default", func(t *testing.T) {
		ctx := logging.WithLogger(context.Background(), nil)
		assert.Same(t, logging.Default(), logging.Ctx(ctx))
	})

	t.Run("RunID empty when unset", func(t *testing.T) {
		assert.Empty(t, logging.RunID(context.Background()))
	})

	t.Run("WithFields adds typed fields", func(t *testing.T) {
		tl := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), tl.Logger)
		ctx = logging.WithFields(ctx, map[string]any{
			"csv_file": "hosts.csv",
			"rows":     3,
			"dry_run":  true,
			"error":    errors.New("boom"),
		})

		logging.FromContext(ctx).Info().Msg("fields")

		tl.AssertContains(t, `"csv_file":"hosts.csv"`)
		tl.AssertContains(t, `"rows":3`)
		tl.AssertContains(t, `"dry_run":true`)
		tl.AssertContains(t, `"error":"boom"`)
	})
}
