package logging_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/revcheck/pkg/logging"
)

func TestContextFields(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithOperation(ctx, "compare")
	ctx = logging.WithStage(ctx, "match")
	ctx = logging.WithTable(ctx, "client")
	ctx = logging.WithRow(ctx, 7)
	ctx = logging.WithField(ctx, "cause", errors.New("boom"))

	logging.FromContext(ctx).Info().Msg("row classified")

	tl.AssertContains(t, `"operation":"compare"`)
	tl.AssertContains(t, `"stage":"match"`)
	tl.AssertContains(t, `"table":"client"`)
	tl.AssertContains(t, `"row":7`)
	tl.AssertContains(t, `"cause":"boom"`)
	assert.Len(t, tl.Lines(), 1)
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	//nolint:staticcheck // nil context is handled explicitly
	assert.Same(t, logging.Default(), logging.FromContext(nil))
	assert.Same(t, logging.Default(), logging.FromContext(logging.WithLogger(context.Background(), nil)))
}

func TestWithFieldDoesNotLeakToParent(t *testing.T) {
	tl := logging.NewTestLogger(t)
	parent := logging.WithLogger(context.Background(), tl.Logger)
	_ = logging.WithTable(parent, "home")

	logging.FromContext(parent).Info().Msg("loaded")

	tl.AssertNotContains(t, `"table"`)
}
