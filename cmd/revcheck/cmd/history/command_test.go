package history

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "github.com/agentstation/revcheck/cmd/application"
	"github.com/agentstation/revcheck/internal/cmd/application"
	"github.com/agentstation/revcheck/internal/history"
	"github.com/agentstation/revcheck/pkg/errors"
)

func seed(t *testing.T, path string, n int) {
	t.Helper()
	store, err := history.Open(context.Background(), path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	for i := range n {
		require.NoError(t, store.Record(context.Background(), &history.Run{Client: "c.csv", Total: i}))
	}
}

func run(t *testing.T, mock *application.Mock, args ...string) ([]history.Run, string, error) {
	t.Helper()
	cmd := NewCommand(mock)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		return nil, stderr.String(), err
	}
	var runs []history.Run
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &runs))
	return runs, stderr.String(), nil
}

func TestHistoryList(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")
	seed(t, db, 3)
	mock := &application.Mock{SettingsFunc: func() app.Settings { return app.Settings{HistoryDB: db} }}

	runs, _, err := run(t, mock, "--limit", "2")
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestHistoryPrune(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")
	seed(t, db, 4)

	runs, stderr, err := run(t, &application.Mock{}, "--history-db", db, "--prune", "1", "--limit", "0")
	require.NoError(t, err)
	assert.Len(t, runs, 1)
	assert.Contains(t, stderr, "Pruned 3 run(s)")
}

func TestHistoryEmpty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")
	runs, _, err := run(t, &application.Mock{}, "--history-db", db)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestHistoryRequiresDB(t *testing.T) {
	_, _, err := run(t, &application.Mock{})
	assert.True(t, errors.IsValidationError(err))
}
