package dedupe

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/revcheck/internal/cmd/application"
	"github.com/agentstation/revcheck/internal/tabular"
	"github.com/agentstation/revcheck/pkg/constants"
	"github.com/agentstation/revcheck/pkg/logging"
)

func TestDedupe(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "home.csv")
	require.NoError(t, os.WriteFile(in, []byte(
		"Document Number,Revision Num,Revision Description,Call Number\n"+
			"D1,002,Rev A,C1\n"+
			"D1,2,Rev A,C1\n"+
			"D2,3,Rev A,C2\n"), 0o600))

	cmd := NewCommand(&application.Mock{})
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{in})
	require.NoError(t, cmd.Execute())

	var res Result
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &res))
	assert.Equal(t, 3, res.Rows)
	assert.Equal(t, 2, res.Kept)
	assert.Equal(t, 1, res.Removed)
	assert.Equal(t, filepath.Join(dir, "home_deduplicated.csv"), res.Output)

	table, err := tabular.Read(logging.WithLogger(t.Context(), logging.NewNopLogger()), res.Output)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "2", table.Cell(0, constants.ColumnRevisionNum))
	assert.Equal(t, "C2", table.Cell(1, constants.ColumnCallNumber))
}

func TestDefaultOutput(t *testing.T) {
	tests := []struct{ in, want string }{
		{in: "home.xlsx", want: "home_deduplicated.xlsx"},
		{in: "dir/home.csv", want: "dir/home_deduplicated.csv"},
		{in: "home", want: "home_deduplicated"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultOutput(tt.in))
		})
	}
}
