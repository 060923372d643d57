package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func specFile(name string) string {
	return filepath.Join("testdata", name)
}

func executeQuery(t *testing.T, format string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewQueryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func goldenAsserter(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestQuery_GroupView_Golden(t *testing.T) {
	buf, err := executeQuery(t, "text",
		specFile("views.cue"), specFile("tasks.yaml"), "--view", "byKind")
	require.NoError(t, err)

	goldenAsserter(t).Assert(t, "query_by_kind", buf.Bytes())
}

func TestQuery_IndexView_Golden(t *testing.T) {
	buf, err := executeQuery(t, "text",
		specFile("views.cue"), specFile("tasks.yaml"), "--view", "byId")
	require.NoError(t, err)

	goldenAsserter(t).Assert(t, "query_by_id", buf.Bytes())
}

func TestQuery_OrderView_Golden(t *testing.T) {
	buf, err := executeQuery(t, "text",
		specFile("views.cue"), specFile("tasks.yaml"), "--view", "inPriorityOrder")
	require.NoError(t, err)

	goldenAsserter(t).Assert(t, "query_in_priority_order", buf.Bytes())
}

func TestQuery_JSONEnvelope(t *testing.T) {
	buf, err := executeQuery(t, "json",
		specFile("views.cue"), specFile("tasks.yaml"), "--view", "byKind")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.TraceID)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "byKind", data["view"])
}

func TestQuery_UnknownView(t *testing.T) {
	buf, err := executeQuery(t, "json",
		specFile("views.cue"), specFile("tasks.yaml"), "--view", "byNothing")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNKNOWN_VIEW", resp.Error.Code)
}

func TestQuery_MissingSpec(t *testing.T) {
	_, err := executeQuery(t, "text",
		filepath.Join(t.TempDir(), "absent.cue"), specFile("tasks.yaml"), "--view", "byKind")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestQuery_MissingDataset(t *testing.T) {
	_, err := executeQuery(t, "text",
		specFile("views.cue"), filepath.Join(t.TempDir(), "absent.yaml"), "--view", "byKind")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestQuery_DuplicateViewSpec(t *testing.T) {
	_, err := executeQuery(t, "text",
		specFile("duplicate.cue"), specFile("tasks.yaml"), "--view", "byKind")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "CONFIG_DUPLICATE_VIEW")
}
