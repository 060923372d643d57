package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeMutate(t *testing.T, format string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewMutateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func TestMutate_Append_Golden(t *testing.T) {
	buf, err := executeMutate(t, "text",
		specFile("views.cue"), specFile("tasks.yaml"),
		"--op", "append", "--record", `{"kind":"chore","id":4,"priority":9}`)
	require.NoError(t, err)

	goldenAsserter(t).Assert(t, "mutate_append", buf.Bytes())
}

func TestMutate_Reverse(t *testing.T) {
	buf, err := executeMutate(t, "json",
		specFile("views.cue"), specFile("tasks.yaml"), "--op", "reverse")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data := resp.Data.(map[string]any)
	assert.Equal(t, "reverse", data["op"])
	assert.Equal(t, float64(3), data["length"])

	records := data["records"].([]any)
	first := records[0].(map[string]any)
	assert.Equal(t, float64(3), first["id"], "last record of the dataset comes first after reverse")
}

func TestMutate_Splice(t *testing.T) {
	buf, err := executeMutate(t, "json",
		specFile("views.cue"), specFile("tasks.yaml"),
		"--op", "splice", "--start", "1", "--delete", "1")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(2), data["length"])
}

func TestMutate_ImmutableSpec(t *testing.T) {
	buf, err := executeMutate(t, "json",
		specFile("immutable.cue"), specFile("tasks.yaml"),
		"--op", "append", "--record", `{"kind":"chore","id":4}`)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "IMMUTABLE_COLLECTION", resp.Error.Code)
}

func TestMutate_AppendWithoutRecord(t *testing.T) {
	_, err := executeMutate(t, "text",
		specFile("views.cue"), specFile("tasks.yaml"), "--op", "append")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestMutate_UnknownOp(t *testing.T) {
	_, err := executeMutate(t, "text",
		specFile("views.cue"), specFile("tasks.yaml"), "--op", "shuffle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown op")
}

func TestMutate_BadRecordJSON(t *testing.T) {
	_, err := executeMutate(t, "text",
		specFile("views.cue"), specFile("tasks.yaml"),
		"--op", "append", "--record", `{"kind": [unclosed`)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
