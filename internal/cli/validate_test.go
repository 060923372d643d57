package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeValidate(t *testing.T, format string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func TestValidate_ValidSpec(t *testing.T) {
	buf, err := executeValidate(t, "text", specFile("views.cue"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "spec is valid")
}

func TestValidate_ValidSpecJSON(t *testing.T) {
	buf, err := executeValidate(t, "json", specFile("views.cue"))
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data := resp.Data.(map[string]any)
	assert.Equal(t, true, data["valid"])

	views := data["views"].([]any)
	require.Len(t, views, 3)
	first := views[0].(map[string]any)
	assert.Equal(t, "byKind", first["name"])
	assert.Equal(t, "group", first["kind"])
	assert.Equal(t, "kind", first["path"])
}

func TestValidate_DuplicateNames(t *testing.T) {
	buf, err := executeValidate(t, "text", specFile("duplicate.cue"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "CONFIG_DUPLICATE_VIEW")
}

func TestValidate_MissingFile(t *testing.T) {
	_, err := executeValidate(t, "text", "testdata/absent.cue")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func executeViews(t *testing.T, format string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewViewsCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func TestViews_Table(t *testing.T) {
	buf, err := executeViews(t, "text", specFile("views.cue"))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "byKind")
	assert.Contains(t, out, "byId")
	assert.Contains(t, out, "inPriorityOrder")
	assert.Contains(t, out, "order")
}

func TestViews_JSON(t *testing.T) {
	buf, err := executeViews(t, "json", specFile("views.cue"))
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	views := resp.Data.([]any)
	assert.Len(t, views, 3)
}

func TestViews_BadSpec(t *testing.T) {
	_, err := executeViews(t, "text", specFile("duplicate.cue"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
