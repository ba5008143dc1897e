package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/heyjunin/reactlog/pkg/errors"
	"github.com/heyjunin/reactlog/pkg/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeScript(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReplayJSONLinesToStdout(t *testing.T) {
	path := writeScript(t, "script.jsonl", `{"op":"create","ref":"a","name":"x","value":10}
{"op":"update","ref":"a","value":11}
`)

	stdout, _, err := execute(t, "replay", "--sink", "stdout", path)
	require.NoError(t, err)

	assert.Equal(t, "Created x with value: 10\nUpdated x to value: 11\n", stdout)
}

func TestReplayDefaultSink(t *testing.T) {
	var sink bytes.Buffer
	old := plugin.DefaultOutput
	plugin.DefaultOutput = &sink
	t.Cleanup(func() { plugin.DefaultOutput = old })

	path := writeScript(t, "script.jsonl", `{"op":"create","ref":"a","name":"x","value":1}`)

	stdout, _, err := execute(t, "replay", path)
	require.NoError(t, err)

	assert.Empty(t, stdout)
	assert.Equal(t, "Created x with value: 1\n", sink.String())
}

func TestReplayYAMLUnnamed(t *testing.T) {
	path := writeScript(t, "script.yaml", `
- {op: create, ref: a, value: 5}
- {op: name, ref: a, name: y}
`)

	stdout, _, err := execute(t, "replay", "--sink", "stdout", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Regexp(t, `^Created Variable\(id=\d+\) with value: 5$`, lines[0])
	assert.Regexp(t, `^Named Variable\(id=\d+\) as y$`, lines[1])
}

func TestReplayExplicitFormat(t *testing.T) {
	path := writeScript(t, "script.txt", "- {op: create, ref: a, name: n, value: 1}\n")

	stdout, _, err := execute(t, "replay", "--sink", "stdout", "--format", "yaml", path)
	require.NoError(t, err)
	assert.Equal(t, "Created n with value: 1\n", stdout)
}

func TestReplayProgressFile(t *testing.T) {
	path := writeScript(t, "script.jsonl", `{"op":"create","ref":"a","value":1}`)
	progressPath := filepath.Join(t.TempDir(), "progress.txt")

	_, _, err := execute(t, "replay", "--sink", "stdout", "--progress-file", progressPath, path)
	require.NoError(t, err)

	data, err := os.ReadFile(progressPath)
	require.NoError(t, err)
	assert.Equal(t, "100.00", string(data))
}

func TestReplayErrors(t *testing.T) {
	good := writeScript(t, "good.jsonl", `{"op":"create","ref":"a","value":1}`)
	bad := writeScript(t, "bad.jsonl", `{"op":"update","ref":"a","value":1}`)

	tests := []struct {
		name string
		args []string
		typ  errors.ErrorType
		code int
	}{
		{name: "missing file", args: []string{"replay", filepath.Join(t.TempDir(), "nope.jsonl")}, typ: errors.SystemError, code: errors.ErrFileNotFound},
		{name: "unknown ref", args: []string{"replay", "--sink", "stdout", bad}, typ: errors.ReplayError, code: errors.ErrReplayUnknownRef},
		{name: "progress on stderr sink", args: []string{"replay", "--progress", good}, typ: errors.ValidationError, code: 4},
		{name: "bad sink", args: []string{"replay", "--sink", "file", good}, typ: errors.ValidationError, code: 3},
		{name: "bad format", args: []string{"replay", "--format", "toml", good}, typ: errors.ScriptError, code: errors.ErrScriptUnknownFormat},
		{name: "bad log level", args: []string{"replay", "--log-level", "loud", good}, typ: errors.ValidationError, code: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			sErr, ok := err.(*errors.StructuredError)
			require.True(t, ok, "expected StructuredError, got %T", err)
			assert.Equal(t, tt.typ, sErr.Type)
			assert.Equal(t, tt.code, sErr.Code)
		})
	}
}

func TestReplayRequiresScript(t *testing.T) {
	_, _, err := execute(t, "replay")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "reactlog dev\n", stdout)
}
