package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogsCommand_PrintsTailByLevel(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "cohort.log")
	lines := []string{
		`{"time":"2026-10-18T09:00:00Z","level":"DEBUG","msg":"list fetch issued","generation":1}`,
		`{"time":"2026-10-18T09:00:01Z","level":"INFO","msg":"list created","id":"abc"}`,
		`{"time":"2026-10-18T09:00:02Z","level":"WARN","msg":"list fetch failed","generation":2}`,
	}
	require.NoError(t, os.WriteFile(logPath, []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"logs", "--file", logPath, "--level", "info", "-n", "5"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	got := out.String()
	assert.NotContains(t, got, "list fetch issued", "debug entry printed at info level")
	assert.Contains(t, got, "list created")
	assert.Contains(t, got, "list fetch failed")
}

func TestLogsCommand_RejectsUnknownLevel(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"logs", "--file", filepath.Join(t.TempDir(), "none.log"), "--level", "loud"})
	assert.Error(t, cmd.ExecuteContext(context.Background()))
}

func TestRootCommand_RejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"unexpected"})
	assert.Error(t, cmd.ExecuteContext(context.Background()))
}
