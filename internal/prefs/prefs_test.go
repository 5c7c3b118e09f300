package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePrefs(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	assert.Equal(t, Default(), Load(""))
}

func TestLoad_ReadsDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	writePrefs(t, filepath.Join(home, ".config", "cohort", "prefs.toml"),
		"theme = \"Slate\"\npage_size = 25\nview_mode = \" System \"\n")

	p := Load("")
	assert.Equal(t, "Slate", p.Theme)
	assert.Equal(t, 25, p.PageSize)
	assert.Equal(t, "system", p.ViewMode)
}

func TestSave_RoundTripsThroughLoad(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "subdir", "prefs.toml")

	want := Prefs{Theme: "Kanagawa", PageSize: 50, ViewMode: "user"}
	require.NoError(t, Save(prefsFile, want))
	assert.Equal(t, want, Load(prefsFile))
}

func TestLoad_FixesUpBadValues(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
	writePrefs(t, prefsFile, "theme = \"\"\npage_size = -4\n")

	p := Load(prefsFile)
	assert.Equal(t, defaultTheme, p.Theme)
	assert.Zero(t, p.PageSize)
}

func TestLoad_InvalidTOMLFallsBackToDefault(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
	writePrefs(t, prefsFile, "not valid toml {{{\n")

	assert.Equal(t, Default(), Load(prefsFile))
}
