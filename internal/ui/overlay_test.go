package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlayAtReplacesCells(t *testing.T) {
	base := strings.Join([]string{"..........", "..........", ".........."}, "\n")
	got := overlayAt(base, "ab\ncd", 3, 1, 10, 3)

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "..........", lines[0])
	assert.Equal(t, "...ab.....", lines[1])
	assert.Equal(t, "...cd.....", lines[2])
}

func TestOverlayAtClipsBelowCanvas(t *testing.T) {
	got := overlayAt("....\n....", "x\ny\nz", 0, 1, 4, 2)
	assert.Equal(t, "....\nx...", got)
}

func TestOverlayAtPadsShortBase(t *testing.T) {
	got := overlayAt("ab", "X", 5, 0, 8, 1)
	assert.Equal(t, "ab   X  ", got)
	assert.Equal(t, 8, ansi.StringWidth(got))
}

func TestOverlayCenter(t *testing.T) {
	base := strings.Repeat(".....\n", 4) + "....."
	got := overlayCenter(base, "#", 5, 5)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "..#..", lines[2])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", truncate("hello", 0))
	assert.Equal(t, "hello", truncate("hello", 5))
	assert.Equal(t, "hel…", truncate("hello", 4))
}
