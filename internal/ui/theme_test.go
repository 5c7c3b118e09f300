package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestThemeNames(t *testing.T) {
	assert.Equal(t, []string{"Nightfox", "Kanagawa", "Slate"}, ThemeNames())
}

func TestNextTheme(t *testing.T) {
	cases := map[string]string{
		"Nightfox": "Kanagawa",
		"Kanagawa": "Slate",
		"Slate":    "Nightfox",
		"Unknown":  "Nightfox",
	}
	for current, want := range cases {
		assert.Equal(t, want, NextTheme(current), current)
	}
}

func TestGetTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		assert.Equal(t, name, GetTheme(name).Name)
	}
	assert.Equal(t, "Nightfox", GetTheme("missing").Name)
}

func TestThemesDefineEveryColor(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		colors := []string{
			th.Background, th.Surface, th.SurfaceAlt, th.FocusBg,
			th.SelectionBg, th.SelectionText,
			th.Border, th.BorderMuted, th.BorderFocus,
			th.Text, th.Muted, th.Faint, th.Accent,
			th.Success, th.Warning, th.Danger, th.Info,
		}
		for i, c := range colors {
			assert.Regexp(t, `^#[0-9a-fA-F]{6}$`, c, "%s color %d", name, i)
		}
	}
}

func TestThemeStylesUsePalette(t *testing.T) {
	th := GetTheme("Slate")
	st := th.Styles()
	assert.Equal(t, lipgloss.Color(th.Text), st.Text.GetForeground())
	assert.Equal(t, lipgloss.Color(th.BorderFocus), st.Dialog.GetBorderTopForeground())
	assert.Equal(t, lipgloss.Color(th.SelectionBg), th.TableStyles().Selected.GetBackground())
}
