package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// highlightMatch styles the runes of text that fuzzy-match query. Text is
// returned unstyled when query is blank or does not match.
func highlightMatch(text, query string, base, match lipgloss.Style) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return base.Render(text)
	}
	matches := fuzzy.Find(query, []string{text})
	if len(matches) == 0 {
		return base.Render(text)
	}

	hit := make(map[int]bool, len(matches[0].MatchedIndexes))
	for _, idx := range matches[0].MatchedIndexes {
		hit[idx] = true
	}

	var b strings.Builder
	var run strings.Builder
	inMatch := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if inMatch {
			b.WriteString(match.Render(run.String()))
		} else {
			b.WriteString(base.Render(run.String()))
		}
		run.Reset()
	}
	// MatchedIndexes are byte offsets into text.
	for i, r := range text {
		if hit[i] != inMatch {
			flush()
			inMatch = hit[i]
		}
		run.WriteRune(r)
	}
	flush()
	return b.String()
}
