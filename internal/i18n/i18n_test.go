package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/five82/cohort/internal/listview"
)

var _ listview.Translator = (*Translator)(nil)

func TestEnglishUsesFallbacks(t *testing.T) {
	tr, err := New("en", nil)
	require.NoError(t, err)
	assert.Equal(t, language.English, tr.Language())
	assert.Equal(t, "Starred lists", tr.T("starredLists", "Starred lists"))
	assert.Equal(t, "", tr.T("starredMarker", ""))
}

func TestSpanishTranslates(t *testing.T) {
	tr, err := New("es-MX", nil)
	require.NoError(t, err)
	assert.Equal(t, "es", tr.Language().String())
	assert.Equal(t, "Mis listas", tr.T("myLists", "My lists"))
	assert.Equal(t, "destacadas", listview.DeriveFilter(listview.ModeStarred, "", tr).Label)
	assert.Equal(t, "untranslated", tr.T("noSuchKey", "untranslated"))
}

func TestUnknownLanguageFallsBackToEnglish(t *testing.T) {
	for _, lang := range []string{"", "xx-invalid-!!", "ja"} {
		tr, err := New(lang, nil)
		require.NoError(t, err, lang)
		assert.Equal(t, language.English, tr.Language(), lang)
		assert.Equal(t, "My lists", tr.T("myLists", "My lists"), lang)
	}
}

func TestNilTranslatorReturnsFallback(t *testing.T) {
	var tr *Translator
	assert.Equal(t, "x", tr.T("k", "x"))
}

func TestSupported(t *testing.T) {
	assert.ElementsMatch(t, []string{"en", "es"}, Supported())
}
