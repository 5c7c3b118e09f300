// Package i18n translates the browser's display strings.
//
// English is the source language and lives in the code as fallbacks; other
// languages are embedded message files under locales/.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Translator looks up message IDs for one language.
type Translator struct {
	localizer *goi18n.Localizer
	tag       language.Tag
	logger    *slog.Logger
}

// New builds a Translator for lang (a BCP 47 tag such as "es" or "es-MX").
// Unknown or unsupported languages fall back to English.
func New(lang string, logger *slog.Logger) (*Translator, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	bundle, err := newBundle(localeFS)
	if err != nil {
		return nil, err
	}

	requested := language.English
	if trimmed := strings.TrimSpace(lang); trimmed != "" {
		tag, err := language.Parse(trimmed)
		if err != nil {
			logger.Warn("unknown language, using English", "language", lang, "error", err)
		} else {
			requested = tag
		}
	}

	matcher := language.NewMatcher(bundle.LanguageTags())
	_, idx, confidence := matcher.Match(requested)
	tag := language.English
	if confidence > language.No {
		tag = bundle.LanguageTags()[idx]
	}

	return &Translator{
		localizer: goi18n.NewLocalizer(bundle, tag.String()),
		tag:       tag,
		logger:    logger,
	}, nil
}

func newBundle(fsys fs.FS) (*goi18n.Bundle, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(fsys, "locales/*.toml")
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}
	for _, name := range files {
		if _, err := bundle.LoadMessageFileFS(fsys, name); err != nil {
			return nil, fmt.Errorf("load %s: %w", name, err)
		}
	}
	return bundle, nil
}

// Language returns the language the translator resolved to.
func (t *Translator) Language() language.Tag { return t.tag }

// T returns the translation of key, or fallback when there is none.
func (t *Translator) T(key, fallback string) string {
	if t == nil || t.localizer == nil {
		return fallback
	}
	cfg := &goi18n.LocalizeConfig{MessageID: key}
	if fallback != "" {
		cfg.DefaultMessage = &goi18n.Message{ID: key, Other: fallback}
	}
	msg, err := t.localizer.Localize(cfg)
	if msg == "" {
		if err != nil && fallback != "" {
			t.logger.Debug("translation failed", "key", key, "error", err)
		}
		return fallback
	}
	return msg
}

// Supported lists the languages with an embedded message file, plus English.
func Supported() []string {
	bundle, err := newBundle(localeFS)
	if err != nil {
		return []string{language.English.String()}
	}
	tags := bundle.LanguageTags()
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.String())
	}
	return out
}
