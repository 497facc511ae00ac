// Package i18n resolves user-facing strings for English and Hausa.
//
// Lookup order: the requested language's table, then English, then the key
// itself. Formatting uses {name} placeholders; a placeholder with no matching
// argument leaves the translation unformatted rather than failing the request.
package i18n

import (
	"fmt"
	"log/slog"
	"strings"
)

const (
	LangEnglish = "en"
	LangHausa   = "ha"
)

// Languages lists the supported language codes, default first.
func Languages() []string {
	return []string{LangEnglish, LangHausa}
}

// Supported reports whether lang is a known language code.
func Supported(lang string) bool {
	return lang == LangEnglish || lang == LangHausa
}

var tables = map[string]map[string]string{
	LangEnglish: {},
	LangHausa:   {},
}

func init() {
	for _, ns := range namespaces {
		merge(LangEnglish, ns.en)
		merge(LangHausa, ns.ha)
	}
}

func merge(lang string, entries map[string]string) {
	t := tables[lang]
	for k, v := range entries {
		t[k] = v
	}
}

// T resolves key in lang, applying optional {name} placeholder arguments.
// It never fails: a missing translation falls back to English and then to the
// literal key, and a formatting problem returns the unformatted translation.
func T(key, lang string, args ...map[string]any) string {
	s, ok := tables[lang][key]
	if !ok {
		s, ok = tables[LangEnglish][key]
		if !ok {
			slog.Warn("missing translation", "key", key, "lang", lang)
			s = key
		}
	}
	if len(args) == 0 || len(args[0]) == 0 {
		return s
	}
	out, err := format(s, args[0])
	if err != nil {
		slog.Warn("translation format failed", "key", key, "lang", lang, "error", err)
		return s
	}
	return out
}

// Opt resolves an enum option's display label (key "opt_" + value). Unlike
// T, an unknown option falls back to the raw value, not the key, and is not
// worth a warning.
func Opt(value, lang string) string {
	key := "opt_" + value
	if s, ok := tables[lang][key]; ok {
		return s
	}
	if s, ok := tables[LangEnglish][key]; ok {
		return s
	}
	return value
}

// format substitutes {name} placeholders. Unknown placeholders are an error so
// the caller gets the unformatted string back instead of partial output.
func format(s string, args map[string]any) (string, error) {
	var b strings.Builder
	for {
		i := strings.IndexByte(s, '{')
		if i < 0 {
			b.WriteString(s)
			return b.String(), nil
		}
		j := strings.IndexByte(s[i:], '}')
		if j < 0 {
			b.WriteString(s)
			return b.String(), nil
		}
		name := s[i+1 : i+j]
		val, ok := args[name]
		if !ok {
			return "", fmt.Errorf("missing placeholder %q", name)
		}
		b.WriteString(s[:i])
		fmt.Fprintf(&b, "%v", val)
		s = s[i+j+1:]
	}
}
