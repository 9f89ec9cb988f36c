// Package i18n provides the tool's own bilingual (English/Chinese)
// interface messages.
//
// It wraps the gotext library: English msgids are the passthrough default
// and the Chinese catalog is embedded in the binary via //go:embed. The
// interface language comes from the --ui-lang flag or, failing that, the
// gettext environment variables.
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// locales embeds the compiled translation catalogs.
// Directory structure: locales/{lang}/LC_MESSAGES/xckit.po
//
//go:embed all:locales
var locales embed.FS

const domain = "xckit"

var po *gotext.Locale

// current is the normalized interface language ("en" or "zh").
var current = "en"

// Init initializes the interface language. Accepted values are "en" and
// "zh"; an empty lang auto-detects from LANGUAGE/LC_ALL/LC_MESSAGES/LANG.
// Anything unrecognized falls back to English.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}
	current = normalize(lang)

	catalogLang := "en"
	if current == "zh" {
		catalogLang = "zh_CN"
	}
	po = gotext.NewLocaleFSWithPath(catalogLang, locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
}

// Lang returns the active interface language code ("en" or "zh").
func Lang() string { return current }

// T translates a format string and applies its arguments. Without a
// loaded catalog the English msgid is formatted directly.
func T(msgid string, args ...any) string {
	if po == nil {
		return gotext.Get(msgid, args...)
	}
	return po.Get(msgid, args...)
}

// normalize folds locale spellings like zh_CN, zh-Hans, or zh_TW.UTF-8
// down to the two supported interface languages.
func normalize(lang string) string {
	l := strings.ToLower(lang)
	if strings.HasPrefix(l, "zh") {
		return "zh"
	}
	return "en"
}

// detectLanguage reads the gettext environment variables in GNU priority
// order.
func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if val == "" {
			continue
		}
		if env == "LANGUAGE" {
			val = strings.SplitN(val, ":", 2)[0]
		}
		if idx := strings.IndexByte(val, '.'); idx >= 0 {
			val = val[:idx]
		}
		if val == "C" || val == "POSIX" || val == "" {
			continue
		}
		return val
	}
	return "en"
}
