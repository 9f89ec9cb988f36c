// Package langmeta provides a shared locale metadata registry (English and
// Chinese display names) used by the CLI and run reporting.
package langmeta

import "strings"

// Meta describes locale display metadata in both interface languages.
type Meta struct {
	NameEN string
	NameZH string
}

// Registry contains canonical locale metadata for the locales the
// translation pipeline knows about. Variants like zh_Hans or JA are
// resolved in Resolve() via normalization and base fallback.
var Registry = map[string]Meta{
	"ar":      {NameEN: "Arabic", NameZH: "阿拉伯语"},
	"de":      {NameEN: "German", NameZH: "德语"},
	"es":      {NameEN: "Spanish", NameZH: "西班牙语"},
	"fr":      {NameEN: "French", NameZH: "法语"},
	"hi":      {NameEN: "Hindi", NameZH: "印地语"},
	"it":      {NameEN: "Italian", NameZH: "意大利语"},
	"ja":      {NameEN: "Japanese", NameZH: "日语"},
	"ko":      {NameEN: "Korean", NameZH: "韩语"},
	"pt":      {NameEN: "Portuguese", NameZH: "葡萄牙语"},
	"ru":      {NameEN: "Russian", NameZH: "俄语"},
	"th":      {NameEN: "Thai", NameZH: "泰语"},
	"vi":      {NameEN: "Vietnamese", NameZH: "越南语"},
	"zh":      {NameEN: "Chinese", NameZH: "中文"},
	"zh-Hans": {NameEN: "Simplified Chinese", NameZH: "简体中文"},
	"zh-Hant": {NameEN: "Traditional Chinese", NameZH: "繁体中文"},
}

func canonicalize(code string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(code), "_", "-")
	if normalized == "" {
		return ""
	}
	parts := strings.Split(normalized, "-")
	parts[0] = strings.ToLower(parts[0])
	if len(parts) >= 2 {
		// Title-case script subtags (Hans), upper-case region subtags (TW).
		switch len(parts[1]) {
		case 4:
			parts[1] = strings.ToUpper(parts[1][:1]) + strings.ToLower(parts[1][1:])
		case 2:
			parts[1] = strings.ToUpper(parts[1])
		}
	}
	return strings.Join(parts, "-")
}

// Resolve returns best-effort metadata for a locale code, accepting
// variants like zh_Hans and falling back to the base language.
func Resolve(code string) (Meta, bool) {
	if m, ok := Registry[code]; ok {
		return m, true
	}
	normalized := canonicalize(code)
	if m, ok := Registry[normalized]; ok {
		return m, true
	}
	if parts := strings.SplitN(normalized, "-", 2); len(parts) == 2 {
		if m, ok := Registry[parts[0]]; ok {
			return m, true
		}
	}
	return Meta{}, false
}

// DisplayName returns the human label for a locale code in the given
// interface language ("en" or "zh"). Unknown codes pass through unchanged;
// an unknown interface language falls back to English. Total function, no
// error path.
func DisplayName(code, uiLang string) string {
	m, ok := Resolve(code)
	if !ok {
		return code
	}
	if uiLang == "zh" {
		return m.NameZH
	}
	return m.NameEN
}
