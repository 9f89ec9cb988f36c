// Package translate implements the translation resolution pipeline: a
// dictionary-first router over the remote providers, and the catalog engine
// that drives it across every (entry, locale) pair.
package translate

import (
	"context"

	"github.com/xcstrings-tools/xckit/dictionary"
	"github.com/xcstrings-tools/xckit/provider"
)

// Source identifies which pipeline step produced a resolution.
type Source int

const (
	// SourceNone means no step was attempted (no providers configured).
	SourceNone Source = iota
	// SourceDictionary means a loaded dictionary matched; no remote call.
	SourceDictionary
	// SourcePrimary means the primary provider was the last step invoked.
	SourcePrimary
	// SourceFallback means the fallback provider was the last step invoked.
	SourceFallback
)

// Resolution is the outcome of resolving one (text, locale) pair. When
// Text equals the input, every attempted step failed: the terminal
// "no translation available" outcome, not an error.
type Resolution struct {
	Text     string
	Source   Source
	Provider string            // provider ID for remote sources
	Dict     *dictionary.Match // provenance for dictionary hits
}

// apiLangs maps catalog locale codes to each vendor's own language
// identifier. Vendors disagree on Chinese, Japanese, and Korean codes in
// particular. A locale or provider absent here passes the catalog code
// through unchanged.
var apiLangs = map[string]map[string]string{
	"it":      {provider.IDGoogle: "it", provider.IDYoudao: "it", provider.IDBaidu: "it", provider.IDTencent: "it"},
	"ja":      {provider.IDGoogle: "ja", provider.IDYoudao: "ja", provider.IDBaidu: "jp", provider.IDTencent: "ja"},
	"zh-Hans": {provider.IDGoogle: "zh-cn", provider.IDYoudao: "zh-CHS", provider.IDBaidu: "zh", provider.IDTencent: "zh"},
	"zh-Hant": {provider.IDGoogle: "zh-tw", provider.IDYoudao: "zh-CHT", provider.IDBaidu: "cht", provider.IDTencent: "zh-TW"},
	"ko":      {provider.IDGoogle: "ko", provider.IDYoudao: "ko", provider.IDBaidu: "kor", provider.IDTencent: "ko"},
	"fr":      {provider.IDGoogle: "fr", provider.IDYoudao: "fr", provider.IDBaidu: "fra", provider.IDTencent: "fr"},
	"de":      {provider.IDGoogle: "de", provider.IDYoudao: "de", provider.IDBaidu: "de", provider.IDTencent: "de"},
	"es":      {provider.IDGoogle: "es", provider.IDYoudao: "es", provider.IDBaidu: "spa", provider.IDTencent: "es"},
	"pt":      {provider.IDGoogle: "pt", provider.IDYoudao: "pt", provider.IDBaidu: "pt", provider.IDTencent: "pt"},
	"ru":      {provider.IDGoogle: "ru", provider.IDYoudao: "ru", provider.IDBaidu: "ru", provider.IDTencent: "ru"},
}

// APILang returns the vendor-specific language code for a catalog locale.
func APILang(locale, providerID string) string {
	if m, ok := apiLangs[locale]; ok {
		if code, ok := m[providerID]; ok {
			return code
		}
	}
	return locale
}

// Router composes the dictionary store and a provider set into a single
// resolve operation with dictionary-first precedence.
type Router struct {
	Dictionary *dictionary.Store
	Providers  map[string]provider.Translator
}

// Resolve translates text into locale: dictionary first, then the primary
// provider, then the fallback provider if the primary returned the input
// unchanged and a distinct fallback is configured. The returned text may
// equal the input when all steps failed.
func (r *Router) Resolve(ctx context.Context, text, locale, primary, fallback string) Resolution {
	if r.Dictionary != nil {
		if m, ok := r.Dictionary.Lookup(text, locale); ok {
			return Resolution{Text: m.Text, Source: SourceDictionary, Dict: &m}
		}
	}

	prov, ok := r.Providers[primary]
	if !ok {
		// Unknown selection degrades to the unauthenticated provider.
		prov, ok = r.Providers[provider.IDGoogle]
		if !ok {
			return Resolution{Text: text, Source: SourceNone}
		}
		primary = provider.IDGoogle
	}

	result := prov.Translate(ctx, text, APILang(locale, primary))
	res := Resolution{Text: result, Source: SourcePrimary, Provider: primary}

	if result == text && fallback != "" && fallback != primary {
		if fb, ok := r.Providers[fallback]; ok {
			result = fb.Translate(ctx, text, APILang(locale, fallback))
			res = Resolution{Text: result, Source: SourceFallback, Provider: fallback}
		}
	}

	return res
}
