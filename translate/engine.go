package translate

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/xcstrings-tools/xckit/catalog"
	"github.com/xcstrings-tools/xckit/langmeta"
	"github.com/xcstrings-tools/xckit/provider"
)

// ---------------------------------------------------------------------------
// Options and stats
// ---------------------------------------------------------------------------

// Options controls one engine run.
type Options struct {
	// Primary is the provider consulted after the dictionary misses.
	Primary string
	// Fallback, when set and distinct from Primary, is consulted after a
	// failed primary call.
	Fallback string
	// SkipTranslated selects skip mode: only fresh, empty, or
	// placeholder-equal-to-source units are translated. When false the
	// engine runs in full mode and retranslates broadly.
	SkipTranslated bool
	// UILang selects the interface language for progress diagnostics.
	UILang string
	// ThrottleDefault is the pause after a remote call for most providers.
	ThrottleDefault time.Duration
	// ThrottleYoudao is the pause after a remote call to youdao.
	ThrottleYoudao time.Duration
	// OnLog emits progress messages.
	OnLog func(format string, args ...any)
	// OnError emits error messages.
	OnError func(format string, args ...any)
	// OnProgress is called after each resolved pair.
	OnProgress func(done, total int)
}

func (o *Options) log(format string, args ...any) {
	if o.OnLog != nil {
		o.OnLog(format, args...)
	}
}

// Stats is the end-of-run report. It never drives control flow.
type Stats struct {
	// Total is the number of qualifying (entry, locale) pairs.
	Total int
	// Translated counts pairs where a real translation was obtained.
	Translated int
	// Skipped counts already-translated pairs left untouched in skip mode.
	Skipped int
}

// ---------------------------------------------------------------------------
// Qualification
// ---------------------------------------------------------------------------

// symbolOnly holds the characters a source text may consist of entirely and
// still be considered decoration rather than prose.
const symbolOnly = "-: /"

// Meaningful reports whether source text is worth machine-translating when
// a unit's value merely mirrors it: longer than two characters, not a
// format specifier or path, not purely numeric, not symbol-only decoration,
// and containing at least one letter.
func Meaningful(text string) bool {
	if len([]rune(text)) <= 2 {
		return false
	}
	if strings.HasPrefix(text, "%") || strings.HasPrefix(text, "/") {
		return false
	}
	allDigits := true
	allSymbols := true
	hasLetter := false
	for _, r := range text {
		if !unicode.IsDigit(r) {
			allDigits = false
		}
		if !strings.ContainsRune(symbolOnly, r) {
			allSymbols = false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return !allDigits && !allSymbols && hasLetter
}

// qualifies decides whether a unit needs translation. The same predicate
// backs both the counting pass and the mutation pass, so reported totals
// always match what the run actually visits.
func qualifies(value, state, source string, skip bool) bool {
	if state == catalog.StateNew || value == "" {
		return true
	}
	if skip {
		return value == source && Meaningful(source)
	}
	// Full mode additionally re-fires on needs_review and on any unit whose
	// source text passes the meaningful filter, regardless of state.
	if state == catalog.StateNeedsReview {
		return true
	}
	return Meaningful(source)
}

// ---------------------------------------------------------------------------
// Engine
// ---------------------------------------------------------------------------

// Engine is the catalog state machine: it classifies every (entry, locale)
// pair, drives the router for the pairs that need translation, and mutates
// the document in place.
type Engine struct {
	Router *Router
}

// Run processes doc for the given target locales. Entries are visited in
// catalog order, locales in sorted order. The document is mutated in place;
// serialization is the caller's concern.
func (e *Engine) Run(ctx context.Context, doc *catalog.Document, targets []string, opts Options) (Stats, error) {
	langs := append([]string(nil), targets...)
	sort.Strings(langs)

	var stats Stats

	// Counting pass, same predicate as the mutation pass.
	for _, entry := range doc.Entries() {
		if entry.Key() == "" || !entry.ShouldTranslate() {
			continue
		}
		source := entry.SourceValue()
		for _, lang := range langs {
			unit, ok := entry.Unit(lang)
			if !ok {
				continue
			}
			if qualifies(unit.Value(), unit.State(), source, opts.SkipTranslated) {
				stats.Total++
			}
		}
	}

	done := 0
	for _, entry := range doc.Entries() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if entry.Key() == "" {
			continue
		}

		if !entry.ShouldTranslate() {
			e.copyKeyVerbatim(entry, langs)
			continue
		}

		source := entry.SourceValue()
		for _, lang := range langs {
			unit, ok := entry.Unit(lang)
			if !ok {
				continue
			}

			if !qualifies(unit.Value(), unit.State(), source, opts.SkipTranslated) {
				if opts.SkipTranslated && unit.State() == catalog.StateTranslated {
					stats.Skipped++
				}
				continue
			}

			done++
			opts.log("[%d/%d] translating %s (%s): %q",
				done, stats.Total, langmeta.DisplayName(lang, opts.UILang), lang, entry.Key())

			res := e.Router.Resolve(ctx, entry.Key(), lang, opts.Primary, opts.Fallback)

			switch {
			case res.Source == SourceDictionary:
				opts.log("  dictionary match (%s%s): %q -> %q",
					res.Dict.Table, fuzzyTag(res.Dict.Fuzzy), entry.Key(), res.Text)
			case res.Text != entry.Key():
				opts.log("  -> %q (via %s)", res.Text, res.Provider)
			default:
				opts.log("  keeping original text")
			}

			// A failed resolution still marks the unit translated with the
			// key as its value, so it never dangles as new.
			if res.Text != "" && res.Text != entry.Key() {
				unit.SetValue(res.Text)
				stats.Translated++
			} else {
				unit.SetValue(entry.Key())
			}
			unit.SetState(catalog.StateTranslated)

			if opts.OnProgress != nil {
				opts.OnProgress(done, stats.Total)
			}

			// Engine-level throttle: only remote invocations count against
			// vendor rate limits; dictionary hits are free.
			if res.Source == SourcePrimary || res.Source == SourceFallback {
				if err := e.throttle(ctx, res.Provider, opts); err != nil {
					return stats, err
				}
			}
		}
	}

	return stats, nil
}

// copyKeyVerbatim fills fresh or empty units of an excluded entry with the
// entry's own key and marks them satisfied. No dictionary or provider call.
func (e *Engine) copyKeyVerbatim(entry *catalog.Entry, langs []string) {
	for _, lang := range langs {
		unit, ok := entry.Unit(lang)
		if !ok {
			continue
		}
		if unit.State() == catalog.StateNew || unit.Value() == "" {
			unit.SetValue(entry.Key())
			unit.SetState(catalog.StateTranslated)
		}
	}
}

// throttle pauses between remote invocations. Youdao gets a longer pause
// than the other vendors.
func (e *Engine) throttle(ctx context.Context, providerID string, opts Options) error {
	interval := opts.ThrottleDefault
	if providerID == provider.IDYoudao {
		interval = opts.ThrottleYoudao
	}
	if interval <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(interval):
		return nil
	}
}

func fuzzyTag(fuzzy bool) string {
	if fuzzy {
		return ", fuzzy"
	}
	return ""
}

