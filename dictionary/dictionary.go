// Package dictionary implements the curated translation tables consulted
// before any remote provider.
//
// Each table is a CSV file: row 1 holds column headers, where column 0 is
// the source-term header (ignored) and every other column is named after
// the locale it serves (e.g. 简体中文, 日本語). Subsequent rows map the
// column-0 source term to its per-locale translations.
//
// Multiple tables may be loaded; they are merged at lookup time, not at
// load time, so a match can always be attributed to the table it came from.
package dictionary

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPath is probed and auto-loaded when no dictionaries are supplied
// explicitly.
const DefaultPath = "dictionary.csv"

// localeColumns maps catalog locale codes to the column-naming convention
// used inside dictionary files. A locale absent here cannot be served by
// dictionaries and falls through to the providers.
var localeColumns = map[string]string{
	"zh-Hans": "简体中文",
	"zh-Hant": "繁體中文",
	"ja":      "日本語",
	"it":      "Italiano",
	"ko":      "한국어",
	"fr":      "Français",
	"de":      "Deutsch",
	"es":      "Español",
	"pt":      "Português",
	"ru":      "Русский",
}

// table is one loaded dictionary file.
type table struct {
	name  string
	cols  []string                     // locale column names, header order
	terms []string                     // source terms, row order
	rows  map[string]map[string]string // term -> column name -> translation
}

// Store holds all loaded dictionary tables in load order.
type Store struct {
	tables []*table
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load parses one CSV dictionary file and appends it to the store. Failure
// is per-file: the error is returned and previously loaded tables are
// unaffected.
func (s *Store) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening dictionary %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // rows may be ragged

	records, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("parsing dictionary %s: %w", path, err)
	}
	if len(records) == 0 {
		return fmt.Errorf("parsing dictionary %s: empty file", path)
	}

	headers := records[0]
	t := &table{
		name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		rows: make(map[string]map[string]string),
	}
	for i, h := range headers {
		if i == 0 {
			continue // column 0 is the source term
		}
		t.cols = append(t.cols, strings.TrimSpace(h))
	}

	for _, row := range records[1:] {
		if len(row) < 2 {
			continue
		}
		term := strings.TrimSpace(row[0])
		if term == "" {
			continue
		}
		translations := make(map[string]string)
		for i, col := range t.cols {
			idx := i + 1
			if idx < len(row) {
				if v := strings.TrimSpace(row[idx]); v != "" {
					translations[col] = v
				}
			}
		}
		if _, dup := t.rows[term]; !dup {
			t.terms = append(t.terms, term)
		}
		t.rows[term] = translations
	}

	s.tables = append(s.tables, t)
	return nil
}

// ---------------------------------------------------------------------------
// Lookup
// ---------------------------------------------------------------------------

// Match is a successful dictionary lookup with its provenance.
type Match struct {
	Text  string // the translation
	Table string // which dictionary it came from
	Fuzzy bool   // true when found via normalized matching
}

// normalize folds case and strips spaces, hyphens, and underscores so that
// "Home Screen", "homescreen", and "HOME-SCREEN" all compare equal.
func normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, "_", "")
}

// Lookup searches all loaded tables for a translation of text into locale.
// Tables are scanned in load order; an exact term match in any table beats
// a fuzzy match in every table.
func (s *Store) Lookup(text, locale string) (Match, bool) {
	col, ok := localeColumns[locale]
	if !ok {
		return Match{}, false
	}

	// Exact pass.
	for _, t := range s.tables {
		if translations, ok := t.rows[text]; ok {
			if v, ok := translations[col]; ok {
				return Match{Text: v, Table: t.name}, true
			}
		}
	}

	// Fuzzy pass.
	want := normalize(text)
	for _, t := range s.tables {
		for _, term := range t.terms {
			if normalize(term) != want {
				continue
			}
			if v, ok := t.rows[term][col]; ok {
				return Match{Text: v, Table: t.name, Fuzzy: true}, true
			}
		}
	}

	return Match{}, false
}

// ---------------------------------------------------------------------------
// Introspection
// ---------------------------------------------------------------------------

// Info summarizes one loaded table.
type Info struct {
	Name    string
	Entries int
	Columns []string
}

// Tables returns a summary of every loaded table in load order.
func (s *Store) Tables() []Info {
	infos := make([]Info, 0, len(s.tables))
	for _, t := range s.tables {
		infos = append(infos, Info{
			Name:    t.name,
			Entries: len(t.terms),
			Columns: append([]string(nil), t.cols...),
		})
	}
	return infos
}

// Len returns the number of loaded tables.
func (s *Store) Len() int { return len(s.tables) }
