package dictionary

import (
	"os"
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

const uiTerms = `English,简体中文,繁體中文,日本語,한국어
Settings,设置,設定,設定,설정
Home Screen,主屏幕,主畫面,ホーム画面,홈 화면
Steps,步数,步數,歩数,
`

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

func TestLoad(t *testing.T) {
	s := NewStore()
	if err := s.Load(writeCSV(t, "ui_terms.csv", uiTerms)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	infos := s.Tables()
	if len(infos) != 1 {
		t.Fatalf("got %d tables, want 1", len(infos))
	}
	if infos[0].Name != "ui_terms" {
		t.Errorf("table name = %q, want ui_terms", infos[0].Name)
	}
	if infos[0].Entries != 3 {
		t.Errorf("entries = %d, want 3", infos[0].Entries)
	}
	if len(infos[0].Columns) != 4 {
		t.Errorf("columns = %v, want 4 locale columns", infos[0].Columns)
	}
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	s := NewStore()
	path := writeCSV(t, "d.csv", `English,简体中文
Settings,设置
onlyonecell
,missing-term
  ,blank-term
`)
	if err := s.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := s.Tables()[0].Entries; got != 1 {
		t.Errorf("entries = %d, want 1 (malformed rows skipped)", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := NewStore()
	if err := s.Load(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("expected error for missing file")
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d after failed load, want 0", s.Len())
	}
}

func TestLoadEmptyFile(t *testing.T) {
	s := NewStore()
	if err := s.Load(writeCSV(t, "empty.csv", "")); err == nil {
		t.Error("expected error for empty file")
	}
}

// ---------------------------------------------------------------------------
// Lookup
// ---------------------------------------------------------------------------

func TestLookupExact(t *testing.T) {
	s := NewStore()
	if err := s.Load(writeCSV(t, "ui_terms.csv", uiTerms)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	m, ok := s.Lookup("Settings", "zh-Hans")
	if !ok {
		t.Fatal("no match for Settings/zh-Hans")
	}
	if m.Text != "设置" || m.Table != "ui_terms" || m.Fuzzy {
		t.Errorf("match = %+v", m)
	}

	m, ok = s.Lookup("Steps", "ja")
	if !ok || m.Text != "歩数" {
		t.Errorf("Steps/ja = (%+v, %v)", m, ok)
	}
}

func TestLookupFuzzy(t *testing.T) {
	s := NewStore()
	if err := s.Load(writeCSV(t, "ui_terms.csv", uiTerms)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	for _, variant := range []string{"home screen", "HomeScreen", "HOME-SCREEN", "home_screen"} {
		m, ok := s.Lookup(variant, "zh-Hans")
		if !ok {
			t.Errorf("no fuzzy match for %q", variant)
			continue
		}
		if m.Text != "主屏幕" || !m.Fuzzy {
			t.Errorf("Lookup(%q) = %+v, want fuzzy 主屏幕", variant, m)
		}
	}
}

func TestLookupMisses(t *testing.T) {
	s := NewStore()
	if err := s.Load(writeCSV(t, "ui_terms.csv", uiTerms)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Unknown term.
	if _, ok := s.Lookup("Bluetooth", "ja"); ok {
		t.Error("unexpected match for unknown term")
	}
	// Known term, empty cell for this locale.
	if _, ok := s.Lookup("Steps", "ko"); ok {
		t.Error("unexpected match for empty cell")
	}
	// Locale without a column convention.
	if _, ok := s.Lookup("Settings", "vi"); ok {
		t.Error("unexpected match for unmapped locale")
	}
}

func TestLookupExactBeatsFuzzyAcrossTables(t *testing.T) {
	s := NewStore()
	// First table only has a fuzzy candidate; second has the exact term.
	if err := s.Load(writeCSV(t, "first.csv", "English,日本語\nhomescreen,ふずい\n")); err != nil {
		t.Fatalf("Load first: %v", err)
	}
	if err := s.Load(writeCSV(t, "second.csv", "English,日本語\nHome Screen,ホーム画面\n")); err != nil {
		t.Fatalf("Load second: %v", err)
	}

	m, ok := s.Lookup("Home Screen", "ja")
	if !ok {
		t.Fatal("no match")
	}
	if m.Table != "second" || m.Fuzzy {
		t.Errorf("match = %+v, want exact from second", m)
	}
}

func TestLookupLoadOrderPrecedence(t *testing.T) {
	s := NewStore()
	if err := s.Load(writeCSV(t, "first.csv", "English,日本語\nSettings,せってい\n")); err != nil {
		t.Fatalf("Load first: %v", err)
	}
	if err := s.Load(writeCSV(t, "second.csv", "English,日本語\nSettings,設定\n")); err != nil {
		t.Fatalf("Load second: %v", err)
	}

	m, ok := s.Lookup("Settings", "ja")
	if !ok {
		t.Fatal("no match")
	}
	if m.Table != "first" || m.Text != "せってい" {
		t.Errorf("match = %+v, want first table to win", m)
	}
}

// ---------------------------------------------------------------------------
// Normalization
// ---------------------------------------------------------------------------

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Home Screen", "homescreen"},
		{"HOME-SCREEN", "homescreen"},
		{"home_screen", "homescreen"},
		{"Already", "already"},
	}
	for _, c := range cases {
		if got := normalize(c.in); got != c.want {
			t.Errorf("normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
