package translate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/xcstrings-tools/xckit/dictionary"
	"github.com/xcstrings-tools/xckit/provider"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

// fakeProvider records calls and maps text to a fixed translation. An
// empty result map simulates failure (input returned unchanged).
type fakeProvider struct {
	id      string
	results map[string]string
	calls   []string // apiLang per call
}

func (f *fakeProvider) ID() string { return f.id }

func (f *fakeProvider) Translate(ctx context.Context, text, apiLang string) string {
	f.calls = append(f.calls, apiLang)
	if out, ok := f.results[text]; ok {
		return out
	}
	return text
}

func loadTestDict(t *testing.T, content string) *dictionary.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dict.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing dict: %v", err)
	}
	s := dictionary.NewStore()
	if err := s.Load(path); err != nil {
		t.Fatalf("loading dict: %v", err)
	}
	return s
}

// ---------------------------------------------------------------------------
// Locale mapping
// ---------------------------------------------------------------------------

func TestAPILang(t *testing.T) {
	cases := []struct {
		locale, prov, want string
	}{
		{"ja", provider.IDBaidu, "jp"},
		{"ja", provider.IDGoogle, "ja"},
		{"zh-Hans", provider.IDGoogle, "zh-cn"},
		{"zh-Hans", provider.IDYoudao, "zh-CHS"},
		{"zh-Hans", provider.IDBaidu, "zh"},
		{"zh-Hant", provider.IDTencent, "zh-TW"},
		{"zh-Hant", provider.IDBaidu, "cht"},
		{"ko", provider.IDBaidu, "kor"},
		{"fr", provider.IDBaidu, "fra"},
		{"es", provider.IDBaidu, "spa"},
		{"vi", provider.IDGoogle, "vi"}, // unmapped locale passes through
		{"de", "nope", "de"},            // unmapped provider passes through
	}
	for _, c := range cases {
		if got := APILang(c.locale, c.prov); got != c.want {
			t.Errorf("APILang(%q, %q) = %q, want %q", c.locale, c.prov, got, c.want)
		}
	}
}

// ---------------------------------------------------------------------------
// Resolution order
// ---------------------------------------------------------------------------

func TestResolveDictionaryFirst(t *testing.T) {
	prov := &fakeProvider{id: provider.IDGoogle, results: map[string]string{"Settings": "from-provider"}}
	r := &Router{
		Dictionary: loadTestDict(t, "English,日本語\nSettings,設定\n"),
		Providers:  map[string]provider.Translator{provider.IDGoogle: prov},
	}

	res := r.Resolve(context.Background(), "Settings", "ja", provider.IDGoogle, "")
	if res.Source != SourceDictionary || res.Text != "設定" {
		t.Errorf("Resolve = %+v, want dictionary hit 設定", res)
	}
	if res.Dict == nil || res.Dict.Table != "dict" {
		t.Errorf("missing dictionary provenance: %+v", res.Dict)
	}
	if len(prov.calls) != 0 {
		t.Errorf("provider called %d times on a dictionary hit", len(prov.calls))
	}
}

func TestResolvePrimaryProvider(t *testing.T) {
	prov := &fakeProvider{id: provider.IDBaidu, results: map[string]string{"Settings": "設定"}}
	r := &Router{
		Dictionary: dictionary.NewStore(),
		Providers:  map[string]provider.Translator{provider.IDBaidu: prov},
	}

	res := r.Resolve(context.Background(), "Settings", "ja", provider.IDBaidu, "")
	if res.Source != SourcePrimary || res.Provider != provider.IDBaidu || res.Text != "設定" {
		t.Errorf("Resolve = %+v", res)
	}
	if len(prov.calls) != 1 || prov.calls[0] != "jp" {
		t.Errorf("provider saw apiLang %v, want [jp]", prov.calls)
	}
}

func TestResolveFallbackAfterPrimaryFailure(t *testing.T) {
	primary := &fakeProvider{id: provider.IDGoogle} // always fails
	fallback := &fakeProvider{id: provider.IDYoudao, results: map[string]string{"Settings": "設定"}}
	r := &Router{
		Providers: map[string]provider.Translator{
			provider.IDGoogle: primary,
			provider.IDYoudao: fallback,
		},
	}

	res := r.Resolve(context.Background(), "Settings", "ja", provider.IDGoogle, provider.IDYoudao)
	if res.Source != SourceFallback || res.Provider != provider.IDYoudao || res.Text != "設定" {
		t.Errorf("Resolve = %+v, want fallback hit", res)
	}
	if len(primary.calls) != 1 || len(fallback.calls) != 1 {
		t.Errorf("calls: primary %d, fallback %d, want 1 each", len(primary.calls), len(fallback.calls))
	}
}

func TestResolveNoFallbackOnPrimarySuccess(t *testing.T) {
	primary := &fakeProvider{id: provider.IDGoogle, results: map[string]string{"Settings": "設定"}}
	fallback := &fakeProvider{id: provider.IDYoudao}
	r := &Router{
		Providers: map[string]provider.Translator{
			provider.IDGoogle: primary,
			provider.IDYoudao: fallback,
		},
	}

	res := r.Resolve(context.Background(), "Settings", "ja", provider.IDGoogle, provider.IDYoudao)
	if res.Source != SourcePrimary {
		t.Errorf("Resolve = %+v, want primary hit", res)
	}
	if len(fallback.calls) != 0 {
		t.Error("fallback called despite primary success")
	}
}

func TestResolveFallbackSameAsPrimary(t *testing.T) {
	primary := &fakeProvider{id: provider.IDGoogle}
	r := &Router{Providers: map[string]provider.Translator{provider.IDGoogle: primary}}

	res := r.Resolve(context.Background(), "Settings", "ja", provider.IDGoogle, provider.IDGoogle)
	if res.Text != "Settings" {
		t.Errorf("Resolve = %+v, want input back", res)
	}
	if len(primary.calls) != 1 {
		t.Errorf("primary called %d times, want 1 (no self-fallback)", len(primary.calls))
	}
}

func TestResolveUnknownPrimaryDegradesToGoogle(t *testing.T) {
	google := &fakeProvider{id: provider.IDGoogle, results: map[string]string{"Settings": "設定"}}
	r := &Router{Providers: map[string]provider.Translator{provider.IDGoogle: google}}

	res := r.Resolve(context.Background(), "Settings", "ja", "mystery", "")
	if res.Source != SourcePrimary || res.Provider != provider.IDGoogle || res.Text != "設定" {
		t.Errorf("Resolve = %+v, want degraded google hit", res)
	}
}

func TestResolveNoProviders(t *testing.T) {
	r := &Router{Providers: map[string]provider.Translator{}}
	res := r.Resolve(context.Background(), "Settings", "ja", "mystery", "")
	if res.Source != SourceNone || res.Text != "Settings" {
		t.Errorf("Resolve = %+v, want untouched input with SourceNone", res)
	}
}
