package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/xcstrings-tools/xckit/i18n"
)

func TestMain(m *testing.M) {
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	i18n.Init("en")
	os.Exit(m.Run())
}

func TestValidateInput(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "app.xcstrings")
	if err := os.WriteFile(good, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "app.yaml")
	if err := os.WriteFile(bad, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	if err := validateInput(good); err != nil {
		t.Errorf("validateInput(xcstrings) = %v", err)
	}
	if err := validateInput(bad); err == nil {
		t.Error("validateInput accepted a .yaml file")
	}
	if err := validateInput(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("validateInput accepted a missing file")
	}
}

func TestValidateProviders(t *testing.T) {
	if err := validateProviders("google", ""); err != nil {
		t.Errorf("validateProviders(google) = %v", err)
	}
	if err := validateProviders("deepl", ""); err == nil {
		t.Error("validateProviders accepted an unknown provider")
	}

	t.Setenv("BAIDU_APP_ID", "")
	t.Setenv("BAIDU_APP_KEY", "")
	if err := validateProviders("google", "baidu"); err == nil {
		t.Error("validateProviders accepted baidu without credentials")
	}

	t.Setenv("BAIDU_APP_ID", "id")
	t.Setenv("BAIDU_APP_KEY", "key")
	if err := validateProviders("baidu", ""); err != nil {
		t.Errorf("validateProviders(baidu with creds) = %v", err)
	}
}

func TestLoadDictionariesToleratesBadFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "terms.csv")
	if err := os.WriteFile(good, []byte("English,日本語\nSettings,設定\n"), 0644); err != nil {
		t.Fatal(err)
	}
	empty := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(empty, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	store := loadDictionaries([]string{
		good,
		empty,
		filepath.Join(dir, "missing.csv"),
	})
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1 (bad files skipped)", store.Len())
	}
}

func TestDescribeLanguages(t *testing.T) {
	got := describeLanguages([]string{"ja", "xx"})
	want := "Japanese (ja), xx"
	if got != want {
		t.Errorf("describeLanguages = %q, want %q", got, want)
	}
}
