// xckit is a dictionary-first translator for strings-catalog files
// (.xcstrings / .json) with multiple remote providers.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/xcstrings-tools/xckit/catalog"
	"github.com/xcstrings-tools/xckit/config"
	"github.com/xcstrings-tools/xckit/credentials"
	"github.com/xcstrings-tools/xckit/dictionary"
	"github.com/xcstrings-tools/xckit/i18n"
	"github.com/xcstrings-tools/xckit/langmeta"
	"github.com/xcstrings-tools/xckit/provider"
	"github.com/xcstrings-tools/xckit/translate"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var logger *slog.Logger

// ---------------------------------------------------------------------------
// Global flags
// ---------------------------------------------------------------------------

var uiLang string

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "xckit",
		Short: "Dictionary-first translator for strings catalogs",
		Long: `xckit is a dictionary-first translator for strings-catalog files.

Fills in missing or stale translations in a .xcstrings/.json catalog.
Target languages are detected from the catalog itself. Every string is
resolved through CSV dictionaries first, then a remote provider, then an
optional fallback provider.

Providers:
  google    free web endpoint, no credentials
  youdao    YOUDAO_APP_KEY / YOUDAO_APP_SECRET
  baidu     BAIDU_APP_ID / BAIDU_APP_KEY
  tencent   TENCENT_SECRET_ID / TENCENT_SECRET_KEY`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			i18n.Init(uiLang)
		},
	}

	root.PersistentFlags().StringVar(&uiLang, "ui-lang", "", "Interface language (en or zh, default: auto-detect)")

	root.AddCommand(
		newTranslateCmd(),
		newLanguagesCmd(),
		newDictsCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	logger = slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		TimeFormat: time.Kitchen,
	}))

	if err := newRootCmd().Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// translate
// ---------------------------------------------------------------------------

func newTranslateCmd() *cobra.Command {
	var (
		output    string
		dictPaths []string
		primary   string
		fallback  string
		full      bool
	)

	cmd := &cobra.Command{
		Use:   "translate INPUT",
		Short: "Fill in missing translations in a strings catalog",
		Long: `Translate a strings catalog in place and write the result.

The output path defaults to the input name with a _translated suffix.
Dictionaries are consulted before any remote provider; a dictionary.csv in
the working directory is loaded automatically when present.

By default only fresh, empty, or source-mirroring entries are translated
(skip mode). Use --full to retranslate broadly, including entries marked
needs_review.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd.Context(), args[0], output, dictPaths, primary, fallback, !full)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (default: derived from input)")
	cmd.Flags().StringArrayVarP(&dictPaths, "dict", "d", nil, "Dictionary CSV file (repeatable)")
	cmd.Flags().StringVar(&primary, "provider", provider.IDGoogle, "Primary translation provider")
	cmd.Flags().StringVar(&fallback, "fallback", "", "Fallback translation provider")
	cmd.Flags().BoolVar(&full, "full", false, "Retranslate all qualifying entries, not just new/empty ones")

	return cmd
}

func runTranslate(ctx context.Context, input, output string, dictPaths []string, primary, fallback string, skipTranslated bool) error {
	credentials.LoadDotenv()

	if err := validateInput(input); err != nil {
		return err
	}
	if err := validateProviders(primary, fallback); err != nil {
		return err
	}

	rt, err := config.Load()
	if err != nil {
		return err
	}

	doc, err := catalog.ParseFile(input)
	if err != nil {
		return errors.New(i18n.T("reading catalog: %v", err))
	}

	targets, err := catalog.DetectTargetLanguages(doc)
	if err != nil {
		return errors.New(i18n.T("reading catalog: %v", err))
	}
	if len(targets) == 0 {
		return errors.New(i18n.T("no target languages detected in %s", input))
	}
	logger.Info(i18n.T("Detected target languages: %s", describeLanguages(targets)))

	store := loadDictionaries(dictPaths)

	providerLog := func(format string, args ...any) {
		logger.Warn(fmt.Sprintf(format, args...))
	}
	router := &translate.Router{
		Dictionary: store,
		Providers:  provider.All(rt, providerLog),
	}
	engine := &translate.Engine{Router: router}

	mode := i18n.T("skip translated")
	if !skipTranslated {
		mode = i18n.T("full translation")
	}
	logger.Info(i18n.T("Starting translation"))
	logger.Info(i18n.T("Translation mode: %s", mode))
	logger.Info(i18n.T("Translation method: %s", primary))
	if fallback != "" {
		logger.Info(i18n.T("Fallback method: %s", fallback))
	}
	logger.Info(i18n.T("Target languages: %s", strings.Join(targets, ", ")))

	stats, err := engine.Run(ctx, doc, targets, translate.Options{
		Primary:         primary,
		Fallback:        fallback,
		SkipTranslated:  skipTranslated,
		UILang:          i18n.Lang(),
		ThrottleDefault: rt.ThrottleDefault,
		ThrottleYoudao:  rt.ThrottleYoudao,
		OnLog: func(format string, args ...any) {
			logger.Info(fmt.Sprintf(format, args...))
		},
		OnError: func(format string, args ...any) {
			logger.Warn(fmt.Sprintf(format, args...))
		},
	})
	if err != nil {
		return err
	}

	if output == "" {
		output = catalog.DeriveOutputPath(input)
	}
	if err := doc.WriteFile(output); err != nil {
		return errors.New(i18n.T("writing output: %v", err))
	}

	logger.Info(i18n.T("Translation completed"))
	logger.Info(i18n.T("Total entries: %d", stats.Total))
	logger.Info(i18n.T("Successfully translated: %d", stats.Translated))
	if skipTranslated {
		logger.Info(i18n.T("Skipped already translated: %d", stats.Skipped))
	}
	logger.Info(i18n.T("Output file: %s", output))
	return nil
}

func validateInput(input string) error {
	if _, err := os.Stat(input); err != nil {
		return errors.New(i18n.T("input file not found: %s", input))
	}
	if !catalog.HasKnownExtension(input) {
		return errors.New(i18n.T("unsupported file extension %q (expected .xcstrings or .json)", input))
	}
	return nil
}

func validateProviders(primary, fallback string) error {
	for _, id := range []string{primary, fallback} {
		if id == "" {
			continue
		}
		if !provider.Known(id) {
			return errors.New(i18n.T("unknown provider %q (choose from: %s)", id, strings.Join(provider.IDs, ", ")))
		}
		if missing := credentials.Missing(id); len(missing) > 0 {
			return errors.New(i18n.T("missing environment variables for %s: %s", id, strings.Join(missing, ", ")))
		}
	}
	return nil
}

// loadDictionaries loads explicit dictionary paths plus the default probe.
// Dictionary load failures are per-file: reported and skipped.
func loadDictionaries(paths []string) *dictionary.Store {
	store := dictionary.NewStore()

	if len(paths) == 0 {
		if _, err := os.Stat(dictionary.DefaultPath); err == nil {
			paths = []string{dictionary.DefaultPath}
		}
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			logger.Warn(i18n.T("Dictionary file not found: %s", path))
			continue
		}
		if err := store.Load(path); err != nil {
			logger.Warn(i18n.T("failed to load dictionary %s: %v", path, err))
			continue
		}
		infos := store.Tables()
		last := infos[len(infos)-1]
		logger.Info(i18n.T("Loaded dictionary %s: %d entries", last.Name, last.Entries))
	}

	if store.Len() == 0 {
		logger.Warn(i18n.T("No dictionaries loaded, using remote providers only"))
	}
	return store
}

func describeLanguages(codes []string) string {
	parts := make([]string, 0, len(codes))
	for _, code := range codes {
		name := langmeta.DisplayName(code, i18n.Lang())
		if name == code {
			parts = append(parts, code)
		} else {
			parts = append(parts, fmt.Sprintf("%s (%s)", name, code))
		}
	}
	return strings.Join(parts, ", ")
}

// ---------------------------------------------------------------------------
// languages (read-only: show detected target locales)
// ---------------------------------------------------------------------------

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages INPUT",
		Short: "Show target languages detected in a catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if err := validateInput(input); err != nil {
				return err
			}
			doc, err := catalog.ParseFile(input)
			if err != nil {
				return errors.New(i18n.T("reading catalog: %v", err))
			}
			targets, err := catalog.DetectTargetLanguages(doc)
			if err != nil {
				return errors.New(i18n.T("reading catalog: %v", err))
			}
			if len(targets) == 0 {
				return errors.New(i18n.T("no target languages detected in %s", input))
			}
			for _, code := range targets {
				fmt.Printf("%-10s %s\n", code, langmeta.DisplayName(code, i18n.Lang()))
			}
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// dicts (read-only: load and summarize dictionary tables)
// ---------------------------------------------------------------------------

func newDictsCmd() *cobra.Command {
	var dictPaths []string

	cmd := &cobra.Command{
		Use:   "dicts",
		Short: "Summarize dictionary tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := loadDictionaries(dictPaths)
			for _, info := range store.Tables() {
				fmt.Printf("%s: %d entries, columns: %s\n",
					info.Name, info.Entries, strings.Join(info.Columns, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&dictPaths, "dict", "d", nil, "Dictionary CSV file (repeatable)")
	return cmd
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("xckit version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}
}
