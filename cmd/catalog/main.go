// Command catalog inspects, validates and publishes the storefront catalog
// document.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/catalog"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/domain"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/storage"
)

// Global flags
var (
	catalogFile string
	locale      string
	jsonOutput  bool
)

// openStorage is replaced in tests.
var openStorage = func() (storage.Storage, string, error) {
	cfg, err := internal.NewConfig()
	if err != nil {
		return nil, "", fmt.Errorf("config initialization failed: %w", err)
	}
	s, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		return nil, "", fmt.Errorf("storage initialization failed: %w", err)
	}
	return s, cfg.Catalog.Key, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Inspect and publish the NERDTech product catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&catalogFile, "file", "f", "", "read the catalog from a local file instead of configured storage")
	root.PersistentFlags().StringVar(&locale, "locale", "vi", "BCP 47 tag used for name sorting")
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")

	root.AddCommand(
		newSearchCmd(),
		newSalesCmd(),
		newValidateCmd(),
		newPublishCmd(),
	)
	return root
}

// readDocument returns the raw catalog document, from --file when set and
// from configured storage otherwise.
func readDocument(ctx context.Context) ([]byte, error) {
	if catalogFile != "" {
		return os.ReadFile(catalogFile)
	}
	s, key, err := openStorage()
	if err != nil {
		return nil, err
	}
	rc, err := s.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog %s: %w", key, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func loadCatalog(ctx context.Context, stderr io.Writer) (*catalog.Catalog, error) {
	data, err := readDocument(ctx)
	if err != nil {
		return nil, err
	}
	products, skipped, err := catalog.Decode(data)
	if err != nil {
		return nil, err
	}
	for _, rec := range skipped {
		fmt.Fprintf(stderr, "warning: skipping %v\n", rec)
	}
	lang, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return catalog.New(products, lang), nil
}

// duplicateIDs returns ids that appear more than once, in first-seen order.
func duplicateIDs(products []domain.Product) []int64 {
	seen := make(map[int64]int, len(products))
	var dups []int64
	for _, p := range products {
		seen[p.ID]++
		if seen[p.ID] == 2 {
			dups = append(dups, p.ID)
		}
	}
	return dups
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
