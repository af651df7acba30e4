package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/catalog"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/domain"
)

// =============================================================================
// SEARCH COMMAND
// =============================================================================

func newSearchCmd() *cobra.Command {
	var (
		q        catalog.Query
		minPrice string
		maxPrice string
		sort     string
	)
	cmd := &cobra.Command{
		Use:   "search [keyword...]",
		Short: "Run a catalog search the way the storefront does",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			q.Keyword = strings.Join(args, " ")
			for i, b := range q.Brands {
				q.Brands[i] = strings.ToLower(b)
			}
			if minPrice != "" {
				d, err := decimal.NewFromString(minPrice)
				if err != nil {
					return fmt.Errorf("invalid --min-price: %w", err)
				}
				q.MinPrice = d
			}
			if maxPrice != "" {
				d, err := decimal.NewFromString(maxPrice)
				if err != nil {
					return fmt.Errorf("invalid --max-price: %w", err)
				}
				q.MaxPrice = decimal.NewNullDecimal(d)
			}
			q.Sort = catalog.ParseSortKey(sort)
			return printProducts(cmd.OutOrStdout(), c.Search(q))
		},
	}
	f := cmd.Flags()
	f.StringSliceVar(&q.Categories, "category", nil, "restrict to categories")
	f.StringSliceVar(&q.Brands, "brand", nil, "restrict to brands")
	f.StringSliceVar(&q.Usages, "usage", nil, "restrict to usage tags")
	f.StringVar(&minPrice, "min-price", "", "minimum price, inclusive")
	f.StringVar(&maxPrice, "max-price", "", "maximum price, inclusive; empty means unbounded")
	f.BoolVar(&q.InStockOnly, "in-stock", false, "only products in stock")
	f.StringVar(&sort, "sort", "", "price-asc, price-desc, name-asc or name-desc")
	return cmd
}

// =============================================================================
// SALES COMMAND
// =============================================================================

func newSalesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sales",
		Short: "List discounted products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return printProducts(cmd.OutOrStdout(), c.Discounted())
		},
	}
}

// =============================================================================
// VALIDATE COMMAND
// =============================================================================

var errInvalidCatalog = errors.New("catalog is invalid")

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a catalog document for malformed records and duplicate ids",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := documentArg(cmd, args)
			if err != nil {
				return err
			}
			report := validate(data)
			report.print(cmd.OutOrStdout())
			if !report.ok() {
				return errInvalidCatalog
			}
			return nil
		},
	}
}

type validationReport struct {
	Products   int      `json:"products"`
	Skipped    []string `json:"skipped,omitempty"`
	Duplicates []int64  `json:"duplicates,omitempty"`
	Malformed  string   `json:"malformed,omitempty"`
}

func (r validationReport) ok() bool {
	return r.Malformed == "" && len(r.Skipped) == 0 && len(r.Duplicates) == 0
}

func (r validationReport) print(w io.Writer) {
	if jsonOutput {
		json.NewEncoder(w).Encode(r)
		return
	}
	if r.Malformed != "" {
		fmt.Fprintf(w, "malformed: %s\n", r.Malformed)
		return
	}
	fmt.Fprintf(w, "%d products\n", r.Products)
	for _, s := range r.Skipped {
		fmt.Fprintf(w, "skipped %s\n", s)
	}
	for _, id := range r.Duplicates {
		fmt.Fprintf(w, "duplicate id %d (the first record wins)\n", id)
	}
}

func validate(data []byte) validationReport {
	products, skipped, err := catalog.Decode(data)
	if err != nil {
		return validationReport{Malformed: err.Error()}
	}
	report := validationReport{Products: len(products), Duplicates: duplicateIDs(products)}
	for _, rec := range skipped {
		report.Skipped = append(report.Skipped, rec.Error())
	}
	return report
}

// =============================================================================
// PUBLISH COMMAND
// =============================================================================

func newPublishCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "publish <file>",
		Short: "Validate a catalog file and upload it to configured storage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			report := validate(data)
			if report.Malformed != "" || report.Products == 0 {
				report.print(cmd.OutOrStdout())
				return errInvalidCatalog
			}
			if !report.ok() && !force {
				report.print(cmd.OutOrStdout())
				return fmt.Errorf("%w (use --force to publish anyway)", errInvalidCatalog)
			}

			s, key, err := openStorage()
			if err != nil {
				return err
			}
			url, err := s.Put(cmd.Context(), key, bytes.NewReader(data), "application/json")
			if err != nil {
				return fmt.Errorf("failed to publish catalog: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "published %d products to %s\n", report.Products, url)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "publish even when records are skipped or ids repeat")
	return cmd
}

// documentArg reads the file named by args, falling back to the global
// catalog source.
func documentArg(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 1 {
		return os.ReadFile(args[0])
	}
	return readDocument(cmd.Context())
}

type productRow struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
	Discount int64  `json:"discountPercent,omitempty"`
	Stock    int64  `json:"stock"`
}

func printProducts(w io.Writer, products []domain.Product) error {
	rows := make([]productRow, len(products))
	for i, p := range products {
		rows[i] = productRow{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Price:    domain.FormatPrice(p.Price),
			Stock:    p.Stock,
		}
		if p.Discounted() {
			rows[i].Discount = p.DiscountPercent()
		}
	}

	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tSALE\tSTOCK")
	for _, r := range rows {
		sale := ""
		if r.Discount > 0 {
			sale = fmt.Sprintf("-%d%%", r.Discount)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\n", r.ID, r.Name, r.Category, r.Price, sale, r.Stock)
	}
	return tw.Flush()
}
