package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"golang.org/x/text/language"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/catalog"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/domain"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/storage"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/telemetry"
)

// Home page rows.
const (
	BestSellingCategory = "pc_gvn"
	DefaultCPUTab       = "Core i5"
	HomeRowLimit        = 5
)

// CatalogService serves every catalog-backed page from the current catalog
// snapshot.
type CatalogService interface {
	// Reload fetches and decodes the catalog document. On failure the
	// previous snapshot stays in place.
	Reload(ctx context.Context) error

	// Snapshot returns the catalog currently being served.
	Snapshot() *catalog.Catalog

	Home(ctx context.Context, sessionID, cpuTab string) (*HomePage, error)
	Shop(ctx context.Context, filter catalog.ShopFilter) []ProductCard
	Sales(ctx context.Context) []ProductCard
	Search(ctx context.Context, q catalog.Query) []ProductCard
	Suggest(ctx context.Context, keyword string) []ProductCard

	// ProductDetail returns a product with its related products and records
	// it as recently viewed for the session.
	ProductDetail(ctx context.Context, sessionID string, id int64) (*ProductDetail, error)

	RecentlyViewed(ctx context.Context, sessionID string) ([]ProductCard, error)
}

// ProductCard is a product with the values a listing displays.
type ProductCard struct {
	domain.Product
	ImageURL          string `json:"imageUrl"`
	PriceText         string `json:"priceText"`
	OriginalPriceText string `json:"originalPriceText,omitempty"`
	DiscountPercent   int64  `json:"discountPercent,omitempty"`
	InStock           bool   `json:"inStock"`
	LowStock          bool   `json:"lowStock"`
}

// ProductDetail aggregates a product with its gallery, specs and related
// products.
type ProductDetail struct {
	Product ProductCard       `json:"product"`
	Gallery []string          `json:"gallery"`
	Specs   []domain.SpecPair `json:"specs"`
	Related []ProductCard     `json:"related"`
}

// HomePage holds every row of the home page.
type HomePage struct {
	RecentlyViewed []ProductCard `json:"recentlyViewed"`
	CPUTab         string        `json:"cpuTab"`
	BestSelling    []ProductCard `json:"bestSelling"`
	Laptops        []ProductCard `json:"laptops"`
	Monitors       []ProductCard `json:"monitors"`
}

type catalogService struct {
	source      storage.Storage
	key         string
	lang        language.Tag
	placeholder string
	recent      RecentlyViewedService
	logger      *slog.Logger

	current atomic.Pointer[catalog.Catalog]
}

// CatalogOptions configures NewCatalogService.
type CatalogOptions struct {
	Key              string // document key within source
	Language         language.Tag
	PlaceholderImage string
}

// NewCatalogService creates a CatalogService that serves an empty catalog
// until the first successful Reload.
func NewCatalogService(source storage.Storage, recent RecentlyViewedService, opts CatalogOptions, logger *slog.Logger) CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &catalogService{
		source:      source,
		key:         opts.Key,
		lang:        opts.Language,
		placeholder: opts.PlaceholderImage,
		recent:      recent,
		logger:      logger,
	}
	s.current.Store(catalog.Empty(opts.Language))
	return s
}

func (s *catalogService) Snapshot() *catalog.Catalog {
	return s.current.Load()
}

func (s *catalogService) Reload(ctx context.Context) error {
	products, skipped, err := s.fetch(ctx)
	if err != nil {
		s.logger.Warn("catalog unavailable, keeping previous snapshot",
			"key", s.key,
			"products", s.Snapshot().Len(),
			"error", err,
		)
		if telemetry.Business != nil {
			telemetry.Business.CatalogReloads.WithLabelValues("error").Inc()
		}
		return err
	}

	for _, rec := range skipped {
		s.logger.Warn("skipping catalog record", "index", rec.Index, "error", rec.Err)
	}

	snapshot := catalog.New(products, s.lang)
	s.current.Store(snapshot)
	s.logger.Info("catalog loaded", "key", s.key, "products", snapshot.Len(), "skipped", len(skipped))

	if telemetry.Business != nil {
		telemetry.Business.CatalogReloads.WithLabelValues("ok").Inc()
		telemetry.Business.CatalogProducts.Set(float64(snapshot.Len()))
		telemetry.Business.CatalogSkipped.Set(float64(len(skipped)))
	}
	return nil
}

func (s *catalogService) fetch(ctx context.Context) ([]domain.Product, []catalog.RecordError, error) {
	rc, err := s.source.Get(ctx, s.key)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return catalog.Decode(data)
}

func (s *catalogService) Home(ctx context.Context, sessionID, cpuTab string) (*HomePage, error) {
	recent, err := s.RecentlyViewed(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cpuTab = strings.TrimSpace(cpuTab)
	if cpuTab == "" {
		cpuTab = DefaultCPUTab
	}

	c := s.Snapshot()
	page := &HomePage{
		RecentlyViewed: recent,
		CPUTab:         cpuTab,
		BestSelling:    s.cards(c.ByCPUTag(BestSellingCategory, cpuTab, HomeRowLimit)),
		Laptops:        s.cards(c.InCategory("laptop", HomeRowLimit)),
		Monitors:       s.cards(c.InCategory("monitor", HomeRowLimit)),
	}
	s.observe("home", len(page.BestSelling))
	return page, nil
}

func (s *catalogService) Shop(ctx context.Context, filter catalog.ShopFilter) []ProductCard {
	out := s.cards(s.Snapshot().Shop(filter))
	s.observe("shop", len(out))
	return out
}

func (s *catalogService) Sales(ctx context.Context) []ProductCard {
	out := s.cards(s.Snapshot().Discounted())
	s.observe("sales", len(out))
	return out
}

func (s *catalogService) Search(ctx context.Context, q catalog.Query) []ProductCard {
	out := s.cards(s.Snapshot().Search(q))
	s.observe("search", len(out))
	return out
}

func (s *catalogService) Suggest(ctx context.Context, keyword string) []ProductCard {
	out := s.cards(s.Snapshot().Suggest(keyword, catalog.SuggestLimit))
	s.observe("suggest", len(out))
	return out
}

func (s *catalogService) ProductDetail(ctx context.Context, sessionID string, id int64) (*ProductDetail, error) {
	c := s.Snapshot()
	p, ok := c.Lookup(id)
	if !ok {
		return nil, ErrProductNotFound
	}

	if sessionID != "" {
		if err := s.recent.Record(ctx, sessionID, p.ID); err != nil {
			// The page still renders without history.
			s.logger.Warn("failed to record recently viewed product", "product_id", p.ID, "error", err)
		}
	}

	if telemetry.Business != nil {
		telemetry.Business.ProductViews.WithLabelValues(p.Category).Inc()
	}

	gallery := []string(p.Images)
	if len(gallery) == 0 {
		gallery = []string{s.placeholder}
	}
	specs := p.SpecPairs()
	if specs == nil {
		specs = []domain.SpecPair{}
	}

	return &ProductDetail{
		Product: s.card(p),
		Gallery: gallery,
		Specs:   specs,
		Related: s.cards(c.Related(p, catalog.RelatedLimit)),
	}, nil
}

func (s *catalogService) RecentlyViewed(ctx context.Context, sessionID string) ([]ProductCard, error) {
	if sessionID == "" {
		return []ProductCard{}, nil
	}
	ids, err := s.recent.IDs(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recently viewed: %w", err)
	}
	return s.cards(s.Snapshot().Resolve(ids)), nil
}

func (s *catalogService) observe(view string, results int) {
	if telemetry.Business == nil {
		return
	}
	telemetry.Business.ProductSearches.WithLabelValues(view).Inc()
	telemetry.Business.SearchResults.WithLabelValues(view).Observe(float64(results))
}

func (s *catalogService) cards(products []domain.Product) []ProductCard {
	out := make([]ProductCard, len(products))
	for i, p := range products {
		out[i] = s.card(p)
	}
	return out
}

func (s *catalogService) card(p domain.Product) ProductCard {
	return NewProductCard(p, s.placeholder)
}

// NewProductCard derives the display values of p. placeholder is used when
// the product has no image.
func NewProductCard(p domain.Product, placeholder string) ProductCard {
	card := ProductCard{
		Product:   p,
		ImageURL:  p.Images.Primary(placeholder),
		PriceText: domain.FormatPrice(p.Price),
		InStock:   p.InStock(),
		LowStock:  p.LowStock(),
	}
	if p.Discounted() {
		card.OriginalPriceText = domain.FormatPrice(p.OriginalPrice)
		card.DiscountPercent = p.DiscountPercent()
	}
	return card
}
