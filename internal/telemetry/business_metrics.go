package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for storefront activity.
type BusinessMetrics struct {
	// Catalog engagement
	ProductViews    *prometheus.CounterVec
	ProductSearches *prometheus.CounterVec
	SearchResults   *prometheus.HistogramVec

	// Cart
	CartItemsAdd *prometheus.CounterVec
	CartCleared  prometheus.Counter

	// Checkout
	CheckoutCompleted prometheus.Counter
	CheckoutFailed    *prometheus.CounterVec
	OrderValue        prometheus.Histogram

	// Auth & accounts
	Signups     prometheus.Counter
	Logins      prometheus.Counter
	LoginFailed prometheus.Counter

	// Email delivery
	EmailSent   *prometheus.CounterVec
	EmailFailed *prometheus.CounterVec

	// Catalog document
	CatalogReloads  *prometheus.CounterVec
	CatalogProducts prometheus.Gauge
	CatalogSkipped  prometheus.Gauge

	// Visitor state
	StatePurged prometheus.Counter
}

// NewBusinessMetrics creates business metrics and registers them with reg.
// A nil reg uses the default registerer.
func NewBusinessMetrics(namespace string, reg prometheus.Registerer) *BusinessMetrics {
	if namespace == "" {
		namespace = "nerdtech"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)
	subsystem := "business"

	return &BusinessMetrics{
		// =======================================================================
		// Catalog Engagement
		// =======================================================================
		ProductViews: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "product_views_total",
				Help:      "Total product detail views",
			},
			[]string{"category"},
		),
		ProductSearches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "product_searches_total",
				Help:      "Total catalog queries by page",
			},
			[]string{"view"}, // view: search, suggest, shop, sales, home
		),
		SearchResults: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "search_results",
				Help:      "Number of products returned per query",
				Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
			},
			[]string{"view"},
		),

		// =======================================================================
		// Cart
		// =======================================================================
		CartItemsAdd: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_items_added_total",
				Help:      "Total add to cart actions",
			},
			[]string{"category"},
		),
		CartCleared: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_cleared_total",
				Help:      "Total carts emptied by the visitor",
			},
		),

		// =======================================================================
		// Checkout
		// =======================================================================
		CheckoutCompleted: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkout_completed_total",
				Help:      "Total orders placed",
			},
		),
		CheckoutFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkout_failed_total",
				Help:      "Total rejected checkouts",
			},
			[]string{"reason"}, // reason: validation, empty_cart, internal
		),
		OrderValue: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_value_vnd",
				Help:      "Order totals in dong",
				Buckets:   prometheus.ExponentialBuckets(500_000, 2, 10),
			},
		),

		// =======================================================================
		// Auth & Accounts
		// =======================================================================
		Signups: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "signups_total",
				Help:      "Total account registrations",
			},
		),
		Logins: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "logins_total",
				Help:      "Total successful sign-ins",
			},
		),
		LoginFailed: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "login_failed_total",
				Help:      "Total failed sign-ins",
			},
		),

		// =======================================================================
		// Email
		// =======================================================================
		EmailSent: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "email_sent_total",
				Help:      "Total emails sent",
			},
			[]string{"template"},
		),
		EmailFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "email_failed_total",
				Help:      "Total emails that could not be sent",
			},
			[]string{"template"},
		),

		// =======================================================================
		// Catalog Document
		// =======================================================================
		CatalogReloads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "catalog_reloads_total",
				Help:      "Total catalog document loads",
			},
			[]string{"result"}, // result: success, failure
		),
		CatalogProducts: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "catalog_products",
				Help:      "Products in the active catalog",
			},
		),
		CatalogSkipped: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "catalog_skipped_records",
				Help:      "Records skipped in the last catalog load",
			},
		),

		// =======================================================================
		// Visitor State
		// =======================================================================
		StatePurged: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "state_purged_total",
				Help:      "Expired visitor state entries removed",
			},
		),
	}
}

// Business is the process-wide metrics instance. It is nil until
// InitBusinessMetrics runs; callers check before use.
var Business *BusinessMetrics

// InitBusinessMetrics creates the global business metrics on the default
// registerer.
func InitBusinessMetrics(namespace string) *BusinessMetrics {
	Business = NewBusinessMetrics(namespace, nil)
	return Business
}
