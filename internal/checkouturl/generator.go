package checkouturl

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"github.com/simplyaboveaverage/multicart-backend/internal/cart"
	"github.com/simplyaboveaverage/multicart-backend/pkg/logger"
)

// Generator builds direct checkout URLs for a single vendor's items. It is
// simpler than the cart-link generator on purpose: no saved-format lookup,
// fewer platform shapes, and dispatch happens on the base URL alone. The
// two live side by side because the checkout flow was tuned separately and
// its URL shapes differ in small but load-bearing ways.
type Generator struct {
	logg *logger.Logger
}

// NewGenerator builds a checkout URL generator.
func NewGenerator(logg *logger.Logger) *Generator {
	return &Generator{logg: logg}
}

// GenerateCheckoutURL returns a checkout URL for the vendor's slice of the
// cart. Items belonging to other vendors are ignored; an empty slice after
// filtering falls back to the vendor's bare domain guess.
func (g *Generator) GenerateCheckoutURL(ctx context.Context, vendor string, items []cart.Item) string {
	vendorItems := make([]cart.Item, 0, len(items))
	for _, item := range items {
		if item.Vendor == vendor {
			vendorItems = append(vendorItems, item)
		}
	}

	if len(vendorItems) == 0 {
		if g.logg != nil {
			g.logg.Warn(g.logg.WithVendor(ctx, vendor), "no items for vendor, falling back to domain guess")
		}
		return "https://" + slug(vendor) + ".com"
	}

	baseURL := baseURLFor(vendor, vendorItems[0])

	switch {
	case strings.Contains(baseURL, "shopify") || strings.Contains(baseURL, "myshopify"):
		return shopifyCheckout(baseURL, vendorItems)
	case strings.Contains(baseURL, "woocommerce") || strings.Contains(baseURL, "wordpress"):
		return wooCommerceCheckout(baseURL, vendorItems)
	case strings.Contains(baseURL, "bigcommerce"):
		return bigCommerceCheckout(baseURL, vendorItems)
	}

	vendorLower := strings.ToLower(vendor)
	if strings.Contains(vendorLower, "american tall") {
		return "https://americantall.com/cart"
	}
	if strings.Contains(vendorLower, "universal standard") {
		return "https://universalstandard.com/cart"
	}

	return genericCheckout(baseURL, vendorItems)
}

// Shopify: /cart/{variant:qty},{variant:qty}
func shopifyCheckout(baseURL string, items []cart.Item) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, variantOrID(item)+":"+strconv.Itoa(item.Quantity))
	}
	return baseURL + "/cart/" + strings.Join(parts, ",")
}

// WooCommerce: every item indexed, including the first.
func wooCommerceCheckout(baseURL string, items []cart.Item) string {
	var q queryPairs
	for i, item := range items {
		idx := strconv.Itoa(i)
		q.add("add-to-cart["+idx+"]", productOrID(item))
		q.add("quantity["+idx+"]", strconv.Itoa(item.Quantity))
	}
	return baseURL + "/checkout?" + q.encode()
}

func bigCommerceCheckout(baseURL string, items []cart.Item) string {
	var q queryPairs
	q.add("action", "add")
	for i, item := range items {
		idx := strconv.Itoa(i)
		q.add("product_id["+idx+"]", productOrID(item))
		q.add("qty["+idx+"]", strconv.Itoa(item.Quantity))
	}
	return baseURL + "/cart.php?" + q.encode()
}

// Generic: flat product_id/quantity pairs plus a per-item JSON object, both
// shapes in one URL so unknown platforms get two chances to parse it.
func genericCheckout(baseURL string, items []cart.Item) string {
	var q queryPairs
	for _, item := range items {
		q.add("product_id", productOrID(item))
		q.add("quantity", strconv.Itoa(item.Quantity))

		variantID := ""
		if item.VariantID != nil {
			variantID = *item.VariantID
		}
		encoded, _ := json.Marshal(checkoutItem{
			ID:        productOrID(item),
			VariantID: variantID,
			Quantity:  item.Quantity,
		})
		q.add("items", string(encoded))
	}
	return baseURL + "/checkout?" + q.encode()
}

type checkoutItem struct {
	ID        string `json:"id"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

func baseURLFor(vendor string, first cart.Item) string {
	fallback := "https://" + slug(vendor) + ".com"
	if first.ProductURL == "" {
		return fallback
	}
	parsed, err := url.Parse(first.ProductURL)
	if err != nil || parsed.Scheme == "" || parsed.Hostname() == "" {
		return fallback
	}
	return parsed.Scheme + "://" + parsed.Hostname()
}

func slug(vendor string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(vendor) {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

type queryPairs struct {
	pairs []string
}

func (q *queryPairs) add(key, value string) {
	q.pairs = append(q.pairs, url.QueryEscape(key)+"="+url.QueryEscape(value))
}

func (q *queryPairs) encode() string {
	return strings.Join(q.pairs, "&")
}

func variantOrID(item cart.Item) string {
	if item.VariantID != nil && *item.VariantID != "" {
		return *item.VariantID
	}
	return item.ID
}

func productOrID(item cart.Item) string {
	if item.ProductID != "" {
		return item.ProductID
	}
	return item.ID
}
