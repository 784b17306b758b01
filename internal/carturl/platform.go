package carturl

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/simplyaboveaverage/multicart-backend/internal/cart"
)

// Platform is the storefront software family a vendor URL points at.
type Platform string

const (
	PlatformShopify     Platform = "shopify"
	PlatformWooCommerce Platform = "woocommerce"
	PlatformMagento     Platform = "magento"
	PlatformBigCommerce Platform = "bigcommerce"
	PlatformSquarespace Platform = "squarespace"
	PlatformGeneric     Platform = "generic"
)

// Storefronts we have confirmed formats for. All of them run Shopify.
var namedVendorHints = []string{
	"americantall.com", "american tall",
	"amallitalli.com", "amalli talli",
	"dolcevita.com", "dolce vita",
	"elwoodclothing.com", "elwood",
	"universalstandard.com", "universal standard",
}

// DetectPlatform classifies a product URL or vendor name by ordered
// substring rules, first match wins. Named vendors are checked ahead of the
// generic platform signatures because a bare vendor name carries no
// signature of its own.
func DetectPlatform(hint string) Platform {
	lower := strings.ToLower(hint)

	for _, name := range namedVendorHints {
		if strings.Contains(lower, name) {
			return PlatformShopify
		}
	}

	switch {
	case containsAny(hint, "shopify.com", "myshopify.com", "/cart", "/collections"):
		return PlatformShopify
	case containsAny(hint, "wordpress", "woocommerce", "wp-content", "/product/"):
		return PlatformWooCommerce
	case containsAny(hint, "magento", "/checkout/cart/add"):
		return PlatformMagento
	case containsAny(hint, "bigcommerce", "/cart.php"):
		return PlatformBigCommerce
	case containsAny(hint, "squarespace"):
		return PlatformSquarespace
	default:
		return PlatformGeneric
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// vendorSlug collapses a vendor name into the bare-domain guess used for
// fallback URLs: lowercased with all whitespace removed.
func vendorSlug(vendor string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(vendor) {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// resolveBaseURL extracts scheme://host from the first item's product URL,
// falling back to the vendor-slug guess when the URL is absent or unusable.
func resolveBaseURL(vendor string, items []cart.Item) string {
	fallback := "https://" + vendorSlug(vendor) + ".com"
	if len(items) == 0 || items[0].ProductURL == "" {
		return fallback
	}
	parsed, err := url.Parse(items[0].ProductURL)
	if err != nil || parsed.Scheme == "" || parsed.Hostname() == "" {
		return fallback
	}
	return parsed.Scheme + "://" + parsed.Hostname()
}

// queryPairs builds an insertion-ordered query string. url.Values sorts its
// keys on Encode, which would scramble the parameter order the storefronts
// were verified against, so pairs are escaped and joined by hand.
type queryPairs struct {
	pairs []string
}

func (q *queryPairs) add(key, value string) {
	q.pairs = append(q.pairs, url.QueryEscape(key)+"="+url.QueryEscape(value))
}

func (q *queryPairs) encode() string {
	return strings.Join(q.pairs, "&")
}

// Exactly one id is ever sent per item; the candidates are fallbacks,
// never combined.

func preferredID(item cart.Item) string {
	if item.VariantID != nil && *item.VariantID != "" {
		return *item.VariantID
	}
	if item.ProductID != "" {
		return item.ProductID
	}
	return item.ID
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
