package carturl

import (
	"testing"

	"github.com/simplyaboveaverage/multicart-backend/internal/cart"
)

func TestDetectPlatform(t *testing.T) {
	t.Parallel()

	cases := []struct {
		hint string
		want Platform
	}{
		{"https://teststore.myshopify.com/products/tee", PlatformShopify},
		{"https://shop.example.com/collections/new", PlatformShopify},
		{"https://store.example.com/cart/123", PlatformShopify},
		{"https://blog.example.com/wp-content/uploads", PlatformWooCommerce},
		{"https://shop.example.com/product/widget", PlatformWooCommerce},
		{"https://store.example.com/checkout/cart/add", PlatformMagento},
		{"https://store.example.com/cart.php", PlatformBigCommerce},
		{"https://tienda.squarespace.com", PlatformSquarespace},
		{"American Tall", PlatformShopify},
		{"Universal Standard", PlatformShopify},
		{"https://amallitalli.com/products/tee", PlatformShopify},
		{"https://somewhere.example.com/items/1", PlatformGeneric},
		{"", PlatformGeneric},
	}

	for _, tc := range cases {
		if got := DetectPlatform(tc.hint); got != tc.want {
			t.Errorf("DetectPlatform(%q) = %s, want %s", tc.hint, got, tc.want)
		}
	}
}

func TestVendorSlug(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Amalli Talli":    "amallitalli",
		"American  Tall":  "americantall",
		"Acme":            "acme",
		"Universal\tStd.": "universalstd.",
	}
	for in, want := range cases {
		if got := vendorSlug(in); got != want {
			t.Errorf("vendorSlug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolveBaseURL(t *testing.T) {
	t.Parallel()

	withURL := []struct {
		productURL string
		want       string
	}{
		{"https://www.example.com/product/widget?x=1", "https://www.example.com"},
		{"https://example.com:8443/p", "https://example.com"},
		{"not a url", "https://acmeco.com"},
		{"", "https://acmeco.com"},
	}
	for _, tc := range withURL {
		items := []cart.Item{item("Acme Co", "p1", "1", "", tc.productURL, 1)}
		if got := resolveBaseURL("Acme Co", items); got != tc.want {
			t.Errorf("resolveBaseURL(%q) = %q, want %q", tc.productURL, got, tc.want)
		}
	}

	if got := resolveBaseURL("Acme Co", nil); got != "https://acmeco.com" {
		t.Errorf("resolveBaseURL(empty) = %q", got)
	}
}

func TestQueryPairsPreserveInsertionOrder(t *testing.T) {
	t.Parallel()

	var q queryPairs
	q.add("zeta", "1")
	q.add("alpha", "2")
	q.add("id[]", "a b")

	if got := q.encode(); got != "zeta=1&alpha=2&id%5B%5D=a+b" {
		t.Fatalf("unexpected encoding: %s", got)
	}
}
