package carturl

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/simplyaboveaverage/multicart-backend/internal/cart"
)

// handler pairs a URL/vendor predicate with a platform-specific cart URL
// synthesizer. The table is ordered: detection walks it top to bottom and
// the position also fixes the format_N key in the all-formats output.
type handler struct {
	platform Platform
	detect   func(hint string) bool
	generate func(baseURL string, items []cart.Item) string
}

var platformHandlers = []handler{
	// Shopify: /cart/{id}:{qty},{id}:{qty}
	{
		platform: PlatformShopify,
		detect: func(hint string) bool {
			return containsAny(hint, "shopify.com", "myshopify.com", "/cart", "/collections")
		},
		generate: func(baseURL string, items []cart.Item) string {
			return baseURL + "/cart/" + shopifyPermalink(items, preferredID)
		},
	},

	// WooCommerce: first item unindexed, the rest add-to-cart[N]/quantity[N]
	{
		platform: PlatformWooCommerce,
		detect: func(hint string) bool {
			return containsAny(hint, "wordpress", "woocommerce", "wp-content", "/product/")
		},
		generate: func(baseURL string, items []cart.Item) string {
			var q queryPairs
			for i, item := range items {
				if i == 0 {
					q.add("add-to-cart", productOrID(item))
					q.add("quantity", strconv.Itoa(item.Quantity))
					continue
				}
				idx := strconv.Itoa(i)
				q.add("add-to-cart["+idx+"]", productOrID(item))
				q.add("quantity["+idx+"]", strconv.Itoa(item.Quantity))
			}
			return baseURL + "/cart/?" + q.encode()
		},
	},

	// Magento: single-item only, multi-item carts need a form post
	{
		platform: PlatformMagento,
		detect: func(hint string) bool {
			return containsAny(hint, "magento", "/checkout/cart/add")
		},
		generate: func(baseURL string, items []cart.Item) string {
			if len(items) == 0 {
				return baseURL + "/checkout/cart/"
			}
			var q queryPairs
			q.add("product", productOrID(items[0]))
			q.add("qty", strconv.Itoa(items[0].Quantity))
			return baseURL + "/checkout/cart/add/?" + q.encode()
		},
	},

	// BigCommerce: cart.php?action=add&product_id[N]=...&qty[N]=...
	{
		platform: PlatformBigCommerce,
		detect: func(hint string) bool {
			return containsAny(hint, "bigcommerce", "/cart.php")
		},
		generate: func(baseURL string, items []cart.Item) string {
			var q queryPairs
			q.add("action", "add")
			for i, item := range items {
				idx := strconv.Itoa(i)
				q.add("product_id["+idx+"]", productOrID(item))
				q.add("qty["+idx+"]", strconv.Itoa(item.Quantity))
			}
			return baseURL + "/cart.php?" + q.encode()
		},
	},

	// Squarespace has no cart-permalink support; land on the store page.
	{
		platform: PlatformSquarespace,
		detect: func(hint string) bool {
			return containsAny(hint, "squarespace")
		},
		generate: func(baseURL string, _ []cart.Item) string {
			return baseURL + "/shop"
		},
	},

	// American Tall, confirmed working against the live store.
	{
		platform: PlatformShopify,
		detect:   vendorDetect("americantall.com", "american tall"),
		generate: func(_ string, items []cart.Item) string {
			var q queryPairs
			for _, item := range items {
				q.add("id[]", variantOrID(item))
				q.add("quantity[]", strconv.Itoa(item.Quantity))
			}
			return "https://americantall.com/cart/add?" + q.encode()
		},
	},

	// Amalli Talli: Shopify permalink against the bare domain.
	{
		platform: PlatformShopify,
		detect:   vendorDetect("amallitalli.com", "amalli talli"),
		generate: func(_ string, items []cart.Item) string {
			return "https://amallitalli.com/cart/" + shopifyPermalink(items, preferredID)
		},
	},

	// Dolce Vita: Shopify add endpoint on the www host.
	{
		platform: PlatformShopify,
		detect:   vendorDetect("dolcevita.com", "dolce vita"),
		generate: func(_ string, items []cart.Item) string {
			return "https://www.dolcevita.com/cart/add?" + addEndpointQuery(items)
		},
	},

	// Elwood: same shape as Dolce Vita.
	{
		platform: PlatformShopify,
		detect:   vendorDetect("elwoodclothing.com", "elwood"),
		generate: func(_ string, items []cart.Item) string {
			return "https://www.elwoodclothing.com/cart/add?" + addEndpointQuery(items)
		},
	},

	// Universal Standard: permalink keyed on variant ids only.
	{
		platform: PlatformShopify,
		detect:   vendorDetect("universalstandard.com", "universal standard"),
		generate: func(_ string, items []cart.Item) string {
			return "https://universalstandard.com/cart/" + shopifyPermalink(items, variantOrID)
		},
	},
}

// genericHandler always matches and stuffs both common parameter shapes
// into one URL so at least one has a chance of being understood.
var genericHandler = handler{
	platform: PlatformGeneric,
	detect:   func(string) bool { return true },
	generate: func(baseURL string, items []cart.Item) string {
		var q queryPairs
		if len(items) > 0 {
			q.add("add-to-cart", productOrID(items[0]))
			q.add("quantity", strconv.Itoa(items[0].Quantity))
		}

		payload := make([]genericCartItem, 0, len(items))
		for _, item := range items {
			payload = append(payload, genericCartItem{
				ID:        productOrID(item),
				VariantID: item.VariantID,
				Quantity:  item.Quantity,
			})
		}
		encoded, _ := json.Marshal(payload)
		q.add("items", string(encoded))

		return baseURL + "/cart?" + q.encode()
	},
}

type genericCartItem struct {
	ID        string  `json:"id"`
	VariantID *string `json:"variant_id,omitempty"`
	Quantity  int     `json:"quantity"`
}

func vendorDetect(domain, name string) func(string) bool {
	return func(hint string) bool {
		return strings.Contains(hint, domain) || strings.Contains(strings.ToLower(hint), name)
	}
}

func shopifyPermalink(items []cart.Item, pick func(cart.Item) string) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, pick(item)+":"+strconv.Itoa(item.Quantity))
	}
	return strings.Join(parts, ",")
}

func addEndpointQuery(items []cart.Item) string {
	var q queryPairs
	for _, item := range items {
		q.add("id", preferredID(item))
		q.add("quantity", strconv.Itoa(item.Quantity))
	}
	return q.encode()
}
