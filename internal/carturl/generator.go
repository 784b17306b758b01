package carturl

import (
	"context"
	"strconv"
	"strings"

	"github.com/simplyaboveaverage/multicart-backend/internal/cart"
	"github.com/simplyaboveaverage/multicart-backend/internal/vendorformats"
	pkgerrors "github.com/simplyaboveaverage/multicart-backend/pkg/errors"
	"github.com/simplyaboveaverage/multicart-backend/pkg/logger"
	"github.com/simplyaboveaverage/multicart-backend/pkg/metrics"
)

// FormatDefault is the sentinel preference meaning "let detection decide".
const FormatDefault = "default"

// Generator turns a vendor's cart items into a pre-filled storefront cart
// URL. It is total: every input yields some URL, worst case the generic
// guess against the vendor-slug domain.
type Generator struct {
	formats *vendorformats.Store
	links   *metrics.LinkMetrics
	logg    *logger.Logger
}

// GeneratorParams groups dependencies for the cart URL generator.
type GeneratorParams struct {
	Formats *vendorformats.Store
	Links   *metrics.LinkMetrics
	Logg    *logger.Logger
}

// NewGenerator builds a generator with the required dependencies.
func NewGenerator(params GeneratorParams) (*Generator, error) {
	if params.Formats == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor format store is required")
	}
	return &Generator{formats: params.Formats, links: params.Links, logg: params.Logg}, nil
}

// GenerateCartURL picks the best-guess cart URL for one vendor's items.
// A saved non-default format preference wins; then the confirmed formats
// for vendors we know; then platform detection on the first product URL;
// the generic handler catches everything else.
func (g *Generator) GenerateCartURL(ctx context.Context, owner, vendor string, items []cart.Item) string {
	if len(items) == 0 {
		g.record(vendor, FormatDefault, items)
		return "https://" + vendorSlug(vendor) + ".com/cart"
	}

	baseURL := resolveBaseURL(vendor, items)

	if saved, ok := g.savedFormat(ctx, owner, vendor); ok && saved != FormatDefault {
		if link, found := g.GenerateAllCartURLs(ctx, vendor, items)[saved]; found {
			g.record(vendor, saved, items)
			return link
		}
	}
	g.record(vendor, FormatDefault, items)

	vendorLower := strings.ToLower(vendor)
	for _, domain := range []struct{ name, domain string }{
		{"american tall", "americantall.com"},
		{"amalli talli", "amallitalli.com"},
		{"dolce vita", "dolcevita.com"},
		{"elwood", "elwoodclothing.com"},
	} {
		if strings.Contains(vendorLower, domain.name) {
			if h, ok := findHandler(domain.domain); ok {
				return h.generate(baseURL, items)
			}
			return "https://" + vendorSlug(vendor) + ".com/cart"
		}
	}

	productURL := items[0].ProductURL
	if productURL == "" {
		productURL = baseURL
	}
	if h, ok := findHandler(productURL); ok {
		return h.generate(baseURL, items)
	}
	return genericHandler.generate(baseURL, items)
}

// GenerateAllCartURLs builds every plausible format for the vendor, keyed
// by format name. Vendors with confirmed formats get named keys (standard,
// alternative, ...); everything else gets format_N per matching handler.
// The generic guess is always present.
func (g *Generator) GenerateAllCartURLs(_ context.Context, vendor string, items []cart.Item) map[string]string {
	if len(items) == 0 {
		return map[string]string{"generic": "https://" + vendorSlug(vendor) + ".com/cart"}
	}

	baseURL := resolveBaseURL(vendor, items)
	urls := map[string]string{}
	vendorLower := strings.ToLower(vendor)

	switch {
	case strings.Contains(vendorLower, "amalli talli"):
		urls["standard"] = "https://amallitalli.com/cart/" + shopifyPermalink(items, preferredID)
		urls["alternative"] = "https://amallitalli.com/cart/add?" + addEndpointQuery(items)
		urls["alternative2"] = "https://amallitalli.com/cart/add?" + arrayAddEndpointQuery(items)
	case strings.Contains(vendorLower, "dolce vita"):
		urls["standard"] = "https://www.dolcevita.com/cart/" + shopifyPermalink(items, preferredID)
		urls["alternative"] = "https://www.dolcevita.com/cart/add?" + addEndpointQuery(items)
	case strings.Contains(vendorLower, "elwood"):
		urls["standard"] = "https://www.elwoodclothing.com/cart/" + shopifyPermalink(items, preferredID)
		urls["alternative"] = "https://www.elwoodclothing.com/cart/add?" + addEndpointQuery(items)
	default:
		for i, h := range platformHandlers {
			if h.detect(baseURL) || h.detect(vendor) {
				urls["format_"+strconv.Itoa(i+1)] = h.generate(baseURL, items)
			}
		}
	}

	urls["generic"] = genericHandler.generate(baseURL, items)
	return urls
}

func (g *Generator) savedFormat(ctx context.Context, owner, vendor string) (string, bool) {
	format, ok, err := g.formats.Get(ctx, owner, vendor)
	if err != nil {
		// Preferences are best-effort; detection still yields a URL.
		if g.logg != nil {
			g.logg.Warn(g.logg.WithField(ctx, "error", err.Error()), "failed to load saved vendor formats")
		}
		return "", false
	}
	return format, ok
}

func (g *Generator) record(vendor, format string, items []cart.Item) {
	hint := vendor
	if len(items) > 0 && items[0].ProductURL != "" {
		hint = items[0].ProductURL
	}
	g.links.IncGenerated(string(DetectPlatform(hint)), format)
}

func findHandler(hint string) (handler, bool) {
	for _, h := range platformHandlers {
		if h.detect(hint) {
			return h, true
		}
	}
	return handler{}, false
}

func arrayAddEndpointQuery(items []cart.Item) string {
	var q queryPairs
	for _, item := range items {
		q.add("id[]", preferredID(item))
		q.add("quantity[]", strconv.Itoa(item.Quantity))
	}
	return q.encode()
}
