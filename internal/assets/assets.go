// Package assets extracts and resolves structural asset references
// (images, stylesheets, scripts) from a parsed HTML document.
package assets

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// Asset categories emitted by Resolve. Within a category, URLs appear in
// document order and are not deduplicated.
const (
	CategoryImages      = "images"
	CategoryStylesheets = "stylesheets"
	CategoryScripts     = "scripts"
)

// Categories lists the known asset categories in their canonical order.
var Categories = []string{CategoryImages, CategoryStylesheets, CategoryScripts}

// Resolve walks the parsed document and returns absolute asset URLs keyed by
// category. Inline references (data: URIs) and fragment-only references are
// skipped. A reference that cannot be parsed is logged and skipped without
// aborting the pass.
func Resolve(doc *goquery.Document, base *url.URL) map[string][]string {
	resolved := map[string][]string{
		CategoryImages:      {},
		CategoryStylesheets: {},
		CategoryScripts:     {},
	}

	collect := func(category, attr string) func(int, *goquery.Selection) {
		return func(_ int, s *goquery.Selection) {
			ref, ok := s.Attr(attr)
			if !ok || ref == "" {
				return
			}
			if strings.HasPrefix(ref, "data:") || strings.HasPrefix(ref, "#") {
				return
			}

			refURL, err := url.Parse(ref)
			if err != nil {
				zap.L().Warn("skipping unresolvable asset reference",
					zap.String("category", category),
					zap.String("ref", ref),
					zap.Error(err),
				)
				return
			}

			resolved[category] = append(resolved[category], base.ResolveReference(refURL).String())
		}
	}

	doc.Find("img[src]").Each(collect(CategoryImages, "src"))
	doc.Find(`link[rel="stylesheet"][href]`).Each(collect(CategoryStylesheets, "href"))
	doc.Find("script[src]").Each(collect(CategoryScripts, "src"))

	return resolved
}
