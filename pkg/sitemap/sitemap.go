// Package sitemap retrieves a site map document and extracts the ordered list
// of candidate page URLs eligible for icon generation.
package sitemap

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/sitemap-icons/internal/common"
	"github.com/dtnitsch/sitemap-icons/pkg/fetcher"
)

// Filter keeps entries that contain requiredPath and none of the excluded
// markers. Order is preserved.
func Filter(urls []string, requiredPath string, excluded []string) []string {
	kept := make([]string, 0, len(urls))
	for _, u := range urls {
		if !strings.Contains(u, requiredPath) {
			continue
		}
		if containsAny(u, excluded) {
			continue
		}
		kept = append(kept, u)
	}
	return kept
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if m != "" && strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// Fetch performs one retrieval of the sitemap and returns the filtered
// candidate URLs in document order. Retrieval or parse failures are logged
// and degrade to an empty list: zero candidates is a legitimate terminal
// state for a run, not an error.
func Fetch(f *fetcher.Fetcher, sitemapURL, requiredPath string, excluded []string, logger *slog.Logger) []string {
	doc, err := f.GetDocument(sitemapURL)
	if err != nil {
		logger.Error("Error fetching sitemap", "url", sitemapURL, "error", err)
		return nil
	}

	var urls []string
	doc.Find("url loc").Each(func(_ int, s *goquery.Selection) {
		loc := common.SanitizeURL(s.Text())
		if loc != "" {
			urls = append(urls, loc)
		}
	})

	return Filter(urls, requiredPath, excluded)
}
