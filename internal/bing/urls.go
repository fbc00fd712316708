package bing

import "strings"

// absoluteURL prepends baseURL to scheme-less links scraped off the page.
// Idempotent: already-absolute URLs (and empty strings) pass through
// unchanged.
func absoluteURL(href, baseURL string) string {
	if href == "" || strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return baseURL + href
}
