package bing

import (
	"net/url"
	"strings"
)

// cityAliases expands the abbreviated city names people actually say into
// the full form the search origin resolves reliably.
var cityAliases = map[string]string{
	"vegas":         "Las Vegas",
	"nyc":           "New York",
	"new york city": "New York",
	"la":            "Los Angeles",
	"sf":            "San Francisco",
	"philly":        "Philadelphia",
	"nola":          "New Orleans",
	"dc":            "Washington",
	"atl":           "Atlanta",
}

// ResolveCity expands an abbreviated or partial city name to its canonical
// form. Unrecognized input passes through trimmed but otherwise unchanged.
func ResolveCity(city string) string {
	trimmed := strings.TrimSpace(city)
	if full, ok := cityAliases[strings.ToLower(trimmed)]; ok {
		return full
	}
	return trimmed
}

// composeQuery builds the free-text search query, e.g.
// "comedy movies in theater in Las Vegas". Genre text is passed through
// verbatim; genre-to-enum mapping only ever happens on parsed results.
func composeQuery(genre, city string) string {
	parts := make([]string, 0, 3)
	if g := strings.TrimSpace(genre); g != "" {
		parts = append(parts, g)
	}
	parts = append(parts, "movies in theater")
	if c := ResolveCity(city); c != "" {
		parts = append(parts, "in "+c)
	}
	return strings.Join(parts, " ")
}

func (s *Scraper) searchURL(query string) string {
	u, _ := url.Parse(s.BaseURL)
	u.Path = "/search"
	q := u.Query()
	q.Set("q", query)
	q.Set("qs", "bs")
	q.Set("form", "QBRE")
	u.RawQuery = q.Encode()
	return u.String()
}
