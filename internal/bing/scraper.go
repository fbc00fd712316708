// Package bing scrapes movie listings, movie details, and per-date showtime
// sub-pages out of Bing's rendered search results. No official API exists for
// this data; the parsers tolerate individual malformed items but fail loudly
// when the page layout itself has diverged.
package bing

import "time"

const (
	// DefaultBaseURL is the public web origin the scraper targets.
	DefaultBaseURL = "https://www.bing.com"

	// defaultUserAgent pins a desktop browser identity so the origin serves
	// the stable, non-mobile rendering the selectors are written against.
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; WOW64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/54.0.2840.99 Safari/537.36"

	defaultMaxShowtimesPerFormat = 3
	defaultMaxConcurrentFetches  = 4
)

type Scraper struct {
	BaseURL   string
	UserAgent string

	// TimeZone anchors the relative dates behind the showtime tabs
	// (tab 0 = today, tab 1 = tomorrow, ...). Defaults to time.Local.
	TimeZone *time.Location

	// MaxShowtimesPerFormat caps how many showtimes a single format row
	// yields once filtering begins. Zero means the default of 3.
	MaxShowtimesPerFormat int

	// MaxConcurrentFetches bounds the per-date sub-page fan-out. Zero means
	// the default of 4.
	MaxConcurrentFetches int
}

func NewScraper() *Scraper {
	return &Scraper{
		BaseURL:               DefaultBaseURL,
		UserAgent:             defaultUserAgent,
		TimeZone:              time.Local,
		MaxShowtimesPerFormat: defaultMaxShowtimesPerFormat,
		MaxConcurrentFetches:  defaultMaxConcurrentFetches,
	}
}

func (s *Scraper) headers() map[string]string {
	ua := s.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return map[string]string{"User-Agent": ua}
}

func (s *Scraper) location() *time.Location {
	if s.TimeZone != nil {
		return s.TimeZone
	}
	return time.Local
}

func (s *Scraper) maxShowtimes() int {
	if s.MaxShowtimesPerFormat > 0 {
		return s.MaxShowtimesPerFormat
	}
	return defaultMaxShowtimesPerFormat
}

func (s *Scraper) concurrency() int {
	if s.MaxConcurrentFetches > 0 {
		return s.MaxConcurrentFetches
	}
	return defaultMaxConcurrentFetches
}
