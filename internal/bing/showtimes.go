package bing

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/gettickets/gettickets/internal/core"
	"github.com/gettickets/gettickets/internal/scraping"
)

const (
	theaterGroupSelector  = "div.st_entityGroup"
	theaterNameSelector   = "span#st_entityName a"
	formatRowSelector     = "tr"
	formatCellSelector    = "td.st_Format"
	showtimeEntrySelector = "ol li.st_lFloat"
)

// showtimesForDate fetches and parses one date's showtime sub-page.
func (s *Scraper) showtimesForDate(ctx context.Context, pageURL, startBound string) ([]core.FormatShowtimes, error) {
	doc, err := scraping.FetchDocument(ctx, pageURL, s.headers())
	if err != nil {
		return nil, err
	}
	return s.parseShowtimePage(doc, startBound), nil
}

// parseShowtimePage extracts theaters, formats, and showtimes from a single
// date's sub-page. startBound is "HH:mm" or empty for no lower bound. Format
// rows yielding zero eligible showtimes are omitted entirely.
func (s *Scraper) parseShowtimePage(doc *goquery.Document, startBound string) []core.FormatShowtimes {
	formats := make([]core.FormatShowtimes, 0)
	doc.Find(theaterGroupSelector).Each(func(_ int, group *goquery.Selection) {
		anchor := group.Find(theaterNameSelector)
		theaterHref, _ := anchor.Attr("href")
		theater := core.Theater{
			Name:       strings.TrimSpace(anchor.Text()),
			DetailsURL: absoluteURL(theaterHref, s.BaseURL),
		}
		group.Find(formatRowSelector).Each(func(_ int, row *goquery.Selection) {
			showtimes := s.parseFormatRow(row, startBound)
			if len(showtimes) == 0 {
				return
			}
			formats = append(formats, core.FormatShowtimes{
				Name:      strings.TrimSpace(row.Find(formatCellSelector).Text()),
				Theater:   theater,
				Showtimes: showtimes,
			})
		})
	})
	return formats
}

// parseFormatRow scans one format row's showtime entries in document order,
// threading the PM carry through the scan: the page marks only the first
// PM showing explicitly, so every later entry in the row inherits it.
// Entries without a ticket link represent sold-out showings and are dropped
// silently; entries before startBound are filtered; at most the configured
// cap of showtimes is kept per row. The lexicographic bound comparison is
// valid because both sides are fixed-width zero-padded 24-hour strings.
func (s *Scraper) parseFormatRow(row *goquery.Selection, startBound string) []core.Showtime {
	maxShowtimes := s.maxShowtimes()
	var showtimes []core.Showtime
	pmCarry := false
	row.Find(showtimeEntrySelector).Each(func(_ int, entry *goquery.Selection) {
		display := strings.TrimSpace(entry.Text())

		// the PM marker must be consumed even when the entry itself is
		// sold out or filtered, so convert before any other check
		var startTime string
		var ok bool
		startTime, pmCarry, ok = to24Hour(display, pmCarry)
		if !ok {
			zap.L().Warn("unable to parse showtime - skipping entry", zap.String("display", display))
			return
		}

		ticketURL, _ := entry.Find("a").Attr("href")
		if ticketURL == "" {
			return
		}
		if startBound != "" && startTime < startBound {
			return
		}
		if len(showtimes) >= maxShowtimes {
			return
		}
		showtimes = append(showtimes, core.Showtime{
			StartTime: startTime,
			TicketURL: absoluteURL(ticketURL, s.BaseURL),
		})
	})
	return showtimes
}
