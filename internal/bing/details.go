package bing

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gettickets/gettickets/internal/core"
	"github.com/gettickets/gettickets/internal/scraping"
)

const (
	sidePanelSelector      = "div#b_content ol#b_context"
	showtimesPanelSelector = "div#b_content div.st_tab"
	tabMenuSelector        = "div.tab-head div.tab-menu>ul>li"

	synopsisSelector         = "div.b_snippet"
	expandedSynopsisSelector = "div.b_snippet div.b_hide"
	movieMetaSelector        = "span.b_demoteText"
	imdbRatingSelector       = `a[href*="www.imdb.com/"] div.cbl`
	rottenTomatoesSelector   = `a[href*="www.rottentomatoes.com/"] div.cbl`
)

// " · 2024 · 1hr 53min · Comedy"
var yearDurationGenrePattern = regexp.MustCompile(`^ · ([0-9]{4}) · (.*) · (.*)$`)

// dateTab is one entry of the showtime tab menu. Tab index i represents the
// calendar day i days from today in the scraper's time zone.
type dateTab struct {
	date string // yyyy-MM-dd
	url  string // absolute sub-page URL
}

// Details fetches a movie's detail page and, for each showtime tab matching
// date (all tabs when date is empty), the per-date showtime sub-page.
// date is "yyyy-MM-dd"; startTime is "HH:mm" or a qualitative token and
// bounds the earliest showtime returned.
func (s *Scraper) Details(ctx context.Context, movie core.Movie, date, startTime string) (*core.MovieDetails, error) {
	ctx, span := otel.Tracer("bing.scraper").Start(ctx, "details")
	defer span.End()

	doc, err := scraping.FetchDocument(ctx, movie.DetailsURL, s.headers())
	if err != nil {
		return nil, err
	}

	resultTitle := doc.Find(resultTitleSelector).Text()
	if !strings.HasPrefix(resultTitle, expectedTitlePrefix) {
		return nil, fmt.Errorf("%w: query result title %q", scraping.ErrUnexpectedPage, resultTitle)
	}
	sidePanel := doc.Find(sidePanelSelector)
	if sidePanel.Length() == 0 {
		return nil, fmt.Errorf("%w: missing side details panel", scraping.ErrUnexpectedPage)
	}
	showtimesPanel := doc.Find(showtimesPanelSelector)
	if showtimesPanel.Length() == 0 {
		return nil, fmt.Errorf("%w: missing showtimes panel", scraping.ErrUnexpectedPage)
	}

	tabs := s.matchTabs(showtimesPanel, strings.TrimSpace(date))
	formatsPerDate, err := s.fetchShowtimesPerDate(ctx, tabs, NormalizeTime(startTime))
	if err != nil {
		return nil, err
	}

	details := &core.MovieDetails{
		Movie:            &movie,
		Dates:            make([]string, 0, len(tabs)),
		ShowtimesPerDate: make(map[string][]core.FormatShowtimes, len(tabs)),
	}
	for i, tab := range tabs {
		details.Dates = append(details.Dates, tab.date)
		details.ShowtimesPerDate[tab.date] = formatsPerDate[i]
	}
	details.Synopsis, details.Duration, details.IMDBRating, details.RottenTomatoesRating = parseSidePanel(sidePanel)
	return details, nil
}

// matchTabs enumerates the tab menu and keeps the tabs whose computed
// calendar date matches targetDate (all of them when targetDate is empty).
// Tabs lacking a resolvable sub-page URL are skipped.
func (s *Scraper) matchTabs(panel *goquery.Selection, targetDate string) []dateTab {
	today := time.Now().In(s.location())
	var tabs []dateTab
	panel.Find(tabMenuSelector).Each(func(i int, tab *goquery.Selection) {
		tabDate := today.AddDate(0, 0, i).Format(time.DateOnly)
		if targetDate != "" && targetDate != tabDate {
			return
		}
		dataURL, _ := tab.Attr("data-dataurl")
		if dataURL == "" {
			zap.L().Warn("showtime tab has no data url - skipping",
				zap.String("date", tabDate),
				zap.String("label", strings.TrimSpace(tab.Text())),
			)
			return
		}
		tabs = append(tabs, dateTab{date: tabDate, url: absoluteURL(dataURL, s.BaseURL)})
	})
	return tabs
}

// fetchShowtimesPerDate fans out one fetch+parse per matched tab, bounded by
// the configured concurrency, and joins the results by tab index so assembly
// order follows enumeration order regardless of completion order. A failed
// date degrades to an empty format list for that date; the failure is logged
// but does not abort the other dates.
func (s *Scraper) fetchShowtimesPerDate(ctx context.Context, tabs []dateTab, startBound string) ([][]core.FormatShowtimes, error) {
	formatsPerDate := make([][]core.FormatShowtimes, len(tabs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency())
	for i, tab := range tabs {
		i, tab := i, tab
		g.Go(func() error {
			formats, err := s.showtimesForDate(gctx, tab.url, startBound)
			if err != nil {
				zap.L().Warn("failed to scrape showtimes for date",
					zap.String("date", tab.date),
					zap.String("url", tab.url),
					zap.Error(err),
				)
				formats = []core.FormatShowtimes{}
			}
			formatsPerDate[i] = formats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	produced := 0
	for _, formats := range formatsPerDate {
		if formats != nil {
			produced++
		}
	}
	if produced != len(tabs) {
		return nil, fmt.Errorf("%w: %d result sets for %d dates", scraping.ErrAggregationMismatch, produced, len(tabs))
	}
	return formatsPerDate, nil
}

// parseSidePanel extracts the ancillary movie fields. Only the synopsis and
// ratings are load-bearing; a duration that fails to parse is logged and
// left empty.
func parseSidePanel(panel *goquery.Selection) (synopsis, duration, imdbRating, rtRating string) {
	// prefer the fully expanded synopsis over the ellipsis-truncated default
	synopsis = strings.TrimSpace(panel.Find(expandedSynopsisSelector).Text())
	if synopsis == "" {
		synopsis = strings.TrimSpace(panel.Find(synopsisSelector).Text())
	}

	meta := panel.Find(movieMetaSelector).Text()
	if metaMatch := yearDurationGenrePattern.FindStringSubmatch(meta); metaMatch != nil {
		duration = metaMatch[2]
	} else {
		zap.L().Warn("unable to parse movie duration - ignoring", zap.String("meta", meta))
	}

	imdbRating = panel.Find(imdbRatingSelector).Text()
	if imdbRating != "" {
		// "8.4/10" reads poorly out loud
		imdbRating = strings.ReplaceAll(imdbRating, "/", " out of ")
	}
	rtRating = panel.Find(rottenTomatoesSelector).Text()
	return synopsis, duration, imdbRating, rtRating
}
