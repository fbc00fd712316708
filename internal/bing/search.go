package bing

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/gettickets/gettickets/internal/core"
	"github.com/gettickets/gettickets/internal/scraping"
)

// expectedTitlePrefix is how the results carousel heading always starts when
// the query landed on an actual movie listing. Anything else means the page
// layout changed or the query produced an off-topic page.
const expectedTitlePrefix = "Movies in "

const (
	resultTitleSelector  = "div.carousel div.carousel-title h2"
	movieCardSelector    = "div.carousel div.carousel-scroll-content div.card a"
	cardSubtitleSelector = "div.subtit"
	lazyCoverSelector    = "div[data-src]"
)

var (
	// "Inside Out 2 (2024)"
	titleYearPattern = regexp.MustCompile(`^(.*) \(([0-9]{4})\)$`)
	// "PG-13 · Comedy", with the rating segment optional
	ratingGenrePattern = regexp.MustCompile(`^((.*) · )?(.*)$`)
)

// Search fetches the movie listing page for the given genre and city and
// returns the movies it lists, in document order. An empty result is valid;
// a page that fails the title-prefix contract is not.
func (s *Scraper) Search(ctx context.Context, genre, city string) ([]core.Movie, error) {
	ctx, span := otel.Tracer("bing.scraper").Start(ctx, "search")
	defer span.End()

	query := composeQuery(genre, city)
	zap.L().Debug("searching for movies", zap.String("query", query))

	doc, err := scraping.FetchDocument(ctx, s.searchURL(query), s.headers())
	if err != nil {
		return nil, err
	}
	return s.parseMovieList(doc)
}

func (s *Scraper) parseMovieList(doc *goquery.Document) ([]core.Movie, error) {
	resultTitle := doc.Find(resultTitleSelector).Text()
	if !strings.HasPrefix(resultTitle, expectedTitlePrefix) {
		return nil, fmt.Errorf("%w: query result title %q", scraping.ErrUnexpectedPage, resultTitle)
	}

	movies := make([]core.Movie, 0)
	doc.Find(movieCardSelector).Each(func(_ int, card *goquery.Selection) {
		movie, ok := s.parseMovieCard(card)
		if ok {
			movies = append(movies, movie)
		}
	})
	return movies, nil
}

// parseMovieCard extracts one movie from a listing card. A card that cannot
// be parsed is skipped with a warning rather than failing the page.
func (s *Scraper) parseMovieCard(card *goquery.Selection) (core.Movie, bool) {
	label, _ := card.Attr("title")
	titleMatch := titleYearPattern.FindStringSubmatch(label)
	if titleMatch == nil {
		zap.L().Warn("unable to parse movie title - skipping card", zap.String("label", label))
		return core.Movie{}, false
	}
	year, _ := strconv.Atoi(titleMatch[2])

	subtitle := card.Find(cardSubtitleSelector).Text()
	subtitleMatch := ratingGenrePattern.FindStringSubmatch(subtitle)
	if subtitleMatch == nil {
		zap.L().Warn("unable to parse movie subtitle - skipping card", zap.String("subtitle", subtitle))
		return core.Movie{}, false
	}

	cover, hasCover := card.Find("img").Attr("src")
	if !hasCover || cover == "" {
		// lazy-loaded covers only carry the secondary attribute
		cover, _ = card.Find(lazyCoverSelector).Attr("data-src")
	}
	detailsHref, _ := card.Attr("href")

	movie := core.Movie{
		Name:       titleMatch[1],
		Year:       year,
		Rating:     subtitleMatch[2],
		Genre:      core.ParseGenre(subtitleMatch[3]),
		CoverURL:   absoluteURL(cover, s.BaseURL),
		DetailsURL: absoluteURL(detailsHref, s.BaseURL),
	}
	if err := validateScrapedMovie(&movie); err != nil {
		zap.L().Warn("scraped movie failed validation - skipping card",
			zap.String("name", movie.Name),
			zap.Error(err),
		)
		return core.Movie{}, false
	}
	return movie, true
}

func validateScrapedMovie(m *core.Movie) error {
	return validation.ValidateStruct(
		m,
		validation.Field(&m.Name, validation.Required),
		validation.Field(&m.Year, validation.Required),
		validation.Field(&m.DetailsURL, validation.Required, is.URL),
		validation.Field(&m.CoverURL, is.URL),
	)
}
