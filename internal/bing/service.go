package bing

import (
	"context"

	"go.uber.org/zap"

	"github.com/gettickets/gettickets/internal/core"
)

// Service is the boundary the dialog and delivery layers consume. Any
// internal failure - transport, page structure, aggregation - is caught
// here, logged, and degraded to an empty or absent result: a caller always
// gets an answer, possibly an empty one. The data is non-critical and
// re-queryable, so availability wins over completeness.
type Service struct {
	Scraper *Scraper
}

func NewService() *Service {
	return &Service{Scraper: NewScraper()}
}

// Search returns the movies playing for an optional genre and city, or an
// empty slice when anything goes wrong.
func (s *Service) Search(ctx context.Context, genre, city string) []core.Movie {
	movies, err := s.Scraper.Search(ctx, genre, city)
	if err != nil {
		zap.L().Error("movie search failed",
			zap.String("genre", genre),
			zap.String("city", city),
			zap.Error(err),
		)
		return []core.Movie{}
	}
	return movies
}

// Details returns showtime details for a movie previously returned by
// Search, scoped to an optional date ("yyyy-MM-dd") and start time ("HH:mm"
// or a qualitative token), or nil when anything goes wrong.
func (s *Service) Details(ctx context.Context, movie core.Movie, date, startTime string) *core.MovieDetails {
	details, err := s.Scraper.Details(ctx, movie, date, startTime)
	if err != nil {
		zap.L().Error("movie details lookup failed",
			zap.String("movie", movie.Name),
			zap.String("date", date),
			zap.Error(err),
		)
		return nil
	}
	return details
}
