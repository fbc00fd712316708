package scraping

import "errors"

var (
	// ErrBadResponse marks a network failure or a non-2xx status from the
	// origin.
	ErrBadResponse = errors.New("bad response from origin")

	// ErrUnexpectedPage marks a fetched page whose structure diverged from
	// the expected contract - a required container, title, or element is
	// absent. Usually means the source site changed its layout.
	ErrUnexpectedPage = errors.New("unexpected page structure")

	// ErrAggregationMismatch marks an internal inconsistency between the
	// set of requested dates and the per-date results produced for them.
	ErrAggregationMismatch = errors.New("showtime results do not match requested dates")
)
