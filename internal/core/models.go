package core

import "strings"

// Movie is a single entry from a movie listing page. All URLs are absolute.
type Movie struct {
	Name       string `json:"name"`
	Year       int    `json:"year"`
	Rating     string `json:"rating,omitempty"`
	Genre      Genre  `json:"genre"`
	CoverURL   string `json:"coverUrl"`
	DetailsURL string `json:"detailsUrl"`
}

// MovieDetails carries everything scraped from a movie's detail page plus the
// per-date showtime sub-pages. Dates and the keys of ShowtimesPerDate are in
// 1:1 correspondence and share ordering.
type MovieDetails struct {
	Movie                *Movie                       `json:"movie"`
	Duration             string                       `json:"duration,omitempty"`
	IMDBRating           string                       `json:"imdbRating,omitempty"`
	RottenTomatoesRating string                       `json:"rottenTomatoesRating,omitempty"`
	Synopsis             string                       `json:"synopsis,omitempty"`
	Dates                []string                     `json:"dates"`
	ShowtimesPerDate     map[string][]FormatShowtimes `json:"showTimesPerDate"`
}

// FormatShowtimes is one presentation format (e.g. "Standard", "3D") at one
// theater on one date. Never constructed with zero showtimes.
type FormatShowtimes struct {
	Name      string     `json:"name"`
	Theater   Theater    `json:"theater"`
	Showtimes []Showtime `json:"showTimes"`
}

// Showtime is a single purchasable showing. StartTime is zero-padded 24-hour
// "HH:mm"; showings without a ticket link are never materialized.
type Showtime struct {
	StartTime string `json:"startTime"`
	TicketURL string `json:"ticketUrl"`
}

type Theater struct {
	Name       string `json:"name"`
	DetailsURL string `json:"detailsUrl"`
}

type Genre int

const (
	GenreUnknown Genre = iota
	GenreAny
	GenreAction
	GenreAdventure
	GenreAnimated
	GenreBiography
	GenreComedy
	GenreCrime
	GenreDocumentary
	GenreDrama
	GenreFamily
	GenreFantasy
	GenreHistory
	GenreHorror
	GenreMusical
	GenreMystery
	GenreRomance
	GenreSciFi
	GenreSport
	GenreSuspense
	GenreThriller
	GenreWar
	GenreWestern
)

var genreNames = map[Genre]string{
	GenreAny:         "Any",
	GenreAction:      "Action",
	GenreAdventure:   "Adventure",
	GenreAnimated:    "Animated",
	GenreBiography:   "Biography",
	GenreComedy:      "Comedy",
	GenreCrime:       "Crime",
	GenreDocumentary: "Documentary",
	GenreDrama:       "Drama",
	GenreFamily:      "Family",
	GenreFantasy:     "Fantasy",
	GenreHistory:     "History",
	GenreHorror:      "Horror",
	GenreMusical:     "Musical",
	GenreMystery:     "Mystery",
	GenreRomance:     "Romance",
	GenreSciFi:       "Sci-Fi",
	GenreSport:       "Sport",
	GenreSuspense:    "Suspense",
	GenreThriller:    "Thriller",
	GenreWar:         "War",
	GenreWestern:     "Western",
}

func (g Genre) String() string {
	if name, ok := genreNames[g]; ok {
		return name
	}
	return "Unknown"
}

func (g Genre) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *Genre) UnmarshalText(text []byte) error {
	*g = ParseGenre(string(text))
	return nil
}

// ParseGenre maps listing-page genre text to a Genre. Unrecognized text maps
// to GenreUnknown rather than failing.
func ParseGenre(s string) Genre {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for genre, name := range genreNames {
		if strings.ToLower(name) == normalized {
			return genre
		}
	}
	return GenreUnknown
}

// NonSpecificTime is a qualitative time-of-day token, each mapping to one
// canonical clock time.
type NonSpecificTime int

const (
	Morning NonSpecificTime = iota
	Afternoon
	Evening
	Night
)

// ClockTime returns the canonical "HH:mm" for the token.
func (t NonSpecificTime) ClockTime() string {
	switch t {
	case Morning:
		return "09:00"
	case Afternoon:
		return "13:00"
	case Evening:
		return "17:00"
	case Night:
		return "22:00"
	default:
		return ""
	}
}

// ParseNonSpecificTime maps a spoken time-of-day word to its token. The
// second return reports whether the input matched one.
func ParseNonSpecificTime(s string) (NonSpecificTime, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "morning":
		return Morning, true
	case "afternoon":
		return Afternoon, true
	case "evening":
		return Evening, true
	case "night":
		return Night, true
	default:
		return 0, false
	}
}
