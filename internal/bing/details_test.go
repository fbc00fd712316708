package bing_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gettickets/gettickets/internal/bing"
	"github.com/gettickets/gettickets/internal/core"
	"github.com/gettickets/gettickets/internal/scraping"
)

const movieDetailsHTML = `<html><body>
<div class="carousel">
  <div class="carousel-title"><h2>Movies in Las Vegas</h2></div>
</div>
<div id="b_content">
  <ol id="b_context">
    <li>
      <div class="b_snippet">A linguist is recruited...<div class="b_hide">A linguist is recruited by the military to communicate with alien lifeforms after twelve mysterious spacecraft land around the world.</div></div>
      <span class="b_demoteText"> · 2016 · 1hr 56min · Sci-Fi</span>
      <a href="https://www.imdb.com/title/tt2543164/"><div class="cbl">7.9/10</div></a>
      <a href="https://www.rottentomatoes.com/m/arrival_2016"><div class="cbl">94%</div></a>
    </li>
  </ol>
  <div class="st_tab">
    <div class="tab-head">
      <div class="tab-menu"><ul>
        <li data-dataurl="/showtimes/day0">Today</li>
        <li data-dataurl="/showtimes/day1">Tomorrow</li>
        <li>Later</li>
      </ul></div>
    </div>
  </div>
</div>
</body></html>`

func showtimeSubPageHTML(theater string) string {
	return fmt.Sprintf(`<html><body>
<div class="st_entityGroup">
  <span id="st_entityName"><a href="/theater/%s">%s</a></span>
  <table><tr>
    <td class="st_Format">Standard</td>
    <td><ol>
      <li class="st_lFloat"><a href="/tickets/%s">7:30 PM</a></li>
    </ol></td>
  </tr></table>
</div>
</body></html>`, theater, theater, theater)
}

func newDetailsServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/moviedetails":
			_, _ = w.Write([]byte(movieDetailsHTML))
		case "/showtimes/day0":
			// delay the first date so it finishes after the second; the
			// assembled result must still follow tab order
			time.Sleep(50 * time.Millisecond)
			_, _ = w.Write([]byte(showtimeSubPageHTML("first-day-theater")))
		case "/showtimes/day1":
			_, _ = w.Write([]byte(showtimeSubPageHTML("second-day-theater")))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func testMovie(serverURL string) core.Movie {
	return core.Movie{
		Name:       "Arrival",
		Year:       2016,
		Genre:      core.GenreSciFi,
		DetailsURL: serverURL + "/moviedetails",
	}
}

func Test_Unit_Details(t *testing.T) {
	server := newDetailsServer(t)
	s := bing.NewScraper()
	s.BaseURL = server.URL

	details, err := s.Details(context.Background(), testMovie(server.URL), "", "")
	require.NoError(t, err)
	require.NotNil(t, details)

	assert.Equal(t, "Arrival", details.Movie.Name)
	assert.Equal(t, "A linguist is recruited by the military to communicate with alien lifeforms after twelve mysterious spacecraft land around the world.", details.Synopsis, "expanded synopsis preferred over the truncated one")
	assert.Equal(t, "1hr 56min", details.Duration)
	assert.Equal(t, "7.9 out of 10", details.IMDBRating)
	assert.Equal(t, "94%", details.RottenTomatoesRating)

	today := time.Now().Format(time.DateOnly)
	tomorrow := time.Now().AddDate(0, 0, 1).Format(time.DateOnly)
	require.Equal(t, []string{today, tomorrow}, details.Dates,
		"the tab without a data url is skipped; the rest keep menu order")
	require.Len(t, details.ShowtimesPerDate, 2)

	first := details.ShowtimesPerDate[today]
	require.Len(t, first, 1)
	assert.Equal(t, "first-day-theater", first[0].Theater.Name,
		"slow first fetch must not swap positions with the fast second one")
	assert.Equal(t, []core.Showtime{
		{StartTime: "19:30", TicketURL: server.URL + "/tickets/first-day-theater"},
	}, first[0].Showtimes)

	second := details.ShowtimesPerDate[tomorrow]
	require.Len(t, second, 1)
	assert.Equal(t, "second-day-theater", second[0].Theater.Name)
}

func Test_Unit_Details_ScopedToDate(t *testing.T) {
	server := newDetailsServer(t)
	s := bing.NewScraper()
	s.BaseURL = server.URL

	tomorrow := time.Now().AddDate(0, 0, 1).Format(time.DateOnly)
	details, err := s.Details(context.Background(), testMovie(server.URL), tomorrow, "")
	require.NoError(t, err)
	require.NotNil(t, details)

	require.Equal(t, []string{tomorrow}, details.Dates)
	formats := details.ShowtimesPerDate[tomorrow]
	require.Len(t, formats, 1)
	assert.Equal(t, "second-day-theater", formats[0].Theater.Name)
}

func Test_Unit_Details_UnmatchedDate(t *testing.T) {
	server := newDetailsServer(t)
	s := bing.NewScraper()
	s.BaseURL = server.URL

	details, err := s.Details(context.Background(), testMovie(server.URL), "2000-01-01", "")
	require.NoError(t, err)
	require.NotNil(t, details)

	assert.Empty(t, details.Dates)
	assert.Empty(t, details.ShowtimesPerDate)
	assert.NotEmpty(t, details.Synopsis, "side panel fields survive an unmatched date")
	assert.Equal(t, "7.9 out of 10", details.IMDBRating)
}

func Test_Unit_Details_FailedDateDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/moviedetails":
			_, _ = w.Write([]byte(movieDetailsHTML))
		case "/showtimes/day1":
			_, _ = w.Write([]byte(showtimeSubPageHTML("second-day-theater")))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	s := bing.NewScraper()
	s.BaseURL = server.URL

	details, err := s.Details(context.Background(), testMovie(server.URL), "", "")
	require.NoError(t, err)
	require.NotNil(t, details)

	today := time.Now().Format(time.DateOnly)
	tomorrow := time.Now().AddDate(0, 0, 1).Format(time.DateOnly)
	require.Equal(t, []string{today, tomorrow}, details.Dates)
	assert.Empty(t, details.ShowtimesPerDate[today], "a failed date degrades to an empty format list")
	require.Len(t, details.ShowtimesPerDate[tomorrow], 1)
}

func Test_Unit_Details_MissingPanels(t *testing.T) {
	const noPanelsHTML = `<html><body>
<div class="carousel"><div class="carousel-title"><h2>Movies in Las Vegas</h2></div></div>
</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(noPanelsHTML))
	}))
	defer server.Close()

	s := bing.NewScraper()
	s.BaseURL = server.URL

	details, err := s.Details(context.Background(), testMovie(server.URL), "", "")
	assert.Nil(t, details)
	assert.ErrorIs(t, err, scraping.ErrUnexpectedPage)
}
