package bing_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gettickets/gettickets/internal/bing"
	"github.com/gettickets/gettickets/internal/core"
)

func Test_Unit_Service_SearchDegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc := bing.NewService()
	svc.Scraper.BaseURL = server.URL

	movies := svc.Search(context.Background(), "comedy", "vegas")
	require.NotNil(t, movies, "callers always get an answer, possibly an empty one")
	assert.Empty(t, movies)
}

func Test_Unit_Service_DetailsDegradesToNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc := bing.NewService()
	svc.Scraper.BaseURL = server.URL

	movie := core.Movie{Name: "Arrival", Year: 2016, DetailsURL: server.URL + "/moviedetails"}
	details := svc.Details(context.Background(), movie, "", "Evening")
	assert.Nil(t, details)
}

func Test_Unit_Service_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(searchResultsHTML))
	}))
	defer server.Close()

	svc := bing.NewService()
	svc.Scraper.BaseURL = server.URL

	movies := svc.Search(context.Background(), "Comedy", "Las Vegas")
	require.Len(t, movies, 3)
	assert.Equal(t, "Arrival", movies[0].Name)
}
