package scraping_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gettickets/gettickets/internal/scraping"
)

func Test_Unit_FetchDocument(t *testing.T) {
	var gotHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`<html><body><div id="target">hello</div></body></html>`))
	}))
	defer server.Close()

	doc, err := scraping.FetchDocument(context.Background(), server.URL, map[string]string{
		"User-Agent": "test-agent",
	})
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, "test-agent", gotHeader)
	assert.Equal(t, "hello", doc.Find("div#target").Text())
}

func Test_Unit_FetchDocument_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	doc, err := scraping.FetchDocument(context.Background(), server.URL, nil)
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, scraping.ErrBadResponse)
}

func Test_Unit_FetchDocument_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	doc, err := scraping.FetchDocument(context.Background(), server.URL, nil)
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, scraping.ErrBadResponse)
}
