package bing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Unit_ComposeQuery(t *testing.T) {
	tests := []struct {
		name   string
		genre  string
		city   string
		expect string
	}{
		{name: "genre and city", genre: "comedy", city: "Las Vegas", expect: "comedy movies in theater in Las Vegas"},
		{name: "city alias expanded", genre: "comedy", city: "vegas", expect: "comedy movies in theater in Las Vegas"},
		{name: "no genre", city: "Seattle", expect: "movies in theater in Seattle"},
		{name: "no city", genre: "horror", expect: "horror movies in theater"},
		{name: "neither", expect: "movies in theater"},
		{name: "unrecognized genre passes through", genre: "slapstick", city: "Portland", expect: "slapstick movies in theater in Portland"},
		{name: "whitespace trimmed", genre: "  drama ", city: " Boston  ", expect: "drama movies in theater in Boston"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, composeQuery(tt.genre, tt.city))
		})
	}
}

func Test_Unit_ResolveCity(t *testing.T) {
	assert.Equal(t, "Las Vegas", ResolveCity("vegas"))
	assert.Equal(t, "New York", ResolveCity("NYC"))
	assert.Equal(t, "Boise", ResolveCity(" Boise "), "unknown cities pass through trimmed")
	assert.Equal(t, "", ResolveCity(""))
}

func Test_Unit_SearchURL(t *testing.T) {
	s := NewScraper()
	assert.Equal(
		t,
		"https://www.bing.com/search?form=QBRE&q=comedy+movies+in+theater+in+Las+Vegas&qs=bs",
		s.searchURL("comedy movies in theater in Las Vegas"),
	)
}
