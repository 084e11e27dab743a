package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"headlines/internal/testutil"
)

func sampleArticles() []Article {
	return []Article{
		{Title: "Markets rally on Fed news", URL: "https://example.com/1"},
		{Title: "Local team wins final", URL: "https://example.com/2"},
		{Title: "FED chair speaks", URL: "https://example.com/3"},
		{Title: "Weather: storms ahead", URL: "https://example.com/4"},
		{Title: "İstanbul fed up with traffic", URL: "https://example.com/5"},
	}
}

func TestFilterByTitle_BlankQueryIsIdentity(t *testing.T) {
	articles := sampleArticles()

	for _, q := range []string{"", " ", "\t\n"} {
		assert.Equal(t, articles, FilterByTitle(articles, q), "query %q", q)
	}
	assert.Empty(t, FilterByTitle(nil, ""))
}

func TestFilterByTitle_CaseInsensitiveAndOrdered(t *testing.T) {
	articles := sampleArticles()

	got := FilterByTitle(articles, "fed")
	require.Len(t, got, 3)
	assert.Equal(t, "https://example.com/1", got[0].URL)
	assert.Equal(t, "https://example.com/3", got[1].URL)
	assert.Equal(t, "https://example.com/5", got[2].URL)
}

func TestFilterByTitle_PartitionsArticles(t *testing.T) {
	articles := sampleArticles()

	for _, q := range []string{"fed", "WIN", "s", "storms ahead", "zzz", "Fed "} {
		got := FilterByTitle(articles, q)
		kept := make(map[string]bool, len(got))
		for _, a := range got {
			assert.Contains(t, strings.ToLower(a.Title), strings.ToLower(q))
			kept[a.URL] = true
		}
		for _, a := range articles {
			if !kept[a.URL] {
				assert.NotContains(t, strings.ToLower(a.Title), strings.ToLower(q))
			}
		}
	}
}

func TestFilterByTitle_QueryNotTrimmed(t *testing.T) {
	got := FilterByTitle(sampleArticles(), " fed")
	require.Len(t, got, 2)
	assert.Equal(t, "https://example.com/1", got[0].URL)
	assert.Equal(t, "https://example.com/5", got[1].URL)
}

func TestEncodeDecodeArticle(t *testing.T) {
	article := Article{
		Author:      testutil.Ptr("Jane Doe"),
		Title:       "Rates & bonds: what's next?",
		Description: testutil.Ptr("A look at 50% moves / week"),
		ImageURL:    testutil.Ptr("https://img.example.com/a.jpg?w=600"),
		URL:         "https://example.com/rates?id=1#top",
		PublishedAt: testutil.Ptr("2024-01-15T10:30:00Z"),
	}

	encoded, err := EncodeArticle(article)
	require.NoError(t, err)
	assert.NotContains(t, encoded, "/")
	assert.NotContains(t, encoded, "?")
	assert.NotContains(t, encoded, "#")
	assert.NotContains(t, encoded, " ")

	decoded, err := DecodeArticle(encoded)
	require.NoError(t, err)
	assert.Equal(t, article, decoded)
}

func TestEncodeArticle_UsesAPIFieldNames(t *testing.T) {
	encoded, err := EncodeArticle(Article{Title: "t", URL: "u", ImageURL: testutil.Ptr("i")})
	require.NoError(t, err)

	assert.Contains(t, encoded, "urlToImage")
	assert.Contains(t, encoded, "publishedAt")
}

func TestDecodeArticle_Invalid(t *testing.T) {
	_, err := DecodeArticle("%zz")
	assert.Error(t, err)

	_, err = DecodeArticle("not-json")
	assert.Error(t, err)
}
