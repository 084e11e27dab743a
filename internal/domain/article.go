package domain

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Article is one headline as returned by the news API. Optional fields are nil when absent.
type Article struct {
	Author      *string `json:"author"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"urlToImage"`
	URL         string  `json:"url"`
	PublishedAt *string `json:"publishedAt"`
}

// HeadlineQuery selects the top-headline set to fetch.
type HeadlineQuery struct {
	Country  string
	Category string
}

// FilterByTitle returns the articles whose title contains query, ignoring case.
// A blank query returns articles unchanged.
func FilterByTitle(articles []Article, query string) []Article {
	if strings.TrimSpace(query) == "" {
		return articles
	}

	needle := strings.ToLower(query)
	filtered := make([]Article, 0, len(articles))
	for _, a := range articles {
		if strings.Contains(strings.ToLower(a.Title), needle) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// EncodeArticle serializes an article into a URL-safe string for the detail view.
func EncodeArticle(a Article) (string, error) {
	raw, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("marshal article: %w", err)
	}
	return url.PathEscape(string(raw)), nil
}

// DecodeArticle reverses EncodeArticle.
func DecodeArticle(encoded string) (Article, error) {
	raw, err := url.PathUnescape(encoded)
	if err != nil {
		return Article{}, fmt.Errorf("unescape article: %w", err)
	}

	var a Article
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return Article{}, fmt.Errorf("unmarshal article: %w", err)
	}
	return a, nil
}
