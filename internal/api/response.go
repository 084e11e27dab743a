package api

import (
	"headlines/internal/domain"
	"headlines/internal/timefmt"
)

// ArticleResponse is an article as rendered in a list row.
type ArticleResponse struct {
	Author      *string `json:"author"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"urlToImage"`
	URL         string  `json:"url"`
	PublishedAt *string `json:"publishedAt"`
	Date        string  `json:"date"`
}

type HeadlinesResponse struct {
	Status   domain.FetchStatus `json:"status"`
	Message  string             `json:"message,omitempty"`
	Query    string             `json:"query"`
	Total    int                `json:"total"`
	Articles []ArticleResponse  `json:"articles"`
}

type QueryRequest struct {
	Query *string `json:"query"`
}

type QueryResponse struct {
	Query string `json:"query"`
}

type HistoryResponse struct {
	History []string `json:"history"`
}

type OpenArticleRequest struct {
	URL string `json:"url" binding:"required"`
}

type OpenArticleResponse struct {
	Encoded string          `json:"encoded"`
	Article ArticleResponse `json:"article"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func toArticleResponse(a domain.Article, f *timefmt.Formatter) ArticleResponse {
	return ArticleResponse{
		Author:      a.Author,
		Title:       a.Title,
		Description: a.Description,
		ImageURL:    a.ImageURL,
		URL:         a.URL,
		PublishedAt: a.PublishedAt,
		Date:        f.Format(a.PublishedAt),
	}
}
