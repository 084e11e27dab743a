// Package api exposes the headlines state over HTTP for a UI client.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"headlines/internal/domain"
	"headlines/internal/service"
	"headlines/internal/timefmt"
)

// HeadlinesService is the state object the handlers drive.
type HeadlinesService interface {
	Fetch(ctx context.Context) domain.FetchResult
	Snapshot() service.Snapshot
	SetQuery(q string)
	Query() string
	History() []string
	AddToHistory(ctx context.Context, query string)
	RemoveFromHistory(ctx context.Context, query string)
	ClearHistory(ctx context.Context)
	OpenArticle(ctx context.Context, url string) (domain.Article, string, error)
}

type Handler struct {
	headlines HeadlinesService
	formatter *timefmt.Formatter
}

func NewHandler(headlines HeadlinesService, formatter *timefmt.Formatter) *Handler {
	return &Handler{headlines: headlines, formatter: formatter}
}

// GetHeadlines handles GET /api/v1/headlines.
func (h *Handler) GetHeadlines(c *gin.Context) {
	c.JSON(http.StatusOK, h.headlinesResponse(h.headlines.Snapshot()))
}

// Refresh handles POST /api/v1/headlines/refresh. A failed fetch is reported in the
// body status, not as an HTTP error.
func (h *Handler) Refresh(c *gin.Context) {
	h.headlines.Fetch(c.Request.Context())
	c.JSON(http.StatusOK, h.headlinesResponse(h.headlines.Snapshot()))
}

func (h *Handler) GetSearch(c *gin.Context) {
	c.JSON(http.StatusOK, QueryResponse{Query: h.headlines.Query()})
}

// SetSearch handles PUT /api/v1/search and returns the re-filtered headlines.
func (h *Handler) SetSearch(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "query is required"})
		return
	}

	h.headlines.SetQuery(*req.Query)
	c.JSON(http.StatusOK, h.headlinesResponse(h.headlines.Snapshot()))
}

func (h *Handler) GetHistory(c *gin.Context) {
	c.JSON(http.StatusOK, HistoryResponse{History: h.headlines.History()})
}

func (h *Handler) AddHistory(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "query is required"})
		return
	}

	h.headlines.AddToHistory(c.Request.Context(), *req.Query)
	c.JSON(http.StatusOK, HistoryResponse{History: h.headlines.History()})
}

// RemoveHistory handles DELETE /api/v1/history/entry?query=... The query travels in
// the query string so entries containing "/" can be removed.
func (h *Handler) RemoveHistory(c *gin.Context) {
	query, ok := c.GetQuery("query")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "query is required"})
		return
	}

	h.headlines.RemoveFromHistory(c.Request.Context(), query)
	c.JSON(http.StatusOK, HistoryResponse{History: h.headlines.History()})
}

func (h *Handler) ClearHistory(c *gin.Context) {
	h.headlines.ClearHistory(c.Request.Context())
	c.JSON(http.StatusOK, HistoryResponse{History: h.headlines.History()})
}

// OpenArticle handles POST /api/v1/articles/open.
func (h *Handler) OpenArticle(c *gin.Context) {
	var req OpenArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "url is required"})
		return
	}

	article, encoded, err := h.headlines.OpenArticle(c.Request.Context(), req.URL)
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not open article"})
		return
	}

	c.JSON(http.StatusOK, OpenArticleResponse{
		Encoded: encoded,
		Article: toArticleResponse(article, h.formatter),
	})
}

func (h *Handler) headlinesResponse(snap service.Snapshot) HeadlinesResponse {
	articles := make([]ArticleResponse, 0, len(snap.Filtered))
	for _, a := range snap.Filtered {
		articles = append(articles, toArticleResponse(a, h.formatter))
	}

	return HeadlinesResponse{
		Status:   snap.Result.Status,
		Message:  snap.Result.Message,
		Query:    snap.Query,
		Total:    len(snap.Result.Articles),
		Articles: articles,
	}
}
