package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"headlines/internal/domain"
	"headlines/internal/resilience/circuitbreaker"
)

const (
	SourceID   = "newsapi"
	SourceName = "NewsAPI"

	DefaultBaseURL  = "https://newsapi.org/v2"
	DefaultCountry  = "tr"
	DefaultCategory = "general"

	topHeadlinesPath = "/top-headlines"
	apiKeyParam      = "apiKey"
)

// Config holds NewsAPI source configuration.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Breaker circuitbreaker.Config
}

// Source fetches top headlines from NewsAPI. It never retries; each call is one request.
type Source struct {
	client  *resty.Client
	breaker *circuitbreaker.CircuitBreaker
	apiKey  string
	logger  *slog.Logger
}

// New creates a new NewsAPI source.
func New(cfg Config, logger *slog.Logger) *Source {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "Headlines/1.0")

	logger = logger.With("source", SourceID)

	breakerCfg := cfg.Breaker
	if breakerCfg.Name == "" {
		breakerCfg = circuitbreaker.DefaultConfig(SourceID)
	}

	return &Source{
		client:  client,
		breaker: circuitbreaker.New(breakerCfg, logger),
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

// ID returns the source identifier.
func (s *Source) ID() string {
	return SourceID
}

// Name returns human-readable name.
func (s *Source) Name() string {
	return SourceName
}

// Available reports whether the circuit breaker currently lets requests through.
func (s *Source) Available() bool {
	return !s.breaker.IsOpen()
}

// FetchTopHeadlines returns the articles in server order. Empty query fields fall back to
// DefaultCountry and DefaultCategory.
func (s *Source) FetchTopHeadlines(ctx context.Context, q domain.HeadlineQuery) ([]domain.Article, error) {
	if q.Country == "" {
		q.Country = DefaultCountry
	}
	if q.Category == "" {
		q.Category = DefaultCategory
	}

	out, err := s.breaker.Execute(func() (interface{}, error) {
		return s.doRequest(ctx, q)
	})
	if err != nil {
		return nil, err
	}

	resp := out.(*APIResponse)
	s.logger.Debug("fetched top headlines",
		"country", q.Country,
		"category", q.Category,
		"articles", len(resp.Articles),
		"total_results", resp.TotalResults,
	)

	return transform(resp.Articles), nil
}

func (s *Source) doRequest(ctx context.Context, q domain.HeadlineQuery) (*APIResponse, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"country":   q.Country,
			"category":  q.Category,
			apiKeyParam: s.apiKey,
		}).
		Get(topHeadlinesPath)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", redactURLError(err))
	}

	var apiResp APIResponse
	if resp.StatusCode() != http.StatusOK {
		// Error bodies carry a code and message; fall back to the bare status when they don't.
		_ = json.Unmarshal(resp.Body(), &apiResp)
		return nil, &APIError{
			StatusCode: resp.StatusCode(),
			Code:       apiResp.Code,
			Message:    apiResp.Message,
		}
	}

	if err := json.Unmarshal(resp.Body(), &apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if apiResp.Status == "error" {
		return nil, &APIError{
			StatusCode: resp.StatusCode(),
			Code:       apiResp.Code,
			Message:    apiResp.Message,
		}
	}

	return &apiResp, nil
}

// redactURLError hides the API key carried in the request URL of transport errors.
func redactURLError(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}

	u, perr := url.Parse(urlErr.URL)
	if perr != nil {
		urlErr.URL = "<redacted>"
		return err
	}

	query := u.Query()
	if query.Has(apiKeyParam) {
		query.Set(apiKeyParam, "redacted")
		u.RawQuery = query.Encode()
	}
	urlErr.URL = u.String()
	return err
}

func transform(items []APIArticle) []domain.Article {
	articles := make([]domain.Article, 0, len(items))
	for _, item := range items {
		articles = append(articles, domain.Article{
			Author:      item.Author,
			Title:       item.Title,
			Description: item.Description,
			ImageURL:    item.URLToImage,
			URL:         item.URL,
			PublishedAt: item.PublishedAt,
		})
	}
	return articles
}
