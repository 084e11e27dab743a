package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"headlines/internal/domain"
	"headlines/internal/metrics"
)

const (
	fetchKey      = "top-headlines"
	failurePrefix = "could not fetch headlines"
)

var (
	// ErrEmptyResult marks a successful response that carried no articles.
	ErrEmptyResult = errors.New("empty result")

	ErrArticleNotFound = errors.New("article not found")
)

// Headlines owns the fetched articles, the search query and the search history.
// The history store and detail publisher are optional.
type Headlines struct {
	source    Source
	store     HistoryStore
	publisher DetailPublisher
	query     domain.HeadlineQuery
	logger    *slog.Logger

	group singleflight.Group

	mu      sync.RWMutex
	result  domain.FetchResult
	search  string
	history domain.SearchHistory

	// persistMu keeps store writes in mutation order without holding mu during I/O.
	persistMu sync.Mutex
}

// Snapshot is a consistent view of the state for one render.
type Snapshot struct {
	Result   domain.FetchResult
	Query    string
	Filtered []domain.Article
	History  []string
}

func NewHeadlines(
	source Source,
	store HistoryStore,
	publisher DetailPublisher,
	logger *slog.Logger,
	query domain.HeadlineQuery,
) *Headlines {
	return &Headlines{
		source:    source,
		store:     store,
		publisher: publisher,
		query:     query,
		logger:    logger.With("source", source.ID()),
		result:    domain.Loading(),
		history:   domain.SearchHistory{},
	}
}

// Fetch resets the result to loading and fetches the headlines once.
// Calls made while a fetch is in flight share its result. If ctx ends first,
// the current (loading) result is returned and the fetch completes in the background.
func (h *Headlines) Fetch(ctx context.Context) domain.FetchResult {
	ch := h.group.DoChan(fetchKey, func() (interface{}, error) {
		h.setResult(domain.Loading())
		return h.fetch(context.WithoutCancel(ctx)), nil
	})

	select {
	case res := <-ch:
		return cloneResult(res.Val.(domain.FetchResult))
	case <-ctx.Done():
		return h.Result()
	}
}

func (h *Headlines) fetch(ctx context.Context) domain.FetchResult {
	start := time.Now()
	h.logger.Info("fetching headlines",
		"source_name", h.source.Name(),
		"country", h.query.Country,
		"category", h.query.Category,
	)

	articles, err := h.source.FetchTopHeadlines(ctx, h.query)
	if err == nil && len(articles) == 0 {
		err = ErrEmptyResult
	}

	var result domain.FetchResult
	switch {
	case errors.Is(err, ErrEmptyResult):
		h.logger.Warn("empty headline list received")
		metrics.ObserveFetch(metrics.ResultEmpty, 0, time.Since(start))
		result = domain.Failure(fmt.Sprintf("%s: %v", failurePrefix, err))
	case err != nil:
		h.logger.Error("fetch headlines failed", "error", err)
		metrics.ObserveFetch(metrics.ResultError, 0, time.Since(start))
		result = domain.Failure(fmt.Sprintf("%s: %v", failurePrefix, err))
	default:
		h.logger.Info("headlines received",
			"count", len(articles),
			"first_title", articles[0].Title,
			"duration", time.Since(start),
		)
		metrics.ObserveFetch(metrics.ResultSuccess, len(articles), time.Since(start))
		result = domain.Success(articles)
	}

	h.setResult(result)
	return result
}

func (h *Headlines) setResult(r domain.FetchResult) {
	h.mu.Lock()
	h.result = r
	h.mu.Unlock()
}

// Result returns a copy of the state of the last fetch.
func (h *Headlines) Result() domain.FetchResult {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return cloneResult(h.result)
}

func cloneResult(r domain.FetchResult) domain.FetchResult {
	r.Articles = slices.Clone(r.Articles)
	return r
}

// SetQuery replaces the search query verbatim.
func (h *Headlines) SetQuery(q string) {
	h.mu.Lock()
	h.search = q
	h.mu.Unlock()
}

func (h *Headlines) Query() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.search
}

// Filtered derives the articles matching the current query from the last successful fetch.
func (h *Headlines) Filtered() []domain.Article {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.filteredLocked()
}

func (h *Headlines) filteredLocked() []domain.Article {
	return slices.Clone(domain.FilterByTitle(h.result.Articles, h.search))
}

func (h *Headlines) Snapshot() Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return Snapshot{
		Result:   cloneResult(h.result),
		Query:    h.search,
		Filtered: h.filteredLocked(),
		History:  slices.Clone(h.history),
	}
}

// History returns past queries, most recent first.
func (h *Headlines) History() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.history)
}

// AddToHistory prepends query unless it is blank or already present.
func (h *Headlines) AddToHistory(ctx context.Context, query string) {
	h.mutateHistory(ctx, "add", func(cur domain.SearchHistory) domain.SearchHistory {
		return cur.Add(query)
	})
}

// RemoveFromHistory drops query from the history; absent queries are ignored.
func (h *Headlines) RemoveFromHistory(ctx context.Context, query string) {
	h.mutateHistory(ctx, "remove", func(cur domain.SearchHistory) domain.SearchHistory {
		return cur.Remove(query)
	})
}

func (h *Headlines) ClearHistory(ctx context.Context) {
	h.mutateHistory(ctx, "clear", func(cur domain.SearchHistory) domain.SearchHistory {
		return cur.Clear()
	})
}

// mutateHistory applies edit and writes the result through to the store.
// Store failures are logged only; history edits never fail.
func (h *Headlines) mutateHistory(ctx context.Context, op string, edit func(domain.SearchHistory) domain.SearchHistory) {
	h.persistMu.Lock()
	defer h.persistMu.Unlock()

	h.mu.Lock()
	prev := h.history
	next := edit(prev)
	h.history = next
	h.mu.Unlock()

	metrics.HistorySize.Set(float64(len(next)))

	if h.store == nil || (op != "clear" && slices.Equal(prev, next)) {
		return
	}

	// Detached from ctx: the in-memory edit is already applied.
	if err := h.store.Save(context.WithoutCancel(ctx), slices.Clone(next)); err != nil {
		metrics.HistoryStoreErrors.WithLabelValues(op).Inc()
		h.logger.Error("failed to save search history", "operation", op, "error", err)
	}
}

// LoadHistory seeds the history from the store, dropping blank and duplicate entries.
func (h *Headlines) LoadHistory(ctx context.Context) error {
	if h.store == nil {
		return nil
	}

	queries, err := h.store.Load(ctx)
	if err != nil {
		metrics.HistoryStoreErrors.WithLabelValues("load").Inc()
		return fmt.Errorf("load search history: %w", err)
	}

	history := make(domain.SearchHistory, 0, len(queries))
	for _, q := range queries {
		if strings.TrimSpace(q) == "" || history.Contains(q) {
			continue
		}
		history = append(history, q)
	}

	h.mu.Lock()
	h.history = history
	h.mu.Unlock()

	metrics.HistorySize.Set(float64(len(history)))
	h.logger.Debug("search history loaded", "entries", len(history))
	return nil
}

// Article looks up an article of the last successful fetch by URL.
func (h *Headlines) Article(url string) (domain.Article, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, a := range h.result.Articles {
		if a.URL == url {
			return a, true
		}
	}
	return domain.Article{}, false
}

// OpenArticle encodes the article for the detail view and hands it to the publisher, if any.
// A failed hand-off is logged; the encoded article is still returned.
func (h *Headlines) OpenArticle(ctx context.Context, url string) (domain.Article, string, error) {
	article, ok := h.Article(url)
	if !ok {
		return domain.Article{}, "", ErrArticleNotFound
	}

	encoded, err := domain.EncodeArticle(article)
	if err != nil {
		return domain.Article{}, "", err
	}

	if h.publisher != nil {
		if err := h.publisher.PublishDetail(ctx, &article, encoded); err != nil {
			metrics.DetailsPublished.WithLabelValues("error").Inc()
			h.logger.Error("failed to publish article detail", "url", url, "error", err)
		} else {
			metrics.DetailsPublished.WithLabelValues("ok").Inc()
		}
	}

	return article, encoded, nil
}
