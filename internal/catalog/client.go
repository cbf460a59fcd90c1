package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"probpick/internal/models"
	"probpick/internal/providers"
	"probpick/internal/structures"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

const (
	KindCandidates = "candidates"
	KindSolved     = "solved"

	languageHeader = "x-solvedac-language"
	maxBodySize    = 8 << 20
)

// SearchRequest is a catalog search without the page number.
type SearchRequest struct {
	Kind      string
	Query     string
	Sort      string
	Direction string
}

func CandidateSearch(query string) SearchRequest {
	return SearchRequest{Kind: KindCandidates, Query: query, Sort: "random"}
}

// SolvedSearch lists a user's solved problems in a stable order so pages never overlap.
func SolvedSearch(userID string) SearchRequest {
	return SearchRequest{Kind: KindSolved, Query: SolvedByQuery(userID), Sort: "id", Direction: "asc"}
}

type ClientInterface interface {
	FetchPage(ctx context.Context, req SearchRequest, page int) (*models.SearchPage, error)
	FetchAll(ctx context.Context, query string) ([]models.CatalogProblem, error)
	FetchSolvedIDs(ctx context.Context, userID string) ([]int, error)
}

type Client struct {
	baseURL    string
	language   string
	pageDelay  time.Duration
	maxPages   int
	httpClient *http.Client
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewClient(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) ClientInterface {
	timeout := conf.Catalog.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxPages := conf.Catalog.MaxPages
	if maxPages <= 0 {
		maxPages = 50
	}
	return &Client{
		baseURL:    strings.TrimSuffix(conf.Catalog.BaseUrl, "/"),
		language:   conf.Catalog.Language,
		pageDelay:  conf.Catalog.PageDelay,
		maxPages:   maxPages,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		metrics:    metrics,
	}
}

func (c *Client) searchURL(req SearchRequest, page int) string {
	params := url.Values{}
	params.Set("query", req.Query)
	params.Set("page", strconv.Itoa(page))
	if req.Sort != "" {
		params.Set("sort", req.Sort)
	}
	if req.Direction != "" {
		params.Set("direction", req.Direction)
	}
	return c.baseURL + "/search/problem?" + params.Encode()
}

// FetchPage performs a single search request. Any transport failure or
// non-2xx response is returned as *models.CatalogError.
func (c *Client) FetchPage(ctx context.Context, req SearchRequest, page int) (*models.SearchPage, error) {
	start := time.Now()
	status := 0
	defer func() {
		c.metrics.IncCatalogRequests(req.Kind, status)
		c.metrics.ObserveCatalogDuration(req.Kind, time.Since(start))
	}()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(req, page), nil)
	if err != nil {
		return nil, &models.CatalogError{Err: err}
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.language != "" {
		httpReq.Header.Set(languageHeader, c.language)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &models.CatalogError{Err: err}
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, &models.CatalogError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var result models.SearchPage
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&result); err != nil {
		return nil, &models.CatalogError{StatusCode: resp.StatusCode, Status: resp.Status, Err: fmt.Errorf("malformed search response: %w", err)}
	}
	return &result, nil
}

// FetchAll returns every problem matching the query. A failed page aborts the
// whole fetch; the caller never sees a truncated list.
func (c *Client) FetchAll(ctx context.Context, query string) ([]models.CatalogProblem, error) {
	problems, err := c.collect(ctx, CandidateSearch(query))
	if err != nil {
		return nil, err
	}
	return problems, nil
}

// FetchSolvedIDs returns the ids of every problem the user solved. A failed
// page stops the fetch; the ids gathered so far are returned together with the
// error so callers can decide to use the partial set.
func (c *Client) FetchSolvedIDs(ctx context.Context, userID string) ([]int, error) {
	problems, err := c.collect(ctx, SolvedSearch(userID))
	ids := make([]int, 0, len(problems))
	for _, p := range problems {
		ids = append(ids, p.ID)
	}
	return ids, err
}

// collect walks pages starting at 1 until an empty page, the reported total,
// or the page ceiling. Pages are requested strictly one after another, paced
// by the configured delay. On error the items gathered so far are returned.
func (c *Client) collect(ctx context.Context, req SearchRequest) ([]models.CatalogProblem, error) {
	limit := rate.Inf
	if c.pageDelay > 0 {
		limit = rate.Every(c.pageDelay)
	}
	limiter := rate.NewLimiter(limit, 1)

	var all []models.CatalogProblem
	for page := 1; page <= c.maxPages; page++ {
		if err := limiter.Wait(ctx); err != nil {
			return all, &models.CatalogError{Err: err}
		}

		result, err := c.FetchPage(ctx, req, page)
		if err != nil {
			c.logger.Warnf(providers.TypeCatalog, "%s page %d failed: %s", req.Kind, page, err)
			return all, err
		}
		if len(result.Items) == 0 {
			break
		}

		all = append(all, result.Items...)
		if page == 1 {
			c.logger.Debugf(providers.TypeCatalog, "%s query %q reports %d problems", req.Kind, req.Query, result.Count)
		}
		if len(all) >= result.Count {
			break
		}
	}
	return all, nil
}
