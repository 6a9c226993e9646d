package safetycheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"homesafe/safety-portal-backend/internal/config"
)

// Gateway issues outbound queries to the search provider. It is an
// interface so the orchestrator can be tested against a fake.
type Gateway interface {
	// Search returns ranked organic web results for a query.
	Search(ctx context.Context, query string, count int) ([]SearchResult, error)
	// SearchImage returns visual matches for an already-hosted image URL.
	SearchImage(ctx context.Context, imageURL string) ([]VisualMatch, error)
}

// SerpClient is a Gateway backed by the SerpAPI search service. The API key
// is injected at construction and sent once per call as a request
// parameter; it is never logged.
type SerpClient struct {
	baseURL  string
	apiKey   string
	region   string
	language string
	client   *http.Client
}

// NewSerpClient creates a search client from provider configuration
func NewSerpClient(cfg config.SearchConfig) *SerpClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://serpapi.com"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &SerpClient{
		baseURL:  baseURL,
		apiKey:   cfg.APIKey,
		region:   cfg.Region,
		language: cfg.Language,
		client:   &http.Client{Timeout: timeout},
	}
}

type organicResult struct {
	Title         string `json:"title"`
	Link          string `json:"link"`
	Snippet       string `json:"snippet"`
	DisplayedLink string `json:"displayed_link"`
	Date          string `json:"date"`
}

type webSearchResponse struct {
	OrganicResults []organicResult `json:"organic_results"`
}

type visualMatchResult struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Source    string `json:"source"`
	Thumbnail string `json:"thumbnail"`
}

type imageSearchResponse struct {
	VisualMatches []visualMatchResult `json:"visual_matches"`
}

// Search runs a Google web search and maps organic results into the
// pipeline's result shape.
func (c *SerpClient) Search(ctx context.Context, query string, count int) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("api_key", c.apiKey)
	params.Set("num", strconv.Itoa(count))
	if c.region != "" {
		params.Set("gl", c.region)
	}
	if c.language != "" {
		params.Set("hl", c.language)
	}

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var payload webSearchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	results := make([]SearchResult, 0, len(payload.OrganicResults))
	for _, r := range payload.OrganicResults {
		source := r.DisplayedLink
		if source == "" {
			source = r.Link
		}
		date := r.Date
		if date == "" {
			date = DateUnknown
		}
		results = append(results, SearchResult{
			Title:   r.Title,
			Link:    r.Link,
			Snippet: r.Snippet,
			Source:  source,
			Date:    date,
		})
	}
	return results, nil
}

// SearchImage runs a reverse-image search keyed by a hosted image URL
func (c *SerpClient) SearchImage(ctx context.Context, imageURL string) ([]VisualMatch, error) {
	params := url.Values{}
	params.Set("engine", "google_lens")
	params.Set("url", imageURL)
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("hl", c.language)
	}

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var payload imageSearchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode image search response: %w", err)
	}

	matches := make([]VisualMatch, 0, len(payload.VisualMatches))
	for _, m := range payload.VisualMatches {
		source := m.Source
		if source == "" {
			source = m.Link
		}
		matches = append(matches, VisualMatch{
			Title:     m.Title,
			Link:      m.Link,
			Source:    source,
			Thumbnail: m.Thumbnail,
		})
	}
	return matches, nil
}

// get performs one provider call. Errors never include the request URL,
// which carries the API key.
func (c *SerpClient) get(ctx context.Context, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		// url.Error embeds the full request URL, key included
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return nil, fmt.Errorf("search provider request failed: %w", uerr.Err)
		}
		return nil, fmt.Errorf("search provider request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search provider returned status %d", resp.StatusCode)
	}
	return body, nil
}
