package spoonacular

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"diet-planner/internal/config"
	"diet-planner/internal/nutrition"
)

var (
	// ErrRequestFailed marks every failure that is not a missing recipe.
	ErrRequestFailed = errors.New("spoonacular request failed")
	// ErrNotFound is returned by FetchByID when the API answers 404.
	ErrNotFound = errors.New("recipe not found")
	// ErrMissingAPIKey is returned when the client was built without a key.
	ErrMissingAPIKey = fmt.Errorf("%w: SPOONACULAR_API_KEY is not set", ErrRequestFailed)
)

// StatusError reports a non-success HTTP status other than 404.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("spoonacular api error: status %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error { return ErrRequestFailed }

// SearchRequest holds the complexSearch filters.
type SearchRequest struct {
	Category         string
	MinCalories      float64
	MaxCalories      float64
	Number           int
	NutrientMinimums map[nutrition.Nutrient]float64
	ExcludeIDs       []int
}

// Client is an interface for the Spoonacular recipe API.
type Client interface {
	Search(ctx context.Context, req SearchRequest) ([]RecipeSummary, error)
	FetchByID(ctx context.Context, id int) (*Recipe, error)
}

// spoonacularClient is the concrete implementation of the Spoonacular API client.
type spoonacularClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a new Spoonacular API client.
func NewClient(cfg *config.Config) Client {
	return &spoonacularClient{
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		baseURL:    strings.TrimRight(cfg.SpoonacularBaseURL, "/"),
		apiKey:     cfg.SpoonacularAPIKey,
	}
}

// Search queries the complexSearch endpoint. An absent result list is not an error.
func (c *spoonacularClient) Search(ctx context.Context, req SearchRequest) ([]RecipeSummary, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	resp, err := c.get(ctx, "/recipes/complexSearch", searchQuery(c.apiKey, req))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var searchResponse SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResponse); err != nil {
		return nil, fmt.Errorf("%w: failed to decode search response: %w", ErrRequestFailed, err)
	}
	if searchResponse.Results == nil {
		return []RecipeSummary{}, nil
	}
	return searchResponse.Results, nil
}

// FetchByID loads a single recipe including its nutrition.
func (c *spoonacularClient) FetchByID(ctx context.Context, id int) (*Recipe, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	q := url.Values{}
	q.Set("apiKey", c.apiKey)
	q.Set("includeNutrition", "true")

	resp, err := c.get(ctx, fmt.Sprintf("/recipes/%d/information", id), q)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var recipe Recipe
	if err := json.NewDecoder(resp.Body).Decode(&recipe); err != nil {
		return nil, fmt.Errorf("%w: failed to decode recipe: %w", ErrRequestFailed, err)
	}
	recipe.normalize()
	return &recipe, nil
}

func (c *spoonacularClient) get(ctx context.Context, path string, q url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %w", ErrRequestFailed, err)
	}
	return resp, nil
}

func searchQuery(apiKey string, req SearchRequest) url.Values {
	q := url.Values{}
	q.Set("apiKey", apiKey)
	q.Set("type", req.Category)
	q.Set("minCalories", formatFloat(req.MinCalories))
	q.Set("maxCalories", formatFloat(req.MaxCalories))
	q.Set("number", strconv.Itoa(req.Number))

	ids := make([]string, 0, len(req.ExcludeIDs))
	for _, id := range req.ExcludeIDs {
		ids = append(ids, strconv.Itoa(id))
	}
	q.Set("excludeIds", strings.Join(ids, ","))

	for n, amount := range req.NutrientMinimums {
		q.Set(n.SearchParam(), formatFloat(amount))
	}
	return q
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
