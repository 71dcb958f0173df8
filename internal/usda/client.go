package usda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	applog "nutrisync/internal/log"
)

const (
	defaultBaseURL  = "https://api.nal.usda.gov/fdc/v1"
	defaultTimeout  = 15 * time.Second
	defaultPageSize = 15
	maxPageSize     = 200
)

// DefaultDataTypes is used when a search does not name any data type.
var DefaultDataTypes = []string{"Foundation"}

// ErrUpstream reports a non-successful response from FoodData Central.
var ErrUpstream = errors.New("usda: upstream request failed")

// Config describes how the FoodData Central client should be initialised.
type Config struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	PageSize   int
	HTTPClient *http.Client
}

// Client is a thin wrapper around the FoodData Central REST API.
type Client struct {
	apiKey     string
	baseURL    string
	pageSize   int
	httpClient *http.Client
}

// SearchOptions narrow a food search.
type SearchOptions struct {
	DataTypes  []string
	PageSize   int
	PageNumber int
}

// NewClient builds a Client that can query FoodData Central.
func NewClient(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("usda: api key must not be empty")
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: timeout,
		}
	}

	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		pageSize:   pageSize,
		httpClient: httpClient,
	}, nil
}

// Search looks up foods matching query.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) (SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchResponse{}, errors.New("usda: search query must not be empty")
	}

	dataTypes := cleanDataTypes(opts.DataTypes)
	if len(dataTypes) == 0 {
		dataTypes = DefaultDataTypes
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = c.pageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("dataType", strings.Join(dataTypes, ","))
	params.Set("pageSize", strconv.Itoa(pageSize))
	if opts.PageNumber > 0 {
		params.Set("pageNumber", strconv.Itoa(opts.PageNumber))
	}

	var out SearchResponse
	if err := c.get(ctx, "/foods/search", params, &out); err != nil {
		return SearchResponse{}, err
	}
	applog.Debug(ctx, "usda search completed", "query", query, "hits", out.TotalHits)
	return out, nil
}

// FoodDetails fetches the full record of a single food.
func (c *Client) FoodDetails(ctx context.Context, fdcID int) (FoodDetails, error) {
	if fdcID <= 0 {
		return FoodDetails{}, fmt.Errorf("usda: invalid fdc id %d", fdcID)
	}

	var out FoodDetails
	if err := c.get(ctx, "/food/"+strconv.Itoa(fdcID), url.Values{}, &out); err != nil {
		return FoodDetails{}, err
	}
	applog.Debug(ctx, "usda food details loaded", "fdcId", fdcID, "nutrients", len(out.FoodNutrients))
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dst any) error {
	params.Set("api_key", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("usda: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("usda: perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		applog.Error(ctx, "usda request failed", "path", path, "status", resp.StatusCode)
		return fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("usda: decode response: %w", err)
	}
	return nil
}

func cleanDataTypes(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
