package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const apiVersion = "2024-07-01"

// Config describes how to reach the hosted search index.
type Config struct {
	Endpoint string
	APIKey   string
	Index    string
	Timeout  time.Duration
}

// Client queries a hosted search index for content snippets.
type Client struct {
	endpoint string
	apiKey   string
	index    string
	http     *http.Client
}

// NewClient validates the configuration and returns a ready-to-use client.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errors.New("search: endpoint required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("search: api key required")
	}
	if strings.TrimSpace(cfg.Index) == "" {
		return nil, errors.New("search: index required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:   cfg.APIKey,
		index:    cfg.Index,
		http: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type queryRequest struct {
	Search string `json:"search"`
	Top    int    `json:"top"`
	Select string `json:"select"`
}

type queryResponse struct {
	Value []struct {
		Content string `json:"content"`
	} `json:"value"`
}

// Search returns the content field of the top matching documents for query.
func (c *Client) Search(ctx context.Context, query string, top int) ([]string, error) {
	if top <= 0 {
		top = 3
	}

	payload, err := json.Marshal(queryRequest{Search: query, Top: top, Select: "content"})
	if err != nil {
		return nil, fmt.Errorf("search: encode query: %w", err)
	}

	endpoint := fmt.Sprintf("%s/indexes/%s/docs/search?api-version=%s",
		c.endpoint, url.PathEscape(c.index), apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("search: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("search: read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("search: %s: %s", resp.Status, strings.TrimSpace(string(data)))
	}

	var out queryResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("search: decode response: %w", err)
	}

	snippets := make([]string, 0, len(out.Value))
	for _, doc := range out.Value {
		if doc.Content != "" {
			snippets = append(snippets, doc.Content)
		}
	}
	return snippets, nil
}
