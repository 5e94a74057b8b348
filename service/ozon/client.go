package ozon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"larana.GO/config"
)

// ErrNoCredentials is returned when the seller client id or API key is missing.
var ErrNoCredentials = errors.New("ozon: OZON_CLIENT_ID and OZON_API_KEY are not configured")

// APIError is a non-2xx answer from the seller API.
type APIError struct {
	Status int
	Path   string
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ozon: %s returned %d: %s", e.Path, e.Status, e.Body)
}

// ListItem is one entry of a product list page.
type ListItem struct {
	ProductID int64  `json:"product_id"`
	OfferID   string `json:"offer_id"`
}

// Page is one page of the product list.
type Page struct {
	Items  []ListItem
	LastID string
	Total  int
}

// Client talks to the Ozon seller API.
type Client struct {
	cfg  config.OzonConfig
	http *http.Client
	log  *zap.Logger
}

// NewClient returns ErrNoCredentials when cfg has no credentials.
func NewClient(cfg config.OzonConfig, log *zap.Logger) (*Client, error) {
	if !cfg.Configured() {
		return nil, ErrNoCredentials
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log,
	}, nil
}

type listRequest struct {
	Filter struct {
		Visibility string `json:"visibility"`
	} `json:"filter"`
	LastID string `json:"last_id,omitempty"`
	Limit  int    `json:"limit"`
}

type listResponse struct {
	Result struct {
		Items  []ListItem `json:"items"`
		LastID string     `json:"last_id"`
		Total  int        `json:"total"`
	} `json:"result"`
}

// ListPage requests one page of every product regardless of visibility.
func (c *Client) ListPage(ctx context.Context, lastID string, limit int) (*Page, error) {
	var req listRequest
	req.Filter.Visibility = "ALL"
	req.LastID = lastID
	req.Limit = limit

	var resp listResponse
	if err := c.post(ctx, c.cfg.ListPath, req, &resp); err != nil {
		return nil, err
	}
	return &Page{Items: resp.Result.Items, LastID: resp.Result.LastID, Total: resp.Result.Total}, nil
}

// Details requests extended product info for up to one batch of ids. The items
// are returned undecoded; the seller API has shipped them under "items",
// "result.items" and "result" over its versions.
func (c *Client) Details(ctx context.Context, ids []int64) ([]map[string]interface{}, error) {
	req := map[string]interface{}{"product_id": ids}
	var resp map[string]interface{}
	if err := c.post(ctx, c.cfg.DetailsPath, req, &resp); err != nil {
		return nil, err
	}
	return detailItems(resp), nil
}

func detailItems(resp map[string]interface{}) []map[string]interface{} {
	var raw interface{}
	switch {
	case resp["items"] != nil:
		raw = resp["items"]
	default:
		switch result := resp["result"].(type) {
		case map[string]interface{}:
			raw = result["items"]
		case []interface{}:
			raw = result
		}
	}
	list, _ := raw.([]interface{})
	out := make([]map[string]interface{}, 0, len(list))
	for _, v := range list {
		if m, ok := v.(map[string]interface{}); ok {
			out = append(out, m)
		}
	}
	return out
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("ozon: encode %s: %w", path, err)
	}
	url := strings.TrimRight(c.cfg.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("ozon: build %s: %w", path, err)
	}
	req.Header.Set("Client-Id", c.cfg.ClientID)
	req.Header.Set("Api-Key", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ozon: %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ozon: read %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Path: path, Body: truncate(string(data), 500)}
	}
	c.log.Debug("ozon response", zap.String("path", path), zap.Int("bytes", len(data)))
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("ozon: decode %s: %w", path, err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
