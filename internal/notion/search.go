package notion

import (
	"context"
	"net/http"
)

// SearchRequest represents a search request.
type SearchRequest struct {
	Query       string        `json:"query,omitempty"`
	Sort        *SearchSort   `json:"sort,omitempty"`
	Filter      *SearchFilter `json:"filter,omitempty"`
	StartCursor string        `json:"start_cursor,omitempty"`
	PageSize    int           `json:"page_size,omitempty"`
}

// SearchSort represents sort options for search.
type SearchSort struct {
	Direction string `json:"direction"`
	Timestamp string `json:"timestamp"`
}

// SearchFilter restricts search results to one object type.
type SearchFilter struct {
	Value    string `json:"value"`
	Property string `json:"property"`
}

// PageSearchResponse is one page of page search results.
type PageSearchResponse struct {
	Results    []*Page `json:"results"`
	NextCursor string  `json:"next_cursor"`
	HasMore    bool    `json:"has_more"`
}

// DatabaseSearchResponse is one page of database search results.
type DatabaseSearchResponse struct {
	Results    []*Database `json:"results"`
	NextCursor string      `json:"next_cursor"`
	HasMore    bool        `json:"has_more"`
}

// SearchPages performs a single page-filtered search request.
func (c *Client) SearchPages(ctx context.Context, req SearchRequest) (*PageSearchResponse, error) {
	req.Filter = &SearchFilter{Value: "page", Property: "object"}
	var resp PageSearchResponse
	if err := c.do(ctx, http.MethodPost, "/search", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchDatabases performs a single database-filtered search request.
func (c *Client) SearchDatabases(ctx context.Context, req SearchRequest) (*DatabaseSearchResponse, error) {
	req.Filter = &SearchFilter{Value: "database", Property: "object"}
	var resp DatabaseSearchResponse
	if err := c.do(ctx, http.MethodPost, "/search", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchAllPages pages through the full set of pages visible to the token.
// When a request fails mid-stream, the pages collected so far are returned
// together with the error.
func (c *Client) SearchAllPages(ctx context.Context) ([]*Page, error) {
	var pages []*Page
	var cursor string
	for {
		resp, err := c.SearchPages(ctx, SearchRequest{StartCursor: cursor, PageSize: 100})
		if err != nil {
			return pages, err
		}
		pages = append(pages, resp.Results...)
		if !resp.HasMore || resp.NextCursor == "" {
			return pages, nil
		}
		cursor = resp.NextCursor
	}
}

// SearchAllDatabases pages through the full set of databases visible to the
// token. Partial results are returned alongside a mid-stream error.
func (c *Client) SearchAllDatabases(ctx context.Context) ([]*Database, error) {
	var dbs []*Database
	var cursor string
	for {
		resp, err := c.SearchDatabases(ctx, SearchRequest{StartCursor: cursor, PageSize: 100})
		if err != nil {
			return dbs, err
		}
		dbs = append(dbs, resp.Results...)
		if !resp.HasMore || resp.NextCursor == "" {
			return dbs, nil
		}
		cursor = resp.NextCursor
	}
}
