package notion

import (
	"context"
	"fmt"
	"net/http"
)

// RetrievePage retrieves a page by ID.
func (c *Client) RetrievePage(ctx context.Context, pageID string) (*Page, error) {
	var page Page
	if err := c.do(ctx, http.MethodGet, "/pages/"+NormalizeID(pageID), nil, &page); err != nil {
		return nil, fmt.Errorf("failed to retrieve page: %w", err)
	}
	return &page, nil
}

// RetrieveDatabase retrieves a database, including its full property schema.
func (c *Client) RetrieveDatabase(ctx context.Context, databaseID string) (*Database, error) {
	var db Database
	if err := c.do(ctx, http.MethodGet, "/databases/"+NormalizeID(databaseID), nil, &db); err != nil {
		return nil, fmt.Errorf("failed to retrieve database: %w", err)
	}
	return &db, nil
}

type createPageRequest struct {
	Parent     Parent              `json:"parent"`
	Properties map[string]Property `json:"properties"`
}

// CreatePage creates a page in the given database.
func (c *Client) CreatePage(ctx context.Context, databaseID string, properties map[string]Property) (*Page, error) {
	req := createPageRequest{
		Parent:     Parent{DatabaseID: databaseID},
		Properties: properties,
	}
	var page Page
	if err := c.do(ctx, http.MethodPost, "/pages", req, &page); err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	return &page, nil
}

type updatePageRequest struct {
	Properties map[string]Property `json:"properties"`
}

// UpdatePage updates the given properties of a page. Properties absent from
// the map are left untouched by Notion.
func (c *Client) UpdatePage(ctx context.Context, pageID string, properties map[string]Property) (*Page, error) {
	req := updatePageRequest{Properties: properties}
	var page Page
	if err := c.do(ctx, http.MethodPatch, "/pages/"+NormalizeID(pageID), req, &page); err != nil {
		return nil, fmt.Errorf("failed to update page: %w", err)
	}
	return &page, nil
}

// DatabaseQuery holds filter and sort parameters for a database query.
type DatabaseQuery struct {
	Filter      map[string]any   `json:"filter,omitempty"`
	Sorts       []map[string]any `json:"sorts,omitempty"`
	StartCursor string           `json:"start_cursor,omitempty"`
	PageSize    int              `json:"page_size,omitempty"`
}

// QueryResponse is one page of database query results.
type QueryResponse struct {
	Results    []*Page `json:"results"`
	NextCursor string  `json:"next_cursor"`
	HasMore    bool    `json:"has_more"`
}

// QueryDatabase performs a single database query request.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, query DatabaseQuery) (*QueryResponse, error) {
	var resp QueryResponse
	path := "/databases/" + NormalizeID(databaseID) + "/query"
	if err := c.do(ctx, http.MethodPost, path, query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// QueryDatabaseAll pages through every result of a database query. When a
// request fails mid-stream, the pages collected so far are returned together
// with the error.
func (c *Client) QueryDatabaseAll(ctx context.Context, databaseID string, query DatabaseQuery) ([]*Page, error) {
	var pages []*Page
	query.PageSize = 100
	for {
		resp, err := c.QueryDatabase(ctx, databaseID, query)
		if err != nil {
			return pages, err
		}
		pages = append(pages, resp.Results...)
		if !resp.HasMore || resp.NextCursor == "" {
			return pages, nil
		}
		query.StartCursor = resp.NextCursor
	}
}
