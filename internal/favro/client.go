package favro

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// DefaultBaseURL is the production Favro API endpoint.
	DefaultBaseURL = "https://favro.com/api/v1"

	requestTimeout = 30 * time.Second

	// backendHeader pins paginated requests to one API backend. The first
	// response of a listing returns it and every follow-up page must echo it.
	backendHeader = "X-Favro-Backend-Identifier"
)

// Client is an authenticated Favro API session. If OrganizationID is set it
// is sent as the organizationId header on every request, scoping all reads
// and writes to that organization.
type Client struct {
	BaseURL        string
	Email          string
	Token          string
	OrganizationID string
	HTTPClient     *http.Client
}

// NewClient creates a client for the given credentials. organizationID may be
// empty for calls that do not need an organization scope (listing orgs).
func NewClient(email, token, organizationID string) *Client {
	return &Client{
		BaseURL:        DefaultBaseURL,
		Email:          email,
		Token:          token,
		OrganizationID: organizationID,
		HTTPClient:     &http.Client{Timeout: requestTimeout},
	}
}

// page is the envelope Favro wraps every list response in.
type page struct {
	Page      int             `json:"page"`
	Pages     int             `json:"pages"`
	RequestID string          `json:"requestId"`
	Entities  json.RawMessage `json:"entities"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, backendID string) (*http.Response, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.Email, c.Token)
	if c.OrganizationID != "" {
		req.Header.Set("organizationId", c.OrganizationID)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if backendID != "" {
		req.Header.Set(backendHeader, backendID)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer resp.Body.Close()
	msg := readErrorMessage(resp.Body)
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &AuthError{Status: resp.StatusCode, Message: msg}
	}
	return nil, &APIError{Status: resp.StatusCode, Message: msg}
}

// readErrorMessage extracts a message from an error response body. Favro
// returns either a JSON {"message": ...} object or a plain-text body.
func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return string(bytes.TrimSpace(data))
}

// getJSON performs a GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(out)
}

// listAll follows every page of a list endpoint and returns the combined
// entity set.
func listAll[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	var all []T
	backendID := ""
	requestID := ""

	for pageNum := 0; ; pageNum++ {
		q := url.Values{}
		for key, values := range query {
			q[key] = values
		}
		if pageNum > 0 {
			q.Set("page", strconv.Itoa(pageNum))
			q.Set("requestId", requestID)
		}

		resp, err := c.do(ctx, http.MethodGet, path, q, nil, backendID)
		if err != nil {
			return nil, err
		}

		var pg page
		err = json.NewDecoder(resp.Body).Decode(&pg)
		backendID = resp.Header.Get(backendHeader)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decode %s response: %w", path, err)
		}
		requestID = pg.RequestID

		var entities []T
		if len(pg.Entities) > 0 {
			if err := json.Unmarshal(pg.Entities, &entities); err != nil {
				return nil, fmt.Errorf("decode %s entities: %w", path, err)
			}
		}
		all = append(all, entities...)

		if pg.Page+1 >= pg.Pages {
			return all, nil
		}
	}
}

// Organizations lists every organization the account can access.
func (c *Client) Organizations(ctx context.Context) ([]Organization, error) {
	return listAll[Organization](ctx, c, "/organizations", nil)
}

// Organization fetches a single organization by ID.
func (c *Client) Organization(ctx context.Context, organizationID string) (*Organization, error) {
	var org Organization
	if err := c.getJSON(ctx, "/organizations/"+url.PathEscape(organizationID), nil, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

// WidgetFilter narrows a Widgets listing.
type WidgetFilter struct {
	CollectionID string
	Archived     bool
}

// Widgets lists boards and backlogs in the organization.
func (c *Client) Widgets(ctx context.Context, filter WidgetFilter) ([]Widget, error) {
	query := url.Values{}
	if filter.CollectionID != "" {
		query.Set("collectionId", filter.CollectionID)
	}
	if filter.Archived {
		query.Set("archived", "true")
	}
	return listAll[Widget](ctx, c, "/widgets", query)
}

// Columns lists the columns of one board.
func (c *Client) Columns(ctx context.Context, widgetCommonID string) ([]Column, error) {
	query := url.Values{}
	query.Set("widgetCommonId", widgetCommonID)
	return listAll[Column](ctx, c, "/columns", query)
}

// CardFilter narrows a Cards listing. At least one field must be set; the
// API refuses unfiltered card listings.
type CardFilter struct {
	WidgetCommonID string
	ColumnID       string
	CollectionID   string
}

// Cards lists cards matching the filter.
func (c *Client) Cards(ctx context.Context, filter CardFilter) ([]Card, error) {
	query := url.Values{}
	if filter.WidgetCommonID != "" {
		query.Set("widgetCommonId", filter.WidgetCommonID)
	}
	if filter.ColumnID != "" {
		query.Set("columnId", filter.ColumnID)
	}
	if filter.CollectionID != "" {
		query.Set("collectionId", filter.CollectionID)
	}
	if len(query) == 0 {
		return nil, fmt.Errorf("card listing requires a board, column, or collection filter")
	}
	return listAll[Card](ctx, c, "/cards", query)
}

// Tags lists the organization's tags.
func (c *Client) Tags(ctx context.Context) ([]Tag, error) {
	return listAll[Tag](ctx, c, "/tags", nil)
}

// Users lists the organization's members.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	return listAll[User](ctx, c, "/users", nil)
}

// CreateCardRequest holds the fields for a new card.
type CreateCardRequest struct {
	Name                string `json:"name"`
	WidgetCommonID      string `json:"widgetCommonId,omitempty"`
	ColumnID            string `json:"columnId,omitempty"`
	DetailedDescription string `json:"detailedDescription,omitempty"`
}

// CreateCard creates a card.
func (c *Client) CreateCard(ctx context.Context, req CreateCardRequest) (*Card, error) {
	return c.writeCard(ctx, http.MethodPost, "/cards", nil, req)
}

// UpdateCardRequest holds a partial card update. Nil/empty fields are left
// unchanged by the API.
type UpdateCardRequest struct {
	Name                *string  `json:"name,omitempty"`
	DetailedDescription *string  `json:"detailedDescription,omitempty"`
	WidgetCommonID      string   `json:"widgetCommonId,omitempty"`
	ColumnID            string   `json:"columnId,omitempty"`
	AddAssignmentIDs    []string `json:"addAssignmentIds,omitempty"`
	RemoveAssignmentIDs []string `json:"removeAssignmentIds,omitempty"`
	AddTagIDs           []string `json:"addTagIds,omitempty"`
	RemoveTagIDs        []string `json:"removeTagIds,omitempty"`
}

// UpdateCard applies a partial update to a card.
func (c *Client) UpdateCard(ctx context.Context, cardID string, req UpdateCardRequest) (*Card, error) {
	return c.writeCard(ctx, http.MethodPut, "/cards/"+url.PathEscape(cardID), nil, req)
}

// DeleteCard deletes a card. With everywhere set, the card is removed from
// every board it appears on, not just this placement.
func (c *Client) DeleteCard(ctx context.Context, cardID string, everywhere bool) error {
	query := url.Values{}
	if everywhere {
		query.Set("everywhere", "true")
	}
	resp, err := c.do(ctx, http.MethodDelete, "/cards/"+url.PathEscape(cardID), query, nil, "")
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) writeCard(ctx context.Context, method, path string, query url.Values, body any) (*Card, error) {
	resp, err := c.do(ctx, method, path, query, body, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var card Card
	if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
		return nil, fmt.Errorf("decode card response: %w", err)
	}
	return &card, nil
}

// CreateColumnRequest holds the fields for a new column.
type CreateColumnRequest struct {
	WidgetCommonID string `json:"widgetCommonId"`
	Name           string `json:"name"`
	Position       *int   `json:"position,omitempty"`
}

// CreateColumn creates a column on a board.
func (c *Client) CreateColumn(ctx context.Context, req CreateColumnRequest) (*Column, error) {
	return c.writeColumn(ctx, http.MethodPost, "/columns", req)
}

// UpdateColumnRequest holds a partial column update.
type UpdateColumnRequest struct {
	Name     *string `json:"name,omitempty"`
	Position *int    `json:"position,omitempty"`
}

// UpdateColumn renames or repositions a column.
func (c *Client) UpdateColumn(ctx context.Context, columnID string, req UpdateColumnRequest) (*Column, error) {
	return c.writeColumn(ctx, http.MethodPut, "/columns/"+url.PathEscape(columnID), req)
}

// DeleteColumn deletes a column and every card in it.
func (c *Client) DeleteColumn(ctx context.Context, columnID string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/columns/"+url.PathEscape(columnID), nil, nil, "")
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) writeColumn(ctx context.Context, method, path string, body any) (*Column, error) {
	resp, err := c.do(ctx, method, path, nil, body, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var column Column
	if err := json.NewDecoder(resp.Body).Decode(&column); err != nil {
		return nil, fmt.Errorf("decode column response: %w", err)
	}
	return &column, nil
}
