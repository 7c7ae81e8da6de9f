package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Form is a request body that knows how to write itself as multipart data
type Form interface {
	Encode(w io.Writer) (contentType string, err error)
}

// Client represents a Catalog API client
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new catalog client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// ListTypes fetches every attribute type
func (c *Client) ListTypes(ctx context.Context) ([]AttributeType, error) {
	const op = "list types"
	data, err := c.doJSON(ctx, op, http.MethodGet, "/admin/types", nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		Types []AttributeType `json:"types"`
	}
	if err := decodeData(op, data, &body); err != nil {
		return nil, err
	}
	return body.Types, nil
}

// ListValues fetches the values of one attribute type
func (c *Client) ListValues(ctx context.Context, typeID string) ([]TypeName, error) {
	const op = "list values"
	data, err := c.doJSON(ctx, op, http.MethodGet, "/admin/type-names/"+url.PathEscape(typeID), nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		TypeName struct {
			Names []TypeName `json:"names"`
		} `json:"typeName"`
	}
	if err := decodeData(op, data, &body); err != nil {
		return nil, err
	}
	return body.TypeName.Names, nil
}

// CreateValue creates new values under an attribute type and returns the
// type's values as stored by the catalog, when the response carries them.
func (c *Client) CreateValue(ctx context.Context, typeID string, names []NewTypeName) ([]TypeName, error) {
	const op = "create value"
	req := CreateTypeNamesRequest{TypeID: typeID, Names: names}
	data, err := c.doJSON(ctx, op, http.MethodPost, "/admin/type-names", req)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	// The data is either the updated type document or a bare list of names.
	var doc struct {
		Names []TypeName `json:"names"`
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc.Names, nil
	}
	var list []TypeName
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	return nil, nil
}

// ListBrands fetches the brand dropdown options
func (c *Client) ListBrands(ctx context.Context) ([]Option, error) {
	const op = "list brands"
	data, err := c.doJSON(ctx, op, http.MethodGet, "/admin/brands", nil)
	if err != nil {
		return nil, err
	}

	var brands []Option
	if err := decodeData(op, data, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

// ListSubcategories fetches the category dropdown options
func (c *Client) ListSubcategories(ctx context.Context) ([]Option, error) {
	const op = "list subcategories"
	data, err := c.doJSON(ctx, op, http.MethodGet, "/admin/subcategory", nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		Subcategories []Option `json:"subcategories"`
	}
	if err := decodeData(op, data, &body); err != nil {
		return nil, err
	}
	return body.Subcategories, nil
}

// GetProduct fetches a persisted product for the edit flow
func (c *Client) GetProduct(ctx context.Context, slug string) (*Product, error) {
	const op = "get product"
	data, err := c.doJSON(ctx, op, http.MethodGet, "/admin/product/"+url.PathEscape(slug), nil)
	if err != nil {
		return nil, err
	}

	var product Product
	if err := decodeData(op, data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct submits a new product
func (c *Client) CreateProduct(ctx context.Context, form Form) (*Ack, error) {
	return c.doForm(ctx, "create product", http.MethodPost, "/admin/product/create", form)
}

// UpdateProduct submits changes to the product addressed by slug
func (c *Client) UpdateProduct(ctx context.Context, slug string, form Form) (*Ack, error) {
	return c.doForm(ctx, "update product", http.MethodPatch, "/admin/product/update/"+url.PathEscape(slug), form)
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, payload interface{}) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		reqBody, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(reqBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	env, err := c.do(op, req)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) doForm(ctx context.Context, op, method, path string, form Form) (*Ack, error) {
	var buf bytes.Buffer
	contentType, err := form.Encode(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to encode form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	env, err := c.do(op, req)
	if err != nil {
		return nil, err
	}
	return &Ack{Success: env.Success, Message: env.Message}, nil
}

// do sends the request and turns any non-2xx response into a *RemoteError
func (c *Client) do(op string, req *http.Request) (*envelope, error) {
	req.Header.Set("Accept", "application/json")
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RemoteError{Op: op, Message: err.Error(), Err: ErrNetwork}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteError{Op: op, Status: resp.StatusCode, Message: err.Error(), Err: ErrNetwork}
	}

	var env envelope
	decodeErr := json.Unmarshal(body, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		if decodeErr != nil || msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &RemoteError{Op: op, Status: resp.StatusCode, Message: msg, Err: sentinelForStatus(resp.StatusCode)}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return &envelope{Success: true}, nil
	}
	if decodeErr != nil {
		return nil, &RemoteError{Op: op, Status: resp.StatusCode, Message: decodeErr.Error(), Err: ErrMalformedResponse}
	}
	return &env, nil
}

func decodeData(op string, data json.RawMessage, v interface{}) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &RemoteError{Op: op, Message: err.Error(), Err: ErrMalformedResponse}
	}
	return nil
}
