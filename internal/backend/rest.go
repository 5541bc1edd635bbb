package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"haven-data/internal/domain"
)

// REST implements Client against the hosted store's PostgREST-style HTTP
// API (collection per path segment, filters as `column=eq.value` query
// params). Failures surface with the store's own message; there are no
// automatic retries, callers re-submit manually.
type REST struct {
	httpClient *resty.Client
}

// NewREST builds a REST client. baseURL is the project root; apiKey is
// sent as both apikey and bearer token, which is how the hosted service
// authenticates service-role access.
func NewREST(baseURL, apiKey string) *REST {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/") + "/rest/v1").
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("apikey", apiKey).
		SetHeader("Authorization", "Bearer "+apiKey)

	return &REST{httpClient: client}
}

func (c *REST) Select(ctx context.Context, collection string, filter Filter) ([]domain.Row, error) {
	var out []domain.Row
	resp, err := c.request(ctx, filter).
		SetQueryParam("select", "*").
		SetResult(&out).
		Get("/" + collection)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, restError(resp)
	}
	if out == nil {
		out = []domain.Row{}
	}
	return out, nil
}

func (c *REST) Insert(ctx context.Context, collection string, rows []domain.Row) ([]domain.Row, error) {
	var out []domain.Row
	resp, err := c.request(ctx, nil).
		SetHeader("Prefer", "return=representation").
		SetBody(rows).
		SetResult(&out).
		Post("/" + collection)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, restError(resp)
	}
	return out, nil
}

func (c *REST) Update(ctx context.Context, collection string, filter Filter, fields domain.Row) ([]domain.Row, error) {
	var out []domain.Row
	resp, err := c.request(ctx, filter).
		SetHeader("Prefer", "return=representation").
		SetBody(fields).
		SetResult(&out).
		Patch("/" + collection)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, restError(resp)
	}
	return out, nil
}

func (c *REST) Delete(ctx context.Context, collection string, filter Filter) error {
	resp, err := c.request(ctx, filter).Delete("/" + collection)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return restError(resp)
	}
	return nil
}

func (c *REST) request(ctx context.Context, filter Filter) *resty.Request {
	req := c.httpClient.R().SetContext(ctx)
	for col, v := range filter {
		if v == nil {
			req.SetQueryParam(col, "is.null")
			continue
		}
		req.SetQueryParam(col, fmt.Sprintf("eq.%v", v))
	}
	return req
}

func restError(resp *resty.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Message != "" {
		return fmt.Errorf("store rejected request (%d): %s", resp.StatusCode(), body.Message)
	}
	return fmt.Errorf("store rejected request: %s", resp.Status())
}
