package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/activecampaign/internal/constants"
	"github.com/fivetwenty-io/activecampaign/internal/http"
	"github.com/fivetwenty-io/activecampaign/pkg/activecampaign"
)

// resource holds what every resource client shares.
type resource struct {
	httpClient *http.Client
	logger     activecampaign.Logger
}

func newResource(httpClient *http.Client, logger activecampaign.Logger) resource {
	if logger == nil {
		logger = activecampaign.NoopLogger{}
	}

	return resource{httpClient: httpClient, logger: logger}
}

// apiPath joins the version prefix, format and escaped ids.
func apiPath(format string, ids ...string) string {
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, url.PathEscape(id))
	}

	return constants.APIVersionPath + fmt.Sprintf(format, args...)
}

func requireID(ids ...string) error {
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return activecampaign.ErrIDRequired
		}
	}

	return nil
}

// validateRequest runs a payload's validation and tags failures with
// ErrInvalidRequest.
func validateRequest(validate func() error) error {
	err := validate()
	if err != nil {
		return fmt.Errorf("%w: %w", activecampaign.ErrInvalidRequest, err)
	}

	return nil
}

// send executes req and returns the body of a 2xx response.
func (r resource) send(ctx context.Context, req *http.Request) ([]byte, error) {
	resp, err := r.httpClient.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	err = http.CheckResponse(resp)
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

func (r resource) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return r.send(ctx, &http.Request{Method: "GET", Path: path, Query: query})
}

func (r resource) post(ctx context.Context, path, envelope string, body interface{}) ([]byte, error) {
	return r.send(ctx, &http.Request{Method: "POST", Path: path, Envelope: envelope, Body: body})
}

func (r resource) put(ctx context.Context, path, envelope string, body interface{}) ([]byte, error) {
	return r.send(ctx, &http.Request{Method: "PUT", Path: path, Envelope: envelope, Body: body})
}

func (r resource) delete(ctx context.Context, path string, query url.Values) error {
	_, err := r.send(ctx, &http.Request{Method: "DELETE", Path: path, Query: query})

	return err
}

// fetcher returns a PageFetcher for a list endpoint.
func (r resource) fetcher(path string, query url.Values) activecampaign.PageFetcher {
	return func(ctx context.Context, limit, offset int) ([]byte, error) {
		pageQuery := url.Values{}
		for key, vals := range query {
			pageQuery[key] = append([]string(nil), vals...)
		}

		pageQuery.Set("limit", strconv.Itoa(limit))
		pageQuery.Set("offset", strconv.Itoa(offset))

		return r.get(ctx, path, pageQuery)
	}
}

// aggregate walks every page of path and merges collections.
func (r resource) aggregate(
	ctx context.Context,
	path string,
	query url.Values,
	opts *activecampaign.PageOptions,
	collections []string,
	dedupe []string,
) (*activecampaign.AggregateResult, error) {
	if opts == nil {
		opts = &activecampaign.PageOptions{}
	}

	return activecampaign.Aggregate(ctx, r.fetcher(path, query), activecampaign.AggregateOptions{
		PageSize:    opts.PageSize,
		Collections: collections,
		Dedupe:      dedupe,
		Debug:       opts.Debug,
		Logger:      r.logger,
	})
}

// decodeEnvelope decodes the object under key.
func decodeEnvelope[T any](body []byte, key string) (*T, error) {
	var envelope map[string]json.RawMessage

	err := json.Unmarshal(body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	raw, ok := envelope[key]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q", activecampaign.ErrUnexpectedResponse, key)
	}

	var result T

	err = json.Unmarshal(raw, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", key, err)
	}

	return &result, nil
}

// decodeList decodes the array under key. A missing key yields an empty
// slice.
func decodeList[T any](body []byte, key string) ([]T, error) {
	page, err := decodePage[T](body, key)
	if err != nil {
		return nil, err
	}

	return page.Items, nil
}

// decodePage decodes the array under key together with meta.
func decodePage[T any](body []byte, key string) (*activecampaign.Page[T], error) {
	var envelope map[string]json.RawMessage

	err := json.Unmarshal(body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	page := &activecampaign.Page[T]{Items: []T{}}

	if raw, ok := envelope[key]; ok && string(raw) != "null" {
		err = json.Unmarshal(raw, &page.Items)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", key, err)
		}
	}

	if raw, ok := envelope["meta"]; ok {
		err = json.Unmarshal(raw, &page.Meta)
		if err != nil {
			return nil, fmt.Errorf("parsing meta: %w", err)
		}
	}

	return page, nil
}

// decodeObject decodes a body that is not enveloped.
func decodeObject[T any](body []byte) (*T, error) {
	var result T

	err := json.Unmarshal(body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	return &result, nil
}
