package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/activecampaign/internal/http"
	"github.com/fivetwenty-io/activecampaign/pkg/activecampaign"
)

// ListsClient implements activecampaign.ListsClient.
type ListsClient struct {
	resource
}

// NewListsClient creates a new lists client.
func NewListsClient(httpClient *http.Client, logger activecampaign.Logger) *ListsClient {
	return &ListsClient{resource: newResource(httpClient, logger)}
}

// Create implements activecampaign.ListsClient.Create.
func (c *ListsClient) Create(ctx context.Context, request *activecampaign.ListCreateRequest) (*activecampaign.List, error) {
	if request == nil {
		return nil, activecampaign.ErrInvalidRequest
	}

	err := validateRequest(request.Validate)
	if err != nil {
		return nil, err
	}

	body, err := c.post(ctx, apiPath("/lists"), "list", request)
	if err != nil {
		return nil, fmt.Errorf("creating list: %w", err)
	}

	return decodeEnvelope[activecampaign.List](body, "list")
}

// Get implements activecampaign.ListsClient.Get.
func (c *ListsClient) Get(ctx context.Context, id string) (*activecampaign.List, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, apiPath("/lists/%s", id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting list: %w", err)
	}

	return decodeEnvelope[activecampaign.List](body, "list")
}

// List implements activecampaign.ListsClient.List.
func (c *ListsClient) List(ctx context.Context, params *activecampaign.ListParams) (*activecampaign.Page[activecampaign.List], error) {
	body, err := c.get(ctx, apiPath("/lists"), params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing lists: %w", err)
	}

	return decodePage[activecampaign.List](body, "lists")
}

// Delete implements activecampaign.ListsClient.Delete.
func (c *ListsClient) Delete(ctx context.Context, id string) error {
	err := requireID(id)
	if err != nil {
		return err
	}

	err = c.delete(ctx, apiPath("/lists/%s", id), nil)
	if err != nil {
		return fmt.Errorf("deleting list: %w", err)
	}

	return nil
}
