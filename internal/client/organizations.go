package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/activecampaign/internal/http"
	"github.com/fivetwenty-io/activecampaign/pkg/activecampaign"
)

const organizationsKey = "organizations"

// OrganizationsClient implements activecampaign.OrganizationsClient.
type OrganizationsClient struct {
	resource
}

// NewOrganizationsClient creates a new organizations client.
func NewOrganizationsClient(httpClient *http.Client, logger activecampaign.Logger) *OrganizationsClient {
	return &OrganizationsClient{resource: newResource(httpClient, logger)}
}

// Create implements activecampaign.OrganizationsClient.Create.
func (c *OrganizationsClient) Create(
	ctx context.Context,
	request *activecampaign.OrganizationRequest,
) (*activecampaign.Organization, error) {
	if request == nil {
		return nil, activecampaign.ErrInvalidRequest
	}

	err := validateRequest(request.Validate)
	if err != nil {
		return nil, err
	}

	body, err := c.post(ctx, apiPath("/organizations"), "organization", request)
	if err != nil {
		return nil, fmt.Errorf("creating organization: %w", err)
	}

	return decodeEnvelope[activecampaign.Organization](body, "organization")
}

// Get implements activecampaign.OrganizationsClient.Get.
func (c *OrganizationsClient) Get(ctx context.Context, id string) (*activecampaign.Organization, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, apiPath("/organizations/%s", id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting organization: %w", err)
	}

	return decodeEnvelope[activecampaign.Organization](body, "organization")
}

// Update implements activecampaign.OrganizationsClient.Update.
func (c *OrganizationsClient) Update(
	ctx context.Context,
	id string,
	request *activecampaign.OrganizationRequest,
) (*activecampaign.Organization, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	if request == nil {
		return nil, activecampaign.ErrInvalidRequest
	}

	err = validateRequest(request.Validate)
	if err != nil {
		return nil, err
	}

	body, err := c.put(ctx, apiPath("/organizations/%s", id), "organization", request)
	if err != nil {
		return nil, fmt.Errorf("updating organization: %w", err)
	}

	return decodeEnvelope[activecampaign.Organization](body, "organization")
}

// Delete implements activecampaign.OrganizationsClient.Delete.
func (c *OrganizationsClient) Delete(ctx context.Context, id string) error {
	err := requireID(id)
	if err != nil {
		return err
	}

	err = c.delete(ctx, apiPath("/organizations/%s", id), nil)
	if err != nil {
		return fmt.Errorf("deleting organization: %w", err)
	}

	return nil
}

// BulkDelete implements activecampaign.OrganizationsClient.BulkDelete.
func (c *OrganizationsClient) BulkDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return activecampaign.ErrIDRequired
	}

	err := requireID(ids...)
	if err != nil {
		return err
	}

	query := url.Values{"ids[]": ids}

	err = c.delete(ctx, apiPath("/organizations/bulk_delete"), query)
	if err != nil {
		return fmt.Errorf("bulk deleting organizations: %w", err)
	}

	return nil
}

// List implements activecampaign.OrganizationsClient.List.
func (c *OrganizationsClient) List(
	ctx context.Context,
	params *activecampaign.ListParams,
) (*activecampaign.Page[activecampaign.Organization], error) {
	body, err := c.get(ctx, apiPath("/organizations"), params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing organizations: %w", err)
	}

	return decodePage[activecampaign.Organization](body, organizationsKey)
}

// ListAll implements activecampaign.OrganizationsClient.ListAll.
func (c *OrganizationsClient) ListAll(ctx context.Context, opts *activecampaign.PageOptions) ([]activecampaign.Organization, error) {
	result, err := c.aggregate(ctx, apiPath("/organizations"), nil, opts, []string{organizationsKey}, nil)
	if err != nil {
		return nil, fmt.Errorf("listing all organizations: %w", err)
	}

	return activecampaign.DecodeCollection[activecampaign.Organization](result, organizationsKey)
}
