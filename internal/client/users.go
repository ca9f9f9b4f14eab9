package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/activecampaign/internal/http"
	"github.com/fivetwenty-io/activecampaign/pkg/activecampaign"
)

// UsersClient implements activecampaign.UsersClient.
type UsersClient struct {
	resource
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *http.Client, logger activecampaign.Logger) *UsersClient {
	return &UsersClient{resource: newResource(httpClient, logger)}
}

// Create implements activecampaign.UsersClient.Create.
func (c *UsersClient) Create(ctx context.Context, request *activecampaign.UserCreateRequest) (*activecampaign.User, error) {
	if request == nil {
		return nil, activecampaign.ErrInvalidRequest
	}

	err := validateRequest(request.Validate)
	if err != nil {
		return nil, err
	}

	body, err := c.post(ctx, apiPath("/users"), "user", request)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return decodeEnvelope[activecampaign.User](body, "user")
}

// Get implements activecampaign.UsersClient.Get.
func (c *UsersClient) Get(ctx context.Context, id string) (*activecampaign.User, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, apiPath("/users/%s", id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	return decodeEnvelope[activecampaign.User](body, "user")
}

// List implements activecampaign.UsersClient.List.
func (c *UsersClient) List(ctx context.Context, params *activecampaign.ListParams) (*activecampaign.Page[activecampaign.User], error) {
	body, err := c.get(ctx, apiPath("/users"), params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	return decodePage[activecampaign.User](body, "users")
}

// Delete implements activecampaign.UsersClient.Delete.
func (c *UsersClient) Delete(ctx context.Context, id string) error {
	err := requireID(id)
	if err != nil {
		return err
	}

	err = c.delete(ctx, apiPath("/users/%s", id), nil)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	return nil
}
