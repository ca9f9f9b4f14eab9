package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/activecampaign/internal/constants"
	"github.com/fivetwenty-io/activecampaign/internal/http"
	"github.com/fivetwenty-io/activecampaign/pkg/activecampaign"
)

// TagsClient implements activecampaign.TagsClient.
type TagsClient struct {
	resource
}

// NewTagsClient creates a new tags client.
func NewTagsClient(httpClient *http.Client, logger activecampaign.Logger) *TagsClient {
	return &TagsClient{resource: newResource(httpClient, logger)}
}

// Create implements activecampaign.TagsClient.Create.
func (c *TagsClient) Create(ctx context.Context, request *activecampaign.TagCreateRequest) (*activecampaign.Tag, error) {
	if request == nil {
		return nil, activecampaign.ErrInvalidRequest
	}

	tag := *request
	if tag.TagType == "" {
		tag.TagType = constants.TagTypeContact
	}

	err := validateRequest(tag.Validate)
	if err != nil {
		return nil, err
	}

	body, err := c.post(ctx, apiPath("/tags"), "tag", &tag)
	if err != nil {
		return nil, fmt.Errorf("creating tag: %w", err)
	}

	return decodeEnvelope[activecampaign.Tag](body, "tag")
}

// List implements activecampaign.TagsClient.List. Search by name with
// params.WithFilter("search", name).
func (c *TagsClient) List(ctx context.Context, params *activecampaign.ListParams) (*activecampaign.Page[activecampaign.Tag], error) {
	body, err := c.get(ctx, apiPath("/tags"), params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	return decodePage[activecampaign.Tag](body, "tags")
}
