package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/activecampaign/internal/http"
	"github.com/fivetwenty-io/activecampaign/pkg/activecampaign"
)

const dealCustomFieldDatumKey = "dealCustomFieldDatum"

// DealsClient implements activecampaign.DealsClient.
type DealsClient struct {
	resource
}

// NewDealsClient creates a new deals client.
func NewDealsClient(httpClient *http.Client, logger activecampaign.Logger) *DealsClient {
	return &DealsClient{resource: newResource(httpClient, logger)}
}

// Create implements activecampaign.DealsClient.Create.
func (c *DealsClient) Create(ctx context.Context, request *activecampaign.DealRequest) (*activecampaign.Deal, error) {
	if request == nil {
		return nil, activecampaign.ErrInvalidRequest
	}

	err := validateRequest(request.Validate)
	if err != nil {
		return nil, err
	}

	body, err := c.post(ctx, apiPath("/deals"), "deal", request)
	if err != nil {
		return nil, fmt.Errorf("creating deal: %w", err)
	}

	return decodeEnvelope[activecampaign.Deal](body, "deal")
}

// Get implements activecampaign.DealsClient.Get.
func (c *DealsClient) Get(ctx context.Context, id string) (*activecampaign.Deal, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, apiPath("/deals/%s", id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting deal: %w", err)
	}

	return decodeEnvelope[activecampaign.Deal](body, "deal")
}

// Update implements activecampaign.DealsClient.Update.
func (c *DealsClient) Update(ctx context.Context, id string, request *activecampaign.DealRequest) (*activecampaign.Deal, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	if request == nil {
		return nil, activecampaign.ErrInvalidRequest
	}

	err = validateRequest(request.ValidateUpdate)
	if err != nil {
		return nil, err
	}

	body, err := c.put(ctx, apiPath("/deals/%s", id), "deal", request)
	if err != nil {
		return nil, fmt.Errorf("updating deal: %w", err)
	}

	return decodeEnvelope[activecampaign.Deal](body, "deal")
}

// Delete implements activecampaign.DealsClient.Delete.
func (c *DealsClient) Delete(ctx context.Context, id string) error {
	err := requireID(id)
	if err != nil {
		return err
	}

	err = c.delete(ctx, apiPath("/deals/%s", id), nil)
	if err != nil {
		return fmt.Errorf("deleting deal: %w", err)
	}

	return nil
}

// MoveToStage implements activecampaign.DealsClient.MoveToStage. Every deal
// in stageID is moved to request.Stage.
func (c *DealsClient) MoveToStage(ctx context.Context, stageID string, request *activecampaign.DealStageMove) error {
	err := requireID(stageID)
	if err != nil {
		return err
	}

	if request == nil {
		return activecampaign.ErrInvalidRequest
	}

	err = validateRequest(request.Validate)
	if err != nil {
		return err
	}

	_, err = c.put(ctx, apiPath("/dealStages/%s/deals", stageID), "deal", request)
	if err != nil {
		return fmt.Errorf("moving deals to stage: %w", err)
	}

	return nil
}

// CreateCustomFieldValue implements activecampaign.DealsClient.CreateCustomFieldValue.
func (c *DealsClient) CreateCustomFieldValue(
	ctx context.Context,
	request *activecampaign.DealCustomFieldValueRequest,
) (*activecampaign.DealCustomFieldDatum, error) {
	if request == nil {
		return nil, activecampaign.ErrInvalidRequest
	}

	err := validateRequest(request.Validate)
	if err != nil {
		return nil, err
	}

	body, err := c.post(ctx, apiPath("/dealCustomFieldData"), dealCustomFieldDatumKey, request)
	if err != nil {
		return nil, fmt.Errorf("creating deal custom field value: %w", err)
	}

	return decodeEnvelope[activecampaign.DealCustomFieldDatum](body, dealCustomFieldDatumKey)
}

// GetCustomFieldValue implements activecampaign.DealsClient.GetCustomFieldValue.
func (c *DealsClient) GetCustomFieldValue(ctx context.Context, id string) (*activecampaign.DealCustomFieldDatum, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, apiPath("/dealCustomFieldData/%s", id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting deal custom field value: %w", err)
	}

	return decodeEnvelope[activecampaign.DealCustomFieldDatum](body, dealCustomFieldDatumKey)
}

// UpdateCustomFieldValue implements activecampaign.DealsClient.UpdateCustomFieldValue.
func (c *DealsClient) UpdateCustomFieldValue(
	ctx context.Context,
	id string,
	value interface{},
) (*activecampaign.DealCustomFieldDatum, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	update := map[string]interface{}{"fieldValue": value}

	body, err := c.put(ctx, apiPath("/dealCustomFieldData/%s", id), dealCustomFieldDatumKey, update)
	if err != nil {
		return nil, fmt.Errorf("updating deal custom field value: %w", err)
	}

	return decodeEnvelope[activecampaign.DealCustomFieldDatum](body, dealCustomFieldDatumKey)
}

// DeleteCustomFieldValue implements activecampaign.DealsClient.DeleteCustomFieldValue.
func (c *DealsClient) DeleteCustomFieldValue(ctx context.Context, id string) error {
	err := requireID(id)
	if err != nil {
		return err
	}

	err = c.delete(ctx, apiPath("/dealCustomFieldData/%s", id), nil)
	if err != nil {
		return fmt.Errorf("deleting deal custom field value: %w", err)
	}

	return nil
}

// ListCustomFields implements activecampaign.DealsClient.ListCustomFields.
func (c *DealsClient) ListCustomFields(
	ctx context.Context,
	params *activecampaign.ListParams,
) (*activecampaign.Page[activecampaign.CustomFieldMeta], error) {
	body, err := c.get(ctx, apiPath("/dealCustomFieldMeta"), params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing deal custom fields: %w", err)
	}

	return decodePage[activecampaign.CustomFieldMeta](body, "dealCustomFieldMeta")
}

// ListCustomFieldValues implements activecampaign.DealsClient.ListCustomFieldValues.
func (c *DealsClient) ListCustomFieldValues(
	ctx context.Context,
	params *activecampaign.ListParams,
) (*activecampaign.Page[activecampaign.DealCustomFieldDatum], error) {
	body, err := c.get(ctx, apiPath("/dealCustomFieldData"), params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing deal custom field values: %w", err)
	}

	return decodePage[activecampaign.DealCustomFieldDatum](body, "dealCustomFieldData")
}

// ListPipelines implements activecampaign.DealsClient.ListPipelines.
func (c *DealsClient) ListPipelines(ctx context.Context, params *activecampaign.ListParams) (*activecampaign.Page[activecampaign.Pipeline], error) {
	body, err := c.get(ctx, apiPath("/dealGroups"), params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing pipelines: %w", err)
	}

	return decodePage[activecampaign.Pipeline](body, "dealGroups")
}

// ListStages implements activecampaign.DealsClient.ListStages.
func (c *DealsClient) ListStages(ctx context.Context, params *activecampaign.ListParams) (*activecampaign.Page[activecampaign.Stage], error) {
	body, err := c.get(ctx, apiPath("/dealStages"), params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing stages: %w", err)
	}

	return decodePage[activecampaign.Stage](body, "dealStages")
}
