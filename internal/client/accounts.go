package client

import (
	"context"
	"fmt"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/fivetwenty-io/activecampaign/internal/http"
	"github.com/fivetwenty-io/activecampaign/pkg/activecampaign"
)

const (
	accountsKey                = "accounts"
	accountCustomFieldDataKey  = "customerAccountCustomFieldData"
	accountCustomFieldMetaKey  = "customerAccountCustomFieldMeta"
	accountCustomFieldsInclude = "accountCustomFieldData.customerAccountCustomFieldMetum"
)

// AccountsClient implements activecampaign.AccountsClient.
type AccountsClient struct {
	resource
}

// NewAccountsClient creates a new accounts client.
func NewAccountsClient(httpClient *http.Client, logger activecampaign.Logger) *AccountsClient {
	return &AccountsClient{resource: newResource(httpClient, logger)}
}

// Create implements activecampaign.AccountsClient.Create.
func (c *AccountsClient) Create(ctx context.Context, request *activecampaign.AccountCreateRequest) (*activecampaign.Account, error) {
	if request == nil {
		return nil, activecampaign.ErrInvalidRequest
	}

	err := validateRequest(request.Validate)
	if err != nil {
		return nil, err
	}

	body, err := c.post(ctx, apiPath("/accounts"), "account", request)
	if err != nil {
		return nil, fmt.Errorf("creating account: %w", err)
	}

	return decodeEnvelope[activecampaign.Account](body, "account")
}

// Get implements activecampaign.AccountsClient.Get.
func (c *AccountsClient) Get(ctx context.Context, id string) (*activecampaign.Account, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, apiPath("/accounts/%s", id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting account: %w", err)
	}

	return decodeEnvelope[activecampaign.Account](body, "account")
}

// Update implements activecampaign.AccountsClient.Update.
func (c *AccountsClient) Update(ctx context.Context, id string, request *activecampaign.AccountUpdateRequest) (*activecampaign.Account, error) {
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

	body, err := c.put(ctx, apiPath("/accounts/%s", id), "account", request)
	if err != nil {
		return nil, fmt.Errorf("updating account: %w", err)
	}

	return decodeEnvelope[activecampaign.Account](body, "account")
}

// Delete implements activecampaign.AccountsClient.Delete.
func (c *AccountsClient) Delete(ctx context.Context, id string) error {
	err := requireID(id)
	if err != nil {
		return err
	}

	err = c.delete(ctx, apiPath("/accounts/%s", id), nil)
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	return nil
}

// List implements activecampaign.AccountsClient.List.
func (c *AccountsClient) List(ctx context.Context, params *activecampaign.ListParams) (*activecampaign.Page[activecampaign.Account], error) {
	body, err := c.get(ctx, apiPath("/accounts"), params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	return decodePage[activecampaign.Account](body, accountsKey)
}

// ListAll implements activecampaign.AccountsClient.ListAll.
func (c *AccountsClient) ListAll(ctx context.Context, opts *activecampaign.PageOptions) ([]activecampaign.Account, error) {
	result, err := c.aggregate(ctx, apiPath("/accounts"), nil, opts, []string{accountsKey}, nil)
	if err != nil {
		return nil, fmt.Errorf("listing all accounts: %w", err)
	}

	return activecampaign.DecodeCollection[activecampaign.Account](result, accountsKey)
}

// ListAllWithCustomFields implements
// activecampaign.AccountsClient.ListAllWithCustomFields. Field definitions
// are repeated on every page and are deduplicated; values are not.
func (c *AccountsClient) ListAllWithCustomFields(
	ctx context.Context,
	opts *activecampaign.PageOptions,
) (*activecampaign.AccountsWithCustomFields, error) {
	query := url.Values{"include": []string{accountCustomFieldsInclude}}

	result, err := c.aggregate(ctx, apiPath("/accounts"), query, opts,
		[]string{accountsKey, accountCustomFieldDataKey, accountCustomFieldMetaKey},
		[]string{accountCustomFieldMetaKey},
	)
	if err != nil {
		return nil, fmt.Errorf("listing all accounts with custom fields: %w", err)
	}

	accounts, err := activecampaign.DecodeCollection[activecampaign.Account](result, accountsKey)
	if err != nil {
		return nil, err
	}

	data, err := activecampaign.DecodeCollection[activecampaign.AccountCustomFieldDatum](result, accountCustomFieldDataKey)
	if err != nil {
		return nil, err
	}

	meta, err := activecampaign.DecodeCollection[activecampaign.CustomFieldMeta](result, accountCustomFieldMetaKey)
	if err != nil {
		return nil, err
	}

	return &activecampaign.AccountsWithCustomFields{
		Accounts:         accounts,
		CustomFields:     data,
		CustomFieldsMeta: meta,
	}, nil
}

// GetCustomFields implements activecampaign.AccountsClient.GetCustomFields.
func (c *AccountsClient) GetCustomFields(ctx context.Context, id string) ([]activecampaign.AccountCustomFieldDatum, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, apiPath("/accounts/%s/accountCustomFieldData", id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting account custom fields: %w", err)
	}

	return decodeList[activecampaign.AccountCustomFieldDatum](body, accountCustomFieldDataKey)
}

// ListCustomFields implements activecampaign.AccountsClient.ListCustomFields.
func (c *AccountsClient) ListCustomFields(
	ctx context.Context,
	params *activecampaign.ListParams,
) (*activecampaign.Page[activecampaign.CustomFieldMeta], error) {
	body, err := c.get(ctx, apiPath("/accountCustomFieldMeta"), params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing account custom fields: %w", err)
	}

	return decodePage[activecampaign.CustomFieldMeta](body, "accountCustomFieldMeta")
}

// ListCustomFieldValues implements
// activecampaign.AccountsClient.ListCustomFieldValues.
func (c *AccountsClient) ListCustomFieldValues(
	ctx context.Context,
	params *activecampaign.ListParams,
) (*activecampaign.Page[activecampaign.AccountCustomFieldDatum], error) {
	body, err := c.get(ctx, apiPath("/accountCustomFieldData"), params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing account custom field values: %w", err)
	}

	return decodePage[activecampaign.AccountCustomFieldDatum](body, accountCustomFieldDataKey)
}

// BulkCreateCustomFieldValues implements
// activecampaign.AccountsClient.BulkCreateCustomFieldValues. Existing values
// are overwritten.
func (c *AccountsClient) BulkCreateCustomFieldValues(ctx context.Context, values []activecampaign.AccountCustomFieldValue) error {
	err := validateRequest(func() error {
		return validation.Validate(values, validation.Required)
	})
	if err != nil {
		return err
	}

	_, err = c.post(ctx, apiPath("/accountCustomFieldData/bulkCreate"), "account", values)
	if err != nil {
		return fmt.Errorf("bulk creating account custom field values: %w", err)
	}

	return nil
}
