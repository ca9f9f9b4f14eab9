package client

import (
	"context"
	"fmt"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/fivetwenty-io/activecampaign/internal/constants"
	"github.com/fivetwenty-io/activecampaign/internal/http"
	"github.com/fivetwenty-io/activecampaign/pkg/activecampaign"
)

const (
	contactsKey     = "contacts"
	contactListsKey = "contactLists"
)

// ContactsClient implements activecampaign.ContactsClient.
type ContactsClient struct {
	resource
}

// NewContactsClient creates a new contacts client.
func NewContactsClient(httpClient *http.Client, logger activecampaign.Logger) *ContactsClient {
	return &ContactsClient{resource: newResource(httpClient, logger)}
}

// Create implements activecampaign.ContactsClient.Create.
func (c *ContactsClient) Create(ctx context.Context, request *activecampaign.ContactRequest) (*activecampaign.Contact, error) {
	if request == nil {
		return nil, activecampaign.ErrInvalidRequest
	}

	err := validateRequest(request.Validate)
	if err != nil {
		return nil, err
	}

	body, err := c.post(ctx, apiPath("/contacts"), "contact", request)
	if err != nil {
		return nil, fmt.Errorf("creating contact: %w", err)
	}

	return decodeEnvelope[activecampaign.Contact](body, "contact")
}

// Sync implements activecampaign.ContactsClient.Sync. The contact is matched
// by email and created when absent.
func (c *ContactsClient) Sync(ctx context.Context, request *activecampaign.ContactRequest) (*activecampaign.Contact, error) {
	if request == nil {
		return nil, activecampaign.ErrInvalidRequest
	}

	err := validateRequest(request.Validate)
	if err != nil {
		return nil, err
	}

	body, err := c.post(ctx, apiPath("/contact/sync"), "contact", request)
	if err != nil {
		return nil, fmt.Errorf("syncing contact: %w", err)
	}

	return decodeEnvelope[activecampaign.Contact](body, "contact")
}

// Get implements activecampaign.ContactsClient.Get.
func (c *ContactsClient) Get(ctx context.Context, id string) (*activecampaign.Contact, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, apiPath("/contacts/%s", id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting contact: %w", err)
	}

	return decodeEnvelope[activecampaign.Contact](body, "contact")
}

// Update implements activecampaign.ContactsClient.Update.
func (c *ContactsClient) Update(ctx context.Context, id string, request *activecampaign.ContactRequest) (*activecampaign.Contact, error) {
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

	body, err := c.put(ctx, apiPath("/contacts/%s", id), "contact", request)
	if err != nil {
		return nil, fmt.Errorf("updating contact: %w", err)
	}

	return decodeEnvelope[activecampaign.Contact](body, "contact")
}

// Delete implements activecampaign.ContactsClient.Delete.
func (c *ContactsClient) Delete(ctx context.Context, id string) error {
	err := requireID(id)
	if err != nil {
		return err
	}

	err = c.delete(ctx, apiPath("/contacts/%s", id), nil)
	if err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}

	return nil
}

// List implements activecampaign.ContactsClient.List.
func (c *ContactsClient) List(ctx context.Context, params *activecampaign.ListParams) (*activecampaign.Page[activecampaign.Contact], error) {
	body, err := c.get(ctx, apiPath("/contacts"), params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}

	return decodePage[activecampaign.Contact](body, contactsKey)
}

// ListAll implements activecampaign.ContactsClient.ListAll.
func (c *ContactsClient) ListAll(ctx context.Context, opts *activecampaign.PageOptions) ([]activecampaign.Contact, error) {
	result, err := c.aggregate(ctx, apiPath("/contacts"), nil, opts, []string{contactsKey}, nil)
	if err != nil {
		return nil, fmt.Errorf("listing all contacts: %w", err)
	}

	return activecampaign.DecodeCollection[activecampaign.Contact](result, contactsKey)
}

// ListAllWithContactLists implements
// activecampaign.ContactsClient.ListAllWithContactLists.
func (c *ContactsClient) ListAllWithContactLists(
	ctx context.Context,
	opts *activecampaign.PageOptions,
) (*activecampaign.ContactsWithLists, error) {
	query := url.Values{"include": []string{contactListsKey}}

	result, err := c.aggregate(ctx, apiPath("/contacts"), query, opts, []string{contactsKey, contactListsKey}, nil)
	if err != nil {
		return nil, fmt.Errorf("listing all contacts with lists: %w", err)
	}

	contacts, err := activecampaign.DecodeCollection[activecampaign.Contact](result, contactsKey)
	if err != nil {
		return nil, err
	}

	lists, err := activecampaign.DecodeCollection[activecampaign.ContactList](result, contactListsKey)
	if err != nil {
		return nil, err
	}

	return &activecampaign.ContactsWithLists{Contacts: contacts, ContactLists: lists}, nil
}

// Subscribe implements activecampaign.ContactsClient.Subscribe.
func (c *ContactsClient) Subscribe(ctx context.Context, contactID, listID string) (*activecampaign.ContactList, error) {
	return c.UpdateListStatus(ctx, &activecampaign.ContactListRequest{
		Contact: contactID,
		List:    listID,
		Status:  constants.ListStatusActive,
	})
}

// UpdateListStatus implements activecampaign.ContactsClient.UpdateListStatus.
func (c *ContactsClient) UpdateListStatus(ctx context.Context, request *activecampaign.ContactListRequest) (*activecampaign.ContactList, error) {
	if request == nil {
		return nil, activecampaign.ErrInvalidRequest
	}

	err := validateRequest(request.Validate)
	if err != nil {
		return nil, err
	}

	body, err := c.post(ctx, apiPath("/contactLists"), "contactList", request)
	if err != nil {
		return nil, fmt.Errorf("updating list status: %w", err)
	}

	return decodeEnvelope[activecampaign.ContactList](body, "contactList")
}

// RemoveSubscription implements activecampaign.ContactsClient.RemoveSubscription.
func (c *ContactsClient) RemoveSubscription(ctx context.Context, contactListID string) error {
	err := requireID(contactListID)
	if err != nil {
		return err
	}

	err = c.delete(ctx, apiPath("/contactLists/%s", contactListID), nil)
	if err != nil {
		return fmt.Errorf("removing subscription: %w", err)
	}

	return nil
}

// ListAutomations implements activecampaign.ContactsClient.ListAutomations.
func (c *ContactsClient) ListAutomations(ctx context.Context, contactID string) ([]activecampaign.ContactAutomation, error) {
	err := requireID(contactID)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, apiPath("/contacts/%s/contactAutomations", contactID), nil)
	if err != nil {
		return nil, fmt.Errorf("listing contact automations: %w", err)
	}

	return decodeList[activecampaign.ContactAutomation](body, "contactAutomations")
}

// RemoveAutomation implements activecampaign.ContactsClient.RemoveAutomation.
func (c *ContactsClient) RemoveAutomation(ctx context.Context, contactAutomationID string) error {
	err := requireID(contactAutomationID)
	if err != nil {
		return err
	}

	err = c.delete(ctx, apiPath("/contactAutomation/%s", contactAutomationID), nil)
	if err != nil {
		return fmt.Errorf("removing contact automation: %w", err)
	}

	return nil
}

// Tag implements activecampaign.ContactsClient.Tag.
func (c *ContactsClient) Tag(ctx context.Context, contactID, tagID string) (*activecampaign.ContactTag, error) {
	request := &activecampaign.ContactTagRequest{Contact: contactID, Tag: tagID}

	err := validateRequest(request.Validate)
	if err != nil {
		return nil, err
	}

	body, err := c.post(ctx, apiPath("/contactTags"), "contactTag", request)
	if err != nil {
		return nil, fmt.Errorf("tagging contact: %w", err)
	}

	return decodeEnvelope[activecampaign.ContactTag](body, "contactTag")
}

// ListTags implements activecampaign.ContactsClient.ListTags.
func (c *ContactsClient) ListTags(ctx context.Context, contactID string) ([]activecampaign.ContactTag, error) {
	err := requireID(contactID)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, apiPath("/contacts/%s/contactTags", contactID), nil)
	if err != nil {
		return nil, fmt.Errorf("listing contact tags: %w", err)
	}

	return decodeList[activecampaign.ContactTag](body, "contactTags")
}

// Untag implements activecampaign.ContactsClient.Untag.
func (c *ContactsClient) Untag(ctx context.Context, contactTagID string) error {
	err := requireID(contactTagID)
	if err != nil {
		return err
	}

	err = c.delete(ctx, apiPath("/contactTags/%s", contactTagID), nil)
	if err != nil {
		return fmt.Errorf("untagging contact: %w", err)
	}

	return nil
}

// BulkImport implements activecampaign.ContactsClient.BulkImport. The import
// is queued server side; the result only acknowledges it.
func (c *ContactsClient) BulkImport(ctx context.Context, contacts []activecampaign.BulkImportContact) (*activecampaign.BulkImportResult, error) {
	err := validateRequest(func() error {
		return validation.Validate(contacts, validation.Required)
	})
	if err != nil {
		return nil, err
	}

	body, err := c.post(ctx, apiPath("/import/bulk_import"), "contacts", contacts)
	if err != nil {
		return nil, fmt.Errorf("bulk importing contacts: %w", err)
	}

	return decodeObject[activecampaign.BulkImportResult](body)
}

// ListCustomFields implements activecampaign.ContactsClient.ListCustomFields.
func (c *ContactsClient) ListCustomFields(ctx context.Context, params *activecampaign.ListParams) (*activecampaign.Page[activecampaign.Field], error) {
	body, err := c.get(ctx, apiPath("/fields"), params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing contact custom fields: %w", err)
	}

	return decodePage[activecampaign.Field](body, "fields")
}

// CreateCustomFieldValue implements
// activecampaign.ContactsClient.CreateCustomFieldValue.
func (c *ContactsClient) CreateCustomFieldValue(
	ctx context.Context,
	request *activecampaign.FieldValueRequest,
) (*activecampaign.FieldValue, error) {
	if request == nil {
		return nil, activecampaign.ErrInvalidRequest
	}

	err := validateRequest(request.Validate)
	if err != nil {
		return nil, err
	}

	body, err := c.post(ctx, apiPath("/fieldValues"), "fieldValue", request)
	if err != nil {
		return nil, fmt.Errorf("creating custom field value: %w", err)
	}

	return decodeEnvelope[activecampaign.FieldValue](body, "fieldValue")
}

// GetCustomFieldValue implements
// activecampaign.ContactsClient.GetCustomFieldValue.
func (c *ContactsClient) GetCustomFieldValue(ctx context.Context, id string) (*activecampaign.FieldValue, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, apiPath("/fieldValues/%s", id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting custom field value: %w", err)
	}

	return decodeEnvelope[activecampaign.FieldValue](body, "fieldValue")
}

// UpdateCustomFieldValue implements
// activecampaign.ContactsClient.UpdateCustomFieldValue.
func (c *ContactsClient) UpdateCustomFieldValue(
	ctx context.Context,
	id string,
	request *activecampaign.FieldValueRequest,
) (*activecampaign.FieldValue, error) {
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

	body, err := c.put(ctx, apiPath("/fieldValues/%s", id), "fieldValue", request)
	if err != nil {
		return nil, fmt.Errorf("updating custom field value: %w", err)
	}

	return decodeEnvelope[activecampaign.FieldValue](body, "fieldValue")
}

// DeleteCustomFieldValue implements
// activecampaign.ContactsClient.DeleteCustomFieldValue.
func (c *ContactsClient) DeleteCustomFieldValue(ctx context.Context, id string) error {
	err := requireID(id)
	if err != nil {
		return err
	}

	err = c.delete(ctx, apiPath("/fieldValues/%s", id), nil)
	if err != nil {
		return fmt.Errorf("deleting custom field value: %w", err)
	}

	return nil
}

// AddToAccount implements activecampaign.ContactsClient.AddToAccount.
func (c *ContactsClient) AddToAccount(
	ctx context.Context,
	request *activecampaign.AccountContactRequest,
) (*activecampaign.AccountContact, error) {
	if request == nil {
		return nil, activecampaign.ErrInvalidRequest
	}

	err := validateRequest(request.Validate)
	if err != nil {
		return nil, err
	}

	body, err := c.post(ctx, apiPath("/accountContacts"), "accountContact", request)
	if err != nil {
		return nil, fmt.Errorf("adding contact to account: %w", err)
	}

	return decodeEnvelope[activecampaign.AccountContact](body, "accountContact")
}

// UpdateAccount implements activecampaign.ContactsClient.UpdateAccount.
// associationID is the id of the existing contact/account association, not
// the contact id; when empty a new association is created instead.
func (c *ContactsClient) UpdateAccount(
	ctx context.Context,
	associationID string,
	request *activecampaign.AccountContactRequest,
) (*activecampaign.AccountContact, error) {
	if associationID == "" {
		return c.AddToAccount(ctx, request)
	}

	if request == nil {
		return nil, activecampaign.ErrInvalidRequest
	}

	err := validateRequest(func() error {
		return validation.ValidateStruct(request,
			validation.Field(&request.Account, validation.Required),
		)
	})
	if err != nil {
		return nil, err
	}

	update := &activecampaign.AccountContactRequest{Account: request.Account, JobTitle: request.JobTitle}

	body, err := c.put(ctx, apiPath("/accountContacts/%s", associationID), "accountContact", update)
	if err != nil {
		return nil, fmt.Errorf("updating contact account: %w", err)
	}

	return decodeEnvelope[activecampaign.AccountContact](body, "accountContact")
}

// ListAccountAssociations implements
// activecampaign.ContactsClient.ListAccountAssociations. Filter with
// params.WithFilter("filters[contact]", id).
func (c *ContactsClient) ListAccountAssociations(
	ctx context.Context,
	params *activecampaign.ListParams,
) (*activecampaign.Page[activecampaign.AccountContact], error) {
	body, err := c.get(ctx, apiPath("/accountContacts"), params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing account associations: %w", err)
	}

	return decodePage[activecampaign.AccountContact](body, "accountContacts")
}

// CreateWithAccount implements activecampaign.ContactsClient.CreateWithAccount.
// If the association fails the contact has already been created and is
// returned alongside the error.
func (c *ContactsClient) CreateWithAccount(
	ctx context.Context,
	request *activecampaign.ContactRequest,
	accountID, jobTitle string,
) (*activecampaign.Contact, *activecampaign.AccountContact, error) {
	err := requireID(accountID)
	if err != nil {
		return nil, nil, err
	}

	contact, err := c.Create(ctx, request)
	if err != nil {
		return nil, nil, err
	}

	association, err := c.AddToAccount(ctx, &activecampaign.AccountContactRequest{
		Contact:  contact.ID,
		Account:  accountID,
		JobTitle: jobTitle,
	})
	if err != nil {
		return contact, nil, err
	}

	return contact, association, nil
}
