package activecampaign

import (
	"context"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Client is the entry point to every resource group of the API.
type Client interface {
	Accounts() AccountsClient
	Contacts() ContactsClient
	Deals() DealsClient
	Lists() ListsClient
	Organizations() OrganizationsClient
	Tags() TagsClient
	Users() UsersClient
	EventTracking() EventTrackingClient
	SiteTracking() SiteTrackingClient
}

// AccountsClient manages accounts and their custom fields.
type AccountsClient interface {
	Create(ctx context.Context, request *AccountCreateRequest) (*Account, error)
	Get(ctx context.Context, id string) (*Account, error)
	Update(ctx context.Context, id string, request *AccountUpdateRequest) (*Account, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params *ListParams) (*Page[Account], error)
	ListAll(ctx context.Context, opts *PageOptions) ([]Account, error)
	ListAllWithCustomFields(ctx context.Context, opts *PageOptions) (*AccountsWithCustomFields, error)
	GetCustomFields(ctx context.Context, id string) ([]AccountCustomFieldDatum, error)
	ListCustomFields(ctx context.Context, params *ListParams) (*Page[CustomFieldMeta], error)
	ListCustomFieldValues(ctx context.Context, params *ListParams) (*Page[AccountCustomFieldDatum], error)
	BulkCreateCustomFieldValues(ctx context.Context, values []AccountCustomFieldValue) error
}

// ContactsClient manages contacts and their associations.
type ContactsClient interface {
	Create(ctx context.Context, request *ContactRequest) (*Contact, error)
	Sync(ctx context.Context, request *ContactRequest) (*Contact, error)
	Get(ctx context.Context, id string) (*Contact, error)
	Update(ctx context.Context, id string, request *ContactRequest) (*Contact, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params *ListParams) (*Page[Contact], error)
	ListAll(ctx context.Context, opts *PageOptions) ([]Contact, error)
	ListAllWithContactLists(ctx context.Context, opts *PageOptions) (*ContactsWithLists, error)

	Subscribe(ctx context.Context, contactID, listID string) (*ContactList, error)
	UpdateListStatus(ctx context.Context, request *ContactListRequest) (*ContactList, error)
	RemoveSubscription(ctx context.Context, contactListID string) error

	ListAutomations(ctx context.Context, contactID string) ([]ContactAutomation, error)
	RemoveAutomation(ctx context.Context, contactAutomationID string) error

	Tag(ctx context.Context, contactID, tagID string) (*ContactTag, error)
	ListTags(ctx context.Context, contactID string) ([]ContactTag, error)
	Untag(ctx context.Context, contactTagID string) error

	BulkImport(ctx context.Context, contacts []BulkImportContact) (*BulkImportResult, error)

	ListCustomFields(ctx context.Context, params *ListParams) (*Page[Field], error)
	CreateCustomFieldValue(ctx context.Context, request *FieldValueRequest) (*FieldValue, error)
	GetCustomFieldValue(ctx context.Context, id string) (*FieldValue, error)
	UpdateCustomFieldValue(ctx context.Context, id string, request *FieldValueRequest) (*FieldValue, error)
	DeleteCustomFieldValue(ctx context.Context, id string) error

	AddToAccount(ctx context.Context, request *AccountContactRequest) (*AccountContact, error)
	UpdateAccount(ctx context.Context, associationID string, request *AccountContactRequest) (*AccountContact, error)
	ListAccountAssociations(ctx context.Context, params *ListParams) (*Page[AccountContact], error)
	CreateWithAccount(ctx context.Context, request *ContactRequest, accountID, jobTitle string) (*Contact, *AccountContact, error)
}

// DealsClient manages deals, pipelines and stages.
type DealsClient interface {
	Create(ctx context.Context, request *DealRequest) (*Deal, error)
	Get(ctx context.Context, id string) (*Deal, error)
	Update(ctx context.Context, id string, request *DealRequest) (*Deal, error)
	Delete(ctx context.Context, id string) error
	MoveToStage(ctx context.Context, stageID string, request *DealStageMove) error

	CreateCustomFieldValue(ctx context.Context, request *DealCustomFieldValueRequest) (*DealCustomFieldDatum, error)
	GetCustomFieldValue(ctx context.Context, id string) (*DealCustomFieldDatum, error)
	UpdateCustomFieldValue(ctx context.Context, id string, value interface{}) (*DealCustomFieldDatum, error)
	DeleteCustomFieldValue(ctx context.Context, id string) error
	ListCustomFields(ctx context.Context, params *ListParams) (*Page[CustomFieldMeta], error)
	ListCustomFieldValues(ctx context.Context, params *ListParams) (*Page[DealCustomFieldDatum], error)

	ListPipelines(ctx context.Context, params *ListParams) (*Page[Pipeline], error)
	ListStages(ctx context.Context, params *ListParams) (*Page[Stage], error)
}

// ListsClient manages mailing lists.
type ListsClient interface {
	Create(ctx context.Context, request *ListCreateRequest) (*List, error)
	Get(ctx context.Context, id string) (*List, error)
	List(ctx context.Context, params *ListParams) (*Page[List], error)
	Delete(ctx context.Context, id string) error
}

// OrganizationsClient manages legacy organizations.
type OrganizationsClient interface {
	Create(ctx context.Context, request *OrganizationRequest) (*Organization, error)
	Get(ctx context.Context, id string) (*Organization, error)
	Update(ctx context.Context, id string, request *OrganizationRequest) (*Organization, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) error
	List(ctx context.Context, params *ListParams) (*Page[Organization], error)
	ListAll(ctx context.Context, opts *PageOptions) ([]Organization, error)
}

// TagsClient manages tags.
type TagsClient interface {
	Create(ctx context.Context, request *TagCreateRequest) (*Tag, error)
	List(ctx context.Context, params *ListParams) (*Page[Tag], error)
}

// UsersClient manages account users.
type UsersClient interface {
	Create(ctx context.Context, request *UserCreateRequest) (*User, error)
	Get(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, params *ListParams) (*Page[User], error)
	Delete(ctx context.Context, id string) error
}

// EventTrackingClient manages event tracking and records events.
type EventTrackingClient interface {
	Status(ctx context.Context) (*TrackingStatus, error)
	Toggle(ctx context.Context, enabled bool) (*TrackingStatus, error)
	CreateEvent(ctx context.Context, name string) (*EventTrackingEvent, error)
	DeleteEvent(ctx context.Context, name string) error
	ListEvents(ctx context.Context, params *ListParams) (*Page[EventTrackingEvent], error)
	// TrackEvent records an event for a visitor. It returns
	// ErrEventTrackingNotConfigured unless both the tracking account id and
	// key were configured.
	TrackEvent(ctx context.Context, request *TrackEventRequest) (*TrackEventResult, error)
}

// SiteTrackingClient reads the site tracking status.
type SiteTrackingClient interface {
	Status(ctx context.Context) (*TrackingStatus, error)
}

// Config represents client configuration for building a Client. It is read
// once at construction time; changing it afterwards has no effect.
//
// # Retries
//
// Retry is nil by default and requests are sent exactly once. Set it to
// DefaultRetryPolicy() (or any RetryPolicy) to retry transient failures.
//
// # Event tracking
//
// TrackEvent needs both EventTrackingActID and EventTrackingKey, found under
// Settings > Tracking > Event Tracking in the account. Every other operation
// only needs APIURL and APIToken.
type Config struct {
	// APIURL is the account base URL, e.g. "https://youraccount.api-us1.com".
	APIURL string
	// APIToken is sent in the Api-Token header of every API request.
	APIToken string

	// EventTrackingActID is the event tracking account id.
	EventTrackingActID string
	// EventTrackingKey is the event tracking key.
	EventTrackingKey string
	// EventTrackingURL overrides the event tracking endpoint.
	EventTrackingURL string

	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// HTTPTimeout bounds a single HTTP attempt. Zero uses the default.
	HTTPTimeout time.Duration
	// Retry enables retries of transient failures when non-nil.
	Retry RetryPolicy
	// RateLimit caps outgoing requests per second. Zero disables it.
	RateLimit float64
	// Debug logs every request and response through Logger.
	Debug bool
	// Logger receives retry notices, debug output and page progress.
	Logger Logger
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.APIURL, validation.Required, is.URL),
		validation.Field(&c.APIToken, validation.Required),
		validation.Field(&c.EventTrackingURL, is.URL),
		validation.Field(&c.HTTPTimeout, validation.Min(time.Duration(0))),
		validation.Field(&c.RateLimit, validation.Min(0.0)),
		validation.Field(&c.EventTrackingKey,
			validation.When(c.EventTrackingActID != "", validation.Required)),
		validation.Field(&c.EventTrackingActID,
			validation.When(c.EventTrackingKey != "", validation.Required)),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// EventTrackingEnabled reports whether TrackEvent can be used.
func (c *Config) EventTrackingEnabled() bool {
	return c.EventTrackingActID != "" && c.EventTrackingKey != ""
}
