package activecampaign

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/fivetwenty-io/activecampaign/internal/constants"
)

// Contact represents a contact record.
type Contact struct {
	ID          string `json:"id"                  yaml:"id"`
	Email       string `json:"email"               yaml:"email"`
	FirstName   string `json:"firstName,omitempty" yaml:"first_name,omitempty"`
	LastName    string `json:"lastName,omitempty"  yaml:"last_name,omitempty"`
	Phone       string `json:"phone,omitempty"     yaml:"phone,omitempty"`
	OrgID       string `json:"orgid,omitempty"     yaml:"orgid,omitempty"`
	CreatedDate string `json:"cdate,omitempty"     yaml:"cdate,omitempty"`
	UpdatedDate string `json:"udate,omitempty"     yaml:"udate,omitempty"`
	Links       Links  `json:"links,omitempty"     yaml:"links,omitempty"`
}

// ContactFieldValue sets a custom field while creating or syncing a contact.
type ContactFieldValue struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// Validate checks the field value.
func (v ContactFieldValue) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.Field, validation.Required),
	)
}

// ContactRequest is the body of a contact create, sync or update.
type ContactRequest struct {
	Email       string              `json:"email,omitempty"`
	FirstName   string              `json:"firstName,omitempty"`
	LastName    string              `json:"lastName,omitempty"`
	Phone       string              `json:"phone,omitempty"`
	FieldValues []ContactFieldValue `json:"fieldValues,omitempty"`
}

// Validate checks the request for a create or sync, where email is
// mandatory.
func (r *ContactRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.FieldValues),
	)
}

// ValidateUpdate checks the request for an update, where every field is
// optional.
func (r *ContactRequest) ValidateUpdate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, is.EmailFormat),
		validation.Field(&r.FieldValues),
	)
}

// ContactList is a contact's subscription to a list.
type ContactList struct {
	ID      string  `json:"id,omitempty"   yaml:"id,omitempty"`
	Contact string  `json:"contact"        yaml:"contact"`
	List    string  `json:"list"           yaml:"list"`
	Status  FlexInt `json:"status"         yaml:"status"`
	Links   Links   `json:"links,omitempty" yaml:"links,omitempty"`
}

// ContactListRequest subscribes or unsubscribes a contact.
type ContactListRequest struct {
	Contact  string `json:"contact"`
	List     string `json:"list"`
	Status   int    `json:"status"`
	SourceID int    `json:"sourceid,omitempty"`
}

// Validate checks the request.
func (r *ContactListRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Contact, validation.Required),
		validation.Field(&r.List, validation.Required),
		validation.Field(&r.Status, validation.Required,
			validation.In(constants.ListStatusActive, constants.ListStatusUnsubscribed)),
	)
}

// ContactTag links a tag to a contact.
type ContactTag struct {
	ID          string `json:"id"              yaml:"id"`
	Contact     string `json:"contact"         yaml:"contact"`
	Tag         string `json:"tag"             yaml:"tag"`
	CreatedDate string `json:"cdate,omitempty" yaml:"cdate,omitempty"`
	Links       Links  `json:"links,omitempty" yaml:"links,omitempty"`
}

// ContactAutomation is a contact's membership in an automation.
type ContactAutomation struct {
	ID         string  `json:"id"                   yaml:"id"`
	Contact    string  `json:"contact"              yaml:"contact"`
	SeriesID   string  `json:"seriesid,omitempty"   yaml:"seriesid,omitempty"`
	Automation string  `json:"automation,omitempty" yaml:"automation,omitempty"`
	Status     FlexInt `json:"status,omitempty"     yaml:"status,omitempty"`
	AddDate    string  `json:"adddate,omitempty"    yaml:"adddate,omitempty"`
	Links      Links   `json:"links,omitempty"      yaml:"links,omitempty"`
}

// AccountContact associates a contact with an account.
type AccountContact struct {
	ID               string `json:"id"                         yaml:"id"`
	Contact          string `json:"contact"                    yaml:"contact"`
	Account          string `json:"account"                    yaml:"account"`
	JobTitle         string `json:"jobTitle,omitempty"         yaml:"job_title,omitempty"`
	CreatedTimestamp string `json:"createdTimestamp,omitempty" yaml:"created_timestamp,omitempty"`
	UpdatedTimestamp string `json:"updatedTimestamp,omitempty" yaml:"updated_timestamp,omitempty"`
	Links            Links  `json:"links,omitempty"            yaml:"links,omitempty"`
}

// Field is a contact custom field definition.
type Field struct {
	ID           string  `json:"id"                   yaml:"id"`
	Title        string  `json:"title"                yaml:"title"`
	Type         string  `json:"type"                 yaml:"type"`
	Perstag      string  `json:"perstag,omitempty"    yaml:"perstag,omitempty"`
	Description  string  `json:"descript,omitempty"   yaml:"descript,omitempty"`
	DefaultValue string  `json:"defval,omitempty"     yaml:"defval,omitempty"`
	IsRequired   FlexInt `json:"isrequired,omitempty" yaml:"isrequired,omitempty"`
	Visible      FlexInt `json:"visible,omitempty"    yaml:"visible,omitempty"`
	OrderNum     FlexInt `json:"ordernum,omitempty"   yaml:"ordernum,omitempty"`
	Links        Links   `json:"links,omitempty"      yaml:"links,omitempty"`
}

// FieldValue is a contact's value for a custom field.
type FieldValue struct {
	ID          string `json:"id"              yaml:"id"`
	Contact     string `json:"contact"         yaml:"contact"`
	Field       string `json:"field"           yaml:"field"`
	Value       string `json:"value"           yaml:"value"`
	CreatedDate string `json:"cdate,omitempty" yaml:"cdate,omitempty"`
	UpdatedDate string `json:"udate,omitempty" yaml:"udate,omitempty"`
	Links       Links  `json:"links,omitempty" yaml:"links,omitempty"`
}

// BulkImportContact is one contact of a bulk import.
type BulkImportContact struct {
	Email            string            `json:"email"`
	FirstName        string            `json:"first_name,omitempty"`
	LastName         string            `json:"last_name,omitempty"`
	Phone            string            `json:"phone,omitempty"`
	CustomerAcctName string            `json:"customer_acct_name,omitempty"`
	Tags             []string          `json:"tags,omitempty"`
	Fields           []BulkImportField `json:"fields,omitempty"`
	Subscribe        []BulkImportList  `json:"subscribe,omitempty"`
	Unsubscribe      []BulkImportList  `json:"unsubscribe,omitempty"`
}

// Validate checks the contact.
func (c BulkImportContact) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required, is.EmailFormat),
	)
}

// BulkImportField sets a custom field during a bulk import.
type BulkImportField struct {
	ID    int    `json:"id"`
	Value string `json:"value"`
}

// BulkImportList references a list during a bulk import.
type BulkImportList struct {
	ListID int `json:"listid"`
}

// BulkImportResult is the acknowledgement of a queued bulk import.
type BulkImportResult struct {
	Success        FlexInt `json:"success"                   yaml:"success"`
	QueuedContacts FlexInt `json:"queued_contacts,omitempty" yaml:"queued_contacts,omitempty"`
	BatchID        string  `json:"batchId,omitempty"         yaml:"batch_id,omitempty"`
	Message        string  `json:"message,omitempty"         yaml:"message,omitempty"`
}

// ContactsWithLists is the merged result of walking every contact page with
// list subscriptions included.
type ContactsWithLists struct {
	Contacts     []Contact     `json:"contacts"     yaml:"contacts"`
	ContactLists []ContactList `json:"contactLists" yaml:"contact_lists"`
}

// ContactTagRequest adds a tag to a contact.
type ContactTagRequest struct {
	Contact string `json:"contact"`
	Tag     string `json:"tag"`
}

// Validate checks the request.
func (r *ContactTagRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Contact, validation.Required),
		validation.Field(&r.Tag, validation.Required),
	)
}

// FieldValueRequest creates or updates a contact custom field value.
type FieldValueRequest struct {
	Contact string `json:"contact"`
	Field   string `json:"field"`
	Value   string `json:"value"`
}

// Validate checks the request.
func (r *FieldValueRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Contact, validation.Required),
		validation.Field(&r.Field, validation.Required),
	)
}

// AccountContactRequest associates a contact with an account.
type AccountContactRequest struct {
	Contact  string `json:"contact,omitempty"`
	Account  string `json:"account,omitempty"`
	JobTitle string `json:"jobTitle,omitempty"`
}

// Validate checks the request.
func (r *AccountContactRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Contact, validation.Required),
		validation.Field(&r.Account, validation.Required),
	)
}
